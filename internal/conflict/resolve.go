package conflict

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bizsync/bizsync/internal/models"
)

// Strategy selects how a detected conflict is turned into a single winner.
type Strategy string

const (
	// StrategyServerWins always keeps the server version.
	StrategyServerWins Strategy = "server_wins"
	// StrategyClientWins always keeps the local version.
	StrategyClientWins Strategy = "client_wins"
	// StrategyNewestWins keeps whichever version has the later updated_at.
	// Ties go to the server so resolution stays deterministic.
	StrategyNewestWins Strategy = "newest_wins"
	// StrategyMerge unions payload fields: server version as the base, local
	// fields overlaid. Identity and provenance (storage id, created_at,
	// created_by) always come from the server version.
	StrategyMerge Strategy = "merge"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyNewestWins

// ErrUnknownStrategy aborts resolution for a single record; the surrounding
// batch continues.
var ErrUnknownStrategy = errors.New("unknown conflict resolution strategy")

// ParseStrategy validates a strategy name from configuration or a request.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyServerWins, StrategyClientWins, StrategyNewestWins, StrategyMerge:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Resolve picks the winning record for a conflict according to strategy.
// The returned record is a copy; neither input is mutated.
func Resolve(c *Conflict, strategy Strategy) (*models.Record, error) {
	switch strategy {
	case StrategyServerWins:
		return c.Server.Clone(), nil

	case StrategyClientWins:
		return c.Local.Clone(), nil

	case StrategyNewestWins:
		if c.LocalTimestamp.After(c.ServerTimestamp) {
			return c.Local.Clone(), nil
		}
		return c.Server.Clone(), nil

	case StrategyMerge:
		return merge(c)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// merge unions the two payload objects, local fields winning, on top of the
// server record's identity and provenance.
func merge(c *Conflict) (*models.Record, error) {
	base := map[string]any{}
	if len(c.Server.Payload) > 0 {
		if err := json.Unmarshal(c.Server.Payload, &base); err != nil {
			return nil, fmt.Errorf("failed to decode server payload: %w", err)
		}
	}

	overlay := map[string]any{}
	if len(c.Local.Payload) > 0 {
		if err := json.Unmarshal(c.Local.Payload, &overlay); err != nil {
			return nil, fmt.Errorf("failed to decode local payload: %w", err)
		}
	}

	for k, v := range overlay {
		base[k] = v
	}

	payload, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged payload: %w", err)
	}

	merged := c.Server.Clone()
	merged.Payload = payload
	// Keep the later timestamp so the merged record wins any replay of the
	// same two versions.
	if c.LocalTimestamp.After(c.ServerTimestamp) {
		merged.UpdatedAt = c.Local.UpdatedAt
	}
	return merged, nil
}
