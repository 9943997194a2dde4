package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bizsync/bizsync/internal/client/storage"
	"github.com/bizsync/bizsync/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Sync Status ===")
	c.io.Println()

	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'bizsync login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	expiresAt := time.Unix(session.ExpiresAt, 0)

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if session.Expired(time.Now().Unix()) {
		c.io.Println("⚠️  Token has expired. Please login again.")
	}

	watermark, err := c.metadata.GetWatermark(ctx)
	if err != nil {
		return fmt.Errorf("failed to get last sync time: %w", err)
	}
	c.io.Println()
	if watermark.IsZero() {
		c.io.Println("Last sync: never")
	} else {
		c.io.Printf("Last sync: %s\n", watermark.Format(time.RFC3339))
	}

	counts, err := c.syncService.GetPendingCount(ctx)
	if err != nil {
		// Status stays useful even when the pending count is unavailable.
		c.io.Printf("Warning: failed to get pending sync count: %v\n", err)
		return nil
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	if total == 0 {
		c.io.Println("✓ All records synchronized with server")
		return nil
	}

	c.io.Printf("⚠️  Pending sync: %d record(s) waiting to be synchronized\n", total)
	for _, et := range models.EntityTypes() {
		if counts[et] > 0 {
			c.io.Printf("  %s: %d\n", et, counts[et])
		}
	}
	c.io.Println("Run 'bizsync sync' to synchronize with server.")

	return nil
}
