package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizsync/bizsync/internal/models"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record type. Usage: bizsync list <customers|orders|payments|projects>")
	}

	entityType, err := parseEntityTypeArg(args[0])
	if err != nil {
		return err
	}

	records, err := c.records.ListRecords(ctx, entityType)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", entityType, err)
	}

	c.io.Printf("=== %s ===\n", entityType)
	c.io.Println()

	if len(records) == 0 {
		c.io.Println("No records found.")
		c.io.Printf("Use 'bizsync add %s' to create one.\n", singular(entityType))
		return nil
	}

	c.io.Printf("Found %d record(s):\n", len(records))
	c.io.Println()

	for i, record := range records {
		c.io.Printf("%d. %s\n", i+1, summarize(record))
		c.io.Printf("   ID:      %s\n", record.LogicalID)
		c.io.Printf("   Updated: %s\n", record.UpdatedAt.Format(time.RFC3339))
		c.io.Printf("   Status:  %s\n", record.SyncStatus)
		c.io.Println()
	}

	return nil
}

func singular(et models.EntityType) string {
	s := string(et)
	if len(s) > 1 && s[len(s)-1] == 's' {
		return s[:len(s)-1]
	}
	return s
}

// summarize extracts a human-readable one-liner from an opaque payload.
func summarize(record *models.Record) string {
	var payload map[string]any
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return record.LogicalID
	}
	for _, key := range []string{"name", "description", "order_id"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return record.LogicalID
}
