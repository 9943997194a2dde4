package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizsync/bizsync/internal/client/storage"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: bizsync get <type> <id>")
	}

	entityType, err := parseEntityTypeArg(args[0])
	if err != nil {
		return err
	}
	logicalID := args[1]

	record, err := c.records.GetRecord(ctx, entityType, logicalID)
	if err != nil {
		if err == storage.ErrRecordNotFound {
			return fmt.Errorf("no %s record with ID: %s", entityType, logicalID)
		}
		return fmt.Errorf("failed to get record: %w", err)
	}

	c.io.Println("=== Record Details ===")
	c.io.Println()
	c.io.Printf("ID:       %s\n", record.LogicalID)
	c.io.Printf("Type:     %s\n", record.EntityType)
	c.io.Printf("Status:   %s\n", record.SyncStatus)
	c.io.Printf("Created:  %s\n", record.CreatedAt.Format(time.RFC3339))
	c.io.Printf("Updated:  %s\n", record.UpdatedAt.Format(time.RFC3339))
	if record.CreatedBy != "" {
		c.io.Printf("Author:   %s\n", record.CreatedBy)
	}
	if record.LastSyncedAt != nil {
		c.io.Printf("Synced:   %s\n", record.LastSyncedAt.Format(time.RFC3339))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, record.Payload, "", "  "); err == nil {
		c.io.Println()
		c.io.Println(pretty.String())
	}

	return nil
}
