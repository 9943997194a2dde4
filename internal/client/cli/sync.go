package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")

	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}
	if session.Expired(time.Now().Unix()) {
		return fmt.Errorf("access token has expired. Please login again")
	}

	c.io.Println()
	c.io.Println("Starting synchronization with server...")

	result, err := c.syncService.Sync(ctx, session.AccessToken)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	c.io.Println()
	c.io.Printf("Pushed to server:   %d record(s)\n", result.Pushed)
	c.io.Printf("Pulled from server: %d record(s)\n", result.Pulled)
	if result.Conflicts > 0 {
		c.io.Printf("Conflicts resolved: %d\n", result.Conflicts)
	}
	if result.Errors > 0 {
		c.io.Printf("Rejected by server: %d (will retry next sync)\n", result.Errors)
	}

	return nil
}
