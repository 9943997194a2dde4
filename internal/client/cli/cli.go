// Package cli implements the interactive command-line client: offline record
// management against the local store plus on-demand synchronization.
package cli

import (
	"context"
	"fmt"
	"strings"

	httpClient "github.com/bizsync/bizsync/internal/client/api"
	"github.com/bizsync/bizsync/internal/client/iocli"
	"github.com/bizsync/bizsync/internal/client/storage"
	"github.com/bizsync/bizsync/internal/client/sync"
	"github.com/bizsync/bizsync/internal/models"
)

type Cli struct {
	io          iocli.IO
	apiClient   httpClient.ClientAPI
	records     storage.RecordStore
	metadata    storage.MetadataStore
	sessions    storage.SessionStore
	syncService sync.Service
}

func New(
	io iocli.IO,
	apiClient httpClient.ClientAPI,
	records storage.RecordStore,
	metadata storage.MetadataStore,
	sessions storage.SessionStore,
	syncService sync.Service,
) *Cli {
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		records:     records,
		metadata:    metadata,
		sessions:    sessions,
		syncService: syncService,
	}
}

// Run dispatches one command. The caller owns process exit codes.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "sync":
		return c.runSync(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// parseEntityTypeArg maps the first positional argument to an entity type,
// accepting the singular forms users actually type.
func parseEntityTypeArg(arg string) (models.EntityType, error) {
	switch strings.ToLower(arg) {
	case "customer":
		return models.EntityCustomers, nil
	case "order":
		return models.EntityOrders, nil
	case "payment":
		return models.EntityPayments, nil
	case "project":
		return models.EntityProjects, nil
	}
	return models.ParseEntityType(strings.ToLower(arg))
}

// requireSession returns the stored session, failing with a login hint if the
// client has never authenticated. Expiry is not checked here: offline record
// edits stay possible with a stale token.
func (c *Cli) requireSession(ctx context.Context) (*storage.Session, error) {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil, fmt.Errorf("not authenticated. Please run 'bizsync login' first")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func PrintUsage() {
	fmt.Println("BizSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bizsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH      Path to local database (default: bizsync-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login                   Login to server")
	fmt.Println("  logout                  Drop the saved session")
	fmt.Println("  status                  Show session and pending-sync status")
	fmt.Println("  add <type>              Add a record (customer, order, payment, project)")
	fmt.Println("  list <type>             List local records of one type")
	fmt.Println("  get <type> <id>         Show one record in full")
	fmt.Println("  sync                    Synchronize local records with the server")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  bizsync login")
	fmt.Println("  bizsync add customer")
	fmt.Println("  bizsync list orders")
	fmt.Println("  bizsync get customers b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  bizsync --server https://example.com sync")
}
