package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bizsync/bizsync/internal/models"
	"github.com/bizsync/bizsync/internal/server/config"
	"github.com/bizsync/bizsync/internal/server/handlers"
	"github.com/bizsync/bizsync/internal/server/middleware"
	"github.com/bizsync/bizsync/internal/server/storage/sqlite"
	serversync "github.com/bizsync/bizsync/internal/server/sync"
	"github.com/bizsync/bizsync/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML config file")
	createUser := flag.String("create-user", "", "Create a user with this username and exit (reads BIZSYNC_USER_PASSWORD)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.Database.Path)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if *createUser != "" {
		if err := provisionUser(ctx, store, *createUser); err != nil {
			logger.Error("Failed to create user", "error", err, "username", *createUser)
			os.Exit(1)
		}
		logger.Info("User created", "username", *createUser)
		return
	}

	if err := run(ctx, cfg, logger, store); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, store *sqlite.Storage) error {
	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(cfg.Auth.JWTSecret),
		AccessTokenTTL: cfg.Auth.AccessTokenTTL,
	}

	syncService := serversync.NewService(store, store, store, logger, cfg.Strategy())

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	syncHandler := handlers.NewSyncHandler(logger, syncService)
	healthHandler := handlers.NewHealthHandler(logger, store, Version)

	authed := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.Handle("POST /api/v1/sync/pull", authed(http.HandlerFunc(syncHandler.Pull)))
	mux.Handle("POST /api/v1/sync/push", authed(http.HandlerFunc(syncHandler.Push)))
	mux.Handle("POST /api/v1/sync/full", authed(http.HandlerFunc(syncHandler.FullSync)))
	mux.Handle("GET /api/v1/sync/status/{deviceId}", authed(http.HandlerFunc(syncHandler.Status)))
	mux.Handle("POST /api/v1/sync/resolve-conflict", authed(http.HandlerFunc(syncHandler.ResolveConflict)))

	// Outermost first: recovery, then logging, then rate limiting. Login gets
	// its own stricter bucket.
	limits := []middleware.PathRateLimit{
		{Path: "/api/v1/auth/login", Rate: cfg.Limits.LoginRate, Window: cfg.Limits.Window},
	}
	var handler http.Handler = mux
	handler = middleware.RateLimitByPathMiddleware(limits, cfg.Limits.Rate, cfg.Limits.Window, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", cfg.Addr, "version", Version)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// provisionUser creates an account from the command line. The password comes
// from BIZSYNC_USER_PASSWORD so it never appears in shell history or ps.
func provisionUser(ctx context.Context, store *sqlite.Storage, username string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	password := os.Getenv("BIZSYNC_USER_PASSWORD")
	if password == "" {
		return fmt.Errorf("BIZSYNC_USER_PASSWORD is not set")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return store.CreateUser(ctx, &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

func printVersion() {
	fmt.Printf("BizSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
