// Switchd is a request routing daemon. It classifies incoming natural
// language requests, routes them to registered specialist services over
// JSON-RPC, and returns the merged response fragments over HTTP.
//
// Configuration is loaded from a YAML file and environment variables. See
// internal/config for details.
//
// Usage:
//
//	# Start with defaults
//	switchd
//
//	# Configure via flags and environment
//	switchd -config /etc/switchd/config.yaml
//	SWITCHD_SERVER_PORT=9000 switchd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/switchd/internal/config"
	"github.com/fyrsmithlabs/switchd/internal/engine"
	"github.com/fyrsmithlabs/switchd/internal/httpapi"
	"github.com/fyrsmithlabs/switchd/internal/logging"
	"github.com/fyrsmithlabs/switchd/internal/session"
	"github.com/fyrsmithlabs/switchd/internal/specialist"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  switchd           Start the routing daemon\n")
			fmt.Fprintf(os.Stderr, "  switchd version   Show version information\n")
			os.Exit(1)
		}
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("switchd by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the routing daemon and blocks until context is cancelled.
//
// Startup order:
//  1. Load and validate configuration
//  2. Initialize logger
//  3. Discover specialists and build the registry
//  4. Wire dispatch client, session store and routing engine
//  5. Start HTTP server
//  6. Graceful shutdown on context cancellation
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger) // Best-effort sync on shutdown
	}()

	logger.Info("Starting switchd",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Strings("specialist_addresses", cfg.Specialists.AddressList()),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	// Discover specialists. Unreachable addresses are skipped; the policy
	// layer degrades routing accordingly, so discovery never fails startup.
	registry := specialist.NewRegistry(logger)
	discoverClient := &http.Client{Timeout: cfg.Specialists.ConnectTimeout}
	specialist.Discover(ctx, discoverClient, registry, cfg.Specialists.AddressList(), logger)

	avail := registry.Availability()
	logger.Info("Specialist discovery complete",
		zap.Bool("news_available", avail.NewsAvailable),
		zap.Bool("finance_available", avail.FinanceAvailable))

	sessions := session.NewStore()
	client := specialist.NewClient(registry, sessions,
		cfg.Specialists.RequestTimeout, cfg.Specialists.ConnectTimeout, logger)
	router := engine.New(registry, client, sessions, logger)

	srv, err := httpapi.NewServer(router, registry, sessions, logger, &httpapi.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		RateLimit: cfg.Server.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
