package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/server"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/storage/local"
	"github.com/claude/liftlog/internal/storage/postgres"
	"github.com/claude/liftlog/internal/store"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit (remote mode)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("LiftLog starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Select gateway
	var gw storage.Gateway
	switch cfg.Storage.Mode {
	case config.ModeRemote:
		dsn := cfg.Database.DSN()
		if err := postgres.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
		if *migrateOnly {
			log.Info("migrate-only: exiting")
			return
		}
		gw, err = postgres.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		log.Info("database connected")
	default:
		gw, err = local.Open(cfg.Storage.DataDir)
		if err != nil {
			log.Error("failed to open local storage", "error", err)
			os.Exit(1)
		}
		log.Info("demo storage opened", "dir", cfg.Storage.DataDir)
	}
	defer gw.Close()

	// Load application state
	st := store.New(gw, log)
	if err := st.Load(ctx); err != nil {
		log.Error("failed to load state", "error", err)
		os.Exit(1)
	}
	log.Info("state loaded", "week", st.CurrentWeek(), "workouts", len(st.WorkoutHistory()))

	// HTTP API + MCP under one handler
	srv := server.New(st, cfg.Auth.APIKey, log)
	mcpSrv := mcp.New(st, Version, log)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))
	mux.Handle("/", srv)

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: mux}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
