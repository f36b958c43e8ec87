package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dreamnotes/internal/config"
	"dreamnotes/internal/db"
	mcpserver "dreamnotes/internal/mcp"
	"dreamnotes/internal/notes"
	"dreamnotes/internal/server"

	mcphttp "github.com/mark3labs/mcp-go/server"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// Single connection attempt; failure ends the process before binding
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	logger.Info("connecting to MongoDB", "uri", cfg.MongoURI, "database", cfg.Database)
	database, err := db.Connect(connectCtx, cfg.MongoURI, cfg.Database)
	if err != nil {
		logger.Error("MongoDB connection error", "error", err)
		return fmt.Errorf("startup: %w", err)
	}
	logger.Info("connected to MongoDB")
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Disconnect(disconnectCtx, database); err != nil {
			logger.Warn("failed to disconnect MongoDB", "error", err)
		}
	}()

	// Wire dependencies
	noteRepo := notes.NewRepo(database, cfg.Collection)
	if err := noteRepo.EnsureIndexes(connectCtx); err != nil {
		logger.Warn("failed to ensure indexes", "error", err)
	}
	noteSvc := notes.NewService(noteRepo)
	noteHandler := notes.NewHandler(noteSvc, logger)

	mcpSrv := mcpserver.NewServer(noteSvc, logger)

	handler := server.NewRouter(server.Routes{
		Notes:  noteHandler,
		MCP:    mcphttp.NewStreamableHTTPServer(mcpSrv),
		Ping:   noteRepo.Ping,
		Logger: logger,
	})
	srv := server.New(cfg.Addr(), handler)

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		defer close(idle)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Port)
	logger.Info("endpoints available",
		"api", "http://localhost:"+cfg.Port+"/notes",
		"web", "http://localhost:"+cfg.Port,
		"mcp", "http://localhost:"+cfg.Port+"/mcp",
	)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	<-idle

	logger.Info("server stopped")
	return nil
}
