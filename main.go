package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"quicknote/config"
	"quicknote/config/database"
	"quicknote/internal/command"
	"quicknote/internal/note"
	"quicknote/internal/note/repository"
	"quicknote/internal/note/service"
	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
	"quicknote/router"
	"quicknote/socket"
)

const shutdownGrace = 5 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Sugar.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	if envErr != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without DATABASE_URL the commands stay registered and answer with a
	// configuration error, so the shell can still start and show it.
	pool := database.Unconfigured()
	if cfg.DatabaseConfigured() {
		pool, err = database.Connect(ctx, cfg.DatabaseURL, database.ConnectOptions{
			Attempts:   cfg.ConnectRetries,
			RetryDelay: cfg.ConnectRetryDelay,
		})
		if err != nil {
			logger.Sugar.Fatalf("Could not connect to database, check DATABASE_URL: %v", err)
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			logger.Sugar.Error(err)
		}
	} else {
		logger.Sugar.Warn(apperr.ErrConfigMissing.Error())
	}
	defer pool.Close()

	registry := command.NewRegistry()
	hub := socket.NewHub(registry)
	go hub.Run(ctx)

	noteService := service.NewNoteService(repository.NewNoteRepository(pool), hub)
	note.RegisterCommands(registry, noteService)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.Setup(registry, pool, hub, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Sugar.Errorf("Shutdown: %v", err)
		}
	}()

	logger.Sugar.Infof("Note backend listening on %s (commands: %v)", cfg.HTTPAddr, registry.Names())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Sugar.Fatalf("Server failed: %v", err)
	}
}
