package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kakeibo/internal/config"
	"kakeibo/internal/handlers"
	"kakeibo/internal/logger"
	"kakeibo/internal/repository"
	"kakeibo/internal/repository/db"
	"kakeibo/internal/server"
	"kakeibo/internal/service"
)

// @title           kakeibo API
// @version         1.0
// @description     Read-only JSON view of the personal expense ledger.
// @BasePath        /
// @securityDefinitions.apikey SessionCookie
// @in              cookie
// @name            kakeibo_session
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.SessionConfig{
		Secret: []byte(cfg.SessionSecret),
		TTL:    cfg.SessionTTL,
	}, log)
	h := handlers.NewHandler(services, log, handlers.Options{SecureCookie: cfg.SecureCookie})

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Janitor.Run(ctx, cfg.CleanupInterval)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, h, log)

	waitForShutdown(cancel, srv, log)
}

func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, h *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, h.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
