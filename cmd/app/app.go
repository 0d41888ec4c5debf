package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bigbull/event-ticket-api/internal/api"
	"github.com/bigbull/event-ticket-api/internal/config"
	"github.com/bigbull/event-ticket-api/internal/db"
	"github.com/bigbull/event-ticket-api/internal/logger"
	"github.com/bigbull/event-ticket-api/internal/repository/dao"
)

const shutdownTimeout = 10 * time.Second

// OpenDatabase prefers DATABASE_URL over the postgres section of the config.
func OpenDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}
	return db.OpenPostgres(conf.Postgres)
}

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	postgresDB, err := OpenDatabase(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := api.NewServer(conf, postgresDB)

	created, err := s.Auth.EnsureDefaultAdmin(ctx, conf.Admin.InitialUsername, conf.Admin.InitialPassword)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin account -> %w", err)
	}
	if !created {
		zap.L().Info("admin account already exists, skipping bootstrap")
	}

	go s.ScanQueue.Run(ctx)

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
