package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	dbpkg "github.com/BruksfildServices01/coach-crm/internal/db"
	"github.com/BruksfildServices01/coach-crm/internal/infra/repository"
	"github.com/BruksfildServices01/coach-crm/internal/logging"
	"github.com/BruksfildServices01/coach-crm/internal/metrics"
	"github.com/BruksfildServices01/coach-crm/internal/routes"
	"github.com/BruksfildServices01/coach-crm/internal/tracing"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "run migrations before serving")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	tp, shutdownTracing := tracing.Setup(serviceName, version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logging.LogError(ctx, logger, "tracer shutdown failed", err)
		}
	}()

	db, err := dbpkg.NewDB(ctx, cfg)
	if err != nil {
		logging.LogError(ctx, logger, "database connection failed", err)
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if migrateOnStart {
		if err := dbpkg.Migrate(ctx, db); err != nil {
			logging.LogError(ctx, logger, "migration failed", err)
			return err
		}
	}

	router := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Accounts: repository.NewAccountGormRepository(db),
		Roster:   repository.NewRosterGormRepository(db),
		Plans:    repository.NewTrainingPlanGormRepository(db),
		Audit:    repository.NewAuditGormRepository(db),
		Hasher:   auth.NewArgon2Hasher(),
		Metrics:  metrics.New(),
		Logger:   logger,
		Tracer:   tp,
		Ready: func(ctx context.Context) error {
			return dbpkg.Ping(ctx, db)
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.LogError(ctx, logger, "server failed", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(shutdownCtx, logger, "graceful shutdown failed", err)
		return err
	}
	return nil
}
