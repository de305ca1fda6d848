package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/nitrodesk/nitrodesk/internal/infrastructure/config"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/database"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/migration"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/seeds"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/nitrodesk/nitrodesk/internal/interfaces/http"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the admin API serving customers, notifications, activities, settings and stats.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations and seed default settings on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	env = bootstrap.ResolveEnv(env)

	cfg, log, err := bootstrap.Init(env, true)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(cfg, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := httpRouter.NewContainer(ctx, cfg, database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	srv := &http.Server{
		Addr:        cfg.Server.GetAddr(),
		Handler:     container.Router().GetEngine(),
		ReadTimeout: 15 * time.Second,
		// Dispatch cycles fan out to Discord and can outlast a short write timeout.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if skipMigrationCheck && !autoMigrate {
		log.Infow("skipping migration check")
		return nil
	}

	strategy, err := migration.NewStrategy(cfg.Database.Driver, cfg.Database.MigrationStrategy, log)
	if err != nil {
		return err
	}

	if autoMigrate {
		if cfg.Server.Mode == "release" {
			log.Warnw("auto-migration is enabled in release mode")
		}
		if err := strategy.Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		seeded, err := seeds.SeedDiscordSettings(database.Get(), biztime.NowUTC())
		if err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
		log.Infow("auto-migration completed", "strategy", strategy.GetName(), "seeded_settings", seeded)
		return nil
	}

	version, err := strategy.Version(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "strategy", strategy.GetName(), "version", version)
	return nil
}
