package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nitrodesk/nitrodesk/internal/infrastructure/database"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/migration"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/seeds"
	"github.com/nitrodesk/nitrodesk/internal/interfaces/cli/bootstrap"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

var (
	env      string
	name     string
	steps    int
	skipSeed bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations and seed the default Discord settings.`,
		RunE:  runUp,
	}

	cmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "Do not insert default settings rows")

	return cmd
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create goose and golang-migrate script files with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initStrategy() (migration.Strategy, logger.Interface, error) {
	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), true)
	if err != nil {
		return nil, nil, err
	}

	strategy, err := migration.NewStrategy(cfg.Database.Driver, cfg.Database.MigrationStrategy, log)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return strategy, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	strategy, log, err := initStrategy()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "strategy", strategy.GetName())

	if err := strategy.Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	if !skipSeed {
		seeded, err := seeds.SeedDiscordSettings(database.Get(), biztime.NowUTC())
		if err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
		log.Infow("default settings seeded", "inserted", seeded)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	strategy, log, err := initStrategy()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	strategy, log, err := initStrategy()
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := strategy.Version(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Strategy:        %s\n", strategy.GetName())
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		if err := gooseStrategy.Status(database.Get()); err != nil {
			return fmt.Errorf("failed to get detailed status: %w", err)
		}
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger()

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}

	files, err := migration.NewGenerator(scriptsPath, log).Create(name)
	if err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", f)
	}
	return nil
}
