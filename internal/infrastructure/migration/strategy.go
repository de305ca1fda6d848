package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

//go:embed scripts/goose/*.sql
var gooseScripts embed.FS

//go:embed scripts/migrate/*.sql
var migrateScripts embed.FS

const (
	gooseScriptsDir   = "scripts/goose"
	migrateScriptsDir = "scripts/migrate"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date
	Migrate(db *gorm.DB) error
	// MigrateDown rolls back the given number of versions
	MigrateDown(db *gorm.DB, steps int) error
	// Version reports the current schema version, or -1 when unversioned
	Version(db *gorm.DB) (int64, error)
	GetName() string
}

// GooseStrategy runs the embedded goose scripts.
type GooseStrategy struct {
	dialect string
	logger  logger.Interface
}

func NewGooseStrategy(dialect string, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		dialect: dialect,
		logger:  log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) prepare(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(gooseScripts)
	if err := goose.SetDialect(s.dialect); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return sqlDB, nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, gooseScriptsDir); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, gooseScriptsDir); err != nil {
			s.logger.Errorw("down migration failed", "error", err, "step", i+1)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) Version(db *gorm.DB) (int64, error) {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersion(sqlDB)
}

// Status prints the applied/pending state of every embedded script.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}
	if err := goose.Status(sqlDB, gooseScriptsDir); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

// GolangMigrateStrategy runs the embedded golang-migrate scripts (MySQL only).
type GolangMigrateStrategy struct {
	logger logger.Interface
}

func NewGolangMigrateStrategy(log logger.Interface) *GolangMigrateStrategy {
	return &GolangMigrateStrategy{
		logger: log.With("component", "migration.golang-migrate"),
	}
}

func (s *GolangMigrateStrategy) GetName() string {
	return "golang_migrate"
}

func (s *GolangMigrateStrategy) createMigrateInstance(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
	}

	source, err := iofs.New(migrateScripts, migrateScriptsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded scripts: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func (s *GolangMigrateStrategy) Migrate(db *gorm.DB) error {
	m, err := s.createMigrateInstance(db)
	if err != nil {
		return err
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually", "version", currentVersion)
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	m, err := s.createMigrateInstance(db)
	if err != nil {
		return err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}

	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GolangMigrateStrategy) Version(db *gorm.DB) (int64, error) {
	m, err := s.createMigrateInstance(db)
	if err != nil {
		return 0, err
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(version), nil
}

// GormAutoMigrateStrategy derives the schema from the GORM models. Used for
// SQLite, where the MySQL scripts do not apply.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: log.With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	if err := db.AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migrate failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migrate completed", "models", len(all))
	return nil
}

func (s *GormAutoMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	return fmt.Errorf("down migration is not supported by %s", s.GetName())
}

func (s *GormAutoMigrateStrategy) Version(db *gorm.DB) (int64, error) {
	return -1, nil
}

// NewStrategy picks the strategy for a driver. SQLite always uses AutoMigrate.
func NewStrategy(driver, name string, log logger.Interface) (Strategy, error) {
	if driver == "sqlite" {
		return NewGormAutoMigrateStrategy(log), nil
	}

	switch name {
	case "", "goose":
		return NewGooseStrategy("mysql", log), nil
	case "golang_migrate", "golang-migrate":
		return NewGolangMigrateStrategy(log), nil
	case "auto", "gorm_auto_migrate":
		return NewGormAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy: %s", name)
	}
}
