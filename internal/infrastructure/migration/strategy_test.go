package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

func TestNewStrategy(t *testing.T) {
	log := logger.NewNopLogger()

	tests := []struct {
		driver   string
		name     string
		expected string
		wantErr  bool
	}{
		{"sqlite", "goose", "gorm_auto_migrate", false},
		{"mysql", "", "goose", false},
		{"mysql", "goose", "goose", false},
		{"mysql", "golang_migrate", "golang_migrate", false},
		{"mysql", "auto", "gorm_auto_migrate", false},
		{"mysql", "flyway", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.name, func(t *testing.T) {
			s, err := NewStrategy(tt.driver, tt.name, log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.GetName())
		})
	}
}

func TestGormAutoMigrateStrategy_CreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := NewGormAutoMigrateStrategy(logger.NewNopLogger())
	require.NoError(t, s.Migrate(db))
	// A second run is a no-op.
	require.NoError(t, s.Migrate(db))

	for _, table := range []string{
		constants.TableCustomers,
		constants.TableNotifications,
		constants.TableActivityLogs,
		constants.TableSystemSettings,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	version, err := s.Version(db)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), version)
	assert.Error(t, s.MigrateDown(db, 1))
}

func TestEmbeddedScripts(t *testing.T) {
	gooseFiles, err := gooseScripts.ReadDir(gooseScriptsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, gooseFiles)

	migrateFiles, err := migrateScripts.ReadDir(migrateScriptsDir)
	require.NoError(t, err)
	// golang-migrate needs an up and a down file per version.
	assert.Equal(t, 0, len(migrateFiles)%2)
}

func TestGenerator_Create(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, logger.NewNopLogger())
	g.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }

	files, err := g.Create("add_customer_tags")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	content, err := os.ReadFile(filepath.Join(dir, "goose", "20240301100000_add_customer_tags.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.FileExists(t, filepath.Join(dir, "migrate", "20240301100000_add_customer_tags.up.sql"))
	assert.FileExists(t, filepath.Join(dir, "migrate", "20240301100000_add_customer_tags.down.sql"))

	_, err = g.Create("")
	assert.Error(t, err)
}
