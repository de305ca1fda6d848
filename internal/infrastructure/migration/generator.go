package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// Generator writes new migration scripts into the source tree. The scripts are
// embedded at build time, so a rebuild is required before they run.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator takes the path of the migration package's scripts directory.
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		now:         time.Now,
	}
}

// Create writes a goose script and the matching golang-migrate up/down pair.
// It returns the written file paths.
func (g *Generator) Create(name string) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("migration name is required")
	}

	now := g.now().UTC()
	stamp := now.Format("20060102150405")
	created := now.Format(time.RFC3339)

	files := map[string]string{
		filepath.Join(g.scriptsPath, "goose", fmt.Sprintf("%s_%s.sql", stamp, name)): fmt.Sprintf(
			"-- Migration: %s\n-- Created: %s\n\n-- +goose Up\n\n-- +goose Down\n", name, created),
		filepath.Join(g.scriptsPath, "migrate", fmt.Sprintf("%s_%s.up.sql", stamp, name)): fmt.Sprintf(
			"-- Migration: %s\n-- Created: %s\n", name, created),
		filepath.Join(g.scriptsPath, "migrate", fmt.Sprintf("%s_%s.down.sql", stamp, name)): fmt.Sprintf(
			"-- Rollback Migration: %s\n-- Created: %s\n", name, created),
	}

	written := make([]string, 0, len(files))
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("failed to create scripts directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	g.logger.Infow("migration files created", "name", name, "files", written)
	return written, nil
}
