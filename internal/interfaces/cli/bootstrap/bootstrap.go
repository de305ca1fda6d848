// Package bootstrap holds the startup steps shared by every command.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/nitrodesk/nitrodesk/internal/infrastructure/config"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/database"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/constants"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flagValue string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flagValue
}

// Init loads configuration, installs the process logger and the business
// timezone, and opens the database when withDB is set.
func Init(env string, withDB bool) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(MapEnvToGinMode(env))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.BizTime.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if withDB {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return cfg, log, nil
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}
