package commands

import (
	"fmt"
	"os"

	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const defaultConfigPath = "configs/rest-app.yaml"

func setupLogger() (logger.Logger, error) {
	log, err := logger.New(&config.LoggerSettings{
		LogLevel:   config.LogLevelInfo,
		LogType:    config.LogTypeConsole,
		RedactKeys: config.DefaultRedactKeys,
	}, config.ServiceCLI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// configPath resolves the configuration file from the --config flag, CONFIG_PATH or the default location
func configPath(cmd *cobra.Command) string {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		return path
	}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultConfigPath
}

func loadConfig(cmd *cobra.Command) (*config.RestConfig, error) {
	cfg, err := config.InitializeRestConfig(configPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openDatabase connects with the configured settings and migrates the schema
func openDatabase(cmd *cobra.Command) (*gorm.DB, *config.RestConfig, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	if err := persistence.Migrate(db); err != nil {
		_ = persistence.CloseDB(db)
		return nil, nil, err
	}
	return db, cfg, nil
}
