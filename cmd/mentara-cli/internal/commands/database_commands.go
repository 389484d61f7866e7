package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DatabaseCommandHandler encapsulates schema and seed operations
type DatabaseCommandHandler struct {
	logger logger.Logger
}

// NewDatabaseCommandHandler initializes and returns a DatabaseCommandHandler
func NewDatabaseCommandHandler() (*DatabaseCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DatabaseCommandHandler{logger: loggerInstance}, nil
}

// MigrateCmd creates or updates every table
func (commandHandler *DatabaseCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) {
	db, _, err := openDatabase(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() { _ = persistence.CloseDB(db) }()

	commandHandler.logger.Info("Database migrations completed successfully")
}

// SeedCmd loads a YAML seed file into the database
func (commandHandler *DatabaseCommandHandler) SeedCmd(cmd *cobra.Command, _ []string) {
	seedPath, err := cmd.Flags().GetString("file")
	if err != nil {
		commandHandler.logger.Error("invalid file flag ", err)
		return
	}

	data, err := os.ReadFile(filepath.Clean(seedPath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	seed, err := ParseSeedFile(data)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	db, cfg, err := openDatabase(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() { _ = persistence.CloseDB(db) }()

	userRepo, err := persistence.NewGormUserRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	therapistRepo, err := persistence.NewGormTherapistRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	availabilityRepo, err := persistence.NewGormAvailabilityRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	hasher, err := authinfra.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	seeder := NewSeeder(userRepo, therapistRepo, availabilityRepo, hasher, commandHandler.logger)
	result, err := seeder.Seed(context.Background(), seed)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info(fmt.Sprintf(
		"Seed completed: %d users created, %d skipped; %d therapists created, %d skipped; %d availability windows",
		result.UsersCreated, result.UsersSkipped, result.TherapistsCreated, result.TherapistsSkipped, result.AvailabilityCreated,
	))
}

// InitDatabaseCommands registers the migrate and seed commands
func InitDatabaseCommands(rootCmd *cobra.Command) error {
	handler, err := NewDatabaseCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create database command handler %w", err)
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run:   handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load users and therapist profiles from a YAML seed file",
		Run:   handler.SeedCmd,
	}
	seedCmd.Flags().StringP("file", "f", "configs/seed.yaml", "Path to the seed file")
	rootCmd.AddCommand(seedCmd)

	return nil
}
