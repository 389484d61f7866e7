// Package main is the entry point for the mentara-cli application.
// It registers the operator sub-commands (database, accounts, calendar, email)
// and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Wetooa/mentara-sub026/cmd/mentara-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "mentara-cli",
		Short: "Mentara operator tool",
		Long: `mentara-cli is a command-line tool for operating a Mentara deployment.
It migrates and seeds the database, creates staff accounts, exports sessions
as iCalendar files and previews the transactional email templates.

The configuration file is read from --config, falling back to CONFIG_PATH.
Environment variables prefixed with MENTARA_ override file settings.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitDatabaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize database commands: %w", err)
	}

	if err := commands.InitAdminCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize admin commands: %w", err)
	}

	if err := commands.InitCalendarCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize calendar commands: %w", err)
	}

	if err := commands.InitEmailCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize email commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
