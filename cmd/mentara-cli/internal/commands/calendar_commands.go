package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/calendar"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// CalendarCommandHandler encapsulates iCalendar exports
type CalendarCommandHandler struct {
	exporter meetings.CalendarExporter
	logger   logger.Logger
}

// NewCalendarCommandHandler initializes and returns a CalendarCommandHandler
func NewCalendarCommandHandler() (*CalendarCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &CalendarCommandHandler{
		exporter: calendar.NewICSExporter(),
		logger:   loggerInstance,
	}, nil
}

// ExportCmd writes a meeting as an .ics file, or to stdout when no output file is given
func (commandHandler *CalendarCommandHandler) ExportCmd(cmd *cobra.Command, _ []string) {
	meetingID, err := cmd.Flags().GetString("meeting-id")
	if err != nil {
		commandHandler.logger.Error("invalid meeting-id flag ", err)
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}

	db, _, err := openDatabase(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() { _ = persistence.CloseDB(db) }()

	meetingRepo, err := persistence.NewGormMeetingRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	userRepo, err := persistence.NewGormUserRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx := context.Background()
	meeting, err := meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	details := &meetings.Details{
		Meeting:       meeting,
		DateTime:      meeting.StartTime,
		TherapistName: commandHandler.displayName(ctx, userRepo, meeting.TherapistID),
		ClientName:    commandHandler.displayName(ctx, userRepo, meeting.ClientID),
	}
	content, err := commandHandler.exporter.Export(details)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if outputFilePath == "" {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			commandHandler.logger.Error(err)
		}
		return
	}
	if err := os.WriteFile(filepath.Clean(outputFilePath), content, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Calendar file saved to ", outputFilePath)
}

// displayName returns the full name of userID, or an empty string when the account is gone
func (commandHandler *CalendarCommandHandler) displayName(ctx context.Context, userRepo users.UserRepository, userID string) string {
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		commandHandler.logger.Warn("Could not load participant ", userID, ": ", err)
		return ""
	}
	return user.FullName()
}

// InitCalendarCommands registers the calendar command group
func InitCalendarCommands(rootCmd *cobra.Command) error {
	handler, err := NewCalendarCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create calendar command handler %w", err)
	}

	var calendarCmd = &cobra.Command{
		Use:   "calendar",
		Short: "Export sessions as iCalendar files",
	}

	var exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export one meeting as an .ics file",
		Run:   handler.ExportCmd,
	}
	exportCmd.Flags().StringP("meeting-id", "", "", "ID of the meeting to export")
	exportCmd.Flags().StringP("output-file", "o", "", "Path of the .ics file; stdout when empty")
	_ = exportCmd.MarkFlagRequired("meeting-id")
	calendarCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(calendarCmd)
	return nil
}
