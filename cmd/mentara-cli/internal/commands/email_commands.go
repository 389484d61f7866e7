package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/email"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// EmailCommandHandler encapsulates email template previews
type EmailCommandHandler struct {
	logger logger.Logger
}

// NewEmailCommandHandler initializes and returns an EmailCommandHandler
func NewEmailCommandHandler() (*EmailCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &EmailCommandHandler{logger: loggerInstance}, nil
}

// SampleData returns representative template data for name, or false when the template is unknown
func SampleData(name string) (interface{}, bool) {
	when := email.FormatWhen(time.Date(2025, 3, 14, 2, 0, 0, 0, time.UTC), nil)
	meeting := email.MeetingNotice{
		Name:       "Jane Doe",
		OtherParty: "Dr. Maria Santos",
		Title:      "Weekly session",
		When:       when,
		Duration:   60,
		MeetingURL: "https://meet.mentara.app/session/preview",
	}

	switch name {
	case notifications.TemplateTherapistApproved:
		return email.ApplicationDecision{
			Name:        "Maria Santos",
			Credentials: &email.Credentials{Email: "maria@example.com", Password: "Preview123"},
			AdminNotes:  "Welcome aboard.",
			LoginURL:    "http://localhost:3000/auth/sign-in",
		}, true
	case notifications.TemplateTherapistRejected:
		return email.ApplicationDecision{
			Name:       "Maria Santos",
			AdminNotes: "The license number could not be verified.",
		}, true
	case notifications.TemplateEmailVerification:
		return email.TokenLink{
			Name:      "Jane Doe",
			Link:      "http://localhost:3000/auth/verify-email?token=preview",
			ExpiresIn: email.FormatTTL(24 * time.Hour),
		}, true
	case notifications.TemplatePasswordReset:
		return email.TokenLink{
			Name:      "Jane Doe",
			Link:      "http://localhost:3000/auth/reset-password?token=preview",
			ExpiresIn: email.FormatTTL(time.Hour),
		}, true
	case notifications.TemplateMeetingConfirmation, notifications.TemplateMeetingReminder:
		return meeting, true
	case notifications.TemplateMeetingCancelled:
		meeting.Reason = "The therapist is unavailable"
		return meeting, true
	}
	return nil, false
}

// PreviewCmd renders a template pair with sample data
func (commandHandler *EmailCommandHandler) PreviewCmd(cmd *cobra.Command, _ []string) {
	name, err := cmd.Flags().GetString("template")
	if err != nil {
		commandHandler.logger.Error("invalid template flag ", err)
		return
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		commandHandler.logger.Error("invalid output-dir flag ", err)
		return
	}

	data, ok := SampleData(name)
	if !ok {
		commandHandler.logger.Error("unknown template ", name, "; known templates: ", email.TemplateNames)
		return
	}

	supportURL := "https://mentara.app/support"
	if cfg, err := loadConfig(cmd); err == nil && cfg.Email.SupportURL != "" {
		supportURL = cfg.Email.SupportURL
	}
	renderer, err := email.NewRenderer(supportURL)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	rendered, err := renderer.Render(name, data)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if outputDir == "" {
		writePreview(cmd.OutOrStdout(), rendered)
		return
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	htmlPath := filepath.Join(outputDir, name+".html")
	if err := os.WriteFile(htmlPath, []byte(rendered.HTML), 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	textPath := filepath.Join(outputDir, name+".txt")
	if err := os.WriteFile(textPath, []byte(rendered.Text), 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Preview of ", name, " saved to ", htmlPath, " and ", textPath)
}

func writePreview(w io.Writer, rendered *notifications.Rendered) {
	fmt.Fprintf(w, "Subject: %s\n\n--- text ---\n%s\n\n--- html ---\n%s\n", rendered.Subject, rendered.Text, rendered.HTML)
}

// InitEmailCommands registers the email command group
func InitEmailCommands(rootCmd *cobra.Command) error {
	handler, err := NewEmailCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create email command handler %w", err)
	}

	var emailCmd = &cobra.Command{
		Use:   "email",
		Short: "Work with transactional email templates",
	}

	var previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Render a template with sample data",
		Run:   handler.PreviewCmd,
	}
	previewCmd.Flags().StringP("template", "t", notifications.TemplateMeetingConfirmation, "Template name")
	previewCmd.Flags().StringP("output-dir", "o", "", "Directory for the .html and .txt files; stdout when empty")
	emailCmd.AddCommand(previewCmd)

	rootCmd.AddCommand(emailCmd)
	return nil
}
