package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// generatedPasswordLength is used when no password is given on the command line
const generatedPasswordLength = 16

// AdminCommandHandler encapsulates staff account operations
type AdminCommandHandler struct {
	logger logger.Logger
}

// NewAdminCommandHandler initializes and returns an AdminCommandHandler
func NewAdminCommandHandler() (*AdminCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &AdminCommandHandler{logger: loggerInstance}, nil
}

// StaffAccount describes an administrator or moderator to create
type StaffAccount struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// NewStaffUser builds a verified, active staff user. The password is checked for strength before hashing.
func NewStaffUser(account StaffAccount, hasher users.PasswordHasher, now time.Time) (*users.User, error) {
	if account.Role != users.RoleAdmin && account.Role != users.RoleModerator {
		return nil, apperr.Validation(fmt.Sprintf("role must be %s or %s", users.RoleAdmin, users.RoleModerator), nil)
	}
	if err := users.ValidatePasswordStrength(account.Password); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(account.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		ID:            uuid.NewString(),
		Email:         users.NormalizeEmail(account.Email),
		PasswordHash:  hash,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		Role:          account.Role,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAdminCmd creates an administrator or moderator account
func (commandHandler *AdminCommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) {
	var account StaffAccount
	var err error
	if account.Email, err = cmd.Flags().GetString("email"); err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}
	if account.Password, err = cmd.Flags().GetString("password"); err != nil {
		commandHandler.logger.Error("invalid password flag ", err)
		return
	}
	if account.FirstName, err = cmd.Flags().GetString("first-name"); err != nil {
		commandHandler.logger.Error("invalid first-name flag ", err)
		return
	}
	if account.LastName, err = cmd.Flags().GetString("last-name"); err != nil {
		commandHandler.logger.Error("invalid last-name flag ", err)
		return
	}
	if account.Role, err = cmd.Flags().GetString("role"); err != nil {
		commandHandler.logger.Error("invalid role flag ", err)
		return
	}

	generated := account.Password == ""
	if generated {
		if account.Password, err = authinfra.GeneratePassword(generatedPasswordLength); err != nil {
			commandHandler.logger.Error(err)
			return
		}
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
	hasher, err := authinfra.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx := context.Background()
	exists, err := userRepo.ExistsByEmail(ctx, account.Email)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	if exists {
		commandHandler.logger.Error("an account with email ", account.Email, " already exists")
		return
	}

	user, err := NewStaffUser(account, hasher, time.Now())
	if err != nil {
		commandHandler.logger.Error(apperr.MessageOf(err))
		return
	}
	if err := userRepo.Create(ctx, user); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Created ", user.Role, " ", user.Email, " with ID ", user.ID)
	if generated {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated password: %s\n", account.Password)
	}
}

// InitAdminCommands registers the admin command group
func InitAdminCommands(rootCmd *cobra.Command) error {
	handler, err := NewAdminCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create admin command handler %w", err)
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage staff accounts",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an administrator or moderator account",
		Run:   handler.CreateAdminCmd,
	}
	createCmd.Flags().StringP("email", "", "", "Email address of the account")
	createCmd.Flags().StringP("password", "", "", "Password; a random one is generated and printed when empty")
	createCmd.Flags().StringP("first-name", "", "", "First name")
	createCmd.Flags().StringP("last-name", "", "", "Last name")
	createCmd.Flags().StringP("role", "", users.RoleAdmin, "Role: admin or moderator")
	_ = createCmd.MarkFlagRequired("email")
	adminCmd.AddCommand(createCmd)

	rootCmd.AddCommand(adminCmd)
	return nil
}
