package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/email"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/storage"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// therapistApplicationService implements the ApplicationService interface
type therapistApplicationService struct {
	therapists  therapists.TherapistRepository
	files       therapists.TherapistFileRepository
	users       users.UserRepository
	hasher      users.PasswordHasher
	store       storage.DocumentStore
	transactor  shared.Transactor
	events      eventPublisher
	email       emailSender
	frontendURL string
	now         Clock
	logger      logger.Logger
}

// NewTherapistApplicationService creates a new instance of ApplicationService
func NewTherapistApplicationService(
	therapistRepo therapists.TherapistRepository,
	fileRepo therapists.TherapistFileRepository,
	userRepo users.UserRepository,
	hasher users.PasswordHasher,
	store storage.DocumentStore,
	transactor shared.Transactor,
	bus events.Publisher,
	mailer notifications.Mailer,
	renderer notifications.TemplateRenderer,
	frontendURL string,
	logger logger.Logger,
) (therapists.ApplicationService, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	return &therapistApplicationService{
		therapists:  therapistRepo,
		files:       fileRepo,
		users:       userRepo,
		hasher:      hasher,
		store:       store,
		transactor:  transactor,
		events:      eventPublisher{bus: bus, logger: logger},
		email:       emailSender{mailer: mailer, renderer: renderer, logger: logger},
		frontendURL: frontendURL,
		now:         utcNow,
		logger:      logger,
	}, nil
}

// SubmitApplication creates the applicant account, the pending therapist row and the uploaded documents
func (s *therapistApplicationService) SubmitApplication(ctx context.Context, input *therapists.ApplicationInput, documents []therapists.ApplicationDocument) (*therapists.SubmittedApplication, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: application data is required", nil)
	}
	input.Email = users.NormalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Email already exists")
	}

	placeholder, err := authinfra.GeneratePassword(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := s.hasher.Hash(placeholder)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &users.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         users.RoleClient,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	therapist := input.NewTherapist(user.ID, now)

	var stored []*storage.StoredFile
	var uploaded []*therapists.TherapistFile
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		if err := s.therapists.Create(ctx, therapist); err != nil {
			return err
		}
		for _, doc := range documents {
			if doc.File == nil {
				continue
			}
			saved, err := s.store.Save(ctx, therapist.UserID, doc.File)
			if err != nil {
				return err
			}
			stored = append(stored, saved)

			file := &therapists.TherapistFile{
				ID:          uuid.NewString(),
				TherapistID: therapist.UserID,
				FileName:    saved.FileName,
				Purpose:     therapists.PurposeFromFile(doc.DeclaredType, saved.FileName),
				ContentType: saved.ContentType,
				Size:        saved.Size,
				StoragePath: saved.Path,
				UploadedAt:  now,
			}
			if err := s.files.Create(ctx, file); err != nil {
				return err
			}
			uploaded = append(uploaded, file)
		}
		return nil
	})
	if err != nil {
		s.discard(ctx, stored)
		return nil, apperr.PassThrough("failed to submit application", err)
	}

	s.logger.Info("Therapist application submitted for ", user.ID, " with ", len(uploaded), " documents")
	s.events.publish(ctx, events.TherapistApplicationSubmitted, user.ID, map[string]interface{}{
		"email":         user.Email,
		"documentCount": len(uploaded),
	})

	if uploaded == nil {
		uploaded = []*therapists.TherapistFile{}
	}
	return &therapists.SubmittedApplication{
		Application:   &therapists.Application{Therapist: therapist, User: user, Files: uploaded},
		UploadedFiles: uploaded,
	}, nil
}

// GetAllApplications pages through applications, newest submission first
func (s *therapistApplicationService) GetAllApplications(ctx context.Context, query *therapists.ApplicationQuery) (*therapists.ApplicationList, error) {
	if query == nil {
		query = &therapists.ApplicationQuery{}
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	page := shared.NewPagination(query.Page, query.Limit, 10)
	list, total, err := s.therapists.ListApplications(ctx, query.Status, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	ids := make([]string, len(list))
	for i, t := range list {
		ids[i] = t.UserID
	}
	accounts, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	applications := make([]*therapists.Application, 0, len(list))
	for _, t := range list {
		files, err := s.files.ListByTherapist(ctx, t.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list application files: %w", err)
		}
		applications = append(applications, &therapists.Application{
			Therapist: t,
			User:      accounts[t.UserID],
			Files:     files,
		})
	}

	return &therapists.ApplicationList{
		Applications: applications,
		TotalCount:   total,
		Page:         page.Page,
		TotalPages:   page.TotalPages(total),
	}, nil
}

func (s *therapistApplicationService) GetApplicationByID(ctx context.Context, applicationID string) (*therapists.Application, error) {
	if err := requireID("applicationId", applicationID); err != nil {
		return nil, err
	}
	therapist, err := s.therapists.GetByUserID(ctx, applicationID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Application not found")
		}
		return nil, err
	}
	user, err := s.users.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListByTherapist(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list application files: %w", err)
	}
	return &therapists.Application{Therapist: therapist, User: user, Files: files}, nil
}

// UpdateApplicationStatus records an administrator's decision and notifies the applicant.
// Approval promotes the account to an active therapist with a temporary password.
func (s *therapistApplicationService) UpdateApplicationStatus(ctx context.Context, applicationID string, update *therapists.StatusUpdate, adminID string) (*therapists.StatusUpdateResult, error) {
	if update == nil {
		return nil, apperr.Validation("validation failed: status is required", nil)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	application, err := s.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	therapist, user := application.Therapist, application.User

	now := s.now()
	var credentials *therapists.Credentials
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		therapist.Status = update.Status
		therapist.AdminNotes = update.AdminNotes
		therapist.ProcessingDate = &now
		therapist.ProcessedBy = adminID
		therapist.UpdatedAt = now
		if err := s.therapists.Update(ctx, therapist); err != nil {
			return err
		}

		if update.Status != therapists.StatusApproved {
			return nil
		}
		password, err := authinfra.GeneratePassword(therapists.TemporaryPasswordLength)
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
		user.Role = users.RoleTherapist
		user.IsActive = true
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		credentials = &therapists.Credentials{Email: user.Email, Password: password}
		return nil
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to update application status", err)
	}

	s.logger.Info("Application ", applicationID, " set to ", update.Status, " by ", adminID)
	s.notifyDecision(ctx, user, update, credentials)
	s.events.publish(ctx, events.TherapistApplicationReviewed, applicationID, map[string]interface{}{
		"status":     update.Status,
		"adminNotes": update.AdminNotes,
		"reviewedBy": adminID,
	})

	return &therapists.StatusUpdateResult{Application: application, Credentials: credentials}, nil
}

// DownloadApplicationFile returns a document of the application and its content
func (s *therapistApplicationService) DownloadApplicationFile(ctx context.Context, applicationID, fileID string) (*therapists.TherapistFile, []byte, error) {
	if err := requireID("fileId", fileID); err != nil {
		return nil, nil, err
	}
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil, apperr.NotFound("File not found")
		}
		return nil, nil, err
	}
	if file.TherapistID != applicationID {
		return nil, nil, apperr.NotFound("File not found")
	}

	content, err := s.store.Open(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, apperr.PassThrough("failed to read file", err)
	}
	return file, content, nil
}

func (s *therapistApplicationService) CalculateProgress(values map[string]interface{}, documents map[string]bool) therapists.ApplicationProgress {
	return therapists.CalculateApplicationProgress(values, documents)
}

func (s *therapistApplicationService) notifyDecision(ctx context.Context, user *users.User, update *therapists.StatusUpdate, credentials *therapists.Credentials) {
	data := email.ApplicationDecision{
		Name:       user.FullName(),
		AdminNotes: update.AdminNotes,
		LoginURL:   frontendLink(s.frontendURL, users.SignInPath, ""),
	}

	switch update.Status {
	case therapists.StatusApproved:
		if credentials != nil {
			data.Credentials = &email.Credentials{Email: credentials.Email, Password: credentials.Password}
		}
		s.email.send(ctx, user.Email, notifications.TemplateTherapistApproved, data)
	case therapists.StatusRejected:
		s.email.send(ctx, user.Email, notifications.TemplateTherapistRejected, data)
	}
}

// discard removes documents saved before a failed submission
func (s *therapistApplicationService) discard(ctx context.Context, stored []*storage.StoredFile) {
	for _, f := range stored {
		if err := s.store.Delete(ctx, f.Path); err != nil {
			s.logger.Warn("Failed to remove orphaned document ", f.Path, ": ", err)
		}
	}
}
