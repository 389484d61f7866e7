package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document accepted by the seed command
type SeedFile struct {
	Users      []SeedUser      `yaml:"users"`
	Therapists []SeedTherapist `yaml:"therapists"`
}

// SeedUser is an account to create
type SeedUser struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Role      string `yaml:"role"`
}

// SeedTherapist is the therapist profile of a seeded therapist account
type SeedTherapist struct {
	Email             string             `yaml:"email"`
	Status            string             `yaml:"status"`
	Province          string             `yaml:"province"`
	Timezone          string             `yaml:"timezone"`
	ProviderType      string             `yaml:"providerType"`
	PracticeStartDate string             `yaml:"practiceStartDate"`
	AreasOfExpertise  []string           `yaml:"areasOfExpertise"`
	LanguagesOffered  []string           `yaml:"languagesOffered"`
	AcceptTypes       []string           `yaml:"acceptTypes"`
	SessionLength     string             `yaml:"sessionLength"`
	HourlyRate        float64            `yaml:"hourlyRate"`
	Availability      []SeedAvailability `yaml:"availability"`
}

// SeedAvailability is one weekly availability window
type SeedAvailability struct {
	Day   string `yaml:"day"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// SeedResult counts what a seed run created and skipped
type SeedResult struct {
	UsersCreated        int
	UsersSkipped        int
	TherapistsCreated   int
	TherapistsSkipped   int
	AvailabilityCreated int
}

// ParseSeedFile decodes and checks a seed document. Every therapist entry must reference a
// seeded user with the therapist role.
func ParseSeedFile(data []byte) (*SeedFile, error) {
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	roles := make(map[string]string, len(file.Users))
	for i := range file.Users {
		u := &file.Users[i]
		u.Email = users.NormalizeEmail(u.Email)
		if u.Email == "" {
			return nil, fmt.Errorf("user %d: email is required", i+1)
		}
		if u.Role == "" {
			u.Role = users.RoleClient
		}
		if !users.IsValidRole(u.Role) {
			return nil, fmt.Errorf("user %s: unknown role %q", u.Email, u.Role)
		}
		if err := users.ValidatePasswordStrength(u.Password); err != nil {
			return nil, fmt.Errorf("user %s: %s", u.Email, apperr.MessageOf(err))
		}
		if _, dup := roles[u.Email]; dup {
			return nil, fmt.Errorf("user %s is listed twice", u.Email)
		}
		roles[u.Email] = u.Role
	}

	for i := range file.Therapists {
		th := &file.Therapists[i]
		th.Email = users.NormalizeEmail(th.Email)
		if roles[th.Email] != users.RoleTherapist {
			return nil, fmt.Errorf("therapist %s must be seeded as a user with the therapist role", th.Email)
		}
		if th.Status == "" {
			th.Status = therapists.StatusApproved
		}
		for j := range th.Availability {
			th.Availability[j].Day = strings.ToUpper(strings.TrimSpace(th.Availability[j].Day))
		}
	}
	return &file, nil
}

// Seeder writes a SeedFile through the repositories
type Seeder struct {
	users        users.UserRepository
	therapists   therapists.TherapistRepository
	availability meetings.AvailabilityRepository
	hasher       users.PasswordHasher
	logger       logger.Logger
	now          func() time.Time
}

// NewSeeder creates a Seeder
func NewSeeder(
	userRepo users.UserRepository,
	therapistRepo therapists.TherapistRepository,
	availabilityRepo meetings.AvailabilityRepository,
	hasher users.PasswordHasher,
	logger logger.Logger,
) *Seeder {
	return &Seeder{
		users:        userRepo,
		therapists:   therapistRepo,
		availability: availabilityRepo,
		hasher:       hasher,
		logger:       logger,
		now:          time.Now,
	}
}

// Seed creates the users and therapist profiles of file. Existing accounts and profiles are left untouched.
func (s *Seeder) Seed(ctx context.Context, file *SeedFile) (*SeedResult, error) {
	result := &SeedResult{}
	ids := make(map[string]string, len(file.Users))

	for _, u := range file.Users {
		existing, err := s.users.GetByEmail(ctx, u.Email)
		if err == nil {
			ids[u.Email] = existing.ID
			result.UsersSkipped++
			s.logger.Info("User ", u.Email, " already exists, skipping")
			continue
		}
		if apperr.KindOf(err) != apperr.KindNotFound {
			return nil, err
		}

		user, err := s.newUser(u)
		if err != nil {
			return nil, err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		ids[u.Email] = user.ID
		result.UsersCreated++
	}

	for _, th := range file.Therapists {
		userID := ids[th.Email]
		if _, err := s.therapists.GetByUserID(ctx, userID); err == nil {
			result.TherapistsSkipped++
			continue
		} else if apperr.KindOf(err) != apperr.KindNotFound {
			return nil, err
		}

		therapist, err := s.newTherapist(userID, th)
		if err != nil {
			return nil, err
		}
		if err := s.therapists.Create(ctx, therapist); err != nil {
			return nil, fmt.Errorf("failed to create therapist %s: %w", th.Email, err)
		}
		result.TherapistsCreated++

		for _, window := range th.Availability {
			availability := &meetings.Availability{
				ID:          uuid.NewString(),
				TherapistID: userID,
				DayOfWeek:   window.Day,
				StartTime:   window.Start,
				EndTime:     window.End,
				IsAvailable: true,
			}
			if err := availability.Validate(); err != nil {
				return nil, fmt.Errorf("therapist %s: %w", th.Email, err)
			}
			if err := s.availability.Create(ctx, availability); err != nil {
				return nil, fmt.Errorf("failed to create availability for %s: %w", th.Email, err)
			}
			result.AvailabilityCreated++
		}
	}
	return result, nil
}

func (s *Seeder) newUser(u SeedUser) (*users.User, error) {
	hash, err := s.hasher.Hash(u.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password of %s: %w", u.Email, err)
	}
	now := s.now().UTC()
	user := &users.User{
		ID:            uuid.NewString(),
		Email:         u.Email,
		PasswordHash:  hash,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("user %s: %w", u.Email, err)
	}
	return user, nil
}

func (s *Seeder) newTherapist(userID string, th SeedTherapist) (*therapists.Therapist, error) {
	now := s.now().UTC()
	therapist := &therapists.Therapist{
		UserID:           userID,
		Province:         th.Province,
		Timezone:         th.Timezone,
		ProviderType:     th.ProviderType,
		AreasOfExpertise: th.AreasOfExpertise,
		LanguagesOffered: th.LanguagesOffered,
		AcceptTypes:      th.AcceptTypes,
		SessionLength:    th.SessionLength,
		HourlyRate:       th.HourlyRate,
		Status:           th.Status,
		SubmissionDate:   now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if th.PracticeStartDate != "" {
		start, err := time.Parse("2006-01-02", th.PracticeStartDate)
		if err != nil {
			return nil, fmt.Errorf("therapist %s: practiceStartDate must be YYYY-MM-DD: %w", th.Email, err)
		}
		therapist.PracticeStartDate = &start
	}
	if th.Status == therapists.StatusApproved {
		therapist.ProcessingDate = &now
	}
	if err := therapist.Validate(); err != nil {
		return nil, fmt.Errorf("therapist %s: %w", th.Email, err)
	}
	return therapist, nil
}
