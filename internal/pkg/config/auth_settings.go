package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures token issuance, password hashing and account lockout
type AuthSettings struct {
	JWTSecret          string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer             string        `mapstructure:"issuer" validate:"required"`
	AccessTokenTTL     time.Duration `mapstructure:"access_token_ttl" validate:"required"`
	RefreshTokenTTL    time.Duration `mapstructure:"refresh_token_ttl" validate:"required"`
	BcryptCost         int           `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	MaxLoginAttempts   int           `mapstructure:"max_login_attempts" validate:"gte=1"`
	LockoutDuration    time.Duration `mapstructure:"lockout_duration" validate:"required"`
	VerificationTTL    time.Duration `mapstructure:"verification_ttl" validate:"required"`
	PasswordResetTTL   time.Duration `mapstructure:"password_reset_ttl" validate:"required"`
	FrontendURL        string        `mapstructure:"frontend_url" validate:"required,url"`
	SecureCookies      bool          `mapstructure:"secure_cookies"`
	AccessCookieDomain string        `mapstructure:"access_cookie_domain"`
}

// DefaultAuthSettings returns the settings used when the config file leaves auth values empty
func DefaultAuthSettings() AuthSettings {
	return AuthSettings{
		Issuer:           "mentara-api",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		BcryptCost:       12,
		MaxLoginAttempts: 5,
		LockoutDuration:  15 * time.Minute,
		VerificationTTL:  24 * time.Hour,
		PasswordResetTTL: time.Hour,
		FrontendURL:      "http://localhost:3000",
	}
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	if s.RefreshTokenTTL <= s.AccessTokenTTL {
		return fmt.Errorf("refresh token ttl must be longer than access token ttl")
	}
	return nil
}
