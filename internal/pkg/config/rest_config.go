package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file settings,
// e.g. MENTARA_DATABASE_DSN overrides database.dsn.
const EnvPrefix = "MENTARA"

// RestConfig is the complete configuration of the REST API process
type RestConfig struct {
	Port        string   `mapstructure:"port" validate:"required,numeric"`
	Environment string   `mapstructure:"environment" validate:"required,oneof=development staging production test"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	Database   DatabaseSettings   `mapstructure:"database"`
	Logger     LoggerSettings     `mapstructure:"logger"`
	Auth       AuthSettings       `mapstructure:"auth"`
	Email      EmailSettings      `mapstructure:"email"`
	Events     EventSettings      `mapstructure:"events"`
	Storage    StorageSettings    `mapstructure:"storage"`
	RateLimit  RateLimitSettings  `mapstructure:"rate_limit"`
	Monitoring MonitoringSettings `mapstructure:"monitoring"`
	Scheduler  SchedulerSettings  `mapstructure:"scheduler"`
	Messaging  MessagingSettings  `mapstructure:"messaging"`
	Grpc       GrpcSettings       `mapstructure:"grpc"`
}

// InitializeRestConfig loads the REST configuration from the given YAML file.
// A .env file next to the working directory or the config file is loaded first when present.
func InitializeRestConfig(path string) (*RestConfig, error) {
	loadDotEnv(path)

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the top level fields and every nested settings block
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(struct {
		Port        string `validate:"required,numeric"`
		Environment string `validate:"required,oneof=development staging production test"`
	}{c.Port, c.Environment}); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}

	checks := []struct {
		name string
		fn   func() error
	}{
		{"database", c.Database.Validate},
		{"logger", c.Logger.Validate},
		{"auth", c.Auth.Validate},
		{"email", c.Email.Validate},
		{"events", c.Events.Validate},
		{"storage", c.Storage.Validate},
		{"rate_limit", c.RateLimit.Validate},
		{"monitoring", c.Monitoring.Validate},
		{"scheduler", c.Scheduler.Validate},
		{"messaging", c.Messaging.Validate},
		{"grpc", c.Grpc.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("invalid %s settings: %w", check.name, err)
		}
	}
	return nil
}

// IsProduction reports whether the process runs with production settings
func (c *RestConfig) IsProduction() bool {
	return c.Environment == "production"
}

func loadDotEnv(configPath string) {
	candidates := []string{".env", filepath.Join(filepath.Dir(configPath), ".env")}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			// Existing environment variables win over .env entries.
			_ = godotenv.Load(candidate)
		}
	}
}

func setDefaults(v *viper.Viper) {
	auth := DefaultAuthSettings()

	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("cors_origins", []string{"*"})

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "mentara.db")
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 30)

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.redact_keys", DefaultRedactKeys)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", auth.Issuer)
	v.SetDefault("auth.access_token_ttl", auth.AccessTokenTTL)
	v.SetDefault("auth.refresh_token_ttl", auth.RefreshTokenTTL)
	v.SetDefault("auth.bcrypt_cost", auth.BcryptCost)
	v.SetDefault("auth.max_login_attempts", auth.MaxLoginAttempts)
	v.SetDefault("auth.lockout_duration", auth.LockoutDuration)
	v.SetDefault("auth.verification_ttl", auth.VerificationTTL)
	v.SetDefault("auth.password_reset_ttl", auth.PasswordResetTTL)
	v.SetDefault("auth.frontend_url", auth.FrontendURL)
	v.SetDefault("auth.secure_cookies", false)
	v.SetDefault("auth.access_cookie_domain", "")

	v.SetDefault("email.sender", EmailSenderLog)
	v.SetDefault("email.from_address", "no-reply@mentara.app")
	v.SetDefault("email.from_name", "Mentara")
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.support_url", "https://mentara.app/support")

	v.SetDefault("events.driver", EventDriverMemory)
	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.subject_prefix", "mentara.events")
	v.SetDefault("events.client_name", "mentara-api")

	v.SetDefault("storage.base_path", "./data/uploads")
	v.SetDefault("storage.max_file_size_bytes", 10<<20)
	v.SetDefault("storage.allowed_extensions", []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx"})

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.auth_requests_per_second", 5)
	v.SetDefault("rate_limit.auth_burst", 10)

	v.SetDefault("monitoring.enabled", true)
	v.SetDefault("monitoring.sample_interval", 5*time.Second)
	v.SetDefault("monitoring.max_metrics", 1000)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.meeting_reminders", "@every 15m")
	v.SetDefault("scheduler.token_cleanup", "@hourly")
	v.SetDefault("scheduler.overdue_worksheets", "@every 30m")

	v.SetDefault("messaging.encryption_key", "")

	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.port", "9090")
	v.SetDefault("grpc.check_interval", 10*time.Second)
}
