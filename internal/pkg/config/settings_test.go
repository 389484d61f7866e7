//go:build unit
// +build unit

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAuthSettings() AuthSettings {
	s := DefaultAuthSettings()
	s.JWTSecret = strings.Repeat("s", 32)
	return s
}

func TestAuthSettingsValidation(t *testing.T) {
	t.Run("defaults with secret", func(t *testing.T) {
		s := validAuthSettings()
		require.NoError(t, s.Validate())
	})

	t.Run("short secret", func(t *testing.T) {
		s := validAuthSettings()
		s.JWTSecret = "short"
		require.Error(t, s.Validate())
	})

	t.Run("refresh shorter than access", func(t *testing.T) {
		s := validAuthSettings()
		s.RefreshTokenTTL = 30 * time.Minute
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refresh token ttl")
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		s := validAuthSettings()
		s.BcryptCost = 40
		require.Error(t, s.Validate())
	})
}

func TestEmailSettingsValidation(t *testing.T) {
	tests := []struct {
		name     string
		settings EmailSettings
		wantErr  bool
	}{
		{"log sender", EmailSettings{Sender: EmailSenderLog, FromAddress: "no-reply@mentara.app"}, false},
		{"smtp sender", EmailSettings{Sender: EmailSenderSMTP, FromAddress: "no-reply@mentara.app", SMTPHost: "smtp.mentara.app", SMTPPort: 587}, false},
		{"smtp without host", EmailSettings{Sender: EmailSenderSMTP, FromAddress: "no-reply@mentara.app", SMTPPort: 587}, true},
		{"smtp bad port", EmailSettings{Sender: EmailSenderSMTP, FromAddress: "no-reply@mentara.app", SMTPHost: "smtp", SMTPPort: 0}, true},
		{"invalid from", EmailSettings{Sender: EmailSenderLog, FromAddress: "nope"}, true},
		{"unknown sender", EmailSettings{Sender: "carrier-pigeon", FromAddress: "no-reply@mentara.app"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEventSettingsValidation(t *testing.T) {
	require.NoError(t, (&EventSettings{Driver: EventDriverMemory}).Validate())
	require.NoError(t, (&EventSettings{Driver: EventDriverNATS, NATSURL: "nats://localhost:4222"}).Validate())
	require.Error(t, (&EventSettings{Driver: EventDriverNATS}).Validate())
	require.Error(t, (&EventSettings{Driver: "kafka"}).Validate())
}

func TestStorageSettingsValidation(t *testing.T) {
	valid := StorageSettings{BasePath: "/tmp/uploads", MaxFileSizeBytes: 1024, AllowedExtensions: []string{".pdf"}}
	require.NoError(t, valid.Validate())

	noDot := valid
	noDot.AllowedExtensions = []string{"pdf"}
	require.Error(t, noDot.Validate())

	zeroSize := valid
	zeroSize.MaxFileSizeBytes = 0
	require.Error(t, zeroSize.Validate())
}

func TestMessagingSettingsValidation(t *testing.T) {
	valid := MessagingSettings{EncryptionKey: strings.Repeat("ab", 32)}
	require.NoError(t, valid.Validate())

	key, err := valid.Key()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	require.Error(t, (&MessagingSettings{EncryptionKey: "zz"}).Validate())
	require.Error(t, (&MessagingSettings{EncryptionKey: strings.Repeat("ab", 16)}).Validate())
}
