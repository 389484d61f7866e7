package config

import (
	"encoding/hex"
	"fmt"
)

// MessagingSettings configures message storage
type MessagingSettings struct {
	// EncryptionKey is a hex encoded 32 byte key used to seal message content at rest.
	EncryptionKey string `mapstructure:"encryption_key"`
}

// Key decodes the configured encryption key
func (s *MessagingSettings) Key() ([]byte, error) {
	key, err := hex.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key must be hex encoded: %w", err)
	}
	return key, nil
}

// Validate checks that the encryption key decodes to 32 bytes
func (s *MessagingSettings) Validate() error {
	key, err := s.Key()
	if err != nil {
		return err
	}
	if len(key) != 32 {
		return fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return nil
}
