package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// RefreshTokenBytes is the entropy of refresh and one-time tokens
const RefreshTokenBytes = 32

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// NewOpaqueToken returns a random hex token and its SHA-256 hash
func NewOpaqueToken() (token string, hash string, err error) {
	buf := make([]byte, RefreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, HashToken(token), nil
}

// HashToken returns the hex SHA-256 digest stored in place of a token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GeneratePassword returns a random password of length characters that contains a letter and a digit
func GeneratePassword(length int) (string, error) {
	if length < 2 {
		return "", fmt.Errorf("password length must be at least 2")
	}
	max := big.NewInt(int64(len(passwordAlphabet)))
	for {
		out := make([]byte, length)
		for i := range out {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				return "", fmt.Errorf("failed to generate password: %w", err)
			}
			out[i] = passwordAlphabet[n.Int64()]
		}
		if hasLetterAndDigit(out) {
			return string(out), nil
		}
	}
}

func hasLetterAndDigit(b []byte) bool {
	var letter, digit bool
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
			digit = true
		default:
			letter = true
		}
	}
	return letter && digit
}
