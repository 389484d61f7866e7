package users

import (
	"net"
	"strings"
	"time"
)

// RefreshToken is a persisted session. Only the SHA-256 hash of the token is stored.
type RefreshToken struct {
	ID         string    `validate:"required,uuid4"`
	UserID     string    `validate:"required,uuid4"`
	TokenHash  string    `validate:"required,len=64,hexadecimal"`
	ExpiresAt  time.Time `validate:"required"`
	RevokedAt  *time.Time
	IPAddress  string
	UserAgent  string
	DeviceName string
	Location   string
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

// IsActive reports whether the session can still be used at now
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

// UserToken is a one-time token for email verification or password reset
type UserToken struct {
	ID        string
	UserID    string
	Purpose   string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsUsable reports whether the token is unused and unexpired at now
func (t *UserToken) IsUsable(now time.Time) bool {
	return t.UsedAt == nil && t.ExpiresAt.After(now)
}

// DeviceInfo describes the client a session was opened from
type DeviceInfo struct {
	IPAddress  string
	UserAgent  string
	DeviceName string
	Location   string
}

// NewDeviceInfo derives device name and location from the raw request values
func NewDeviceInfo(ipAddress, userAgent string) DeviceInfo {
	return DeviceInfo{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		DeviceName: DeviceNameFromUserAgent(userAgent),
		Location:   LocationFromIP(ipAddress),
	}
}

// DeviceNameFromUserAgent maps a user agent to a coarse device label
func DeviceNameFromUserAgent(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Android"):
		return "Android Device"
	case strings.Contains(userAgent, "iPhone"):
		return "iPhone"
	case strings.Contains(userAgent, "iPad"):
		return "iPad"
	case strings.Contains(userAgent, "Windows"):
		return "Windows PC"
	case strings.Contains(userAgent, "Macintosh"), strings.Contains(userAgent, "Mac OS"):
		return "Mac"
	case strings.Contains(userAgent, "Linux"):
		return "Linux PC"
	default:
		return "Unknown Device"
	}
}

// LocationFromIP labels loopback and missing addresses as local. Geo lookup is not performed.
func LocationFromIP(ip string) string {
	if ip == "" || ip == "localhost" {
		return "Local"
	}
	if parsed := net.ParseIP(ip); parsed != nil && parsed.IsLoopback() {
		return "Local"
	}
	return "Unknown Location"
}

// TokenPair is returned after a successful sign in or refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
}

// AccessClaims are the verified contents of an access token
type AccessClaims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}
