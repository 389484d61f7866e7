package email

import (
	"strconv"
	"time"
)

// Credentials are shown in the approval email when a temporary password was generated
type Credentials struct {
	Email    string
	Password string
}

// ApplicationDecision is the data of the therapist_approved and therapist_rejected templates
type ApplicationDecision struct {
	Name        string
	Credentials *Credentials
	AdminNotes  string
	LoginURL    string
}

// TokenLink is the data of the email_verification and password_reset templates
type TokenLink struct {
	Name      string
	Link      string
	ExpiresIn string
}

// MeetingNotice is the data of the meeting templates
type MeetingNotice struct {
	Name       string
	OtherParty string
	Title      string
	When       string
	Duration   int
	MeetingURL string
	Reason     string
}

// FormatWhen renders a meeting start in loc for email bodies
func FormatWhen(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("Monday, January 2, 2006 at 3:04 PM MST")
}

// FormatTTL renders a token lifetime such as "1 hour" or "24 hours"
func FormatTTL(d time.Duration) string {
	hours := int(d.Hours())
	switch {
	case hours == 1:
		return "1 hour"
	case hours > 1:
		return strconv.Itoa(hours) + " hours"
	default:
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return strconv.Itoa(minutes) + " minutes"
	}
}
