package email

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
)

// NewMailer creates the sender selected by settings.Sender
func NewMailer(settings *config.EmailSettings, logger logger.Logger) (notifications.Mailer, error) {
	if settings == nil {
		return nil, fmt.Errorf("email settings are required")
	}
	switch settings.Sender {
	case config.EmailSenderSMTP:
		return NewSMTPMailer(settings, logger)
	case config.EmailSenderLog, "":
		return NewLogMailer(settings, logger)
	default:
		return nil, fmt.Errorf("unsupported email sender: %s", settings.Sender)
	}
}

// sendFunc matches smtp.SendMail
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	addr   string
	host   string
	auth   smtp.Auth
	from   string
	send   sendFunc
	logger logger.Logger
}

// NewSMTPMailer sends through an SMTP relay with PLAIN authentication when a user is configured
func NewSMTPMailer(settings *config.EmailSettings, logger logger.Logger) (notifications.Mailer, error) {
	if settings.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	var auth smtp.Auth
	if settings.SMTPUser != "" {
		auth = smtp.PlainAuth("", settings.SMTPUser, settings.SMTPPass, settings.SMTPHost)
	}
	return &smtpMailer{
		addr:   net.JoinHostPort(settings.SMTPHost, strconv.Itoa(settings.SMTPPort)),
		host:   settings.SMTPHost,
		auth:   auth,
		from:   formatAddress(settings.FromName, settings.FromAddress),
		send:   smtp.SendMail,
		logger: logger,
	}, nil
}

func (m *smtpMailer) Send(ctx context.Context, email *notifications.Email) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	msg, err := BuildMessage(m.from, email, time.Now())
	if err != nil {
		return err
	}
	envelopeFrom := m.from
	if addr, err := mail.ParseAddress(m.from); err == nil {
		envelopeFrom = addr.Address
	}
	if err := m.send(m.addr, m.auth, envelopeFrom, email.To, msg); err != nil {
		return fmt.Errorf("failed to send email %q: %w", email.Subject, err)
	}
	m.logger.Info(fmt.Sprintf("Sent email %q to %d recipient(s)", email.Subject, len(email.To)))
	return nil
}

type logMailer struct {
	from   string
	logger logger.Logger
}

// NewLogMailer writes emails to the log instead of delivering them
func NewLogMailer(settings *config.EmailSettings, logger logger.Logger) (notifications.Mailer, error) {
	return &logMailer{
		from:   formatAddress(settings.FromName, settings.FromAddress),
		logger: logger,
	}, nil
}

func (m *logMailer) Send(_ context.Context, email *notifications.Email) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	m.logger.With("from", m.from, "to", strings.Join(email.To, ","), "subject", email.Subject).
		Info("Email delivery skipped (log sender)\n" + email.Text)
	return nil
}

func validateEmail(email *notifications.Email) error {
	if email == nil {
		return fmt.Errorf("email is required")
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if email.Subject == "" {
		return fmt.Errorf("email has no subject")
	}
	return nil
}

// BuildMessage encodes email as a multipart/alternative MIME message
func BuildMessage(from string, email *notifications.Email, now time.Time) ([]byte, error) {
	boundary, err := newBoundary()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writeHeader := func(key, value string) {
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	writeHeader("From", from)
	writeHeader("To", strings.Join(email.To, ", "))
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	writeHeader("Date", now.Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `multipart/alternative; boundary="`+boundary+`"`)
	buf.WriteString("\r\n")

	writePart := func(contentType, body string) {
		buf.WriteString("--" + boundary + "\r\n")
		writeHeader("Content-Type", contentType+"; charset=utf-8")
		writeHeader("Content-Transfer-Encoding", "8bit")
		buf.WriteString("\r\n")
		buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
		buf.WriteString("\r\n")
	}

	if email.Text != "" {
		writePart("text/plain", email.Text)
	}
	if email.HTML != "" {
		writePart("text/html", email.HTML)
	}
	buf.WriteString("--" + boundary + "--\r\n")
	return buf.Bytes(), nil
}

func newBoundary() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate mime boundary: %w", err)
	}
	return "mentara-" + hex.EncodeToString(b), nil
}

func formatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}
