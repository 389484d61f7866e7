package app

import (
	"context"
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// eventPublisher publishes domain events. A failed publish is logged and never fails the operation.
type eventPublisher struct {
	bus    events.Publisher
	logger logger.Logger
}

func (p eventPublisher) publish(ctx context.Context, eventType, aggregateID string, payload map[string]interface{}) {
	if p.bus == nil {
		return
	}
	event := events.New(ctx, eventType, aggregateID, payload)
	if err := p.bus.Publish(ctx, event); err != nil {
		p.logger.Error("Failed to publish ", eventType, " for ", aggregateID, ": ", err)
	}
}

// emailSender renders templates and delivers them. Delivery failures are logged, never returned.
type emailSender struct {
	mailer   notifications.Mailer
	renderer notifications.TemplateRenderer
	logger   logger.Logger
}

func (s emailSender) send(ctx context.Context, to, template string, data interface{}) bool {
	if s.mailer == nil || s.renderer == nil || to == "" {
		return false
	}
	rendered, err := s.renderer.Render(template, data)
	if err != nil {
		s.logger.Error("Failed to render ", template, " email: ", err)
		return false
	}
	email := &notifications.Email{
		To:      []string{to},
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		s.logger.Error("Failed to send ", template, " email to ", to, ": ", err)
		return false
	}
	s.logger.Info("Sent ", template, " email to ", to)
	return true
}

// requireID rejects blank identifiers before they reach a repository
func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation("validation failed: "+name+" is required", nil)
	}
	return nil
}

// frontendLink joins the frontend base URL with path and an optional token parameter
func frontendLink(base, path, token string) string {
	link := strings.TrimRight(base, "/") + path
	if token != "" {
		link += "?token=" + token
	}
	return link
}
