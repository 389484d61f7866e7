package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
	"github.com/Wetooa/mentara-sub026/internal/pkg/reqctx"

	"github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is prepended to the event type to form the subject
const DefaultSubjectPrefix = "mentara.events"

// natsBus publishes events as JSON on NATS subjects
type natsBus struct {
	nc            *nats.Conn
	subjectPrefix string
	logger        logger.Logger

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewNATSBus connects to the configured NATS server
func NewNATSBus(settings *config.EventSettings, logger logger.Logger) (events.Bus, error) {
	if settings == nil || settings.NATSURL == "" {
		return nil, fmt.Errorf("nats url is required")
	}

	name := settings.ClientName
	if name == "" {
		name = "mentara-api"
	}
	nc, err := nats.Connect(settings.NATSURL,
		nats.Name(name),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn(fmt.Sprintf("nats disconnected: %v", err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected to ", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return NewNATSBusFromConn(nc, settings.SubjectPrefix, logger), nil
}

// NewNATSBusFromConn wraps an existing connection
func NewNATSBusFromConn(nc *nats.Conn, subjectPrefix string, logger logger.Logger) events.Bus {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}
	return &natsBus{
		nc:            nc,
		subjectPrefix: strings.TrimSuffix(subjectPrefix, "."),
		logger:        logger,
	}
}

// Subject returns the subject events of eventType are published on
func Subject(prefix, eventType string) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return strings.TrimSuffix(prefix, ".") + "." + eventType
}

func (b *natsBus) Publish(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type, err)
	}
	if err := b.nc.Publish(Subject(b.subjectPrefix, event.Type), data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}
	return nil
}

func (b *natsBus) Subscribe(eventType string, handler events.Handler) error {
	if eventType == "" || handler == nil {
		return fmt.Errorf("event type and handler are required")
	}

	sub, err := b.nc.Subscribe(Subject(b.subjectPrefix, eventType), func(msg *nats.Msg) {
		var event events.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Error(fmt.Sprintf("failed to decode event on %s: %v", msg.Subject, err))
			return
		}
		ctx := reqctx.WithMetadata(context.Background(), reqctx.Metadata{
			RequestID: event.Metadata.RequestID,
			IPAddress: event.Metadata.IPAddress,
			UserAgent: event.Metadata.UserAgent,
			UserID:    event.ActorID,
			UserRole:  event.ActorRole,
		})
		dispatch(ctx, b.logger, handler, event)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return nil
}

func (b *natsBus) Close() error {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Warn(fmt.Sprintf("failed to unsubscribe %s: %v", sub.Subject, err))
		}
	}
	if err := b.nc.Drain(); err != nil {
		return fmt.Errorf("failed to drain nats connection: %w", err)
	}
	return nil
}
