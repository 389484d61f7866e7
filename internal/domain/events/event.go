package events

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/reqctx"

	"github.com/google/uuid"
)

// Metadata describes the request an event originated from
type Metadata struct {
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Event is something that happened in the domain
type Event struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	AggregateID string                 `json:"aggregateId"`
	ActorID     string                 `json:"actorId,omitempty"`
	ActorRole   string                 `json:"actorRole,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	Metadata    Metadata               `json:"metadata"`
	OccurredAt  time.Time              `json:"occurredAt"`
}

// New creates an event of eventType about aggregateID. Actor and request details are taken from ctx.
func New(ctx context.Context, eventType, aggregateID string, payload map[string]interface{}) Event {
	md := reqctx.FromContext(ctx)
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		ActorID:     md.UserID,
		ActorRole:   md.UserRole,
		Payload:     payload,
		Metadata: Metadata{
			IPAddress: md.IPAddress,
			UserAgent: md.UserAgent,
			RequestID: md.RequestID,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// String returns a payload value as a string, or "" when missing
func (e Event) String(key string) string {
	if v, ok := e.Payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Strings returns a payload value as a string slice. JSON decoded []interface{} values are converted.
func (e Event) Strings(key string) []string {
	switch v := e.Payload[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Handler reacts to a published event
type Handler func(ctx context.Context, event Event) error

// Publisher publishes domain events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus publishes events and dispatches them to subscribed handlers
type Bus interface {
	Publisher
	// Subscribe registers handler for eventType
	Subscribe(eventType string, handler Handler) error
	Close() error
}
