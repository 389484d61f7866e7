//go:build unit
// +build unit

package events

import (
	"context"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/pkg/reqctx"

	"github.com/stretchr/testify/assert"
)

func TestNew_TakesActorFromContext(t *testing.T) {
	ctx := reqctx.WithMetadata(context.Background(), reqctx.Metadata{
		RequestID: "req-1",
		IPAddress: "10.0.0.1",
		UserAgent: "curl/8.0",
	})
	ctx = reqctx.WithActor(ctx, "user-1", "client")

	event := New(ctx, UserLoggedIn, "user-1", nil)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, UserLoggedIn, event.Type)
	assert.Equal(t, "user-1", event.ActorID)
	assert.Equal(t, "client", event.ActorRole)
	assert.Equal(t, "req-1", event.Metadata.RequestID)
	assert.Equal(t, "10.0.0.1", event.Metadata.IPAddress)
	assert.NotNil(t, event.Payload)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestEvent_PayloadAccessors(t *testing.T) {
	event := Event{Payload: map[string]interface{}{
		"clientId":     "c-1",
		"count":        3,
		"participants": []interface{}{"a", "b", 7},
		"recipients":   []string{"x"},
	}}

	assert.Equal(t, "c-1", event.String("clientId"))
	assert.Equal(t, "", event.String("count"))
	assert.Equal(t, "", event.String("missing"))
	assert.Equal(t, []string{"a", "b"}, event.Strings("participants"))
	assert.Equal(t, []string{"x"}, event.Strings("recipients"))
	assert.Nil(t, event.Strings("missing"))
}
