//go:build unit
// +build unit

package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{RequestID: "req-1", IPAddress: "10.0.0.1", UserAgent: "curl"})
	ctx = WithActor(ctx, "user-1", "therapist")

	md := FromContext(ctx)
	assert.Equal(t, "req-1", md.RequestID)
	assert.Equal(t, "10.0.0.1", md.IPAddress)
	assert.Equal(t, "user-1", md.UserID)
	assert.Equal(t, "therapist", md.UserRole)
}

func TestFromContext_Empty(t *testing.T) {
	assert.Equal(t, Metadata{}, FromContext(context.Background()))
}
