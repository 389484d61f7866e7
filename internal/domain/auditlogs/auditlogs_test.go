//go:build unit
// +build unit

package auditlogs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemEvent_Resolve(t *testing.T) {
	now := time.Now()
	e := &SystemEvent{
		ID:        uuid.NewString(),
		EventType: EventFailedLoginAttempt,
		Severity:  SeverityWarning,
		Title:     "Failed login attempt",
	}
	require.NoError(t, e.Validate())

	e.Resolve("admin-1", "false positive", now)
	assert.True(t, e.IsResolved)
	assert.Equal(t, "admin-1", e.ResolvedBy)
	assert.Equal(t, &now, e.ResolvedAt)
}

func TestSystemEventInput_Validate(t *testing.T) {
	require.Error(t, (&SystemEventInput{EventType: "X", Severity: "FATAL", Title: "t"}).Validate())
	require.NoError(t, (&SystemEventInput{EventType: "X", Severity: SeverityCritical, Title: "t"}).Validate())
}

func TestAuditLog_Validate(t *testing.T) {
	l := &AuditLog{ID: uuid.NewString(), Action: ActionLogin, Entity: EntityUser}
	require.NoError(t, l.Validate())

	l.Action = ""
	require.Error(t, l.Validate())
}
