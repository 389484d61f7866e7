//go:build unit
// +build unit

package events

import (
	"context"
	"errors"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus(t *testing.T) {
	bus, err := NewMemoryBus(testutil.SetupTestLogger(t))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("FanOut", func(t *testing.T) {
		var got []string
		require.NoError(t, bus.Subscribe(events.UserRegistered, func(_ context.Context, e events.Event) error {
			got = append(got, "first:"+e.AggregateID)
			return nil
		}))
		require.NoError(t, bus.Subscribe(events.UserRegistered, func(_ context.Context, e events.Event) error {
			got = append(got, "second:"+e.AggregateID)
			return nil
		}))

		err := bus.Publish(ctx, events.New(ctx, events.UserRegistered, "u1", nil))
		require.NoError(t, err)
		assert.Equal(t, []string{"first:u1", "second:u1"}, got)
	})

	t.Run("HandlerErrorIsSwallowed", func(t *testing.T) {
		called := false
		require.NoError(t, bus.Subscribe(events.UserLoggedIn, func(context.Context, events.Event) error {
			return errors.New("boom")
		}))
		require.NoError(t, bus.Subscribe(events.UserLoggedIn, func(context.Context, events.Event) error {
			called = true
			return nil
		}))

		assert.NoError(t, bus.Publish(ctx, events.New(ctx, events.UserLoggedIn, "u1", nil)))
		assert.True(t, called)
	})

	t.Run("PanicIsRecovered", func(t *testing.T) {
		require.NoError(t, bus.Subscribe(events.UserLoggedOut, func(context.Context, events.Event) error {
			panic("handler bug")
		}))
		assert.NoError(t, bus.Publish(ctx, events.New(ctx, events.UserLoggedOut, "u1", nil)))
	})

	t.Run("NoSubscribers", func(t *testing.T) {
		assert.NoError(t, bus.Publish(ctx, events.New(ctx, events.MessageRead, "m1", nil)))
	})

	t.Run("InvalidSubscription", func(t *testing.T) {
		assert.Error(t, bus.Subscribe("", nil))
	})

	t.Run("Closed", func(t *testing.T) {
		require.NoError(t, bus.Close())
		assert.Error(t, bus.Publish(ctx, events.New(ctx, events.UserRegistered, "u1", nil)))
	})
}

func TestNewBus(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	bus, err := NewBus(&config.EventSettings{Driver: config.EventDriverMemory}, log)
	require.NoError(t, err)
	assert.NotNil(t, bus)

	_, err = NewBus(&config.EventSettings{Driver: "kafka"}, log)
	assert.Error(t, err)

	_, err = NewBus(&config.EventSettings{Driver: config.EventDriverNATS}, log)
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "mentara.events.UserRegistered", Subject("", events.UserRegistered))
	assert.Equal(t, "custom.AppointmentBooked", Subject("custom.", events.AppointmentBooked))
}
