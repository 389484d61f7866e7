package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
)

// memoryBus dispatches events synchronously to the handlers of the publishing process
type memoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]events.Handler
	closed   bool
	logger   logger.Logger
}

// NewMemoryBus creates an in-process event bus. Handler errors are logged and never returned to the publisher.
func NewMemoryBus(logger logger.Logger) (events.Bus, error) {
	return &memoryBus{
		handlers: make(map[string][]events.Handler),
		logger:   logger,
	}, nil
}

func (b *memoryBus) Publish(ctx context.Context, event events.Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	handlers := append([]events.Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		dispatch(ctx, b.logger, handler, event)
	}
	return nil
}

func (b *memoryBus) Subscribe(eventType string, handler events.Handler) error {
	if eventType == "" || handler == nil {
		return fmt.Errorf("event type and handler are required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("event bus is closed")
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[string][]events.Handler)
	return nil
}

// dispatch runs handler and logs its error or panic
func dispatch(ctx context.Context, log logger.Logger, handler events.Handler, event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(fmt.Sprintf("event handler for %s panicked: %v", event.Type, r))
		}
	}()
	if err := handler(ctx, event); err != nil {
		log.Error(fmt.Sprintf("event handler for %s failed: %v", event.Type, err))
	}
}
