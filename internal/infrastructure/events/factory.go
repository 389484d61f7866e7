// Package events provides the in-memory and NATS implementations of the domain event bus.
package events

import (
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
)

// NewBus creates the bus selected by settings.Driver
func NewBus(settings *config.EventSettings, logger logger.Logger) (events.Bus, error) {
	if settings == nil {
		return nil, fmt.Errorf("event settings are required")
	}
	switch settings.Driver {
	case config.EventDriverMemory, "":
		return NewMemoryBus(logger)
	case config.EventDriverNATS:
		return NewNATSBus(settings, logger)
	default:
		return nil, fmt.Errorf("unsupported event driver: %s", settings.Driver)
	}
}
