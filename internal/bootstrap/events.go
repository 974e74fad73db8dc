package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/AICore_Go/internal/event"
	"github.com/osse101/AICore_Go/internal/eventlog"
	"github.com/osse101/AICore_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and attaches its subscribers
func InitializeEventSystem(eventLog eventlog.Service) (*event.MemoryBus, error) {
	bus := event.NewMemoryBus()

	if err := RegisterEventHandlers(bus, eventLog); err != nil {
		return nil, err
	}

	slog.Info(LogMsgEventSystemInitialized)
	return bus, nil
}

// RegisterEventHandlers subscribes the metrics collector and, when given, the
// persistent event log to every challenge event
func RegisterEventHandlers(bus event.Bus, eventLog eventlog.Service) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if eventLog == nil {
		return nil
	}
	if err := eventLog.Subscribe(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLog, err)
	}
	slog.Info(LogMsgEventLogSubscribed)
	return nil
}
