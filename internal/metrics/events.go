package metrics

import (
	"context"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/event"
	"github.com/dsolodov/foodwheel/internal/logger"
)

// EventMetricsCollector subscribes to game events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.SpinResolved,
		event.SpinDenied,
		event.PaymentIntentCreated,
		event.PaymentIntentConfirmed,
		event.PaymentIntentRejected,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case domain.SpinResolvedPayloadV1:
		if payload.Won {
			SpinsTotal.WithLabelValues(ResultWin, payload.PrizeLabel).Inc()
		} else {
			SpinsTotal.WithLabelValues(ResultLose, "").Inc()
		}

	case domain.SpinDeniedPayloadV1:
		SpinsDenied.WithLabelValues(payload.Reason).Inc()

	case domain.PaymentIntentPayloadV1:
		PaymentIntents.WithLabelValues(payload.Method, payload.Status).Inc()
		if evt.Type == event.PaymentIntentConfirmed {
			EntitlementCredited.Add(float64(payload.Amount))
		}

	default:
		log.Debug("Unrecognized event payload", "type", evt.Type)
	}

	return nil
}
