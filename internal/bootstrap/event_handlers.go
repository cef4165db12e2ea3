package bootstrap

import (
	"context"
	"log/slog"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/event"
	"github.com/dsolodov/foodwheel/internal/metrics"
)

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (event-based game metrics)
// - Admin notifier (operator log stream for wins and payment declarations)
func RegisterEventHandlers(bus event.Bus) {
	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	notifier := &adminNotifier{}
	notifier.Register(bus)
	slog.Info(LogMsgAdminNotifierRegistered)
}

// adminNotifier writes the events an operator acts on to the log stream.
// A win means a customer will show up with a redemption code; a created
// intent means money should be arriving through the named method.
type adminNotifier struct{}

func (n *adminNotifier) Register(bus event.Bus) {
	bus.Subscribe(event.SpinResolved, n.handle)
	bus.Subscribe(event.PaymentIntentCreated, n.handle)
	bus.Subscribe(event.PaymentIntentConfirmed, n.handle)
	bus.Subscribe(event.PaymentIntentRejected, n.handle)
}

func (n *adminNotifier) handle(ctx context.Context, evt event.Event) error {
	switch payload := evt.Payload.(type) {
	case domain.SpinResolvedPayloadV1:
		if payload.Won {
			slog.Info("Prize won",
				"user_id", payload.UserID,
				"prize", payload.PrizeLabel,
				"code", payload.Code)
		}

	case domain.PaymentIntentPayloadV1:
		slog.Info("Payment intent update",
			"intent_id", payload.IntentID,
			"user_id", payload.UserID,
			"amount", payload.Amount,
			"method", payload.Method,
			"status", payload.Status)
	}

	return nil
}
