package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dsolodov/foodwheel/internal/domain"
)

// EventSchemaVersion is the current event schema version.
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event types emitted by the game core. Consumed by the rendering and
// notification layers, never produced by them.
const (
	SpinResolved Type = "spin.resolved"
	SpinDenied   Type = "spin.denied"

	PaymentIntentCreated   Type = "payment.intent.created"
	PaymentIntentConfirmed Type = "payment.intent.confirmed"
	PaymentIntentRejected  Type = "payment.intent.rejected"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Type-safe event constructors

// NewSpinResolvedEvent creates a settlement event for a finished spin.
func NewSpinResolvedEvent(userID string, outcome domain.SpinOutcome) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinResolved,
		Payload: domain.SpinResolvedPayloadV1{
			UserID:      userID,
			SectorIndex: outcome.SectorIndex,
			Won:         outcome.IsWinning,
			PrizeLabel:  outcome.PrizeLabel,
			PrizeIcon:   outcome.PrizeIcon,
			Code:        outcome.Code,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewSpinDeniedEvent creates an event for a spin request that was refused.
func NewSpinDeniedEvent(userID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinDenied,
		Payload: domain.SpinDeniedPayloadV1{
			UserID:    userID,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPaymentIntentEvent creates a lifecycle event for a payment intent.
// The event type distinguishes created/confirmed/rejected.
func NewPaymentIntentEvent(eventType Type, intent domain.PaymentIntent) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: domain.PaymentIntentPayloadV1{
			IntentID:       intent.ID,
			UserID:         intent.UserID,
			Amount:         intent.Amount,
			SpinsRequested: intent.SpinsRequested,
			Method:         string(intent.Method),
			Status:         string(intent.Status),
			Timestamp:      time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; handler errors are collected, not short-circuited.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
