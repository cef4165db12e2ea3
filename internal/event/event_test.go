package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsolodov/foodwheel/internal/domain"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(SpinResolved, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	evt := NewSpinResolvedEvent("user-1", domain.SpinOutcome{
		SectorIndex: 3,
		IsWinning:   true,
		PrizeLabel:  "Pizza Margherita",
		Code:        "ABC234",
	})

	err := bus.Publish(context.Background(), evt)
	assert.NoError(t, err)
	assert.Len(t, received, 1)

	payload, ok := received[0].Payload.(domain.SpinResolvedPayloadV1)
	assert.True(t, ok)
	assert.Equal(t, "user-1", payload.UserID)
	assert.True(t, payload.Won)
	assert.Equal(t, "ABC234", payload.Code)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewSpinDeniedEvent("user-1", "insufficient entitlement"))
	assert.NoError(t, err)
}

func TestMemoryBusCollectsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(PaymentIntentCreated, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(PaymentIntentCreated, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewPaymentIntentEvent(PaymentIntentCreated, domain.PaymentIntent{ID: "p1"}))
	assert.Error(t, err)
	// All handlers still ran despite the first error.
	assert.Equal(t, 2, calls)
}
