// Package payment tracks manually-confirmed, out-of-band payment top-ups.
// It records claims and their confirmation lifecycle; it never verifies
// payment authenticity. Confirmation is a human administrator acting over an
// out-of-band channel - a trust boundary, not a technical one.
package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/event"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/metrics"
)

// Crediter applies a confirmed top-up to a user's entitlement.
type Crediter interface {
	Credit(ctx context.Context, userID string, amount, spins int) error
}

// Service defines the interface for payment intent operations
type Service interface {
	CreateIntent(ctx context.Context, userID string, amount, spins int, method domain.PaymentMethod) (*domain.PaymentIntent, error)
	Confirm(ctx context.Context, intentID string) (*domain.PaymentIntent, error)
	Reject(ctx context.Context, intentID string) (*domain.PaymentIntent, error)
	ListIntents(ctx context.Context, status domain.IntentStatus) ([]domain.PaymentIntent, error)
}

type service struct {
	repo     *Repository
	crediter Crediter
	eventBus event.Bus
	now      func() time.Time // Injectable for testing
	mu       sync.Mutex       // serializes load-modify-save on the global collection
}

// NewService creates a new payment intent service
func NewService(repo *Repository, crediter Crediter, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		crediter: crediter,
		eventBus: eventBus,
		now:      time.Now,
	}
}

// CreateIntent records a payment claim with status pending and notifies the
// admin channel. No validation of payment authenticity happens here.
func (s *service) CreateIntent(ctx context.Context, userID string, amount, spins int, method domain.PaymentMethod) (*domain.PaymentIntent, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMethod, method)
	}
	if amount <= 0 || spins <= 0 {
		return nil, fmt.Errorf("%w: amount and spins must be positive", domain.ErrInvalidInput)
	}

	intent := domain.PaymentIntent{
		ID:             uuid.NewString(),
		UserID:         userID,
		Amount:         amount,
		SpinsRequested: spins,
		Method:         method,
		Status:         domain.IntentPending,
		CreatedAt:      s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	intents, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	intents = append(intents, intent)
	if err := s.repo.SaveAll(ctx, intents); err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewPaymentIntentEvent(event.PaymentIntentCreated, intent))

	logger.FromContext(ctx).Info("Payment intent created",
		"intent_id", intent.ID, "user_id", userID, "amount", amount, "method", method)

	return &intent, nil
}

// Confirm transitions pending -> confirmed and credits the user's ledger.
// The credit happens exactly once per intent: a second Confirm fails with
// ErrInvalidTransition before any ledger effect. The status is persisted
// before crediting, so a crash between the two under-credits rather than
// double-credits; the intent record lets the admin repair it by hand.
func (s *service) Confirm(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	intent, err := s.transition(ctx, intentID, domain.IntentConfirmed)
	if err != nil {
		return nil, err
	}

	if err := s.crediter.Credit(ctx, intent.UserID, intent.Amount, intent.SpinsRequested); err != nil {
		return nil, fmt.Errorf("intent %s confirmed but credit failed: %w", intent.ID, err)
	}

	s.publish(ctx, event.NewPaymentIntentEvent(event.PaymentIntentConfirmed, *intent))

	logger.FromContext(ctx).Info("Payment intent confirmed",
		"intent_id", intent.ID, "user_id", intent.UserID,
		"amount", intent.Amount, "spins", intent.SpinsRequested)

	return intent, nil
}

// Reject transitions pending -> rejected. No ledger effect.
func (s *service) Reject(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	intent, err := s.transition(ctx, intentID, domain.IntentRejected)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewPaymentIntentEvent(event.PaymentIntentRejected, *intent))

	logger.FromContext(ctx).Info("Payment intent rejected", "intent_id", intent.ID)

	return intent, nil
}

// ListIntents returns intents in insertion order, optionally filtered by
// status (empty status means all).
func (s *service) ListIntents(ctx context.Context, status domain.IntentStatus) ([]domain.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intents, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return intents, nil
	}

	filtered := make([]domain.PaymentIntent, 0, len(intents))
	for _, intent := range intents {
		if intent.Status == status {
			filtered = append(filtered, intent)
		}
	}
	return filtered, nil
}

// transition moves an intent out of pending under the collection lock.
func (s *service) transition(ctx context.Context, intentID string, to domain.IntentStatus) (*domain.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intents, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range intents {
		if intents[i].ID != intentID {
			continue
		}
		if intents[i].Status.Terminal() {
			return nil, fmt.Errorf("%w: intent %s is already %s",
				domain.ErrInvalidTransition, intentID, intents[i].Status)
		}

		intents[i].Status = to
		if err := s.repo.SaveAll(ctx, intents); err != nil {
			return nil, err
		}

		intent := intents[i]
		return &intent, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownIntent, intentID)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Warn("Failed to publish payment event",
			"type", evt.Type, "error", err)
	}
}
