package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/storage"
)

// Repository persists the single global payment intent collection under a
// fixed key. Append-only from the game's perspective; intents are never
// deleted here, archiving them is the admin process's job.
type Repository struct {
	store storage.Store
}

// NewRepository creates an intent repository over the injected store.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// LoadAll reads the full intent collection in insertion order. An absent or
// malformed blob starts over empty; corruption is logged, not fatal.
func (r *Repository) LoadAll(ctx context.Context) ([]domain.PaymentIntent, error) {
	raw, err := r.store.Get(ctx, storage.KeyPendingPayments)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []domain.PaymentIntent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment intents: %w", err)
	}

	var intents []domain.PaymentIntent
	if err := json.Unmarshal(raw, &intents); err != nil {
		logger.FromContext(ctx).Warn("Payment intent blob is corrupt, resetting", "error", err)
		return []domain.PaymentIntent{}, nil
	}
	return intents, nil
}

// SaveAll writes the full collection synchronously.
func (r *Repository) SaveAll(ctx context.Context, intents []domain.PaymentIntent) error {
	raw, err := json.Marshal(intents)
	if err != nil {
		return fmt.Errorf("failed to encode payment intents: %w", err)
	}

	if err := r.store.Set(ctx, storage.KeyPendingPayments, raw); err != nil {
		return fmt.Errorf("failed to save payment intents: %w", err)
	}
	return nil
}
