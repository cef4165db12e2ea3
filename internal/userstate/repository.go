// Package userstate persists the per-user game blob: entitlement plus spin
// history under one key, so every flush is a consistent snapshot.
package userstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/storage"
)

// Repository loads and saves per-user state through the injected store.
type Repository struct {
	store storage.Store
}

// NewRepository creates a user state repository.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load reads the user's state. An absent or malformed blob falls back to
// zero-value defaults; corruption is logged and recovered locally, never
// propagated as fatal.
func (r *Repository) Load(ctx context.Context, userID string) (*domain.UserState, error) {
	raw, err := r.store.Get(ctx, storage.UserKey(userID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return defaultState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user state: %w", err)
	}

	var state domain.UserState
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.FromContext(ctx).Warn("User state blob is corrupt, resetting to defaults",
			"user_id", userID, "error", err)
		return defaultState(), nil
	}

	if state.BalanceMinorUnits < 0 {
		state.BalanceMinorUnits = 0
	}
	if state.FreeSpins < 0 {
		state.FreeSpins = 0
	}
	if state.History == nil {
		state.History = []domain.HistoryRecord{}
	}

	return &state, nil
}

// Save writes the full snapshot synchronously.
func (r *Repository) Save(ctx context.Context, userID string, state *domain.UserState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode user state: %w", err)
	}

	if err := r.store.Set(ctx, storage.UserKey(userID), raw); err != nil {
		return fmt.Errorf("failed to save user state: %w", err)
	}
	return nil
}

func defaultState() *domain.UserState {
	return &domain.UserState{History: []domain.HistoryRecord{}}
}
