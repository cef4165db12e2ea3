// Package ledger enforces the entitlement invariant: a spin is paid with a
// free spin first, then with balance, and neither field ever goes negative.
// This is the core correctness property of the whole game.
package ledger

import (
	"context"
	"fmt"

	"github.com/dsolodov/foodwheel/internal/domain"
)

// PersistFunc flushes the owning user state snapshot. The ledger calls it
// synchronously after every successful mutation.
type PersistFunc func(ctx context.Context) error

// Ledger mutates the entitlement part of a user state with check-then-commit
// semantics. Not safe for concurrent use; the owning session serializes
// access.
type Ledger struct {
	state   *domain.UserState
	persist PersistFunc
}

// New creates a ledger over the given state with the given flush capability.
func New(state *domain.UserState, persist PersistFunc) *Ledger {
	return &Ledger{state: state, persist: persist}
}

// CanAfford reports whether one spin at the given balance cost is payable.
func (l *Ledger) CanAfford(costBalance int) bool {
	return l.state.FreeSpins > 0 || l.state.BalanceMinorUnits >= costBalance
}

// DebitForSpin consumes exactly one entitlement: a free spin if any remain,
// otherwise costBalance from the balance. It re-validates affordability even
// though callers are expected to have checked CanAfford, and mutates nothing
// on failure.
func (l *Ledger) DebitForSpin(ctx context.Context, costBalance int) error {
	if !l.CanAfford(costBalance) {
		return fmt.Errorf("%w: balance %d, free spins 0, spin costs %d",
			domain.ErrInsufficientEntitlement, l.state.BalanceMinorUnits, costBalance)
	}

	usedFreeSpin := l.state.FreeSpins > 0
	if usedFreeSpin {
		l.state.FreeSpins--
	} else {
		l.state.BalanceMinorUnits -= costBalance
	}

	if err := l.persist(ctx); err != nil {
		// The charge never reached storage, so the in-memory state must not
		// claim it either.
		if usedFreeSpin {
			l.state.FreeSpins++
		} else {
			l.state.BalanceMinorUnits += costBalance
		}
		return fmt.Errorf("failed to persist debit: %w", err)
	}
	return nil
}

// Credit adds to balance and free spins. No upper bound; always succeeds
// apart from persistence failures.
func (l *Ledger) Credit(ctx context.Context, amount, spins int) error {
	l.state.BalanceMinorUnits += amount
	l.state.FreeSpins += spins

	if err := l.persist(ctx); err != nil {
		l.state.BalanceMinorUnits -= amount
		l.state.FreeSpins -= spins
		return fmt.Errorf("failed to persist credit: %w", err)
	}
	return nil
}

// Balance returns the current balance in minor units.
func (l *Ledger) Balance() int {
	return l.state.BalanceMinorUnits
}

// FreeSpins returns the current free spin count.
func (l *Ledger) FreeSpins() int {
	return l.state.FreeSpins
}
