// Package storage provides the key-value persistence capability the game
// core is injected with. The game never sees a database, only Get/Set/Delete
// over raw bytes, so production (PostgreSQL) and tests (in-memory) share the
// exact same code paths above this interface.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is a byte-oriented key-value store. Implementations must make Set
// durable before returning: the game flushes state synchronously after every
// mutation and relies on that ordering.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Well-known keys and key builders.
const (
	// KeyPendingPayments holds the single global payment intent collection.
	KeyPendingPayments = "payments:pending"

	// KeyConfigOverride holds the persisted config override blob merged
	// shallowly over defaults at startup.
	KeyConfigOverride = "config:override"
)

// UserKey builds the per-user namespace key. The user identity is an opaque
// external id from the host environment; it is never validated here.
func UserKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}
