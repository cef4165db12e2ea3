package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	err = store.Set(ctx, UserKey("42"), []byte(`{"balance":100}`))
	assert.NoError(t, err)

	value, err := store.Get(ctx, UserKey("42"))
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"balance":100}`), value)

	err = store.Delete(ctx, UserKey("42"))
	assert.NoError(t, err)

	_, err = store.Get(ctx, UserKey("42"))
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("abc")
	assert.NoError(t, store.Set(ctx, "k", original))

	// Mutating the caller's slice must not affect the stored value.
	original[0] = 'z'

	value, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), value)

	// Mutating the returned slice must not affect subsequent reads.
	value[0] = 'q'
	again, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "user:tg-123", UserKey("tg-123"))
}
