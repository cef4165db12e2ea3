// Package history keeps the append-only record of settled spins. Storage is
// unbounded; display is capped by the caller via Recent.
package history

import (
	"context"
	"fmt"
	"iter"

	"github.com/dsolodov/foodwheel/internal/domain"
)

// DisplayLimit is how many records the rendering layer shows.
const DisplayLimit = 10

// PersistFunc flushes the owning user state snapshot.
type PersistFunc func(ctx context.Context) error

// Log is the newest-first spin history of one user. Not safe for concurrent
// use; the owning session serializes access.
type Log struct {
	state   *domain.UserState
	persist PersistFunc
}

// New creates a history log over the given state.
func New(state *domain.UserState, persist PersistFunc) *Log {
	return &Log{state: state, persist: persist}
}

// Append inserts the record at the front and flushes the full list.
func (l *Log) Append(ctx context.Context, record domain.HistoryRecord) error {
	l.state.History = append([]domain.HistoryRecord{record}, l.state.History...)

	if err := l.persist(ctx); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// Recent returns up to n newest records as a lazy, restartable sequence.
// The underlying stored collection is never mutated or truncated.
func (l *Log) Recent(n int) iter.Seq[domain.HistoryRecord] {
	return func(yield func(domain.HistoryRecord) bool) {
		for i, record := range l.state.History {
			if i >= n {
				return
			}
			if !yield(record) {
				return
			}
		}
	}
}

// Len returns the total stored record count. Zero means the log renders as
// an explicit empty state, not just an empty list.
func (l *Log) Len() int {
	return len(l.state.History)
}
