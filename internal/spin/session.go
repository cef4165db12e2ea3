package spin

import (
	"context"
	"sync"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/history"
	"github.com/dsolodov/foodwheel/internal/ledger"
	"github.com/dsolodov/foodwheel/internal/userstate"
)

// session is the explicit per-user context object: loaded state, the ledger
// and history views over it, the accumulated wheel rotation, and the
// Spinning flag of the controller state machine. All access goes through mu;
// each user is logically single-writer but the HTTP server is concurrent.
type session struct {
	userID string

	mu       sync.Mutex
	state    *domain.UserState
	ledger   *ledger.Ledger
	history  *history.Log
	rotation float64
	spinning bool
	pending  *settleHandle
}

func newSession(ctx context.Context, userID string, repo *userstate.Repository) (*session, error) {
	state, err := repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	s := &session{
		userID: userID,
		state:  state,
	}

	persist := func(ctx context.Context) error {
		return repo.Save(ctx, userID, s.state)
	}
	s.ledger = ledger.New(state, persist)
	s.history = history.New(state, persist)

	return s, nil
}
