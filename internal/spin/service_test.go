package spin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/event"
	"github.com/dsolodov/foodwheel/internal/metrics"
	"github.com/dsolodov/foodwheel/internal/storage"
	"github.com/dsolodov/foodwheel/internal/userstate"
	"github.com/dsolodov/foodwheel/internal/wheel"
	"github.com/dsolodov/foodwheel/internal/wincode"
)

// Sector 0 wins, sectors 1 and 2 lose.
func testTable(t *testing.T) *wheel.SectorTable {
	t.Helper()
	table, err := wheel.NewTable([]domain.Sector{
		{ID: 1, Label: "Burger", Icon: "B", IsWinning: true},
		{ID: 2, Label: "Try again"},
		{ID: 3, Label: "Try again"},
	})
	require.NoError(t, err)
	return table
}

// eventRecorder collects published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) record(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) byType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, evt := range r.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

type testEnv struct {
	svc      *service
	store    *storage.MemoryStore
	repo     *userstate.Repository
	recorder *eventRecorder
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()

	if cfg.Table == nil {
		cfg.Table = testTable(t)
	}
	if cfg.SpinDuration == 0 {
		cfg.SpinDuration = 10 * time.Millisecond
	}

	store := storage.NewMemoryStore()
	repo := userstate.NewRepository(store)

	bus := event.NewMemoryBus()
	recorder := &eventRecorder{}
	bus.Subscribe(event.SpinResolved, recorder.record)
	bus.Subscribe(event.SpinDenied, recorder.record)

	svc, err := NewService(cfg, repo, AlwaysReady(), bus)
	require.NoError(t, err)

	return &testEnv{
		svc:      svc.(*service),
		store:    store,
		repo:     repo,
		recorder: recorder,
	}
}

func (e *testEnv) seed(t *testing.T, userID string, balance, freeSpins int) {
	t.Helper()
	state := &domain.UserState{
		EntitlementState: domain.EntitlementState{
			BalanceMinorUnits: balance,
			FreeSpins:         freeSpins,
		},
		History: []domain.HistoryRecord{},
	}
	require.NoError(t, e.repo.Save(context.Background(), userID, state))
}

// settled waits for the session to return to idle.
func (e *testEnv) settled(t *testing.T, userID string) {
	t.Helper()
	require.Eventually(t, func() bool {
		state, err := e.svc.State(context.Background(), userID)
		require.NoError(t, err)
		return !state.Spinning
	}, time.Second, time.Millisecond)
}

func TestRequestSpin_WinFlow(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100})
	env.seed(t, "u1", 300, 0)

	// Force the winning sector and a deterministic turn count.
	env.svc.selector = wheel.NewSelectorWithRNG(func(int) int { return 0 })
	env.svc.planner = wheel.NewPlannerWithRNG(func(int) int { return 0 })

	ctx := context.Background()
	result, err := env.svc.RequestSpin(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.SectorIndex)
	assert.True(t, result.IsWinning)
	assert.Equal(t, "Burger", result.PrizeLabel)
	assert.Equal(t, 200, result.Balance, "one spin price debited up front")
	assert.Equal(t, int64(10), result.DurationMs)
	// 5 turns plus landing on the middle of sector 0 of a 3-sector wheel.
	assert.InDelta(t, 5*360+300.0, result.TargetRotation, 0.001)

	state, err := env.svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, state.Spinning, "spinning until the animation ends")

	env.settled(t, "u1")

	records, err := env.svc.History(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.HistoryWin, records[0].Kind)
	assert.Equal(t, "Burger", records[0].PrizeLabel)
	assert.Len(t, records[0].Code, wincode.CodeLength)

	resolved := env.recorder.byType(event.SpinResolved)
	require.Len(t, resolved, 1)
	payload := resolved[0].Payload.(domain.SpinResolvedPayloadV1)
	assert.Equal(t, "u1", payload.UserID)
	assert.True(t, payload.Won)
	assert.Equal(t, records[0].Code, payload.Code)
}

func TestRequestSpin_LoseFlow(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100})
	env.seed(t, "u1", 100, 0)
	env.svc.selector = wheel.NewSelectorWithRNG(func(int) int { return 1 })

	result, err := env.svc.RequestSpin(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, result.IsWinning)
	assert.Empty(t, result.PrizeLabel)

	env.settled(t, "u1")

	records, err := env.svc.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.HistoryLose, records[0].Kind)
	assert.Empty(t, records[0].Code, "no redemption code on a loss")
}

func TestRequestSpin_ReentrancyGuard(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100, SpinDuration: 150 * time.Millisecond})
	env.seed(t, "u1", 500, 0)

	ctx := context.Background()
	_, err := env.svc.RequestSpin(ctx, "u1")
	require.NoError(t, err)

	_, err = env.svc.RequestSpin(ctx, "u1")
	require.ErrorIs(t, err, domain.ErrSpinInProgress)

	env.settled(t, "u1")

	state, err := env.svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 400, state.Balance, "exactly one debit")

	records, err := env.svc.History(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1, "exactly one settle")
}

func TestRequestSpin_InflightSessionSurvivesEviction(t *testing.T) {
	env := newTestEnv(t, Config{
		SpinPrice:        100,
		SpinDuration:     150 * time.Millisecond,
		SessionCacheSize: 1,
	})
	env.seed(t, "u1", 500, 0)
	env.seed(t, "u2", 500, 0)

	ctx := context.Background()
	_, err := env.svc.RequestSpin(ctx, "u1")
	require.NoError(t, err)

	// Touching u2 evicts u1 from the one-slot cache mid-flight.
	_, err = env.svc.State(ctx, "u2")
	require.NoError(t, err)

	_, err = env.svc.RequestSpin(ctx, "u1")
	require.ErrorIs(t, err, domain.ErrSpinInProgress,
		"a rebuilt session must not forget the running spin")

	env.settled(t, "u1")

	state, err := env.svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 400, state.Balance, "exactly one debit despite the eviction")

	records, err := env.svc.History(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRequestSpin_SurfaceMissingAbortsBeforeDebit(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100})
	env.seed(t, "u1", 300, 0)
	env.svc.surface = SurfaceFunc(func(context.Context, string) error {
		return errors.New("surface gone")
	})

	_, err := env.svc.RequestSpin(context.Background(), "u1")
	require.ErrorIs(t, err, domain.ErrRenderingSurfaceMissing)

	state, err := env.svc.State(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 300, state.Balance, "nothing charged without a surface")
	assert.False(t, state.Spinning)
}

// flakyStore wraps a MemoryStore and refuses writes on demand.
type flakyStore struct {
	*storage.MemoryStore
	failSet bool
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet {
		return errors.New("storage write refused")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestRequestSpin_PersistFailureLeavesBalanceUntouched(t *testing.T) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	repo := userstate.NewRepository(store)
	svc, err := NewService(
		Config{Table: testTable(t), SpinPrice: 100, SpinDuration: 10 * time.Millisecond},
		repo, AlwaysReady(), event.NewMemoryBus())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "u1", &domain.UserState{
		EntitlementState: domain.EntitlementState{BalanceMinorUnits: 100},
	}))

	store.failSet = true
	_, err = svc.RequestSpin(ctx, "u1")
	require.Error(t, err)

	// The aborted spin scheduled nothing and charged nothing.
	state, err := svc.State(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 100, state.Balance)
	assert.False(t, state.Spinning)

	// Once storage recovers the same entitlement pays for a real spin.
	store.failSet = false
	result, err := svc.RequestSpin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Balance)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(shutdownCtx))
}

func TestRequestSpin_InsufficientEntitlement(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100})
	env.seed(t, "u1", 40, 0)

	_, err := env.svc.RequestSpin(context.Background(), "u1")
	require.ErrorIs(t, err, domain.ErrInsufficientEntitlement)

	denied := env.recorder.byType(event.SpinDenied)
	require.Len(t, denied, 1)
	payload := denied[0].Payload.(domain.SpinDeniedPayloadV1)
	assert.Equal(t, domain.ErrMsgInsufficientEntitlement, payload.Reason)
}

func TestPublishFailureCountsHandlerError(t *testing.T) {
	bus := event.NewMemoryBus()
	bus.Subscribe(event.SpinDenied, func(context.Context, event.Event) error {
		return errors.New("notifier down")
	})

	repo := userstate.NewRepository(storage.NewMemoryStore())
	svc, err := NewService(
		Config{Table: testTable(t), SpinPrice: 100, SpinDuration: time.Millisecond},
		repo, AlwaysReady(), bus)
	require.NoError(t, err)

	before := promtestutil.ToFloat64(
		metrics.EventHandlerErrors.WithLabelValues(string(event.SpinDenied)))

	_, err = svc.RequestSpin(context.Background(), "broke")
	require.ErrorIs(t, err, domain.ErrInsufficientEntitlement)

	after := promtestutil.ToFloat64(
		metrics.EventHandlerErrors.WithLabelValues(string(event.SpinDenied)))
	assert.Equal(t, before+1, after)
}

func TestRequestSpin_FreeSpinConsumedFirst(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100})
	env.seed(t, "u1", 0, 1)

	ctx := context.Background()
	result, err := env.svc.RequestSpin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Balance)
	assert.Equal(t, 0, result.FreeSpins)

	env.settled(t, "u1")

	// The free spin is spent; with a zero balance the next request is denied.
	_, err = env.svc.RequestSpin(ctx, "u1")
	require.ErrorIs(t, err, domain.ErrInsufficientEntitlement)
}

func TestRequestSpin_FreePlay(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 0})
	env.seed(t, "u1", 0, 0)

	result, err := env.svc.RequestSpin(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Balance, "free play never touches the balance")

	env.settled(t, "u1")

	_, err = env.svc.RequestSpin(context.Background(), "u1")
	require.NoError(t, err, "free play spins are unlimited")
}

func TestFreeSpinGrantForFreshUsers(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100, FreeSpinGrant: 2})

	state, err := env.svc.State(context.Background(), "newcomer")
	require.NoError(t, err)
	assert.Equal(t, 2, state.FreeSpins)

	// A user with any recorded activity gets no grant.
	env.seed(t, "veteran", 50, 0)
	state, err = env.svc.State(context.Background(), "veteran")
	require.NoError(t, err)
	assert.Equal(t, 0, state.FreeSpins)
	assert.Equal(t, 50, state.Balance)
}

func TestCredit(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100})
	env.seed(t, "u1", 10, 0)

	require.NoError(t, env.svc.Credit(context.Background(), "u1", 500, 3))

	state, err := env.svc.State(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 510, state.Balance)
	assert.Equal(t, 3, state.FreeSpins)
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100})
	env.seed(t, "u1", 200, 0)

	_, err := env.svc.RequestSpin(context.Background(), "u1")
	require.NoError(t, err)
	env.settled(t, "u1")

	// A second service over the same store sees the debit and the record.
	bus := event.NewMemoryBus()
	svc, err := NewService(Config{Table: testTable(t), SpinPrice: 100, SpinDuration: 10 * time.Millisecond},
		env.repo, AlwaysReady(), bus)
	require.NoError(t, err)

	state, err := svc.State(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 100, state.Balance)

	records, err := svc.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestShutdownWaitsForSettle(t *testing.T) {
	env := newTestEnv(t, Config{SpinPrice: 100, SpinDuration: 50 * time.Millisecond})
	env.seed(t, "u1", 100, 0)

	_, err := env.svc.RequestSpin(context.Background(), "u1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, env.svc.Shutdown(ctx))

	records, err := env.svc.History(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1, "settle fired before shutdown returned")
}
