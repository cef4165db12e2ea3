// Package spin orchestrates a spin end to end: entitlement debit, outcome
// draw, rotation plan, deferred settle, history record and result events.
package spin

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dsolodov/foodwheel/internal/domain"
	"github.com/dsolodov/foodwheel/internal/event"
	"github.com/dsolodov/foodwheel/internal/logger"
	"github.com/dsolodov/foodwheel/internal/metrics"
	"github.com/dsolodov/foodwheel/internal/userstate"
	"github.com/dsolodov/foodwheel/internal/wheel"
	"github.com/dsolodov/foodwheel/internal/wincode"
)

// DefaultSessionCacheSize bounds how many user sessions stay resident.
// Sessions are tiny; the bound only matters for very long-lived processes.
const DefaultSessionCacheSize = 1024

// Config carries the game parameters of the spin service.
type Config struct {
	Table            *wheel.SectorTable
	SpinPrice        int           // minor units per spin; 0 is free play
	FreeSpinGrant    int           // welcome free spins for previously-unseen users
	SpinDuration     time.Duration // animation length; settle fires after it
	SessionCacheSize int           // 0 means DefaultSessionCacheSize
}

// SpinResult is what the rendering layer needs to animate an accepted spin.
// The redemption code is not here: it exists only after settle.
type SpinResult struct {
	SectorIndex    int     `json:"sector_index"`
	IsWinning      bool    `json:"is_winning"`
	PrizeLabel     string  `json:"prize_label,omitempty"`
	PrizeIcon      string  `json:"prize_icon,omitempty"`
	TargetRotation float64 `json:"target_rotation"`
	DurationMs     int64   `json:"duration_ms"`
	Balance        int     `json:"balance"`
	FreeSpins      int     `json:"free_spins"`
}

// PlayerState is the display snapshot of one user.
type PlayerState struct {
	Balance   int  `json:"balance"`
	FreeSpins int  `json:"free_spins"`
	Spinning  bool `json:"spinning"`
}

// Service defines the interface for spin operations
type Service interface {
	RequestSpin(ctx context.Context, userID string) (*SpinResult, error)
	State(ctx context.Context, userID string) (*PlayerState, error)
	History(ctx context.Context, userID string, limit int) ([]domain.HistoryRecord, error)
	Credit(ctx context.Context, userID string, amount, spins int) error
	Shutdown(ctx context.Context) error
}

type service struct {
	cfg      Config
	repo     *userstate.Repository
	surface  Surface
	eventBus event.Bus

	selector *wheel.Selector
	planner  *wheel.Planner
	codes    *wincode.Generator

	sessions *lru.Cache[string, *session]
	inflight map[string]*session // pinned while a spin is mid-flight
	mu       sync.Mutex          // serializes session creation, guards inflight
	wg       sync.WaitGroup
}

// NewService creates a new spin service
func NewService(cfg Config, repo *userstate.Repository, surface Surface, eventBus event.Bus) (Service, error) {
	if cfg.Table == nil {
		return nil, domain.ErrEmptySectorTable
	}

	size := cfg.SessionCacheSize
	if size <= 0 {
		size = DefaultSessionCacheSize
	}
	sessions, err := lru.New[string, *session](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &service{
		cfg:      cfg,
		repo:     repo,
		surface:  surface,
		eventBus: eventBus,
		selector: wheel.NewSelector(),
		planner:  wheel.NewPlanner(),
		codes:    wincode.NewGenerator(),
		sessions: sessions,
		inflight: make(map[string]*session),
	}, nil
}

// RequestSpin runs the Idle -> Spinning transition. Order matters and is
// load-bearing:
//
//  1. re-entrancy guard - the only defense against double-spending via
//     rapid repeated input, so it runs before any other side effect;
//  2. surface lookup - nothing is ever charged without a resolvable spin;
//  3. affordability guard, then debit (exactly one entitlement), outcome
//     draw, rotation plan, synchronous persist;
//  4. deferred settle scheduled for when the animation ends.
func (s *service) RequestSpin(ctx context.Context, userID string) (*SpinResult, error) {
	log := logger.FromContext(ctx)

	sess, err := s.getSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()

	if sess.spinning {
		sess.mu.Unlock()
		return nil, domain.ErrSpinInProgress
	}

	if err := s.surface.Locate(ctx, userID); err != nil {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderingSurfaceMissing, err)
	}

	if !sess.ledger.CanAfford(s.cfg.SpinPrice) {
		sess.mu.Unlock()
		s.publish(ctx, event.NewSpinDeniedEvent(userID, domain.ErrMsgInsufficientEntitlement))
		return nil, fmt.Errorf("%w: spin costs %d", domain.ErrInsufficientEntitlement, s.cfg.SpinPrice)
	}

	if err := sess.ledger.DebitForSpin(ctx, s.cfg.SpinPrice); err != nil {
		sess.mu.Unlock()
		return nil, err
	}

	index := s.selector.Pick(s.cfg.Table)
	sector := s.cfg.Table.Sector(index)

	outcome := domain.SpinOutcome{
		SectorIndex: index,
		IsWinning:   sector.IsWinning,
	}
	if sector.IsWinning {
		outcome.PrizeLabel = sector.Label
		outcome.PrizeIcon = sector.Icon
	}

	sess.rotation = s.planner.Plan(sess.rotation, index, s.cfg.Table)

	sess.spinning = true
	s.mu.Lock()
	s.inflight[userID] = sess
	s.mu.Unlock()
	s.wg.Add(1)
	sess.pending = scheduleSettle(s.cfg.SpinDuration, func() {
		s.settle(sess, outcome)
	})

	result := &SpinResult{
		SectorIndex:    index,
		IsWinning:      outcome.IsWinning,
		PrizeLabel:     outcome.PrizeLabel,
		PrizeIcon:      outcome.PrizeIcon,
		TargetRotation: sess.rotation,
		DurationMs:     s.cfg.SpinDuration.Milliseconds(),
		Balance:        sess.ledger.Balance(),
		FreeSpins:      sess.ledger.FreeSpins(),
	}
	sess.mu.Unlock()

	log.Info("Spin accepted",
		"user_id", userID, "sector", index, "winning", outcome.IsWinning,
		"rotation", result.TargetRotation)

	return result, nil
}

// settle finalizes one spin after the animation duration. Wins get a
// redemption code and a win record; losses a lose record. Either way the
// session returns to Idle and a resolution event is published.
func (s *service) settle(sess *session, outcome domain.SpinOutcome) {
	defer s.wg.Done()

	// Request context is long gone by settle time.
	ctx := context.Background()
	log := logger.FromContext(ctx)

	sess.mu.Lock()

	record := domain.HistoryRecord{
		Timestamp: time.Now().UTC(),
	}
	if outcome.IsWinning {
		outcome.Code = s.codes.Generate()
		record.Kind = domain.HistoryWin
		record.PrizeLabel = outcome.PrizeLabel
		record.PrizeIcon = outcome.PrizeIcon
		record.Code = outcome.Code
	} else {
		record.Kind = domain.HistoryLose
	}

	if err := sess.history.Append(ctx, record); err != nil {
		log.Error("Failed to persist spin record", "user_id", sess.userID, "error", err)
	}

	sess.spinning = false
	sess.pending = nil
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.inflight, sess.userID)
	s.sessions.Add(sess.userID, sess)
	s.mu.Unlock()

	s.publish(ctx, event.NewSpinResolvedEvent(sess.userID, outcome))

	log.Info("Spin settled",
		"user_id", sess.userID, "kind", record.Kind, "prize", record.PrizeLabel)
}

// State returns the display snapshot for one user.
func (s *service) State(ctx context.Context, userID string) (*PlayerState, error) {
	sess, err := s.getSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return &PlayerState{
		Balance:   sess.ledger.Balance(),
		FreeSpins: sess.ledger.FreeSpins(),
		Spinning:  sess.spinning,
	}, nil
}

// History returns up to limit newest-first records.
func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.HistoryRecord, error) {
	sess, err := s.getSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	records := make([]domain.HistoryRecord, 0, limit)
	for record := range sess.history.Recent(limit) {
		records = append(records, record)
	}
	return records, nil
}

// Credit implements [payment.Crediter]: a confirmed top-up lands here.
func (s *service) Credit(ctx context.Context, userID string, amount, spins int) error {
	sess, err := s.getSession(ctx, userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.ledger.Credit(ctx, amount, spins)
}

// Shutdown waits for pending settles to fire.
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// getSession returns the cached session for userID, loading state on first
// use. A session with a spin in flight is pinned in the inflight map, so a
// cache eviction can never produce a rebuilt session that forgets the
// Spinning flag; an evicted idle session simply reloads from storage.
func (s *service) getSession(ctx context.Context, userID string) (*session, error) {
	if sess, ok := s.sessions.Get(userID); ok {
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.inflight[userID]; ok {
		s.sessions.Add(userID, sess)
		return sess, nil
	}

	// Lost the race: someone else built it while we waited.
	if sess, ok := s.sessions.Get(userID); ok {
		return sess, nil
	}

	sess, err := newSession(ctx, userID, s.repo)
	if err != nil {
		return nil, err
	}

	if s.cfg.FreeSpinGrant > 0 && isFresh(sess.state) {
		if err := sess.ledger.Credit(ctx, 0, s.cfg.FreeSpinGrant); err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Info("Granted welcome spins",
			"user_id", userID, "spins", s.cfg.FreeSpinGrant)
	}

	s.sessions.Add(userID, sess)
	return sess, nil
}

// isFresh reports whether the state shows no recorded activity.
func isFresh(state *domain.UserState) bool {
	return state.BalanceMinorUnits == 0 && state.FreeSpins == 0 && len(state.History) == 0
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Warn("Failed to publish spin event",
			"type", evt.Type, "error", err)
	}
}
