package contract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// Engine is the ledger and incentive engine. Every public operation runs as one
// staged transaction under a single writer lock.
type Engine struct {
	mu           sync.Mutex
	store        Store
	clock        sdk.Clock
	hasher       sdk.Hasher
	gate         IdentityGate
	logger       *slog.Logger
	sinks        []EventSink
	promRegistry prometheus.Registerer
	metrics      *engineMetrics
	achievements ledger.AchievementRules
	scoreCap     uint64
}

// New creates an engine on top of store
func New(store Store, opts ...EngineOptionFunc) (*Engine, error) {
	if store == nil {
		return nil, errors.New("engine: nil store")
	}
	e := &Engine{
		store:        store,
		clock:        sdk.SystemClock{},
		hasher:       sdk.SHA256Hasher{},
		achievements: ledger.DefaultAchievements(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if e.gate == nil {
		e.gate = kycGate{}
	}
	e.metrics = newEngineMetrics(e.promRegistry)
	return e, nil
}

// update runs fn against a fresh staged context and commits only when fn succeeded.
func (e *Engine) update(op string, fn func(c *opContext) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := newOpContext(e.store, e.clock.Now())
	if err := fn(c); err != nil {
		c.rollback()
		e.metrics.observe(op, err)
		e.logger.Debug(
			fmt.Sprintf("%s rejected: %s", op, err),
			"component", "ledger",
		)
		return err
	}
	events, hooks := c.events, c.hooks
	if err := c.commit(); err != nil {
		e.metrics.observe(op, err)
		e.logger.Error(
			fmt.Sprintf("%s commit failed: %s", op, err),
			"component", "ledger",
		)
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	e.metrics.observe(op, nil)
	for _, h := range hooks {
		h()
	}
	e.publish(events)
	return nil
}

// publish logs every committed event line and forwards the batch to the sinks.
// Sink failures are logged, the state change already happened.
func (e *Engine) publish(events []ledger.Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		e.logger.Info(ev.Line, "component", "ledger", "kind", ev.Kind)
	}
	e.metrics.record(events)
	for _, s := range e.sinks {
		if err := s.Publish(events); err != nil {
			e.logger.Warn(
				fmt.Sprintf("event sink failed: %s", err),
				"component", "ledger",
			)
		}
	}
}

type storeReader struct {
	store Store
}

func (r storeReader) Get(key string) ([]byte, bool, error) {
	return r.store.Get([]byte(key))
}

// view runs a read-only fn against committed state.
func (e *Engine) view(fn func(r Reader) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(storeReader{store: e.store})
}
