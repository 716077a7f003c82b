package contract

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

type EngineOptionFunc func(*Engine)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) EngineOptionFunc {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) EngineOptionFunc {
	return func(e *Engine) {
		e.promRegistry = registry
	}
}

// WithClock replaces the wall clock, tests use sdk.FixedClock
func WithClock(clock sdk.Clock) EngineOptionFunc {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithHasher specifies the id hasher
func WithHasher(hasher sdk.Hasher) EngineOptionFunc {
	return func(e *Engine) {
		e.hasher = hasher
	}
}

// WithIdentityGate replaces the built-in KYC and role checks
func WithIdentityGate(gate IdentityGate) EngineOptionFunc {
	return func(e *Engine) {
		e.gate = gate
	}
}

// WithEventSink adds a receiver for committed events
func WithEventSink(sink EventSink) EngineOptionFunc {
	return func(e *Engine) {
		e.sinks = append(e.sinks, sink)
	}
}

// WithAchievements specifies the nft milestone configuration
func WithAchievements(rules ledger.AchievementRules) EngineOptionFunc {
	return func(e *Engine) {
		e.achievements = rules
	}
}

// WithScoreCap clamps trust scores, zero disables the cap
func WithScoreCap(limit uint64) EngineOptionFunc {
	return func(e *Engine) {
		e.scoreCap = limit
	}
}
