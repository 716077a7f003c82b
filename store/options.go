package store

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type BadgerStoreOptionFunc func(*BadgerStore)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) BadgerStoreOptionFunc {
	return func(b *BadgerStore) {
		b.logger = logger
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) BadgerStoreOptionFunc {
	return func(b *BadgerStore) {
		b.promRegistry = registry
	}
}

// WithDataDir specifies the data directory to use for storage.
// An empty dir keeps everything in memory.
func WithDataDir(dataDir string) BadgerStoreOptionFunc {
	return func(b *BadgerStore) {
		b.dataDir = dataDir
	}
}

// WithGc specifies whether value log garbage collection is enabled
func WithGc(enabled bool) BadgerStoreOptionFunc {
	return func(b *BadgerStore) {
		b.gcEnabled = enabled
	}
}

// WithValueThreshold specifies the value threshold for keeping values in LSM tree
func WithValueThreshold(threshold int64) BadgerStoreOptionFunc {
	return func(b *BadgerStore) {
		b.valueThreshold = threshold
	}
}
