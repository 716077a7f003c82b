package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/prometheus/client_golang/prometheus"

	"medfund_ledger/contract"
)

// DefaultValueThreshold keeps small ledger records inside the LSM tree.
const DefaultValueThreshold = 1 << 10

// BadgerStore persists ledger state in badger. Each engine commit is one badger
// update transaction, so a batch lands completely or not at all.
type BadgerStore struct {
	promRegistry   prometheus.Registerer
	metrics        *storeMetrics
	db             *badger.DB
	logger         *slog.Logger
	gcTicker       *time.Ticker
	gcStopCh       chan struct{}
	gcWg           sync.WaitGroup
	dataDir        string
	valueThreshold int64
	gcEnabled      bool
}

// New opens the store, in memory when no data dir was given
func New(opts ...BadgerStoreOptionFunc) (*BadgerStore, error) {
	b := &BadgerStore{
		valueThreshold: DefaultValueThreshold,
		gcEnabled:      true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		b.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var badgerOpts badger.Options
	if b.dataDir == "" {
		// No dataDir, use in-memory config
		badgerOpts = badger.DefaultOptions("").
			WithLogger(NewBadgerLogger(b.logger)).
			// The default INFO logging is a bit verbose
			WithLoggingLevel(badger.WARNING).
			WithInMemory(true).
			WithValueThreshold(b.valueThreshold)
		// value log gc is meaningless without a value log on disk
		b.gcEnabled = false
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(b.dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(b.dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		badgerOpts = badger.DefaultOptions(filepath.Join(b.dataDir, "ledger")).
			WithLogger(NewBadgerLogger(b.logger)).
			WithLoggingLevel(badger.WARNING).
			WithValueThreshold(b.valueThreshold).
			WithCompression(options.Snappy)
	}
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	b.db = db
	if b.promRegistry != nil {
		b.registerMetrics()
	}
	if b.gcEnabled {
		b.gcTicker = time.NewTicker(5 * time.Minute)
		b.gcStopCh = make(chan struct{})
		b.gcWg.Add(1)
		go b.valueLogGc(b.gcTicker, b.gcStopCh)
	}
	return b, nil
}

func (b *BadgerStore) valueLogGc(t *time.Ticker, stop <-chan struct{}) {
	defer b.gcWg.Done()
	for {
		select {
		case <-t.C:
		again:
			err := b.db.RunValueLogGC(0.5)
			if err != nil {
				if !errors.Is(err, badger.ErrNoRewrite) {
					b.logger.Warn(
						fmt.Sprintf("ledger DB: GC failure: %s", err),
						"component", "store",
					)
				}
			} else {
				// Run it again if it just ran successfully
				goto again
			}
		case <-stop:
			return
		}
	}
}

// Get reads one key from the latest committed state.
func (b *BadgerStore) Get(key []byte) ([]byte, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Commit writes the whole batch in one badger transaction.
func (b *BadgerStore) Commit(muts []contract.Mutation) error {
	var sets, dels int
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, m := range muts {
			if m.Delete {
				if err := txn.Delete(m.Key); err != nil {
					return err
				}
				dels++
				continue
			}
			if err := txn.Set(m.Key, m.Value); err != nil {
				return err
			}
			sets++
		}
		return nil
	})
	if b.metrics != nil {
		if err != nil {
			b.metrics.commitErrors.Inc()
		} else {
			b.metrics.commits.Inc()
			b.metrics.keysWritten.Add(float64(sets))
			b.metrics.keysDeleted.Add(float64(dels))
		}
	}
	if err != nil {
		return fmt.Errorf("badger commit: %w", err)
	}
	return nil
}

// Keys counts stored keys with the given prefix.
func (b *BadgerStore) Keys(prefix []byte) (int, error) {
	var n int
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Close stops the gc loop and closes badger
func (b *BadgerStore) Close() error {
	if b.gcTicker != nil {
		b.gcTicker.Stop()
		if b.gcStopCh != nil {
			close(b.gcStopCh)
			b.gcStopCh = nil
		}
		// Wait for GC goroutine to finish
		b.gcWg.Wait()
		b.gcTicker = nil
	}
	return b.db.Close()
}
