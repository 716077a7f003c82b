package contract

import (
	"errors"
	"sort"

	"medfund_ledger/contract/ledger"
)

var errTxnFinished = errors.New("transaction already finished")

// opContext is scoped to the currently executing operation. Every write is staged here
// and reaches the store in one Commit, so a failed operation leaves nothing behind.
// Reads see the staged writes first.
type opContext struct {
	store    Store
	now      uint64
	writes   map[string]*Mutation
	events   []ledger.Event
	hooks    []func()
	finished bool
}

func newOpContext(store Store, now uint64) *opContext {
	return &opContext{
		store:  store,
		now:    now,
		writes: map[string]*Mutation{},
	}
}

// Get returns the staged value if any, otherwise the stored one.
func (c *opContext) Get(key string) ([]byte, bool, error) {
	if m, ok := c.writes[key]; ok {
		if m.Delete {
			return nil, false, nil
		}
		return m.Value, true, nil
	}
	return c.store.Get([]byte(key))
}

// set stages a write, replacing any earlier staged value for the key.
func (c *opContext) set(key string, value []byte) {
	c.writes[key] = &Mutation{Key: []byte(key), Value: value}
}

func (c *opContext) del(key string) {
	c.writes[key] = &Mutation{Key: []byte(key), Delete: true}
}

// emit buffers an event until the commit went through.
func (c *opContext) emit(ev ledger.Event) {
	ev.Timestamp = c.now
	c.events = append(c.events, ev)
}

// onCommit defers fn until the staged writes are durable.
func (c *opContext) onCommit(fn func()) {
	c.hooks = append(c.hooks, fn)
}

// mutations returns the staged writes in key order so commits are deterministic.
func (c *opContext) mutations() []Mutation {
	keys := make([]string, 0, len(c.writes))
	for k := range c.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Mutation, 0, len(keys))
	for _, k := range keys {
		out = append(out, *c.writes[k])
	}
	return out
}

func (c *opContext) commit() error {
	if c.finished {
		return errTxnFinished
	}
	c.finished = true
	if len(c.writes) == 0 {
		return nil
	}
	return c.store.Commit(c.mutations())
}

// rollback drops everything staged so far.
func (c *opContext) rollback() {
	c.finished = true
	c.writes = nil
	c.events = nil
	c.hooks = nil
}
