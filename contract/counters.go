package contract

import (
	"fmt"
	"strconv"

	"medfund_ledger/contract/ledger"
)

// getCount reads the string counter under the key and defaults to zero, nothing magical here.
func getCount(r Reader, key string) (uint64, error) {
	raw, ok, err := r.Get(key)
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return 0, nil
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter %s: %w", key, err)
	}
	return n, nil
}

// setCount stores uint64 counters back as decimal strings.
func setCount(c *opContext, key string, n uint64) {
	c.set(key, []byte(strconv.FormatUint(n, 10)))
}

// nextSequence bumps a per-kind counter and returns the new value.
// Counters only ever grow, so (kind, value) never repeats.
func nextSequence(c *opContext, key string) (uint64, error) {
	n, err := getCount(c, key)
	if err != nil {
		return 0, err
	}
	n++
	setCount(c, key, n)
	return n, nil
}

// allocateID bumps the counter and hashes the preimage with the new value appended.
func (e *Engine) allocateID(c *opContext, counter string, pre *preimage) (ledger.ID, error) {
	seq, err := nextSequence(c, counter)
	if err != nil {
		return ledger.ID{}, err
	}
	pre.uint64(seq)
	return ledger.ID(e.hasher.Sum256(pre.bytes())), nil
}
