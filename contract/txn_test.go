package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// =============================================================================
// Staged Transaction Tests
// =============================================================================

// TestOpContextReadsOwnWrites checks the overlay wins over the store, deletes included.
func TestOpContextReadsOwnWrites(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Commit([]Mutation{{Key: []byte("a"), Value: []byte("1")}}))

	c := newOpContext(store, 10)
	v, ok, err := c.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", string(v))

	c.set("a", []byte("2"))
	c.set("b", []byte("3"))
	v, _, _ = c.Get("a")
	assert.Equal(t, "2", string(v))

	c.del("a")
	_, ok, err = c.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	// nothing reached the store yet
	v, ok, _ = store.Get([]byte("a"))
	assert.True(t, ok)
	assert.Equal(t, "1", string(v))

	muts := c.mutations()
	require.Len(t, muts, 2)
	assert.Equal(t, "a", string(muts[0].Key))
	assert.True(t, muts[0].Delete)
	assert.Equal(t, "b", string(muts[1].Key))

	require.NoError(t, c.commit())
	_, ok, _ = store.Get([]byte("a"))
	assert.False(t, ok)
	assert.ErrorIs(t, c.commit(), errTxnFinished)
}

// TestOpContextRollback checks rollback drops writes events and hooks.
func TestOpContextRollback(t *testing.T) {
	store := NewMemoryStore()
	c := newOpContext(store, 10)
	c.set("a", []byte("1"))
	c.emit(ledger.Event{Kind: "x"})
	c.onCommit(func() { t.Fatal("hook ran after rollback") })
	c.rollback()

	assert.Nil(t, c.events)
	assert.Nil(t, c.hooks)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, store.Commits())
}

// TestEmptyCommitSkipsStore checks read-only operations never touch the store.
func TestEmptyCommitSkipsStore(t *testing.T) {
	store := NewMemoryStore()
	c := newOpContext(store, 10)
	require.NoError(t, c.commit())
	assert.Equal(t, 0, store.Commits())
}

// =============================================================================
// Counter & Index Tests
// =============================================================================

// TestNextSequence checks counters start at one and persist as decimal strings.
func TestNextSequence(t *testing.T) {
	c := newOpContext(NewMemoryStore(), 0)
	for want := uint64(1); want <= 3; want++ {
		n, err := nextSequence(c, CampaignsCount)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	raw, _, _ := c.Get(CampaignsCount)
	assert.Equal(t, "3", string(raw))

	c.set(DonationsCount, []byte("x"))
	_, err := nextSequence(c, DonationsCount)
	assert.Error(t, err)
}

// TestIndexChunks checks listing survives a chunk boundary in order.
func TestIndexChunks(t *testing.T) {
	c := newOpContext(NewMemoryStore(), 0)
	total := maxChunkSize + 3
	want := make([]ledger.ID, 0, total)
	for i := 0; i < total; i++ {
		id := ledger.ID{byte(i), byte(i >> 8)}
		want = append(want, id)
		require.NoError(t, appendToIndex(c, idxCampaigns, id))
	}
	chunks, err := getCount(c, chunkCounterKey(idxCampaigns))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), chunks)

	got, err := listIndex(c, idxCampaigns)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestAllocateIDDependsOnHasher checks the same preimage gives different ids per hasher.
func TestAllocateIDDependsOnHasher(t *testing.T) {
	sha, err := New(NewMemoryStore(), WithHasher(sdk.SHA256Hasher{}))
	require.NoError(t, err)
	b3, err := New(NewMemoryStore(), WithHasher(sdk.Blake3Hasher{}))
	require.NoError(t, err)

	pre := func() *preimage { return newPreimage().str("x").uint64(1) }
	a, err := sha.allocateID(newOpContext(sha.store, 0), CampaignsCount, pre())
	require.NoError(t, err)
	b, err := b3.allocateID(newOpContext(b3.store, 0), CampaignsCount, pre())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	again, err := sha.allocateID(newOpContext(sha.store, 0), CampaignsCount, pre())
	require.NoError(t, err)
	assert.Equal(t, a, again, "uncommitted counters restart")
}

// TestPreimageLengthPrefix checks adjacent strings cannot be shifted into each other.
func TestPreimageLengthPrefix(t *testing.T) {
	a := newPreimage().str("ab").str("c").bytes()
	b := newPreimage().str("a").str("bc").bytes()
	assert.NotEqual(t, a, b)
}

// =============================================================================
// Payload Tests
// =============================================================================

// TestUnwrapPayload checks quoting is stripped once and empty fields read as "".
func TestUnwrapPayload(t *testing.T) {
	assert.Equal(t, "a|b", unwrapPayload(`"a|b"`))
	assert.Equal(t, "a|b", unwrapPayload(`'a|b'`))
	assert.Equal(t, "a|b", unwrapPayload("  a|b "))

	f := splitPayload("1| yes |")
	assert.Equal(t, "yes", f.get(1))
	assert.Equal(t, "", f.get(9))
	assert.True(t, f.bool(1))
	assert.Nil(t, f.optionalBool(2))
	n, err := f.uint(0, "n")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
	assert.Nil(t, splitPayload(""))
}
