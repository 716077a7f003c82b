package journal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfund_ledger/contract"
	"medfund_ledger/contract/ledger"
	"medfund_ledger/journal"
	"medfund_ledger/sdk"
)

func openJournal(t *testing.T) *journal.Journal {
	t.Helper()
	j, err := journal.New("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

// TestPublishAndRecent checks that entries come back newest first.
func TestPublishAndRecent(t *testing.T) {
	j := openJournal(t)
	require.NoError(t, j.Publish([]ledger.Event{
		{Kind: "dn", Subject: "c1", Actor: "a", Amount: 10, Line: "dn|1", Timestamp: 1},
		{Kind: "dn", Subject: "c1", Actor: "b", Amount: 5, Line: "dn|2", Timestamp: 2},
	}))
	require.NoError(t, j.Publish([]ledger.Event{
		{Kind: "rd", Subject: "c1", Actor: "a", Amount: 10, Line: "rd|1", Timestamp: 3},
	}))

	recent, err := j.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "rd|1", recent[0].Line)
	assert.Equal(t, "dn|2", recent[1].Line)
	assert.Len(t, recent[0].UUID, 36)

	n, err := j.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	totals, err := j.KindTotals()
	require.NoError(t, err)
	assert.Equal(t, uint64(15), totals["dn"])
	assert.Equal(t, uint64(10), totals["rd"])
}

// TestPublishFullWidthAmount checks amounts above the signed range are stored and read back intact.
func TestPublishFullWidthAmount(t *testing.T) {
	j := openJournal(t)
	require.NoError(t, j.Publish([]ledger.Event{
		{Kind: "dn", Subject: "c9", Actor: "a", Amount: math.MaxUint64, Line: "dn|big", Timestamp: 1},
		{Kind: "dn", Subject: "c9", Actor: "b", Amount: 1 << 63, Line: "dn|half", Timestamp: 2},
	}))

	entries, err := j.BySubject("c9")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(math.MaxUint64), entries[0].Event().Amount)
	assert.Equal(t, uint64(1<<63), entries[1].Event().Amount)

	totals, err := j.KindTotals()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), totals["dn"])
}

// TestPublishEmpty checks that an empty batch is a no-op.
func TestPublishEmpty(t *testing.T) {
	j := openJournal(t)
	require.NoError(t, j.Publish(nil))
	n, err := j.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

// TestSeparateMemoryJournals checks that two in-memory journals do not share rows.
func TestSeparateMemoryJournals(t *testing.T) {
	a := openJournal(t)
	b := openJournal(t)
	require.NoError(t, a.Publish([]ledger.Event{{Kind: "cc", Subject: "x"}}))
	n, err := b.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

// TestJournalAsEngineSink checks that committed engine events land in the journal in order.
func TestJournalAsEngineSink(t *testing.T) {
	j := openJournal(t)
	admin := sdk.Address("stellar:admin")
	e, err := contract.New(
		contract.NewMemoryStore(),
		contract.WithClock(sdk.NewFixedClock(1_756_857_600)),
		contract.WithEventSink(j),
	)
	require.NoError(t, err)
	require.NoError(t, e.Initialize(admin, contract.InitParams{FeeBp: 100, RewardBp: 10, ExchangeRate: 180_000}))
	require.NoError(t, e.SetPlatformFee(admin, 250))
	// rejected operations leave no trace
	require.Error(t, e.SetPlatformFee(sdk.Address("stellar:outsider"), 300))

	recent, err := j.Recent(0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "cfg", recent[0].Kind)
	assert.Equal(t, "in", recent[1].Kind)
	assert.Equal(t, uint64(1_756_857_600), recent[0].Timestamp)

	fee, err := j.BySubject("fee_bp")
	require.NoError(t, err)
	require.Len(t, fee, 1)
	assert.Equal(t, "cfg|by:stellar:admin|f:fee_bp|old:100|new:250", fee[0].Line)
	assert.Equal(t, "cfg", fee[0].Event().Kind)
}
