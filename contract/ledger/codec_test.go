package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfund_ledger/sdk"
)

// TestCampaignCodecRoundTrip checks a fully populated campaign survives storage encoding.
func TestCampaignCodecRoundTrip(t *testing.T) {
	in := Campaign{
		ID:            ID{1, 2, 3},
		Beneficiary:   sdk.Address("stellar:ben"),
		Title:         `Surgery "urgent"`,
		Urgency:       UrgencyCritical,
		GoalAmount:    500_000,
		CurrentAmount: 42,
		ExchangeRate:  180_000,
		EndTime:       99,
		KYCVerified:   true,
	}
	raw, err := Encode(in)
	require.NoError(t, err)

	var out Campaign
	require.NoError(t, Decode(raw, &out))
	assert.Equal(t, in, out)
}

// TestDecodeSkipsUnknownFields checks forward compatibility with newer records.
func TestDecodeSkipsUnknownFields(t *testing.T) {
	var p StakingPool
	err := Decode([]byte(`{"apy":500,"future":{"a":[1,2]},"active":true}`), &p)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), p.APY)
	assert.True(t, p.Active)
}

// TestDecodeRejectsUnknownEnum checks a corrupted enum name is an error, not a silent default.
func TestDecodeRejectsUnknownEnum(t *testing.T) {
	var n DynamicNFT
	err := Decode([]byte(`{"growth_stage":"bonsai"}`), &n)
	assert.Error(t, err)
}

// TestIDListCodec checks index chunks and allow-lists.
func TestIDListCodec(t *testing.T) {
	ids := []ID{{1}, {2}}
	raw, err := EncodeIDs(ids)
	require.NoError(t, err)
	back, err := DecodeIDs(raw)
	require.NoError(t, err)
	assert.Equal(t, ids, back)

	raw, err = EncodeAddresses([]sdk.Address{"a", "b"})
	require.NoError(t, err)
	addrs, err := DecodeAddresses(raw)
	require.NoError(t, err)
	assert.Equal(t, []sdk.Address{"a", "b"}, addrs)
}
