package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeSplitDonationExample checks the reference 10 XLM donation at 1% fee and 18.0 rate.
func TestComputeSplitDonationExample(t *testing.T) {
	s, err := ComputeSplit(10_000_000, 100, 10, 180_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), s.PlatformFee)
	assert.Equal(t, uint64(9_900_000), s.Net)
	assert.Equal(t, uint64(178_200_000), s.NetSecondary)
	assert.Equal(t, uint64(10_000), s.StakingReward)
}

// TestComputeSplitConservesGross checks gross == net + fee with an exact floored fee across the signed range.
func TestComputeSplitConservesGross(t *testing.T) {
	grosses := []uint64{0, 1, 99, 100, 101, 9_999, 10_000, 1_000_000, 123_456_789, 1 << 40, math.MaxInt64 - 1, math.MaxInt64}
	fees := []uint64{0, 1, 37, 100, 250, 300}
	for _, g := range grosses {
		for _, f := range fees {
			s, err := ComputeSplit(g, f, 10, 10_000)
			require.NoError(t, err, "gross %d fee %d", g, f)
			assert.Equal(t, g, s.Net+s.PlatformFee, "gross %d fee %d", g, f)
			// g*f/10000 split so it never overflows 64 bits
			want := (g/10_000)*f + (g%10_000)*f/10_000
			assert.Equal(t, want, s.PlatformFee, "gross %d fee %d", g, f)
		}
	}
}

// TestComputeSplitFloors checks that small fees truncate instead of rounding.
func TestComputeSplitFloors(t *testing.T) {
	s, err := ComputeSplit(199, 100, 0, 10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), s.PlatformFee)
	assert.Equal(t, uint64(198), s.Net)
	assert.Equal(t, uint64(198), s.NetSecondary)
}

// TestComputeSplitRejectsOverflow checks that a conversion exceeding 64 bits fails instead of wrapping.
func TestComputeSplitRejectsOverflow(t *testing.T) {
	_, err := ComputeSplit(math.MaxUint64, 0, 0, 20_000)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeSplit(100, 20_000, 0, 10_000)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// TestConvert checks the standalone conversion helper.
func TestConvert(t *testing.T) {
	v, err := Convert(1_000_000, 180_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(18_000_000), v)
}
