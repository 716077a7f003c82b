package ledger

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

// referenceReward evaluates the reward formula with arbitrary precision.
func referenceReward(staked, apy, elapsed uint64) uint64 {
	v := new(big.Int).SetUint64(staked)
	v.Mul(v, new(big.Int).SetUint64(apy))
	v.Mul(v, new(big.Int).SetUint64(elapsed))
	v.Quo(v, new(big.Int).SetUint64(SecondsPerYear*BasisPoints))
	return v.Uint64()
}

// TestAccruedRewardTruncates checks that one day at 5% APY on 1000 units floors to zero.
func TestAccruedRewardTruncates(t *testing.T) {
	assert.Equal(t, uint64(0), AccruedReward(1000, 500, 86_400))
}

// TestAccruedRewardMatchesReference checks elapsed of zero, one lock and ten locks against
// the formula evaluated without intermediate overflow.
func TestAccruedRewardMatchesReference(t *testing.T) {
	const lock = 30 * 86_400
	staked := uint64(50_000_000_000)
	apy := uint64(1_200)
	for _, elapsed := range []uint64{0, lock, 10 * lock} {
		want := referenceReward(staked, apy, elapsed)
		assert.Equal(t, want, AccruedReward(staked, apy, elapsed), "elapsed %d", elapsed)
	}
	// staked*apy*elapsed is far beyond 64 bits for one lock already
	assert.Equal(t, uint64(493_150_684), AccruedReward(staked, apy, lock))
}

// TestAccruedRewardFullYear checks a whole year pays exactly the APY.
func TestAccruedRewardFullYear(t *testing.T) {
	assert.Equal(t, uint64(50_000), AccruedReward(1_000_000, 500, SecondsPerYear))
}

// TestAccruedRewardSaturates checks that an unrepresentable reward clamps instead of failing.
func TestAccruedRewardSaturates(t *testing.T) {
	got := AccruedReward(math.MaxUint64, MaxPoolAPYBp, 100*SecondsPerYear)
	assert.Equal(t, uint64(math.MaxUint64), got)
}

// TestAddAmounts checks that running totals reject overflow instead of wrapping.
func TestAddAmounts(t *testing.T) {
	v, err := AddAmounts(1, 2, 3)
	assert.NoError(t, err)
	assert.Equal(t, uint64(6), v)

	v, err = AddAmounts(math.MaxUint64-1, 1)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, err = AddAmounts(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = AddAmounts(math.MaxUint64/2+1, math.MaxUint64/2+1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// TestSaturatingAdd checks clamping at the top of the range.
func TestSaturatingAdd(t *testing.T) {
	assert.Equal(t, uint64(5), SaturatingAdd(2, 3))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64, 1))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64-1, 7))
}
