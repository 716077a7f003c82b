package ledger

import "math"

// SecondsPerYear is the 365-day year used by the reward formula.
const SecondsPerYear uint64 = 365 * 86_400

// MaxPoolAPYBp caps a pool's yearly rate at 1000%.
const MaxPoolAPYBp uint64 = 100_000

// AccruedReward is floor(staked*apyBp*elapsed / (365*86400*10000)), saturating at
// the largest uint64 so a long-running position can always be closed.
// Example payload: AccruedReward(1000, 500, 86400)
func AccruedReward(staked, apyBp, elapsed uint64) uint64 {
	v, ok := mulMulDiv(staked, apyBp, elapsed, SecondsPerYear*BasisPoints)
	if !ok {
		return math.MaxUint64
	}
	return v
}
