package contract

import (
	"medfund_ledger/contract/ledger"
)

// loadStats reads the platform aggregates, zero valued before the first write.
func loadStats(r Reader) (ledger.PlatformStats, error) {
	s, _, err := getRecord[ledger.PlatformStats](r, statsKey)
	return s, err
}

func saveStats(c *opContext, s *ledger.PlatformStats) error {
	return putRecord(c, statsKey, s)
}

// updateStats applies fn to the aggregates inside the current operation.
func updateStats(c *opContext, fn func(s *ledger.PlatformStats)) error {
	s, err := loadStats(c)
	if err != nil {
		return err
	}
	fn(&s)
	return saveStats(c, &s)
}

// subFloor subtracts without wrapping, aggregates never go below zero.
func subFloor(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// addStakingRewards grows the platform-wide reward pool, ErrInvalidAmount on overflow.
func addStakingRewards(c *opContext, amount uint64) error {
	if amount == 0 {
		return nil
	}
	cur, err := getCount(c, StakingRewardsTotal)
	if err != nil {
		return err
	}
	next, err := ledger.AddAmounts(cur, amount)
	if err != nil {
		return err
	}
	setCount(c, StakingRewardsTotal, next)
	return nil
}

// addPaidRewards records rewards handed out on unstake. The total saturates,
// closing a position must not fail on bookkeeping.
func addPaidRewards(c *opContext, amount uint64) error {
	if amount == 0 {
		return nil
	}
	cur, err := getCount(c, StakingRewardsTotal)
	if err != nil {
		return err
	}
	setCount(c, StakingRewardsTotal, ledger.SaturatingAdd(cur, amount))
	return nil
}
