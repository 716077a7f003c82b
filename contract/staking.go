package contract

import (
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// PoolParams are the terms of a new staking pool.
type PoolParams struct {
	APY        uint64
	LockPeriod uint64
	MinStake   uint64
	MaxStake   uint64
}

// CreateStakingPool opens an active pool with fixed terms.
func (e *Engine) CreateStakingPool(admin sdk.Address, p PoolParams) (ledger.ID, error) {
	var id ledger.ID
	err := e.update("create_pool", func(c *opContext) error {
		if _, err := e.requireAdmin(c, admin); err != nil {
			return err
		}
		if p.MaxStake == 0 || p.MinStake > p.MaxStake || p.APY > ledger.MaxPoolAPYBp {
			return ledger.ErrInvalidAmount
		}
		var err error
		id, err = e.allocateID(c, PoolsCount, newPreimage().
			str("pool").
			uint64(p.APY).
			uint64(p.LockPeriod).
			uint64(c.now))
		if err != nil {
			return err
		}
		pool := ledger.StakingPool{
			ID:         id,
			APY:        p.APY,
			LockPeriod: p.LockPeriod,
			MinStake:   p.MinStake,
			MaxStake:   p.MaxStake,
			Active:     true,
			CreatedAt:  c.now,
		}
		if err := savePool(c, &pool); err != nil {
			return err
		}
		if err := appendToIndex(c, idxPools, id); err != nil {
			return err
		}
		emitPoolCreated(c, admin, &pool)
		return nil
	})
	return id, err
}

// SetPoolActive opens or closes a pool for new stakes. Open positions can still unstake.
func (e *Engine) SetPoolActive(admin sdk.Address, poolID ledger.ID, active bool) error {
	return e.update("set_pool_active", func(c *opContext) error {
		if _, err := e.requireAdmin(c, admin); err != nil {
			return err
		}
		pool, err := loadPool(c, poolID)
		if err != nil {
			return err
		}
		pool.Active = active
		if err := savePool(c, &pool); err != nil {
			return err
		}
		emitPoolActive(c, admin, &pool)
		return nil
	})
}

// Stake opens a position, replacing an unlocked earlier one.
func (e *Engine) Stake(user sdk.Address, poolID ledger.ID, amount uint64) error {
	return e.update("stake", func(c *opContext) error {
		if err := checkAddress(user); err != nil {
			return err
		}
		if _, err := loadActiveConfig(c); err != nil {
			return err
		}
		pool, err := loadPool(c, poolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return ledger.ErrStakingPoolNotFound
		}
		if amount < pool.MinStake {
			return ledger.ErrInsufficientStakingAmount
		}
		if amount > pool.MaxStake {
			return ledger.ErrMaxStakingExceeded
		}
		old, exists, err := loadPosition(c, poolID, user)
		if err != nil {
			return err
		}
		if exists && c.now < old.UnlockTime {
			return ledger.ErrStakingLockPeriodActive
		}

		var prev uint64
		if exists {
			prev = old.StakedAmount
		}
		poolTotal, err := ledger.AddAmounts(subFloor(pool.TotalStaked, prev), amount)
		if err != nil {
			return err
		}
		stats, err := loadStats(c)
		if err != nil {
			return err
		}
		statsTotal, err := ledger.AddAmounts(subFloor(stats.TotalStaked, prev), amount)
		if err != nil {
			return err
		}
		unlock, err := ledger.AddAmounts(c.now, pool.LockPeriod)
		if err != nil {
			return err
		}

		pos := ledger.StakingPosition{
			Staker:       user,
			PoolID:       poolID,
			StakedAmount: amount,
			StakedAt:     c.now,
			UnlockTime:   unlock,
		}
		if !exists {
			pool.Participants++
		}
		pool.TotalStaked = poolTotal
		if err := savePosition(c, &pos); err != nil {
			return err
		}
		if err := savePool(c, &pool); err != nil {
			return err
		}
		stats.TotalStaked = statsTotal
		if err := saveStats(c, &stats); err != nil {
			return err
		}
		staked := statsTotal
		emitStaked(c, &pos)
		c.onCommit(func() { e.metrics.setStaked(staked) })
		return nil
	})
}

// Unstake closes the position once unlocked and returns the accrued reward.
func (e *Engine) Unstake(user sdk.Address, poolID ledger.ID) (uint64, error) {
	var reward uint64
	err := e.update("unstake", func(c *opContext) error {
		if _, err := loadActiveConfig(c); err != nil {
			return err
		}
		pos, ok, err := loadPosition(c, poolID, user)
		if err != nil {
			return err
		}
		if !ok {
			return ledger.ErrStakingPositionNotFound
		}
		if c.now < pos.UnlockTime {
			return ledger.ErrStakingLockPeriodActive
		}
		pool, err := loadPool(c, poolID)
		if err != nil {
			return err
		}
		reward = ledger.AccruedReward(pos.StakedAmount, pool.APY, c.now-pos.StakedAt)
		c.del(positionKey(poolID, user))
		pool.TotalStaked = subFloor(pool.TotalStaked, pos.StakedAmount)
		pool.Participants = subFloor(pool.Participants, 1)
		pool.TotalRewards = ledger.SaturatingAdd(pool.TotalRewards, reward)
		if err := savePool(c, &pool); err != nil {
			return err
		}
		var staked uint64
		if err := updateStats(c, func(s *ledger.PlatformStats) {
			s.TotalStaked = subFloor(s.TotalStaked, pos.StakedAmount)
			s.StakingRewardsDistributed = ledger.SaturatingAdd(s.StakingRewardsDistributed, reward)
			staked = s.TotalStaked
		}); err != nil {
			return err
		}
		if err := addPaidRewards(c, reward); err != nil {
			return err
		}
		emitUnstaked(c, &pos, reward)
		paid := reward
		c.onCommit(func() {
			e.metrics.setStaked(staked)
			e.metrics.addRewardPaid(paid)
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reward, nil
}
