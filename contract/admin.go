package contract

import (
	"errors"
	"strconv"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// InitParams are the genesis settings. Zero values fall back to the platform defaults.
type InitParams struct {
	FeeBp                   uint64
	RewardBp                uint64
	SpeiConfig              string
	ExchangeRate            uint64
	KYCRequired             bool
	MinDonation             uint64
	MaxCampaignDurationDays uint64
}

// Initialize writes the platform config, seeds the allow-lists with admin and zeroes the stats.
// It can run exactly once.
func (e *Engine) Initialize(admin sdk.Address, p InitParams) error {
	return e.update("initialize", func(c *opContext) error {
		if err := checkAddress(admin); err != nil {
			return err
		}
		if _, err := loadConfig(c); err == nil {
			return ledger.ErrAlreadyInitialized
		} else if !errors.Is(err, ledger.ErrNotInitialized) {
			return err
		}
		if p.FeeBp > MaxPlatformFeeBp {
			return ledger.ErrInvalidFee
		}
		if p.RewardBp > MaxRewardRateBp {
			return ledger.ErrInvalidRewardRate
		}
		cfg := ledger.PlatformConfig{
			Admin:                   admin,
			FeeBp:                   p.FeeBp,
			RewardBp:                p.RewardBp,
			ExchangeRate:            orDefault(p.ExchangeRate, FallbackExchangeRate),
			MinDonation:             orDefault(p.MinDonation, FallbackMinDonation),
			MaxCampaignDurationDays: orDefault(p.MaxCampaignDurationDays, FallbackMaxCampaignDays),
			KYCRequired:             p.KYCRequired,
			SpeiConfig:              p.SpeiConfig,
			InitializedAt:           c.now,
		}
		if err := saveConfig(c, &cfg); err != nil {
			return err
		}
		if err := saveRole(c, ledger.RoleAdmin, []sdk.Address{admin}); err != nil {
			return err
		}
		for _, r := range []ledger.Role{ledger.RoleKYCVerifier, ledger.RoleMedicalVerifier} {
			if err := saveRole(c, r, nil); err != nil {
				return err
			}
		}
		setCount(c, StakingRewardsTotal, 0)
		if err := saveStats(c, &ledger.PlatformStats{}); err != nil {
			return err
		}
		emitInitialized(c, admin, &cfg)
		return nil
	})
}

func orDefault(v, fallback uint64) uint64 {
	if v == 0 {
		return fallback
	}
	return v
}

// updateConfig runs an admin-gated edit of one config field.
func (e *Engine) updateConfig(op string, admin sdk.Address, field string, fn func(cfg *ledger.PlatformConfig) (old, new string, err error)) error {
	return e.update(op, func(c *opContext) error {
		cfg, err := e.requireAdmin(c, admin)
		if err != nil {
			return err
		}
		old, next, err := fn(&cfg)
		if err != nil {
			return err
		}
		if err := saveConfig(c, &cfg); err != nil {
			return err
		}
		emitConfigUpdated(c, admin, field, old, next)
		return nil
	})
}

func u64s(v uint64) string { return strconv.FormatUint(v, 10) }

// SetPlatformFee changes the donation fee, at most 300bp.
func (e *Engine) SetPlatformFee(admin sdk.Address, feeBp uint64) error {
	return e.updateConfig("set_platform_fee", admin, "fee_bp", func(cfg *ledger.PlatformConfig) (string, string, error) {
		if feeBp > MaxPlatformFeeBp {
			return "", "", ledger.ErrInvalidFee
		}
		old := cfg.FeeBp
		cfg.FeeBp = feeBp
		return u64s(old), u64s(feeBp), nil
	})
}

// SetStakingRewardRate changes the share of each donation routed to the reward pool, at most 100bp.
func (e *Engine) SetStakingRewardRate(admin sdk.Address, rewardBp uint64) error {
	return e.updateConfig("set_reward_rate", admin, "reward_bp", func(cfg *ledger.PlatformConfig) (string, string, error) {
		if rewardBp > MaxRewardRateBp {
			return "", "", ledger.ErrInvalidRewardRate
		}
		old := cfg.RewardBp
		cfg.RewardBp = rewardBp
		return u64s(old), u64s(rewardBp), nil
	})
}

// SetExchangeRate changes the rate new campaigns snapshot. Existing campaigns keep theirs.
func (e *Engine) SetExchangeRate(admin sdk.Address, rate uint64) error {
	return e.updateConfig("set_exchange_rate", admin, "exchange_rate", func(cfg *ledger.PlatformConfig) (string, string, error) {
		if rate == 0 {
			return "", "", ledger.ErrInvalidAmount
		}
		old := cfg.ExchangeRate
		cfg.ExchangeRate = rate
		return u64s(old), u64s(rate), nil
	})
}

// SetMinDonation changes the smallest accepted gross donation.
func (e *Engine) SetMinDonation(admin sdk.Address, amount uint64) error {
	return e.updateConfig("set_min_donation", admin, "min_donation", func(cfg *ledger.PlatformConfig) (string, string, error) {
		if amount == 0 {
			return "", "", ledger.ErrInvalidAmount
		}
		old := cfg.MinDonation
		cfg.MinDonation = amount
		return u64s(old), u64s(amount), nil
	})
}

// SetMaxCampaignDuration changes the longest allowed campaign in days.
func (e *Engine) SetMaxCampaignDuration(admin sdk.Address, days uint64) error {
	return e.updateConfig("set_max_duration", admin, "max_campaign_duration_days", func(cfg *ledger.PlatformConfig) (string, string, error) {
		if days == 0 {
			return "", "", ledger.ErrInvalidDuration
		}
		old := cfg.MaxCampaignDurationDays
		cfg.MaxCampaignDurationDays = days
		return u64s(old), u64s(days), nil
	})
}

// SetKYCRequired toggles whether donors must be verified.
func (e *Engine) SetKYCRequired(admin sdk.Address, required bool) error {
	return e.updateConfig("set_kyc_required", admin, "kyc_required", func(cfg *ledger.PlatformConfig) (string, string, error) {
		old := cfg.KYCRequired
		cfg.KYCRequired = required
		return strconv.FormatBool(old), strconv.FormatBool(required), nil
	})
}

// ToggleEmergencyPause flips the global pause and returns the new state.
func (e *Engine) ToggleEmergencyPause(admin sdk.Address) (bool, error) {
	var paused bool
	err := e.updateConfig("toggle_pause", admin, "emergency_pause", func(cfg *ledger.PlatformConfig) (string, string, error) {
		old := cfg.EmergencyPause
		cfg.EmergencyPause = !old
		paused = cfg.EmergencyPause
		return strconv.FormatBool(old), strconv.FormatBool(paused), nil
	})
	return paused, err
}

// AddRole puts who on the role's allow-list. Adding an existing member is a no-op.
func (e *Engine) AddRole(admin sdk.Address, role ledger.Role, who sdk.Address) error {
	return e.update("add_role", func(c *opContext) error {
		if err := checkAddress(who); err != nil {
			return err
		}
		if err := checkRole(role); err != nil {
			return err
		}
		if _, err := e.requireAdmin(c, admin); err != nil {
			return err
		}
		added, err := setRoleEntry(c, role, who)
		if err != nil {
			return err
		}
		if added {
			emitRoleChanged(c, admin, role, who, true)
		}
		return nil
	})
}

// RemoveRole drops who from the role's allow-list. Removing a non-member or the last admin fails.
func (e *Engine) RemoveRole(admin sdk.Address, role ledger.Role, who sdk.Address) error {
	return e.update("remove_role", func(c *opContext) error {
		if err := checkRole(role); err != nil {
			return err
		}
		if _, err := e.requireAdmin(c, admin); err != nil {
			return err
		}
		removed, err := deleteRoleEntry(c, role, who)
		if err != nil {
			return err
		}
		if !removed {
			return ledger.ErrNotAuthorized
		}
		if role == ledger.RoleAdmin {
			left, err := loadRole(c, ledger.RoleAdmin)
			if err != nil {
				return err
			}
			if len(left) == 0 {
				return ledger.ErrNotAuthorized
			}
		}
		emitRoleChanged(c, admin, role, who, false)
		return nil
	})
}

func checkRole(role ledger.Role) error {
	for _, r := range ledger.Roles() {
		if r == role {
			return nil
		}
	}
	return ledger.ErrInvalidRole
}
