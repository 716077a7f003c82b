package contract

import (
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// CampaignParams describes a new fundraising campaign.
type CampaignParams struct {
	Title            string
	Description      string
	MedicalCondition string
	Category         string
	Location         string
	SpeiAccount      string
	Urgency          ledger.UrgencyLevel
	Goal             uint64
	DurationDays     uint64
}

// CampaignStatusUpdate carries the admin flags to flip, nil leaves a flag untouched.
type CampaignStatusUpdate struct {
	Verified        *bool
	FundsLocked     *bool
	EmergencyPaused *bool
}

// CreateCampaign opens a campaign for a KYC verified beneficiary at the current exchange rate.
func (e *Engine) CreateCampaign(beneficiary sdk.Address, p CampaignParams) (ledger.ID, error) {
	var id ledger.ID
	err := e.update("create_campaign", func(c *opContext) error {
		if err := checkAddress(beneficiary); err != nil {
			return err
		}
		cfg, err := loadActiveConfig(c)
		if err != nil {
			return err
		}
		if err := e.requireKYC(c, beneficiary, c.now); err != nil {
			return err
		}
		if p.Goal == 0 {
			return ledger.ErrInvalidGoal
		}
		if p.DurationDays == 0 || p.DurationDays > cfg.MaxCampaignDurationDays {
			return ledger.ErrInvalidDuration
		}
		id, err = e.allocateID(c, CampaignsCount, newPreimage().
			addr(beneficiary).
			str(p.Title).
			uint64(p.Goal).
			uint64(c.now))
		if err != nil {
			return err
		}
		camp := ledger.Campaign{
			ID:               id,
			Beneficiary:      beneficiary,
			Title:            p.Title,
			Description:      p.Description,
			MedicalCondition: p.MedicalCondition,
			Category:         p.Category,
			Location:         p.Location,
			SpeiAccount:      p.SpeiAccount,
			Urgency:          p.Urgency,
			GoalAmount:       p.Goal,
			ExchangeRate:     cfg.ExchangeRate,
			StartTime:        c.now,
			EndTime:          c.now + p.DurationDays*secondsPerDay,
			ProofDeadline:    c.now + ProofWindow,
			KYCVerified:      true,
		}
		if err := saveCampaign(c, &camp); err != nil {
			return err
		}
		if err := appendToIndex(c, idxCampaigns, id); err != nil {
			return err
		}
		if err := e.trustCampaignCreated(c, beneficiary); err != nil {
			return err
		}
		if err := updateStats(c, func(s *ledger.PlatformStats) {
			s.TotalCampaigns++
			s.ActiveCampaigns++
		}); err != nil {
			return err
		}
		emitCampaignCreated(c, &camp)
		return nil
	})
	return id, err
}

// applyDonationDelta credits a net donation to the campaign record.
// It reports whether this donation pushed the campaign over its goal.
func applyDonationDelta(camp *ledger.Campaign, split ledger.Split) (reachedGoal bool) {
	camp.CurrentAmount += split.Net
	camp.TotalDonations++
	camp.PlatformFees += split.PlatformFee
	camp.StakingRewards += split.StakingReward
	if !camp.GoalReached && camp.CurrentAmount >= camp.GoalAmount {
		camp.GoalReached = true
		return true
	}
	return false
}

// applyRefundDelta takes a refunded net amount back out of the campaign.
// Funds already withdrawn cannot be refunded.
func applyRefundDelta(camp *ledger.Campaign, amount uint64) error {
	if camp.CurrentAmount < amount {
		return ledger.ErrInsufficientFunds
	}
	camp.CurrentAmount -= amount
	return nil
}

// checkAcceptsDonations rejects ended or locked campaigns.
func checkAcceptsDonations(camp *ledger.Campaign, now uint64) error {
	if now > camp.EndTime {
		return ledger.ErrCampaignEnded
	}
	if camp.FundsLocked || camp.EmergencyPaused {
		return ledger.ErrFundsLocked
	}
	return nil
}

// UpdateCampaignStatus lets an admin verify, lock or pause one campaign.
func (e *Engine) UpdateCampaignStatus(admin sdk.Address, id ledger.ID, u CampaignStatusUpdate) error {
	return e.update("update_campaign_status", func(c *opContext) error {
		if _, err := e.requireAdmin(c, admin); err != nil {
			return err
		}
		camp, err := loadCampaign(c, id)
		if err != nil {
			return err
		}
		if u.Verified != nil {
			camp.Verified = *u.Verified
		}
		if u.FundsLocked != nil {
			camp.FundsLocked = *u.FundsLocked
		}
		if u.EmergencyPaused != nil {
			camp.EmergencyPaused = *u.EmergencyPaused
		}
		if err := saveCampaign(c, &camp); err != nil {
			return err
		}
		emitCampaignStatus(c, admin, &camp)
		return nil
	})
}

// WithdrawFunds pays out part of a verified campaign's balance to its beneficiary.
func (e *Engine) WithdrawFunds(beneficiary sdk.Address, id ledger.ID, amount uint64) error {
	return e.update("withdraw", func(c *opContext) error {
		if _, err := loadActiveConfig(c); err != nil {
			return err
		}
		camp, err := loadCampaign(c, id)
		if err != nil {
			return err
		}
		if camp.Beneficiary != beneficiary {
			return ledger.ErrNotAuthorized
		}
		if !camp.Verified || !camp.MedicalDocsVerified {
			return ledger.ErrNotApproved
		}
		if camp.FundsLocked || camp.EmergencyPaused {
			return ledger.ErrFundsLocked
		}
		if amount == 0 {
			return ledger.ErrInvalidAmount
		}
		if amount > camp.CurrentAmount {
			return ledger.ErrInsufficientFunds
		}
		camp.CurrentAmount -= amount
		camp.WithdrawnAmount += amount
		if err := saveCampaign(c, &camp); err != nil {
			return err
		}
		if err := updateStats(c, func(s *ledger.PlatformStats) {
			s.TotalWithdrawn += amount
		}); err != nil {
			return err
		}
		emitWithdraw(c, &camp, amount)
		return nil
	})
}

// SubmitProof records the beneficiary's proof of use. Submissions after the
// deadline cost trust, and the deadline rolls forward either way.
func (e *Engine) SubmitProof(beneficiary sdk.Address, id ledger.ID) (late bool, err error) {
	err = e.update("submit_proof", func(c *opContext) error {
		if _, err := loadConfig(c); err != nil {
			return err
		}
		camp, err := loadCampaign(c, id)
		if err != nil {
			return err
		}
		if camp.Beneficiary != beneficiary {
			return ledger.ErrNotAuthorized
		}
		late = c.now > camp.ProofDeadline
		if late {
			camp.LateProofs++
			if err := e.trustLateProof(c, beneficiary); err != nil {
				return err
			}
		}
		camp.ProofDeadline = c.now + ProofWindow
		if err := saveCampaign(c, &camp); err != nil {
			return err
		}
		emitProofSubmitted(c, &camp, late)
		return nil
	})
	if err != nil {
		return false, err
	}
	return late, nil
}
