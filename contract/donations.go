package contract

import (
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// DonateOptions are the optional parts of a donation.
type DonateOptions struct {
	MintNFT     bool
	Anonymous   bool
	ExternalRef *string
}

// Donate splits a gross payment into fee, reward and net, credits the campaign and
// updates trust, nft and aggregate state in one step.
func (e *Engine) Donate(campaignID ledger.ID, donor sdk.Address, gross uint64, opts DonateOptions) (ledger.ID, error) {
	var id ledger.ID
	err := e.update("donate", func(c *opContext) error {
		if err := checkAddress(donor); err != nil {
			return err
		}
		cfg, err := loadActiveConfig(c)
		if err != nil {
			return err
		}
		camp, err := loadCampaign(c, campaignID)
		if err != nil {
			return err
		}
		if err := checkAcceptsDonations(&camp, c.now); err != nil {
			return err
		}
		if gross < cfg.MinDonation {
			return ledger.ErrInvalidAmount
		}
		if cfg.KYCRequired {
			if err := e.requireKYC(c, donor, c.now); err != nil {
				return err
			}
		}
		split, err := ledger.ComputeSplit(gross, cfg.FeeBp, cfg.RewardBp, camp.ExchangeRate)
		if err != nil {
			return err
		}
		if err := e.checkDonationTotals(c, &camp, donor, split, opts.MintNFT); err != nil {
			return err
		}
		id, err = e.allocateID(c, DonationsCount, newPreimage().
			id(campaignID).
			addr(donor).
			uint64(gross).
			uint64(c.now))
		if err != nil {
			return err
		}

		d := ledger.Donation{
			ID:            id,
			CampaignID:    campaignID,
			Donor:         donor,
			Amount:        split.Net,
			GrossAmount:   gross,
			PesoAmount:    split.NetSecondary,
			PlatformFee:   split.PlatformFee,
			StakingReward: split.StakingReward,
			Timestamp:     c.now,
			Anonymous:     opts.Anonymous,
			ExternalRef:   NoExternalRef,
		}
		if opts.ExternalRef != nil {
			d.ExternalRef = *opts.ExternalRef
			if err := e.recordRemittance(c, &d, d.ExternalRef); err != nil {
				return err
			}
		}

		reachedGoal := applyDonationDelta(&camp, split)
		if err := saveCampaign(c, &camp); err != nil {
			return err
		}
		if err := e.trustDonation(c, donor, split.Net); err != nil {
			return err
		}
		if opts.MintNFT {
			nftID, err := e.growNFT(c, donor, campaignID, split.NetSecondary)
			if err != nil {
				return err
			}
			d.NFTID = nftID
		}
		if err := saveDonation(c, &d); err != nil {
			return err
		}
		if err := appendToIndex(c, campaignDonationsIndex(campaignID), id); err != nil {
			return err
		}
		if err := updateStats(c, func(s *ledger.PlatformStats) {
			s.TotalDonations++
			s.TotalRaisedBase += split.Net
			s.TotalRaisedSecondary += split.NetSecondary
			s.TotalFeesCollected += split.PlatformFee
			s.StakingRewardsDistributed += split.StakingReward
			if reachedGoal {
				s.SuccessfulCampaigns++
			}
		}); err != nil {
			return err
		}
		if err := addStakingRewards(c, split.StakingReward); err != nil {
			return err
		}
		emitDonation(c, &d)
		c.onCommit(func() { e.metrics.addFees(split.PlatformFee) })
		return nil
	})
	return id, err
}

// checkDonationTotals rejects a donation whose amounts would push any running total
// past the uint64 range. It runs before the donation stages any write.
func (e *Engine) checkDonationTotals(c *opContext, camp *ledger.Campaign, donor sdk.Address, split ledger.Split, mintNFT bool) error {
	// current + withdrawn is the campaign's unrefunded sum
	if _, err := ledger.AddAmounts(camp.CurrentAmount, camp.WithdrawnAmount, split.Net); err != nil {
		return err
	}
	if _, err := ledger.AddAmounts(camp.PlatformFees, split.PlatformFee); err != nil {
		return err
	}
	if _, err := ledger.AddAmounts(camp.StakingRewards, split.StakingReward); err != nil {
		return err
	}
	stats, err := loadStats(c)
	if err != nil {
		return err
	}
	for _, sum := range [][2]uint64{
		{stats.TotalRaisedBase, split.Net},
		{stats.TotalRaisedSecondary, split.NetSecondary},
		{stats.TotalFeesCollected, split.PlatformFee},
		{stats.StakingRewardsDistributed, split.StakingReward},
	} {
		if _, err := ledger.AddAmounts(sum[0], sum[1]); err != nil {
			return err
		}
	}
	pool, err := getCount(c, StakingRewardsTotal)
	if err != nil {
		return err
	}
	if _, err := ledger.AddAmounts(pool, split.StakingReward); err != nil {
		return err
	}
	ts, _, err := loadTrust(c, donor)
	if err != nil {
		return err
	}
	if _, err := ledger.AddAmounts(ts.TotalDonated, split.Net); err != nil {
		return err
	}
	if mintNFT {
		nft, _, err := loadNFT(c, e.nftID(donor, camp.ID))
		if err != nil {
			return err
		}
		if _, err := ledger.AddAmounts(nft.TotalDonated, split.NetSecondary); err != nil {
			return err
		}
	}
	return nil
}

// RefundDonation reverses a donation's net amount. Admins may refund at any time,
// the donor only within the refund window.
func (e *Engine) RefundDonation(caller sdk.Address, donationID ledger.ID) error {
	return e.update("refund", func(c *opContext) error {
		if _, err := loadActiveConfig(c); err != nil {
			return err
		}
		d, err := loadDonation(c, donationID)
		if err != nil {
			return err
		}
		if d.Refunded {
			return ledger.ErrAlreadyRefunded
		}
		isAdmin, err := e.gate.IsAuthorized(c, caller, ledger.RoleAdmin)
		if err != nil {
			return err
		}
		if !isAdmin {
			if caller != d.Donor {
				return ledger.ErrNotAuthorized
			}
			if c.now > d.Timestamp+RefundWindow {
				return ledger.ErrRefundPeriodExpired
			}
		}
		camp, err := loadCampaign(c, d.CampaignID)
		if err != nil {
			return err
		}
		if err := applyRefundDelta(&camp, d.Amount); err != nil {
			return err
		}
		if err := saveCampaign(c, &camp); err != nil {
			return err
		}
		d.Refunded = true
		d.RefundedAt = c.now
		if err := saveDonation(c, &d); err != nil {
			return err
		}
		if err := updateStats(c, func(s *ledger.PlatformStats) {
			s.TotalRaisedBase = subFloor(s.TotalRaisedBase, d.Amount)
			s.TotalRaisedSecondary = subFloor(s.TotalRaisedSecondary, d.PesoAmount)
			s.TotalRefunds++
		}); err != nil {
			return err
		}
		emitRefund(c, &d, caller)
		return nil
	})
}

// remittanceID is derived from the donation, a donation carries at most one transfer.
func (e *Engine) remittanceID(donationID ledger.ID) ledger.ID {
	return ledger.ID(e.hasher.Sum256(newPreimage().str("spei").id(donationID).bytes()))
}

// recordRemittance stores the pending bank transfer a donation referenced.
func (e *Engine) recordRemittance(c *opContext, d *ledger.Donation, ref string) error {
	if _, err := nextSequence(c, RemittancesCount); err != nil {
		return err
	}
	r := ledger.RemittanceTransfer{
		ID:         e.remittanceID(d.ID),
		DonationID: d.ID,
		CampaignID: d.CampaignID,
		Reference:  ref,
		PesoAmount: d.PesoAmount,
		Status:     ledger.TransferPending,
		CreatedAt:  c.now,
		UpdatedAt:  c.now,
	}
	return saveRemittance(c, &r)
}

// UpdateRemittanceStatus lets a KYC verifier or admin move a bank transfer along.
func (e *Engine) UpdateRemittanceStatus(caller sdk.Address, id ledger.ID, status ledger.TransferStatus, confirmation string) error {
	return e.update("update_remittance", func(c *opContext) error {
		if _, err := loadConfig(c); err != nil {
			return err
		}
		ok, err := e.gate.IsAuthorized(c, caller, ledger.RoleKYCVerifier)
		if err != nil {
			return err
		}
		if !ok {
			if err := e.requireRole(c, ledger.RoleAdmin, caller); err != nil {
				return err
			}
		}
		r, err := loadRemittance(c, id)
		if err != nil {
			return err
		}
		if r.Status == ledger.TransferCompleted || r.Status == ledger.TransferCancelled {
			return ledger.ErrSPEIError
		}
		r.Status = status
		if confirmation != "" {
			r.Confirmation = confirmation
		}
		r.UpdatedAt = c.now
		if err := saveRemittance(c, &r); err != nil {
			return err
		}
		emitRemittanceStatus(c, caller, &r)
		return nil
	})
}
