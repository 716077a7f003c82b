package contract

import (
	"errors"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// Getters return (value, found, error). error is only set for storage or codec faults,
// a missing entity is found=false.

// absent maps a ledger not-found error to found=false.
func absent[T any](v T, err error) (T, bool, error) {
	var le *ledger.Error
	if errors.As(err, &le) {
		switch le.Code {
		case ledger.CodeCampaignNotFound, ledger.CodeDonationNotFound,
			ledger.CodeStakingPoolNotFound, ledger.CodeMedicalDocNotFound,
			ledger.CodeRemittanceNotFound, ledger.CodeNotInitialized:
			var zero T
			return zero, false, nil
		}
	}
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

func getter[T any](e *Engine, fn func(r Reader) (T, bool, error)) (T, bool, error) {
	var (
		v  T
		ok bool
	)
	err := e.view(func(r Reader) error {
		var err error
		v, ok, err = fn(r)
		return err
	})
	return v, ok, err
}

////////////////////////////////////////////////////////////////////////////////
// Config
////////////////////////////////////////////////////////////////////////////////

func (e *Engine) GetConfig() (ledger.PlatformConfig, bool, error) {
	return getter(e, func(r Reader) (ledger.PlatformConfig, bool, error) {
		return absent(loadConfig(r))
	})
}

func configScalar[T any](e *Engine, pick func(cfg *ledger.PlatformConfig) T) (T, bool, error) {
	cfg, ok, err := e.GetConfig()
	if err != nil || !ok {
		var zero T
		return zero, ok, err
	}
	return pick(&cfg), true, nil
}

func (e *Engine) GetAdmin() (sdk.Address, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) sdk.Address { return c.Admin })
}

func (e *Engine) GetPlatformFee() (uint64, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) uint64 { return c.FeeBp })
}

func (e *Engine) GetStakingRewardRate() (uint64, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) uint64 { return c.RewardBp })
}

func (e *Engine) GetExchangeRate() (uint64, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) uint64 { return c.ExchangeRate })
}

func (e *Engine) GetMinDonation() (uint64, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) uint64 { return c.MinDonation })
}

func (e *Engine) GetMaxCampaignDuration() (uint64, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) uint64 { return c.MaxCampaignDurationDays })
}

func (e *Engine) IsKYCRequired() (bool, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) bool { return c.KYCRequired })
}

func (e *Engine) IsEmergencyPaused() (bool, bool, error) {
	return configScalar(e, func(c *ledger.PlatformConfig) bool { return c.EmergencyPause })
}

// GetRoleMembers lists the allow-list of a role.
func (e *Engine) GetRoleMembers(role ledger.Role) ([]sdk.Address, bool, error) {
	return getter(e, func(r Reader) ([]sdk.Address, bool, error) {
		list, err := loadRole(r, role)
		return list, len(list) > 0, err
	})
}

////////////////////////////////////////////////////////////////////////////////
// Entities
////////////////////////////////////////////////////////////////////////////////

func (e *Engine) GetCampaign(id ledger.ID) (ledger.Campaign, bool, error) {
	return getter(e, func(r Reader) (ledger.Campaign, bool, error) {
		return absent(loadCampaign(r, id))
	})
}

func (e *Engine) GetDonation(id ledger.ID) (ledger.Donation, bool, error) {
	return getter(e, func(r Reader) (ledger.Donation, bool, error) {
		return absent(loadDonation(r, id))
	})
}

func (e *Engine) GetKYC(entity sdk.Address) (ledger.KYCRecord, bool, error) {
	return getter(e, func(r Reader) (ledger.KYCRecord, bool, error) {
		return loadKYC(r, entity)
	})
}

func (e *Engine) GetTrustScore(entity sdk.Address) (ledger.TrustScore, bool, error) {
	return getter(e, func(r Reader) (ledger.TrustScore, bool, error) {
		return loadTrust(r, entity)
	})
}

func (e *Engine) GetNFT(id ledger.ID) (ledger.DynamicNFT, bool, error) {
	return getter(e, func(r Reader) (ledger.DynamicNFT, bool, error) {
		return loadNFT(r, id)
	})
}

// GetDonorNFT finds the nft a donor holds for a campaign.
func (e *Engine) GetDonorNFT(owner sdk.Address, campaignID ledger.ID) (ledger.DynamicNFT, bool, error) {
	return e.GetNFT(e.nftID(owner, campaignID))
}

func (e *Engine) GetStakingPool(id ledger.ID) (ledger.StakingPool, bool, error) {
	return getter(e, func(r Reader) (ledger.StakingPool, bool, error) {
		return absent(loadPool(r, id))
	})
}

func (e *Engine) GetStakingPosition(poolID ledger.ID, staker sdk.Address) (ledger.StakingPosition, bool, error) {
	return getter(e, func(r Reader) (ledger.StakingPosition, bool, error) {
		return loadPosition(r, poolID, staker)
	})
}

func (e *Engine) GetMedicalDoc(id ledger.ID) (ledger.MedicalDocument, bool, error) {
	return getter(e, func(r Reader) (ledger.MedicalDocument, bool, error) {
		return absent(loadMedicalDoc(r, id))
	})
}

func (e *Engine) GetRemittance(id ledger.ID) (ledger.RemittanceTransfer, bool, error) {
	return getter(e, func(r Reader) (ledger.RemittanceTransfer, bool, error) {
		return absent(loadRemittance(r, id))
	})
}

// GetDonationRemittance finds the bank transfer recorded for a donation.
func (e *Engine) GetDonationRemittance(donationID ledger.ID) (ledger.RemittanceTransfer, bool, error) {
	return e.GetRemittance(e.remittanceID(donationID))
}

func (e *Engine) GetWallet(owner sdk.Address) (ledger.WalletConnection, bool, error) {
	return getter(e, func(r Reader) (ledger.WalletConnection, bool, error) {
		return loadWallet(r, owner)
	})
}

// GetStats returns the platform aggregates, found=false before Initialize.
func (e *Engine) GetStats() (ledger.PlatformStats, bool, error) {
	return getter(e, func(r Reader) (ledger.PlatformStats, bool, error) {
		return getRecord[ledger.PlatformStats](r, statsKey)
	})
}

////////////////////////////////////////////////////////////////////////////////
// Counters
////////////////////////////////////////////////////////////////////////////////

// Counters is a snapshot of every sequence counter and the reward pool total.
type Counters struct {
	Campaigns      uint64
	Donations      uint64
	Pools          uint64
	MedicalDocs    uint64
	NFTs           uint64
	Remittances    uint64
	StakingRewards uint64
}

func (e *Engine) GetCounters() (Counters, error) {
	var out Counters
	err := e.view(func(r Reader) error {
		for _, f := range []struct {
			key string
			dst *uint64
		}{
			{CampaignsCount, &out.Campaigns},
			{DonationsCount, &out.Donations},
			{PoolsCount, &out.Pools},
			{MedicalDocsCount, &out.MedicalDocs},
			{NFTsCount, &out.NFTs},
			{RemittancesCount, &out.Remittances},
			{StakingRewardsTotal, &out.StakingRewards},
		} {
			n, err := getCount(r, f.key)
			if err != nil {
				return err
			}
			*f.dst = n
		}
		return nil
	})
	return out, err
}

// GetTotalStakingRewards returns the platform-wide staking reward pool.
func (e *Engine) GetTotalStakingRewards() (uint64, error) {
	var n uint64
	err := e.view(func(r Reader) error {
		var err error
		n, err = getCount(r, StakingRewardsTotal)
		return err
	})
	return n, err
}

////////////////////////////////////////////////////////////////////////////////
// Listings
////////////////////////////////////////////////////////////////////////////////

func (e *Engine) listIDs(base string) ([]ledger.ID, error) {
	var ids []ledger.ID
	err := e.view(func(r Reader) error {
		var err error
		ids, err = listIndex(r, base)
		return err
	})
	return ids, err
}

// ListCampaigns returns campaign ids in creation order.
func (e *Engine) ListCampaigns() ([]ledger.ID, error) {
	return e.listIDs(idxCampaigns)
}

// ListCampaignDonations returns the donation ids of a campaign in arrival order.
func (e *Engine) ListCampaignDonations(campaignID ledger.ID) ([]ledger.ID, error) {
	return e.listIDs(campaignDonationsIndex(campaignID))
}

// ListCampaignDocs returns the medical document ids filed for a campaign.
func (e *Engine) ListCampaignDocs(campaignID ledger.ID) ([]ledger.ID, error) {
	return e.listIDs(campaignDocsIndex(campaignID))
}

func (e *Engine) ListStakingPools() ([]ledger.ID, error) {
	return e.listIDs(idxPools)
}

////////////////////////////////////////////////////////////////////////////////
// Audit
////////////////////////////////////////////////////////////////////////////////

// CampaignAudit compares a campaign's balance against its donation history.
type CampaignAudit struct {
	CampaignID      ledger.ID
	CurrentAmount   uint64
	WithdrawnAmount uint64
	Unrefunded      uint64
	Donations       uint64
	Refunded        uint64
	Balanced        bool
}

// AuditCampaign recomputes Σ unrefunded donations and checks it equals the
// held plus withdrawn amount.
func (e *Engine) AuditCampaign(id ledger.ID) (CampaignAudit, bool, error) {
	return getter(e, func(r Reader) (CampaignAudit, bool, error) {
		camp, err := loadCampaign(r, id)
		if err != nil {
			return absent(CampaignAudit{}, err)
		}
		a := CampaignAudit{
			CampaignID:      id,
			CurrentAmount:   camp.CurrentAmount,
			WithdrawnAmount: camp.WithdrawnAmount,
		}
		ids, err := listIndex(r, campaignDonationsIndex(id))
		if err != nil {
			return a, false, err
		}
		for _, did := range ids {
			d, err := loadDonation(r, did)
			if err != nil {
				return a, false, err
			}
			a.Donations++
			if d.Refunded {
				a.Refunded++
				continue
			}
			a.Unrefunded += d.Amount
		}
		a.Balanced = a.CurrentAmount+a.WithdrawnAmount == a.Unrefunded
		return a, true, nil
	})
}
