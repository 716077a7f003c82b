package contract

import (
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// nftID is stable per (donor, campaign) so repeat donations grow the same token.
func (e *Engine) nftID(donor sdk.Address, campaignID ledger.ID) ledger.ID {
	return ledger.ID(e.hasher.Sum256(newPreimage().str("nft").addr(donor).id(campaignID).bytes()))
}

// growNFT mints the donor's nft for the campaign on first use and applies the donation.
func (e *Engine) growNFT(c *opContext, donor sdk.Address, campaignID ledger.ID, secondary uint64) (ledger.ID, error) {
	id := e.nftID(donor, campaignID)
	nft, ok, err := loadNFT(c, id)
	if err != nil {
		return id, err
	}
	if !ok {
		if _, err := nextSequence(c, NFTsCount); err != nil {
			return id, err
		}
		nft = ledger.DynamicNFT{
			ID:         id,
			Owner:      donor,
			CampaignID: campaignID,
			Stage:      ledger.StageSeed,
			MintedAt:   c.now,
		}
	}
	e.achievements.Grow(&nft, secondary, c.now)
	if err := saveNFT(c, &nft); err != nil {
		return id, err
	}
	emitNFTGrown(c, &nft)
	return id, nil
}
