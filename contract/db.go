package contract

import (
	"fmt"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

////////////////////////////////////////////////////////////////////////////////
// Record persistence helpers
////////////////////////////////////////////////////////////////////////////////

// record is any stored entity pointer.
type record[T any] interface {
	*T
	ledger.Marshaler
	ledger.Unmarshaler
}

// getRecord loads and decodes the value under key, ok=false when absent.
func getRecord[T any, P record[T]](r Reader, key string) (T, bool, error) {
	var v T
	raw, ok, err := r.Get(key)
	if err != nil {
		return v, false, fmt.Errorf("read %x: %w", key, err)
	}
	if !ok {
		return v, false, nil
	}
	if err := ledger.Decode(raw, P(&v)); err != nil {
		return v, false, fmt.Errorf("decode %x: %w", key, err)
	}
	return v, true, nil
}

// putRecord encodes and stages v under key.
func putRecord(c *opContext, key string, v ledger.Marshaler) error {
	raw, err := ledger.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %x: %w", key, err)
	}
	c.set(key, raw)
	return nil
}

// mustFind turns absence into the given ledger error.
func mustFind[T any](v T, ok bool, err error, missing error) (T, error) {
	if err != nil {
		return v, err
	}
	if !ok {
		return v, missing
	}
	return v, nil
}

func loadCampaign(r Reader, id ledger.ID) (ledger.Campaign, error) {
	v, ok, err := getRecord[ledger.Campaign](r, campaignKey(id))
	return mustFind(v, ok, err, ledger.ErrCampaignNotFound)
}

func saveCampaign(c *opContext, v *ledger.Campaign) error {
	return putRecord(c, campaignKey(v.ID), v)
}

func loadDonation(r Reader, id ledger.ID) (ledger.Donation, error) {
	v, ok, err := getRecord[ledger.Donation](r, donationKey(id))
	return mustFind(v, ok, err, ledger.ErrDonationNotFound)
}

func saveDonation(c *opContext, v *ledger.Donation) error {
	return putRecord(c, donationKey(v.ID), v)
}

func loadKYC(r Reader, addr sdk.Address) (ledger.KYCRecord, bool, error) {
	return getRecord[ledger.KYCRecord](r, kycKey(addr))
}

func saveKYC(c *opContext, v *ledger.KYCRecord) error {
	return putRecord(c, kycKey(v.Entity), v)
}

func loadTrust(r Reader, addr sdk.Address) (ledger.TrustScore, bool, error) {
	return getRecord[ledger.TrustScore](r, trustKey(addr))
}

func saveTrust(c *opContext, v *ledger.TrustScore) error {
	return putRecord(c, trustKey(v.Entity), v)
}

func loadNFT(r Reader, id ledger.ID) (ledger.DynamicNFT, bool, error) {
	return getRecord[ledger.DynamicNFT](r, nftKey(id))
}

func saveNFT(c *opContext, v *ledger.DynamicNFT) error {
	return putRecord(c, nftKey(v.ID), v)
}

func loadPool(r Reader, id ledger.ID) (ledger.StakingPool, error) {
	v, ok, err := getRecord[ledger.StakingPool](r, poolKey(id))
	return mustFind(v, ok, err, ledger.ErrStakingPoolNotFound)
}

func savePool(c *opContext, v *ledger.StakingPool) error {
	return putRecord(c, poolKey(v.ID), v)
}

func loadPosition(r Reader, poolID ledger.ID, staker sdk.Address) (ledger.StakingPosition, bool, error) {
	return getRecord[ledger.StakingPosition](r, positionKey(poolID, staker))
}

func savePosition(c *opContext, v *ledger.StakingPosition) error {
	return putRecord(c, positionKey(v.PoolID, v.Staker), v)
}

func loadMedicalDoc(r Reader, id ledger.ID) (ledger.MedicalDocument, error) {
	v, ok, err := getRecord[ledger.MedicalDocument](r, medicalDocKey(id))
	return mustFind(v, ok, err, ledger.ErrMedicalDocNotFound)
}

func saveMedicalDoc(c *opContext, v *ledger.MedicalDocument) error {
	return putRecord(c, medicalDocKey(v.ID), v)
}

func loadRemittance(r Reader, id ledger.ID) (ledger.RemittanceTransfer, error) {
	v, ok, err := getRecord[ledger.RemittanceTransfer](r, remittanceKey(id))
	return mustFind(v, ok, err, ledger.ErrRemittanceNotFound)
}

func saveRemittance(c *opContext, v *ledger.RemittanceTransfer) error {
	return putRecord(c, remittanceKey(v.ID), v)
}

func saveWallet(c *opContext, v *ledger.WalletConnection) error {
	return putRecord(c, walletKey(v.Owner), v)
}

func loadWallet(r Reader, addr sdk.Address) (ledger.WalletConnection, bool, error) {
	return getRecord[ledger.WalletConnection](r, walletKey(addr))
}
