package contract

import (
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

var (
	configKey = string([]byte{kSingleton, 'c'})
	statsKey  = string([]byte{kSingleton, 's'})
)

// idKey puts a 32 byte id behind a one byte prefix.
func idKey(prefix byte, id ledger.ID) string {
	var buf [33]byte
	buf[0] = prefix
	copy(buf[1:], id[:])
	return string(buf[:])
}

// addrKey mixes the prefix with raw address bytes, addresses never contain the prefix range.
func addrKey(prefix byte, addr sdk.Address) string {
	s := addr.String()
	buf := make([]byte, 0, 1+len(s))
	buf = append(buf, prefix)
	buf = append(buf, s...)
	return string(buf)
}

func campaignKey(id ledger.ID) string   { return idKey(kCampaign, id) }
func donationKey(id ledger.ID) string   { return idKey(kDonation, id) }
func nftKey(id ledger.ID) string        { return idKey(kNFT, id) }
func poolKey(id ledger.ID) string       { return idKey(kPool, id) }
func medicalDocKey(id ledger.ID) string { return idKey(kMedicalDoc, id) }
func remittanceKey(id ledger.ID) string { return idKey(kRemittance, id) }

func kycKey(addr sdk.Address) string    { return addrKey(kKYC, addr) }
func trustKey(addr sdk.Address) string  { return addrKey(kTrust, addr) }
func walletKey(addr sdk.Address) string { return addrKey(kWallet, addr) }

// positionKey keeps the pool id first so one pool's positions sit together.
func positionKey(poolID ledger.ID, staker sdk.Address) string {
	s := staker.String()
	buf := make([]byte, 0, 1+32+len(s))
	buf = append(buf, kPosition)
	buf = append(buf, poolID[:]...)
	buf = append(buf, s...)
	return string(buf)
}

func roleKey(role ledger.Role) string {
	return string([]byte{kRole, byte(role)})
}
