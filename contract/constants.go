package contract

import "medfund_ledger/sdk"

// -----------------------------------------------------------------------------
// Platform Defaults
// -----------------------------------------------------------------------------

const (
	// MaxPlatformFeeBp caps the donation fee at 3%.
	MaxPlatformFeeBp = 300
	// MaxRewardRateBp caps the staking reward share at 1%.
	MaxRewardRateBp = 100
	// FallbackExchangeRate is 18.0 pesos per base unit, scaled by 10000.
	FallbackExchangeRate = 180_000
	// FallbackMinDonation is one whole base unit.
	FallbackMinDonation = sdk.BaseUnit
	// FallbackMaxCampaignDays bounds campaign duration.
	FallbackMaxCampaignDays = 365
	// NoExternalRef is stored on donations without a bank reference.
	NoExternalRef = "NO_SPEI"
)

// -----------------------------------------------------------------------------
// Time Windows
// -----------------------------------------------------------------------------

const (
	secondsPerDay = 86_400
	// ProofWindow is how long a beneficiary has to submit proof of use.
	ProofWindow = 30 * secondsPerDay
	// RefundWindow is how long a donor may refund without admin help.
	RefundWindow = 7 * secondsPerDay
)

// -----------------------------------------------------------------------------
// Counter Keys
// -----------------------------------------------------------------------------

const (
	CampaignsCount   = "count:camp"
	DonationsCount   = "count:don"
	PoolsCount       = "count:pool"
	MedicalDocsCount = "count:doc"
	NFTsCount        = "count:nft"
	RemittancesCount = "count:spei"
	// StakingRewardsTotal is the platform-wide staking reward pool.
	StakingRewardsTotal = "total:rewards"
)

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kCampaign stores encoded Campaign records by id.
	kCampaign byte = 0x01
	// kDonation stores encoded Donation records by id.
	kDonation byte = 0x02
	// kKYC stores KYC records by entity address.
	kKYC byte = 0x03
	// kTrust stores trust scores by entity address.
	kTrust byte = 0x04
	// kNFT stores dynamic nfts by (owner, campaign) digest.
	kNFT byte = 0x05
	// kPool stores staking pools by id.
	kPool byte = 0x06
	// kPosition stores staking positions by pool id plus staker.
	kPosition byte = 0x07
	// kMedicalDoc stores medical documents by id.
	kMedicalDoc byte = 0x08
	// kRemittance stores bank transfer records by id.
	kRemittance byte = 0x09
	// kWallet stores wallet connections by owner.
	kWallet byte = 0x0a
	// kRole stores one allow-list per role.
	kRole byte = 0x10
	// kSingleton holds config and stats.
	kSingleton byte = 0x20
)
