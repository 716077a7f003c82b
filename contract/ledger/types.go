package ledger

import "medfund_ledger/sdk"

// PlatformConfig is the singleton written by Initialize and mutated by admin setters.
type PlatformConfig struct {
	Admin                   sdk.Address
	FeeBp                   uint64
	RewardBp                uint64
	ExchangeRate            uint64
	MinDonation             uint64
	MaxCampaignDurationDays uint64
	KYCRequired             bool
	EmergencyPause          bool
	SpeiConfig              string
	InitializedAt           uint64
}

// Campaign is a fundraising target owned by a beneficiary.
type Campaign struct {
	ID                  ID
	Beneficiary         sdk.Address
	Title               string
	Description         string
	MedicalCondition    string
	Category            string
	Location            string
	SpeiAccount         string
	Urgency             UrgencyLevel
	GoalAmount          uint64
	CurrentAmount       uint64
	WithdrawnAmount     uint64
	ExchangeRate        uint64
	StartTime           uint64
	EndTime             uint64
	ProofDeadline       uint64
	Verified            bool
	KYCVerified         bool
	MedicalDocsVerified bool
	FundsLocked         bool
	EmergencyPaused     bool
	GoalReached         bool
	TotalDonations      uint64
	PlatformFees        uint64
	StakingRewards      uint64
	LateProofs          uint64
}

// Donation is one gross payment split into fee, reward and net.
// Amount holds the net value credited to the campaign.
type Donation struct {
	ID            ID
	CampaignID    ID
	Donor         sdk.Address
	Amount        uint64
	GrossAmount   uint64
	PesoAmount    uint64
	PlatformFee   uint64
	StakingReward uint64
	Timestamp     uint64
	Anonymous     bool
	NFTID         ID
	ExternalRef   string
	Refunded      bool
	RefundedAt    uint64
}

// KYCRecord is the identity snapshot captured at registration.
type KYCRecord struct {
	Entity          sdk.Address
	CURP            string
	FullName        string
	Phone           string
	Email           string
	PostalAddress   string
	BirthDate       string
	Nationality     string
	MedicalLicense  string
	Institution     string
	RFC             string
	BankAccount     string
	SpeiClabe       string
	Level           KYCLevel
	VerifiedAt      uint64
	ExpiresAt       uint64
	WalletConnected bool
}

// TrustScore aggregates an entity's reputation counters.
type TrustScore struct {
	Entity               sdk.Address
	Score                uint64
	Level                KYCLevel
	CampaignsCreated     uint64
	DonationsMade        uint64
	TotalDonated         uint64
	MedicalDocsSubmitted uint64
	DocsVerified         uint64
	FraudReports         uint64
	LateProofs           uint64
	UpdatedAt            uint64
}

// Tier derives the reputation tier from the score.
func (t TrustScore) Tier() ReputationTier {
	return TierForScore(t.Score)
}

// DynamicNFT is the donor badge for one (owner, campaign) pair.
type DynamicNFT struct {
	ID            ID
	Owner         sdk.Address
	CampaignID    ID
	TotalDonated  uint64
	DonationCount uint64
	Stage         GrowthStage
	Achievements  []string
	MintedAt      uint64
	UpdatedAt     uint64
}

// StakingPool is an admin-created pool with a fixed APY and lock period.
type StakingPool struct {
	ID           ID
	APY          uint64
	LockPeriod   uint64
	MinStake     uint64
	MaxStake     uint64
	TotalStaked  uint64
	Participants uint64
	TotalRewards uint64
	Active       bool
	CreatedAt    uint64
}

// StakingPosition is a user's open stake in one pool.
type StakingPosition struct {
	Staker       sdk.Address
	PoolID       ID
	StakedAmount uint64
	StakedAt     uint64
	UnlockTime   uint64
}

// PlatformStats holds the platform-wide aggregates.
type PlatformStats struct {
	TotalCampaigns            uint64
	ActiveCampaigns           uint64
	SuccessfulCampaigns       uint64
	TotalDonations            uint64
	TotalRaisedBase           uint64
	TotalRaisedSecondary      uint64
	TotalFeesCollected        uint64
	StakingRewardsDistributed uint64
	TotalUsers                uint64
	KYCVerifiedUsers          uint64
	TotalRefunds              uint64
	TotalWithdrawn            uint64
	TotalStaked               uint64
}

// MedicalDocument is evidence attached to a campaign and reviewed by a medical verifier.
type MedicalDocument struct {
	ID          ID
	CampaignID  ID
	Submitter   sdk.Address
	DocType     DocType
	DocHash     string
	Description string
	Urgency     UrgencyLevel
	Status      DocStatus
	SubmittedAt uint64
	ReviewedAt  uint64
	Reviewer    sdk.Address
	Notes       string
}

// RemittanceTransfer records a bank (SPEI) transfer reference carried by a donation.
type RemittanceTransfer struct {
	ID           ID
	DonationID   ID
	CampaignID   ID
	Reference    string
	PesoAmount   uint64
	Status       TransferStatus
	Confirmation string
	CreatedAt    uint64
	UpdatedAt    uint64
}

// WalletConnection is the wallet a KYC'd user linked to their account.
type WalletConnection struct {
	Owner       sdk.Address
	WalletType  WalletType
	PublicKey   string
	Permissions []string
	ConnectedAt uint64
}
