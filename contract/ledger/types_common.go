package ledger

import (
	"encoding/hex"
	"errors"
	"strings"
)

// ID is a 32-byte digest identifying campaigns, donations, pools, nfts and documents.
type ID [32]byte

// String hex-encodes the id for keys, logs and payloads.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the id was never assigned.
func (id ID) IsZero() bool {
	return id == ID{}
}

// ParseID decodes the hex form produced by String.
// Example payload: ledger.ParseID("9f86d0...")
func ParseID(s string) (ID, error) {
	var id ID
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return id, err
	}
	if len(raw) != len(id) {
		return id, errors.New("id must be 32 bytes")
	}
	copy(id[:], raw)
	return id, nil
}

// parseName looks up a lower-case enum name and falls back to ok=false.
func parseName(names []string, s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// KYCLevel is the verification tier derived once at registration.
type KYCLevel uint8

const (
	KYCUnverified KYCLevel = iota
	KYCBasic
	KYCBank
	KYCMedical
	KYCFull
)

var kycLevelNames = []string{"unverified", "basic", "bank", "medical", "full"}

func (l KYCLevel) String() string { return nameOf(kycLevelNames, int(l)) }

// ParseKYCLevel maps a level name back to the enum.
func ParseKYCLevel(s string) (KYCLevel, bool) {
	i, ok := parseName(kycLevelNames, s)
	return KYCLevel(i), ok
}

// ReputationTier is a pure step function of the trust score.
type ReputationTier uint8

const (
	TierNewcomer ReputationTier = iota
	TierTrusted
	TierVerified
	TierChampion
	TierLegend
)

var tierNames = []string{"newcomer", "trusted", "verified", "champion", "legend"}

func (t ReputationTier) String() string { return nameOf(tierNames, int(t)) }

// ParseReputationTier maps a tier name back to the enum.
func ParseReputationTier(s string) (ReputationTier, bool) {
	i, ok := parseName(tierNames, s)
	return ReputationTier(i), ok
}

// GrowthStage is the NFT presentation state.
type GrowthStage uint8

const (
	StageSeed GrowthStage = iota
	StageSprout
	StageSapling
	StageYoungTree
	StageMatureTree
	StageMightyTree
	StageLegendaryTree
)

var stageNames = []string{"seed", "sprout", "sapling", "young_tree", "mature_tree", "mighty_tree", "legendary_tree"}

func (g GrowthStage) String() string { return nameOf(stageNames, int(g)) }

// ParseGrowthStage maps a stage name back to the enum.
func ParseGrowthStage(s string) (GrowthStage, bool) {
	i, ok := parseName(stageNames, s)
	return GrowthStage(i), ok
}

// UrgencyLevel tags campaigns and medical documents.
type UrgencyLevel uint8

const (
	UrgencyLow UrgencyLevel = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

var urgencyNames = []string{"low", "medium", "high", "critical"}

func (u UrgencyLevel) String() string { return nameOf(urgencyNames, int(u)) }

// ParseUrgency maps an urgency name back to the enum.
func ParseUrgency(s string) (UrgencyLevel, bool) {
	i, ok := parseName(urgencyNames, s)
	return UrgencyLevel(i), ok
}

// DocType classifies submitted medical evidence.
type DocType uint8

const (
	DocDiagnosis DocType = iota
	DocTreatmentPlan
	DocMedicalBill
	DocPrescription
	DocLabResults
	DocImaging
	DocOther
)

var docTypeNames = []string{"diagnosis", "treatment_plan", "medical_bill", "prescription", "lab_results", "imaging", "other"}

func (d DocType) String() string { return nameOf(docTypeNames, int(d)) }

// ParseDocType maps a document type name back to the enum.
func ParseDocType(s string) (DocType, bool) {
	i, ok := parseName(docTypeNames, s)
	return DocType(i), ok
}

// DocStatus is the review state of a medical document.
type DocStatus uint8

const (
	DocPending DocStatus = iota
	DocVerified
	DocRejected
	DocExpired
)

var docStatusNames = []string{"pending", "verified", "rejected", "expired"}

func (d DocStatus) String() string { return nameOf(docStatusNames, int(d)) }

// ParseDocStatus maps a status name back to the enum.
func ParseDocStatus(s string) (DocStatus, bool) {
	i, ok := parseName(docStatusNames, s)
	return DocStatus(i), ok
}

// WalletType lists the wallet integrations users can connect.
type WalletType uint8

const (
	WalletFreighter WalletType = iota
	WalletAlbedo
	WalletXBull
	WalletRabet
	WalletLobstr
)

var walletTypeNames = []string{"freighter", "albedo", "xbull", "rabet", "lobstr"}

func (w WalletType) String() string { return nameOf(walletTypeNames, int(w)) }

// ParseWalletType maps a wallet name back to the enum.
func ParseWalletType(s string) (WalletType, bool) {
	i, ok := parseName(walletTypeNames, s)
	return WalletType(i), ok
}

// TransferStatus tracks an off-ledger bank remittance.
type TransferStatus uint8

const (
	TransferPending TransferStatus = iota
	TransferProcessing
	TransferCompleted
	TransferFailed
	TransferCancelled
)

var transferStatusNames = []string{"pending", "processing", "completed", "failed", "cancelled"}

func (s TransferStatus) String() string { return nameOf(transferStatusNames, int(s)) }

// ParseTransferStatus maps a status name back to the enum.
func ParseTransferStatus(s string) (TransferStatus, bool) {
	i, ok := parseName(transferStatusNames, s)
	return TransferStatus(i), ok
}

// Role names an allow-list.
type Role uint8

const (
	RoleAdmin Role = iota
	RoleKYCVerifier
	RoleMedicalVerifier
)

var roleNames = []string{"admin", "kyc_verifier", "medical_verifier"}

func (r Role) String() string { return nameOf(roleNames, int(r)) }

// ParseRole maps a role name back to the enum.
func ParseRole(s string) (Role, bool) {
	i, ok := parseName(roleNames, s)
	return Role(i), ok
}

// Roles lists every allow-list role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleKYCVerifier, RoleMedicalVerifier}
}
