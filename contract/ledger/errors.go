package ledger

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of failure kinds. Codes 1-32 keep their historic numbering.
type ErrorCode uint32

const (
	CodeInvalidFee ErrorCode = iota + 1
	CodeInvalidGoal
	CodeInvalidDuration
	CodeCampaignNotFound
	CodeCampaignEnded
	CodeInvalidAmount
	CodeScoreExists
	CodeInsufficientFunds
	CodeNotApproved
	CodeKYCNotVerified
	CodeInvalidCURP
	CodeInvalidPhoneNumber
	CodeMedicalDocsExpired
	CodeProofDeadlineExceeded
	CodeFundsLocked
	CodeSPEIError
	CodeInvalidMedicalDoc
	CodeNotAuthorized
	CodeDocumentExpired
	CodeRefundPeriodExpired
	CodeWalletNotConnected
	CodeInvalidWalletType
	CodeStakingPoolNotFound
	CodeInsufficientStakingAmount
	CodeStakingLockPeriodActive
	CodeEmergencyPauseActive
	CodeInvalidRFC
	CodeInvalidCLABE
	CodeBankAccountNotVerified
	CodeKYCExpired
	CodeMaxStakingExceeded
	CodeInvalidRewardRate
	CodeAlreadyRefunded
	CodeDonationNotFound
	CodeStakingPositionNotFound
	CodeAlreadyInitialized
	CodeNotInitialized
	CodeInvalidRole
	CodeInvalidDocStatus
	CodeNFTNotFound
	CodeMedicalDocNotFound
	CodeRemittanceNotFound
	CodeInvalidAddress
	CodeInvalidPayload
)

var errorNames = map[ErrorCode]string{
	CodeInvalidFee:                "invalid fee",
	CodeInvalidGoal:               "invalid goal",
	CodeInvalidDuration:           "invalid duration",
	CodeCampaignNotFound:          "campaign not found",
	CodeCampaignEnded:             "campaign ended",
	CodeInvalidAmount:             "invalid amount",
	CodeScoreExists:               "score exists",
	CodeInsufficientFunds:         "insufficient funds",
	CodeNotApproved:               "not approved",
	CodeKYCNotVerified:            "kyc not verified",
	CodeInvalidCURP:               "invalid curp",
	CodeInvalidPhoneNumber:        "invalid phone number",
	CodeMedicalDocsExpired:        "medical docs expired",
	CodeProofDeadlineExceeded:     "proof deadline exceeded",
	CodeFundsLocked:               "funds locked",
	CodeSPEIError:                 "spei error",
	CodeInvalidMedicalDoc:         "invalid medical doc",
	CodeNotAuthorized:             "not authorized",
	CodeDocumentExpired:           "document expired",
	CodeRefundPeriodExpired:       "refund period expired",
	CodeWalletNotConnected:        "wallet not connected",
	CodeInvalidWalletType:         "invalid wallet type",
	CodeStakingPoolNotFound:       "staking pool not found",
	CodeInsufficientStakingAmount: "insufficient staking amount",
	CodeStakingLockPeriodActive:   "staking lock period active",
	CodeEmergencyPauseActive:      "emergency pause active",
	CodeInvalidRFC:                "invalid rfc",
	CodeInvalidCLABE:              "invalid clabe",
	CodeBankAccountNotVerified:    "bank account not verified",
	CodeKYCExpired:                "kyc expired",
	CodeMaxStakingExceeded:        "max staking exceeded",
	CodeInvalidRewardRate:         "invalid reward rate",
	CodeAlreadyRefunded:           "already refunded",
	CodeDonationNotFound:          "donation not found",
	CodeStakingPositionNotFound:   "staking position not found",
	CodeAlreadyInitialized:        "already initialized",
	CodeNotInitialized:            "not initialized",
	CodeInvalidRole:               "invalid role",
	CodeInvalidDocStatus:          "invalid document status",
	CodeNFTNotFound:               "nft not found",
	CodeMedicalDocNotFound:        "medical document not found",
	CodeRemittanceNotFound:        "remittance not found",
	CodeInvalidAddress:            "invalid address",
	CodeInvalidPayload:            "invalid payload",
}

func (c ErrorCode) String() string {
	if n, ok := errorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("error %d", uint32(c))
}

// Error is the only error kind operations report for rule violations.
type Error struct {
	Code ErrorCode
}

func (e *Error) Error() string {
	return "ledger: " + e.Code.String()
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf extracts the code from err, ok=false for infrastructure failures.
func CodeOf(err error) (ErrorCode, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Code, true
	}
	return 0, false
}

var (
	ErrInvalidFee                = &Error{CodeInvalidFee}
	ErrInvalidGoal               = &Error{CodeInvalidGoal}
	ErrInvalidDuration           = &Error{CodeInvalidDuration}
	ErrCampaignNotFound          = &Error{CodeCampaignNotFound}
	ErrCampaignEnded             = &Error{CodeCampaignEnded}
	ErrInvalidAmount             = &Error{CodeInvalidAmount}
	ErrInsufficientFunds         = &Error{CodeInsufficientFunds}
	ErrNotApproved               = &Error{CodeNotApproved}
	ErrKYCNotVerified            = &Error{CodeKYCNotVerified}
	ErrInvalidCURP               = &Error{CodeInvalidCURP}
	ErrInvalidPhoneNumber        = &Error{CodeInvalidPhoneNumber}
	ErrProofDeadlineExceeded     = &Error{CodeProofDeadlineExceeded}
	ErrFundsLocked               = &Error{CodeFundsLocked}
	ErrSPEIError                 = &Error{CodeSPEIError}
	ErrInvalidMedicalDoc         = &Error{CodeInvalidMedicalDoc}
	ErrNotAuthorized             = &Error{CodeNotAuthorized}
	ErrRefundPeriodExpired       = &Error{CodeRefundPeriodExpired}
	ErrWalletNotConnected        = &Error{CodeWalletNotConnected}
	ErrInvalidWalletType         = &Error{CodeInvalidWalletType}
	ErrStakingPoolNotFound       = &Error{CodeStakingPoolNotFound}
	ErrInsufficientStakingAmount = &Error{CodeInsufficientStakingAmount}
	ErrStakingLockPeriodActive   = &Error{CodeStakingLockPeriodActive}
	ErrEmergencyPauseActive      = &Error{CodeEmergencyPauseActive}
	ErrInvalidRFC                = &Error{CodeInvalidRFC}
	ErrInvalidCLABE              = &Error{CodeInvalidCLABE}
	ErrKYCExpired                = &Error{CodeKYCExpired}
	ErrMaxStakingExceeded        = &Error{CodeMaxStakingExceeded}
	ErrInvalidRewardRate         = &Error{CodeInvalidRewardRate}
	ErrAlreadyRefunded           = &Error{CodeAlreadyRefunded}
	ErrDonationNotFound          = &Error{CodeDonationNotFound}
	ErrStakingPositionNotFound   = &Error{CodeStakingPositionNotFound}
	ErrAlreadyInitialized        = &Error{CodeAlreadyInitialized}
	ErrNotInitialized            = &Error{CodeNotInitialized}
	ErrInvalidRole               = &Error{CodeInvalidRole}
	ErrInvalidDocStatus          = &Error{CodeInvalidDocStatus}
	ErrNFTNotFound               = &Error{CodeNFTNotFound}
	ErrMedicalDocNotFound        = &Error{CodeMedicalDocNotFound}
	ErrRemittanceNotFound        = &Error{CodeRemittanceNotFound}
	ErrInvalidAddress            = &Error{CodeInvalidAddress}
	ErrInvalidPayload            = &Error{CodeInvalidPayload}
)
