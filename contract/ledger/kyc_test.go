package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLevelForPrecedence checks the rule table ordering.
func TestLevelForPrecedence(t *testing.T) {
	medical := KYCEvidence{MedicalLicense: "ML-1", Institution: "IMSS"}
	bank := KYCEvidence{BankAccount: "0123", SpeiClabe: "012345678901234567"}
	both := KYCEvidence{MedicalLicense: "ML-1", Institution: "IMSS", BankAccount: "0123", SpeiClabe: "012345678901234567"}

	assert.Equal(t, KYCBasic, LevelFor(KYCEvidence{}))
	assert.Equal(t, KYCMedical, LevelFor(medical))
	assert.Equal(t, KYCBank, LevelFor(bank))
	assert.Equal(t, KYCFull, LevelFor(both))
	// half of a pair is not enough
	assert.Equal(t, KYCBasic, LevelFor(KYCEvidence{MedicalLicense: "ML-1"}))
	assert.Equal(t, KYCBasic, LevelFor(KYCEvidence{SpeiClabe: "012345678901234567"}))
}

// TestKYCFormatValidation checks the length and digit rules.
func TestKYCFormatValidation(t *testing.T) {
	assert.NoError(t, ValidateCURP("ABCD123456HDFGHI01"))
	assert.ErrorIs(t, ValidateCURP("SHORT"), ErrInvalidCURP)

	assert.NoError(t, ValidatePhone("5551234567"))
	assert.ErrorIs(t, ValidatePhone("555123456"), ErrInvalidPhoneNumber)
	assert.ErrorIs(t, ValidatePhone("555123456x"), ErrInvalidPhoneNumber)

	assert.NoError(t, ValidateRFC(""))
	assert.NoError(t, ValidateRFC("ABC123456XY1"))
	assert.NoError(t, ValidateRFC("ABCD123456XY1"))
	assert.ErrorIs(t, ValidateRFC("ABC"), ErrInvalidRFC)

	assert.NoError(t, ValidateCLABE(""))
	assert.NoError(t, ValidateCLABE("012345678901234567"))
	assert.ErrorIs(t, ValidateCLABE("01234567890123456"), ErrInvalidCLABE)
	assert.ErrorIs(t, ValidateCLABE("01234567890123456A"), ErrInvalidCLABE)
}

// TestErrorCodesMatch checks errors.Is by code and code extraction.
func TestErrorCodesMatch(t *testing.T) {
	err := &Error{Code: CodeInvalidCURP}
	assert.ErrorIs(t, err, ErrInvalidCURP)
	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, ErrorCode(11), code)
	assert.Equal(t, ErrorCode(32), CodeInvalidRewardRate)
	assert.Equal(t, "ledger: invalid curp", err.Error())
}
