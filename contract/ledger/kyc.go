package ledger

import "strings"

// KYCValidity is how long a registration stays valid.
const KYCValidity uint64 = 365 * 86_400

// KYCEvidence is the optional material a registrant supplied.
type KYCEvidence struct {
	MedicalLicense string
	Institution    string
	BankAccount    string
	SpeiClabe      string
}

func (e KYCEvidence) hasMedical() bool {
	return strings.TrimSpace(e.MedicalLicense) != "" && strings.TrimSpace(e.Institution) != ""
}

func (e KYCEvidence) hasBank() bool {
	return strings.TrimSpace(e.BankAccount) != "" && strings.TrimSpace(e.SpeiClabe) != ""
}

// kycLevelRules is evaluated top to bottom, first match wins.
var kycLevelRules = []struct {
	level KYCLevel
	match func(KYCEvidence) bool
}{
	{KYCFull, func(e KYCEvidence) bool { return e.hasMedical() && e.hasBank() }},
	{KYCMedical, KYCEvidence.hasMedical},
	{KYCBank, KYCEvidence.hasBank},
	{KYCBasic, func(KYCEvidence) bool { return true }},
}

// LevelFor derives the verification level from the supplied evidence.
func LevelFor(e KYCEvidence) KYCLevel {
	for _, r := range kycLevelRules {
		if r.match(e) {
			return r.level
		}
	}
	return KYCUnverified
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateCURP checks the 18 character population registry code.
func ValidateCURP(curp string) error {
	if len(curp) != 18 {
		return ErrInvalidCURP
	}
	return nil
}

// ValidatePhone checks a 10 digit national number.
func ValidatePhone(phone string) error {
	if len(phone) != 10 || !allDigits(phone) {
		return ErrInvalidPhoneNumber
	}
	return nil
}

// ValidateRFC checks the optional 12 or 13 character tax id.
func ValidateRFC(rfc string) error {
	if rfc == "" {
		return nil
	}
	if len(rfc) < 12 || len(rfc) > 13 {
		return ErrInvalidRFC
	}
	return nil
}

// ValidateCLABE checks the optional 18 digit interbank account number.
func ValidateCLABE(clabe string) error {
	if clabe == "" {
		return nil
	}
	if len(clabe) != 18 || !allDigits(clabe) {
		return ErrInvalidCLABE
	}
	return nil
}
