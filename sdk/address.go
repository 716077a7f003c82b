package sdk

import "strings"

// MaxAddressLength bounds identifiers so keys stay small.
const MaxAddressLength = 128

// Address identifies an account on the ledger (donor, beneficiary, verifier, admin).
type Address string

// String returns the literal representation of the address.
// Example payload: sdk.Address("stellar:alice").String()
func (a Address) String() string {
	return string(a)
}

// IsValid is a light sanity check. Pipes are reserved as payload separators and
// whitespace never shows up in real account ids.
// Example payload: sdk.Address("").IsValid()
func (a Address) IsValid() bool {
	s := a.String()
	if s == "" || len(s) > MaxAddressLength {
		return false
	}
	return !strings.ContainsAny(s, "| \t\r\n")
}
