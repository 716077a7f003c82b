package contract

import (
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// IdentityGate answers who is verified and who holds which role.
// The default gate reads KYC records and allow-lists from the ledger itself.
type IdentityGate interface {
	IsVerified(r Reader, entity sdk.Address) (verified bool, expiresAt uint64, err error)
	IsAuthorized(r Reader, entity sdk.Address, role ledger.Role) (bool, error)
}

type kycGate struct{}

func (kycGate) IsVerified(r Reader, entity sdk.Address) (bool, uint64, error) {
	rec, ok, err := loadKYC(r, entity)
	if err != nil || !ok {
		return false, 0, err
	}
	return rec.Level != ledger.KYCUnverified, rec.ExpiresAt, nil
}

func (kycGate) IsAuthorized(r Reader, entity sdk.Address, role ledger.Role) (bool, error) {
	return hasRole(r, role, entity)
}

// requireKYC fails with KYCNotVerified or KYCExpired.
func (e *Engine) requireKYC(r Reader, entity sdk.Address, now uint64) error {
	ok, expiresAt, err := e.gate.IsVerified(r, entity)
	if err != nil {
		return err
	}
	if !ok {
		return ledger.ErrKYCNotVerified
	}
	if expiresAt < now {
		return ledger.ErrKYCExpired
	}
	return nil
}

// requireRole fails with NotAuthorized unless addr holds role.
func (e *Engine) requireRole(r Reader, role ledger.Role, addr sdk.Address) error {
	ok, err := e.gate.IsAuthorized(r, addr, role)
	if err != nil {
		return err
	}
	if !ok {
		return ledger.ErrNotAuthorized
	}
	return nil
}

// requireAdmin loads the config and checks the caller is an admin.
func (e *Engine) requireAdmin(r Reader, addr sdk.Address) (ledger.PlatformConfig, error) {
	cfg, err := loadConfig(r)
	if err != nil {
		return cfg, err
	}
	return cfg, e.requireRole(r, ledger.RoleAdmin, addr)
}
