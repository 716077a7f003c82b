package contract

import (
	"fmt"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// loadRole reads a role's allow-list, empty when never written.
func loadRole(r Reader, role ledger.Role) ([]sdk.Address, error) {
	raw, ok, err := r.Get(roleKey(role))
	if err != nil {
		return nil, fmt.Errorf("read %s list: %w", role, err)
	}
	if !ok {
		return nil, nil
	}
	list, err := ledger.DecodeAddresses(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s list: %w", role, err)
	}
	return list, nil
}

func saveRole(c *opContext, role ledger.Role, list []sdk.Address) error {
	raw, err := ledger.EncodeAddresses(list)
	if err != nil {
		return fmt.Errorf("encode %s list: %w", role, err)
	}
	c.set(roleKey(role), raw)
	return nil
}

// hasRole reports whether addr is on the role's allow-list.
func hasRole(r Reader, role ledger.Role, addr sdk.Address) (bool, error) {
	list, err := loadRole(r, role)
	if err != nil {
		return false, err
	}
	for _, a := range list {
		if a == addr {
			return true, nil
		}
	}
	return false, nil
}

// setRoleEntry adds addr and reports false when it was already listed.
func setRoleEntry(c *opContext, role ledger.Role, addr sdk.Address) (bool, error) {
	list, err := loadRole(c, role)
	if err != nil {
		return false, err
	}
	for _, a := range list {
		if a == addr {
			return false, nil
		}
	}
	return true, saveRole(c, role, append(list, addr))
}

// deleteRoleEntry removes addr and reports whether it existed.
func deleteRoleEntry(c *opContext, role ledger.Role, addr sdk.Address) (bool, error) {
	list, err := loadRole(c, role)
	if err != nil {
		return false, err
	}
	kept := make([]sdk.Address, 0, len(list))
	found := false
	for _, a := range list {
		if a == addr {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return false, nil
	}
	return true, saveRole(c, role, kept)
}
