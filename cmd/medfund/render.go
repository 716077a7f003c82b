package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/CosmWasm/tinyjson/jwriter"

	"medfund_ledger/contract"
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

var errNotFound = errors.New("not found")

type showFunc func(e *contract.Engine, keys []string) ([]byte, error)

// record encodes a getter result, turning found=false into errNotFound.
func record[T ledger.Marshaler](v T, found bool, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errNotFound
	}
	return ledger.Encode(v)
}

func ids(list []ledger.ID, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return ledger.EncodeIDs(list)
}

// byID adapts an id-keyed getter.
func byID[T ledger.Marshaler](get func(*contract.Engine, ledger.ID) (T, bool, error)) showFunc {
	return func(e *contract.Engine, keys []string) ([]byte, error) {
		id, err := ledger.ParseID(keys[0])
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", keys[0], err)
		}
		return record(get(e, id))
	}
}

// byAddr adapts an address-keyed getter.
func byAddr[T ledger.Marshaler](get func(*contract.Engine, sdk.Address) (T, bool, error)) showFunc {
	return func(e *contract.Engine, keys []string) ([]byte, error) {
		return record(get(e, sdk.Address(keys[0])))
	}
}

func listByID(get func(*contract.Engine, ledger.ID) ([]ledger.ID, error)) showFunc {
	return func(e *contract.Engine, keys []string) ([]byte, error) {
		id, err := ledger.ParseID(keys[0])
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", keys[0], err)
		}
		return ids(get(e, id))
	}
}

type showKind struct {
	keys []string
	fn   showFunc
}

var showKinds = map[string]showKind{
	"config": {nil, func(e *contract.Engine, _ []string) ([]byte, error) { return record(e.GetConfig()) }},
	"stats":  {nil, func(e *contract.Engine, _ []string) ([]byte, error) { return record(e.GetStats()) }},
	"counters": {nil, func(e *contract.Engine, _ []string) ([]byte, error) {
		c, err := e.GetCounters()
		if err != nil {
			return nil, err
		}
		return renderCounters(c)
	}},
	"campaigns": {nil, func(e *contract.Engine, _ []string) ([]byte, error) { return ids(e.ListCampaigns()) }},
	"pools":     {nil, func(e *contract.Engine, _ []string) ([]byte, error) { return ids(e.ListStakingPools()) }},
	"role": {[]string{"role"}, func(e *contract.Engine, keys []string) ([]byte, error) {
		role, ok := ledger.ParseRole(keys[0])
		if !ok {
			return nil, ledger.ErrInvalidRole
		}
		members, _, err := e.GetRoleMembers(role)
		if err != nil {
			return nil, err
		}
		return ledger.EncodeAddresses(members)
	}},
	"campaign":   {[]string{"id"}, byID((*contract.Engine).GetCampaign)},
	"donation":   {[]string{"id"}, byID((*contract.Engine).GetDonation)},
	"nft":        {[]string{"id"}, byID((*contract.Engine).GetNFT)},
	"pool":       {[]string{"id"}, byID((*contract.Engine).GetStakingPool)},
	"doc":        {[]string{"id"}, byID((*contract.Engine).GetMedicalDoc)},
	"remittance": {[]string{"id"}, byID((*contract.Engine).GetRemittance)},
	"donations":  {[]string{"campaign"}, listByID((*contract.Engine).ListCampaignDonations)},
	"docs":       {[]string{"campaign"}, listByID((*contract.Engine).ListCampaignDocs)},
	"kyc":        {[]string{"address"}, byAddr((*contract.Engine).GetKYC)},
	"trust":      {[]string{"address"}, byAddr((*contract.Engine).GetTrustScore)},
	"wallet":     {[]string{"address"}, byAddr((*contract.Engine).GetWallet)},
	"audit": {[]string{"campaign"}, func(e *contract.Engine, keys []string) ([]byte, error) {
		id, err := ledger.ParseID(keys[0])
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", keys[0], err)
		}
		a, found, err := e.AuditCampaign(id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errNotFound
		}
		return renderAudit(a)
	}},
	"position": {[]string{"pool", "address"}, func(e *contract.Engine, keys []string) ([]byte, error) {
		id, err := ledger.ParseID(keys[0])
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", keys[0], err)
		}
		return record(e.GetStakingPosition(id, sdk.Address(keys[1])))
	}},
	"donor-nft": {[]string{"address", "campaign"}, func(e *contract.Engine, keys []string) ([]byte, error) {
		id, err := ledger.ParseID(keys[1])
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", keys[1], err)
		}
		return record(e.GetDonorNFT(sdk.Address(keys[0]), id))
	}},
}

func show(e *contract.Engine, kind string, keys []string) ([]byte, error) {
	k, ok := showKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q, want one of: %s", kind, showKindList())
	}
	if len(keys) != len(k.keys) {
		return nil, fmt.Errorf("%s takes %d key(s): %s", kind, len(k.keys), strings.Join(k.keys, " "))
	}
	return k.fn(e, keys)
}

func showKindList() string {
	names := make([]string, 0, len(showKinds))
	for name, k := range showKinds {
		names = append(names, strings.TrimSpace(name+" "+strings.Join(k.keys, " ")))
	}
	sort.Strings(names)
	return strings.Join(names, "\n  ")
}

func actionList() string {
	return strings.Join(contract.Actions(), " ")
}

func renderCounters(c contract.Counters) ([]byte, error) {
	w := jwriter.Writer{}
	w.RawByte('{')
	for i, f := range []struct {
		name string
		v    uint64
	}{
		{"campaigns", c.Campaigns},
		{"donations", c.Donations},
		{"pools", c.Pools},
		{"medical_docs", c.MedicalDocs},
		{"nfts", c.NFTs},
		{"remittances", c.Remittances},
		{"staking_rewards", c.StakingRewards},
	} {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(f.name)
		w.RawByte(':')
		w.Uint64(f.v)
	}
	w.RawByte('}')
	return w.BuildBytes()
}

func renderAudit(a contract.CampaignAudit) ([]byte, error) {
	w := jwriter.Writer{}
	w.RawString(`{"campaign_id":`)
	w.String(a.CampaignID.String())
	w.RawString(`,"current_amount":`)
	w.Uint64(a.CurrentAmount)
	w.RawString(`,"withdrawn_amount":`)
	w.Uint64(a.WithdrawnAmount)
	w.RawString(`,"unrefunded":`)
	w.Uint64(a.Unrefunded)
	w.RawString(`,"donations":`)
	w.Uint64(a.Donations)
	w.RawString(`,"refunded":`)
	w.Uint64(a.Refunded)
	w.RawString(`,"balanced":`)
	w.Bool(a.Balanced)
	w.RawByte('}')
	return w.BuildBytes()
}
