package contract

import (
	"fmt"
	"strconv"
	"strings"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// fields is a pipe-delimited payload split into its positions.
type fields []string

// splitPayload trims quotes and whitespace and splits on '|'.
func splitPayload(payload string) fields {
	raw := unwrapPayload(payload)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "|")
}

// unwrapPayload drops one level of JSON or single quotes around the payload.
func unwrapPayload(payload string) string {
	raw := strings.TrimSpace(payload)
	if len(raw) >= 2 {
		first := raw[0]
		last := raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				return strings.TrimSpace(unquoted)
			}
			raw = strings.TrimSpace(raw[1 : len(raw)-1])
		}
	}
	return raw
}

// get returns the trimmed field or "" past the end.
func (f fields) get(i int) string {
	if i < len(f) {
		return strings.TrimSpace(f[i])
	}
	return ""
}

func invalidField(field string) error {
	return fmt.Errorf("invalid %s: %w", field, ledger.ErrInvalidPayload)
}

// uint parses an optional unsigned field, empty means zero.
func (f fields) uint(i int, field string) (uint64, error) {
	v := f.get(i)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, invalidField(field)
	}
	return n, nil
}

// requiredUint is uint without the empty default.
func (f fields) requiredUint(i int, field string) (uint64, error) {
	if f.get(i) == "" {
		return 0, invalidField(field)
	}
	return f.uint(i, field)
}

// bool accepts a couple of truthy keywords, defaulting to false for unknown text.
func (f fields) bool(i int) bool {
	switch strings.ToLower(f.get(i)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// optionalBool is nil for an empty field so callers can tell "leave as is" apart.
func (f fields) optionalBool(i int) *bool {
	if f.get(i) == "" {
		return nil
	}
	v := f.bool(i)
	return &v
}

func (f fields) id(i int, field string) (ledger.ID, error) {
	id, err := ledger.ParseID(f.get(i))
	if err != nil {
		return id, invalidField(field)
	}
	return id, nil
}

func (f fields) address(i int) sdk.Address {
	return sdk.Address(f.get(i))
}

// list splits a ';' separated field and drops empty entries.
func (f fields) list(i int) []string {
	v := f.get(i)
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// enum parses a named enum field with parse, using def when the field is empty.
func enum[T any](f fields, i int, field string, parse func(string) (T, bool), def T) (T, error) {
	v := strings.ToLower(f.get(i))
	if v == "" {
		return def, nil
	}
	out, ok := parse(v)
	if !ok {
		return def, invalidField(field)
	}
	return out, nil
}

// decodeInitArgs expects fee|reward|spei|rate|kyc|min|maxDays.
func decodeInitArgs(f fields) (InitParams, error) {
	var (
		p   InitParams
		err error
	)
	if p.FeeBp, err = f.uint(0, "fee"); err != nil {
		return p, err
	}
	if p.RewardBp, err = f.uint(1, "reward rate"); err != nil {
		return p, err
	}
	p.SpeiConfig = f.get(2)
	if p.ExchangeRate, err = f.uint(3, "exchange rate"); err != nil {
		return p, err
	}
	p.KYCRequired = f.bool(4)
	if p.MinDonation, err = f.uint(5, "min donation"); err != nil {
		return p, err
	}
	if p.MaxCampaignDurationDays, err = f.uint(6, "max duration"); err != nil {
		return p, err
	}
	return p, nil
}

// decodeKYCArgs expects curp|name|phone|email|address|birth|nationality|license|institution|rfc|bank|clabe.
func decodeKYCArgs(f fields) KYCParams {
	return KYCParams{
		CURP:           f.get(0),
		FullName:       f.get(1),
		Phone:          f.get(2),
		Email:          f.get(3),
		PostalAddress:  f.get(4),
		BirthDate:      f.get(5),
		Nationality:    f.get(6),
		MedicalLicense: f.get(7),
		Institution:    f.get(8),
		RFC:            f.get(9),
		BankAccount:    f.get(10),
		SpeiClabe:      f.get(11),
	}
}

// decodeCampaignArgs expects title|description|condition|category|location|spei|urgency|goal|days.
func decodeCampaignArgs(f fields) (CampaignParams, error) {
	p := CampaignParams{
		Title:            f.get(0),
		Description:      f.get(1),
		MedicalCondition: f.get(2),
		Category:         f.get(3),
		Location:         f.get(4),
		SpeiAccount:      f.get(5),
	}
	var err error
	if p.Urgency, err = enum(f, 6, "urgency", ledger.ParseUrgency, ledger.UrgencyMedium); err != nil {
		return p, err
	}
	if p.Goal, err = f.uint(7, "goal"); err != nil {
		return p, err
	}
	if p.DurationDays, err = f.uint(8, "duration"); err != nil {
		return p, err
	}
	return p, nil
}

// decodeDonateArgs expects campaignId|gross|mintNft|anonymous|externalRef.
func decodeDonateArgs(f fields) (ledger.ID, uint64, DonateOptions, error) {
	var opts DonateOptions
	id, err := f.id(0, "campaign id")
	if err != nil {
		return id, 0, opts, err
	}
	gross, err := f.requiredUint(1, "amount")
	if err != nil {
		return id, 0, opts, err
	}
	opts.MintNFT = f.bool(2)
	opts.Anonymous = f.bool(3)
	if ref := f.get(4); ref != "" {
		opts.ExternalRef = &ref
	}
	return id, gross, opts, nil
}

// decodePoolArgs expects apy|lockSeconds|min|max.
func decodePoolArgs(f fields) (PoolParams, error) {
	var (
		p   PoolParams
		err error
	)
	if p.APY, err = f.uint(0, "apy"); err != nil {
		return p, err
	}
	if p.LockPeriod, err = f.uint(1, "lock period"); err != nil {
		return p, err
	}
	if p.MinStake, err = f.uint(2, "min stake"); err != nil {
		return p, err
	}
	if p.MaxStake, err = f.uint(3, "max stake"); err != nil {
		return p, err
	}
	return p, nil
}

// decodeMedicalDocArgs expects campaignId|type|hash|description|urgency.
func decodeMedicalDocArgs(f fields) (ledger.ID, MedicalDocParams, error) {
	var p MedicalDocParams
	id, err := f.id(0, "campaign id")
	if err != nil {
		return id, p, err
	}
	if p.DocType, err = enum(f, 1, "document type", ledger.ParseDocType, ledger.DocOther); err != nil {
		return id, p, err
	}
	p.DocHash = f.get(2)
	p.Description = f.get(3)
	if p.Urgency, err = enum(f, 4, "urgency", ledger.ParseUrgency, ledger.UrgencyMedium); err != nil {
		return id, p, err
	}
	return id, p, nil
}
