package contract

import (
	"fmt"
	"sort"
	"strconv"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// action runs one operation from a decoded payload and returns a short result line.
type action func(e *Engine, caller sdk.Address, f fields) (string, error)

const resultOK = "ok"

var actions = map[string]action{
	"contract_init": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		p, err := decodeInitArgs(f)
		if err != nil {
			return "", err
		}
		return resultOK, e.Initialize(caller, p)
	},
	"kyc_register": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		level, err := e.RegisterKYC(caller, decodeKYCArgs(f))
		if err != nil {
			return "", err
		}
		return level.String(), nil
	},
	"wallet_connect": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		wt, err := enum(f, 0, "wallet type", ledger.ParseWalletType, ledger.WalletFreighter)
		if err != nil {
			return "", ledger.ErrInvalidWalletType
		}
		return resultOK, e.ConnectWallet(caller, wt, f.get(1), f.list(2))
	},
	"campaign_create": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		p, err := decodeCampaignArgs(f)
		if err != nil {
			return "", err
		}
		return idResult(e.CreateCampaign(caller, p))
	},
	"campaign_status": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "campaign id")
		if err != nil {
			return "", err
		}
		return resultOK, e.UpdateCampaignStatus(caller, id, CampaignStatusUpdate{
			Verified:        f.optionalBool(1),
			FundsLocked:     f.optionalBool(2),
			EmergencyPaused: f.optionalBool(3),
		})
	},
	"campaign_withdraw": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "campaign id")
		if err != nil {
			return "", err
		}
		amount, err := f.requiredUint(1, "amount")
		if err != nil {
			return "", err
		}
		return resultOK, e.WithdrawFunds(caller, id, amount)
	},
	"campaign_proof": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "campaign id")
		if err != nil {
			return "", err
		}
		late, err := e.SubmitProof(caller, id)
		if err != nil {
			return "", err
		}
		if late {
			return "late", nil
		}
		return resultOK, nil
	},
	"donate": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, gross, opts, err := decodeDonateArgs(f)
		if err != nil {
			return "", err
		}
		return idResult(e.Donate(id, caller, gross, opts))
	},
	"donation_refund": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "donation id")
		if err != nil {
			return "", err
		}
		return resultOK, e.RefundDonation(caller, id)
	},
	"remittance_status": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "remittance id")
		if err != nil {
			return "", err
		}
		st, found := ledger.ParseTransferStatus(f.get(1))
		if !found {
			return "", ledger.ErrSPEIError
		}
		return resultOK, e.UpdateRemittanceStatus(caller, id, st, f.get(2))
	},
	"pool_create": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		p, err := decodePoolArgs(f)
		if err != nil {
			return "", err
		}
		return idResult(e.CreateStakingPool(caller, p))
	},
	"pool_active": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "pool id")
		if err != nil {
			return "", err
		}
		return resultOK, e.SetPoolActive(caller, id, f.bool(1))
	},
	"stake": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "pool id")
		if err != nil {
			return "", err
		}
		amount, err := f.requiredUint(1, "amount")
		if err != nil {
			return "", err
		}
		return resultOK, e.Stake(caller, id, amount)
	},
	"unstake": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "pool id")
		if err != nil {
			return "", err
		}
		reward, err := e.Unstake(caller, id)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(reward, 10), nil
	},
	"doc_submit": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, p, err := decodeMedicalDocArgs(f)
		if err != nil {
			return "", err
		}
		return idResult(e.SubmitMedicalDoc(caller, id, p))
	},
	"doc_verify": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		id, err := f.id(0, "document id")
		if err != nil {
			return "", err
		}
		st, found := ledger.ParseDocStatus(f.get(1))
		if !found {
			return "", ledger.ErrInvalidDocStatus
		}
		return resultOK, e.VerifyMedicalDoc(caller, id, st, f.get(2))
	},
	"fraud_report": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		return resultOK, e.ReportFraud(caller, f.address(0))
	},
	"set_fee":          setUint((*Engine).SetPlatformFee, "fee"),
	"set_reward_rate":  setUint((*Engine).SetStakingRewardRate, "reward rate"),
	"set_rate":         setUint((*Engine).SetExchangeRate, "exchange rate"),
	"set_min_donation": setUint((*Engine).SetMinDonation, "min donation"),
	"set_max_duration": setUint((*Engine).SetMaxCampaignDuration, "max duration"),
	"set_kyc_required": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		return resultOK, e.SetKYCRequired(caller, f.bool(0))
	},
	"pause_toggle": func(e *Engine, caller sdk.Address, _ fields) (string, error) {
		paused, err := e.ToggleEmergencyPause(caller)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(paused), nil
	},
	"role_add": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		role, found := ledger.ParseRole(f.get(0))
		if !found {
			return "", ledger.ErrInvalidRole
		}
		return resultOK, e.AddRole(caller, role, f.address(1))
	},
	"role_remove": func(e *Engine, caller sdk.Address, f fields) (string, error) {
		role, found := ledger.ParseRole(f.get(0))
		if !found {
			return "", ledger.ErrInvalidRole
		}
		return resultOK, e.RemoveRole(caller, role, f.address(1))
	},
}

func setUint(fn func(*Engine, sdk.Address, uint64) error, field string) action {
	return func(e *Engine, caller sdk.Address, f fields) (string, error) {
		v, err := f.requiredUint(0, field)
		if err != nil {
			return "", err
		}
		return resultOK, fn(e, caller, v)
	}
}

func idResult(id ledger.ID, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Dispatch routes a named action with a pipe-delimited payload to its operation.
func (e *Engine) Dispatch(name string, caller sdk.Address, payload string) (string, error) {
	run, found := actions[name]
	if !found {
		return "", fmt.Errorf("unknown action %q: %w", name, ledger.ErrInvalidPayload)
	}
	out, err := run(e, caller, splitPayload(payload))
	if err != nil {
		return "", err
	}
	return out, nil
}

// Actions lists the action names Dispatch understands.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for n := range actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
