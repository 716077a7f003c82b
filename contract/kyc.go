package contract

import (
	"strings"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// KYCParams is the identity material submitted at registration.
type KYCParams struct {
	CURP           string
	FullName       string
	Phone          string
	Email          string
	PostalAddress  string
	BirthDate      string
	Nationality    string
	MedicalLicense string
	Institution    string
	RFC            string
	BankAccount    string
	SpeiClabe      string
}

// RegisterKYC validates the formats, derives the level from the rule table and
// stores a record valid for one year. Re-registering supersedes the old record.
func (e *Engine) RegisterKYC(entity sdk.Address, p KYCParams) (ledger.KYCLevel, error) {
	var level ledger.KYCLevel
	err := e.update("register_kyc", func(c *opContext) error {
		if err := checkAddress(entity); err != nil {
			return err
		}
		if _, err := loadConfig(c); err != nil {
			return err
		}
		p.CURP = strings.TrimSpace(p.CURP)
		p.Phone = strings.TrimSpace(p.Phone)
		p.RFC = strings.TrimSpace(p.RFC)
		p.SpeiClabe = strings.TrimSpace(p.SpeiClabe)
		if err := ledger.ValidateCURP(p.CURP); err != nil {
			return err
		}
		if err := ledger.ValidatePhone(p.Phone); err != nil {
			return err
		}
		if err := ledger.ValidateRFC(p.RFC); err != nil {
			return err
		}
		if err := ledger.ValidateCLABE(p.SpeiClabe); err != nil {
			return err
		}
		level = ledger.LevelFor(ledger.KYCEvidence{
			MedicalLicense: p.MedicalLicense,
			Institution:    p.Institution,
			BankAccount:    p.BankAccount,
			SpeiClabe:      p.SpeiClabe,
		})
		prev, existed, err := loadKYC(c, entity)
		if err != nil {
			return err
		}
		rec := ledger.KYCRecord{
			Entity:          entity,
			CURP:            p.CURP,
			FullName:        p.FullName,
			Phone:           p.Phone,
			Email:           p.Email,
			PostalAddress:   p.PostalAddress,
			BirthDate:       p.BirthDate,
			Nationality:     p.Nationality,
			MedicalLicense:  p.MedicalLicense,
			Institution:     p.Institution,
			RFC:             p.RFC,
			BankAccount:     p.BankAccount,
			SpeiClabe:       p.SpeiClabe,
			Level:           level,
			VerifiedAt:      c.now,
			ExpiresAt:       c.now + ledger.KYCValidity,
			WalletConnected: existed && prev.WalletConnected,
		}
		if err := saveKYC(c, &rec); err != nil {
			return err
		}

		ts, hasScore, err := loadTrust(c, entity)
		if err != nil {
			return err
		}
		if !hasScore {
			if err := e.adjustTrust(c, entity, "kyc", func(*ledger.TrustScore) {}); err != nil {
				return err
			}
		} else if ts.Level != level {
			ts.Level = level
			ts.UpdatedAt = c.now
			if err := saveTrust(c, &ts); err != nil {
				return err
			}
		}

		if !existed {
			if err := updateStats(c, func(s *ledger.PlatformStats) {
				s.TotalUsers++
				s.KYCVerifiedUsers++
			}); err != nil {
				return err
			}
		}
		emitKYCRegistered(c, entity, level)
		return nil
	})
	return level, err
}

// ConnectWallet links a wallet to a registered user.
func (e *Engine) ConnectWallet(owner sdk.Address, wt ledger.WalletType, publicKey string, permissions []string) error {
	return e.update("connect_wallet", func(c *opContext) error {
		if err := checkAddress(owner); err != nil {
			return err
		}
		if _, err := loadConfig(c); err != nil {
			return err
		}
		if _, ok := ledger.ParseWalletType(wt.String()); !ok {
			return ledger.ErrInvalidWalletType
		}
		if strings.TrimSpace(publicKey) == "" {
			return ledger.ErrInvalidPayload
		}
		rec, ok, err := loadKYC(c, owner)
		if err != nil {
			return err
		}
		if !ok {
			return ledger.ErrKYCNotVerified
		}
		w := ledger.WalletConnection{
			Owner:       owner,
			WalletType:  wt,
			PublicKey:   strings.TrimSpace(publicKey),
			Permissions: permissions,
			ConnectedAt: c.now,
		}
		if err := saveWallet(c, &w); err != nil {
			return err
		}
		rec.WalletConnected = true
		if err := saveKYC(c, &rec); err != nil {
			return err
		}
		emitWalletConnected(c, owner, wt)
		return nil
	})
}
