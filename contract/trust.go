package contract

import (
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// loadOrSeedTrust returns the stored score or a fresh one at the KYC baseline.
func loadOrSeedTrust(r Reader, entity sdk.Address, now uint64) (ledger.TrustScore, error) {
	ts, ok, err := loadTrust(r, entity)
	if err != nil || ok {
		return ts, err
	}
	level := ledger.KYCUnverified
	rec, found, err := loadKYC(r, entity)
	if err != nil {
		return ts, err
	}
	if found {
		level = rec.Level
	}
	return ledger.TrustScore{
		Entity:    entity,
		Score:     ledger.BaselineScore(level),
		Level:     level,
		UpdatedAt: now,
	}, nil
}

// adjustTrust applies fn to the entity's score and persists it.
func (e *Engine) adjustTrust(c *opContext, entity sdk.Address, reason string, fn func(ts *ledger.TrustScore)) error {
	ts, err := loadOrSeedTrust(c, entity, c.now)
	if err != nil {
		return err
	}
	fn(&ts)
	ts.UpdatedAt = c.now
	if err := saveTrust(c, &ts); err != nil {
		return err
	}
	emitTrustChanged(c, &ts, reason)
	return nil
}

func (e *Engine) bonus(score, delta uint64) uint64 {
	return ledger.ApplyBonus(score, delta, e.scoreCap)
}

func (e *Engine) trustCampaignCreated(c *opContext, entity sdk.Address) error {
	return e.adjustTrust(c, entity, "campaign", func(ts *ledger.TrustScore) {
		ts.Score = e.bonus(ts.Score, ledger.TrustCampaignCreated)
		ts.CampaignsCreated++
	})
}

func (e *Engine) trustDonation(c *opContext, entity sdk.Address, net uint64) error {
	return e.adjustTrust(c, entity, "donation", func(ts *ledger.TrustScore) {
		ts.Score = e.bonus(ts.Score, net/sdk.BaseUnit)
		ts.DonationsMade++
		ts.TotalDonated += net
	})
}

func (e *Engine) trustDocSubmitted(c *opContext, entity sdk.Address) error {
	return e.adjustTrust(c, entity, "doc_submitted", func(ts *ledger.TrustScore) {
		ts.MedicalDocsSubmitted++
	})
}

func (e *Engine) trustDocVerified(c *opContext, verifier sdk.Address) error {
	return e.adjustTrust(c, verifier, "doc_verified", func(ts *ledger.TrustScore) {
		ts.Score = e.bonus(ts.Score, ledger.TrustDocVerified)
		ts.DocsVerified++
	})
}

func (e *Engine) trustLateProof(c *opContext, entity sdk.Address) error {
	return e.adjustTrust(c, entity, "late_proof", func(ts *ledger.TrustScore) {
		ts.Score = ledger.ApplyPenalty(ts.Score, ledger.TrustLateProof)
		ts.LateProofs++
	})
}

// ReportFraud lowers the target's score. The reporter needs a score of at least 30
// and cannot report themselves.
func (e *Engine) ReportFraud(reporter, target sdk.Address) error {
	return e.update("report_fraud", func(c *opContext) error {
		if err := checkAddress(reporter, target); err != nil {
			return err
		}
		if _, err := loadConfig(c); err != nil {
			return err
		}
		if reporter == target {
			return ledger.ErrNotAuthorized
		}
		rep, err := loadOrSeedTrust(c, reporter, c.now)
		if err != nil {
			return err
		}
		if rep.Score < ledger.TrustReporterMinimum {
			return ledger.ErrNotAuthorized
		}
		if err := e.adjustTrust(c, target, "fraud", func(ts *ledger.TrustScore) {
			ts.Score = ledger.ApplyPenalty(ts.Score, ledger.TrustFraudPenalty)
			ts.FraudReports++
		}); err != nil {
			return err
		}
		emitFraudReported(c, reporter, target)
		return nil
	})
}
