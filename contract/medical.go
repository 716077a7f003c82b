package contract

import (
	"strings"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// MedicalDocParams describe one piece of evidence. DocHash is the digest of the
// off-ledger file, the ledger never sees the document itself.
type MedicalDocParams struct {
	DocType     ledger.DocType
	DocHash     string
	Description string
	Urgency     ledger.UrgencyLevel
}

// SubmitMedicalDoc files evidence for a campaign, beneficiary only.
func (e *Engine) SubmitMedicalDoc(beneficiary sdk.Address, campaignID ledger.ID, p MedicalDocParams) (ledger.ID, error) {
	var id ledger.ID
	err := e.update("submit_medical_doc", func(c *opContext) error {
		if _, err := loadActiveConfig(c); err != nil {
			return err
		}
		camp, err := loadCampaign(c, campaignID)
		if err != nil {
			return err
		}
		if camp.Beneficiary != beneficiary {
			return ledger.ErrNotAuthorized
		}
		hash := strings.TrimSpace(p.DocHash)
		if hash == "" || len(hash) > 128 || strings.Contains(hash, "|") {
			return ledger.ErrInvalidMedicalDoc
		}
		id, err = e.allocateID(c, MedicalDocsCount, newPreimage().
			id(campaignID).
			str(hash).
			uint64(c.now))
		if err != nil {
			return err
		}
		doc := ledger.MedicalDocument{
			ID:          id,
			CampaignID:  campaignID,
			Submitter:   beneficiary,
			DocType:     p.DocType,
			DocHash:     hash,
			Description: p.Description,
			Urgency:     p.Urgency,
			Status:      ledger.DocPending,
			SubmittedAt: c.now,
		}
		if err := saveMedicalDoc(c, &doc); err != nil {
			return err
		}
		if err := appendToIndex(c, campaignDocsIndex(campaignID), id); err != nil {
			return err
		}
		if err := e.trustDocSubmitted(c, beneficiary); err != nil {
			return err
		}
		emitDocSubmitted(c, &doc)
		return nil
	})
	return id, err
}

// VerifyMedicalDoc records a medical verifier's decision on a pending document.
func (e *Engine) VerifyMedicalDoc(verifier sdk.Address, docID ledger.ID, status ledger.DocStatus, notes string) error {
	return e.update("verify_medical_doc", func(c *opContext) error {
		if _, err := loadConfig(c); err != nil {
			return err
		}
		if err := e.requireRole(c, ledger.RoleMedicalVerifier, verifier); err != nil {
			return err
		}
		if status != ledger.DocVerified && status != ledger.DocRejected {
			return ledger.ErrInvalidDocStatus
		}
		doc, err := loadMedicalDoc(c, docID)
		if err != nil {
			return err
		}
		// a decision is final
		if doc.Status != ledger.DocPending {
			return ledger.ErrInvalidDocStatus
		}
		doc.Status = status
		doc.Reviewer = verifier
		doc.ReviewedAt = c.now
		doc.Notes = notes
		if err := saveMedicalDoc(c, &doc); err != nil {
			return err
		}
		if status == ledger.DocVerified {
			camp, err := loadCampaign(c, doc.CampaignID)
			if err != nil {
				return err
			}
			camp.MedicalDocsVerified = true
			if err := saveCampaign(c, &camp); err != nil {
				return err
			}
			if err := e.trustDocVerified(c, verifier); err != nil {
				return err
			}
		}
		emitDocReviewed(c, &doc)
		return nil
	})
}
