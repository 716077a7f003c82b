package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfund_ledger/contract"
	"medfund_ledger/contract/ledger"
)

// =============================================================================
// Medical Document Tests
// =============================================================================

// TestSubmitMedicalDoc checks only the beneficiary can file evidence and it starts pending.
func TestSubmitMedicalDoc(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	params := contract.MedicalDocParams{
		DocType:     ledger.DocMedicalBill,
		DocHash:     "b3:7d1e",
		Description: "hospital invoice",
		Urgency:     ledger.UrgencyCritical,
	}

	_, err := ct.SubmitMedicalDoc(outsiderAddress, campID, params)
	assertCode(t, err, ledger.ErrNotAuthorized)
	_, err = ct.SubmitMedicalDoc(beneficiaryAddress, campID, contract.MedicalDocParams{})
	assertCode(t, err, ledger.ErrInvalidMedicalDoc)
	_, err = ct.SubmitMedicalDoc(beneficiaryAddress, ledger.ID{2}, params)
	assertCode(t, err, ledger.ErrCampaignNotFound)

	id, err := ct.SubmitMedicalDoc(beneficiaryAddress, campID, params)
	require.NoError(t, err)

	doc, ok, err := ct.GetMedicalDoc(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ledger.DocPending, doc.Status)
	assert.Equal(t, ledger.DocMedicalBill, doc.DocType)
	assert.Equal(t, beneficiaryAddress, doc.Submitter)

	ids, err := ct.ListCampaignDocs(campID)
	require.NoError(t, err)
	assert.Equal(t, []ledger.ID{id}, ids)

	ts := mustTrust(t, ct, beneficiaryAddress)
	assert.Equal(t, uint64(1), ts.MedicalDocsSubmitted)
	assert.Equal(t, uint64(150), ts.Score)
}

// TestVerifyMedicalDoc checks the verifier gate, the allowed outcomes and the campaign flag.
func TestVerifyMedicalDoc(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	params := contract.MedicalDocParams{DocType: ledger.DocDiagnosis, DocHash: "aa01"}
	rejected, err := ct.SubmitMedicalDoc(beneficiaryAddress, campID, params)
	require.NoError(t, err)
	accepted, err := ct.SubmitMedicalDoc(beneficiaryAddress, campID, params)
	require.NoError(t, err)
	assert.NotEqual(t, rejected, accepted)

	assertCode(t, ct.VerifyMedicalDoc(verifierAddress, rejected, ledger.DocRejected, ""), ledger.ErrNotAuthorized)
	require.NoError(t, ct.AddRole(ownerAddress, ledger.RoleMedicalVerifier, verifierAddress))
	assertCode(t, ct.VerifyMedicalDoc(verifierAddress, rejected, ledger.DocPending, ""), ledger.ErrInvalidDocStatus)
	assertCode(t, ct.VerifyMedicalDoc(verifierAddress, ledger.ID{8}, ledger.DocVerified, ""), ledger.ErrMedicalDocNotFound)

	require.NoError(t, ct.VerifyMedicalDoc(verifierAddress, rejected, ledger.DocRejected, "blurry scan"))
	assert.False(t, mustCampaign(t, ct, campID).MedicalDocsVerified)

	require.NoError(t, ct.VerifyMedicalDoc(verifierAddress, accepted, ledger.DocVerified, ""))
	assert.True(t, mustCampaign(t, ct, campID).MedicalDocsVerified)

	doc, _, err := ct.GetMedicalDoc(rejected)
	require.NoError(t, err)
	assert.Equal(t, ledger.DocRejected, doc.Status)
	assert.Equal(t, "blurry scan", doc.Notes)
	assert.Equal(t, verifierAddress, doc.Reviewer)

	ts := mustTrust(t, ct, verifierAddress)
	assert.Equal(t, uint64(20), ts.Score)
	assert.Equal(t, uint64(1), ts.DocsVerified)
}

// TestVerifyMedicalDocIsFinal checks a reviewed document cannot be reviewed again,
// so the verifier bonus is paid once and a verified campaign stays consistent.
func TestVerifyMedicalDocIsFinal(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	require.NoError(t, ct.AddRole(ownerAddress, ledger.RoleMedicalVerifier, verifierAddress))
	docID, err := ct.SubmitMedicalDoc(beneficiaryAddress, campID, contract.MedicalDocParams{
		DocType: ledger.DocDiagnosis,
		DocHash: "c0ffee",
	})
	require.NoError(t, err)

	require.NoError(t, ct.VerifyMedicalDoc(verifierAddress, docID, ledger.DocVerified, "ok"))
	before := ct.Store.Snapshot()
	for i := 0; i < 4; i++ {
		assertCode(t, ct.VerifyMedicalDoc(verifierAddress, docID, ledger.DocVerified, "again"), ledger.ErrInvalidDocStatus)
	}
	assertCode(t, ct.VerifyMedicalDoc(verifierAddress, docID, ledger.DocRejected, "changed my mind"), ledger.ErrInvalidDocStatus)
	assert.Equal(t, before, ct.Store.Snapshot())

	ts := mustTrust(t, ct, verifierAddress)
	assert.Equal(t, uint64(20), ts.Score)
	assert.Equal(t, uint64(1), ts.DocsVerified)

	doc, _, err := ct.GetMedicalDoc(docID)
	require.NoError(t, err)
	assert.Equal(t, ledger.DocVerified, doc.Status)
	assert.Equal(t, "ok", doc.Notes)
	assert.True(t, mustCampaign(t, ct, campID).MedicalDocsVerified)

	// a rejection is final as well
	other, err := ct.SubmitMedicalDoc(beneficiaryAddress, campID, contract.MedicalDocParams{
		DocType: ledger.DocDiagnosis,
		DocHash: "c0ffee02",
	})
	require.NoError(t, err)
	require.NoError(t, ct.VerifyMedicalDoc(verifierAddress, other, ledger.DocRejected, "illegible"))
	assertCode(t, ct.VerifyMedicalDoc(verifierAddress, other, ledger.DocVerified, ""), ledger.ErrInvalidDocStatus)
	assert.Equal(t, uint64(20), mustTrust(t, ct, verifierAddress).Score)
}
