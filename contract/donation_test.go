package contract_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfund_ledger/contract"
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// =============================================================================
// Donation Tests
// =============================================================================

// TestDonateSplit checks the fee, net and peso amounts of a 10 unit donation at 1% and 18.0.
func TestDonateSplit(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	id := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})

	d, ok, err := ct.GetDonation(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(100_000), d.PlatformFee)
	assert.Equal(t, uint64(9_900_000), d.Amount)
	assert.Equal(t, uint64(178_200_000), d.PesoAmount)
	assert.Equal(t, uint64(10_000), d.StakingReward)
	assert.Equal(t, uint64(10_000_000), d.GrossAmount)
	assert.Equal(t, contract.NoExternalRef, d.ExternalRef)
	assert.False(t, d.Refunded)
	assert.True(t, d.NFTID.IsZero())

	camp := mustCampaign(t, ct, campID)
	assert.Equal(t, uint64(9_900_000), camp.CurrentAmount)
	assert.Equal(t, uint64(1), camp.TotalDonations)
	assert.Equal(t, uint64(100_000), camp.PlatformFees)
	assert.True(t, camp.GoalReached)

	stats := mustStats(t, ct)
	assert.Equal(t, uint64(1), stats.TotalDonations)
	assert.Equal(t, uint64(9_900_000), stats.TotalRaisedBase)
	assert.Equal(t, uint64(178_200_000), stats.TotalRaisedSecondary)
	assert.Equal(t, uint64(100_000), stats.TotalFeesCollected)
	assert.Equal(t, uint64(10_000), stats.StakingRewardsDistributed)
	assert.Equal(t, uint64(1), stats.SuccessfulCampaigns)

	rewards, err := ct.GetTotalStakingRewards()
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), rewards)

	ts := mustTrust(t, ct, donorAddress)
	assert.Equal(t, uint64(9), ts.Score)
	assert.Equal(t, uint64(1), ts.DonationsMade)

	assert.Contains(t, ct.Sink.kinds(), "dn")
}

// TestDonateUsesSnapshotRate checks a later rate change does not touch an open campaign.
func TestDonateUsesSnapshotRate(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	require.NoError(t, ct.SetExchangeRate(ownerAddress, 200_000))

	id := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	d, _, err := ct.GetDonation(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(178_200_000), d.PesoAmount)
}

// TestSuccessfulCampaignCountedOnce checks goal crossing only bumps the stat the first time.
func TestSuccessfulCampaignCountedOnce(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 15_000_000)
	donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	assert.Equal(t, uint64(0), mustStats(t, ct).SuccessfulCampaigns)
	donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	assert.Equal(t, uint64(1), mustStats(t, ct).SuccessfulCampaigns)
}

// TestDonateRejections walks the donation guards.
func TestDonateRejections(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)

	_, err := ct.Donate(ledger.ID{7}, donorAddress, 10_000_000, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrCampaignNotFound)

	_, err = ct.Donate(campID, donorAddress, oneUnit-1, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrInvalidAmount)

	_, err = ct.Donate(campID, sdk.Address("bad|addr"), oneUnit, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrInvalidAddress)

	require.NoError(t, ct.SetKYCRequired(ownerAddress, true))
	_, err = ct.Donate(campID, donorAddress, oneUnit, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrKYCNotVerified)
	registerKYC(t, ct, donorAddress)
	donate(t, ct, campID, donorAddress, oneUnit, contract.DonateOptions{})

	yes := true
	require.NoError(t, ct.UpdateCampaignStatus(ownerAddress, campID, contract.CampaignStatusUpdate{EmergencyPaused: &yes}))
	_, err = ct.Donate(campID, donorAddress, oneUnit, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrFundsLocked)

	ct.Clock.Advance(61 * 86_400)
	_, err = ct.Donate(campID, donorAddress, oneUnit, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrCampaignEnded)

	_, err = ct.ToggleEmergencyPause(ownerAddress)
	require.NoError(t, err)
	_, err = ct.Donate(campID, donorAddress, oneUnit, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrEmergencyPauseActive)
}

// TestDonateRejectsTotalOverflow checks a donation that would wrap a running total is
// rejected without writes and earlier donations stay refundable.
func TestDonateRejectsTotalOverflow(t *testing.T) {
	ct := SetupContractTest(t)
	require.NoError(t, ct.SetExchangeRate(ownerAddress, 10_000))
	campID := createDefaultCampaign(t, ct, 500_000)
	first := donate(t, ct, campID, donorAddress, math.MaxUint64, contract.DonateOptions{MintNFT: true})

	held := mustCampaign(t, ct, campID).CurrentAmount
	assert.Equal(t, uint64(18_262_276_632_972_456_099), held)
	before := ct.Store.Snapshot()
	events := len(ct.Sink.kinds())

	_, err := ct.Donate(campID, donorAddress, math.MaxUint64, contract.DonateOptions{MintNFT: true})
	assertCode(t, err, ledger.ErrInvalidAmount)
	_, err = ct.Donate(campID, outsiderAddress, math.MaxUint64/2, contract.DonateOptions{})
	assertCode(t, err, ledger.ErrInvalidAmount)

	assert.Equal(t, before, ct.Store.Snapshot())
	assert.Len(t, ct.Sink.kinds(), events)
	camp := mustCampaign(t, ct, campID)
	assert.Equal(t, held, camp.CurrentAmount)
	assert.Equal(t, uint64(1), camp.TotalDonations)
	assert.Equal(t, held, mustStats(t, ct).TotalRaisedBase)

	require.NoError(t, ct.RefundDonation(donorAddress, first))
	assert.Zero(t, mustCampaign(t, ct, campID).CurrentAmount)
	assert.Zero(t, mustStats(t, ct).TotalRaisedBase)
	audit, ok, err := ct.AuditCampaign(campID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, audit.Balanced)
}

// TestDonateFailureLeavesNoTrace checks a rejected donation writes nothing and publishes nothing.
func TestDonateFailureLeavesNoTrace(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	before := ct.Store.Snapshot()
	commits := ct.Store.Commits()
	events := len(ct.Sink.kinds())

	_, err := ct.Donate(campID, donorAddress, 1, contract.DonateOptions{MintNFT: true})
	assertCode(t, err, ledger.ErrInvalidAmount)

	assert.Equal(t, before, ct.Store.Snapshot())
	assert.Equal(t, commits, ct.Store.Commits())
	assert.Len(t, ct.Sink.kinds(), events)
}

// flakyStore fails every commit once armed.
type flakyStore struct {
	*contract.MemoryStore
	fail bool
}

var errDiskFull = errors.New("disk full")

func (s *flakyStore) Commit(muts []contract.Mutation) error {
	if s.fail {
		return errDiskFull
	}
	return s.MemoryStore.Commit(muts)
}

// TestCommitFailureIsAtomic checks a store failure surfaces wrapped and leaves state untouched.
func TestCommitFailureIsAtomic(t *testing.T) {
	store := &flakyStore{MemoryStore: contract.NewMemoryStore()}
	sink := &recordingSink{}
	e, err := contract.New(store,
		contract.WithClock(sdk.NewFixedClock(defaultTimestamp)),
		contract.WithEventSink(sink),
	)
	require.NoError(t, err)
	require.NoError(t, e.Initialize(ownerAddress, contract.InitParams{FeeBp: 100}))
	_, err = e.RegisterKYC(beneficiaryAddress, contract.KYCParams{CURP: validCURP, Phone: validPhone})
	require.NoError(t, err)
	campID, err := e.CreateCampaign(beneficiaryAddress, contract.CampaignParams{Goal: 1, DurationDays: 1})
	require.NoError(t, err)

	before := store.Snapshot()
	published := len(sink.kinds())
	store.fail = true
	_, err = e.Donate(campID, donorAddress, 10_000_000, contract.DonateOptions{MintNFT: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
	_, isLedger := ledger.CodeOf(err)
	assert.False(t, isLedger)

	assert.Equal(t, before, store.Snapshot())
	assert.Len(t, sink.kinds(), published)
}

// =============================================================================
// Refund Tests
// =============================================================================

// TestRefundDonation checks the donor gets the net back out of the campaign and stats.
func TestRefundDonation(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	id := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})

	require.NoError(t, ct.RefundDonation(donorAddress, id))

	d, _, err := ct.GetDonation(id)
	require.NoError(t, err)
	assert.True(t, d.Refunded)
	assert.Equal(t, defaultTimestamp, d.RefundedAt)

	camp := mustCampaign(t, ct, campID)
	assert.Equal(t, uint64(0), camp.CurrentAmount)
	assert.True(t, camp.GoalReached)

	stats := mustStats(t, ct)
	assert.Equal(t, uint64(0), stats.TotalRaisedBase)
	assert.Equal(t, uint64(0), stats.TotalRaisedSecondary)
	assert.Equal(t, uint64(1), stats.TotalRefunds)
	assert.Equal(t, uint64(100_000), stats.TotalFeesCollected)
}

// TestRefundTwice checks the second refund fails and changes nothing.
func TestRefundTwice(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	id := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	require.NoError(t, ct.RefundDonation(donorAddress, id))

	before := ct.Store.Snapshot()
	assertCode(t, ct.RefundDonation(donorAddress, id), ledger.ErrAlreadyRefunded)
	assertCode(t, ct.RefundDonation(ownerAddress, id), ledger.ErrAlreadyRefunded)
	assert.Equal(t, before, ct.Store.Snapshot())
}

// TestRefundPermissions checks the refund window and who may ask for it.
func TestRefundPermissions(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	first := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	second := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})

	assertCode(t, ct.RefundDonation(outsiderAddress, first), ledger.ErrNotAuthorized)
	assertCode(t, ct.RefundDonation(donorAddress, ledger.ID{9}), ledger.ErrDonationNotFound)

	ct.Clock.Advance(contract.RefundWindow + 1)
	assertCode(t, ct.RefundDonation(donorAddress, first), ledger.ErrRefundPeriodExpired)
	require.NoError(t, ct.RefundDonation(ownerAddress, first))

	_, err := ct.ToggleEmergencyPause(ownerAddress)
	require.NoError(t, err)
	assertCode(t, ct.RefundDonation(ownerAddress, second), ledger.ErrEmergencyPauseActive)
}

// TestRefundAfterWithdraw checks withdrawn money can no longer be refunded.
func TestRefundAfterWithdraw(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	id := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	verifyCampaign(t, ct, campID)
	require.NoError(t, ct.WithdrawFunds(beneficiaryAddress, campID, 9_000_000))

	assertCode(t, ct.RefundDonation(donorAddress, id), ledger.ErrInsufficientFunds)
	d, _, err := ct.GetDonation(id)
	require.NoError(t, err)
	assert.False(t, d.Refunded)
}

// TestAuditCampaign checks held plus withdrawn always equals the unrefunded donations.
func TestAuditCampaign(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	verifyCampaign(t, ct, campID)

	a := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	donate(t, ct, campID, outsiderAddress, 3_000_000, contract.DonateOptions{})
	donate(t, ct, campID, donorAddress, 5_000_000, contract.DonateOptions{MintNFT: true})
	require.NoError(t, ct.WithdrawFunds(beneficiaryAddress, campID, 2_000_000))
	require.NoError(t, ct.RefundDonation(donorAddress, a))

	audit, ok, err := ct.AuditCampaign(campID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, audit.Balanced)
	assert.Equal(t, uint64(3), audit.Donations)
	assert.Equal(t, uint64(1), audit.Refunded)
	assert.Equal(t, uint64(2_970_000+4_950_000), audit.Unrefunded)
	assert.Equal(t, uint64(2_000_000), audit.WithdrawnAmount)

	ids, err := ct.ListCampaignDonations(campID)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.Equal(t, a, ids[0])

	_, ok, err = ct.AuditCampaign(ledger.ID{3})
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestConcurrentDonations checks parallel callers are serialised without losing updates.
func TestConcurrentDonations(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ct.Donate(campID, donorAddress, 2_000_000, contract.DonateOptions{MintNFT: true})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	camp := mustCampaign(t, ct, campID)
	assert.Equal(t, uint64(n*1_980_000), camp.CurrentAmount)
	assert.Equal(t, uint64(n), camp.TotalDonations)

	nft, ok, err := ct.GetDonorNFT(donorAddress, campID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(n), nft.DonationCount)

	audit, _, err := ct.AuditCampaign(campID)
	require.NoError(t, err)
	assert.True(t, audit.Balanced)
}

// =============================================================================
// Remittance Tests
// =============================================================================

// TestDonationRemittance checks a bank reference creates a pending transfer others can move along.
func TestDonationRemittance(t *testing.T) {
	ct := SetupContractTest(t)
	campID := createDefaultCampaign(t, ct, 500_000)
	ref := "SPEI-2025-0001"
	id := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{ExternalRef: &ref})

	d, _, err := ct.GetDonation(id)
	require.NoError(t, err)
	assert.Equal(t, ref, d.ExternalRef)

	r, ok, err := ct.GetDonationRemittance(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ledger.TransferPending, r.Status)
	assert.Equal(t, uint64(178_200_000), r.PesoAmount)
	assert.Equal(t, ref, r.Reference)

	assertCode(t, ct.UpdateRemittanceStatus(outsiderAddress, r.ID, ledger.TransferCompleted, ""), ledger.ErrNotAuthorized)

	require.NoError(t, ct.AddRole(ownerAddress, ledger.RoleKYCVerifier, verifierAddress))
	require.NoError(t, ct.UpdateRemittanceStatus(verifierAddress, r.ID, ledger.TransferProcessing, ""))
	require.NoError(t, ct.UpdateRemittanceStatus(ownerAddress, r.ID, ledger.TransferCompleted, "CONF-77"))

	r, _, err = ct.GetRemittance(r.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.TransferCompleted, r.Status)
	assert.Equal(t, "CONF-77", r.Confirmation)

	assertCode(t, ct.UpdateRemittanceStatus(ownerAddress, r.ID, ledger.TransferFailed, ""), ledger.ErrSPEIError)
	assertCode(t, ct.UpdateRemittanceStatus(ownerAddress, ledger.ID{4}, ledger.TransferFailed, ""), ledger.ErrRemittanceNotFound)

	plain := donate(t, ct, campID, donorAddress, 10_000_000, contract.DonateOptions{})
	_, ok, err = ct.GetDonationRemittance(plain)
	require.NoError(t, err)
	assert.False(t, ok)

	counters, err := ct.GetCounters()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), counters.Remittances)
	assert.Equal(t, uint64(2), counters.Donations)
}
