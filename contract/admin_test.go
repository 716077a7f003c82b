package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfund_ledger/contract"
	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// =============================================================================
// Initialization Tests
// =============================================================================

// TestInitialize checks the genesis config, the fallbacks and the seeded admin.
func TestInitialize(t *testing.T) {
	ct := SetupContractTest(t)

	cfg, ok, err := ct.GetConfig()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ownerAddress, cfg.Admin)
	assert.Equal(t, uint64(100), cfg.FeeBp)
	assert.Equal(t, uint64(10), cfg.RewardBp)
	assert.Equal(t, uint64(180_000), cfg.ExchangeRate)
	assert.Equal(t, uint64(contract.FallbackMinDonation), cfg.MinDonation)
	assert.Equal(t, uint64(contract.FallbackMaxCampaignDays), cfg.MaxCampaignDurationDays)
	assert.False(t, cfg.EmergencyPause)

	admins, ok, err := ct.GetRoleMembers(ledger.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []sdk.Address{ownerAddress}, admins)

	_, ok, err = ct.GetRoleMembers(ledger.RoleKYCVerifier)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, ledger.PlatformStats{}, mustStats(t, ct))

	err = ct.Initialize(outsiderAddress, contract.InitParams{})
	assertCode(t, err, ledger.ErrAlreadyInitialized)
}

// TestInitializeLimits checks fee and reward caps at genesis.
func TestInitializeLimits(t *testing.T) {
	ct := newContractTest(t)
	assertCode(t, ct.Initialize(ownerAddress, contract.InitParams{FeeBp: 301}), ledger.ErrInvalidFee)
	assertCode(t, ct.Initialize(ownerAddress, contract.InitParams{RewardBp: 101}), ledger.ErrInvalidRewardRate)

	_, ok, err := ct.GetConfig()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ct.Initialize(ownerAddress, contract.InitParams{FeeBp: 300, RewardBp: 100}))
}

// =============================================================================
// Config Setter Tests
// =============================================================================

// TestConfigSetters checks every admin setter, its bounds and the admin gate.
func TestConfigSetters(t *testing.T) {
	ct := SetupContractTest(t)

	assertCode(t, ct.SetPlatformFee(outsiderAddress, 50), ledger.ErrNotAuthorized)
	assertCode(t, ct.SetPlatformFee(ownerAddress, 301), ledger.ErrInvalidFee)
	assertCode(t, ct.SetStakingRewardRate(ownerAddress, 101), ledger.ErrInvalidRewardRate)
	assertCode(t, ct.SetExchangeRate(ownerAddress, 0), ledger.ErrInvalidAmount)
	assertCode(t, ct.SetMinDonation(ownerAddress, 0), ledger.ErrInvalidAmount)
	assertCode(t, ct.SetMaxCampaignDuration(ownerAddress, 0), ledger.ErrInvalidDuration)

	require.NoError(t, ct.SetPlatformFee(ownerAddress, 250))
	require.NoError(t, ct.SetStakingRewardRate(ownerAddress, 50))
	require.NoError(t, ct.SetExchangeRate(ownerAddress, 171_500))
	require.NoError(t, ct.SetMinDonation(ownerAddress, 5))
	require.NoError(t, ct.SetMaxCampaignDuration(ownerAddress, 90))
	require.NoError(t, ct.SetKYCRequired(ownerAddress, true))

	fee, _, err := ct.GetPlatformFee()
	require.NoError(t, err)
	assert.Equal(t, uint64(250), fee)
	rw, _, err := ct.GetStakingRewardRate()
	require.NoError(t, err)
	assert.Equal(t, uint64(50), rw)
	rate, _, err := ct.GetExchangeRate()
	require.NoError(t, err)
	assert.Equal(t, uint64(171_500), rate)
	minDonation, _, err := ct.GetMinDonation()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), minDonation)
	days, _, err := ct.GetMaxCampaignDuration()
	require.NoError(t, err)
	assert.Equal(t, uint64(90), days)
	required, _, err := ct.IsKYCRequired()
	require.NoError(t, err)
	assert.True(t, required)

	assert.Contains(t, ct.Sink.kinds(), "cfg")
}

// TestToggleEmergencyPause checks the pause flips back and forth.
func TestToggleEmergencyPause(t *testing.T) {
	ct := SetupContractTest(t)
	_, err := ct.ToggleEmergencyPause(outsiderAddress)
	assertCode(t, err, ledger.ErrNotAuthorized)

	paused, err := ct.ToggleEmergencyPause(ownerAddress)
	require.NoError(t, err)
	assert.True(t, paused)
	got, _, err := ct.IsEmergencyPaused()
	require.NoError(t, err)
	assert.True(t, got)

	paused, err = ct.ToggleEmergencyPause(ownerAddress)
	require.NoError(t, err)
	assert.False(t, paused)
}

// =============================================================================
// Role Tests
// =============================================================================

// TestRoles checks adding is idempotent, removing absent members fails and one admin always stays.
func TestRoles(t *testing.T) {
	ct := SetupContractTest(t)

	assertCode(t, ct.AddRole(outsiderAddress, ledger.RoleKYCVerifier, outsiderAddress), ledger.ErrNotAuthorized)
	assertCode(t, ct.AddRole(ownerAddress, ledger.Role(9), outsiderAddress), ledger.ErrInvalidRole)

	require.NoError(t, ct.AddRole(ownerAddress, ledger.RoleKYCVerifier, verifierAddress))
	require.NoError(t, ct.AddRole(ownerAddress, ledger.RoleKYCVerifier, verifierAddress))
	members, _, err := ct.GetRoleMembers(ledger.RoleKYCVerifier)
	require.NoError(t, err)
	assert.Equal(t, []sdk.Address{verifierAddress}, members)

	assertCode(t, ct.RemoveRole(ownerAddress, ledger.RoleMedicalVerifier, verifierAddress), ledger.ErrNotAuthorized)
	require.NoError(t, ct.RemoveRole(ownerAddress, ledger.RoleKYCVerifier, verifierAddress))

	assertCode(t, ct.RemoveRole(ownerAddress, ledger.RoleAdmin, ownerAddress), ledger.ErrNotAuthorized)

	require.NoError(t, ct.AddRole(ownerAddress, ledger.RoleAdmin, outsiderAddress))
	require.NoError(t, ct.RemoveRole(outsiderAddress, ledger.RoleAdmin, ownerAddress))
	assertCode(t, ct.SetPlatformFee(ownerAddress, 10), ledger.ErrNotAuthorized)
	require.NoError(t, ct.SetPlatformFee(outsiderAddress, 10))
}
