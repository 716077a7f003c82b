package contract

import (
	"fmt"
	"strconv"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// EventSink receives every event of an operation after it committed.
type EventSink interface {
	Publish(events []ledger.Event) error
}

func event(kind, subject string, actor sdk.Address, amount uint64, line string) ledger.Event {
	return ledger.Event{Kind: kind, Subject: subject, Actor: actor.String(), Amount: amount, Line: line}
}

// emitInitialized logs the genesis parameters once.
func emitInitialized(c *opContext, admin sdk.Address, cfg *ledger.PlatformConfig) {
	c.emit(event("in", "", admin, 0, fmt.Sprintf(
		"in|by:%s|fee:%d|rw:%d|rate:%d",
		admin, cfg.FeeBp, cfg.RewardBp, cfg.ExchangeRate,
	)))
}

// emitKYCRegistered carries the derived level so indexers need not recompute it.
func emitKYCRegistered(c *opContext, entity sdk.Address, level ledger.KYCLevel) {
	c.emit(event("kr", entity.String(), entity, 0, fmt.Sprintf(
		"kr|by:%s|lvl:%s",
		entity, level,
	)))
}

// emitWalletConnected is a short ping when a user links a wallet.
func emitWalletConnected(c *opContext, owner sdk.Address, wt ledger.WalletType) {
	c.emit(event("wc", owner.String(), owner, 0, fmt.Sprintf(
		"wc|by:%s|w:%s",
		owner, wt,
	)))
}

// emitCampaignCreated gives explorers a neat ping without scanning full storage diffs.
func emitCampaignCreated(c *opContext, camp *ledger.Campaign) {
	c.emit(event("cc", camp.ID.String(), camp.Beneficiary, camp.GoalAmount, fmt.Sprintf(
		"cc|id:%s|by:%s|goal:%d|end:%d",
		camp.ID, camp.Beneficiary, camp.GoalAmount, camp.EndTime,
	)))
}

// emitCampaignStatus spells out the flags after an admin flip.
func emitCampaignStatus(c *opContext, admin sdk.Address, camp *ledger.Campaign) {
	c.emit(event("cs", camp.ID.String(), admin, 0, fmt.Sprintf(
		"cs|id:%s|by:%s|v:%s|l:%s|p:%s",
		camp.ID, admin,
		strconv.FormatBool(camp.Verified),
		strconv.FormatBool(camp.FundsLocked),
		strconv.FormatBool(camp.EmergencyPaused),
	)))
}

// emitDonation includes the full split so fee math can be replayed from logs only.
func emitDonation(c *opContext, d *ledger.Donation) {
	c.emit(event("dn", d.ID.String(), d.Donor, d.GrossAmount, fmt.Sprintf(
		"dn|id:%s|c:%s|by:%s|am:%d|net:%d|fee:%d|rw:%d|px:%d",
		d.ID, d.CampaignID, d.Donor, d.GrossAmount, d.Amount, d.PlatformFee, d.StakingReward, d.PesoAmount,
	)))
}

// emitRefund mirrors the donation line for the reversed net amount.
func emitRefund(c *opContext, d *ledger.Donation, by sdk.Address) {
	c.emit(event("rd", d.ID.String(), by, d.Amount, fmt.Sprintf(
		"rd|id:%s|c:%s|to:%s|by:%s|am:%d",
		d.ID, d.CampaignID, d.Donor, by, d.Amount,
	)))
}

// emitWithdraw traces payouts to the beneficiary.
func emitWithdraw(c *opContext, camp *ledger.Campaign, amount uint64) {
	c.emit(event("wd", camp.ID.String(), camp.Beneficiary, amount, fmt.Sprintf(
		"wd|id:%s|to:%s|am:%d|left:%d",
		camp.ID, camp.Beneficiary, amount, camp.CurrentAmount,
	)))
}

// emitPoolCreated announces a new staking pool and its terms.
func emitPoolCreated(c *opContext, admin sdk.Address, p *ledger.StakingPool) {
	c.emit(event("pc", p.ID.String(), admin, 0, fmt.Sprintf(
		"pc|id:%s|by:%s|apy:%d|lock:%d|min:%d|max:%d",
		p.ID, admin, p.APY, p.LockPeriod, p.MinStake, p.MaxStake,
	)))
}

// emitPoolActive logs an admin toggling a pool.
func emitPoolActive(c *opContext, admin sdk.Address, p *ledger.StakingPool) {
	c.emit(event("pa", p.ID.String(), admin, 0, fmt.Sprintf(
		"pa|id:%s|by:%s|a:%s",
		p.ID, admin, strconv.FormatBool(p.Active),
	)))
}

// emitStaked tells indexers about a new or replaced position.
func emitStaked(c *opContext, pos *ledger.StakingPosition) {
	c.emit(event("sk", pos.PoolID.String(), pos.Staker, pos.StakedAmount, fmt.Sprintf(
		"sk|p:%s|by:%s|am:%d|unlock:%d",
		pos.PoolID, pos.Staker, pos.StakedAmount, pos.UnlockTime,
	)))
}

// emitUnstaked closes a position with the paid reward.
func emitUnstaked(c *opContext, pos *ledger.StakingPosition, reward uint64) {
	c.emit(event("us", pos.PoolID.String(), pos.Staker, pos.StakedAmount, fmt.Sprintf(
		"us|p:%s|by:%s|am:%d|rw:%d",
		pos.PoolID, pos.Staker, pos.StakedAmount, reward,
	)))
}

// emitTrustChanged is written after every score delta.
func emitTrustChanged(c *opContext, ts *ledger.TrustScore, reason string) {
	c.emit(event("ts", ts.Entity.String(), ts.Entity, ts.Score, fmt.Sprintf(
		"ts|by:%s|sc:%d|t:%s|r:%s",
		ts.Entity, ts.Score, ts.Tier(), reason,
	)))
}

// emitNFTGrown carries the stage so frontends can re-render the badge.
func emitNFTGrown(c *opContext, n *ledger.DynamicNFT) {
	c.emit(event("ng", n.ID.String(), n.Owner, n.TotalDonated, fmt.Sprintf(
		"ng|id:%s|by:%s|st:%s|n:%d",
		n.ID, n.Owner, n.Stage, n.DonationCount,
	)))
}

// emitDocSubmitted announces evidence waiting for review.
func emitDocSubmitted(c *opContext, d *ledger.MedicalDocument) {
	c.emit(event("md", d.ID.String(), d.Submitter, 0, fmt.Sprintf(
		"md|id:%s|c:%s|by:%s|t:%s",
		d.ID, d.CampaignID, d.Submitter, d.DocType,
	)))
}

// emitDocReviewed records the verifier decision.
func emitDocReviewed(c *opContext, d *ledger.MedicalDocument) {
	c.emit(event("mv", d.ID.String(), d.Reviewer, 0, fmt.Sprintf(
		"mv|id:%s|by:%s|s:%s",
		d.ID, d.Reviewer, d.Status,
	)))
}

// emitProofSubmitted flags late submissions.
func emitProofSubmitted(c *opContext, camp *ledger.Campaign, late bool) {
	c.emit(event("pp", camp.ID.String(), camp.Beneficiary, 0, fmt.Sprintf(
		"pp|id:%s|by:%s|late:%s",
		camp.ID, camp.Beneficiary, strconv.FormatBool(late),
	)))
}

// emitFraudReported keeps both parties on the line.
func emitFraudReported(c *opContext, reporter, target sdk.Address) {
	c.emit(event("fr", target.String(), reporter, 0, fmt.Sprintf(
		"fr|by:%s|on:%s",
		reporter, target,
	)))
}

// emitRemittanceStatus logs bank transfer progress.
func emitRemittanceStatus(c *opContext, by sdk.Address, r *ledger.RemittanceTransfer) {
	c.emit(event("tx", r.ID.String(), by, r.PesoAmount, fmt.Sprintf(
		"tx|id:%s|by:%s|s:%s",
		r.ID, by, r.Status,
	)))
}

// emitConfigUpdated spells out field diffs so auditors can track sensitive flips.
func emitConfigUpdated(c *opContext, admin sdk.Address, field, old, new string) {
	c.emit(event("cfg", field, admin, 0, fmt.Sprintf(
		"cfg|by:%s|f:%s|old:%s|new:%s",
		admin, field, old, new,
	)))
}

// emitRoleChanged logs allow-list edits.
func emitRoleChanged(c *opContext, admin sdk.Address, role ledger.Role, who sdk.Address, added bool) {
	c.emit(event("rl", who.String(), admin, 0, fmt.Sprintf(
		"rl|by:%s|r:%s|who:%s|add:%s",
		admin, role, who, strconv.FormatBool(added),
	)))
}
