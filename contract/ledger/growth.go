package ledger

import "medfund_ledger/sdk"

// stageThresholds are lower bounds in whole secondary units, indexed by GrowthStage.
var stageThresholds = []uint64{0, 500, 1_500, 5_000, 10_000, 25_000, 50_000}

// StageFor returns the ladder tier for a total held in secondary minor units.
func StageFor(totalDonated uint64) GrowthStage {
	units := totalDonated / sdk.BaseUnit
	stage := StageSeed
	for i, lo := range stageThresholds {
		if units >= lo {
			stage = GrowthStage(i)
		}
	}
	return stage
}

// Milestone awards an achievement once a counter reaches At.
type Milestone struct {
	At   uint64
	Name string
}

// AchievementRules is the deployment-specific milestone configuration.
// DonationCounts compares against donation_count, TotalUnits against whole secondary units.
type AchievementRules struct {
	DonationCounts []Milestone
	TotalUnits     []Milestone
}

// DefaultAchievements is used when no rules are configured.
func DefaultAchievements() AchievementRules {
	return AchievementRules{
		DonationCounts: []Milestone{
			{1, "first_donation"},
			{5, "regular_donor"},
			{10, "dedicated_donor"},
			{25, "guardian_donor"},
		},
		TotalUnits: []Milestone{
			{1_000, "supporter_1k"},
			{10_000, "patron_10k"},
			{50_000, "legend_50k"},
		},
	}
}

// Grow applies one donation to the nft and appends any newly earned achievements.
// Existing achievements are never removed and the stage never decreases.
func (r AchievementRules) Grow(nft *DynamicNFT, secondary uint64, now uint64) {
	nft.TotalDonated += secondary
	nft.DonationCount++
	if s := StageFor(nft.TotalDonated); s > nft.Stage {
		nft.Stage = s
	}
	units := nft.TotalDonated / sdk.BaseUnit
	for _, m := range r.DonationCounts {
		if nft.DonationCount >= m.At {
			nft.Achievements = appendOnce(nft.Achievements, m.Name)
		}
	}
	for _, m := range r.TotalUnits {
		if units >= m.At {
			nft.Achievements = appendOnce(nft.Achievements, m.Name)
		}
	}
	nft.UpdatedAt = now
}

func appendOnce(list []string, name string) []string {
	for _, v := range list {
		if v == name {
			return list
		}
	}
	return append(list, name)
}
