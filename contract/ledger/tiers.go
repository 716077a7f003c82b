package ledger

// tierSteps is ordered from the highest threshold down.
var tierSteps = []struct {
	min  uint64
	tier ReputationTier
}{
	{1000, TierLegend},
	{500, TierChampion},
	{200, TierVerified},
	{50, TierTrusted},
}

// TierForScore is the reputation step function.
func TierForScore(score uint64) ReputationTier {
	for _, s := range tierSteps {
		if score >= s.min {
			return s.tier
		}
	}
	return TierNewcomer
}

// BaselineScore is the starting trust score for a KYC level.
func BaselineScore(level KYCLevel) uint64 {
	switch level {
	case KYCBasic:
		return 100
	case KYCBank:
		return 200
	case KYCMedical:
		return 300
	case KYCFull:
		return 500
	default:
		return 0
	}
}

// Trust deltas applied by the score engine.
const (
	TrustCampaignCreated uint64 = 50
	TrustDocVerified     uint64 = 20
	TrustFraudPenalty    uint64 = 30
	TrustLateProof       uint64 = 20
	// TrustReporterMinimum is the score a reporter needs before fraud reports count.
	TrustReporterMinimum uint64 = 30
)

// ApplyPenalty subtracts delta from score and floors at zero.
func ApplyPenalty(score, delta uint64) uint64 {
	if delta >= score {
		return 0
	}
	return score - delta
}

// ApplyBonus adds delta to score, clamping at scoreCap when it is non-zero.
func ApplyBonus(score, delta, scoreCap uint64) uint64 {
	next := score + delta
	if next < score {
		next = ^uint64(0)
	}
	if scoreCap > 0 && next > scoreCap {
		return scoreCap
	}
	return next
}
