package ledger

import (
	"math"

	"github.com/holiman/uint256"
)

// BasisPoints is the denominator of every bp rate.
const BasisPoints uint64 = 10_000

// Split is the outcome of one donation's fee and conversion math.
type Split struct {
	Gross         uint64
	PlatformFee   uint64
	Net           uint64
	NetSecondary  uint64
	StakingReward uint64
}

// mulDiv computes floor(a*b/d) with a 256-bit intermediate.
// ok is false when d is zero or the result does not fit in 64 bits.
func mulDiv(a, b, d uint64) (uint64, bool) {
	if d == 0 {
		return 0, false
	}
	var x uint256.Int
	x.Mul(uint256.NewInt(a), uint256.NewInt(b))
	x.Div(&x, uint256.NewInt(d))
	if !x.IsUint64() {
		return 0, false
	}
	return x.Uint64(), true
}

// mulMulDiv computes floor(a*b*c/d) with a 256-bit intermediate.
func mulMulDiv(a, b, c, d uint64) (uint64, bool) {
	if d == 0 {
		return 0, false
	}
	var x uint256.Int
	x.Mul(uint256.NewInt(a), uint256.NewInt(b))
	x.Mul(&x, uint256.NewInt(c))
	x.Div(&x, uint256.NewInt(d))
	if !x.IsUint64() {
		return 0, false
	}
	return x.Uint64(), true
}

// ComputeSplit derives fee, net, converted net and staking reward from a gross amount.
// All divisions floor. rate is scaled by RateScale (10000 = 1.0).
// Example payload: ComputeSplit(10_000_000, 100, 10, 180_000)
func ComputeSplit(gross, feeBp, rewardBp, rate uint64) (Split, error) {
	fee, ok := mulDiv(gross, feeBp, BasisPoints)
	if !ok || fee > gross {
		return Split{}, ErrInvalidAmount
	}
	net := gross - fee
	netSecondary, ok := mulDiv(net, rate, BasisPoints)
	if !ok {
		return Split{}, ErrInvalidAmount
	}
	reward, ok := mulDiv(gross, rewardBp, BasisPoints)
	if !ok {
		return Split{}, ErrInvalidAmount
	}
	return Split{
		Gross:         gross,
		PlatformFee:   fee,
		Net:           net,
		NetSecondary:  netSecondary,
		StakingReward: reward,
	}, nil
}

// Convert turns a base amount into secondary units at the given scaled rate.
func Convert(amount, rate uint64) (uint64, error) {
	v, ok := mulDiv(amount, rate, BasisPoints)
	if !ok {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// AddAmounts adds increments to a running total. It fails with ErrInvalidAmount
// instead of wrapping when the sum leaves the uint64 range.
func AddAmounts(total uint64, more ...uint64) (uint64, error) {
	sum := uint256.NewInt(total)
	for _, v := range more {
		sum.Add(sum, uint256.NewInt(v))
	}
	if !sum.IsUint64() {
		return 0, ErrInvalidAmount
	}
	return sum.Uint64(), nil
}

// SaturatingAdd is a+b clamped at the largest uint64.
func SaturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
