package sdk

// Asset names the currency an amount is denominated in.
type Asset string

const (
	// AssetBase is the donation currency, counted in its smallest unit.
	AssetBase Asset = "xlm"
	// AssetPeso is the secondary currency donations are converted into.
	AssetPeso Asset = "mxn"
)

// BaseUnit is how many smallest units make one whole base currency unit.
const BaseUnit uint64 = 1_000_000

// RateScale is the fixed-point scale of exchange rates (10000 = 1.0).
const RateScale uint64 = 10_000

// String returns the raw ticker string for logging.
// Example payload: sdk.AssetPeso.String()
func (a Asset) String() string {
	return string(a)
}
