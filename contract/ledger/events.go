package ledger

// Event is one committed state change. Line carries the compact pipe-delimited form
// watchers parse, the other fields are the same data pre-split for indexing.
type Event struct {
	Kind      string
	Subject   string
	Actor     string
	Amount    uint64
	Line      string
	Timestamp uint64
}
