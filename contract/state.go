package contract

// Mutation is one staged write. Delete drops the key instead of setting Value.
type Mutation struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// Store is the persistent key-value backend behind the engine.
// Commit must apply every mutation or none of them.
type Store interface {
	Get(key []byte) ([]byte, bool, error)
	Commit(muts []Mutation) error
}

// Reader is the read half of the per-operation context, handed to identity gates.
type Reader interface {
	Get(key string) ([]byte, bool, error)
}
