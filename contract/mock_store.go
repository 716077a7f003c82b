package contract

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"
)

// MemoryStore is a map backed Store for tests and dry runs. When a filename is set
// every commit is mirrored to a JSON snapshot.
type MemoryStore struct {
	mu       sync.RWMutex
	db       map[string][]byte
	filename string
	commits  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{db: make(map[string][]byte)}
}

// NewFileMemoryStore loads filename if it exists and keeps it in sync afterwards.
func NewFileMemoryStore(filename string) (*MemoryStore, error) {
	m := NewMemoryStore()
	m.filename = filename
	if err := m.loadFromFile(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MemoryStore) Get(key []byte) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.db[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

// Commit applies the batch under one lock so readers never see half of it.
func (m *MemoryStore) Commit(muts []Mutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mu := range muts {
		if mu.Delete {
			delete(m.db, string(mu.Key))
			continue
		}
		m.db[string(mu.Key)] = append([]byte(nil), mu.Value...)
	}
	m.commits++
	if m.filename == "" {
		return nil
	}
	return m.saveToFile()
}

// Len is the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}

// Commits counts successful Commit calls.
func (m *MemoryStore) Commits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commits
}

// Snapshot copies the whole key space, keys hex encoded.
func (m *MemoryStore) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.encoded()
}

func (m *MemoryStore) encoded() map[string]string {
	out := make(map[string]string, len(m.db))
	for k, v := range m.db {
		out[hex.EncodeToString([]byte(k))] = hex.EncodeToString(v)
	}
	return out
}

// saveToFile writes the full map to a JSON file
func (m *MemoryStore) saveToFile() error {
	data, err := json.MarshalIndent(m.encoded(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filename, data, 0o644)
}

func (m *MemoryStore) loadFromFile() error {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // file doesn't exist yet
		}
		return err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		key, err := hex.DecodeString(k)
		if err != nil {
			return err
		}
		val, err := hex.DecodeString(v)
		if err != nil {
			return err
		}
		m.db[string(key)] = val
	}
	return nil
}
