package sdk

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lukechampine.com/blake3"
)

// Clock hands out the current unix time in seconds. The engine reads it once per operation.
type Clock interface {
	Now() uint64
}

// Hasher derives 32-byte identifiers from a preimage.
type Hasher interface {
	Sum256(data []byte) [32]byte
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now as unix seconds.
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// SHA256Hasher is the default id hasher.
type SHA256Hasher struct{}

func (SHA256Hasher) Sum256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Blake3Hasher derives ids with blake3, faster on large preimages.
type Blake3Hasher struct{}

func (Blake3Hasher) Sum256(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// HasherByName maps a config value onto a Hasher.
// Example payload: sdk.HasherByName("blake3")
func HasherByName(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "blake3":
		return Blake3Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q", name)
	}
}

// ParseTimestamp accepts unix seconds or iso-ish strings since callers flip formats sometimes.
func ParseTimestamp(val string) (uint64, bool) {
	val = strings.TrimSpace(val)
	if v, err := strconv.ParseUint(val, 10, 64); err == nil {
		return v, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil && t.Unix() >= 0 {
		return uint64(t.Unix()), true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", val, time.UTC); err == nil && t.Unix() >= 0 {
		return uint64(t.Unix()), true
	}
	return 0, false
}
