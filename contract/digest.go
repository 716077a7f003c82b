package contract

import (
	"bytes"
	"encoding/binary"

	"medfund_ledger/contract/ledger"
	"medfund_ledger/sdk"
)

// preimage collects the bytes an id is hashed from.
type preimage struct {
	buf bytes.Buffer
}

// newPreimage spins up a fresh writer so we dont leak old bytes between ids.
func newPreimage() *preimage { return &preimage{} }

func (p *preimage) bytes() []byte { return p.buf.Bytes() }

// uint64 writes big endian numbers so tooling can rebuild ids without guessing.
func (p *preimage) uint64(v uint64) *preimage {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	p.buf.Write(b[:])
	return p
}

// str prefixes its length so adjacent strings cannot collide.
func (p *preimage) str(s string) *preimage {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(s)))
	p.buf.Write(tmp[:n])
	p.buf.WriteString(s)
	return p
}

func (p *preimage) addr(a sdk.Address) *preimage { return p.str(a.String()) }

func (p *preimage) id(id ledger.ID) *preimage {
	p.buf.Write(id[:])
	return p
}
