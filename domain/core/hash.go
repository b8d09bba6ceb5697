package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// SampleHash fingerprints a sample by value and order
type SampleHash Hash

// NewSampleHash hashes the IEEE-754 bits of each value in order, so two
// samples share a hash only if every report derived from them is identical.
func NewSampleHash(values []float64) SampleHash {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return SampleHash(NewHash(buf))
}

func (h SampleHash) String() string { return Hash(h).String() }
