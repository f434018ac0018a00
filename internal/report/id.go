package report

import (
	"encoding/hex"
	"hash"

	"github.com/minio/sha256-simd"
)

// idSize contains the size of an ID, in bytes.
const idSize = sha256.Size

// ID identifies the contents of a trace file.
type ID [idSize]byte

const shortStr = 4

// Str returns the shortened string version of id.
func (id *ID) Str() string {
	if id == nil {
		return "[nil]"
	}

	if id.IsNull() {
		return "[null]"
	}

	return hex.EncodeToString(id[:shortStr])
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsNull returns true iff id only consists of null bytes.
func (id ID) IsNull() bool {
	var nullID ID

	return id == nullID
}

// MarshalText encodes id as hex, so reports carry it as a string.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// Hash returns the ID for data.
func Hash(data []byte) ID {
	return sha256.Sum256(data)
}

// NewHasher returns the hash used for trace IDs. Feed it the raw trace bytes
// while they are being ingested and pass it to IDFromHash afterwards.
func NewHasher() hash.Hash {
	return sha256.New()
}

// IDFromHash returns the ID for the state of h.
func IDFromHash(h hash.Hash) (id ID) {
	sum := h.Sum(nil)
	if len(sum) != idSize {
		panic("invalid hash type, not enough/too many bytes")
	}

	copy(id[:], sum)
	return id
}
