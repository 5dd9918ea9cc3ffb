// Package hash provides the xxHash64 fingerprint used to compute a mesh's
// ContentHash, letting callers detect duplicate or modified meshes without
// comparing every triangle.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// SumBytes computes the xxHash64 of data.
func SumBytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ID computes the xxHash64 of a string, e.g. a solid name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of everything read from r, streaming through a
// reusable Digest so callers hashing triangle-by-triangle don't need to
// buffer the whole mesh.
func Sum(r io.Reader) (uint64, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, err
	}

	return d.Sum64(), nil
}

// Digest is an incremental xxHash64 accumulator, used by stlmodel.ContentHash
// to fold in one triangle at a time as a mesh streams past.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates a new incremental hash accumulator.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write feeds more bytes into the running hash. Implements io.Writer.
func (h *Digest) Write(p []byte) (int, error) {
	return h.d.Write(p)
}

// Sum64 returns the hash of all bytes written so far.
func (h *Digest) Sum64() uint64 {
	return h.d.Sum64()
}

// Reset clears the accumulator back to its initial state for reuse.
func (h *Digest) Reset() {
	h.d.Reset()
}
