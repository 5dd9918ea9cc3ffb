// Package membuf implements spec.md's C6 Memblock: a caller-owned scratch
// buffer passed by reference into codec calls. The codecs call Free on
// every Memblock they use, on every exit path including errors, whether
// the caller supplied it or the default factory allocated it; a
// caller-supplied Memblock's Release is therefore invoked by the codec.
package membuf

import (
	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/internal/pool"
)

// Memblock is a caller-owned scratch buffer. Release, if non-nil, is
// invoked by the codec exactly once when it is done with the buffer —
// whether the call succeeded or failed. Callers who own Buf for its full
// lifetime (e.g. a stack-allocated slice) pass a nil Release.
type Memblock struct {
	Buf     []byte
	Release func()
}

// Validate checks the invariants spec.md requires before a codec may use a
// Memblock: a non-nil buffer with non-zero length.
func (m *Memblock) Validate() error {
	if m == nil || m.Buf == nil {
		return errs.ErrNullMemblock
	}
	if len(m.Buf) == 0 {
		return errs.ErrInvalidMemblockSize
	}

	return nil
}

// Free invokes m's Release callback, if any. Safe to call on a nil
// Memblock.
func (m *Memblock) Free() {
	if m != nil && m.Release != nil {
		m.Release()
	}
}

// Factory creates a new Memblock sized to at least hint bytes. Codec calls
// that need a buffer but weren't given one by the caller invoke the
// process-wide DefaultFactory lazily, exactly once.
type Factory func(hint int) *Memblock

// DefaultFactory is the process-wide fallback used when a caller doesn't
// supply a Memblock explicitly. Per spec.md §9, install it once at startup
// and treat it as read-only during concurrent codec use — it is a
// convenience for quick CLI/test use, not the primary injection mechanism
// (callers should prefer passing a Memblock through Options).
var DefaultFactory Factory = newPooledMemblock

// newPooledMemblock backs DefaultFactory with the internal byte-buffer
// pool so repeated codec calls in a process (tests, a CLI processing many
// files) amortize allocation.
func newPooledMemblock(hint int) *Memblock {
	bb := pool.Get()
	bb.ExtendOrGrow(hint)

	return &Memblock{
		Buf: bb.Bytes(),
		Release: func() {
			pool.Put(bb)
		},
	}
}

// Acquire returns a Memblock: mb if non-nil, otherwise one freshly created
// by DefaultFactory sized to hint bytes.
func Acquire(mb *Memblock, hint int) (*Memblock, error) {
	if mb != nil {
		if err := mb.Validate(); err != nil {
			return nil, err
		}

		return mb, nil
	}

	created := DefaultFactory(hint)
	if err := created.Validate(); err != nil {
		return nil, err
	}

	return created, nil
}
