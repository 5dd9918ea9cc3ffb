// Package stlbinary implements spec.md's C10/C11: a batched reader and
// writer for the STL binary wire format — an 80-byte header, a
// little/big-endian 32-bit triangle count, then that many 50-byte packed
// triangle records.
package stlbinary

import (
	"github.com/fougue-go/gmio/endian"
	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/membuf"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
)

// defaultMemblockHint matches the teacher's ByteBuffer default growth
// size (64KiB, ~1310 triangles per batch) when the caller doesn't supply
// a Memblock of their own.
const defaultMemblockHint = 64 * 1024

// ReadOptions configures Read.
type ReadOptions struct {
	// ByteOrder selects little- or big-endian triangle decoding.
	// Zero value is LittleEndian, the native STL default.
	ByteOrder stlmodel.ByteOrder
	// Memblock is the scratch buffer batches are read into. If nil, one
	// is acquired from membuf.DefaultFactory and released on return.
	Memblock *membuf.Memblock
}

// Read parses an STL binary stream starting at its current position and
// drives creator with the header, then each triangle in increasing id
// order, then EndSolid. See spec.md §4.6 for the exact algorithm.
func Read(s gmiostream.Stream, creator stlmodel.MeshCreator, opts ReadOptions) error {
	var engine endian.EndianEngine
	var mb *membuf.Memblock

	// Argument validation runs to completion, in order, before any stream
	// read or mesh callback — spec.md §7's precedence rule.
	err := errs.FirstOf(
		func() error {
			e, err := engineFor(opts.ByteOrder)
			if err != nil {
				return err
			}
			engine = e

			return nil
		},
		func() error {
			m, err := membuf.Acquire(opts.Memblock, defaultMemblockHint)
			if err != nil {
				return err
			}
			mb = m

			return nil
		},
	)
	if err != nil {
		return err
	}
	defer mb.Free()

	batchTriangles := len(mb.Buf) / endian.TriangleSize
	if batchTriangles == 0 {
		return errs.New(errs.InvalidMemblockSize, "stlbinary: memblock too small to hold one triangle")
	}

	var header stlmodel.Header
	if _, err := gmiostream.ReadFull(s, header[:]); err != nil {
		return errs.Wrap(errs.StlBinaryBadHeader, err, "stlbinary: short read of 80-byte header")
	}

	var countBuf [4]byte
	if _, err := gmiostream.ReadFull(s, countBuf[:]); err != nil {
		return errs.Wrap(errs.StlBinaryBadHeader, err, "stlbinary: short read of triangle count")
	}
	count := engine.Uint32(countBuf[:])

	if size, known := s.Size(); known {
		want := int64(stlmodel.HeaderSize+4) + int64(count)*int64(endian.TriangleSize)
		if size != want {
			return errs.New(errs.StreamLengthMismatch,
				"stlbinary: triangle count disagrees with declared stream size")
		}
	}

	if err := creator.BeginSolidBinary(count, header); err != nil {
		return err
	}

	var id uint32
	for id < count {
		batch := uint32(batchTriangles)
		if remaining := count - id; batch > remaining {
			batch = remaining
		}

		buf := mb.Buf[:int(batch)*endian.TriangleSize]
		if _, err := gmiostream.ReadFull(s, buf); err != nil {
			return errs.Wrap(errs.StreamShortRead, err, "stlbinary: short read of triangle batch")
		}

		for i := uint32(0); i < batch; i++ {
			off := int(i) * endian.TriangleSize
			t := stlmodel.DecodeTriangle(engine, buf[off:off+endian.TriangleSize])
			if err := creator.AddTriangle(id, t); err != nil {
				return err
			}
			id++
		}
	}

	return creator.EndSolid()
}

func engineFor(bo stlmodel.ByteOrder) (endian.EndianEngine, error) {
	switch bo {
	case stlmodel.LittleEndian:
		return endian.GetLittleEndianEngine(), nil
	case stlmodel.BigEndian:
		return endian.GetBigEndianEngine(), nil
	default:
		return nil, errs.ErrStlBinaryUnsupportedByteOrder
	}
}
