package stlbinary

import (
	"github.com/fougue-go/gmio/endian"
	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/membuf"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
)

// WriteOptions configures Write.
type WriteOptions struct {
	// ByteOrder selects little- or big-endian triangle encoding.
	ByteOrder stlmodel.ByteOrder
	// Header is copied into the 80-byte header verbatim. Zero value
	// writes 80 zero bytes.
	Header stlmodel.Header
	// Memblock is the scratch buffer batches are assembled in. If nil,
	// one is acquired from membuf.DefaultFactory and released on return.
	Memblock *membuf.Memblock
}

// Write emits mesh as an STL binary stream: header, triangle count, then
// triangles pulled from mesh in batches of floor(memblock/50). Dual of
// Read; see spec.md §4.7.
func Write(s gmiostream.Stream, mesh stlmodel.Mesh, opts WriteOptions) error {
	var engine endian.EndianEngine
	var mb *membuf.Memblock

	// Argument validation runs to completion, in order, before any stream
	// write — spec.md §7's precedence rule.
	err := errs.FirstOf(
		func() error {
			if mesh == nil {
				return errs.New(errs.Unknown, "stlbinary: mesh is nil")
			}

			return nil
		},
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

	if _, err := gmiostream.WriteFull(s, opts.Header[:]); err != nil {
		return errs.Wrap(errs.StreamShortWrite, err, "stlbinary: failed to write header")
	}

	count := mesh.TriangleCount()

	var countBuf [4]byte
	engine.PutUint32(countBuf[:], count)
	if _, err := gmiostream.WriteFull(s, countBuf[:]); err != nil {
		return errs.Wrap(errs.StreamShortWrite, err, "stlbinary: failed to write triangle count")
	}

	var id uint32
	for id < count {
		batch := uint32(batchTriangles)
		if remaining := count - id; batch > remaining {
			batch = remaining
		}

		buf := mb.Buf[:int(batch)*endian.TriangleSize]
		for i := uint32(0); i < batch; i++ {
			t, err := mesh.GetTriangle(id + i)
			if err != nil {
				return err
			}

			off := int(i) * endian.TriangleSize
			stlmodel.EncodeTriangle(engine, buf[off:off+endian.TriangleSize], t)
		}

		if _, err := gmiostream.WriteFull(s, buf); err != nil {
			return errs.Wrap(errs.StreamShortWrite, err, "stlbinary: failed to write triangle batch")
		}

		id += batch
	}

	return nil
}
