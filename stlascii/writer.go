package stlascii

import (
	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/membuf"
	"github.com/fougue-go/gmio/sstream"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
)

// WriteOptions configures Write. Callers choosing policy defaults (scientific,
// precision 9, per spec.md §4.9) should apply them before calling down into
// this package — stlascii itself only validates, it doesn't default.
type WriteOptions struct {
	FloatFormat sstream.FloatFormat
	// Precision must be in [1,9].
	Precision int
	// SolidName is written verbatim on both the "solid" and "endsolid"
	// lines. Empty is valid (spec.md's "empty string" default).
	SolidName string
	// Memblock is the scratch buffer the formatter writes through. If
	// nil, one is acquired from membuf.DefaultFactory and released on
	// return.
	Memblock *membuf.Memblock
}

// Write emits mesh in canonical STL ASCII form: one facet per stanza,
// normal on the facet line, three vertex lines, lower-case keywords, a
// trailing newline after endsolid. See spec.md §4.9.
func Write(s gmiostream.Stream, mesh stlmodel.Mesh, opts WriteOptions) error {
	var mb *membuf.Memblock

	// Argument validation runs to completion, in order, before any stream
	// write — spec.md §7's precedence rule.
	err := errs.FirstOf(
		func() error {
			if mesh == nil {
				return errs.New(errs.Unknown, "stlascii: mesh is nil")
			}

			return nil
		},
		func() error {
			if opts.Precision < 1 || opts.Precision > 9 {
				return errs.New(errs.Unknown, "stlascii: float precision must be in [1,9]")
			}

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

	w := sstream.NewWriter(s, mb.Buf)

	if err := w.WriteStr("solid " + opts.SolidName + "\n"); err != nil {
		return err
	}

	count := mesh.TriangleCount()
	for id := uint32(0); id < count; id++ {
		t, err := mesh.GetTriangle(id)
		if err != nil {
			return err
		}

		if err := writeFacet(w, t, opts.FloatFormat, opts.Precision); err != nil {
			return err
		}
	}

	if err := w.WriteStr("endsolid " + opts.SolidName + "\n"); err != nil {
		return err
	}

	return w.Flush()
}

func writeFacet(w *sstream.Writer, t stlmodel.Triangle, format sstream.FloatFormat, precision int) error {
	if err := w.WriteStr("facet normal "); err != nil {
		return err
	}
	if err := writeCoord(w, t.Normal, format, precision); err != nil {
		return err
	}
	if err := w.WriteStr("\nouter loop\n"); err != nil {
		return err
	}

	for _, v := range [3]stlmodel.Coord{t.V1, t.V2, t.V3} {
		if err := w.WriteStr("vertex "); err != nil {
			return err
		}
		if err := writeCoord(w, v, format, precision); err != nil {
			return err
		}
		if err := w.WriteChar('\n'); err != nil {
			return err
		}
	}

	return w.WriteStr("endloop\nendfacet\n")
}

func writeCoord(w *sstream.Writer, c stlmodel.Coord, format sstream.FloatFormat, precision int) error {
	if err := w.WriteF32(c.X, format, precision); err != nil {
		return err
	}
	if err := w.WriteChar(' '); err != nil {
		return err
	}
	if err := w.WriteF32(c.Y, format, precision); err != nil {
		return err
	}
	if err := w.WriteChar(' '); err != nil {
		return err
	}

	return w.WriteF32(c.Z, format, precision)
}
