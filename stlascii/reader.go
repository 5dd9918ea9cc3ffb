// Package stlascii implements spec.md's C12/C13: a hand-written
// recursive-descent reader for the STL ASCII grammar and a canonical-form
// writer, both built on sstream's cursor/formatter and numtext's
// locale-independent float I/O.
package stlascii

import (
	"github.com/fougue-go/gmio/clocale"
	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/membuf"
	"github.com/fougue-go/gmio/sstream"
	"github.com/fougue-go/gmio/stlmodel"
	"github.com/fougue-go/gmio/strutil"
	gmiostream "github.com/fougue-go/gmio/stream"
)

// defaultMemblockHint is plenty for the cursor buffer: ASCII tokens are
// short and the reader never needs to hold more than one line at a time.
const defaultMemblockHint = 4096

// ReadOptions configures Read.
type ReadOptions struct {
	// Memblock is the scratch buffer the cursor refills from. If nil,
	// one is acquired from membuf.DefaultFactory and released on return.
	Memblock *membuf.Memblock
}

// Read parses an STL ASCII stream, driving creator through
// BeginSolidAscii, AddTriangle*, EndSolid once per "solid" stanza — the
// state machine from spec.md §4.8 (S0-S6), repeating for every solid in a
// multi-solid file. It fails fast on the first parse error, reporting the
// 1-based line number at which parsing stopped.
func Read(s gmiostream.Stream, creator stlmodel.MeshCreator, opts ReadOptions) error {
	var mb *membuf.Memblock

	// Argument validation (the Memblock) before locale, before any stream
	// read — spec.md §7's precedence rule.
	err := errs.FirstOf(
		func() error {
			m, err := membuf.Acquire(opts.Memblock, defaultMemblockHint)
			if err != nil {
				return err
			}
			mb = m

			return nil
		},
		clocale.CheckNumericLocale,
	)
	if err != nil {
		if mb != nil {
			mb.Free()
		}

		return err
	}
	defer mb.Free()

	r := sstream.NewReader(s, mb.Buf)
	sizeHint, _ := s.Size()

	first := true
	for {
		r.SkipASCIISpaces()
		if _, ok := r.CurrentChar(); !ok {
			if first {
				return lineErr(r, errs.StlAsciiInvalidKeyword, "expected 'solid', got end of stream")
			}

			return nil
		}
		first = false

		if err := expectKeyword(r, "solid"); err != nil {
			return err
		}

		name := readNameToEOL(r)

		if err := creator.BeginSolidAscii(sizeHint, name); err != nil {
			return err
		}

		if err := readFacets(r, creator); err != nil {
			return err
		}

		if err := creator.EndSolid(); err != nil {
			return err
		}
	}
}

// readFacets implements states S2-S6: a run of "facet ... endfacet"
// stanzas terminated by "endsolid".
func readFacets(r *sstream.Reader, creator stlmodel.MeshCreator) error {
	var id uint32

	for {
		r.SkipASCIISpaces()

		var tok []byte
		if err := r.EatWord(&tok); err != nil {
			return lineErr(r, errs.StlAsciiParseError, err.Error())
		}

		switch {
		case strutil.EqualFoldASCII(string(tok), "facet"):
			tri, err := parseFacet(r)
			if err != nil {
				return err
			}
			if err := creator.AddTriangle(id, tri); err != nil {
				return err
			}
			id++
		case strutil.EqualFoldASCII(string(tok), "endsolid"):
			readNameToEOL(r) // discard the optional trailing name

			return nil
		default:
			return lineErr(r, errs.StlAsciiInvalidKeyword,
				"expected 'facet' or 'endsolid', got '"+string(tok)+"'")
		}
	}
}

// parseFacet implements states S3-S6: normal, outer loop, three vertices,
// endloop, endfacet.
func parseFacet(r *sstream.Reader) (stlmodel.Triangle, error) {
	var t stlmodel.Triangle

	if err := expectKeyword(r, "normal"); err != nil {
		return t, err
	}
	x, y, z, err := parseCoord(r)
	if err != nil {
		return t, err
	}
	t.Normal = stlmodel.Coord{X: x, Y: y, Z: z}

	if err := expectKeyword(r, "outer"); err != nil {
		return t, err
	}
	if err := expectKeyword(r, "loop"); err != nil {
		return t, err
	}

	verts := [3]*stlmodel.Coord{&t.V1, &t.V2, &t.V3}
	for _, v := range verts {
		if err := expectKeyword(r, "vertex"); err != nil {
			return t, err
		}

		x, y, z, err := parseCoord(r)
		if err != nil {
			return t, err
		}
		*v = stlmodel.Coord{X: x, Y: y, Z: z}
	}

	if err := expectKeyword(r, "endloop"); err != nil {
		return t, err
	}
	if err := expectKeyword(r, "endfacet"); err != nil {
		return t, err
	}

	return t, nil
}

func parseCoord(r *sstream.Reader) (x, y, z float32, err error) {
	if x, err = atof(r); err != nil {
		return
	}
	if y, err = atof(r); err != nil {
		return
	}
	z, err = atof(r)

	return
}

func atof(r *sstream.Reader) (float32, error) {
	r.SkipASCIISpaces()

	v, err := r.FastAtof()
	if err != nil {
		return 0, errs.WithLine(err, r.Line())
	}

	return v, nil
}

func expectKeyword(r *sstream.Reader, kw string) error {
	r.SkipASCIISpaces()

	var tok []byte
	if err := r.EatWord(&tok); err != nil {
		return lineErr(r, errs.StlAsciiParseError, err.Error())
	}

	if !strutil.EqualFoldASCII(string(tok), kw) {
		return lineErr(r, errs.StlAsciiInvalidKeyword, "expected '"+kw+"', got '"+string(tok)+"'")
	}

	return nil
}

// readNameToEOL consumes bytes up to and including the next newline (or
// end of stream), returning the trimmed text before it — the "name
// extends to end of line" rule used for both the solid name and the
// (discarded) endsolid trailer.
func readNameToEOL(r *sstream.Reader) string {
	var raw []byte

	for {
		c, ok := r.CurrentChar()
		if !ok || c == '\n' {
			if ok {
				r.NextChar()
			}

			break
		}

		raw = append(raw, c)
		r.NextChar()
	}

	return strutil.TrimSpaceASCII(string(raw))
}

func lineErr(r *sstream.Reader, kind errs.Kind, msg string) error {
	return errs.WithLine(errs.New(kind, msg), r.Line())
}
