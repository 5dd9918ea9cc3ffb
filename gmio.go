// Package gmio is the root facade described in spec.md §4.10/§6 (C14): it
// auto-detects and probes STL streams, and dispatches Read/Write to the
// stlascii/stlbinary codecs with spec.md's documented option defaults
// applied. ReadFile/WriteFile are thin path-based convenience wrappers.
package gmio

import (
	"github.com/fougue-go/gmio/endian"
	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/stlascii"
	"github.com/fougue-go/gmio/stlbinary"
	"github.com/fougue-go/gmio/stlio"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
	"github.com/fougue-go/gmio/strutil"
)

func leEngine() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}

// detectPeekSize is the number of leading bytes DetectFormat inspects,
// per spec.md §4.10.
const detectPeekSize = 256

// DetectFormat peeks at s without disturbing its position and classifies
// it as Ascii or Binary. Returns Unknown if the stream cannot be sized
// and the peek is inconclusive, per spec.md §4.10.
func DetectFormat(s gmiostream.Stream) (stlmodel.Format, error) {
	pos, err := gmiostream.SavePos(s)
	if err != nil {
		return stlmodel.Unknown, errs.Wrap(errs.StreamError, err, "gmio: failed to read stream position")
	}
	defer gmiostream.RestorePos(s, pos)

	buf := make([]byte, detectPeekSize)
	n, _ := s.Read(buf)
	buf = buf[:n]

	size, sizeKnown := s.Size()

	trimmed := strutil.TrimSpaceASCII(string(buf))
	looksAscii := len(trimmed) >= 5 && strutil.EqualFoldASCII(trimmed[:5], "solid")

	if !looksAscii {
		if n == 0 && !sizeKnown {
			return stlmodel.Unknown, nil
		}

		return stlmodel.Binary, nil
	}

	if !sizeKnown {
		return stlmodel.Ascii, nil
	}

	if size < stlmodel.HeaderSize+4 {
		return stlmodel.Ascii, nil
	}

	// "solid"-prefixed but long enough to be binary: only binary if the
	// payload exactly matches header + count*50 + 4.
	if len(buf) >= stlmodel.HeaderSize+4 {
		engine := leEngine()
		triCount := int64(engine.Uint32(buf[stlmodel.HeaderSize : stlmodel.HeaderSize+4]))
		if triCount*50+stlmodel.HeaderSize+4 == size {
			return stlmodel.Binary, nil
		}
	}

	return stlmodel.Ascii, nil
}

// Probe returns a stream's format, triangle count, and (format-dependent)
// header or solid name, without requiring the caller to supply a
// MeshCreator. Internally it drives a throwaway counting creator so no
// triangle data is retained.
func Probe(s gmiostream.Stream) (stlmodel.ProbeResult, error) {
	pos, err := gmiostream.SavePos(s)
	if err != nil {
		return stlmodel.ProbeResult{}, errs.Wrap(errs.StreamError, err, "gmio: failed to read stream position")
	}
	defer gmiostream.RestorePos(s, pos)

	format, err := DetectFormat(s)
	if err != nil {
		return stlmodel.ProbeResult{}, err
	}

	switch format {
	case stlmodel.Binary:
		return probeBinary(s)
	case stlmodel.Ascii:
		return probeAscii(s)
	default:
		return stlmodel.ProbeResult{Format: stlmodel.Unknown}, nil
	}
}

func probeBinary(s gmiostream.Stream) (stlmodel.ProbeResult, error) {
	var header stlmodel.Header
	if _, err := gmiostream.ReadFull(s, header[:]); err != nil {
		return stlmodel.ProbeResult{}, errs.Wrap(errs.StlBinaryBadHeader, err, "gmio: probe failed to read header")
	}

	countBuf := make([]byte, 4)
	if _, err := gmiostream.ReadFull(s, countBuf); err != nil {
		return stlmodel.ProbeResult{}, errs.Wrap(errs.StlBinaryBadHeader, err, "gmio: probe failed to read triangle count")
	}
	count := leEngine().Uint32(countBuf)

	return stlmodel.ProbeResult{Format: stlmodel.Binary, TriangleCount: count, Header: header}, nil
}

type probeCreator struct {
	stlmodel.NopMeshCreator
	name  string
	named bool
	count uint32
}

func (p *probeCreator) BeginSolidAscii(_ int64, name string) error {
	if !p.named {
		p.name = name
		p.named = true
	}

	return nil
}

func (p *probeCreator) AddTriangle(_ uint32, _ stlmodel.Triangle) error {
	p.count++

	return nil
}

// probeAscii counts every triangle across every "solid" stanza in the
// stream (stlascii.Read already loops internally until EOF) and records
// the first stanza's name, matching ProbeResult's singular SolidName
// field.
func probeAscii(s gmiostream.Stream) (stlmodel.ProbeResult, error) {
	pc := &probeCreator{}
	if err := stlascii.Read(s, pc, stlascii.ReadOptions{}); err != nil {
		return stlmodel.ProbeResult{}, err
	}

	return stlmodel.ProbeResult{Format: stlmodel.Ascii, TriangleCount: pc.count, SolidName: pc.name}, nil
}

// Read parses an STL stream, auto-detecting its format unless
// WithFormat overrides it, and drives creator the same way the
// underlying stlascii/stlbinary codec would.
func Read(s gmiostream.Stream, creator stlmodel.MeshCreator, opts ...Option) error {
	o, err := NewOptions(opts...)
	if err != nil {
		return err
	}

	format := o.format
	if format == stlmodel.Unknown {
		format, err = DetectFormat(s)
		if err != nil {
			return err
		}
		if format == stlmodel.Unknown {
			return errs.New(errs.StlUnknownFormat, "gmio: could not auto-detect STL format")
		}
	}

	wrapped := creator
	if o.taskProgress != nil {
		total := uint32(0)
		if format == stlmodel.Binary {
			total, _ = peekBinaryTriangleCount(s)
		}
		wrapped = newProgressReadCreator(creator, stlio.NewProgressReporter(o.taskProgress, total))
	}

	switch format {
	case stlmodel.Ascii:
		return stlascii.Read(s, wrapped, stlascii.ReadOptions{Memblock: o.memblock})
	case stlmodel.Binary:
		return stlbinary.Read(s, wrapped, stlbinary.ReadOptions{ByteOrder: o.byteOrder, Memblock: o.memblock})
	default:
		return errs.New(errs.StlUnknownFormat, "gmio: unsupported format")
	}
}

// Write emits mesh as STL in opts.format (Binary by default), applying
// spec.md's documented ASCII float-format/precision defaults.
func Write(s gmiostream.Stream, mesh stlmodel.Mesh, opts ...Option) error {
	var o *Options

	// Argument validation runs to completion, in order, before any format
	// dispatch or stream write — spec.md §7's precedence rule.
	err := errs.FirstOf(
		func() error {
			if mesh == nil {
				return errs.New(errs.Unknown, "gmio: mesh is nil")
			}

			return nil
		},
		func() error {
			opt, err := NewOptions(opts...)
			if err != nil {
				return err
			}
			o = opt

			return nil
		},
	)
	if err != nil {
		return err
	}

	format := o.format
	if format == stlmodel.Unknown {
		format = stlmodel.Binary
	}

	wrapped := mesh
	if o.taskProgress != nil {
		wrapped = newProgressWriteMesh(mesh, stlio.NewProgressReporter(o.taskProgress, mesh.TriangleCount()))
	}

	switch format {
	case stlmodel.Ascii:
		return stlascii.Write(s, wrapped, stlascii.WriteOptions{
			FloatFormat: o.floatFormat,
			Precision:   o.floatPrecision,
			SolidName:   o.solidName,
			Memblock:    o.memblock,
		})
	case stlmodel.Binary:
		return stlbinary.Write(s, wrapped, stlbinary.WriteOptions{ByteOrder: o.byteOrder, Memblock: o.memblock})
	default:
		return errs.New(errs.Unknown, "gmio: unsupported format for write")
	}
}

// ReadFile opens path and calls Read against it, closing the file on
// return.
func ReadFile(path string, creator stlmodel.MeshCreator, opts ...Option) error {
	s, err := gmiostream.OpenFileStream(path)
	if err != nil {
		return errs.Wrap(errs.StreamError, err, "gmio: failed to open file")
	}
	defer s.Close()

	return Read(s, creator, opts...)
}

// WriteFile creates (or truncates) path and calls Write against it,
// closing the file on return.
func WriteFile(path string, mesh stlmodel.Mesh, opts ...Option) error {
	s, err := gmiostream.CreateFileStream(path)
	if err != nil {
		return errs.Wrap(errs.StreamError, err, "gmio: failed to create file")
	}
	defer s.Close()

	return Write(s, mesh, opts...)
}

func peekBinaryTriangleCount(s gmiostream.Stream) (uint32, error) {
	pos, err := gmiostream.SavePos(s)
	if err != nil {
		return 0, err
	}
	defer gmiostream.RestorePos(s, pos)

	if err := s.Seek(pos + stlmodel.HeaderSize); err != nil {
		return 0, err
	}
	buf := make([]byte, 4)
	if _, err := gmiostream.ReadFull(s, buf); err != nil {
		return 0, err
	}

	return leEngine().Uint32(buf), nil
}
