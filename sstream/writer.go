package sstream

import (
	"encoding/base64"
	"strconv"

	"github.com/fougue-go/gmio/numtext"
	gmiostream "github.com/fougue-go/gmio/stream"
)

// FloatFormat selects how Writer.WriteFloat32 renders a float32.
type FloatFormat int

const (
	// Decimal renders fixed-point notation, e.g. "3.141593".
	Decimal FloatFormat = iota
	// Scientific renders exponential notation, e.g. "3.141593e+00".
	Scientific
	// ShortestDecimal renders the shortest string that round-trips to
	// the same float32, ignoring Precision.
	ShortestDecimal
)

// Writer is a push-style formatter bound to a Stream and a write-through
// char buffer: every call appends to the buffer, flushing to the Stream
// transparently when the buffer would overflow, and explicitly on Flush.
type Writer struct {
	s   gmiostream.Stream
	buf []byte // scratch backing array, reused across Flush calls
	n   int    // bytes currently buffered
}

// NewWriter creates a Writer pushing to s, using buf as its write-through
// cache.
func NewWriter(s gmiostream.Stream, buf []byte) *Writer {
	return &Writer{s: s, buf: buf}
}

func (w *Writer) appendBytes(p []byte) error {
	for len(p) > 0 {
		if w.n == len(w.buf) {
			if err := w.Flush(); err != nil {
				return err
			}
		}

		if w.n == 0 && len(p) >= len(w.buf) {
			// Chunk fills or exceeds the whole buffer: write straight
			// through instead of copying through it piecemeal.
			if _, err := gmiostream.WriteFull(w.s, p); err != nil {
				return err
			}

			return nil
		}

		space := len(w.buf) - w.n
		k := len(p)
		if k > space {
			k = space
		}

		copy(w.buf[w.n:], p[:k])
		w.n += k
		p = p[k:]
	}

	return nil
}

// WriteChar appends a single byte.
func (w *Writer) WriteChar(c byte) error {
	return w.appendBytes([]byte{c})
}

// WriteStr appends s verbatim.
func (w *Writer) WriteStr(s string) error {
	return w.appendBytes([]byte(s))
}

// WriteU32 appends the minimal decimal representation of v.
func (w *Writer) WriteU32(v uint32) error {
	return w.appendBytes(numtext.AppendUint32(nil, v))
}

// WriteI32 appends the minimal decimal representation of v.
func (w *Writer) WriteI32(v int32) error {
	return w.appendBytes(numtext.AppendInt32(nil, v))
}

// WriteF32 appends v formatted per format and precision (ignored by
// ShortestDecimal). precision must be in [1,9]; callers validate via
// Options before reaching here.
func (w *Writer) WriteF32(v float32, format FloatFormat, precision int) error {
	var text string

	switch format {
	case Scientific:
		text = strconv.FormatFloat(float64(v), 'e', precision, 32)
	case ShortestDecimal:
		text = strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		text = strconv.FormatFloat(float64(v), 'f', precision, 32)
	}

	return w.appendBytes([]byte(text))
}

// WriteBase64 appends data standard-base64 encoded with '=' padding.
func (w *Writer) WriteBase64(data []byte) error {
	return w.appendBytes([]byte(base64.StdEncoding.EncodeToString(data)))
}

// WriteXMLAttrStr appends ` name="value"` with the &, <, > and " characters
// of value escaped as XML entities.
func (w *Writer) WriteXMLAttrStr(name, value string) error {
	if err := w.WriteStr(" " + name + `="`); err != nil {
		return err
	}
	if err := w.WriteStr(xmlEscapeAttr(value)); err != nil {
		return err
	}

	return w.WriteStr(`"`)
}

// WriteXMLAttrU32 appends ` name="123"`.
func (w *Writer) WriteXMLAttrU32(name string, v uint32) error {
	return w.WriteXMLAttrStr(name, numtext.Uint32(v))
}

// WriteXMLCDataOpen appends "<![CDATA[".
func (w *Writer) WriteXMLCDataOpen() error {
	return w.WriteStr("<![CDATA[")
}

// WriteXMLCDataClose appends "]]>".
func (w *Writer) WriteXMLCDataClose() error {
	return w.WriteStr("]]>")
}

// Flush commits all buffered bytes to the underlying Stream. After Flush,
// the buffer is logically empty.
func (w *Writer) Flush() error {
	if w.n == 0 {
		return nil
	}

	if _, err := gmiostream.WriteFull(w.s, w.buf[:w.n]); err != nil {
		return err
	}
	w.n = 0

	return nil
}

func xmlEscapeAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '"':
			out = append(out, "&quot;"...)
		default:
			out = append(out, s[i])
		}
	}

	return string(out)
}
