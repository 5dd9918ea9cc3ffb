package membuf

import "github.com/fougue-go/gmio/errs"

// View is a bounds-checked window into a Memblock's buffer, the Go analog
// of the original gmio_support's gsl_span.h: a pointer+length accessor
// that never lets a caller compute an out-of-range slice by hand. sstream
// and the STL codecs do not use View; they slice Memblock.Buf directly.
type View struct {
	buf []byte
}

// NewView wraps buf in a View.
func NewView(buf []byte) View {
	return View{buf: buf}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.buf)
}

// Slice returns buf[start:end], returning an error instead of panicking
// when the range is out of bounds.
func (v View) Slice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(v.buf) {
		return nil, errs.New(errs.Unknown, "membuf: view slice out of bounds")
	}

	return v.buf[start:end], nil
}

// At returns the byte at i, returning an error instead of panicking when i
// is out of bounds.
func (v View) At(i int) (byte, error) {
	if i < 0 || i >= len(v.buf) {
		return 0, errs.New(errs.Unknown, "membuf: view index out of bounds")
	}

	return v.buf[i], nil
}

// Bytes returns the full underlying slice.
func (v View) Bytes() []byte {
	return v.buf
}
