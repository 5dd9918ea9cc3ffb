// Package stream implements spec.md's C7 Stream abstraction: a virtual
// byte stream with read/write/seek/tell/at-end/error/close, plus two
// built-in in-memory implementations backed by a plain []byte.
package stream

import "io"

// Stream is the capability set every gmio codec reads/writes through.
// Partial reads and writes are normal; callers (including codecs
// themselves) must loop until satisfied or an error/EOF is reported.
// On error, GetError returns a non-nil error and subsequent Read/Write
// calls are undefined.
type Stream interface {
	// Read reads up to len(p) bytes into p, returning the number of
	// bytes read. Returns (0, io.EOF) at end of stream.
	Read(p []byte) (n int, err error)

	// Write writes up to len(p) bytes from p, returning the number
	// written.
	Write(p []byte) (n int, err error)

	// Size returns the total byte size of the stream if known, or false
	// if the stream cannot report its size (e.g. a live network socket).
	Size() (size int64, known bool)

	// Seek repositions the stream to an absolute byte offset.
	Seek(pos int64) error

	// Tell returns the current byte offset.
	Tell() (int64, error)

	// AtEnd reports whether the stream has reached its end.
	AtEnd() bool

	// GetError returns the first error encountered by a prior Read,
	// Write, or Seek, or nil if none occurred.
	GetError() error

	// Close releases any resources held by the stream.
	Close() error
}

// Seeker is implemented by streams whose underlying storage supports
// efficient random access (the two Memblock-backed streams in this
// package); SavePos/RestorePos require it.
type Seeker interface {
	Tell() (int64, error)
	Seek(pos int64) error
}

// SavePos returns s's current position, for later restoration with
// RestorePos. Grounded on the original gmio_support's stream_pos.h, used
// by format-sniffing probes that must peek bytes without disturbing the
// caller's stream position.
func SavePos(s Seeker) (int64, error) {
	return s.Tell()
}

// RestorePos seeks s back to a position previously captured by SavePos.
func RestorePos(s Seeker, pos int64) error {
	return s.Seek(pos)
}

// ReadFull reads exactly len(buf) bytes from s, looping over partial
// reads, mirroring io.ReadFull's contract for a gmio Stream.
func ReadFull(s Stream, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		k, err := s.Read(buf[n:])
		n += k
		if err != nil {
			return n, err
		}
		if k == 0 {
			return n, io.ErrNoProgress
		}
	}

	return n, nil
}

// WriteFull writes exactly len(buf) bytes to s, looping over partial
// writes.
func WriteFull(s Stream, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		k, err := s.Write(buf[n:])
		n += k
		if err != nil {
			return n, err
		}
		if k == 0 {
			return n, io.ErrNoProgress
		}
	}

	return n, nil
}
