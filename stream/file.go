package stream

import (
	"errors"
	"io"
	"os"
)

// FileStream adapts an *os.File to the Stream interface, backing
// ReadFile/WriteFile's "thin convenience over stream+path" contract
// (spec.md §6).
type FileStream struct {
	f   *os.File
	err error
}

var _ Stream = (*FileStream)(nil)

// NewFileStream wraps an already-open file.
func NewFileStream(f *os.File) *FileStream {
	return &FileStream{f: f}
}

// OpenFileStream opens path for reading, returning a ready-to-use Stream.
func OpenFileStream(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return NewFileStream(f), nil
}

// CreateFileStream creates (truncating if it exists) path for writing.
func CreateFileStream(path string) (*FileStream, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return NewFileStream(f), nil
}

func (s *FileStream) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}

	return n, err
}

func (s *FileStream) Write(p []byte) (int, error) {
	n, err := s.f.Write(p)
	if err != nil {
		s.err = err
	}

	return n, err
}

func (s *FileStream) Size() (int64, bool) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, false
	}

	return info.Size(), true
}

func (s *FileStream) Seek(pos int64) error {
	_, err := s.f.Seek(pos, 0)
	if err != nil {
		s.err = err
	}

	return err
}

func (s *FileStream) Tell() (int64, error) {
	return s.f.Seek(0, 1)
}

func (s *FileStream) AtEnd() bool {
	pos, err := s.Tell()
	if err != nil {
		return false
	}
	size, known := s.Size()

	return known && pos >= size
}

func (s *FileStream) GetError() error {
	return s.err
}

func (s *FileStream) Close() error {
	return s.f.Close()
}
