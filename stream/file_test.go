package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStream_WriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.bin")

	ws, err := CreateFileStream(path)
	require.NoError(t, err)
	n, err := ws.Write([]byte("hello file stream"))
	require.NoError(t, err)
	require.Equal(t, 17, n)
	require.NoError(t, ws.Close())

	rs, err := OpenFileStream(path)
	require.NoError(t, err)
	defer rs.Close()

	size, known := rs.Size()
	require.True(t, known)
	require.Equal(t, int64(17), size)

	buf := make([]byte, size)
	_, err = ReadFull(rs, buf)
	require.NoError(t, err)
	require.Equal(t, "hello file stream", string(buf))
	require.True(t, rs.AtEnd())
}

func TestFileStream_SeekTell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seek.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	s, err := OpenFileStream(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Seek(5))
	pos, err := s.Tell()
	require.NoError(t, err)
	require.Equal(t, int64(5), pos)

	buf := make([]byte, 3)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "567", string(buf))
}

func TestOpenFileStream_MissingFile(t *testing.T) {
	_, err := OpenFileStream(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	require.Error(t, err)
}

func TestFileStream_GetErrorAfterFailedSeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "err.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	s, err := OpenFileStream(path)
	require.NoError(t, err)
	defer s.Close()

	require.Nil(t, s.GetError())
	require.Error(t, s.Seek(-1))
	require.Error(t, s.GetError())
}
