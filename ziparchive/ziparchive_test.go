package ziparchive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fougue-go/gmio/compress"
	gmiostream "github.com/fougue-go/gmio/stream"
	"github.com/fougue-go/gmio/ziparchive"
)

func TestWriteSingleFile_RoundTrip(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	payload := []byte("solid cube\nendsolid cube\n")

	err := ziparchive.WriteSingleFile(s, "cube.stl", payload, compress.MethodDeflate, ziparchive.Zip32)
	require.NoError(t, err)

	r, err := ziparchive.NewReader(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)

	entries := r.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "cube.stl", entries[0].Name)
	require.Equal(t, compress.MethodDeflate, entries[0].Method)
	require.Equal(t, ziparchive.Zip32, entries[0].Feature)
	require.Equal(t, int64(len(payload)), entries[0].UncompressedSize)

	got, err := r.ReadFile(0)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestWriter_MultiEntryRoundTrip(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)

	w, err := ziparchive.NewWriter(s)
	require.NoError(t, err)

	files := map[string][]byte{
		"a.stl": []byte("solid a\nendsolid a\n"),
		"b.stl": []byte("solid b\nendsolid b\n"),
		"c.stl": []byte(""),
	}
	names := []string{"a.stl", "b.stl", "c.stl"}
	methods := []compress.Method{compress.MethodStore, compress.MethodDeflate, compress.MethodZstd}

	for i, name := range names {
		require.NoError(t, w.AddFile(name, files[name], methods[i], ziparchive.Zip32))
	}
	require.NoError(t, w.Close())

	r, err := ziparchive.NewReader(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)
	require.Len(t, r.Entries(), 3)

	for i, entry := range r.Entries() {
		require.Equal(t, names[i], entry.Name)
		data, err := r.ReadFile(i)
		require.NoError(t, err)
		require.Equal(t, files[names[i]], data)
	}
}

func TestWriter_Zip64Upgrade(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)

	w, err := ziparchive.NewWriter(s)
	require.NoError(t, err)

	payload := []byte("solid big\nendsolid big\n")
	require.NoError(t, w.AddFile("big.stl", payload, compress.MethodStore, ziparchive.Zip64))
	require.NoError(t, w.Close())

	r, err := ziparchive.NewReader(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)
	require.Len(t, r.Entries(), 1)
	require.Equal(t, ziparchive.Zip64, r.Entries()[0].Feature)

	data, err := r.ReadFile(0)
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestReadFile_DetectsCRCMismatch(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	payload := []byte("solid x\nendsolid x\n")

	require.NoError(t, ziparchive.WriteSingleFile(s, "x.stl", payload, compress.MethodStore, ziparchive.Zip32))

	buf := s.Bytes()
	// Flip a byte inside the stored (uncompressed) payload bytes,
	// wherever they land in the archive, without touching any header
	// field.
	found := false
	for i := 0; i < len(buf)-len(payload); i++ {
		window := buf[i : i+len(payload)]
		match := true
		for j := range payload {
			if window[j] != payload[j] {
				match = false
				break
			}
		}
		if match {
			buf[i] ^= 0xFF
			found = true
			break
		}
	}
	require.True(t, found, "failed to locate payload bytes to corrupt")

	r, err := ziparchive.NewReader(gmiostream.NewReadOnlyMemblockStream(buf))
	require.NoError(t, err)

	_, err = r.ReadFile(0)
	require.Error(t, err)
}

func TestDuplicateEntries_FlagsIdenticalPayloads(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)

	w, err := ziparchive.NewWriter(s)
	require.NoError(t, err)

	same := []byte("solid dup\nendsolid dup\n")
	unique := []byte("solid unique\nendsolid unique\n")

	require.NoError(t, w.AddFile("one.stl", same, compress.MethodDeflate, ziparchive.Zip32))
	require.NoError(t, w.AddFile("two.stl", same, compress.MethodStore, ziparchive.Zip32))
	require.NoError(t, w.AddFile("three.stl", unique, compress.MethodStore, ziparchive.Zip32))
	require.NoError(t, w.Close())

	r, err := ziparchive.NewReader(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)

	dups, err := r.DuplicateEntries()
	require.NoError(t, err)
	require.Len(t, dups, 1)
	require.ElementsMatch(t, []int{0, 1}, dups[0])
}

func TestWriter_RejectsAddFileAfterClose(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)

	w, err := ziparchive.NewWriter(s)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = w.AddFile("late.stl", []byte("solid x\nendsolid x\n"), compress.MethodStore, ziparchive.Zip32)
	require.Error(t, err)
}

func TestNewReader_RejectsBadSignature(t *testing.T) {
	garbage := make([]byte, 64)
	_, err := ziparchive.NewReader(gmiostream.NewReadOnlyMemblockStream(garbage))
	require.Error(t, err)
}

func TestNewReader_EmptyArchive(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	w, err := ziparchive.NewWriter(s)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := ziparchive.NewReader(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)
	require.Empty(t, r.Entries())
}
