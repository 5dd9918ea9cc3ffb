package stlbinary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fougue-go/gmio/membuf"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
)

func testTriangles(n int) []stlmodel.Triangle {
	tris := make([]stlmodel.Triangle, n)
	for i := range tris {
		f := float32(i)
		tris[i] = stlmodel.Triangle{
			Normal:        stlmodel.Coord{X: 0, Y: 0, Z: 1},
			V1:            stlmodel.Coord{X: f, Y: 0, Z: 0},
			V2:            stlmodel.Coord{X: f + 1, Y: 0, Z: 0},
			V3:            stlmodel.Coord{X: f, Y: 1, Z: 0},
			AttrByteCount: uint16(i % 3),
		}
	}

	return tris
}

func TestWriteRead_RoundTrip(t *testing.T) {
	tris := testTriangles(5)
	var header stlmodel.Header
	copy(header[:], "roundtrip test header")

	s := gmiostream.NewReadWriteMemblockStream(nil)
	err := Write(s, stlmodel.SliceMesh(tris), WriteOptions{Header: header})
	require.NoError(t, err)

	require.NoError(t, s.Seek(0))

	creator := &stlmodel.SliceMeshCreator{}
	require.NoError(t, Read(s, creator, ReadOptions{}))

	require.True(t, creator.SawBinaryBegin)
	require.True(t, creator.SawEndSolid)
	require.Equal(t, header, creator.Header)
	require.Equal(t, tris, creator.Triangles)
}

func TestWriteRead_RoundTrip_BigEndian(t *testing.T) {
	tris := testTriangles(3)

	s := gmiostream.NewReadWriteMemblockStream(nil)
	opts := WriteOptions{ByteOrder: stlmodel.BigEndian}
	require.NoError(t, Write(s, stlmodel.SliceMesh(tris), opts))
	require.NoError(t, s.Seek(0))

	creator := &stlmodel.SliceMeshCreator{}
	require.NoError(t, Read(s, creator, ReadOptions{ByteOrder: stlmodel.BigEndian}))

	require.Equal(t, tris, creator.Triangles)
}

func TestWriteRead_EmptyMesh(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	require.NoError(t, Write(s, stlmodel.SliceMesh(nil), WriteOptions{}))
	require.NoError(t, s.Seek(0))

	creator := &stlmodel.SliceMeshCreator{}
	require.NoError(t, Read(s, creator, ReadOptions{}))
	require.Empty(t, creator.Triangles)
	require.True(t, creator.SawBinaryBegin)
}

func TestWrite_NilMesh(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	err := Write(s, nil, WriteOptions{})
	require.Error(t, err)
}

func TestWrite_UnsupportedByteOrder(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	err := Write(s, stlmodel.SliceMesh(nil), WriteOptions{ByteOrder: stlmodel.ByteOrder(99)})
	require.Error(t, err)
}

func TestRead_UnsupportedByteOrder(t *testing.T) {
	s := gmiostream.NewReadOnlyMemblockStream(make([]byte, 84))
	err := Read(s, &stlmodel.SliceMeshCreator{}, ReadOptions{ByteOrder: stlmodel.ByteOrder(99)})
	require.Error(t, err)
}

func TestRead_ShortHeader(t *testing.T) {
	s := gmiostream.NewReadOnlyMemblockStream(make([]byte, 10))
	err := Read(s, &stlmodel.SliceMeshCreator{}, ReadOptions{})
	require.Error(t, err)
}

func TestRead_StreamLengthMismatch(t *testing.T) {
	// Declares 5 triangles but the stream is only long enough for 1.
	buf := make([]byte, 84+50)
	buf[80], buf[81], buf[82], buf[83] = 5, 0, 0, 0

	s := gmiostream.NewReadOnlyMemblockStream(buf)
	err := Read(s, &stlmodel.SliceMeshCreator{}, ReadOptions{})
	require.Error(t, err)
}

func TestRead_InvalidMemblockRejectedBeforeAnyStreamRead(t *testing.T) {
	tris := testTriangles(3)
	s := gmiostream.NewReadWriteMemblockStream(nil)
	require.NoError(t, Write(s, stlmodel.SliceMesh(tris), WriteOptions{}))
	require.NoError(t, s.Seek(0))

	creator := &stlmodel.SliceMeshCreator{}
	err := Read(s, creator, ReadOptions{Memblock: &membuf.Memblock{}})
	require.Error(t, err)

	require.False(t, creator.SawBinaryBegin, "BeginSolidBinary must not fire before Memblock validation")
	pos, err := s.Tell()
	require.NoError(t, err)
	require.Zero(t, pos, "an invalid Memblock must be rejected before any stream read")
}

func TestWrite_InvalidMemblockRejectedBeforeAnyStreamWrite(t *testing.T) {
	tris := testTriangles(3)
	s := gmiostream.NewReadWriteMemblockStream(nil)

	err := Write(s, stlmodel.SliceMesh(tris), WriteOptions{Memblock: &membuf.Memblock{}})
	require.Error(t, err)
	require.Empty(t, s.Bytes(), "an invalid Memblock must be rejected before any stream write")
}

func TestRead_BatchesAcrossSmallMemblock(t *testing.T) {
	tris := testTriangles(10)

	s := gmiostream.NewReadWriteMemblockStream(nil)
	require.NoError(t, Write(s, stlmodel.SliceMesh(tris), WriteOptions{}))
	require.NoError(t, s.Seek(0))

	// Force a memblock sized for only 2 triangles per batch, so Read must
	// loop across 5 batches.
	creator := &stlmodel.SliceMeshCreator{}
	smallBuf := make([]byte, 2*50)
	err := Read(s, creator, ReadOptions{Memblock: &membuf.Memblock{Buf: smallBuf}})
	require.NoError(t, err)
	require.Equal(t, tris, creator.Triangles)
}
