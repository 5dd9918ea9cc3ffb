package gmio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fougue-go/gmio"
	"github.com/fougue-go/gmio/compress"
	"github.com/fougue-go/gmio/sstream"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
	"github.com/fougue-go/gmio/ziparchive"
)

func sampleMesh() stlmodel.SliceMesh {
	return stlmodel.SliceMesh{
		{
			Normal: stlmodel.Coord{X: 0, Y: 0, Z: 1},
			V1:     stlmodel.Coord{X: 0, Y: 0, Z: 0},
			V2:     stlmodel.Coord{X: 1, Y: 0, Z: 0},
			V3:     stlmodel.Coord{X: 0, Y: 1, Z: 0},
		},
		{
			Normal: stlmodel.Coord{X: 1, Y: 0, Z: 0},
			V1:     stlmodel.Coord{X: 1, Y: 1, Z: 1},
			V2:     stlmodel.Coord{X: 2, Y: 1, Z: 1},
			V3:     stlmodel.Coord{X: 1, Y: 2, Z: 1},
		},
	}
}

func TestWriteRead_BinaryRoundTrip_DefaultFormat(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	mesh := sampleMesh()

	require.NoError(t, gmio.Write(s, mesh))

	format, err := gmio.DetectFormat(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)
	require.Equal(t, stlmodel.Binary, format)

	var creator stlmodel.SliceMeshCreator
	require.NoError(t, gmio.Read(gmiostream.NewReadOnlyMemblockStream(s.Bytes()), &creator))
	require.Equal(t, []stlmodel.Triangle(mesh), creator.Triangles)
}

func TestWriteRead_AsciiRoundTrip(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	mesh := sampleMesh()

	require.NoError(t, gmio.Write(s, mesh,
		gmio.WithFormat(stlmodel.Ascii),
		gmio.WithSolidName("cube"),
		gmio.WithFloatFormat(sstream.ShortestDecimal),
		gmio.WithFloatPrecision(9),
	))

	format, err := gmio.DetectFormat(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)
	require.Equal(t, stlmodel.Ascii, format)

	var creator stlmodel.SliceMeshCreator
	require.NoError(t, gmio.Read(gmiostream.NewReadOnlyMemblockStream(s.Bytes()), &creator))
	require.Len(t, creator.Triangles, len(mesh))
	require.Equal(t, "cube", creator.SolidName)
}

func TestProbe_Binary(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	mesh := sampleMesh()
	require.NoError(t, gmio.Write(s, mesh, gmio.WithFormat(stlmodel.Binary)))

	result, err := gmio.Probe(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)
	require.Equal(t, stlmodel.Binary, result.Format)
	require.Equal(t, uint32(len(mesh)), result.TriangleCount)
}

func TestProbe_Ascii(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	mesh := sampleMesh()
	require.NoError(t, gmio.Write(s, mesh, gmio.WithFormat(stlmodel.Ascii), gmio.WithSolidName("probed")))

	result, err := gmio.Probe(gmiostream.NewReadOnlyMemblockStream(s.Bytes()))
	require.NoError(t, err)
	require.Equal(t, stlmodel.Ascii, result.Format)
	require.Equal(t, uint32(len(mesh)), result.TriangleCount)
	require.Equal(t, "probed", result.SolidName)
}

func TestReadWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.stl")
	mesh := sampleMesh()

	require.NoError(t, gmio.WriteFile(path, mesh))

	var creator stlmodel.SliceMeshCreator
	require.NoError(t, gmio.ReadFile(path, &creator))
	require.Equal(t, []stlmodel.Triangle(mesh), creator.Triangles)
}

func TestWrite_NilMesh(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	err := gmio.Write(s, nil)
	require.Error(t, err)
}

func TestNewOptions_RejectsOutOfRangePrecision(t *testing.T) {
	_, err := gmio.NewOptions(gmio.WithFloatPrecision(20))
	require.Error(t, err)
}

func TestNewOptions_RejectsInvalidByteOrder(t *testing.T) {
	_, err := gmio.NewOptions(gmio.WithByteOrder(stlmodel.ByteOrder(99)))
	require.Error(t, err)
}

func TestWrite_ReportsProgress(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	mesh := sampleMesh()

	var calls []uint32
	err := gmio.Write(s, mesh, gmio.WithTaskProgress(func(done, total uint32) {
		calls = append(calls, done)
		require.Equal(t, uint32(len(mesh)), total)
	}))
	require.NoError(t, err)
	require.NotEmpty(t, calls)
	require.Equal(t, uint32(len(mesh)), calls[len(calls)-1])
}

func TestRead_ReportsProgress(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	mesh := sampleMesh()
	require.NoError(t, gmio.Write(s, mesh, gmio.WithFormat(stlmodel.Binary)))

	var lastDone, lastTotal uint32
	var creator stlmodel.SliceMeshCreator
	err := gmio.Read(gmiostream.NewReadOnlyMemblockStream(s.Bytes()), &creator, gmio.WithTaskProgress(func(done, total uint32) {
		lastDone, lastTotal = done, total
	}))
	require.NoError(t, err)
	require.Equal(t, uint32(len(mesh)), lastDone)
	require.Equal(t, uint32(len(mesh)), lastTotal)
}

func TestProbeZipEntry(t *testing.T) {
	zs := gmiostream.NewReadWriteMemblockStream(nil)
	ws := gmiostream.NewReadWriteMemblockStream(nil)
	mesh := sampleMesh()
	require.NoError(t, gmio.Write(ws, mesh, gmio.WithFormat(stlmodel.Binary)))

	require.NoError(t, ziparchive.WriteSingleFile(zs, "part.stl", ws.Bytes(), compress.MethodDeflate, ziparchive.Zip32))

	result, err := gmio.ProbeZipEntry(gmiostream.NewReadOnlyMemblockStream(zs.Bytes()), "part.stl")
	require.NoError(t, err)
	require.Equal(t, stlmodel.Binary, result.Format)
	require.Equal(t, uint32(len(mesh)), result.TriangleCount)
}

func TestProbeZipEntry_MissingEntry(t *testing.T) {
	zs := gmiostream.NewReadWriteMemblockStream(nil)
	require.NoError(t, ziparchive.WriteSingleFile(zs, "a.stl", []byte("solid a\nendsolid a\n"), compress.MethodStore, ziparchive.Zip32))

	_, err := gmio.ProbeZipEntry(gmiostream.NewReadOnlyMemblockStream(zs.Bytes()), "missing.stl")
	require.Error(t, err)
}
