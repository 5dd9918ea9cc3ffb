package stlascii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/sstream"
	"github.com/fougue-go/gmio/stlmodel"
	gmiostream "github.com/fougue-go/gmio/stream"
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
			Normal: stlmodel.Coord{X: -1, Y: 0, Z: 0},
			V1:     stlmodel.Coord{X: 1.5, Y: 2.25, Z: -3.75},
			V2:     stlmodel.Coord{X: 2, Y: 2, Z: 2},
			V3:     stlmodel.Coord{X: 0, Y: 0, Z: 0},
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	mesh := sampleMesh()

	s := gmiostream.NewReadWriteMemblockStream(nil)
	opts := WriteOptions{FloatFormat: sstream.Scientific, Precision: 9, SolidName: "cube"}
	require.NoError(t, Write(s, mesh, opts))
	require.NoError(t, s.Seek(0))

	creator := &stlmodel.SliceMeshCreator{}
	require.NoError(t, Read(s, creator, ReadOptions{}))

	require.True(t, creator.SawAsciiBegin)
	require.True(t, creator.SawEndSolid)
	require.Equal(t, "cube", creator.SolidName)
	require.Equal(t, []stlmodel.Triangle(mesh), creator.Triangles)
}

func TestWrite_CanonicalForm(t *testing.T) {
	mesh := sampleMesh()[:1]

	s := gmiostream.NewReadWriteMemblockStream(nil)
	opts := WriteOptions{FloatFormat: sstream.Decimal, Precision: 1, SolidName: ""}
	require.NoError(t, Write(s, mesh, opts))

	out := string(s.Bytes())
	require.True(t, strings.HasPrefix(out, "solid \n"))
	require.Contains(t, out, "facet normal 0.0 0.0 1.0\n")
	require.Contains(t, out, "outer loop\n")
	require.Contains(t, out, "vertex 0.0 0.0 0.0\n")
	require.Contains(t, out, "endloop\nendfacet\n")
	require.True(t, strings.HasSuffix(out, "endsolid \n"))
}

func TestRead_MultiSolid(t *testing.T) {
	text := "solid first\n" +
		"facet normal 0 0 1\n" +
		"outer loop\n" +
		"vertex 0 0 0\n" +
		"vertex 1 0 0\n" +
		"vertex 0 1 0\n" +
		"endloop\n" +
		"endfacet\n" +
		"endsolid first\n" +
		"solid second\n" +
		"facet normal 1 0 0\n" +
		"outer loop\n" +
		"vertex 0 0 0\n" +
		"vertex 0 1 0\n" +
		"vertex 0 0 1\n" +
		"endloop\n" +
		"endfacet\n" +
		"endsolid second\n"

	s := gmiostream.NewReadOnlyMemblockStream([]byte(text))

	var names []string
	var tricounts []int
	creator := &multiSolidCollector{
		onBegin: func(name string) { names = append(names, name) },
		onEnd:   func(n int) { tricounts = append(tricounts, n) },
	}

	require.NoError(t, Read(s, creator, ReadOptions{}))
	require.Equal(t, []string{"first", "second"}, names)
	require.Equal(t, []int{1, 1}, tricounts)
}

func TestRead_CaseInsensitiveKeywords(t *testing.T) {
	text := "SOLID x\nFACET NORMAL 0 0 1\nOUTER LOOP\n" +
		"VERTEX 0 0 0\nVERTEX 1 0 0\nVERTEX 0 1 0\n" +
		"ENDLOOP\nENDFACET\nENDSOLID x\n"

	s := gmiostream.NewReadOnlyMemblockStream([]byte(text))
	creator := &stlmodel.SliceMeshCreator{}
	require.NoError(t, Read(s, creator, ReadOptions{}))
	require.Len(t, creator.Triangles, 1)
}

func TestRead_InvalidKeyword(t *testing.T) {
	s := gmiostream.NewReadOnlyMemblockStream([]byte("not-stl-at-all"))
	err := Read(s, &stlmodel.SliceMeshCreator{}, ReadOptions{})
	require.Error(t, err)
}

func TestRead_EmptyStream(t *testing.T) {
	s := gmiostream.NewReadOnlyMemblockStream(nil)
	err := Read(s, &stlmodel.SliceMeshCreator{}, ReadOptions{})
	require.Error(t, err)
}

func TestRead_ReportsLineNumber(t *testing.T) {
	text := "solid x\nfacet normal 0 0 1\nbogus\n"
	s := gmiostream.NewReadOnlyMemblockStream([]byte(text))

	err := Read(s, &stlmodel.SliceMeshCreator{}, ReadOptions{})
	require.Error(t, err)

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, 3, e.Line)
}

func TestWrite_PrecisionOutOfRange(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	err := Write(s, sampleMesh(), WriteOptions{Precision: 0})
	require.Error(t, err)

	err = Write(s, sampleMesh(), WriteOptions{Precision: 10})
	require.Error(t, err)
}

func TestWrite_NilMesh(t *testing.T) {
	s := gmiostream.NewReadWriteMemblockStream(nil)
	err := Write(s, nil, WriteOptions{Precision: 9})
	require.Error(t, err)
}

// multiSolidCollector is a minimal MeshCreator used only to observe
// BeginSolidAscii/EndSolid call boundaries across multiple solids, since
// stlmodel.SliceMeshCreator accumulates triangles across solids rather
// than resetting per-solid.
type multiSolidCollector struct {
	stlmodel.NopMeshCreator
	onBegin func(name string)
	onEnd   func(triCount int)
	current int
}

func (c *multiSolidCollector) BeginSolidAscii(streamSizeHint int64, name string) error {
	c.current = 0
	c.onBegin(name)

	return nil
}

func (c *multiSolidCollector) AddTriangle(id uint32, t stlmodel.Triangle) error {
	c.current++

	return nil
}

func (c *multiSolidCollector) EndSolid() error {
	c.onEnd(c.current)

	return nil
}
