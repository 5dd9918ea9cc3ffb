package stlmodel

// SliceMesh adapts a plain []Triangle to the Mesh read-side interface, the
// common case where the caller already holds the whole mesh in memory.
type SliceMesh []Triangle

var _ Mesh = SliceMesh(nil)

func (m SliceMesh) TriangleCount() uint32 {
	return uint32(len(m))
}

func (m SliceMesh) GetTriangle(id uint32) (Triangle, error) {
	return m[id], nil
}

// SliceMeshCreator is a MeshCreator that collects every triangle it
// receives into Triangles, recording the header/solid name/stream-size
// hint it was given. Useful for tests and for round-tripping a mesh
// in-memory.
type SliceMeshCreator struct {
	Triangles      []Triangle
	Header         Header
	SolidName      string
	StreamSizeHint int64
	SawBinaryBegin bool
	SawAsciiBegin  bool
	SawEndSolid    bool
}

var _ MeshCreator = (*SliceMeshCreator)(nil)

func (c *SliceMeshCreator) BeginSolidAscii(streamSizeHint int64, name string) error {
	c.StreamSizeHint = streamSizeHint
	c.SolidName = name
	c.SawAsciiBegin = true

	return nil
}

func (c *SliceMeshCreator) BeginSolidBinary(triangleCount uint32, header Header) error {
	c.Header = header
	c.SawBinaryBegin = true
	c.Triangles = make([]Triangle, 0, triangleCount)

	return nil
}

func (c *SliceMeshCreator) AddTriangle(id uint32, t Triangle) error {
	c.Triangles = append(c.Triangles, t)

	return nil
}

func (c *SliceMeshCreator) EndSolid() error {
	c.SawEndSolid = true

	return nil
}
