// Package stlmodel defines the STL data model shared by the binary and
// ASCII codecs: coordinates, triangles, the binary header, and the
// Mesh/MeshCreator inversion-of-control interfaces a caller implements to
// supply or receive triangle data without the codec ever materializing a
// whole mesh in memory.
package stlmodel

// HeaderSize is the fixed size in bytes of an STL binary header: 80 bytes
// of caller-opaque data. It is never assumed to be nul-terminated text.
const HeaderSize = 80

// Coord is a single (x, y, z) vertex or normal, stored as three IEEE-754
// binary32 floats.
type Coord struct {
	X, Y, Z float32
}

// Triangle is one STL facet: a normal, three vertices in winding order,
// and a 16-bit attribute byte count (conventionally 0, but preserved
// verbatim by the binary codec since some tools stash data there).
type Triangle struct {
	Normal Coord
	V1     Coord
	V2     Coord
	V3     Coord
	AttrByteCount uint16
}

// Header is the 80 opaque bytes at the start of an STL binary file.
type Header [HeaderSize]byte

// Mesh is the read-side producer interface: implemented by a caller who
// wants to write out a mesh they already hold. TriangleCount is consulted
// once, up front, by the binary writer to emit the wire triangle count;
// GetTriangle is called once per triangle in strictly increasing id order
// starting at 0.
type Mesh interface {
	TriangleCount() uint32
	GetTriangle(id uint32) (Triangle, error)
}

// MeshCreator is the write-side consumer interface: implemented by a
// caller who wants to receive a mesh as the codec streams it off the
// wire. Any method may be a no-op; the codec never requires all of them
// to do something.
//
// Call order for a binary read: BeginSolidBinary once, then AddTriangle
// for id = 0..count-1, then EndSolid. For an ASCII read, the cycle
// BeginSolidAscii, AddTriangle*, EndSolid repeats once per "solid"
// stanza in the file.
type MeshCreator interface {
	BeginSolidAscii(streamSizeHint int64, name string) error
	BeginSolidBinary(triangleCount uint32, header Header) error
	AddTriangle(id uint32, t Triangle) error
	EndSolid() error
}

// NopMeshCreator embeds into a MeshCreator implementation to make every
// method a no-op unless explicitly overridden, matching spec.md's "any
// field may be null; a null callback is a no-op" contract for Go's
// interface-based equivalent of the original's function-pointer table.
type NopMeshCreator struct{}

func (NopMeshCreator) BeginSolidAscii(int64, string) error         { return nil }
func (NopMeshCreator) BeginSolidBinary(uint32, Header) error       { return nil }
func (NopMeshCreator) AddTriangle(uint32, Triangle) error          { return nil }
func (NopMeshCreator) EndSolid() error                             { return nil }

var _ MeshCreator = NopMeshCreator{}
