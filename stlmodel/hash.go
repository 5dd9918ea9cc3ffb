package stlmodel

import (
	"github.com/fougue-go/gmio/endian"
	"github.com/fougue-go/gmio/internal/hash"
)

// ContentHash streams every triangle of mesh through its 50-byte binary
// wire representation (little-endian, the same encoding the binary writer
// emits) and folds the bytes into a running xxHash64, giving a fingerprint
// of a mesh's geometry that is independent of whether it is later saved
// as ASCII or binary, or at what float precision. Supplements spec.md's
// "no geometric queries" non-goal: identity is not geometry.
func ContentHash(mesh Mesh) (uint64, error) {
	d := hash.NewDigest()

	var buf [endian.TriangleSize]byte
	engine := endian.GetLittleEndianEngine()

	n := mesh.TriangleCount()
	for id := uint32(0); id < n; id++ {
		t, err := mesh.GetTriangle(id)
		if err != nil {
			return 0, err
		}

		EncodeTriangle(engine, buf[:], t)
		if _, err := d.Write(buf[:]); err != nil {
			return 0, err
		}
	}

	return d.Sum64(), nil
}

// EncodeTriangle writes t's 50-byte wire representation into buf, which
// must be at least endian.TriangleSize bytes. Shared by ContentHash and
// the stlbinary writer so both use exactly one encoding.
func EncodeTriangle(engine endian.EndianEngine, buf []byte, t Triangle) {
	endian.PutCoord(engine, buf[0:12], t.Normal.X, t.Normal.Y, t.Normal.Z)
	endian.PutCoord(engine, buf[12:24], t.V1.X, t.V1.Y, t.V1.Z)
	endian.PutCoord(engine, buf[24:36], t.V2.X, t.V2.Y, t.V2.Z)
	endian.PutCoord(engine, buf[36:48], t.V3.X, t.V3.Y, t.V3.Z)
	engine.PutUint16(buf[48:50], t.AttrByteCount)
}

// DecodeTriangle reads a 50-byte wire representation from buf, which must
// be at least endian.TriangleSize bytes. Shared with the stlbinary reader.
func DecodeTriangle(engine endian.EndianEngine, buf []byte) Triangle {
	var t Triangle
	t.Normal.X, t.Normal.Y, t.Normal.Z = endian.Coord(engine, buf[0:12])
	t.V1.X, t.V1.Y, t.V1.Z = endian.Coord(engine, buf[12:24])
	t.V2.X, t.V2.Y, t.V2.Z = endian.Coord(engine, buf[24:36])
	t.V3.X, t.V3.Y, t.V3.Z = endian.Coord(engine, buf[36:48])
	t.AttrByteCount = engine.Uint16(buf[48:50])

	return t
}
