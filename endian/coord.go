package endian

import "math"

// CoordSize is the on-wire size in bytes of one (x, y, z) float32 coordinate.
const CoordSize = 12

// TriangleSize is the on-wire size in bytes of one STL binary triangle
// record: normal + 3 vertices (4 coordinates) plus the 16-bit attribute
// byte count. Independent of any in-memory struct padding.
const TriangleSize = 4*CoordSize + 2

// PutFloat32 writes the IEEE-754 bits of v into buf[0:4] using engine's byte
// order. Panics if len(buf) < 4, matching encoding/binary's own PutUintN
// contract.
func PutFloat32(engine EndianEngine, buf []byte, v float32) {
	engine.PutUint32(buf, math.Float32bits(v))
}

// Float32 reads 4 bytes from buf using engine's byte order and reinterprets
// them as an IEEE-754 float32. Panics if len(buf) < 4.
func Float32(engine EndianEngine, buf []byte) float32 {
	return math.Float32frombits(engine.Uint32(buf))
}

// AppendFloat32 appends the IEEE-754 bits of v to buf using engine's byte
// order and returns the extended slice.
func AppendFloat32(engine EndianEngine, buf []byte, v float32) []byte {
	return engine.AppendUint32(buf, math.Float32bits(v))
}

// PutCoord writes x, y, z as three consecutive float32 values into
// buf[0:12] using engine's byte order. Panics if len(buf) < CoordSize.
func PutCoord(engine EndianEngine, buf []byte, x, y, z float32) {
	PutFloat32(engine, buf[0:4], x)
	PutFloat32(engine, buf[4:8], y)
	PutFloat32(engine, buf[8:12], z)
}

// Coord reads three consecutive float32 values from buf[0:12] using
// engine's byte order. Panics if len(buf) < CoordSize.
func Coord(engine EndianEngine, buf []byte) (x, y, z float32) {
	x = Float32(engine, buf[0:4])
	y = Float32(engine, buf[4:8])
	z = Float32(engine, buf[8:12])

	return x, y, z
}
