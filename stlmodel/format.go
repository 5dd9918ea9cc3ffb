package stlmodel

// Format identifies which STL wire representation a stream holds.
type Format int

const (
	// Unknown means auto-detection could not classify the stream.
	Unknown Format = iota
	// Ascii is the human-readable "solid ... endsolid" text format.
	Ascii
	// Binary is the 80-byte-header + triangle-count + packed-record format.
	Binary
)

func (f Format) String() string {
	switch f {
	case Ascii:
		return "Ascii"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// ByteOrder selects the endianness of a binary STL stream. Spec.md only
// requires little-endian (native STL) and big-endian (rare) to be
// accepted; any other value is rejected with StlBinaryUnsupportedByteOrder.
type ByteOrder int

const (
	// LittleEndian is the default, native STL binary byte order.
	LittleEndian ByteOrder = iota
	// BigEndian is accepted but non-default.
	BigEndian
)

// ProbeResult is what Probe returns: enough to describe a mesh without
// invoking any MeshCreator callback.
type ProbeResult struct {
	Format        Format
	TriangleCount uint32
	Header        Header // only meaningful when Format == Binary
	SolidName     string // only meaningful when Format == Ascii
}
