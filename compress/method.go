package compress

// Method identifies a ZIP entry compression method as carried in the
// 2-byte "compression method" field of the Local File Header and Central
// Directory Header (APPNOTE.TXT section 4.4.5).
type Method uint16

const (
	// MethodStore is "no compression", method 0.
	MethodStore Method = 0
	// MethodDeflate is the ubiquitous DEFLATE method, method 8.
	MethodDeflate Method = 8
	// MethodZstd is the APPNOTE-registered Zstandard method, method 93.
	MethodZstd Method = 93
	// MethodLZ4 is not part of APPNOTE; it uses a private-use method id
	// (0x0100-0xFFFF is reserved for implementation-specific use) so
	// archives written with it are clearly non-portable.
	MethodLZ4 Method = 0x0101
)

func (m Method) String() string {
	switch m {
	case MethodStore:
		return "store"
	case MethodDeflate:
		return "deflate"
	case MethodZstd:
		return "zstd"
	case MethodLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}
