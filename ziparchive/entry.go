package ziparchive

import "github.com/fougue-go/gmio/compress"

// Entry describes one archive member as recorded in its Central
// Directory Header, with offsets resolved against the stream the Reader
// parsed it from.
type Entry struct {
	Name              string
	Method            compress.Method
	Feature           FeatureVersion
	CRC32             uint32
	CompressedSize    int64
	UncompressedSize  int64
	LocalHeaderOffset int64
}

// needsZip64 reports whether e's recorded sizes/offset require the Zip64
// extension regardless of what FeatureVersion the caller requested —
// spec.md requires the upgrade whenever a sentinel value would otherwise
// be ambiguous with a real one.
func needsZip64(compressedSize, uncompressedSize, offset int64) bool {
	const maxPlain = 0xFFFFFFFE

	return compressedSize > maxPlain || uncompressedSize > maxPlain || offset > maxPlain
}
