package ziparchive

import (
	"github.com/fougue-go/gmio/endian"
	"github.com/fougue-go/gmio/errs"
)

// Zip64 extra field (APPNOTE 4.5.3), id 0x0001. Per the spec, fields are
// only present when the corresponding fixed-width field holds a sentinel.
// This writer always upgrades both sizes together and, for the Central
// Directory Header, the local header offset too, so it always emits the
// full fixed layout for each record kind rather than a variable subset —
// a simplification the reader relies on when parsing its own output.

// buildZip64ExtraLFH builds the extra field block (id + size header +
// data) carrying real uncompressed/compressed sizes for a Local File
// Header whose fixed-width size fields are both the sentinel.
func buildZip64ExtraLFH(engine endian.EndianEngine, uncompressedSize, compressedSize int64) []byte {
	data := make([]byte, 4+16)
	engine.PutUint16(data[0:2], zip64ExtraFieldID)
	engine.PutUint16(data[2:4], 16)
	engine.PutUint64(data[4:12], uint64(uncompressedSize))
	engine.PutUint64(data[12:20], uint64(compressedSize))

	return data
}

// buildZip64ExtraCDH builds the extra field block for a Central Directory
// Header, additionally carrying the real local-header offset.
func buildZip64ExtraCDH(engine endian.EndianEngine, uncompressedSize, compressedSize, offset int64) []byte {
	data := make([]byte, 4+24)
	engine.PutUint16(data[0:2], zip64ExtraFieldID)
	engine.PutUint16(data[2:4], 24)
	engine.PutUint64(data[4:12], uint64(uncompressedSize))
	engine.PutUint64(data[12:20], uint64(compressedSize))
	engine.PutUint64(data[20:28], uint64(offset))

	return data
}

// parseZip64Extra scans extra (a record's full extra-field blob, which
// may contain other vendor extra fields besides Zip64) for the Zip64
// block and returns its decoded fields. wantOffset selects whether to
// expect the 24-byte CDH layout (with offset) or the 16-byte LFH layout.
func parseZip64Extra(engine endian.EndianEngine, extra []byte, wantOffset bool) (uncompressedSize, compressedSize, offset int64, err error) {
	for i := 0; i+4 <= len(extra); {
		id := engine.Uint16(extra[i : i+2])
		size := int(engine.Uint16(extra[i+2 : i+4]))
		start := i + 4
		end := start + size
		if end > len(extra) {
			return 0, 0, 0, errs.New(errs.ZipInconsistentSize, "ziparchive: truncated extra field")
		}

		if id == zip64ExtraFieldID {
			block := extra[start:end]
			if wantOffset && len(block) >= 24 {
				return int64(engine.Uint64(block[0:8])), int64(engine.Uint64(block[8:16])), int64(engine.Uint64(block[16:24])), nil
			}
			if !wantOffset && len(block) >= 16 {
				return int64(engine.Uint64(block[0:8])), int64(engine.Uint64(block[8:16])), 0, nil
			}

			return 0, 0, 0, errs.New(errs.ZipInconsistentSize, "ziparchive: undersized Zip64 extra field")
		}

		i = end
	}

	return 0, 0, 0, errs.New(errs.ZipInconsistentSize, "ziparchive: sentinel size with no Zip64 extra field")
}
