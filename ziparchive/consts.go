// Package ziparchive implements spec.md's C15: a multi-entry PKZIP writer
// (with WriteSingleFile for the one-entry case) and a
// central-directory-driven reader, conforming to the APPNOTE 6.3.4
// subset named in spec.md §6 — Local File Header, Central Directory
// Header, End Of Central Directory, and their Zip64 counterparts.
package ziparchive

// Record signatures (APPNOTE 6.3.4 §4.3), all little-endian on the wire.
const (
	sigLocalFileHeader  = 0x04034b50
	sigDataDescriptor   = 0x08074b50
	sigCentralDirHeader = 0x02014b50
	sigEOCD             = 0x06054b50
	sigZip64EOCDRecord  = 0x06064b50
	sigZip64EOCDLocator = 0x07064b50
)

// Fixed record sizes, excluding variable-length filename/extra/comment
// fields.
const (
	localFileHeaderSize  = 30
	centralDirHeaderSize = 46
	eocdSize             = 22
	zip64EOCDRecordSize  = 56
	zip64EOCDLocatorSize = 20
	dataDescriptorSize   = 12 // without the optional signature
)

// zip64ExtraFieldID is the APPNOTE-registered extra field id for the
// Zip64 extended information block.
const zip64ExtraFieldID = 0x0001

// sentinel32/sentinel16 flag "real value lives in the Zip64 extra field"
// in a LFH/CDH/EOCD record.
const (
	sentinel32 = 0xFFFFFFFF
	sentinel16 = 0xFFFF
)

// generalPurposeBit3 marks "sizes and CRC-32 are in a trailing data
// descriptor" — spec.md requires the writer always set it and the reader
// always expect it.
const generalPurposeBit3 = 1 << 3

// FeatureVersion selects whether an entry (and the archive holding it)
// needs the Zip64 extension.
type FeatureVersion int

const (
	// Zip32 is the classic 32-bit-field format.
	Zip32 FeatureVersion = iota
	// Zip64 upgrades size/offset fields to 64-bit via the extra field
	// and sentinel values, required once any size or offset exceeds
	// 0xFFFFFFFE.
	Zip64
)
