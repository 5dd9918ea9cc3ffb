package ziparchive

import (
	"github.com/fougue-go/gmio/compress"
	"github.com/fougue-go/gmio/endian"
	"github.com/fougue-go/gmio/errs"
	"github.com/fougue-go/gmio/internal/hash"
	gmiostream "github.com/fougue-go/gmio/stream"
)

// eocdScanWindow bounds the backward scan for the End Of Central
// Directory signature to the maximum possible comment length plus the
// fixed EOCD size, so a corrupt stream can't force an unbounded read.
const eocdScanWindow = eocdSize + sentinel16

// Reader parses a complete ZIP archive's central directory into a slice
// of Entry, and extracts individual entries' payloads on demand.
type Reader struct {
	s       gmiostream.Stream
	engine  endian.EndianEngine
	entries []Entry
}

// NewReader locates the End Of Central Directory record (and, if
// present, the Zip64 EOCD record/locator) and parses every Central
// Directory Header it describes.
func NewReader(s gmiostream.Stream) (*Reader, error) {
	size, known := s.Size()
	if !known {
		return nil, errs.New(errs.StreamError, "ziparchive: reader requires a stream with a known size")
	}

	r := &Reader{s: s, engine: endian.GetLittleEndianEngine()}

	eocdOffset, err := r.findEOCD(size)
	if err != nil {
		return nil, err
	}

	eocd, err := r.readAt(eocdOffset, eocdSize)
	if err != nil {
		return nil, err
	}

	recordCount := int(r.engine.Uint16(eocd[10:12]))
	centralDirSize := int64(r.engine.Uint32(eocd[12:16]))
	centralDirOffset := int64(r.engine.Uint32(eocd[16:20]))

	if recordCount == sentinel16 || centralDirOffset == int64(sentinel32) || centralDirSize == int64(sentinel32) {
		recordCount, centralDirOffset, err = r.readZip64EOCD(eocdOffset)
		if err != nil {
			return nil, err
		}
	}

	entries, err := r.parseCentralDirectory(centralDirOffset, recordCount)
	if err != nil {
		return nil, err
	}
	r.entries = entries

	return r, nil
}

func (r *Reader) readAt(offset int64, size int) ([]byte, error) {
	if err := r.s.Seek(offset); err != nil {
		return nil, errs.Wrap(errs.StreamError, err, "ziparchive: seek failed")
	}

	buf := make([]byte, size)
	if _, err := gmiostream.ReadFull(r.s, buf); err != nil {
		return nil, errs.Wrap(errs.StreamShortRead, err, "ziparchive: short read")
	}

	return buf, nil
}

// findEOCD scans backward from the stream tail for the EOCD signature,
// tolerating a trailing archive comment up to the maximum length a
// 16-bit comment-length field can encode.
func (r *Reader) findEOCD(size int64) (int64, error) {
	windowSize := size
	if windowSize > eocdScanWindow {
		windowSize = eocdScanWindow
	}

	start := size - windowSize
	buf, err := r.readAt(start, int(windowSize))
	if err != nil {
		return 0, err
	}

	for i := len(buf) - eocdSize; i >= 0; i-- {
		if r.engine.Uint32(buf[i:i+4]) == sigEOCD {
			return start + int64(i), nil
		}
	}

	return 0, errs.New(errs.ZipBadSignature, "ziparchive: end of central directory record not found")
}

func (r *Reader) readZip64EOCD(eocdOffset int64) (recordCount int, centralDirOffset int64, err error) {
	locatorOffset := eocdOffset - zip64EOCDLocatorSize
	locator, err := r.readAt(locatorOffset, zip64EOCDLocatorSize)
	if err != nil {
		return 0, 0, err
	}
	if r.engine.Uint32(locator[0:4]) != sigZip64EOCDLocator {
		return 0, 0, errs.New(errs.ZipBadSignature, "ziparchive: zip64 EOCD locator signature mismatch")
	}

	recordOffset := int64(r.engine.Uint64(locator[8:16]))
	rec, err := r.readAt(recordOffset, zip64EOCDRecordSize)
	if err != nil {
		return 0, 0, err
	}
	if r.engine.Uint32(rec[0:4]) != sigZip64EOCDRecord {
		return 0, 0, errs.New(errs.ZipBadSignature, "ziparchive: zip64 EOCD record signature mismatch")
	}

	count := r.engine.Uint64(rec[32:40])
	offset := r.engine.Uint64(rec[48:56])

	return int(count), int64(offset), nil
}

func (r *Reader) parseCentralDirectory(offset int64, count int) ([]Entry, error) {
	entries := make([]Entry, 0, count)
	pos := offset

	for i := 0; i < count; i++ {
		hdr, err := r.readAt(pos, centralDirHeaderSize)
		if err != nil {
			return nil, err
		}
		if r.engine.Uint32(hdr[0:4]) != sigCentralDirHeader {
			return nil, errs.New(errs.ZipBadSignature, "ziparchive: central directory header signature mismatch")
		}

		method := r.engine.Uint16(hdr[10:12])
		crc := r.engine.Uint32(hdr[16:20])
		compressedSize := int64(r.engine.Uint32(hdr[20:24]))
		uncompressedSize := int64(r.engine.Uint32(hdr[24:28]))
		nameLen := int(r.engine.Uint16(hdr[28:30]))
		extraLen := int(r.engine.Uint16(hdr[30:32]))
		commentLen := int(r.engine.Uint16(hdr[32:34]))
		localHeaderOffset := int64(r.engine.Uint32(hdr[42:46]))

		rest, err := r.readAt(pos+centralDirHeaderSize, nameLen+extraLen+commentLen)
		if err != nil {
			return nil, err
		}
		name := string(rest[:nameLen])
		extra := rest[nameLen : nameLen+extraLen]

		feature := Zip32
		if compressedSize == int64(sentinel32) || uncompressedSize == int64(sentinel32) || localHeaderOffset == int64(sentinel32) {
			feature = Zip64
			u, c, o, err := parseZip64Extra(r.engine, extra, true)
			if err != nil {
				return nil, err
			}
			uncompressedSize, compressedSize = u, c
			if localHeaderOffset == int64(sentinel32) {
				localHeaderOffset = o
			}
		}

		entries = append(entries, Entry{
			Name:              name,
			Method:            compress.Method(method),
			Feature:           feature,
			CRC32:             crc,
			CompressedSize:    compressedSize,
			UncompressedSize:  uncompressedSize,
			LocalHeaderOffset: localHeaderOffset,
		})

		pos += int64(centralDirHeaderSize + nameLen + extraLen + commentLen)
	}

	return entries, nil
}

// Entries returns every archive member parsed from the central
// directory, in on-disk order.
func (r *Reader) Entries() []Entry {
	return r.entries
}

// ReadFile decompresses and returns the payload of the entry at index i,
// validating the decompressed size and CRC32 against the Central
// Directory Header's recorded values.
func (r *Reader) ReadFile(i int) ([]byte, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, errs.New(errs.Unknown, "ziparchive: entry index out of range")
	}
	e := r.entries[i]

	lfh, err := r.readAt(e.LocalHeaderOffset, localFileHeaderSize)
	if err != nil {
		return nil, err
	}
	if r.engine.Uint32(lfh[0:4]) != sigLocalFileHeader {
		return nil, errs.New(errs.ZipBadSignature, "ziparchive: local file header signature mismatch")
	}
	nameLen := int(r.engine.Uint16(lfh[26:28]))
	extraLen := int(r.engine.Uint16(lfh[28:30]))

	payloadOffset := e.LocalHeaderOffset + localFileHeaderSize + int64(nameLen+extraLen)
	compressed, err := r.readAt(payloadOffset, int(e.CompressedSize))
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(e.Method)
	if err != nil {
		return nil, errs.Wrap(errs.ZipUnsupportedVersion, err, "ziparchive: unsupported compression method")
	}
	data, err := codec.Decompress(compressed)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) != e.UncompressedSize {
		return nil, errs.New(errs.ZipInconsistentSize, "ziparchive: decompressed size disagrees with central directory")
	}
	if ChecksumIEEE(data) != e.CRC32 {
		return nil, errs.New(errs.ZipInconsistentSize, "ziparchive: CRC32 disagrees with central directory")
	}

	return data, nil
}

// DuplicateEntries groups entry indices whose decompressed payloads
// share both CRC32 and an xxhash64 content fingerprint, flagging likely
// duplicate STL payloads packed into the same archive. CRC32 alone is
// too weak a signal for this (32 bits, not collision-resistant); pairing
// it with the wider xxhash64 fingerprint makes a false match practically
// impossible.
func (r *Reader) DuplicateEntries() ([][]int, error) {
	type key struct {
		crc32       uint32
		fingerprint uint64
	}

	groups := make(map[key][]int)
	order := make([]key, 0)

	for i := range r.entries {
		data, err := r.ReadFile(i)
		if err != nil {
			return nil, err
		}

		k := key{crc32: r.entries[i].CRC32, fingerprint: hash.SumBytes(data)}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	var dups [][]int
	for _, k := range order {
		if len(groups[k]) > 1 {
			dups = append(dups, groups[k])
		}
	}

	return dups, nil
}
