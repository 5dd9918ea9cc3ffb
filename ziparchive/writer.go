package ziparchive

import (
	"github.com/fougue-go/gmio/compress"
	"github.com/fougue-go/gmio/endian"
	"github.com/fougue-go/gmio/errs"
	gmiostream "github.com/fougue-go/gmio/stream"
)

// zip64DataDescriptorSize is the data descriptor size when it carries the
// optional 4-byte signature and 8-byte sizes (signature + crc32 + 8 + 8).
const zip64DataDescriptorSize = 24

// versionNeeded values (APPNOTE §4.4.3): 2.0 for plain deflate/store
// entries, 4.5 once Zip64 fields are in play.
const (
	versionNeededDefault = 20
	versionNeededZip64   = 45
)

// centralRecord captures everything Close needs to emit one Central
// Directory Header, resolved only after the entry's payload has been
// written and its real sizes are known.
type centralRecord struct {
	name              string
	method            compress.Method
	feature           FeatureVersion
	crc32             uint32
	compressedSize    int64
	uncompressedSize  int64
	localHeaderOffset int64
}

// Writer emits a ZIP archive one entry at a time: AddFile for each
// member, then Close to write the central directory and
// end-of-central-directory records. WriteSingleFile wraps this for the
// common single-entry case named in spec.md §4.11.
type Writer struct {
	s      gmiostream.Stream
	engine endian.EndianEngine
	offset int64

	records []centralRecord
	closed  bool
}

// NewWriter creates a Writer emitting to s starting at its current
// position.
func NewWriter(s gmiostream.Stream) (*Writer, error) {
	offset, err := s.Tell()
	if err != nil {
		return nil, errs.Wrap(errs.StreamError, err, "ziparchive: failed to read initial stream position")
	}

	return &Writer{s: s, engine: endian.GetLittleEndianEngine(), offset: offset}, nil
}

func (w *Writer) write(buf []byte) error {
	n, err := gmiostream.WriteFull(w.s, buf)
	w.offset += int64(n)
	if err != nil {
		return errs.Wrap(errs.StreamShortWrite, err, "ziparchive: stream write failed")
	}

	return nil
}

// AddFile compresses data with method, writes its Local File Header
// (general-purpose bit 3 set), the compressed payload, and a trailing
// data descriptor, then records a pending Central Directory Header entry
// for Close to emit. feature is upgraded to Zip64 automatically if any
// resulting size or the entry's offset would otherwise collide with a
// sentinel value, regardless of what the caller requested.
func (w *Writer) AddFile(name string, data []byte, method compress.Method, feature FeatureVersion) error {
	if w.closed {
		return errs.New(errs.Unknown, "ziparchive: writer already closed")
	}

	codec, err := compress.CreateCodec(method, name)
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return err
	}

	crc := ChecksumIEEE(data)
	localOffset := w.offset
	compressedSize := int64(len(compressed))
	uncompressedSize := int64(len(data))

	if feature == Zip64 || needsZip64(compressedSize, uncompressedSize, localOffset) {
		feature = Zip64
	}

	if err := w.writeLocalFileHeader(name, method, feature, uncompressedSize, compressedSize); err != nil {
		return err
	}

	if len(compressed) > 0 {
		if err := w.write(compressed); err != nil {
			return err
		}
	}

	if err := w.writeDataDescriptor(crc, compressedSize, uncompressedSize, feature); err != nil {
		return err
	}

	w.records = append(w.records, centralRecord{
		name:              name,
		method:            method,
		feature:           feature,
		crc32:             crc,
		compressedSize:    compressedSize,
		uncompressedSize:  uncompressedSize,
		localHeaderOffset: localOffset,
	})

	return nil
}

func (w *Writer) writeLocalFileHeader(name string, method compress.Method, feature FeatureVersion, uncompressedSize, compressedSize int64) error {
	nameBytes := []byte(name)

	var extra []byte
	sizeField := uint32(0)
	versionNeeded := uint16(versionNeededDefault)

	if feature == Zip64 {
		versionNeeded = versionNeededZip64
		sizeField = sentinel32
		extra = buildZip64ExtraLFH(w.engine, uncompressedSize, compressedSize)
	}

	hdr := make([]byte, localFileHeaderSize)
	w.engine.PutUint32(hdr[0:4], sigLocalFileHeader)
	w.engine.PutUint16(hdr[4:6], versionNeeded)
	w.engine.PutUint16(hdr[6:8], generalPurposeBit3)
	w.engine.PutUint16(hdr[8:10], uint16(method))
	w.engine.PutUint16(hdr[10:12], 0) // mod time: unmodeled, always zero
	w.engine.PutUint16(hdr[12:14], 0) // mod date: unmodeled, always zero
	w.engine.PutUint32(hdr[14:18], 0) // crc32: follows in data descriptor
	w.engine.PutUint32(hdr[18:22], sizeField)
	w.engine.PutUint32(hdr[22:26], sizeField)
	w.engine.PutUint16(hdr[26:28], uint16(len(nameBytes)))
	w.engine.PutUint16(hdr[28:30], uint16(len(extra)))

	if err := w.write(hdr); err != nil {
		return err
	}
	if err := w.write(nameBytes); err != nil {
		return err
	}

	return w.write(extra)
}

func (w *Writer) writeDataDescriptor(crc uint32, compressedSize, uncompressedSize int64, feature FeatureVersion) error {
	if feature == Zip64 {
		buf := make([]byte, zip64DataDescriptorSize)
		w.engine.PutUint32(buf[0:4], sigDataDescriptor)
		w.engine.PutUint32(buf[4:8], crc)
		w.engine.PutUint64(buf[8:16], uint64(compressedSize))
		w.engine.PutUint64(buf[16:24], uint64(uncompressedSize))

		return w.write(buf)
	}

	buf := make([]byte, dataDescriptorSize)
	w.engine.PutUint32(buf[0:4], crc)
	w.engine.PutUint32(buf[4:8], uint32(compressedSize))
	w.engine.PutUint32(buf[8:12], uint32(uncompressedSize))

	return w.write(buf)
}

// Close writes the Central Directory and End Of Central Directory
// records for every entry added so far. After Close the Writer must not
// be used again.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	centralDirOffset := w.offset
	anyZip64 := false

	for _, rec := range w.records {
		if rec.feature == Zip64 {
			anyZip64 = true
		}
		if err := w.writeCentralDirHeader(rec); err != nil {
			return err
		}
	}

	centralDirSize := w.offset - centralDirOffset
	recordCount := len(w.records)

	needsEOCD64 := anyZip64 ||
		recordCount >= sentinel16 ||
		centralDirSize >= sentinel32 ||
		centralDirOffset >= sentinel32

	if needsEOCD64 {
		if err := w.writeZip64EOCD(recordCount, centralDirSize, centralDirOffset); err != nil {
			return err
		}
	}

	return w.writeEOCD(recordCount, centralDirSize, centralDirOffset, needsEOCD64)
}

func (w *Writer) writeCentralDirHeader(rec centralRecord) error {
	nameBytes := []byte(rec.name)

	sizeField := uint32(0)
	offsetField := uint32(0)
	versionNeeded := uint16(versionNeededDefault)

	var extra []byte
	if rec.feature == Zip64 {
		versionNeeded = versionNeededZip64
		sizeField = sentinel32
		offsetField = sentinel32
		extra = buildZip64ExtraCDH(w.engine, rec.uncompressedSize, rec.compressedSize, rec.localHeaderOffset)
	} else {
		sizeField = uint32(rec.compressedSize)
		offsetField = uint32(rec.localHeaderOffset)
	}

	hdr := make([]byte, centralDirHeaderSize)
	w.engine.PutUint32(hdr[0:4], sigCentralDirHeader)
	w.engine.PutUint16(hdr[4:6], versionNeeded) // version made by
	w.engine.PutUint16(hdr[6:8], versionNeeded) // version needed to extract
	w.engine.PutUint16(hdr[8:10], generalPurposeBit3)
	w.engine.PutUint16(hdr[10:12], uint16(rec.method))
	w.engine.PutUint16(hdr[12:14], 0) // mod time
	w.engine.PutUint16(hdr[14:16], 0) // mod date
	w.engine.PutUint32(hdr[16:20], rec.crc32)
	if rec.feature == Zip64 {
		w.engine.PutUint32(hdr[20:24], sentinel32)
		w.engine.PutUint32(hdr[24:28], sentinel32)
	} else {
		w.engine.PutUint32(hdr[20:24], sizeField)
		w.engine.PutUint32(hdr[24:28], uint32(rec.uncompressedSize))
	}
	w.engine.PutUint16(hdr[28:30], uint16(len(nameBytes)))
	w.engine.PutUint16(hdr[30:32], uint16(len(extra)))
	w.engine.PutUint16(hdr[32:34], 0) // file comment length
	w.engine.PutUint16(hdr[34:36], 0) // disk number start
	w.engine.PutUint16(hdr[36:38], 0) // internal file attributes
	w.engine.PutUint32(hdr[38:42], 0) // external file attributes
	w.engine.PutUint32(hdr[42:46], offsetField)

	if err := w.write(hdr); err != nil {
		return err
	}
	if err := w.write(nameBytes); err != nil {
		return err
	}

	return w.write(extra)
}

func (w *Writer) writeZip64EOCD(recordCount int, centralDirSize, centralDirOffset int64) error {
	locatorOffset := w.offset

	rec := make([]byte, zip64EOCDRecordSize)
	w.engine.PutUint32(rec[0:4], sigZip64EOCDRecord)
	w.engine.PutUint64(rec[4:12], uint64(zip64EOCDRecordSize-12)) // size of remaining record
	w.engine.PutUint16(rec[12:14], versionNeededZip64)            // version made by
	w.engine.PutUint16(rec[14:16], versionNeededZip64)            // version needed to extract
	w.engine.PutUint32(rec[16:20], 0)                             // number of this disk
	w.engine.PutUint32(rec[20:24], 0)                             // disk with central directory start
	w.engine.PutUint64(rec[24:32], uint64(recordCount))           // entries on this disk
	w.engine.PutUint64(rec[32:40], uint64(recordCount))           // entries total
	w.engine.PutUint64(rec[40:48], uint64(centralDirSize))
	w.engine.PutUint64(rec[48:56], uint64(centralDirOffset))
	if err := w.write(rec); err != nil {
		return err
	}

	locator := make([]byte, zip64EOCDLocatorSize)
	w.engine.PutUint32(locator[0:4], sigZip64EOCDLocator)
	w.engine.PutUint32(locator[4:8], 0) // disk with the Zip64 EOCD record
	w.engine.PutUint64(locator[8:16], uint64(locatorOffset))
	w.engine.PutUint32(locator[16:20], 1) // total number of disks

	return w.write(locator)
}

func (w *Writer) writeEOCD(recordCount int, centralDirSize, centralDirOffset int64, zip64 bool) error {
	recordField := uint16(recordCount)
	sizeField := uint32(centralDirSize)   
	offsetField := uint32(centralDirOffset)

	if zip64 {
		recordField = sentinel16
		sizeField = sentinel32
		offsetField = sentinel32
	}

	eocd := make([]byte, eocdSize)
	w.engine.PutUint32(eocd[0:4], sigEOCD)
	w.engine.PutUint16(eocd[4:6], 0) // number of this disk
	w.engine.PutUint16(eocd[6:8], 0) // disk with central directory start
	w.engine.PutUint16(eocd[8:10], recordField)
	w.engine.PutUint16(eocd[10:12], recordField)
	w.engine.PutUint32(eocd[12:16], sizeField)
	w.engine.PutUint32(eocd[16:20], offsetField)
	w.engine.PutUint16(eocd[20:22], 0) // comment length

	return w.write(eocd)
}

// WriteSingleFile is the single-entry convenience emitter named in
// spec.md §4.11: compress data with method, write its Local File Header,
// payload, data descriptor, Central Directory Header, and End Of Central
// Directory record, in one call.
func WriteSingleFile(s gmiostream.Stream, name string, data []byte, method compress.Method, feature FeatureVersion) error {
	w, err := NewWriter(s)
	if err != nil {
		return err
	}

	if err := w.AddFile(name, data, method, feature); err != nil {
		return err
	}

	return w.Close()
}
