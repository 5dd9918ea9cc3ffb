package compress

import "fmt"

// Compressor compresses a ZIP entry's uncompressed payload into the bytes
// that are written after its Local File Header.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor, recovering an entry's original bytes
// from the payload stored in the archive.
//
// Thread Safety: Decompressor implementations must be safe for concurrent use
// or document their thread safety requirements clearly.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities for a
// single ZIP compression Method.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports size and timing information for one entry's
// compression pass, useful when the gmio CLI prints archive summaries.
type CompressionStats struct {
	Method Method

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for the given ZIP
// compression Method.
func CreateCodec(method Method, target string) (Codec, error) {
	switch method {
	case MethodStore:
		return NewNoOpCompressor(), nil
	case MethodDeflate:
		return NewDeflateCompressor(), nil
	case MethodZstd:
		return NewZstdCompressor(), nil
	case MethodLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression method: %s", target, method)
	}
}

var builtinCodecs = map[Method]Codec{
	MethodStore:   NewNoOpCompressor(),
	MethodDeflate: NewDeflateCompressor(),
	MethodZstd:    NewZstdCompressor(),
	MethodLZ4:     NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression Method.
func GetCodec(method Method) (Codec, error) {
	if codec, ok := builtinCodecs[method]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression method: %s", method)
}
