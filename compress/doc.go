// Package compress provides compression and decompression codecs for ZIP
// entry payloads, keyed by the ZIP "compression method" field (APPNOTE.TXT
// section 4.4.5).
//
// # Overview
//
// Every entry in a ZIP (or Zip64) archive records a 2-byte compression
// method in its Local File Header and Central Directory Header. This
// package implements the methods the ziparchive package supports:
//
//   - Method 0 (Store): no compression
//   - Method 8 (Deflate): klauspost/compress/flate, the universal default
//   - Method 93 (Zstd): klauspost/compress/zstd, APPNOTE-registered
//   - Method 0x0101 (LZ4, private-use): pierrec/lz4/v4, for archives that
//     never need to leave this toolchain
//
// klauspost/compress/s2 is also available (S2Compressor) as a high-
// throughput codec for direct use; it has no registered ZIP method id, so
// GetCodec and CreateCodec never return it and the ziparchive package does
// not write or read S2 entries.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// GetCodec and CreateCodec resolve a Method to its Codec:
//
//	codec, err := compress.GetCodec(compress.MethodDeflate)
//	compressed, err := codec.Compress(entryBytes)
//	original, err := codec.Decompress(compressed)
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use; Zstd and LZ4
// pool their encoder/decoder state internally (sync.Pool) since both
// libraries document that reuse avoids repeated warmup allocation.
package compress
