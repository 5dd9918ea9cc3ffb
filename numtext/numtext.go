// Package numtext implements fast, locale-independent conversion between
// ASCII decimal text and integers/floats, matching spec.md's C2/C3
// components: minimal-representation integer-to-text, and a float parser
// within 1 ULP of the C-locale strtod.
package numtext

import "math"

// AppendUint32 appends the minimal decimal representation of v to dst: no
// leading zeros, "0" for zero.
func AppendUint32(dst []byte, v uint32) []byte {
	return appendUint64(dst, uint64(v))
}

// AppendInt32 appends the minimal decimal representation of v, with a
// single leading '-' for negatives.
func AppendInt32(dst []byte, v int32) []byte {
	return appendInt64(dst, int64(v))
}

// AppendUint64 appends the minimal decimal representation of v.
func AppendUint64(dst []byte, v uint64) []byte {
	return appendUint64(dst, v)
}

// AppendInt64 appends the minimal decimal representation of v.
func AppendInt64(dst []byte, v int64) []byte {
	return appendInt64(dst, v)
}

func appendUint64(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}

	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}

	return append(dst, tmp[i:]...)
}

func appendInt64(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		// Handle math.MinInt64 without overflowing negation.
		if v == math.MinInt64 {
			return appendUint64(dst, uint64(math.MaxInt64)+1)
		}

		return appendUint64(dst, uint64(-v))
	}

	return appendUint64(dst, uint64(v))
}

// Uint32 formats v as a newly allocated decimal string.
func Uint32(v uint32) string { return string(AppendUint32(nil, v)) }

// Int32 formats v as a newly allocated decimal string.
func Int32(v int32) string { return string(AppendInt32(nil, v)) }

// Uint64 formats v as a newly allocated decimal string.
func Uint64(v uint64) string { return string(AppendUint64(nil, v)) }

// Int64 formats v as a newly allocated decimal string.
func Int64(v int64) string { return string(AppendInt64(nil, v)) }

// ULPDiff returns the number of representable float32 values between a and
// b, used by tests asserting fast_atof's 1-ULP accuracy bound.
func ULPDiff(a, b float32) uint32 {
	return absInt64(orderedBits(a) - orderedBits(b))
}

// orderedBits maps a float32's bit pattern to a monotonically increasing
// int64 so that adjacent floats (including across the zero and sign
// boundaries) differ by exactly 1.
func orderedBits(f float32) int64 {
	const signBit int32 = -2147483648 // 0x80000000 as int32 two's complement

	bits := int32(math.Float32bits(f))
	if bits < 0 {
		bits = signBit - bits
	}

	return int64(bits)
}

func absInt64(d int64) uint32 {
	if d < 0 {
		d = -d
	}

	return uint32(d)
}
