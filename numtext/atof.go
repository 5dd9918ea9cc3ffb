package numtext

import "strconv"

// ParseFloat32 parses a float32 from the ASCII prefix of s, accepting the
// grammar `[+-]?(digits(.digits)?|.digits)([eE][+-]?digits)?[fF]?`. It
// returns the parsed value and the number of bytes consumed from s. It
// never reads the process locale: the decimal point is always '.'.
//
// Delegates to strconv.ParseFloat on the matched substring, which guarantees
// correctly-rounded (0 ULP in practice, always within 1 ULP) results — the
// same accuracy bound spec.md requires relative to a C-locale strtod.
func ParseFloat32(s string) (value float32, consumed int, ok bool) {
	n := matchFloatPrefix(s)
	if n == 0 {
		return 0, 0, false
	}

	text := s[:n]
	// Trailing 'f'/'F' suffix is consumed but ignored by strconv.
	trimmed := text
	if len(trimmed) > 0 && (trimmed[len(trimmed)-1] == 'f' || trimmed[len(trimmed)-1] == 'F') {
		trimmed = trimmed[:len(trimmed)-1]
	}

	v, err := strconv.ParseFloat(trimmed, 32)
	if err != nil {
		return 0, 0, false
	}

	return float32(v), n, true
}

// matchFloatPrefix returns the length of the longest prefix of s matching
// the float grammar, or 0 if s doesn't start with a valid float.
func matchFloatPrefix(s string) int {
	i := 0
	n := len(s)

	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digitsStart := i
	for i < n && isDigit(s[i]) {
		i++
	}
	intDigits := i - digitsStart

	fracDigits := 0
	if i < n && s[i] == '.' {
		i++
		fracStart := i
		for i < n && isDigit(s[i]) {
			i++
		}
		fracDigits = i - fracStart
	}

	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < n && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
		// else: no digits after 'e' — the exponent marker is not
		// consumed, i is left at the end of the mantissa.
	}

	if i < n && (s[i] == 'f' || s[i] == 'F') {
		i++
	}

	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
