package gmio

import (
	"fmt"

	"github.com/fougue-go/gmio/internal/options"
	"github.com/fougue-go/gmio/membuf"
	"github.com/fougue-go/gmio/sstream"
	"github.com/fougue-go/gmio/stlmodel"
)

// ProgressFunc reports (trianglesDone, trianglesTotal) during a Read or
// Write call, at most once per 50ms plus a final report at completion. trianglesTotal is 0 when the total
// isn't known in advance (e.g. reading ASCII from a stream of unknown size).
type ProgressFunc func(done, total uint32)

// Options configures Read/Write/ReadFile/WriteFile. The zero value is not
// directly usable; construct with NewOptions and With... functions, which
// apply spec.md's documented defaults and validate eagerly.
type Options struct {
	format         stlmodel.Format
	byteOrder      stlmodel.ByteOrder
	floatFormat    sstream.FloatFormat
	floatPrecision int
	solidName      string
	taskProgress   ProgressFunc
	memblock       *membuf.Memblock
}

// Option configures an Options via With... constructors below.
type Option = options.Option[*Options]

// NewOptions builds an Options from opts, starting from spec.md's
// documented defaults: format Auto (auto-detect on read, Binary on
// write), byte order little-endian, float format Scientific with
// precision 9 (§4.9's "enough for round-trip of binary32"), empty solid
// name, no progress callback.
func NewOptions(opts ...Option) (*Options, error) {
	o := &Options{
		format:         stlmodel.Unknown,
		byteOrder:      stlmodel.LittleEndian,
		floatFormat:    sstream.Scientific,
		floatPrecision: 9,
	}

	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	return o, nil
}

// WithFormat selects Ascii or Binary explicitly. Passing stlmodel.Unknown
// restores auto-detection (Read) / binary (Write), the default.
func WithFormat(f stlmodel.Format) Option {
	return options.NoError(func(o *Options) { o.format = f })
}

// WithByteOrder selects little- or big-endian binary triangle encoding.
func WithByteOrder(bo stlmodel.ByteOrder) Option {
	return options.New(func(o *Options) error {
		switch bo {
		case stlmodel.LittleEndian, stlmodel.BigEndian:
			o.byteOrder = bo
			return nil
		default:
			return fmt.Errorf("gmio: invalid byte order: %v", bo)
		}
	})
}

// WithFloatFormat selects Decimal, Scientific, or ShortestDecimal ASCII
// float rendering.
func WithFloatFormat(f sstream.FloatFormat) Option {
	return options.NoError(func(o *Options) { o.floatFormat = f })
}

// WithFloatPrecision sets the ASCII float precision; must be in [1,9].
func WithFloatPrecision(precision int) Option {
	return options.New(func(o *Options) error {
		if precision < 1 || precision > 9 {
			return fmt.Errorf("gmio: float precision %d out of range [1,9]", precision)
		}
		o.floatPrecision = precision

		return nil
	})
}

// WithSolidName sets the ASCII "solid"/"endsolid" name written by Write.
func WithSolidName(name string) Option {
	return options.NoError(func(o *Options) { o.solidName = name })
}

// WithTaskProgress installs a progress callback, throttled by
// stlio.ProgressReporter's minimum report interval.
func WithTaskProgress(fn ProgressFunc) Option {
	return options.NoError(func(o *Options) { o.taskProgress = fn })
}

// WithMemblock supplies the scratch buffer Read/Write batch through,
// instead of acquiring one from membuf.DefaultFactory.
func WithMemblock(mb *membuf.Memblock) Option {
	return options.NoError(func(o *Options) { o.memblock = mb })
}
