// Package vardct implements the JPEG XL VarDCT subdecoder: quantizer
// parameters, per-channel LF quantization factors, the color
// correlation map, the block context map, the transform map, and the
// edge-preserving-filter sigma image.
//
// Field-read shapes are grounded on the same 2-bit-selector-quad and
// Bits(n)+k coders internal/headers/schema.go builds for the bitstream
// header set; the small indexed-table lookup pattern for the block
// context map is grounded on the teacher's ColorCache
// (internal/lossless/colorcache.go), generalized from a hash-addressed
// ARGB cache to a directly-indexed context-id table.
package vardct

import (
	"errors"

	"github.com/deepteams/jxl/internal/headers"
)

// ErrQuantizerParams is returned when a decoded QuantizerParams value
// falls outside spec.md §4.6's required ranges.
var ErrQuantizerParams = errors.New("vardct: invalid quantizer parameters")

// QuantizerParams holds the global and LF quantization scale, spec.md
// §4.6: "global_scale in [1, 65536+?], quant_lf in [1, ...] via 2-bit-
// selector quads".
type QuantizerParams struct {
	GlobalScale uint32
	QuantLF     uint32
}

// Validate checks the documented ranges.
func (q QuantizerParams) Validate() error {
	if q.GlobalScale < 1 {
		return ErrQuantizerParams
	}
	if q.QuantLF < 1 {
		return ErrQuantizerParams
	}
	return nil
}

// globalScaleBranches implements the selector quad for global_scale:
// small values are read directly, larger ranges widen the bit count,
// the same escalating-width shape internal/headers uses for Size.
var globalScaleBranches = [4]headers.U2SelectorBranch{
	headers.BitsPlus(11, 1),
	headers.BitsPlus(11, 2049),
	headers.BitsPlus(12, 4097),
	headers.BitsPlus(16, 8193),
}

var quantLFBranches = [4]headers.U2SelectorBranch{
	headers.Const(16),
	headers.BitsPlus(5, 1),
	headers.BitsPlus(8, 1),
	headers.BitsPlus(16, 1),
}

// DecodeQuantizerParams reads a QuantizerParams from br.
func DecodeQuantizerParams(br headers.BitSource) (QuantizerParams, error) {
	gs, err := headers.ReadU2Selector(br, globalScaleBranches)
	if err != nil {
		return QuantizerParams{}, err
	}
	qlf, err := headers.ReadU2Selector(br, quantLFBranches)
	if err != nil {
		return QuantizerParams{}, err
	}
	q := QuantizerParams{GlobalScale: gs, QuantLF: qlf}
	if err := q.Validate(); err != nil {
		return QuantizerParams{}, err
	}
	return q, nil
}

// LfQuantFactors holds the three per-channel (X, Y, B) low-frequency
// quantization step sizes, spec.md §4.6.
type LfQuantFactors struct {
	X, Y, B float32
}

// DefaultLfQuantFactors are the fixed defaults spec.md §4.6 names:
// 1/4096, 1/512, 1/256.
var DefaultLfQuantFactors = LfQuantFactors{X: 1.0 / 4096, Y: 1.0 / 512, B: 1.0 / 256}

// minLfQuantFactor is the documented floor on explicitly-coded factors.
const minLfQuantFactor = 1e-8

// DecodeLfQuantFactors reads a leading "all default" bit; if false,
// reads three factors as floats/128, each clamped to a minimum of 1e-8,
// spec.md §4.6.
func DecodeLfQuantFactors(br headers.BitSource) (LfQuantFactors, error) {
	allDefault, err := headers.AllDefault(br)
	if err != nil {
		return LfQuantFactors{}, err
	}
	if allDefault {
		return DefaultLfQuantFactors, nil
	}
	read := func() (float32, error) {
		raw, err := br.Read(16)
		if err != nil {
			return 0, err
		}
		v := float32(raw) / 128
		if v < minLfQuantFactor {
			v = minLfQuantFactor
		}
		return v, nil
	}
	x, err := read()
	if err != nil {
		return LfQuantFactors{}, err
	}
	y, err := read()
	if err != nil {
		return LfQuantFactors{}, err
	}
	b, err := read()
	if err != nil {
		return LfQuantFactors{}, err
	}
	return LfQuantFactors{X: x, Y: y, B: b}, nil
}
