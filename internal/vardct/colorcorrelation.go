package vardct

import (
	"errors"
	"math"

	"github.com/deepteams/jxl/internal/headers"
)

// ErrColorCorrelation is returned when a decoded ColorCorrelationParams
// value violates spec.md §4.6's constraints.
var ErrColorCorrelation = errors.New("vardct: invalid color correlation parameters")

// DefaultColorFactor is spec.md §4.6's default color_factor.
const DefaultColorFactor = 84

// ColorCorrelationParams holds the cross-channel color correlation
// state spec.md §4.6 describes: a shared color_factor, base X/B
// correlations stored as half-precision floats, and integer LF offsets.
type ColorCorrelationParams struct {
	ColorFactor    uint32
	BaseCorrelationX float32
	BaseCorrelationB float32
	YToXLF         int32
	YToBLF         int32
}

// DefaultColorCorrelationParams is the all-default configuration: X
// correlation 0, B correlation 1, and zero LF offsets.
var DefaultColorCorrelationParams = ColorCorrelationParams{
	ColorFactor:      DefaultColorFactor,
	BaseCorrelationX: 0,
	BaseCorrelationB: 1,
}

// Validate enforces spec.md §4.6: correlations finite and <= 4.0,
// offsets in [-128, 127].
func (c ColorCorrelationParams) Validate() error {
	if math.IsNaN(float64(c.BaseCorrelationX)) || math.IsInf(float64(c.BaseCorrelationX), 0) {
		return ErrColorCorrelation
	}
	if math.IsNaN(float64(c.BaseCorrelationB)) || math.IsInf(float64(c.BaseCorrelationB), 0) {
		return ErrColorCorrelation
	}
	if c.BaseCorrelationX > 4.0 || c.BaseCorrelationB > 4.0 {
		return ErrColorCorrelation
	}
	if c.YToXLF < -128 || c.YToXLF > 127 || c.YToBLF < -128 || c.YToBLF > 127 {
		return ErrColorCorrelation
	}
	return nil
}

// readF16 reads a 16-bit IEEE-754 half-precision float, the wire format
// spec.md §4.6 names for the base correlation fields.
func readF16(br headers.BitSource) (float32, error) {
	raw, err := br.Read(16)
	if err != nil {
		return 0, err
	}
	return f16ToF32(uint16(raw)), nil
}

// f16ToF32 converts an IEEE-754 binary16 bit pattern to float32.
func f16ToF32(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	var bits uint32
	switch {
	case exp == 0 && frac == 0:
		bits = sign << 31
	case exp == 0x1f:
		bits = (sign << 31) | (0xff << 23) | (frac << 13)
	case exp == 0:
		// subnormal: normalize
		e := -1
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3ff
		bits = (sign << 31) | uint32(int32(127+e+1)<<23) | (frac << 13)
	default:
		bits = (sign << 31) | ((exp - 15 + 127) << 23) | (frac << 13)
	}
	return math.Float32frombits(bits)
}

// readOffset reads an 8-bit two's-complement offset in [-128, 127].
func readOffset(br headers.BitSource) (int32, error) {
	raw, err := br.Read(8)
	if err != nil {
		return 0, err
	}
	return int32(int8(uint8(raw))), nil
}

// DecodeColorCorrelationParams reads a ColorCorrelationParams from br,
// guarded by a leading all_default bit.
func DecodeColorCorrelationParams(br headers.BitSource) (ColorCorrelationParams, error) {
	allDefault, err := headers.AllDefault(br)
	if err != nil {
		return ColorCorrelationParams{}, err
	}
	if allDefault {
		return DefaultColorCorrelationParams, nil
	}
	colorFactor, err := headers.ReadBitsPlus(br, 16, 1)
	if err != nil {
		return ColorCorrelationParams{}, err
	}
	baseX, err := readF16(br)
	if err != nil {
		return ColorCorrelationParams{}, err
	}
	baseB, err := readF16(br)
	if err != nil {
		return ColorCorrelationParams{}, err
	}
	ytox, err := readOffset(br)
	if err != nil {
		return ColorCorrelationParams{}, err
	}
	ytob, err := readOffset(br)
	if err != nil {
		return ColorCorrelationParams{}, err
	}
	c := ColorCorrelationParams{
		ColorFactor:      colorFactor,
		BaseCorrelationX: baseX,
		BaseCorrelationB: baseB,
		YToXLF:           ytox,
		YToBLF:           ytob,
	}
	if err := c.Validate(); err != nil {
		return ColorCorrelationParams{}, err
	}
	return c, nil
}
