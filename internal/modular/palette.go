package modular

import "errors"

// ErrPaletteIndex is returned when a decoded index channel references
// a palette entry outside [0, numColors).
var ErrPaletteIndex = errors.New("modular: palette index out of range")

// DecodePaletteLUT reads a numColors x numChannels lookup table, one
// raw value at a time via next, with each channel delta-coded from the
// previous color's value in that same channel — generalizing the WebP
// decoder's expandColorMap (which delta-codes each ARGB byte lane
// against the previous palette entry) from 8-bit lanes to full int32
// channel samples.
func DecodePaletteLUT(numColors, numChannels int, next func() (int32, error)) ([][]int32, error) {
	lut := make([][]int32, numColors)
	prev := make([]int32, numChannels)
	for i := range lut {
		row := make([]int32, numChannels)
		for c := 0; c < numChannels; c++ {
			delta, err := next()
			if err != nil {
				return nil, err
			}
			row[c] = prev[c] + delta
			prev[c] = row[c]
		}
		lut[i] = row
	}
	return lut, nil
}

// ApplyPalette expands an index channel into numChannels output
// channels via lut, the inverse of the Palette meta-transform (spec.md
// §4.5): "replaces N channels with 1 index channel + palette LUT".
func ApplyPalette(index []int32, lut [][]int32, numChannels int) ([][]int32, error) {
	out := make([][]int32, numChannels)
	for c := range out {
		out[c] = make([]int32, len(index))
	}
	for i, idx := range index {
		if idx < 0 || int(idx) >= len(lut) {
			return nil, ErrPaletteIndex
		}
		row := lut[idx]
		for c := 0; c < numChannels; c++ {
			out[c][i] = row[c]
		}
	}
	return out, nil
}
