package vardct

import "errors"

// ErrTransformID is returned when a raw_transform_id's low 7 bits do
// not index a valid HfTransformType.
var ErrTransformID = errors.New("vardct: invalid transform id")

// HfTransformType enumerates the 27 DCT/transform variants spec.md
// §4.6 and §GLOSSARY name: "27 values covering DCT 8..256, identity,
// corner-DCT AFV0..3, 2x2/4x4, rectangular DCTs".
type HfTransformType int

const numTransformTypes = 27

// coveredBlocksX and coveredBlocksY are the two 27-entry tables
// spec.md §GLOSSARY specifies verbatim for "Covered blocks": the
// multi-block footprint, in 8x8-block units, of each HfTransformType.
var coveredBlocksX = [numTransformTypes]int{
	1, 1, 1, 1, 2, 4, 1, 2, 1, 4, 2, 4, 1, 1, 1, 1, 1, 1, 8, 4, 8, 16, 8, 16, 32, 16, 32,
}

var coveredBlocksY = [numTransformTypes]int{
	1, 1, 1, 1, 2, 4, 2, 1, 4, 1, 4, 2, 1, 1, 1, 1, 1, 1, 8, 8, 4, 16, 16, 8, 32, 32, 16,
}

// CoveredBlocksX returns the horizontal 8x8-block footprint of t.
func CoveredBlocksX(t HfTransformType) int { return coveredBlocksX[t] }

// CoveredBlocksY returns the vertical 8x8-block footprint of t.
func CoveredBlocksY(t HfTransformType) int { return coveredBlocksY[t] }

// rawTransformFirstBlockBit is the high bit of raw_transform_id,
// spec.md §4.6: "high bit indicates 'first block of a multi-block
// transform'".
const rawTransformFirstBlockBit = 1 << 7

// DecodeRawTransformID splits a raw_transform_id byte into its
// first-block flag and HfTransformType, validating the low 7 bits
// index one of the 27 declared variants.
func DecodeRawTransformID(raw uint8) (firstBlock bool, t HfTransformType, err error) {
	id := int(raw &^ rawTransformFirstBlockBit)
	if id >= numTransformTypes {
		return false, 0, ErrTransformID
	}
	return raw&rawTransformFirstBlockBit != 0, HfTransformType(id), nil
}

// TransformMap is the per-block transform assignment for one frame's
// VarDCT plane, spec.md §4.6's `transform_map`.
type TransformMap struct {
	Width, Height int // in 8x8-block units
	RawIDs        []uint8
}

// NewTransformMap allocates a zeroed transform map of the given block
// dimensions.
func NewTransformMap(blocksWide, blocksHigh int) TransformMap {
	return TransformMap{Width: blocksWide, Height: blocksHigh, RawIDs: make([]uint8, blocksWide*blocksHigh)}
}

// At returns the decoded (firstBlock, type) pair at block (bx, by).
func (m TransformMap) At(bx, by int) (bool, HfTransformType, error) {
	return DecodeRawTransformID(m.RawIDs[by*m.Width+bx])
}

// Set stores a raw_transform_id at block (bx, by).
func (m TransformMap) Set(bx, by int, raw uint8) {
	m.RawIDs[by*m.Width+bx] = raw
}
