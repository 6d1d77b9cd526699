package frame

import (
	"github.com/deepteams/jxl/internal/entropy"
	"github.com/deepteams/jxl/internal/headers"
	"github.com/deepteams/jxl/internal/vardct"
)

// VarDCTMetadata bundles the per-frame VarDCT state spec.md §4.6 lists
// as "required sub-state": quantization, color correlation, the block
// context map, and the EPF sigma image. Reconstructing actual pixel
// samples from DCT coefficients (inverse-DCT basis application across
// 27 transform types) is outside what spec.md's VarDCT component
// describes — it names QuantizerParams/LfQuantFactors/
// ColorCorrelationParams/BlockContextMap/TransformMap/EPF-sigma as the
// subsystem's contract and stops there. This package decodes that
// metadata only: it reconstructs no VarDCT pixel plane, neither LF nor
// HF, and the jxl package rejects VarDCT frames with
// ErrUnsupportedEncoding.
type VarDCTMetadata struct {
	Quantizer        vardct.QuantizerParams
	LfQuant          vardct.LfQuantFactors
	ColorCorrelation vardct.ColorCorrelationParams
	BlockContextMap  *vardct.BlockContextMap
}

// DecodeVarDCTMetadata reads the fixed-shape portion of a VarDCT
// frame's global state, in the order spec.md §4.6 lists it.
func DecodeVarDCTMetadata(br headers.BitSource, readCluster func() (uint32, error), entropyBR entropy.BitReader) (*VarDCTMetadata, error) {
	q, err := vardct.DecodeQuantizerParams(br)
	if err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	lf, err := vardct.DecodeLfQuantFactors(br)
	if err != nil {
		return nil, err
	}
	cc, err := vardct.DecodeColorCorrelationParams(br)
	if err != nil {
		return nil, err
	}
	if err := cc.Validate(); err != nil {
		return nil, err
	}
	bcm, err := vardct.DecodeBlockContextMap(br, readCluster, entropyBR)
	if err != nil {
		return nil, err
	}
	return &VarDCTMetadata{Quantizer: q, LfQuant: lf, ColorCorrelation: cc, BlockContextMap: bcm}, nil
}

// DecodeTransformMap reads one raw_transform_id byte per 8x8 block
// across a widthBlocks x heightBlocks grid, spec.md §4.6's
// TransformMap ("per-block raw_transform_id; high bit indicates first
// block of a multi-block transform").
func DecodeTransformMap(br headers.BitSource, widthBlocks, heightBlocks int) (vardct.TransformMap, error) {
	tm := vardct.NewTransformMap(widthBlocks, heightBlocks)
	for by := 0; by < heightBlocks; by++ {
		for bx := 0; bx < widthBlocks; bx++ {
			raw, err := br.Read(8)
			if err != nil {
				return vardct.TransformMap{}, err
			}
			if _, _, err := vardct.DecodeRawTransformID(uint8(raw)); err != nil {
				return vardct.TransformMap{}, err
			}
			tm.Set(bx, by, uint8(raw))
		}
	}
	return tm, nil
}

// BuildSigmaImage computes the EPF sigma image for every first-block
// transform in tm, spec.md §4.6's EPF sigma formula.
func BuildSigmaImage(tm vardct.TransformMap, widthBlocks, heightBlocks int, quantScale, rawQuant, epfQuantMul float64, sharpness []int, epfSharpLUT []float64) *vardct.SigmaImage {
	sigma := vardct.NewSigmaImage(widthBlocks, heightBlocks)
	for by := 0; by < heightBlocks; by++ {
		for bx := 0; bx < widthBlocks; bx++ {
			firstBlock, t, err := tm.At(bx, by)
			if err != nil || !firstBlock {
				continue
			}
			s := 0
			if idx := by*widthBlocks + bx; idx < len(sharpness) {
				s = sharpness[idx]
			}
			sigma.FillFirstBlock(bx, by, t, quantScale, rawQuant, epfQuantMul, s, epfSharpLUT)
		}
	}
	sigma.ReplicateBorder()
	return sigma
}
