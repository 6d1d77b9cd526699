package vardct

// InvSigmaNum is the bit-exact constant spec.md §4.6 names for the EPF
// sigma computation: -1.1715728752538099024. Carried at float64
// precision through the computation below since the spec calls the
// value out as bit-exact.
const InvSigmaNum = -1.1715728752538099024

// SigmaPadding is the one-cell border replicated on each side of the
// sigma image, spec.md §4.6.
const SigmaPadding = 1

// SigmaImage is the per-block edge-preserving-filter strength map,
// spec.md §4.6: one 1/sigma value per 8x8 block, padded by
// SigmaPadding and with a replicated one-cell border.
type SigmaImage struct {
	Width, Height int // in 8x8-block units, excluding padding
	invSigma      []float32
	stride        int
}

// NewSigmaImage allocates a padded sigma image of the given unpadded
// block dimensions.
func NewSigmaImage(width, height int) *SigmaImage {
	stride := width + 2*SigmaPadding
	rows := height + 2*SigmaPadding
	return &SigmaImage{Width: width, Height: height, invSigma: make([]float32, stride*rows), stride: stride}
}

func (s *SigmaImage) indexOf(bx, by int) int {
	return (by+SigmaPadding)*s.stride + (bx + SigmaPadding)
}

// At returns 1/sigma for block (bx, by); bx/by may range over
// [-SigmaPadding, Width/Height+SigmaPadding) once ReplicateBorder has
// been called.
func (s *SigmaImage) At(bx, by int) float32 { return s.invSigma[s.indexOf(bx, by)] }

// set stores 1/sigma for an in-bounds block.
func (s *SigmaImage) set(bx, by int, invSigma float32) { s.invSigma[s.indexOf(bx, by)] = invSigma }

// sigmaCeiling is the clamp spec.md §4.6 applies before storing 1/sigma:
// "sigma = min(sigma_quant * rf.epf_sharp_lut[sharpness], -1e-4)".
const sigmaCeiling = -1e-4

// FillFirstBlock computes sigma_quant for one first-block transform
// and stores 1/sigma for each of its covered 8x8 blocks, spec.md §4.6:
//
//	sigma_quant = epfQuantMul / (quantScale * rawQuant * InvSigmaNum)
//	sigma = min(sigma_quant * epfSharpLUT[sharpness], -1e-4)
//	stored value = 1/sigma
func (s *SigmaImage) FillFirstBlock(bx, by int, t HfTransformType, quantScale, rawQuant, epfQuantMul float64, sharpness int, epfSharpLUT []float64) {
	sigmaQuant := epfQuantMul / (quantScale * rawQuant * InvSigmaNum)
	sigma := sigmaQuant * epfSharpLUT[sharpness]
	if sigma > sigmaCeiling {
		sigma = sigmaCeiling
	}
	invSigma := float32(1 / sigma)
	for dy := 0; dy < CoveredBlocksY(t); dy++ {
		for dx := 0; dx < CoveredBlocksX(t); dx++ {
			s.set(bx+dx, by+dy, invSigma)
		}
	}
}

// FillModular fills the entire sigma image with the scalar
// InvSigmaNum/epfSigmaForModular, spec.md §4.6's Modular-encoding path.
func (s *SigmaImage) FillModular(epfSigmaForModular float64) {
	v := float32(InvSigmaNum / epfSigmaForModular)
	for bx := 0; bx < s.Width; bx++ {
		for by := 0; by < s.Height; by++ {
			s.set(bx, by, v)
		}
	}
}

// ReplicateBorder copies the outermost real row/column into the
// SigmaPadding border cells on every side, spec.md §4.6: "Replicate
// one-cell border."
func (s *SigmaImage) ReplicateBorder() {
	for bx := 0; bx < s.Width; bx++ {
		s.set(bx, -1, s.At(bx, 0))
		s.set(bx, s.Height, s.At(bx, s.Height-1))
	}
	for by := -1; by <= s.Height; by++ {
		s.set(-1, by, s.At(0, by))
		s.set(s.Width, by, s.At(s.Width-1, by))
	}
}
