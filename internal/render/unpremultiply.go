package render

import "github.com/deepteams/jxl/internal/imageplane"

// UnpremultiplyStage divides a color channel by its alpha channel when
// Options.UnpremultiplyAlpha is set, the float-domain counterpart of
// the teacher's alphaGetScale(a, inverse=true)/alphaMult pair in
// internal/dsp/alpha_proc.go: alpha == 0 forces the channel to 0
// (avoiding a divide by zero) and alpha == 1 is a no-op, matching the
// teacher's early-exit for the all-opaque and all-transparent cases.
// Enforces the §8 boundary invariant 0 <= alpha <= 1 by clamping.
type UnpremultiplyStage struct {
	Alpha *imageplane.Image[float32]
}

func (UnpremultiplyStage) Name() string { return "Unpremultiply" }
func (UnpremultiplyStage) Border() int  { return 0 }

func (u UnpremultiplyStage) ProcessInPlace(img *imageplane.Image[float32]) {
	if u.Alpha == nil {
		return
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			a := u.Alpha.At(x, y)
			switch {
			case a <= 0:
				img.Set(x, y, 0)
			case a >= 1:
				// no-op
			default:
				img.Set(x, y, img.At(x, y)/a)
			}
		}
	}
}
