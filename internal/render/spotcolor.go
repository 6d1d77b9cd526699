package render

import "github.com/deepteams/jxl/internal/imageplane"

// SpotColorStage composites a spot-color extra channel onto a base
// channel; the jxl package's decode path does not add this stage,
// whatever Options.RenderSpotColors says. Follows the same
// in-place-stage shape as Gaborish/EPF; the blend itself is the
// standard alpha-over composite, the float-domain analogue of the
// teacher's ApplyAlphaMultiply family in internal/dsp/alpha_proc.go.
type SpotColorStage struct {
	Color *imageplane.Image[float32]
	Alpha *imageplane.Image[float32]
}

func (SpotColorStage) Name() string { return "SpotColor" }
func (SpotColorStage) Border() int  { return 0 }

func (s SpotColorStage) ProcessInPlace(img *imageplane.Image[float32]) {
	if s.Color == nil || s.Alpha == nil {
		return
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			a := s.Alpha.At(x, y)
			if a <= 0 {
				continue
			}
			if a > 1 {
				a = 1
			}
			base := img.At(x, y)
			img.Set(x, y, base*(1-a)+s.Color.At(x, y)*a)
		}
	}
}
