package render

import "github.com/deepteams/jxl/internal/imageplane"

// Save is the terminal stage spec.md §4.7 names: it packs final
// float32 samples into the caller-provided output byte buffer as 8-bit
// values, the SaveStage role ("writes the final pixel
// samples into an output buffer").
type Save struct {
	Out    []byte
	Stride int
}

func (Save) Name() string { return "Save" }
func (Save) Border() int  { return 0 }

// clamp01 clamps v to [0, 1].
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ProcessInPlace packs img's samples into s.Out as 8-bit values,
// leaving img unmodified in the pipeline's return value.
func (s Save) ProcessInPlace(img *imageplane.Image[float32]) {
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		dst := s.Out[y*s.Stride:]
		for x, v := range row {
			dst[x] = uint8(clamp01(v)*255 + 0.5)
		}
	}
}
