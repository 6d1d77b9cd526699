package render

import "github.com/deepteams/jxl/internal/imageplane"

// ConvertU8F32 converts an 8-bit-sample plane (already widened to
// float32 with values in [0,255]) into normalized [0,1] float32
// samples, spec.md §4.7.
type ConvertU8F32 struct{}

func (ConvertU8F32) Name() string { return "ConvertU8F32" }
func (ConvertU8F32) Border() int  { return 0 }

func (ConvertU8F32) ProcessInPlace(img *imageplane.Image[float32]) {
	const scale = 1.0 / 255.0
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for x := range row {
			row[x] *= scale
		}
	}
}

// ConvertModularToF32 converts Modular-decoded integer samples (widened
// to float32) into normalized float32 samples, spec.md §4.7:
// "scale = 1/((1<<bps)-1)".
type ConvertModularToF32 struct {
	BitsPerSample int
}

func (ConvertModularToF32) Name() string { return "ConvertModularToF32" }
func (ConvertModularToF32) Border() int  { return 0 }

func (c ConvertModularToF32) ProcessInPlace(img *imageplane.Image[float32]) {
	scale := float32(1) / float32((uint32(1)<<uint(c.BitsPerSample))-1)
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for x := range row {
			row[x] *= scale
		}
	}
}
