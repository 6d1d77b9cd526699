package render

import "github.com/deepteams/jxl/internal/imageplane"

// OrientationStage applies one of the 8 EXIF-style orientations as a
// final coordinate remap before Save. Orientation is JPEG XL's
// orientation field, 1 (identity) through 8. This assembles the final
// raster from a decoded plane the way the teacher's buildNRGBA/
// buildYCbCr assemble an image.Image from separately decoded planes,
// generalized here to a coordinate permutation instead of a
// chroma-upsampling merge.
type OrientationStage struct {
	Orientation int
}

func (OrientationStage) Name() string { return "Orientation" }
func (OrientationStage) Border() int  { return 0 }
func (OrientationStage) Shift() int   { return 0 }

// ProcessInOut remaps src into a freshly allocated image. Orientations
// 5-8 transpose the axes, so the output dimensions may swap relative to
// src.
func (o OrientationStage) ProcessInOut(src *imageplane.Image[float32]) *imageplane.Image[float32] {
	switch o.Orientation {
	case 0, 1:
		out := imageplane.New[float32](src.Width, src.Height)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(x, y, src.At(x, y))
			}
		}
		return out
	case 2: // mirror horizontal
		out := imageplane.New[float32](src.Width, src.Height)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(src.Width-1-x, y, src.At(x, y))
			}
		}
		return out
	case 3: // rotate 180
		out := imageplane.New[float32](src.Width, src.Height)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(src.Width-1-x, src.Height-1-y, src.At(x, y))
			}
		}
		return out
	case 4: // mirror vertical
		out := imageplane.New[float32](src.Width, src.Height)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(x, src.Height-1-y, src.At(x, y))
			}
		}
		return out
	case 5: // transpose
		out := imageplane.New[float32](src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(y, x, src.At(x, y))
			}
		}
		return out
	case 6: // rotate 90 CW
		out := imageplane.New[float32](src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(src.Height-1-y, x, src.At(x, y))
			}
		}
		return out
	case 7: // transverse
		out := imageplane.New[float32](src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(src.Height-1-y, src.Width-1-x, src.At(x, y))
			}
		}
		return out
	case 8: // rotate 90 CCW
		out := imageplane.New[float32](src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(y, src.Width-1-x, src.At(x, y))
			}
		}
		return out
	default:
		out := imageplane.New[float32](src.Width, src.Height)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				out.Set(x, y, src.At(x, y))
			}
		}
		return out
	}
}
