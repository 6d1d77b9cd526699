package render

import "github.com/deepteams/jxl/internal/imageplane"

// Gaborish is the light post-DCT sharpening/unsharpening separable
// 3-tap filter spec.md §4.7 and §GLOSSARY describe: a 3x3 stencil with
// center weight 1, orthogonal (4-connected) neighbor weight W1, and
// diagonal neighbor weight W2, normalized by 1+4*W1+4*W2. Out-of-bounds
// taps replicate the nearest edge sample (clamp-to-edge border), the
// convention that reproduces spec.md §8's worked checkerboard example
// exactly.
type Gaborish struct {
	W1, W2 float32
}

func (Gaborish) Name() string { return "Gaborish" }
func (Gaborish) Border() int  { return 1 }

// clampIndex clamps i into [0, n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ProcessInPlace applies the Gaborish stencil to every sample of img,
// reading from a snapshot of the input so in-place application does not
// read already-filtered neighbors.
func (g Gaborish) ProcessInPlace(img *imageplane.Image[float32]) {
	norm := 1 + 4*g.W1 + 4*g.W2
	src := make([]float32, img.Width*img.Height)
	for y := 0; y < img.Height; y++ {
		copy(src[y*img.Width:(y+1)*img.Width], img.Row(y))
	}
	at := func(x, y int) float32 {
		return src[clampIndex(y, img.Height)*img.Width+clampIndex(x, img.Width)]
	}
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for x := 0; x < img.Width; x++ {
			orth := at(x-1, y) + at(x+1, y) + at(x, y-1) + at(x, y+1)
			diag := at(x-1, y-1) + at(x+1, y-1) + at(x-1, y+1) + at(x+1, y+1)
			center := at(x, y)
			row[x] = (center + g.W1*orth + g.W2*diag) / norm
		}
	}
}
