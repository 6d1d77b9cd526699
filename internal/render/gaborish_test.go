package render

import (
	"math"
	"testing"

	"github.com/deepteams/jxl/internal/imageplane"
)

func makeImage(vals [][]float32) *imageplane.Image[float32] {
	h := len(vals)
	w := len(vals[0])
	im := imageplane.New[float32](w, h)
	for y, row := range vals {
		for x, v := range row {
			im.Set(x, y, v)
		}
	}
	return im
}

// TestGaborishCheckerboard reproduces spec.md §8 scenario 6 exactly:
// a 2x2 checkerboard filtered with weights=(0.115169525, 0.061248592)
// must produce [[0.20686048, 0.7931395],[0.7931395, 0.20686048]]
// within 1e-6.
func TestGaborishCheckerboard(t *testing.T) {
	img := makeImage([][]float32{{0, 1}, {1, 0}})
	g := Gaborish{W1: 0.115169525, W2: 0.061248592}
	g.ProcessInPlace(img)

	want := [][]float32{{0.20686048, 0.7931395}, {0.7931395, 0.20686048}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			got := img.At(x, y)
			if math.Abs(float64(got-want[y][x])) > 1e-6 {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, got, want[y][x])
			}
		}
	}
}

// TestGaborishConstantChannelIsIdentity exercises spec.md §8's general
// invariant: "given a constant channel, output equals input (kernel
// sums to 1)".
func TestGaborishConstantChannelIsIdentity(t *testing.T) {
	img := imageplane.New[float32](5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, 0.42)
		}
	}
	g := Gaborish{W1: 0.115169525, W2: 0.061248592}
	g.ProcessInPlace(img)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if math.Abs(float64(img.At(x, y)-0.42)) > 1e-6 {
				t.Fatalf("At(%d,%d) = %v, want 0.42", x, y, img.At(x, y))
			}
		}
	}
}
