package render

import (
	"testing"

	"github.com/deepteams/jxl/internal/vardct"
)

func TestEPFConstantChannelIsIdentity(t *testing.T) {
	img := makeImage([][]float32{{0.5, 0.5}, {0.5, 0.5}})
	sigma := vardct.NewSigmaImage(1, 1)
	sigma.FillModular(1.0)
	e := EPF{Sigma: sigma, BlockSize: 8, NumSteps: 1}
	e.ProcessInPlace(img)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if img.At(x, y) != 0.5 {
				t.Fatalf("At(%d,%d) = %v, want 0.5 (constant input should be unchanged)", x, y, img.At(x, y))
			}
		}
	}
}

func TestEPFNilSigmaIsNoop(t *testing.T) {
	img := makeImage([][]float32{{1, 2}, {3, 4}})
	e := EPF{}
	e.ProcessInPlace(img)
	if img.At(0, 0) != 1 || img.At(1, 1) != 4 {
		t.Fatalf("EPF with nil sigma must be a no-op, got %v / %v", img.At(0, 0), img.At(1, 1))
	}
}
