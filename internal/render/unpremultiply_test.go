package render

import "testing"

func TestUnpremultiplyDivides(t *testing.T) {
	img := makeImage([][]float32{{0.25}})
	alpha := makeImage([][]float32{{0.5}})
	(UnpremultiplyStage{Alpha: alpha}).ProcessInPlace(img)
	if img.At(0, 0) != 0.5 {
		t.Fatalf("At(0,0) = %v, want 0.5", img.At(0, 0))
	}
}

func TestUnpremultiplyZeroAlphaForcesZero(t *testing.T) {
	img := makeImage([][]float32{{0.7}})
	alpha := makeImage([][]float32{{0}})
	(UnpremultiplyStage{Alpha: alpha}).ProcessInPlace(img)
	if img.At(0, 0) != 0 {
		t.Fatalf("At(0,0) = %v, want 0", img.At(0, 0))
	}
}

func TestUnpremultiplyFullAlphaIsNoop(t *testing.T) {
	img := makeImage([][]float32{{0.42}})
	alpha := makeImage([][]float32{{1}})
	(UnpremultiplyStage{Alpha: alpha}).ProcessInPlace(img)
	if img.At(0, 0) != 0.42 {
		t.Fatalf("At(0,0) = %v, want unchanged 0.42", img.At(0, 0))
	}
}

func TestUnpremultiplyNilIsNoop(t *testing.T) {
	img := makeImage([][]float32{{0.42}})
	(UnpremultiplyStage{}).ProcessInPlace(img)
	if img.At(0, 0) != 0.42 {
		t.Fatalf("At(0,0) = %v, want unchanged 0.42", img.At(0, 0))
	}
}
