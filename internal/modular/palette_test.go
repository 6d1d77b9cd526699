package modular

import "testing"

func TestPaletteLUTRoundTrip(t *testing.T) {
	deltas := [][]int32{
		{10, 20, 30},
		{-5, 0, 5},
		{1, 1, 1},
	}
	var i int
	next := func() (int32, error) {
		row := deltas[i/3]
		v := row[i%3]
		i++
		return v, nil
	}

	lut, err := DecodePaletteLUT(3, 3, next)
	if err != nil {
		t.Fatalf("DecodePaletteLUT: %v", err)
	}

	want := [][]int32{
		{10, 20, 30},
		{5, 20, 35},
		{6, 21, 36},
	}
	for c := range want {
		for k := range want[c] {
			if lut[c][k] != want[c][k] {
				t.Fatalf("lut[%d][%d] = %d, want %d", c, k, lut[c][k], want[c][k])
			}
		}
	}

	index := []int32{0, 2, 1, 0}
	out, err := ApplyPalette(index, lut, 3)
	if err != nil {
		t.Fatalf("ApplyPalette: %v", err)
	}
	for c := 0; c < 3; c++ {
		for i, idx := range index {
			if out[c][i] != lut[idx][c] {
				t.Fatalf("out[%d][%d] = %d, want %d", c, i, out[c][i], lut[idx][c])
			}
		}
	}
}

func TestApplyPaletteRejectsOutOfRange(t *testing.T) {
	lut := [][]int32{{1, 2}, {3, 4}}
	_, err := ApplyPalette([]int32{0, 5}, lut, 2)
	if err != ErrPaletteIndex {
		t.Fatalf("expected ErrPaletteIndex, got %v", err)
	}
}
