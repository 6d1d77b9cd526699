package modular

import "testing"

func TestPredictBasicModes(t *testing.T) {
	nb := Neighborhood{W: 10, N: 20, NW: 5, NE: 30}

	cases := []struct {
		mode Predictor
		want int32
	}{
		{PredictorZero, 0},
		{PredictorWest, 10},
		{PredictorNorth, 20},
		{PredictorNorthWest, 5},
		{PredictorNorthEast, 30},
		{PredictorAverage, 15},
	}
	for _, c := range cases {
		if got := Predict(c.mode, nb); got != c.want {
			t.Errorf("Predict(%v, %+v) = %d, want %d", c.mode, nb, got, c.want)
		}
	}
}

func TestClampedGradientClampsHigh(t *testing.T) {
	got := clampedGradient(10, 20, 5)
	if got != 20 {
		t.Fatalf("clampedGradient(10,20,5) = %d, want 20 (grad=25 clamped to max(w,n)=20)", got)
	}
}

func TestClampedGradientClampsLow(t *testing.T) {
	got := clampedGradient(5, 10, 20)
	if got != 5 {
		t.Fatalf("clampedGradient(5,10,20) = %d, want 5 (grad=-5 clamped to min(w,n)=5)", got)
	}
}

func TestClampedGradientExact(t *testing.T) {
	// w=10, n=20, nw=15 -> grad = 10+20-15 = 15, inside [10,20], unclamped.
	got := clampedGradient(10, 20, 15)
	if got != 15 {
		t.Fatalf("clampedGradient(10,20,15) = %d, want 15", got)
	}
}
