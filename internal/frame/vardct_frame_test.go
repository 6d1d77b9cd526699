package frame

import (
	"testing"

	"github.com/deepteams/jxl/internal/bitio"
	"github.com/deepteams/jxl/internal/vardct"
)

func TestDecodeVarDCTMetadataAllDefaults(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0, 2)  // global_scale selector -> branch 0 (Bits(11)+1)
	w.writeBits(0, 11) // global_scale raw -> 0+1 = 1
	w.writeBits(0, 2)  // quant_lf selector -> branch 0 (Const(16))
	w.writeBits(1, 1)  // LfQuantFactors all_default
	w.writeBits(1, 1)  // ColorCorrelationParams all_default
	for c := 0; c < 4; c++ {
		w.writeBits(0, 4) // LF/QF threshold counts, all empty
	}
	w.writeBits(0, 1) // block context map useMTF = false

	br := bitio.NewReader(w.bytes())
	readCluster := func() (uint32, error) { return 0, nil }

	meta, err := DecodeVarDCTMetadata(br, readCluster, br)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Quantizer.GlobalScale != 1 || meta.Quantizer.QuantLF != 16 {
		t.Fatalf("got %+v", meta.Quantizer)
	}
	if meta.LfQuant != vardct.DefaultLfQuantFactors {
		t.Fatalf("got %+v", meta.LfQuant)
	}
	if meta.ColorCorrelation != vardct.DefaultColorCorrelationParams {
		t.Fatalf("got %+v", meta.ColorCorrelation)
	}
	if meta.BlockContextMap.NumContexts != 1 || meta.BlockContextMap.NumLFContexts != 1 {
		t.Fatalf("got %+v", meta.BlockContextMap)
	}
}

func TestDecodeTransformMapReadsRawIDsAndRejectsInvalid(t *testing.T) {
	w := &bitWriter{}
	for i := 0; i < 4; i++ {
		w.writeBits(0x80, 8) // first-block flag set, type 0
	}
	br := bitio.NewReader(w.bytes())
	tm, err := DecodeTransformMap(br, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	for by := 0; by < 2; by++ {
		for bx := 0; bx < 2; bx++ {
			first, typ, err := tm.At(bx, by)
			if err != nil || !first || typ != 0 {
				t.Fatalf("block (%d,%d): first=%v typ=%v err=%v", bx, by, first, typ, err)
			}
		}
	}

	w2 := &bitWriter{}
	w2.writeBits(200, 8) // low 7 bits (72) is not a valid transform id
	br2 := bitio.NewReader(w2.bytes())
	if _, err := DecodeTransformMap(br2, 1, 1); err != vardct.ErrTransformID {
		t.Fatalf("want ErrTransformID, got %v", err)
	}
}

func TestBuildSigmaImageMatchesUnitInputs(t *testing.T) {
	w := &bitWriter{}
	for i := 0; i < 4; i++ {
		w.writeBits(0x80, 8)
	}
	br := bitio.NewReader(w.bytes())
	tm, err := DecodeTransformMap(br, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	sharpness := []int{0, 0, 0, 0}
	epfSharpLUT := []float64{1.0}
	sigma := BuildSigmaImage(tm, 2, 2, 1, 1, 1, sharpness, epfSharpLUT)

	want := float32(vardct.InvSigmaNum)
	for by := 0; by < 2; by++ {
		for bx := 0; bx < 2; bx++ {
			if got := sigma.At(bx, by); got != want {
				t.Fatalf("sigma(%d,%d) = %v, want %v", bx, by, got, want)
			}
		}
	}
	// ReplicateBorder copies the outermost real row/column outward.
	if got := sigma.At(-1, 0); got != want {
		t.Fatalf("border sigma(-1,0) = %v, want %v", got, want)
	}
}
