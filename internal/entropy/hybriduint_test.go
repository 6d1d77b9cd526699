package entropy

import (
	"testing"

	"github.com/deepteams/jxl/internal/bitio"
)

// bitWriter accumulates bits MSB-first into a byte slice, mirroring the
// packing bitio.Reader expects.
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) writeBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.bits = append(w.bits, (v>>uint(i))&1 != 0)
	}
}

func (w *bitWriter) bytes() []byte {
	out := make([]byte, (len(w.bits)+7)/8)
	for i, b := range w.bits {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// encodeAndDecode runs value through the reference Encode and then Decode,
// using a bitio.Reader fed by a bitWriter as the shared wire format.
func encodeAndDecode(t *testing.T, cfg HybridUintConfig, value uint32) uint32 {
	t.Helper()
	token, extra, nbits := cfg.Encode(value)
	w := &bitWriter{}
	w.writeBits(extra, nbits)
	r := bitio.NewReader(w.bytes())
	got, err := cfg.Decode(token, r)
	if err != nil {
		t.Fatalf("Decode(%d) for value %d: %v", token, value, err)
	}
	return got
}

func TestHybridUintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 3, 7, 8, 15, 16, 255, 256, 1000, 1 << 20, 1<<31 - 1}
	for se := 0; se <= 8; se++ {
		for msb := 0; msb <= se; msb++ {
			for lsb := 0; lsb <= se-msb; lsb++ {
				cfg := HybridUintConfig{SplitExponent: se, MSBInToken: msb, LSBInToken: lsb}
				if err := cfg.Validate(); err != nil {
					t.Fatalf("unexpected invalid config %+v: %v", cfg, err)
				}
				for _, v := range values {
					got := encodeAndDecode(t, cfg, v)
					if got != v {
						t.Fatalf("cfg=%+v value=%d: round trip got %d", cfg, v, got)
					}
				}
			}
		}
	}
}

func TestHybridUintDecodeBelowSplit(t *testing.T) {
	cfg := HybridUintConfig{SplitExponent: 4, MSBInToken: 2, LSBInToken: 1}
	r := bitio.NewReader(nil)
	got, err := cfg.Decode(5, r)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Fatalf("got %d, want 5 (token below split_token returns unchanged)", got)
	}
}

func TestHybridUintValidateRejectsOverflow(t *testing.T) {
	cfg := HybridUintConfig{SplitExponent: 4, MSBInToken: 3, LSBInToken: 3}
	if err := cfg.Validate(); err != ErrInvalidHybridUint {
		t.Fatalf("want ErrInvalidHybridUint for msb+lsb > split_exponent, got %v", err)
	}
}

func TestUnpackSignedPackSigned(t *testing.T) {
	cases := []int32{0, 1, -1, 2, -2, 1000, -1000}
	for _, v := range cases {
		u := PackSigned(v)
		got := UnpackSigned(u)
		if got != v {
			t.Fatalf("PackSigned/UnpackSigned(%d): got %d", v, got)
		}
	}
}

func TestReadConfigAllDefault(t *testing.T) {
	// split_exponent == log_alpha_size: no msb/lsb bits follow.
	logAlphaSize := 5
	w := &bitWriter{}
	w.writeBits(uint32(logAlphaSize), ceilLog2(logAlphaSize+1))
	r := bitio.NewReader(w.bytes())
	cfg, err := ReadConfig(logAlphaSize, r)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SplitExponent != logAlphaSize || cfg.MSBInToken != 0 || cfg.LSBInToken != 0 {
		t.Fatalf("got %+v", cfg)
	}
}

func TestReadConfigExplicitMSBLSB(t *testing.T) {
	logAlphaSize := 8
	se, msb, lsb := 6, 2, 1
	w := &bitWriter{}
	w.writeBits(uint32(se), ceilLog2(logAlphaSize+1))
	w.writeBits(uint32(msb), ceilLog2(se+1))
	w.writeBits(uint32(lsb), ceilLog2(se-msb+1))
	r := bitio.NewReader(w.bytes())
	cfg, err := ReadConfig(logAlphaSize, r)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SplitExponent != se || cfg.MSBInToken != msb || cfg.LSBInToken != lsb {
		t.Fatalf("got %+v, want se=%d msb=%d lsb=%d", cfg, se, msb, lsb)
	}
}
