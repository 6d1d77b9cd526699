package frame

import (
	"testing"

	"github.com/deepteams/jxl/internal/bitio"
	"github.com/deepteams/jxl/internal/modular"
)

// TestDecodeModularFrameEndToEnd drives DecodeModularFrame over a
// hand-written bitstream covering every stage it wires together: an
// empty meta-transform list, a bootstrapped single-cluster entropy
// model, a one-leaf context tree, and two single-pixel channels. Every
// token in the stream decodes to the unsigned value 1 under a
// zero-valued HybridUintConfig (split_token == 1, so token 1 takes the
// zero-extra-bits branch of HybridUintConfig.Decode — see
// singletonAlwaysOneReader in modular_frame_test.go for the same
// trick applied to a hand-built Histograms), so no step beyond the
// ones enumerated below consumes any bits.
func TestDecodeModularFrameEndToEnd(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0, 8) // DecodeModularTransforms: step count = 0

	// bootstrapClusterReader(br, numContexts=6): one 4-bit code length
	// per context; only context 0's length is nonzero, so the bootstrap
	// table is a singleton that always yields cluster ID 0.
	bootstrapLengths := []int{1, 0, 0, 0, 0, 0}
	for _, l := range bootstrapLengths {
		w.writeBits(uint64(l), 4)
	}
	w.writeBits(0, 1) // context map useMTF = false

	// The section's one cluster: prefix table, all-default config
	// (logAlphaSize == 0 so split_exponent reads zero bits and must
	// equal 0), alphabet size 2, singleton on symbol 1.
	w.writeBits(0, 1) // useANS = false
	w.writeBits(1, 8) // alphabet_size - 1 == 1 -> 2 symbols
	w.writeBits(0, 4) // symbol 0 code length (unused)
	w.writeBits(1, 4) // symbol 1 code length (singleton)

	br := bitio.NewReader(w.bytes())

	cs := &modular.ChannelSet{Channels: []modular.Channel{
		modular.NewChannel(1, 1, 0, 0),
		modular.NewChannel(1, 1, 0, 0),
	}}

	planes, err := DecodeModularFrame(br, br, cs, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(planes) != 2 {
		t.Fatalf("got %d planes, want 2", len(planes))
	}
	for i, p := range planes {
		if p.Width != 1 || p.Height != 1 {
			t.Fatalf("plane %d dims = %dx%d", i, p.Width, p.Height)
		}
		if got := p.Row(0)[0]; got != -1 {
			t.Fatalf("plane %d pixel = %v, want -1", i, got)
		}
	}
}
