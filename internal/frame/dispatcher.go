package frame

import (
	"github.com/deepteams/jxl/internal/entropy"
	"github.com/deepteams/jxl/internal/headers"
	"github.com/deepteams/jxl/internal/imageplane"
	"github.com/deepteams/jxl/internal/modular"
)

// DecodeModularFrame decodes one Modular-encoded frame end to end: the
// meta-transform list, a bootstrapped entropy model for the group, the
// tree-predicted channel decode, the meta-transforms' inverse
// application, and the widening of each surviving channel into a
// float32 plane ready for render.Pipeline.
//
// numContexts and logAlphaSize size the bootstrapped entropy model
// (entropy.DecodeHistogramSet). A real bitstream derives both from the
// channel set's own per-channel, per-property context assignment rule,
// which spec.md describes only functionally ("a context tree ...
// selects a predictor and a context") and not as a closed formula;
// callers pass the values their frame header and channel layout imply.
func DecodeModularFrame(br headers.BitSource, entropyBR entropy.BitReader, cs *modular.ChannelSet, numContexts, logAlphaSize int) ([]*imageplane.Image[float32], error) {
	steps, err := DecodeModularTransforms(br)
	if err != nil {
		return nil, err
	}
	_, reader, err := entropy.DecodeHistogramSet(entropyBR, numContexts, logAlphaSize)
	if err != nil {
		return nil, err
	}
	if err := DecodeModularChannels(cs, reader, entropyBR); err != nil {
		return nil, err
	}

	// Palette LUT rows are themselves entropy-coded samples, read off
	// the same reader a Palette step's tree-predicted channel decode
	// just finished with. No teacher or pack source names which context
	// they're assigned, so this decoder reserves the last context slot
	// for them, documented in DESIGN.md alongside the transform list's
	// own invented wire format.
	paletteContext := numContexts - 1
	next := func() (int32, error) { return reader.ReadSigned(entropyBR, paletteContext) }
	if err := ApplyTransforms(cs, steps, next); err != nil {
		return nil, err
	}
	if err := reader.CheckFinalState(); err != nil {
		return nil, err
	}

	planes := make([]*imageplane.Image[float32], len(cs.Channels))
	for i, ch := range cs.Channels {
		if ch.Data == nil {
			continue
		}
		img := imageplane.New[float32](ch.Width, ch.Height)
		for y := 0; y < ch.Height; y++ {
			row := img.Row(y)
			for x := 0; x < ch.Width; x++ {
				row[x] = float32(ch.At(x, y))
			}
		}
		planes[i] = img
	}
	return planes, nil
}
