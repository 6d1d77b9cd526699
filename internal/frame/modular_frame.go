package frame

import (
	"github.com/deepteams/jxl/internal/entropy"
	"github.com/deepteams/jxl/internal/modular"
)

// DecodeModularChannels fills every channel of cs with tree-predicted
// residual decode, spec.md §4.5: "For each Modular group and pass, the
// pixels are decoded by a tree-predicted residual scheme ... a context
// tree ... selects a predictor and a context". One tree is decoded up
// front and shared across all channels of the group, mirroring how a
// single Histograms/cluster-map governs an entire entropy-coded
// section.
func DecodeModularChannels(cs *modular.ChannelSet, r *entropy.Reader, br entropy.BitReader) error {
	tree, err := modular.DecodeTree(r, br)
	if err != nil {
		return err
	}
	for i := range cs.Channels {
		if cs.Channels[i].Data == nil {
			continue // freed by a prior Squeeze/Palette step, nothing to decode
		}
		if err := modular.DecodeChannel(cs.Channels[i], tree, r, br); err != nil {
			return err
		}
	}
	return nil
}
