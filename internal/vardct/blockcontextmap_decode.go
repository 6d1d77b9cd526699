package vardct

import (
	"github.com/deepteams/jxl/internal/entropy"
	"github.com/deepteams/jxl/internal/headers"
)

// maxLFThresholdsPerChannel is spec.md §4.6's per-channel cap: "LF
// thresholds (3 channels, each <= 15 entries)".
const maxLFThresholdsPerChannel = 15

// decodeThresholds reads a count (0..max) followed by that many signed
// thresholds, the same Bits(n)+k-then-signed-values shape
// internal/headers uses for variable-length lists.
func decodeThresholds(br headers.BitSource, max int) ([]int32, error) {
	n, err := br.Read(4)
	if err != nil {
		return nil, err
	}
	if int(n) > max {
		return nil, ErrBlockContextMap
	}
	out := make([]int32, n)
	for i := range out {
		u, err := br.Read(16)
		if err != nil {
			return nil, err
		}
		out[i] = headers.UnpackSigned(uint32(u))
	}
	return out, nil
}

// DecodeBlockContextMap reads a full BlockContextMap: per-channel LF
// thresholds, QF thresholds, then the flattened cluster-ID sequence via
// entropy.DecodeContextMap, reusing the same cluster-map decode and
// "no holes" validation the Modular context map already relies on
// (spec.md §4.4 and §4.6 share one convention for context-cluster
// sequences).
func DecodeBlockContextMap(br headers.BitSource, readCluster func() (uint32, error), entropyBR entropy.BitReader) (*BlockContextMap, error) {
	m := &BlockContextMap{}
	for c := 0; c < 3; c++ {
		th, err := decodeThresholds(br, maxLFThresholdsPerChannel)
		if err != nil {
			return nil, err
		}
		m.LFThresholds[c] = th
	}
	qf, err := decodeThresholds(br, maxLFThresholdsPerChannel)
	if err != nil {
		return nil, err
	}
	m.QFThresholds = qf

	numLFContexts := 1
	for _, th := range m.LFThresholds {
		numLFContexts *= len(th) + 1
	}
	m.NumLFContexts = numLFContexts

	total := 3 * numOrders * numLFContexts * m.numQFContexts()
	ids, numContexts, err := entropy.DecodeContextMap(total, readCluster, entropyBR)
	if err != nil {
		return nil, err
	}
	m.ContextMap = ids
	m.NumContexts = numContexts

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
