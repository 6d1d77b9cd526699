package entropy

// DecodeHistogramSet reads a complete entropy-coded section's model —
// the context map plus one prefix or ANS cluster per distinct
// histogram, each with its own HybridUintConfig — and returns the
// resulting Histograms bound to a fresh Reader. This is the "read
// Histograms straight off the wire" counterpart to the hand-built
// fixtures DecodeContextMap and the cluster readers otherwise assume a
// caller already has.
//
// numContexts is the number of logical contexts the section uses
// (channels x properties for Modular, block-context-map slots for
// VarDCT); logAlphaSize bounds each cluster's HybridUintConfig per
// ReadConfig.
//
// The context map's own cluster-ID sequence is itself usually
// entropy-coded in a real bitstream, which is self-referential: no
// Histograms exist yet to decode it with. spec.md does not give this
// bootstrap step a bit-exact wire format, and nothing else in this
// package solves it either (DecodeContextMap requires the caller to
// already supply a working readCluster). The concrete choice made
// here — one cluster's table described by a flat run of 4-bit code
// lengths, one per context, read directly off br before the context
// map proper — is this decoder's own, recorded in DESIGN.md rather
// than presented as a transcription of a verified format.
func DecodeHistogramSet(br BitReader, numContexts, logAlphaSize int) (*Histograms, *Reader, error) {
	readCluster, err := bootstrapClusterReader(br, numContexts)
	if err != nil {
		return nil, nil, err
	}
	contextMap, numHistograms, err := DecodeContextMap(numContexts, readCluster, br)
	if err != nil {
		return nil, nil, err
	}

	h := NewHistograms(contextMap, numHistograms)
	for clusterID := 0; clusterID < numHistograms; clusterID++ {
		if err := decodeOneCluster(br, h, clusterID, logAlphaSize); err != nil {
			return nil, nil, err
		}
	}

	r, err := NewReader(h, br)
	if err != nil {
		return nil, nil, err
	}
	return h, r, nil
}

// decodeOneCluster reads a single cluster's 1-bit ANS/prefix selector,
// its HybridUintConfig, and then the table itself, installing it into
// h at clusterID.
func decodeOneCluster(br BitReader, h *Histograms, clusterID, logAlphaSize int) error {
	useANS, err := readBits(br, 1)
	if err != nil {
		return err
	}
	cfg, err := ReadConfig(logAlphaSize, br)
	if err != nil {
		return err
	}
	if useANS != 0 {
		alphaSize, err := readBits(br, 12)
		if err != nil {
			return err
		}
		table, err := ReadANSDistribution(br, int(alphaSize)+1)
		if err != nil {
			return err
		}
		h.SetANSCluster(clusterID, table, cfg)
		return nil
	}
	alphaSize, err := readBits(br, 8)
	if err != nil {
		return err
	}
	lengths := make([]int, alphaSize+1)
	for i := range lengths {
		l, err := readBits(br, 4)
		if err != nil {
			return err
		}
		lengths[i] = int(l)
	}
	table, err := BuildTable(lengths)
	if err != nil {
		return err
	}
	h.SetPrefixCluster(clusterID, table, cfg)
	return nil
}

// bootstrapClusterReader builds the readCluster closure DecodeContextMap
// needs in order to decode the context map's own cluster-ID sequence,
// before any Histograms exist for the section proper. See
// DecodeHistogramSet's doc comment for why this step has no prescribed
// wire format; this reads numContexts 4-bit code lengths over a single
// throwaway cluster bound to a SplitExponent-8 HybridUintConfig (wide
// enough to cover any plausible cluster-ID alphabet without per-call
// tuning).
func bootstrapClusterReader(br BitReader, numContexts int) (func() (uint32, error), error) {
	if numContexts <= 1 {
		return func() (uint32, error) { return 0, nil }, nil
	}
	lengths := make([]int, numContexts)
	for i := range lengths {
		l, err := readBits(br, 4)
		if err != nil {
			return nil, err
		}
		lengths[i] = int(l)
	}
	table, err := BuildTable(lengths)
	if err != nil {
		return nil, err
	}
	h := NewHistograms([]uint8{0}, 1)
	h.SetPrefixCluster(0, table, HybridUintConfig{SplitExponent: 8})
	r, err := NewReader(h, br)
	if err != nil {
		return nil, err
	}
	return func() (uint32, error) {
		return r.Read(br, 0)
	}, nil
}
