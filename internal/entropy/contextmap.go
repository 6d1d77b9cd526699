package entropy

import "errors"

// ErrContextMapHoles is returned when a decoded context map's cluster
// IDs don't densely cover [0, numHistograms), per spec.md §4.4's
// "max(cluster_id)+1 == num_histograms" invariant.
var ErrContextMapHoles = errors.New("entropy: context map has holes")

// DecodeContextMap reads a sequence of numContexts cluster IDs (u8),
// optionally inverse-MTF'd, and returns it along with the number of
// distinct histogram clusters it references.
//
// When numContexts == 1 the map is trivially {0}. Otherwise the
// sequence itself is entropy-coded via readCluster (bound to whatever
// single-cluster Reader the caller constructed for this purpose, per
// spec.md §4.4), and a trailing 1-bit flag selects whether the decoded
// values must be passed through inverse-MTF before use.
func DecodeContextMap(numContexts int, readCluster func() (uint32, error), br BitReader) ([]uint8, int, error) {
	if numContexts == 1 {
		return []uint8{0}, 1, nil
	}

	clusterIDs := make([]uint8, numContexts)
	for i := range clusterIDs {
		v, err := readCluster()
		if err != nil {
			return nil, 0, err
		}
		clusterIDs[i] = uint8(v)
	}

	useMTF, err := readBits(br, 1)
	if err != nil {
		return nil, 0, err
	}
	if useMTF != 0 {
		inverseMTF(clusterIDs)
	}

	maxID := 0
	for _, id := range clusterIDs {
		if int(id) > maxID {
			maxID = int(id)
		}
	}
	numHistograms := maxID + 1
	seen := make([]bool, numHistograms)
	for _, id := range clusterIDs {
		seen[id] = true
	}
	for _, ok := range seen {
		if !ok {
			return nil, 0, ErrContextMapHoles
		}
	}
	return clusterIDs, numHistograms, nil
}

// inverseMTF undoes a move-to-front encoding in place: each value in
// vals is an index into a running front-biased symbol list, resolved
// back to the original symbol and then moved to the front of that list.
func inverseMTF(vals []uint8) {
	var table [256]uint8
	for i := range table {
		table[i] = uint8(i)
	}
	for i, v := range vals {
		idx := v
		sym := table[idx]
		copy(table[1:idx+1], table[0:idx])
		table[0] = sym
		vals[i] = sym
	}
}
