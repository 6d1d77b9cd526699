package entropy

import "errors"

// ErrFinalState is returned by Reader.CheckFinalState when the
// underlying ANS register did not land on its canonical terminal
// value (spec.md §4.4's check_final_state()). Bits left unread in the
// stream are not examined.
var ErrFinalState = errors.New("entropy: reader did not reach final state")

// cluster is one decoded entropy model: either a canonical prefix
// table or an ANS distribution, plus the hybrid-uint config used to
// expand its tokens into full integers.
type cluster struct {
	isANS  bool
	prefix *Table
	ans    *ansTable
	hybrid HybridUintConfig
}

// Histograms is the decoded, context-addressable entropy model built
// once per entropy-coded section (spec.md §4.4's Histograms type): a
// context-to-cluster map plus one cluster per distinct histogram, and
// the optional LZ77 configuration shared across all clusters.
type Histograms struct {
	ContextMap []uint8
	Clusters   []cluster
	LZ77       LZ77Config
}

// NewHistograms bundles a decoded context map and cluster set. The
// clusters slice is indexed by cluster ID (the values found in
// contextMap), not by context directly.
func NewHistograms(contextMap []uint8, numHistograms int) *Histograms {
	return &Histograms{ContextMap: contextMap, Clusters: make([]cluster, numHistograms)}
}

// SetPrefixCluster installs a canonical-Huffman cluster at clusterID.
func (h *Histograms) SetPrefixCluster(clusterID int, table *Table, hybrid HybridUintConfig) {
	h.Clusters[clusterID] = cluster{prefix: table, hybrid: hybrid}
}

// SetANSCluster installs an ANS cluster at clusterID.
func (h *Histograms) SetANSCluster(clusterID int, table *ansTable, hybrid HybridUintConfig) {
	h.Clusters[clusterID] = cluster{isANS: true, ans: table, hybrid: hybrid}
}

// Reader is a stateful decoder bound to a Histograms and a BitReader
// for the span of a single entropy-coded pass, per spec.md §4.4.
// Readers are cheap: construct one per section and discard it after
// CheckFinalState.
type Reader struct {
	h          *Histograms
	ansState   uint32
	ansStarted bool
	symbolsRd  int
}

// NewReader creates a Reader bound to h. If h contains any ANS
// clusters, the 32-bit initial ANS register is read immediately from
// br, per spec.md §4.4.
func NewReader(h *Histograms, br BitReader) (*Reader, error) {
	r := &Reader{h: h}
	for _, c := range h.Clusters {
		if c.isANS {
			state, err := InitANSState(br)
			if err != nil {
				return nil, err
			}
			r.ansState = state
			r.ansStarted = true
			break
		}
	}
	return r, nil
}

func (r *Reader) clusterFor(context int) cluster {
	id := 0
	if context < len(r.h.ContextMap) {
		id = int(r.h.ContextMap[context])
	}
	return r.h.Clusters[id]
}

// Read decodes one unsigned value via the cluster assigned to context.
func (r *Reader) Read(br BitReader, context int) (uint32, error) {
	c := r.clusterFor(context)
	var token uint32
	var err error
	if c.isANS {
		var sym uint16
		sym, err = c.ans.Symbol(&r.ansState, br)
		token = uint32(sym)
	} else {
		p, ok := br.(peeker)
		if !ok && !c.prefix.singleton {
			return 0, errors.New("entropy: prefix cluster needs a bit reader with Peek")
		}
		var sym uint16
		sym, err = c.prefix.Decode(p)
		token = uint32(sym)
	}
	if err != nil {
		return 0, err
	}
	r.symbolsRd++
	return c.hybrid.Decode(token, br)
}

// ReadSigned decodes one signed value via the cluster assigned to
// cluster (spec.md §4.4's read_signed, using unpack_signed).
func (r *Reader) ReadSigned(br BitReader, clusterIdx int) (int32, error) {
	u, err := r.Read(br, clusterIdx)
	if err != nil {
		return 0, err
	}
	return UnpackSigned(u), nil
}

// CheckFinalState verifies that the ANS register shared by all of this
// Reader's ANS clusters ended on the canonical terminal value, and
// returns ErrFinalState if it did not. Readers bound only to prefix
// clusters always pass. Bits left unread in the stream are not checked.
func (r *Reader) CheckFinalState() error {
	if !r.ansStarted {
		return nil
	}
	if err := CheckFinalANSState(r.ansState); err != nil {
		return ErrFinalState
	}
	return nil
}
