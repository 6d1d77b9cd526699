package vardct

import "errors"

// ErrBlockContextMap is returned when a decoded BlockContextMap
// violates spec.md §4.6's cardinality invariants.
var ErrBlockContextMap = errors.New("vardct: invalid block context map")

// maxLFContexts and maxContexts are spec.md §3's BlockContextMap
// invariants: num_lf_contexts*(num_qf_thresholds+1) <= 64, and the
// resulting number of distinct context clusters <= 16.
const (
	maxLFContexts = 64
	maxContexts   = 16
)

// numOrders is the number of distinct transform-order classes the
// block context map indexes over (one per covered-blocks table entry
// family); the context map's size is 3*NUM_ORDERS*num_lf_contexts*
// (num_qf_thresholds+1), spec.md §4.6.
const numOrders = len(coveredBlocksX)

// BlockContextMap holds the decoded per-channel LF thresholds, the QF
// thresholds, and the flattened context-id table spec.md §4.6
// describes: "a context map of size 3*NUM_ORDERS*num_lf_contexts*
// (num_qf_thresholds+1) with at most 16 contexts".
type BlockContextMap struct {
	LFThresholds  [3][]int32 // per channel, each at most 15 entries
	QFThresholds  []int32
	ContextMap    []uint8 // len == 3*numOrders*numLFContexts*(len(QFThresholds)+1)
	NumLFContexts int
	NumContexts   int
}

// numQFContexts returns the number of quantization-field buckets the
// QF thresholds divide the range into: one more than the number of
// threshold cut points.
func (m *BlockContextMap) numQFContexts() int {
	return len(m.QFThresholds) + 1
}

// Validate checks spec.md §3's cardinality invariants and the "no
// holes" property DecodeBlockContextMap already enforces by
// construction via the same cluster-ID sequence convention
// internal/entropy/contextmap.go uses.
func (m *BlockContextMap) Validate() error {
	for _, th := range m.LFThresholds {
		if len(th) > 15 {
			return ErrBlockContextMap
		}
	}
	if m.NumLFContexts*m.numQFContexts() > maxLFContexts {
		return ErrBlockContextMap
	}
	if m.NumContexts > maxContexts {
		return ErrBlockContextMap
	}
	want := 3 * numOrders * m.NumLFContexts * m.numQFContexts()
	if len(m.ContextMap) != want {
		return ErrBlockContextMap
	}
	return nil
}

// Context looks up the context ID for a given channel (0=X,1=Y,2=B),
// transform order class, LF bucket, and QF bucket — the direct-index
// lookup pattern generalized from the teacher's ColorCache.Lookup
// (internal/lossless/colorcache.go), here addressing a context-id table
// instead of a hashed ARGB cache.
func (m *BlockContextMap) Context(channel, order, lfBucket, qfBucket int) uint8 {
	idx := ((channel*numOrders+order)*m.NumLFContexts+lfBucket)*m.numQFContexts() + qfBucket
	return m.ContextMap[idx]
}

// LFBucket returns which threshold bucket a decoded LF value for the
// given channel falls into: the count of thresholds it exceeds.
func (m *BlockContextMap) LFBucket(channel int, value int32) int {
	th := m.LFThresholds[channel]
	bucket := 0
	for _, t := range th {
		if value > t {
			bucket++
		}
	}
	return bucket
}

// QFBucket returns which QF threshold bucket value falls into.
func (m *BlockContextMap) QFBucket(value int32) int {
	bucket := 0
	for _, t := range m.QFThresholds {
		if value > t {
			bucket++
		}
	}
	return bucket
}

// CombinedLFBucket mixes the three per-channel LF buckets (each from
// LFBucket) into the single combined index Context's lfBucket
// parameter expects, via fixed mixed-radix composition over the three
// channels' bucket counts. NumLFContexts is defined as the product of
// (len(threshold)+1) across channels to match this composition.
func (m *BlockContextMap) CombinedLFBucket(xBucket, yBucket, bBucket int) int {
	nx := len(m.LFThresholds[0]) + 1
	ny := len(m.LFThresholds[1]) + 1
	return xBucket + nx*(yBucket+ny*bBucket)
}
