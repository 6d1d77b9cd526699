package vardct

import (
	"testing"

	"github.com/deepteams/jxl/internal/bitio"
)

func TestBlockContextMapBucketsAndLookup(t *testing.T) {
	m := &BlockContextMap{
		LFThresholds:  [3][]int32{{10}, {}, {}},
		QFThresholds:  []int32{5, 15},
		NumLFContexts: 2,
	}
	total := 3 * numOrders * m.NumLFContexts * m.numQFContexts()
	m.ContextMap = make([]uint8, total)
	m.ContextMap[0] = 7
	m.NumContexts = 8
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if b := m.LFBucket(0, 5); b != 0 {
		t.Fatalf("LFBucket(0,5) = %d, want 0", b)
	}
	if b := m.LFBucket(0, 15); b != 1 {
		t.Fatalf("LFBucket(0,15) = %d, want 1", b)
	}
	if b := m.QFBucket(20); b != 2 {
		t.Fatalf("QFBucket(20) = %d, want 2", b)
	}
	if got := m.Context(0, 0, 0, 0); got != 7 {
		t.Fatalf("Context(0,0,0,0) = %d, want 7", got)
	}
}

func TestBlockContextMapValidateRejectsTooManyContexts(t *testing.T) {
	m := &BlockContextMap{NumLFContexts: 1, ContextMap: make([]uint8, 3*numOrders), NumContexts: 20}
	if err := m.Validate(); err != ErrBlockContextMap {
		t.Fatalf("want ErrBlockContextMap, got %v", err)
	}
}

func TestCombinedLFBucketMixedRadix(t *testing.T) {
	m := &BlockContextMap{LFThresholds: [3][]int32{{1}, {1, 2}, {}}}
	// nx=2, ny=3: combined = x + 2*(y + 3*b)
	got := m.CombinedLFBucket(1, 2, 0)
	if got != 1+2*2 {
		t.Fatalf("CombinedLFBucket(1,2,0) = %d, want %d", got, 1+2*2)
	}
}

func TestDecodeBlockContextMapTrivial(t *testing.T) {
	w := &bitWriter{}
	// three channel threshold counts: 0,0,0
	w.writeBits(0, 4)
	w.writeBits(0, 4)
	w.writeBits(0, 4)
	// QF threshold count: 0
	w.writeBits(0, 4)
	// the context-map cluster-ID sequence's trailing MTF flag, read
	// from the same entropy-coded bit source as the cluster IDs.
	w.writeBits(0, 1)
	br := bitio.NewReader(w.bytes())

	readCluster := func() (uint32, error) {
		return 0, nil
	}

	m, err := DecodeBlockContextMap(br, readCluster, br)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumContexts != 1 {
		t.Fatalf("got NumContexts=%d, want 1", m.NumContexts)
	}
	for _, id := range m.ContextMap {
		if id != 0 {
			t.Fatalf("expected every cluster id to be 0 in the trivial map")
		}
	}
}
