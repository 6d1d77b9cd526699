package frame

import "github.com/deepteams/jxl/internal/imageplane"

// BufferID indexes a buffer owned by an Arena.
type BufferID int

type bufferEntry struct {
	img       *imageplane.Image[int32]
	width     int
	height    int
	consumers int
}

// Arena is the producer/consumer DAG's backing store for
// ModularBufferInfo (spec.md §9: "Arena + index for Modular buffers").
// Transform steps (RCT/Squeeze/Palette) reference buffers by BufferID
// rather than holding pointers to each other, so the DAG has no cycles
// to break: a buffer is materialized lazily on first write and freed
// once every registered consumer has called MarkUsed.
type Arena struct {
	entries []bufferEntry
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc reserves a buffer slot of the given dimensions with the given
// number of expected consumers, and returns its ID. The backing image
// is not allocated until Materialize is first called.
func (a *Arena) Alloc(width, height, consumers int) BufferID {
	a.entries = append(a.entries, bufferEntry{width: width, height: height, consumers: consumers})
	return BufferID(len(a.entries) - 1)
}

// Materialize returns the buffer's backing image, allocating it on
// first use.
func (a *Arena) Materialize(id BufferID) *imageplane.Image[int32] {
	e := &a.entries[id]
	if e.img == nil {
		e.img = imageplane.New[int32](e.width, e.height)
	}
	return e.img
}

// MarkUsed records that one consumer has finished reading id. Once
// every expected consumer has called MarkUsed the backing image is
// dropped, matching spec.md §9's "freed by consumer counts".
func (a *Arena) MarkUsed(id BufferID) {
	e := &a.entries[id]
	if e.consumers > 0 {
		e.consumers--
	}
	if e.consumers == 0 {
		e.img = nil
	}
}

// Live reports whether id's backing image is still materialized (for
// tests and diagnostics).
func (a *Arena) Live(id BufferID) bool {
	return a.entries[id].img != nil
}
