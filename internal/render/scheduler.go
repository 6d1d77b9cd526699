package render

import (
	"runtime"
	"sync"

	"github.com/deepteams/jxl/internal/imageplane"
)

// GroupSize is the default square group edge length the scheduler
// drives one group at a time, matching the frame header's group_dim
// default (spec.md §4.3's FrameHeader.GroupDim).
const GroupSize = 256

// minGroupsForParallel is the group-row-count threshold below which
// fanning out workers costs more than it saves.
const minGroupsForParallel = 4

// Scheduler assembles a shared stage list and drives it one output
// group at a time, spec.md §4.7: "Bottom-up assembles shared stage
// list; drives one output group at a time."
type Scheduler struct {
	Pipeline  Pipeline
	GroupSize int
}

// NewScheduler builds a Scheduler with the given pipeline and the
// default group size.
func NewScheduler(p Pipeline) *Scheduler {
	return &Scheduler{Pipeline: p, GroupSize: GroupSize}
}

// Run assumes every stage in s.Pipeline preserves resolution (true of
// Gaborish/EPF/Convert*); InOutStage upsamplers are driven separately
// per channel by the frame dispatcher before groups reach here, since
// their shift changes the group geometry itself.
//
// Run walks img group by group, running the scheduler's pipeline over a
// copy of each group's sub-image independently, so each stage works on
// one group's buffer rather than the whole frame (spec.md §4.7's
// low-memory goal); the assembled output is one full-frame image. With
// enough group rows and more than one CPU, bands of group rows run
// concurrently.
func (s *Scheduler) Run(img *imageplane.Image[float32]) *imageplane.Image[float32] {
	gs := s.GroupSize
	if gs <= 0 {
		gs = GroupSize
	}
	out := imageplane.New[float32](img.Width, img.Height)

	var groupRows []int
	for gy := 0; gy < img.Height; gy += gs {
		groupRows = append(groupRows, gy)
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > 1 && len(groupRows) >= minGroupsForParallel {
		rowsPerWorker := len(groupRows) / numWorkers
		if rowsPerWorker == 0 {
			rowsPerWorker = 1
		}
		var wg sync.WaitGroup
		for wstart := 0; wstart < len(groupRows); wstart += rowsPerWorker {
			wend := wstart + rowsPerWorker
			if wend > len(groupRows) || wstart+rowsPerWorker*2 > len(groupRows) {
				wend = len(groupRows)
			}
			wg.Add(1)
			go func(rows []int) {
				defer wg.Done()
				s.runGroupRows(img, out, gs, rows)
			}(groupRows[wstart:wend])
			if wend == len(groupRows) {
				break
			}
		}
		wg.Wait()
		return out
	}

	s.runGroupRows(img, out, gs, groupRows)
	return out
}

// runGroupRows drives every group whose top edge is in rows, writing
// each processed group directly into out. Distinct row bands never
// overlap, so concurrent callers over disjoint rows need no locking.
func (s *Scheduler) runGroupRows(img, out *imageplane.Image[float32], gs int, rows []int) {
	for _, gy := range rows {
		h := gs
		if gy+h > img.Height {
			h = img.Height - gy
		}
		for gx := 0; gx < img.Width; gx += gs {
			w := gs
			if gx+w > img.Width {
				w = img.Width - gx
			}
			group := imageplane.New[float32](w, h)
			for y := 0; y < h; y++ {
				srow := img.Row(gy + y)
				drow := group.Row(y)
				copy(drow, srow[gx:gx+w])
			}
			processed := s.Pipeline.Run(group)
			for y := 0; y < processed.Height && y < h; y++ {
				copy(out.Row(gy+y)[gx:gx+w], processed.Row(y)[:w])
			}
		}
	}
}
