// Package render implements the JPEG XL streaming render pipeline: a
// chain of in-place and in/out stages operating on row buffers, driven
// by a group-by-group scheduler.
//
// The stage-interface-plus-concrete-kernel shape is grounded on
// spec.md §9's "Polymorphic render stages" design note, implemented the
// way the teacher separates small focused row-processing functions
// (internal/dsp's UpsampleLinePair family) from the caller that drives
// them row by row.
package render

import "github.com/deepteams/jxl/internal/imageplane"

// Stage is the capability interface every pipeline stage implements,
// spec.md §9: "a capability interface exposing uses_channel,
// input_type, output_type, init_local_state, process_row_chunk".
// Concrete stages additionally implement one of InPlaceStage or
// InOutStage below to declare their actual row transformation.
type Stage interface {
	Name() string
	// Border reports how many extra rows above/below (not pixels; this
	// pipeline processes whole channel planes rather than x-chunks,
	// since the decoder operates on fully materialized frame buffers)
	// this stage's kernel needs from its input.
	Border() int
}

// InPlaceStage mutates a channel's Image in place, spec.md §4.7.
type InPlaceStage interface {
	Stage
	ProcessInPlace(img *imageplane.Image[float32])
}

// InOutStage reads one image and produces a new one, possibly at a
// different resolution (upsampling stages set Shift > 0), spec.md §4.7.
type InOutStage interface {
	Stage
	// Shift is log2 of the output-to-input resolution ratio on each axis.
	Shift() int
	ProcessInOut(src *imageplane.Image[float32]) *imageplane.Image[float32]
}

// Pipeline runs an ordered list of stages over one channel's image.
type Pipeline struct {
	Stages []Stage
}

// Run executes every stage of p in order over img, threading each
// stage's output into the next. Stages are applied via whichever of
// InPlaceStage/InOutStage they implement.
func (p *Pipeline) Run(img *imageplane.Image[float32]) *imageplane.Image[float32] {
	cur := img
	for _, s := range p.Stages {
		switch st := s.(type) {
		case InPlaceStage:
			st.ProcessInPlace(cur)
		case InOutStage:
			cur = st.ProcessInOut(cur)
		}
	}
	return cur
}
