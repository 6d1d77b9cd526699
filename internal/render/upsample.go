package render

import "github.com/deepteams/jxl/internal/imageplane"

// NearestNeighbourUpsample doubles resolution on both axes by sample
// replication, spec.md §4.7: "2x both axes". This is the degenerate,
// filter-free sibling of the teacher's fancy chroma UpsampleLinePair
// (internal/dsp/upsample.go): where that kernel interpolates between
// chroma samples, this stage simply repeats each sample into its 2x2
// output block, which is what JPEG XL's InOutStage contract requires
// for channels the bitstream declares as nearest-neighbor upsampled.
type NearestNeighbourUpsample struct{}

func (NearestNeighbourUpsample) Name() string { return "NearestNeighbourUpsample" }
func (NearestNeighbourUpsample) Border() int  { return 0 }
func (NearestNeighbourUpsample) Shift() int   { return 1 }

func (NearestNeighbourUpsample) ProcessInOut(src *imageplane.Image[float32]) *imageplane.Image[float32] {
	dst := imageplane.New[float32](src.Width*2, src.Height*2)
	for y := 0; y < src.Height; y++ {
		srow := src.Row(y)
		for x := 0; x < src.Width; x++ {
			v := srow[x]
			dst.Set(2*x, 2*y, v)
			dst.Set(2*x+1, 2*y, v)
			dst.Set(2*x, 2*y+1, v)
			dst.Set(2*x+1, 2*y+1, v)
		}
	}
	return dst
}
