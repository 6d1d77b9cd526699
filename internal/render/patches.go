package render

import "github.com/deepteams/jxl/internal/imageplane"

// Patch is one additively-blended rectangular reference taken from a
// previous frame, spec.md §4.7's "additive dictionary of patches
// sourced from previous frames".
type Patch struct {
	SrcX, SrcY int
	DstX, DstY int
	Width, Height int
	Source *imageplane.Image[float32]
}

// Patches applies an additive dictionary of patches onto the current
// channel image, spec.md §4.7.
type Patches struct {
	Patches []Patch
}

func (Patches) Name() string { return "Patches" }
func (Patches) Border() int  { return 0 }

func (p Patches) ProcessInPlace(img *imageplane.Image[float32]) {
	for _, patch := range p.Patches {
		if patch.Source == nil {
			continue
		}
		for dy := 0; dy < patch.Height; dy++ {
			for dx := 0; dx < patch.Width; dx++ {
				sx, sy := patch.SrcX+dx, patch.SrcY+dy
				dxp, dyp := patch.DstX+dx, patch.DstY+dy
				if dxp < 0 || dyp < 0 || dxp >= img.Width || dyp >= img.Height {
					continue
				}
				img.Set(dxp, dyp, img.At(dxp, dyp)+patch.Source.At(sx, sy))
			}
		}
	}
}
