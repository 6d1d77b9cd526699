// Package imageplane implements the generic row-major pixel-plane type
// the render pipeline and subdecoders share: Image[T] plus Rect
// sub-views over it.
//
// The row-major flat-slice representation is grounded on the teacher's
// VP8L pixel buffer (internal/lossless/decode.go's `pixels []uint32`,
// row-major ARGB), generalized here from a fixed uint32 ARGB element to
// an arbitrary sample type via Go generics, since JPEG XL's pipeline
// carries float32 samples, int32 Modular residuals, and uint8 output
// bytes through the same addressing scheme.
package imageplane

import "fmt"

// Image is a row-major 2-D buffer of samples of type T: Data holds
// Height rows of Stride elements, of which the first Width in each row
// are live samples.
type Image[T any] struct {
	Width, Height int
	Stride        int // elements per row; >= Width, rounded up for SIMD alignment
	Data          []T
}

// simdAlign is the element-count alignment applied to each row's
// stride, matching the lane width of the widest vector register the
// SIMD layer targets (8 x float32 = AVX-256).
const simdAlign = 8

// New allocates a zeroed Image with a SIMD-aligned stride.
func New[T any](width, height int) *Image[T] {
	stride := ((width + simdAlign - 1) / simdAlign) * simdAlign
	if stride == 0 {
		stride = simdAlign
	}
	return &Image[T]{Width: width, Height: height, Stride: stride, Data: make([]T, stride*height)}
}

// Row returns the slice of exactly Width live samples in row y.
func (im *Image[T]) Row(y int) []T {
	off := y * im.Stride
	return im.Data[off : off+im.Width]
}

// At returns the sample at (x, y).
func (im *Image[T]) At(x, y int) T { return im.Data[y*im.Stride+x] }

// Set stores v at (x, y).
func (im *Image[T]) Set(x, y int, v T) { im.Data[y*im.Stride+x] = v }

// Rect is an axis-aligned sub-view: an origin plus a size, addressed
// relative to a containing Image.
type Rect struct {
	OriginX, OriginY int
	Width, Height    int
}

// Validate panics if r does not fit entirely within an image of the
// given size, the same fail-fast contract the teacher applies to
// malformed transform/crop dimensions rather than silently clamping.
func (r Rect) Validate(containerWidth, containerHeight int) {
	if r.OriginX < 0 || r.OriginY < 0 {
		panic(fmt.Sprintf("imageplane: rect origin (%d,%d) is negative", r.OriginX, r.OriginY))
	}
	if r.OriginX+r.Width > containerWidth || r.OriginY+r.Height > containerHeight {
		panic(fmt.Sprintf("imageplane: rect %+v exceeds container %dx%d", r, containerWidth, containerHeight))
	}
}

// SubImage returns a view of im restricted to r, sharing the
// underlying Data slice via matching Stride addressing rather than
// copying, per spec.md §3's Rect sub-view requirement.
func (im *Image[T]) SubImage(r Rect) *Image[T] {
	r.Validate(im.Width, im.Height)
	off := r.OriginY*im.Stride + r.OriginX
	return &Image[T]{
		Width:  r.Width,
		Height: r.Height,
		Stride: im.Stride,
		Data:   im.Data[off:],
	}
}
