// Package simd provides a small SIMD capability model: a SimdDescriptor
// naming the vector ISA available on the current build target, and a
// Vec kernel (load/store/splat/add/sub/mul/mul_add/max/abs) written
// against plain float32 slices. The arithmetic itself is architecture
// independent; only Current, selected per build target, varies, the way
// internal/dwt's Forward53Fast/clearInt32SliceFast split across
// dwt_amd64.go/dwt_arm64.go/dwt_generic.go while sharing the portable
// lifting steps in dwt.go.
package simd

// SimdDescriptor names a vector instruction set.
type SimdDescriptor int

const (
	DescriptorScalar SimdDescriptor = iota
	DescriptorAVX2FMA
	DescriptorAVX512F
	DescriptorNEON
)

func (d SimdDescriptor) String() string {
	switch d {
	case DescriptorScalar:
		return "scalar"
	case DescriptorAVX2FMA:
		return "avx2+fma"
	case DescriptorAVX512F:
		return "avx512f"
	case DescriptorNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Width reports the number of float32 lanes a kernel should prefer for
// this descriptor. Scalar width is 1; everything else works in groups
// of 8 lanes, matching imageplane's SIMD-aligned stride.
func (d SimdDescriptor) Width() int {
	if d == DescriptorScalar {
		return 1
	}
	return 8
}
