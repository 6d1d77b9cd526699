//go:build arm64

package simd

// Current reports the vector ISA this build targets.
func Current() SimdDescriptor {
	return DescriptorNEON
}
