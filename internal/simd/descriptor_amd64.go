//go:build amd64

package simd

// Current reports the vector ISA this build targets. Feature detection
// is build-tag based rather than CPUID-probed at runtime, the same
// granularity the teacher's dwt_amd64.go/dwt_arm64.go split uses: one
// compiled variant per architecture, no per-process fallback chain.
func Current() SimdDescriptor {
	return DescriptorAVX2FMA
}
