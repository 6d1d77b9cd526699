package modular

// RCTOp enumerates the reversible color transform variants. YCoCg is
// the default declared in spec.md §4.5; RCTIdentity leaves the
// channels unchanged.
type RCTOp int

const (
	RCTYCoCg RCTOp = iota
	RCTIdentity
)

// RCTPerm gives, for each channel slot 0..2, which reconstructed
// component (0=r, 1=g, 2=b) is written into it, spec.md §4.5's `perm`
// parameter.
type RCTPerm [3]int

// DefaultRCTPerm is the identity permutation ("perm=RGB").
var DefaultRCTPerm = RCTPerm{0, 1, 2}

// InverseRCT reverses the reversible color transform in place across
// three same-length channels, the YCoCg inverse of spec.md §4.5:
//
//	y, co, cg = in
//	y  -= cg >> 1
//	g   = cg + y
//	b   = y - (co >> 1)
//	r   = b + co
//
// perm[i] selects which of r, g, b is written to channel i.
func InverseRCT(op RCTOp, perm RCTPerm, channels [3][]int32) {
	if op != RCTYCoCg {
		return
	}
	y, co, cg := channels[0], channels[1], channels[2]
	r := make([]int32, len(y))
	g := make([]int32, len(y))
	b := make([]int32, len(y))
	for i := range y {
		yy := y[i] - (cg[i] >> 1)
		gg := cg[i] + yy
		bb := yy - (co[i] >> 1)
		rr := bb + co[i]
		r[i], g[i], b[i] = rr, gg, bb
	}
	out := [3][]int32{r, g, b}
	for slot, ch := range perm {
		copy(channels[slot], out[ch])
	}
}
