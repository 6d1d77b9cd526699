package simd

// Vec is a fixed-width lane of float32 values. Operations are written
// narrow enough that the compiler can inline them into a caller that
// loops over a row; there is one Vec implementation regardless of
// SimdDescriptor because the arithmetic is architecture independent,
// only the preferred lane Width varies.
type Vec struct {
	lanes []float32
}

// Load reads width lanes from data starting at offset into a new Vec.
// Short tails are zero-padded.
func Load(data []float32, offset, width int) Vec {
	v := Vec{lanes: make([]float32, width)}
	n := copy(v.lanes, data[offset:])
	_ = n
	return v
}

// Store writes v's lanes back into data starting at offset, truncating
// to whatever room remains.
func (v Vec) Store(data []float32, offset int) {
	copy(data[offset:], v.lanes)
}

// Splat builds a width-lane Vec with every lane set to x.
func Splat(x float32, width int) Vec {
	v := Vec{lanes: make([]float32, width)}
	for i := range v.lanes {
		v.lanes[i] = x
	}
	return v
}

func (a Vec) Add(b Vec) Vec { return a.zip(b, func(x, y float32) float32 { return x + y }) }
func (a Vec) Sub(b Vec) Vec { return a.zip(b, func(x, y float32) float32 { return x - y }) }
func (a Vec) Mul(b Vec) Vec { return a.zip(b, func(x, y float32) float32 { return x * y }) }
func (a Vec) Max(b Vec) Vec {
	return a.zip(b, func(x, y float32) float32 {
		if x > y {
			return x
		}
		return y
	})
}

// MulAdd computes a*b + c, the fused multiply-add the teacher's AVX
// lifting steps rely on for precision and throughput.
func (a Vec) MulAdd(b, c Vec) Vec {
	out := Vec{lanes: make([]float32, len(a.lanes))}
	for i := range out.lanes {
		out.lanes[i] = a.lanes[i]*b.lanes[i] + c.lanes[i]
	}
	return out
}

func (a Vec) Abs() Vec {
	out := Vec{lanes: make([]float32, len(a.lanes))}
	for i, x := range a.lanes {
		if x < 0 {
			out.lanes[i] = -x
		} else {
			out.lanes[i] = x
		}
	}
	return out
}

func (a Vec) zip(b Vec, f func(x, y float32) float32) Vec {
	out := Vec{lanes: make([]float32, len(a.lanes))}
	for i := range out.lanes {
		out.lanes[i] = f(a.lanes[i], b.lanes[i])
	}
	return out
}

// Lanes exposes the underlying values for tests and callers that need
// to read a single component.
func (a Vec) Lanes() []float32 { return a.lanes }
