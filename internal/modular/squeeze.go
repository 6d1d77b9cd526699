package modular

// Unsqueeze reverses one Squeeze step: given an average channel and a
// same-length residual (difference) channel, it reconstructs the pair
// of full-resolution samples each average/residual pair was derived
// from, using the standard reversible integer lifting pair
//
//	b = avg - (diff >> 1)
//	a = b + diff
//
// spec.md §4.5 describes Squeeze only as "a pair of 1-D interleaved
// wavelet-like transforms" without spelling out the lifting formula;
// this is the classical reversible Haar lifting scheme (the same
// forward/inverse shape JPEG 2000's 5/3 wavelet uses), chosen because
// no teacher or pack file implements a wavelet transform to ground a
// more specific variant on.
func Unsqueeze(avg, diff []int32) (a, b []int32) {
	n := len(avg)
	a = make([]int32, n)
	b = make([]int32, n)
	for i := 0; i < n; i++ {
		bi := avg[i] - (diff[i] >> 1)
		ai := bi + diff[i]
		a[i] = ai
		b[i] = bi
	}
	return a, b
}

// Squeeze is the forward transform, provided alongside Unsqueeze for
// tests and for the encoder-side round-trip property spec.md §8
// exercises on the Modular pipeline's reversible transforms.
func Squeeze(a, b []int32) (avg, diff []int32) {
	n := len(a)
	avg = make([]int32, n)
	diff = make([]int32, n)
	for i := 0; i < n; i++ {
		diff[i] = a[i] - b[i]
		avg[i] = b[i] + (diff[i] >> 1)
	}
	return avg, diff
}

// UnsqueezeHorizontal applies Unsqueeze across pairs of adjacent
// columns of a channel laid out as avg/diff half-width channels,
// producing a full-width channel.
func UnsqueezeHorizontal(avgCh, diffCh Channel) Channel {
	out := NewChannel(avgCh.Width*2, avgCh.Height, avgCh.HShift-1, avgCh.VShift)
	for y := 0; y < avgCh.Height; y++ {
		avgRow := avgCh.Data[y*avgCh.Width : (y+1)*avgCh.Width]
		diffRow := diffCh.Data[y*diffCh.Width : (y+1)*diffCh.Width]
		a, b := Unsqueeze(avgRow, diffRow)
		for x := 0; x < avgCh.Width; x++ {
			out.Set(2*x, y, a[x])
			out.Set(2*x+1, y, b[x])
		}
	}
	return out
}

// UnsqueezeVertical is UnsqueezeHorizontal's vertical counterpart,
// pairing adjacent rows instead of adjacent columns.
func UnsqueezeVertical(avgCh, diffCh Channel) Channel {
	out := NewChannel(avgCh.Width, avgCh.Height*2, avgCh.HShift, avgCh.VShift-1)
	avgCol := make([]int32, avgCh.Height)
	diffCol := make([]int32, avgCh.Height)
	for x := 0; x < avgCh.Width; x++ {
		for y := 0; y < avgCh.Height; y++ {
			avgCol[y] = avgCh.At(x, y)
			diffCol[y] = diffCh.At(x, y)
		}
		a, b := Unsqueeze(avgCol, diffCol)
		for y := 0; y < avgCh.Height; y++ {
			out.Set(x, 2*y, a[y])
			out.Set(x, 2*y+1, b[y])
		}
	}
	return out
}
