package entropy

// LZ77Config describes the backward-reference parameters a Reader uses
// when its cluster alphabet includes copy tokens, per spec.md §4.4: a
// base token t >= numNonLZSymbols triggers a (length, distance) copy
// decoded via context-dependent hybrid uints. Reader.Read does not
// consult this configuration: every token is returned as an ordinary
// value and no copy is expanded.
type LZ77Config struct {
	Enabled          bool
	MinLength        uint32
	NumNonLZSymbols  uint32
	LengthConfig     HybridUintConfig
	LengthCluster    int
	DistanceCluster  int
}

// CopyBlock copies length elements from dst[pos-dist:] to dst[pos:],
// following the same non-overlapping/fill/doubling strategy the WebP
// decoder's copyBlock32 uses for its LZ77 backward references — the
// identical three cases apply regardless of element type, so this is
// generic over int32 residual streams used by the Modular decoder.
func CopyBlock(dst []int32, pos, dist, length int) {
	src := pos - dist
	switch {
	case dist >= length:
		copy(dst[pos:pos+length], dst[src:src+length])
	case dist == 1:
		val := dst[src]
		for i := pos; i < pos+length; i++ {
			dst[i] = val
		}
	default:
		copy(dst[pos:pos+dist], dst[src:src+dist])
		copied := dist
		for copied < length {
			n := copied
			if n > length-copied {
				n = length - copied
			}
			copy(dst[pos+copied:pos+copied+n], dst[pos:pos+n])
			copied += n
		}
	}
}
