package headers

// Size is the image's pixel dimensions, spec.md §4.3.
type Size struct {
	Width  uint32
	Height uint32
}

// Preview is the optional small preview image's dimensions.
type Preview struct {
	Present bool
	Size    Size
}

// Animation describes looping/timing metadata for animated images.
type Animation struct {
	Present    bool
	TPSNumer   uint32
	TPSDenom   uint32
	NumLoops   uint32
	HaveTimecodes bool
}

// BitDepth describes sample precision, validated per spec.md §4.3.
type BitDepth struct {
	FloatSamples          bool
	BitsPerSample         uint32
	ExponentBitsPerSample uint32
}

// Validate enforces spec.md §4.3's BitDepth rules.
func (b BitDepth) Validate() error {
	if !b.FloatSamples {
		if b.BitsPerSample == 0 || b.BitsPerSample > 31 {
			return ErrValidation
		}
		return nil
	}
	if b.ExponentBitsPerSample < 2 || b.ExponentBitsPerSample > 8 {
		return ErrValidation
	}
	mantissa := b.BitsPerSample - 1 - b.ExponentBitsPerSample
	if mantissa < 2 || mantissa > 23 {
		return ErrValidation
	}
	return nil
}

// ExtraChannelType enumerates the kinds of non-color channels a frame
// can carry.
type ExtraChannelType int

const (
	ExtraChannelAlpha ExtraChannelType = iota
	ExtraChannelDepth
	ExtraChannelSpotColor
	ExtraChannelSelectionMask
	ExtraChannelBlack
	ExtraChannelCFA
	ExtraChannelThermal
	ExtraChannelUnknown
	ExtraChannelOptional
)

// ExtraChannelInfo describes one non-color channel, spec.md §4.3.
type ExtraChannelInfo struct {
	Type          ExtraChannelType
	BitDepth      BitDepth
	DimShift      uint32
	NameLength    uint32
	Name          string
	AlphaAssociated bool
}

// Validate enforces spec.md §4.3's ExtraChannelInfo rule.
func (e ExtraChannelInfo) Validate() error {
	if e.DimShift > 3 {
		return ErrValidation
	}
	return e.BitDepth.Validate()
}

// ColorSpace enumerates the color encoding's base space.
type ColorSpace int

const (
	ColorSpaceRGB ColorSpace = iota
	ColorSpaceGray
	ColorSpaceXYB
	ColorSpaceUnknown
)

// WhitePoint enumerates standard illuminants.
type WhitePoint int

const (
	WhitePointD65 WhitePoint = iota
	WhitePointCustom
	WhitePointE
	WhitePointDCI
)

// Primaries enumerates standard primary sets.
type Primaries int

const (
	PrimariesSRGB Primaries = iota
	PrimariesCustom
	PrimariesBT2100
	PrimariesP3
)

// TransferFunction enumerates standard transfer curves.
type TransferFunction int

const (
	TransferSRGB TransferFunction = iota
	TransferLinear
	TransferPQ
	TransferDCI
	TransferHLG
	TransferGamma
)

// RenderingIntent mirrors the ICC rendering intent enumeration.
type RenderingIntent int

const (
	RenderingIntentPerceptual RenderingIntent = iota
	RenderingIntentRelative
	RenderingIntentSaturation
	RenderingIntentAbsolute
)

// ColorEncoding is the bitstream's declared color space, spec.md §4.3.
type ColorEncoding struct {
	ColorSpace       ColorSpace
	WhitePoint       WhitePoint
	WhiteX, WhiteY   float64
	Primaries        Primaries
	PrimariesRGB     [3][2]float64
	TransferFunction TransferFunction
	Gamma            float64
	RenderingIntent  RenderingIntent
}

// ImageMetadata bundles the file-wide metadata fields of FileHeader.
type ImageMetadata struct {
	Size            Size
	BitDepth        BitDepth
	ExtraChannels   []ExtraChannelInfo
	ColorEncoding   ColorEncoding
	XYBEncoded      bool
	Orientation     uint32
	Preview         Preview
	Animation       Animation
	IntrinsicSize   Size
}

// FileHeader is the whole-image header, spec.md §3/§4.3.
type FileHeader struct {
	Metadata ImageMetadata
}

// EncodingMode distinguishes a frame's Modular vs VarDCT pixel coding.
type EncodingMode int

const (
	EncodingModular EncodingMode = iota
	EncodingVarDCT
)

// FrameHeader is the per-frame description, spec.md §3/§4.3.
type FrameHeader struct {
	Encoding     EncodingMode
	Width        uint32
	Height       uint32
	CropX0       int32
	CropY0       int32
	GroupSizeLog int
	NumPasses    uint32
	IsLast       bool
}

// GroupDim returns the frame's group tile size in pixels (default 256,
// per the GLOSSARY).
func (f FrameHeader) GroupDim() int {
	return 1 << uint(f.GroupSizeLog)
}

// NumGroupsX returns the number of horizontal group tiles.
func (f FrameHeader) NumGroupsX() int {
	d := f.GroupDim()
	return (int(f.Width) + d - 1) / d
}

// NumGroupsY returns the number of vertical group tiles.
func (f FrameHeader) NumGroupsY() int {
	d := f.GroupDim()
	return (int(f.Height) + d - 1) / d
}

// NumTOCEntries returns how many section-length entries the frame's
// Toc must carry: one LF-global, one HF-global, and one per
// (group, pass) for VarDCT frames — or one LF-global plus one per group
// for Modular frames with a single implicit pass. No per-LF-group
// entries are counted.
func (f FrameHeader) NumTOCEntries() int {
	groups := f.NumGroupsX() * f.NumGroupsY()
	if f.Encoding == EncodingModular {
		return 1 + groups
	}
	return 2 + groups*int(maxU32(f.NumPasses, 1))
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// Permutation is a bijection of [0, N) describing a reordering of Toc
// entries, spec.md §3's Toc invariant.
type Permutation []uint32

// IsBijection reports whether p is a permutation of [0, len(p)).
func (p Permutation) IsBijection() bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if int(v) >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Toc is the per-frame section index, spec.md §3.
type Toc struct {
	Entries     []uint32
	Permuted    bool
	Permutation Permutation
}

// Validate enforces spec.md §3's Toc invariants.
func (t Toc) Validate(wantEntries int) error {
	if len(t.Entries) != wantEntries {
		return ErrValidation
	}
	if t.Permuted {
		if len(t.Permutation) != len(t.Entries) || !t.Permutation.IsBijection() {
			return ErrValidation
		}
	}
	return nil
}

// CustomTransformData carries explicit (non-default) weights for the
// Modular/VarDCT custom transform tables (e.g. non-default DCT
// quantization weights), spec.md §4.3.
type CustomTransformData struct {
	Present bool
	Weights []float32
}
