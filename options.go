package jxl

// ByteSource is the incremental input contract spec.md §6 describes:
// a caller-owned buffer the decoder reports how much of it consumed,
// with Unconsume letting the decoder push bytes back when a box or
// codestream boundary turned out to fall mid-buffer. NewDecoder's
// Process([]byte) surface is the simpler, buffer-at-a-time cousin of
// this interface; ByteSource exists for callers already holding data
// in a scatter/gather form (bufs) they'd rather not copy into one
// contiguous slice first.
type ByteSource interface {
	// AvailableBytes reports how many bytes are ready to read without
	// blocking.
	AvailableBytes() int
	// Read gathers up to len(bufs) chunks of input, returning the
	// total bytes placed across them.
	Read(bufs [][]byte) (int, error)
	// Unconsume returns the last n bytes handed out by Read to the
	// front of the source, for callers that over-read past a boundary
	// they then had to back out of.
	Unconsume(n int)
}

// DataType is an output sample's storage type, spec.md §6.
type DataType int

const (
	DataU8 DataType = iota
	DataU16
	DataF16
	DataF32
)

// Endian selects byte order for multi-byte output sample types.
type Endian int

const (
	EndianLittle Endian = iota
	EndianBig
)

// ColorType enumerates the channel layout Save packs into output rows,
// spec.md §6. ColorBGR/ColorBGRA swap channel 0 and 2 relative to
// ColorRGB/ColorRGBA, the same reorder convention the teacher applies
// when assembling image.NRGBA from internally RGB-ordered planes.
type ColorType int

const (
	ColorGray ColorType = iota
	ColorGrayAlpha
	ColorRGB
	ColorRGBA
	ColorBGR
	ColorBGRA
)

// PixelFormat describes the packed output layout Save targets.
type PixelFormat struct {
	DataType  DataType
	Endian    Endian
	ColorType ColorType
}

// Options configures a Decoder, spec.md §6's DecoderOptions.
type Options struct {
	// PixelLimit rejects any frame whose pixel count would exceed it
	// with a Resource error, nil meaning no limit.
	PixelLimit *int
	// RenderSpotColors names compositing spot-color extra channels onto
	// the base image (render.SpotColorStage). Decode and
	// Decoder.Process do not read this field, and extra channels other
	// than alpha are not part of the returned image.
	RenderSpotColors bool
	// KeepOrientation skips render.OrientationStage, leaving the
	// decoded raster in the bitstream's native coordinate space
	// instead of applying the declared EXIF-style orientation.
	KeepOrientation bool
	// Coalescing names compositing animation frames against their
	// canvas. Decode and Decoder.Process do not read this field;
	// animated input is rejected as Unsupported.
	Coalescing bool
	// UnpremultiplyAlpha divides color channels by alpha
	// (render.UnpremultiplyStage) before Save packs them.
	UnpremultiplyAlpha bool
	// DesiredIntensityTarget names an HDR intensity target for tone
	// mapping. Decode and Decoder.Process do not read this field and
	// apply no tone mapping.
	DesiredIntensityTarget *float32
}

// DefaultOptions returns the Options Decode/DecodeConfig use: no pixel
// limit, spot colors left as separate channels, orientation applied,
// no coalescing (single-frame decode only, see ErrUnsupportedEncoding
// on animated input), alpha left premultiplied as decoded.
func DefaultOptions() Options {
	return Options{}
}
