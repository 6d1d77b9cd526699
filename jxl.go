package jxl

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/deepteams/jxl/internal/bitio"
	"github.com/deepteams/jxl/internal/container"
	"github.com/deepteams/jxl/internal/frame"
	"github.com/deepteams/jxl/internal/headers"
	"github.com/deepteams/jxl/internal/imageplane"
	"github.com/deepteams/jxl/internal/modular"
	"github.com/deepteams/jxl/internal/render"
)

// readAll reads all of r, using a single exact-sized allocation when r
// reports its own length (e.g. *bytes.Reader), the same optimization
// the teacher's webp.go applies ahead of its own container parse.
func readAll(r io.Reader) ([]byte, error) {
	if lr, ok := r.(interface{ Len() int }); ok {
		if n := lr.Len(); n > 0 {
			data := make([]byte, n)
			_, err := io.ReadFull(r, data)
			return data, err
		}
	}
	return io.ReadAll(r)
}

// needMoreError signals that assembleCodestream or decodeBytes could
// not proceed because the supplied bytes end mid-box or mid-codestream.
// Decode/DecodeConfig treat it as a truncated-input error since they
// read their whole input up front; Decoder.Process treats it as
// StatusNeedsMoreInput, per spec.md §7's InputExhausted rule.
type needMoreError struct{ hint int }

func (e *needMoreError) Error() string { return "jxl: need more input" }

func isNeedMore(err error) (int, bool) {
	var nm *needMoreError
	if errors.As(err, &nm) {
		return nm.hint, true
	}
	if n := container.NeedBytes(err); n > 0 {
		return n, true
	}
	if errors.Is(err, bitio.ErrOutOfBounds) {
		return bitio.NeedBytes(err), true
	}
	return 0, false
}

// assembleCodestream runs data through the container state machine and
// concatenates every emitted codestream chunk, per spec.md §4.2's
// jxlc/jxlp reassembly rule.
func assembleCodestream(data []byte) ([]byte, error) {
	p := container.NewParser()
	events, _, err := p.Parse(data)
	if err != nil {
		if n, ok := isNeedMore(err); ok {
			return nil, &needMoreError{hint: n}
		}
		return nil, wrapErr(MalformedBitstream, err)
	}
	var cs []byte
	for _, e := range events {
		if e.Kind == container.EventCodestream {
			cs = append(cs, e.Codestream...)
		}
	}
	if p.Kind() == container.KindBareCodestream {
		// The bare-codestream magic (0xFF 0x0A) is itself the first two
		// bytes of the codestream's own byte stream, not a framing
		// signature the container strips: headers.DecodeFileHeader
		// starts reading ImageMetadata fields immediately after it.
		if len(cs) < 2 {
			return nil, &needMoreError{hint: 2 - len(cs)}
		}
		cs = cs[2:]
	}
	if len(cs) == 0 {
		return nil, &needMoreError{hint: 1}
	}
	return cs, nil
}

// Decode reads a JPEG XL image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("jxl: reading data: %w", err)
	}
	img, err := decodeBytes(data, DefaultOptions())
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return nil, wrapErr(MalformedBitstream, io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	return img, nil
}

// DecodeConfig returns the color model and dimensions of a JPEG XL
// image without decoding pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := readAll(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("jxl: reading data: %w", err)
	}
	cs, err := assembleCodestream(data)
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return image.Config{}, wrapErr(MalformedBitstream, io.ErrUnexpectedEOF)
		}
		return image.Config{}, err
	}
	br := bitio.NewReader(cs)
	fh, err := headers.DecodeFileHeader(br)
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return image.Config{}, wrapErr(MalformedBitstream, io.ErrUnexpectedEOF)
		}
		return image.Config{}, wrapErr(MalformedBitstream, err)
	}
	return image.Config{
		ColorModel: colorModelFor(fh.Metadata),
		Width:      int(fh.Metadata.Size.Width),
		Height:     int(fh.Metadata.Size.Height),
	}, nil
}

// Status reports whether a Decoder's last Process call produced a
// finished image or needs more bytes before it can proceed.
type Status int

const (
	StatusNeedsMoreInput Status = iota
	StatusComplete
)

// Result is what Decoder.Process returns: either an incomplete status
// asking for more bytes, or a finished image.
type Result struct {
	Status Status
	Image  image.Image
}

// Decoder is the suspend/resume decode surface spec.md §5/§6 describe:
// Process accumulates bytes across calls and only attempts a decode
// once it has been handed all of them, since this core buffers a whole
// codestream before producing output (see the Toc-splitting Open
// Question in DESIGN.md). Once Process returns a non-InputExhausted
// error the Decoder is terminal: further calls return that same error.
type Decoder struct {
	opts Options
	buf  []byte
	img  image.Image
	done bool
	err  error
}

// NewDecoder creates a Decoder configured by opts.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

// Process appends data to the Decoder's buffered input and attempts a
// decode. It returns StatusNeedsMoreInput (with a nil error) when the
// buffered bytes end mid-box, mid-codestream, or mid-field; any other
// error is terminal.
func (d *Decoder) Process(data []byte) (Result, error) {
	if d.err != nil {
		return Result{}, d.err
	}
	if d.done {
		return Result{Status: StatusComplete, Image: d.img}, nil
	}
	d.buf = append(d.buf, data...)

	img, err := decodeBytes(d.buf, d.opts)
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return Result{Status: StatusNeedsMoreInput}, nil
		}
		d.err = err
		return Result{}, err
	}
	d.done = true
	d.img = img
	return Result{Status: StatusComplete, Image: img}, nil
}

// decodeBytes decodes one complete JPEG XL file from a byte slice.
func decodeBytes(data []byte, opts Options) (image.Image, error) {
	cs, err := assembleCodestream(data)
	if err != nil {
		return nil, err
	}
	br := bitio.NewReader(cs)

	fh, err := headers.DecodeFileHeader(br)
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return nil, err
		}
		return nil, wrapErr(MalformedBitstream, err)
	}
	if fh.Metadata.Animation.Present {
		return nil, wrapErr(Unsupported, ErrUnsupportedEncoding)
	}

	fhdr, err := headers.DecodeFrameHeader(br, fh.Metadata.Size)
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return nil, err
		}
		return nil, wrapErr(MalformedBitstream, err)
	}
	if fhdr.Encoding != headers.EncodingModular {
		return nil, wrapErr(Unsupported, ErrUnsupportedEncoding)
	}
	if fhdr.NumGroupsX()*fhdr.NumGroupsY() != 1 {
		return nil, wrapErr(Unsupported, ErrUnsupportedEncoding)
	}

	toc, err := headers.DecodeToc(br, fhdr.NumTOCEntries())
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return nil, err
		}
		return nil, wrapErr(MalformedBitstream, err)
	}
	_ = toc // section byte lengths; see DESIGN.md's Toc/dispatcher Open Question

	if opts.PixelLimit != nil {
		if int(fhdr.Width)*int(fhdr.Height) > *opts.PixelLimit {
			return nil, wrapErr(Resource, fmt.Errorf("jxl: %d pixels exceeds limit %d", int(fhdr.Width)*int(fhdr.Height), *opts.PixelLimit))
		}
	}

	numColor := 3
	if fh.Metadata.ColorEncoding.ColorSpace == headers.ColorSpaceGray {
		numColor = 1
	}
	extraShifts := make([]int, len(fh.Metadata.ExtraChannels))
	alphaIdx := -1
	for i, e := range fh.Metadata.ExtraChannels {
		extraShifts[i] = int(e.DimShift)
		if e.Type == headers.ExtraChannelAlpha && alphaIdx == -1 {
			alphaIdx = numColor + i
		}
	}
	cs2 := modular.NewChannelSet(int(fhdr.Width), int(fhdr.Height), numColor, extraShifts)

	// numContexts/logAlphaSize: the per-channel context-assignment
	// formula spec.md describes only functionally (§4.5), and no
	// header field in this build's schema carries a histogram count,
	// so this decoder derives numContexts as one context per channel
	// plus the reserved Palette-LUT slot (internal/frame's own
	// convention, see DESIGN.md), with a fixed logAlphaSize of 8.
	numContexts := len(cs2.Channels) + 1
	const logAlphaSize = 8

	planes, err := frame.DecodeModularFrame(br, br, &cs2, numContexts, logAlphaSize)
	if err != nil {
		if _, ok := isNeedMore(err); ok {
			return nil, err
		}
		return nil, wrapErr(MalformedBitstream, err)
	}

	return assembleOutput(planes, fh.Metadata, alphaIdx, opts)
}

// colorModelFor reports the color.Model Decode's output reports for
// the given metadata, matching assembleOutput's channel assembly.
func colorModelFor(meta headers.ImageMetadata) color.Model {
	for _, e := range meta.ExtraChannels {
		if e.Type == headers.ExtraChannelAlpha {
			return color.NRGBAModel
		}
	}
	if meta.ColorEncoding.ColorSpace == headers.ColorSpaceGray {
		return color.GrayModel
	}
	return color.NRGBAModel
}

// assembleOutput runs each decoded plane through the render pipeline's
// normalization/orientation/unpremultiply stages and packs the result
// into a standard library image.Image.
func assembleOutput(planes []*imageplane.Image[float32], meta headers.ImageMetadata, alphaIdx int, opts Options) (image.Image, error) {
	pipeline := render.Pipeline{Stages: []render.Stage{
		render.ConvertModularToF32{BitsPerSample: int(meta.BitDepth.BitsPerSample)},
	}}
	if !opts.KeepOrientation && meta.Orientation != 0 && meta.Orientation != 1 {
		pipeline.Stages = append(pipeline.Stages, render.OrientationStage{Orientation: int(meta.Orientation)})
	}

	processed := make([]*imageplane.Image[float32], len(planes))
	for i, p := range planes {
		if p == nil {
			continue
		}
		processed[i] = pipeline.Run(p)
	}

	var alpha *imageplane.Image[float32]
	if alphaIdx >= 0 && alphaIdx < len(processed) {
		alpha = processed[alphaIdx]
	}
	if alpha != nil && opts.UnpremultiplyAlpha {
		up := render.UnpremultiplyStage{Alpha: alpha}
		for i, p := range processed {
			if i == alphaIdx || p == nil {
				continue
			}
			up.ProcessInPlace(p)
		}
	}

	gray := meta.ColorEncoding.ColorSpace == headers.ColorSpaceGray
	if processed[0] == nil {
		return nil, wrapErr(MalformedBitstream, fmt.Errorf("jxl: channel 0 was freed before output"))
	}
	w, h := processed[0].Width, processed[0].Height

	if gray && alpha == nil {
		out := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			row := processed[0].Row(y)
			dst := out.Pix[y*out.Stride : y*out.Stride+w]
			for x, v := range row {
				dst[x] = to8(v)
			}
		}
		return out, nil
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	colorOf := func(x, y int) (r, g, b float32) {
		if gray {
			v := processed[0].At(x, y)
			return v, v, v
		}
		return processed[0].At(x, y), processed[1].At(x, y), processed[2].At(x, y)
	}
	for y := 0; y < h; y++ {
		dst := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := 0; x < w; x++ {
			r, g, b := colorOf(x, y)
			a := float32(1)
			if alpha != nil {
				a = alpha.At(x, y)
			}
			off := x * 4
			dst[off+0] = to8(r)
			dst[off+1] = to8(g)
			dst[off+2] = to8(b)
			dst[off+3] = to8(a)
		}
	}
	return out, nil
}

// to8 packs a normalized [0,1] sample into an 8-bit value, clamping out
// of range input the way render.Save does.
func to8(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
