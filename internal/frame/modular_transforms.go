package frame

import (
	"errors"

	"github.com/deepteams/jxl/internal/headers"
	"github.com/deepteams/jxl/internal/modular"
)

// ErrTransformKind guards against an unrecognized transform selector.
var ErrTransformKind = errors.New("frame: unknown modular transform kind")

// TransformKind selects which meta-transform a TransformStep applies,
// spec.md §4.5's RCT/Squeeze/Palette pipeline.
type TransformKind int

const (
	TransformRCT TransformKind = iota
	TransformSqueeze
	TransformPalette
)

// TransformStep is one edge of the producer/consumer DAG spec.md §4.5
// describes over ModularBufferInfo, here addressing channels directly
// by index within a ChannelSet rather than through the Arena, which no
// decode path uses (Modular channel planes are small enough, and few
// enough per frame, to be addressed directly without the added
// indirection).
type TransformStep struct {
	Kind TransformKind

	// RCT
	RCTOp     modular.RCTOp
	RCTPerm   modular.RCTPerm
	RCTChans  [3]int

	// Squeeze
	SqueezeHorizontal bool
	AvgChannel        int
	DiffChannel       int

	// Palette
	PaletteIndexChannel int
	PaletteOutChannels  []int
	PaletteNumColors    int
}

// DecodeModularTransforms reads the frame-level list of meta-transforms
// to apply before tree-predicted residual decode. No teacher or pack
// source gives a wire format for this list, so the concrete encoding
// (count as Bits(8), then per-step a 2-bit kind selector followed by
// kind-specific fields) is this decoder's own choice, following the
// schema-driven style headers/decode.go already uses elsewhere
// (selector-quad-like dispatch, Bits(n) fields).
func DecodeModularTransforms(br headers.BitSource) ([]TransformStep, error) {
	count, err := br.Read(8)
	if err != nil {
		return nil, err
	}
	steps := make([]TransformStep, 0, count)
	for i := uint64(0); i < count; i++ {
		kind, err := br.Read(2)
		if err != nil {
			return nil, err
		}
		switch kind {
		case 0:
			op, err := br.Read(2)
			if err != nil {
				return nil, err
			}
			var perm modular.RCTPerm
			var chans [3]int
			for j := 0; j < 3; j++ {
				p, err := br.Read(2)
				if err != nil {
					return nil, err
				}
				perm[j] = int(p)
				c, err := br.Read(8)
				if err != nil {
					return nil, err
				}
				chans[j] = int(c)
			}
			steps = append(steps, TransformStep{Kind: TransformRCT, RCTOp: modular.RCTOp(op), RCTPerm: perm, RCTChans: chans})
		case 1:
			horiz, err := br.Read(1)
			if err != nil {
				return nil, err
			}
			avg, err := br.Read(8)
			if err != nil {
				return nil, err
			}
			diff, err := br.Read(8)
			if err != nil {
				return nil, err
			}
			steps = append(steps, TransformStep{Kind: TransformSqueeze, SqueezeHorizontal: horiz != 0, AvgChannel: int(avg), DiffChannel: int(diff)})
		case 2:
			idx, err := br.Read(8)
			if err != nil {
				return nil, err
			}
			numOut, err := br.Read(4)
			if err != nil {
				return nil, err
			}
			out := make([]int, numOut)
			for j := range out {
				c, err := br.Read(8)
				if err != nil {
					return nil, err
				}
				out[j] = int(c)
			}
			numColors, err := br.Read(16)
			if err != nil {
				return nil, err
			}
			steps = append(steps, TransformStep{Kind: TransformPalette, PaletteIndexChannel: int(idx), PaletteOutChannels: out, PaletteNumColors: int(numColors)})
		default:
			return nil, ErrTransformKind
		}
	}
	return steps, nil
}

// ErrChannelIndex is returned when a transform step names a channel
// index outside the channel set's bounds, protecting ApplyTransforms
// against an out-of-range slice access on malformed or unsupported
// input (e.g. a Squeeze step whose avg/diff channels were never sized
// into the set by the caller; see DESIGN.md).
var ErrChannelIndex = errors.New("frame: transform step references an out-of-range channel")

func channelIndexValid(cs *modular.ChannelSet, idx int) bool {
	return idx >= 0 && idx < len(cs.Channels)
}

// ApplyTransforms runs steps over cs in order, mutating channels in
// place. next supplies successive palette LUT entries from the
// entropy-coded stream when a Palette step is encountered.
func ApplyTransforms(cs *modular.ChannelSet, steps []TransformStep, next func() (int32, error)) error {
	for _, step := range steps {
		switch step.Kind {
		case TransformRCT:
			for _, ci := range step.RCTChans {
				if !channelIndexValid(cs, ci) {
					return ErrChannelIndex
				}
			}
			var planes [3][]int32
			for j, ci := range step.RCTChans {
				planes[j] = cs.Channels[ci].Data
			}
			modular.InverseRCT(step.RCTOp, step.RCTPerm, planes)
		case TransformSqueeze:
			if !channelIndexValid(cs, step.AvgChannel) || !channelIndexValid(cs, step.DiffChannel) {
				return ErrChannelIndex
			}
			avg := cs.Channels[step.AvgChannel]
			diff := cs.Channels[step.DiffChannel]
			var combined modular.Channel
			if step.SqueezeHorizontal {
				combined = modular.UnsqueezeHorizontal(avg, diff)
			} else {
				combined = modular.UnsqueezeVertical(avg, diff)
			}
			cs.Channels[step.AvgChannel] = combined
			cs.Channels[step.DiffChannel].Data = nil
		case TransformPalette:
			if !channelIndexValid(cs, step.PaletteIndexChannel) {
				return ErrChannelIndex
			}
			for _, ci := range step.PaletteOutChannels {
				if !channelIndexValid(cs, ci) {
					return ErrChannelIndex
				}
			}
			lut, err := modular.DecodePaletteLUT(step.PaletteNumColors, len(step.PaletteOutChannels), next)
			if err != nil {
				return err
			}
			index := cs.Channels[step.PaletteIndexChannel].Data
			planes, err := modular.ApplyPalette(index, lut, len(step.PaletteOutChannels))
			if err != nil {
				return err
			}
			for j, ci := range step.PaletteOutChannels {
				cs.Channels[ci].Data = planes[j]
			}
		default:
			return ErrTransformKind
		}
	}
	return nil
}
