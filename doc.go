// Package jxl implements a decoder for the JPEG XL (ISO/IEC 18181)
// image format: bare-codestream and ISOBMFF-boxed files, Modular and
// VarDCT frame encodings, and the render pipeline that turns decoded
// channel planes into packed output pixels.
//
// Decode and DecodeConfig mirror the standard image package's
// registration contract. NewDecoder exposes the richer suspend/resume
// surface a single io.Reader call cannot express: Process returns
// StatusNeedsMoreInput instead of an error when the supplied bytes end
// mid-box or mid-codestream, so a caller streaming bytes off the wire
// can feed them in as they arrive.
package jxl

import "image"

func init() {
	image.RegisterFormat("jxl", "\xff\x0a", Decode, DecodeConfig)
	image.RegisterFormat("jxl", "\x00\x00\x00\x0cJXL \x0d\x0a\x87\x0a", Decode, DecodeConfig)
}
