package container

// FourCC identifies an ISOBMFF box type by its 4-byte ASCII tag, packed
// big-endian the way box headers are transmitted on the wire.
type FourCC uint32

// Box types recognized by the container parser, per spec.md §6.
const (
	FourCCJXL  FourCC = 0x4A584C20 // "JXL " — signature box
	FourCCFtyp FourCC = 0x66747970 // "ftyp"
	FourCCJxll FourCC = 0x6A786C6C // "jxll" — level box
	FourCCJxlc FourCC = 0x6A786C63 // "jxlc" — bare codestream box
	FourCCJxlp FourCC = 0x6A786C70 // "jxlp" — indexed codestream chunk
	FourCCJbrd FourCC = 0x6A627264 // "jbrd" — JPEG reconstruction data
	FourCCJhgm FourCC = 0x6A68676D // "jhgm" — gain map
	FourCCExif FourCC = 0x45786966 // "Exif"
	FourCCXML  FourCC = 0x786D6C20 // "xml "
	FourCCJumb FourCC = 0x6A756D62 // "jumb"
)

func fourCCString(f FourCC) string {
	b := [4]byte{byte(f >> 24), byte(f >> 16), byte(f >> 8), byte(f)}
	return string(b[:])
}

// containerSignature is the 12-byte ISOBMFF signature box that marks a
// box-structured JXL file (size=0x0000000C, type="JXL ", payload
// 0D 0A 87 0A).
var containerSignature = [12]byte{
	0x00, 0x00, 0x00, 0x0C, 'J', 'X', 'L', ' ', 0x0D, 0x0A, 0x87, 0x0A,
}

// bareCodestreamMagic is the first two bytes of a bare JPEG XL codestream.
var bareCodestreamMagic = [2]byte{0xFF, 0x0A}

// boxHeaderMinSize is the smallest possible box header: 4-byte size +
// 4-byte type.
const boxHeaderMinSize = 8
