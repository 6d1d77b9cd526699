// Package gainmap decodes and serializes the jhgm box payload: a
// self-delimiting bundle carrying ISO 21496-1 gain map metadata, an
// optional alternate color encoding, an optional alternate ICC profile,
// and a nested bare JXL codestream for the gain map image itself.
package gainmap

import (
	"encoding/binary"
	"errors"
)

var (
	ErrTruncated       = errors.New("jxl: truncated gain map bundle")
	ErrColorEncoding   = errors.New("jxl: gain map color encoding length exceeds 255")
	ErrMetadataTooLong = errors.New("jxl: gain map metadata exceeds 65535 bytes")
	ErrICCTooLong      = errors.New("jxl: gain map alt ICC profile too large")
)

// GainMapBundle is the parsed jhgm box payload. ColorEncoding is kept as
// an opaque blob (not bit-unpacked) since the bundle only needs to carry
// it through unchanged for round-trip; a nil slice and an empty slice
// both serialize as "absent".
type GainMapBundle struct {
	Version       uint8
	Metadata      []byte
	ColorEncoding []byte
	AltICC        []byte
	GainMap       []byte
}

// FromBytes parses a jhgm box payload. The gain map codestream is the
// remainder of data after the fixed-format header fields; it is not
// itself validated here.
func FromBytes(data []byte) (GainMapBundle, error) {
	var b GainMapBundle
	if len(data) < 1 {
		return GainMapBundle{}, ErrTruncated
	}
	b.Version = data[0]
	data = data[1:]

	if len(data) < 2 {
		return GainMapBundle{}, ErrTruncated
	}
	metaSize := int(binary.BigEndian.Uint16(data[0:2]))
	data = data[2:]
	if len(data) < metaSize {
		return GainMapBundle{}, ErrTruncated
	}
	b.Metadata = append([]byte(nil), data[:metaSize]...)
	data = data[metaSize:]

	if len(data) < 1 {
		return GainMapBundle{}, ErrTruncated
	}
	ceLen := int(data[0])
	data = data[1:]
	if ceLen > 0 {
		if len(data) < ceLen {
			return GainMapBundle{}, ErrTruncated
		}
		b.ColorEncoding = append([]byte(nil), data[:ceLen]...)
		data = data[ceLen:]
	}

	if len(data) < 4 {
		return GainMapBundle{}, ErrTruncated
	}
	iccSize := int(binary.BigEndian.Uint32(data[0:4]))
	data = data[4:]
	if len(data) < iccSize {
		return GainMapBundle{}, ErrTruncated
	}
	b.AltICC = append([]byte(nil), data[:iccSize]...)
	data = data[iccSize:]

	b.GainMap = append([]byte(nil), data...)
	return b, nil
}

// WriteToBytes serializes the bundle back into a jhgm box payload. It is
// the exact inverse of FromBytes.
func (b GainMapBundle) WriteToBytes() ([]byte, error) {
	if len(b.Metadata) > 0xffff {
		return nil, ErrMetadataTooLong
	}
	if len(b.ColorEncoding) > 0xff {
		return nil, ErrColorEncoding
	}
	if len(b.AltICC) > 0xffffffff {
		return nil, ErrICCTooLong
	}

	out := make([]byte, 0, 1+2+len(b.Metadata)+1+len(b.ColorEncoding)+4+len(b.AltICC)+len(b.GainMap))
	out = append(out, b.Version)

	var metaSize [2]byte
	binary.BigEndian.PutUint16(metaSize[:], uint16(len(b.Metadata)))
	out = append(out, metaSize[:]...)
	out = append(out, b.Metadata...)

	out = append(out, byte(len(b.ColorEncoding)))
	out = append(out, b.ColorEncoding...)

	var iccSize [4]byte
	binary.BigEndian.PutUint32(iccSize[:], uint32(len(b.AltICC)))
	out = append(out, iccSize[:]...)
	out = append(out, b.AltICC...)

	out = append(out, b.GainMap...)
	return out, nil
}
