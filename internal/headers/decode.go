package headers

// DecodeSize reads a Size using the schema's u2S selector quad:
// small images (<=512 on a side) cost 11 bits per dimension (a 2-bit
// selector plus 9 bits), larger images fall back to wider fixed-width
// fields.
func DecodeSize(br BitSource) (Size, error) {
	w, err := ReadU2Selector(br, [4]U2SelectorBranch{
		BitsPlus(9, 1),
		BitsPlus(13, 1),
		BitsPlus(18, 1),
		BitsPlus(30, 1),
	})
	if err != nil {
		return Size{}, err
	}
	h, err := ReadU2Selector(br, [4]U2SelectorBranch{
		BitsPlus(9, 1),
		BitsPlus(13, 1),
		BitsPlus(18, 1),
		BitsPlus(30, 1),
	})
	if err != nil {
		return Size{}, err
	}
	return Size{Width: w, Height: h}, nil
}

// DecodeBitDepth reads a BitDepth per spec.md §4.3's all_default
// shortcut plus a float/integer branch.
func DecodeBitDepth(br BitSource) (BitDepth, error) {
	allDefault, err := AllDefault(br)
	if err != nil {
		return BitDepth{}, err
	}
	if allDefault {
		return BitDepth{BitsPerSample: 8}, nil
	}
	floatSamples, err := ReadBool(br)
	if err != nil {
		return BitDepth{}, err
	}
	bits, err := ReadU2Selector(br, [4]U2SelectorBranch{
		Const(8),
		BitsPlus(6, 1),
		BitsPlus(6, 1),
		BitsPlus(6, 1),
	})
	if err != nil {
		return BitDepth{}, err
	}
	bd := BitDepth{FloatSamples: floatSamples, BitsPerSample: bits}
	if floatSamples {
		exp, err := ReadBitsPlus(br, 4, 1)
		if err != nil {
			return BitDepth{}, err
		}
		bd.ExponentBitsPerSample = exp
	}
	if err := bd.Validate(); err != nil {
		return BitDepth{}, err
	}
	return bd, nil
}

var extraChannelTypeTable = map[uint64]ExtraChannelType{
	0: ExtraChannelAlpha,
	1: ExtraChannelDepth,
	2: ExtraChannelSpotColor,
	3: ExtraChannelSelectionMask,
	4: ExtraChannelBlack,
	5: ExtraChannelCFA,
	6: ExtraChannelThermal,
	7: ExtraChannelOptional,
}

// DecodeExtraChannelInfo reads one ExtraChannelInfo, spec.md §4.3.
func DecodeExtraChannelInfo(br BitSource) (ExtraChannelInfo, error) {
	allDefault, err := AllDefault(br)
	if err != nil {
		return ExtraChannelInfo{}, err
	}
	if allDefault {
		return ExtraChannelInfo{Type: ExtraChannelAlpha, BitDepth: BitDepth{BitsPerSample: 8}}, nil
	}
	typ, err := ReadEnum(br, 3, "ExtraChannelInfo.Type", extraChannelTypeTable)
	if err != nil {
		return ExtraChannelInfo{}, err
	}
	bd, err := DecodeBitDepth(br)
	if err != nil {
		return ExtraChannelInfo{}, err
	}
	dimShift, err := br.Read(3)
	if err != nil {
		return ExtraChannelInfo{}, err
	}
	nameLen, err := ReadBitsPlus(br, 16, 0)
	if err != nil {
		return ExtraChannelInfo{}, err
	}
	name := make([]byte, nameLen)
	for i := range name {
		b, err := br.Read(8)
		if err != nil {
			return ExtraChannelInfo{}, err
		}
		name[i] = byte(b)
	}
	info := ExtraChannelInfo{
		Type:       typ,
		BitDepth:   bd,
		DimShift:   uint32(dimShift),
		NameLength: nameLen,
		Name:       string(name),
	}
	if typ == ExtraChannelAlpha {
		assoc, err := ReadBool(br)
		if err != nil {
			return ExtraChannelInfo{}, err
		}
		info.AlphaAssociated = assoc
	}
	if err := info.Validate(); err != nil {
		return ExtraChannelInfo{}, err
	}
	return info, nil
}

var colorSpaceTable = map[uint64]ColorSpace{
	0: ColorSpaceRGB,
	1: ColorSpaceGray,
	2: ColorSpaceXYB,
	3: ColorSpaceUnknown,
}
var whitePointTable = map[uint64]WhitePoint{
	0: WhitePointD65,
	1: WhitePointCustom,
	2: WhitePointE,
	3: WhitePointDCI,
}
var primariesTable = map[uint64]Primaries{
	0: PrimariesSRGB,
	1: PrimariesCustom,
	2: PrimariesBT2100,
	3: PrimariesP3,
}
var transferTable = map[uint64]TransferFunction{
	0: TransferSRGB,
	1: TransferLinear,
	2: TransferPQ,
	3: TransferDCI,
	4: TransferHLG,
	5: TransferGamma,
}
var renderingIntentTable = map[uint64]RenderingIntent{
	0: RenderingIntentPerceptual,
	1: RenderingIntentRelative,
	2: RenderingIntentSaturation,
	3: RenderingIntentAbsolute,
}

// readCIECoord reads a 19-bit field and reinterprets it as a
// fixed-point value in [0,4) scaled by 1<<17, the representation the
// schema uses for white-point/primary chromaticities.
func readCIECoord(br BitSource) (float64, error) {
	v, err := br.Read(19)
	if err != nil {
		return 0, err
	}
	return float64(v) / (1 << 17), nil
}

// DecodeColorEncoding reads a ColorEncoding, spec.md §4.3.
func DecodeColorEncoding(br BitSource) (ColorEncoding, error) {
	allDefault, err := AllDefault(br)
	if err != nil {
		return ColorEncoding{}, err
	}
	if allDefault {
		return ColorEncoding{
			ColorSpace:       ColorSpaceRGB,
			WhitePoint:       WhitePointD65,
			Primaries:        PrimariesSRGB,
			TransferFunction: TransferSRGB,
			RenderingIntent:  RenderingIntentRelative,
		}, nil
	}
	cs, err := ReadEnum(br, 2, "ColorEncoding.ColorSpace", colorSpaceTable)
	if err != nil {
		return ColorEncoding{}, err
	}
	ce := ColorEncoding{ColorSpace: cs}

	wp, err := ReadEnum(br, 2, "ColorEncoding.WhitePoint", whitePointTable)
	if err != nil {
		return ColorEncoding{}, err
	}
	ce.WhitePoint = wp
	if wp == WhitePointCustom {
		x, err := readCIECoord(br)
		if err != nil {
			return ColorEncoding{}, err
		}
		y, err := readCIECoord(br)
		if err != nil {
			return ColorEncoding{}, err
		}
		ce.WhiteX, ce.WhiteY = x, y
	}

	if cs != ColorSpaceGray {
		pr, err := ReadEnum(br, 2, "ColorEncoding.Primaries", primariesTable)
		if err != nil {
			return ColorEncoding{}, err
		}
		ce.Primaries = pr
		if pr == PrimariesCustom {
			for i := 0; i < 3; i++ {
				x, err := readCIECoord(br)
				if err != nil {
					return ColorEncoding{}, err
				}
				y, err := readCIECoord(br)
				if err != nil {
					return ColorEncoding{}, err
				}
				ce.PrimariesRGB[i] = [2]float64{x, y}
			}
		}
	}

	tf, err := ReadEnum(br, 3, "ColorEncoding.TransferFunction", transferTable)
	if err != nil {
		return ColorEncoding{}, err
	}
	ce.TransferFunction = tf
	if tf == TransferGamma {
		g, err := br.Read(24)
		if err != nil {
			return ColorEncoding{}, err
		}
		ce.Gamma = float64(g) / (1 << 24)
	}

	ri, err := ReadEnum(br, 2, "ColorEncoding.RenderingIntent", renderingIntentTable)
	if err != nil {
		return ColorEncoding{}, err
	}
	ce.RenderingIntent = ri
	return ce, nil
}

// DecodePreview reads an optional Preview.
func DecodePreview(br BitSource) (Preview, error) {
	present, err := ReadBool(br)
	if err != nil {
		return Preview{}, err
	}
	if !present {
		return Preview{}, nil
	}
	sz, err := DecodeSize(br)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Present: true, Size: sz}, nil
}

// DecodeAnimation reads optional Animation metadata.
func DecodeAnimation(br BitSource) (Animation, error) {
	present, err := ReadBool(br)
	if err != nil {
		return Animation{}, err
	}
	if !present {
		return Animation{}, nil
	}
	numer, err := ReadBitsPlus(br, 32, 1)
	if err != nil {
		return Animation{}, err
	}
	denom, err := ReadBitsPlus(br, 32, 1)
	if err != nil {
		return Animation{}, err
	}
	loops, err := ReadBitsPlus(br, 32, 0)
	if err != nil {
		return Animation{}, err
	}
	haveTC, err := ReadBool(br)
	if err != nil {
		return Animation{}, err
	}
	return Animation{Present: true, TPSNumer: numer, TPSDenom: denom, NumLoops: loops, HaveTimecodes: haveTC}, nil
}

// DecodeImageMetadata reads the ImageMetadata block of a FileHeader.
func DecodeImageMetadata(br BitSource) (ImageMetadata, error) {
	size, err := DecodeSize(br)
	if err != nil {
		return ImageMetadata{}, err
	}
	bd, err := DecodeBitDepth(br)
	if err != nil {
		return ImageMetadata{}, err
	}
	numExtra, err := br.Read(4)
	if err != nil {
		return ImageMetadata{}, err
	}
	extras := make([]ExtraChannelInfo, numExtra)
	for i := range extras {
		e, err := DecodeExtraChannelInfo(br)
		if err != nil {
			return ImageMetadata{}, err
		}
		extras[i] = e
	}
	ce, err := DecodeColorEncoding(br)
	if err != nil {
		return ImageMetadata{}, err
	}
	xyb, err := ReadBool(br)
	if err != nil {
		return ImageMetadata{}, err
	}
	orientation, err := br.Read(3)
	if err != nil {
		return ImageMetadata{}, err
	}
	preview, err := DecodePreview(br)
	if err != nil {
		return ImageMetadata{}, err
	}
	anim, err := DecodeAnimation(br)
	if err != nil {
		return ImageMetadata{}, err
	}
	return ImageMetadata{
		Size:          size,
		BitDepth:      bd,
		ExtraChannels: extras,
		ColorEncoding: ce,
		XYBEncoded:    xyb,
		Orientation:   uint32(orientation) + 1,
		Preview:       preview,
		Animation:     anim,
		IntrinsicSize: size,
	}, nil
}

// DecodeFileHeader reads the whole-image FileHeader.
func DecodeFileHeader(br BitSource) (FileHeader, error) {
	meta, err := DecodeImageMetadata(br)
	if err != nil {
		return FileHeader{}, err
	}
	return FileHeader{Metadata: meta}, nil
}

// DecodeFrameHeader reads one FrameHeader.
func DecodeFrameHeader(br BitSource, fileSize Size) (FrameHeader, error) {
	allDefault, err := AllDefault(br)
	if err != nil {
		return FrameHeader{}, err
	}
	if allDefault {
		return FrameHeader{
			Encoding:     EncodingVarDCT,
			Width:        fileSize.Width,
			Height:       fileSize.Height,
			GroupSizeLog: 8,
			NumPasses:    1,
			IsLast:       true,
		}, nil
	}
	encBit, err := br.Read(1)
	if err != nil {
		return FrameHeader{}, err
	}
	encoding := EncodingVarDCT
	if encBit == 1 {
		encoding = EncodingModular
	}
	cropW, err := ReadU2Selector(br, [4]U2SelectorBranch{
		Const(fileSize.Width),
		BitsPlus(9, 1),
		BitsPlus(13, 1),
		BitsPlus(18, 1),
	})
	if err != nil {
		return FrameHeader{}, err
	}
	cropH, err := ReadU2Selector(br, [4]U2SelectorBranch{
		Const(fileSize.Height),
		BitsPlus(9, 1),
		BitsPlus(13, 1),
		BitsPlus(18, 1),
	})
	if err != nil {
		return FrameHeader{}, err
	}
	groupSizeLog, err := br.Read(2)
	if err != nil {
		return FrameHeader{}, err
	}
	passes, err := ReadBitsPlus(br, 3, 1)
	if err != nil {
		return FrameHeader{}, err
	}
	isLast, err := ReadBool(br)
	if err != nil {
		return FrameHeader{}, err
	}
	return FrameHeader{
		Encoding:     encoding,
		Width:        cropW,
		Height:       cropH,
		GroupSizeLog: int(groupSizeLog) + 7,
		NumPasses:    passes,
		IsLast:       isLast,
	}, nil
}

// DecodeToc reads a frame's Toc, per spec.md §3's invariants.
func DecodeToc(br BitSource, numEntries int) (Toc, error) {
	permuted, err := ReadBool(br)
	if err != nil {
		return Toc{}, err
	}
	t := Toc{Entries: make([]uint32, numEntries), Permuted: permuted}
	if permuted {
		perm := make(Permutation, numEntries)
		for i := range perm {
			v, err := ReadBitsPlus(br, 32, 0)
			if err != nil {
				return Toc{}, err
			}
			perm[i] = v
		}
		t.Permutation = perm
	}
	for i := range t.Entries {
		v, err := ReadBitsPlus(br, 30, 0)
		if err != nil {
			return Toc{}, err
		}
		t.Entries[i] = v
	}
	if err := t.Validate(numEntries); err != nil {
		return Toc{}, err
	}
	return t, nil
}

// DecodeCustomTransformData reads optional non-default transform
// weights.
func DecodeCustomTransformData(br BitSource, numWeights int) (CustomTransformData, error) {
	present, err := ReadBool(br)
	if err != nil {
		return CustomTransformData{}, err
	}
	if !present {
		return CustomTransformData{}, nil
	}
	weights := make([]float32, numWeights)
	for i := range weights {
		v, err := br.Read(24)
		if err != nil {
			return CustomTransformData{}, err
		}
		weights[i] = float32(v) / (1 << 16)
	}
	return CustomTransformData{Present: true, Weights: weights}, nil
}
