package h264

// DecodeHeader splits a nal_unit_header byte into its fields. Every byte
// decodes; checking forbidden_zero_bit is left to the caller.
func DecodeHeader(b byte) Header {
	return Header{
		ForbiddenZeroBit: b >> 7,
		RefIDC:           (b >> 5) & 0b11,
		UnitType:         NALUnitType(b & 0b11111),
	}
}

// Byte packs the header back into its byte form.
func (h Header) Byte() byte {
	return h.ForbiddenZeroBit<<7 | (h.RefIDC&0b11)<<5 | byte(h.UnitType)&0b11111
}

// RBSPKind classifies the header's nal_unit_type.
func (h Header) RBSPKind() RBSPKind {
	return ClassifyRBSP(h.UnitType)
}

// Table 7-1, indexed by nal_unit_type.
var rbspByUnitType = [32]RBSPKind{
	Unspecified0:                                            Unspecified,
	CodedSliceNonIDRPicture:                                 CodedSliceNonIDR,
	CodedSliceDataPartitionA:                                CodedSliceDataPartitionAKind,
	CodedSliceDataPartitionB:                                CodedSliceDataPartitionBKind,
	CodedSliceDataPartitionC:                                CodedSliceDataPartitionCKind,
	CodedSliceIDRPicture:                                    CodedSliceIDR,
	SupplementalEnhancementInformation:                      SEI,
	SequenceParameterSet:                                    SPS,
	PictureParameterSet:                                     PPS,
	AccessUnitDelimiter:                                     AUD,
	EndOfSequence:                                           SequenceEnd,
	EndOfStream:                                             StreamEnd,
	FillerData:                                              Filler,
	SequenceParameterSetExtension:                           SPSExtension,
	PrefixNALUnit:                                           Prefix,
	SubsetSequenceParameterSet:                              SubsetSPS,
	DepthParameterSet:                                       DPS,
	Reserved17:                                              Reserved,
	Reserved18:                                              Reserved,
	CodedSliceAuxiliaryCodedPictureWithoutPartitioning:      CodedSliceAuxiliaryNonPartitioning,
	CodedSliceExtension:                                     CodedSliceExt,
	CodedSliceExtensionDepthViewComponentOr3DAVCTextureView: CodedSliceExtDepthView,
	Reserved22:                                              Reserved,
	Reserved23:                                              Reserved,
	Unspecified24:                                           Unspecified,
	Unspecified25:                                           Unspecified,
	Unspecified26:                                           Unspecified,
	Unspecified27:                                           Unspecified,
	Unspecified28:                                           Unspecified,
	Unspecified29:                                           Unspecified,
	Unspecified30:                                           Unspecified,
	Unspecified31:                                           Unspecified,
}

// ClassifyRBSP maps a nal_unit_type to its RBSP kind. Only the low five bits
// are looked at, so every value maps to a kind.
func ClassifyRBSP(t NALUnitType) RBSPKind {
	return rbspByUnitType[t&0b11111]
}

func (t NALUnitType) RBSPKind() RBSPKind {
	return ClassifyRBSP(t)
}

func (t NALUnitType) String() string {
	return ClassifyRBSP(t).String()
}

// IsSlice reports whether the unit carries coded slice data of the primary
// picture.
func (t NALUnitType) IsSlice() bool {
	return t >= CodedSliceNonIDRPicture && t <= CodedSliceIDRPicture
}
