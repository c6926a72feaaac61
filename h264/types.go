package h264

import "fmt"

type NALUs struct {
	Units []NAL
}

// HeaderBytes returns the first byte of every unit, in stream order.
func (n NALUs) HeaderBytes() []byte {
	headers := make([]byte, len(n.Units))
	for i, u := range n.Units {
		headers[i] = u.HeaderByte
	}
	return headers
}

// Rec. ITU-T H.264 (08/2021) p.43
type NAL struct {
	// Offset and Length locate the unit inside the parsed buffer, start code
	// excluded.
	Offset int
	Length int

	HeaderByte byte
	Header
	Kind RBSPKind

	// Data aliases the parsed buffer and still carries emulation prevention
	// bytes, see RBSP.
	Data []byte
}

// Header is the one byte nal_unit_header.
type Header struct {
	ForbiddenZeroBit uint8
	RefIDC           uint8
	UnitType         NALUnitType
}

type NALUnitType byte

const (
	// Rec. ITU-T H.264 (08/2021) p.65
	Unspecified0                                            = NALUnitType(0)  //	Unspecified
	CodedSliceNonIDRPicture                                 = NALUnitType(1)  //	Coded slice of a non-IDR picture
	CodedSliceDataPartitionA                                = NALUnitType(2)  //	Coded slice data partition A
	CodedSliceDataPartitionB                                = NALUnitType(3)  //	Coded slice data partition B
	CodedSliceDataPartitionC                                = NALUnitType(4)  //	Coded slice data partition C
	CodedSliceIDRPicture                                    = NALUnitType(5)  //	Coded slice of an IDR picture
	SupplementalEnhancementInformation                      = NALUnitType(6)  //	Supplemental enhancement information (SEI)
	SequenceParameterSet                                    = NALUnitType(7)  //	Sequence parameter set
	PictureParameterSet                                     = NALUnitType(8)  //	Picture parameter set
	AccessUnitDelimiter                                     = NALUnitType(9)  //	Access unit delimiter
	EndOfSequence                                           = NALUnitType(10) //	End of sequence
	EndOfStream                                             = NALUnitType(11) //	End of stream
	FillerData                                              = NALUnitType(12) //	Filler data
	SequenceParameterSetExtension                           = NALUnitType(13) //	Sequence parameter set extension
	PrefixNALUnit                                           = NALUnitType(14) //	Prefix NAL unit
	SubsetSequenceParameterSet                              = NALUnitType(15) //	Subset sequence parameter set
	DepthParameterSet                                       = NALUnitType(16) //	Depth parameter set
	Reserved17                                              = NALUnitType(17) //	Reserved
	Reserved18                                              = NALUnitType(18) //	Reserved
	CodedSliceAuxiliaryCodedPictureWithoutPartitioning      = NALUnitType(19) //	Coded slice of an auxiliary coded  picture without partitioning
	CodedSliceExtension                                     = NALUnitType(20) //	Coded slice extension
	CodedSliceExtensionDepthViewComponentOr3DAVCTextureView = NALUnitType(21) //	Coded slice extension for a depth view component or a 3D-AVC texture view component
	Reserved22                                              = NALUnitType(22) //	Reserved
	Reserved23                                              = NALUnitType(23) //	Reserved
	Unspecified24                                           = NALUnitType(24) //	Unspecified
	Unspecified25                                           = NALUnitType(25) //	Unspecified
	Unspecified26                                           = NALUnitType(26) //	Unspecified
	Unspecified27                                           = NALUnitType(27) //	Unspecified
	Unspecified28                                           = NALUnitType(28) //	Unspecified
	Unspecified29                                           = NALUnitType(29) //	Unspecified
	Unspecified30                                           = NALUnitType(30) //	Unspecified
	Unspecified31                                           = NALUnitType(31) //	Unspecified
)

// RBSPKind is the RBSP syntax structure a NAL unit carries, Table 7-1.
type RBSPKind uint8

const (
	Unspecified RBSPKind = iota
	CodedSliceNonIDR
	CodedSliceDataPartitionAKind
	CodedSliceDataPartitionBKind
	CodedSliceDataPartitionCKind
	CodedSliceIDR
	SEI
	SPS
	PPS
	AUD
	SequenceEnd
	StreamEnd
	Filler
	SPSExtension
	Prefix
	SubsetSPS
	DPS
	Reserved
	CodedSliceAuxiliaryNonPartitioning
	CodedSliceExt
	CodedSliceExtDepthView

	numRBSPKinds
)

var rbspKindNames = [numRBSPKinds]string{
	Unspecified:                        "unspecified",
	CodedSliceNonIDR:                   "coded slice (non-IDR)",
	CodedSliceDataPartitionAKind:       "coded slice data partition A",
	CodedSliceDataPartitionBKind:       "coded slice data partition B",
	CodedSliceDataPartitionCKind:       "coded slice data partition C",
	CodedSliceIDR:                      "coded slice (IDR)",
	SEI:                                "SEI",
	SPS:                                "SPS",
	PPS:                                "PPS",
	AUD:                                "access unit delimiter",
	SequenceEnd:                        "end of sequence",
	StreamEnd:                          "end of stream",
	Filler:                             "filler data",
	SPSExtension:                       "SPS extension",
	Prefix:                             "prefix NAL unit",
	SubsetSPS:                          "subset SPS",
	DPS:                                "depth parameter set",
	Reserved:                           "reserved",
	CodedSliceAuxiliaryNonPartitioning: "coded slice (auxiliary, non-partitioned)",
	CodedSliceExt:                      "coded slice extension",
	CodedSliceExtDepthView:             "coded slice extension (depth view)",
}

func (k RBSPKind) String() string {
	if k < numRBSPKinds {
		return rbspKindNames[k]
	}
	return fmt.Sprintf("RBSPKind(%d)", uint8(k))
}

// RBSPKinds lists every kind in declaration order.
func RBSPKinds() []RBSPKind {
	kinds := make([]RBSPKind, numRBSPKinds)
	for i := range kinds {
		kinds[i] = RBSPKind(i)
	}
	return kinds
}
