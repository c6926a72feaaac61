package h264

import (
	"errors"

	"github.com/flavioribeiro/nalscan/annexb"
)

var ErrForbiddenZeroBit = errors.New("forbidden_zero_bit is not 0")
var ErrEmptyNAL = errors.New("NAL unit has no header byte")

// Parser segments Annex B streams and classifies their units.
type Parser struct {
	segmenter *annexb.Segmenter
}

func NewParser(scanWidth int) (*Parser, error) {
	s, err := annexb.NewSegmenter(scanWidth)
	if err != nil {
		return nil, err
	}
	return &Parser{segmenter: s}, nil
}

// ParseNALUs parses data with annexb.DefaultScanWidth.
func ParseNALUs(data []byte) (NALUs, error) {
	p, err := NewParser(annexb.DefaultScanWidth)
	if err != nil {
		return NALUs{}, err
	}
	return p.Parse(data)
}

// Parse returns every NAL unit of data in stream order. Units alias data.
// When segmentation fails midway the units found so far are returned with the
// error.
func (p *Parser) Parse(data []byte) (NALUs, error) {
	spans, segErr := p.segmenter.Segment(data)
	if len(spans) == 0 {
		return NALUs{}, segErr
	}

	headerBytes := make([]byte, len(spans))
	for i, s := range spans {
		headerBytes[i] = data[s.Offset]
	}
	headers := DecodeHeaders(headerBytes)

	nalus := NALUs{Units: make([]NAL, len(spans))}
	for i, s := range spans {
		h := headers.At(i)
		nalus.Units[i] = NAL{
			Offset:     s.Offset,
			Length:     s.Length,
			HeaderByte: headerBytes[i],
			Header:     h,
			Kind:       h.RBSPKind(),
			Data:       s.Bytes(data),
		}
	}

	return nalus, segErr
}

// ParseNAL parses a single unit without its start code.
func ParseNAL(data []byte) (NAL, error) {
	if len(data) == 0 {
		return NAL{}, ErrEmptyNAL
	}

	h := DecodeHeader(data[0])
	if h.ForbiddenZeroBit != 0 {
		return NAL{}, ErrForbiddenZeroBit
	}

	return NAL{
		Length:     len(data),
		HeaderByte: data[0],
		Header:     h,
		Kind:       h.RBSPKind(),
		Data:       data,
	}, nil
}

// RBSP returns a copy of the unit's payload after the header byte with the
// emulation prevention bytes removed.
func (n NAL) RBSP() []byte {
	if len(n.Data) < 2 {
		return []byte{}
	}
	return annexb.Unescape(make([]byte, 0, len(n.Data)-1), n.Data[1:])
}

// Span returns the unit's location in the parsed buffer.
func (n NAL) Span() annexb.Span {
	return annexb.Span{Offset: n.Offset, Length: n.Length}
}
