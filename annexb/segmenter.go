package annexb

import (
	"bytes"
	"errors"
)

// Preprocess returns the offset of the first StartCode in buf, skipping any
// leading zero_byte padding. width is the scan width and must be at least
// len(StartCode).
func Preprocess(buf []byte, width int) (int, error) {
	m, err := NewChunkMatcher(StartCode[:], width)
	if err != nil {
		return 0, err
	}
	return preprocess(m, buf)
}

func preprocess(m Matcher, buf []byte) (int, error) {
	at, err := m.Index(buf, 0)
	if err != nil {
		if errors.Is(err, ErrTermination) {
			return 0, &TerminationError{Offset: 0, Stage: "locating the first start code"}
		}
		return 0, err
	}
	return at, nil
}

// Segment splits buf into NAL unit spans using a scan width of width bytes.
func Segment(buf []byte, width int) ([]Span, error) {
	s, err := NewSegmenter(width)
	if err != nil {
		return nil, err
	}
	return s.Segment(buf)
}

// Segmenter splits byte streams into NAL unit spans. It only holds its
// configuration, so one Segmenter may serve concurrent Segment calls.
type Segmenter struct {
	width int
}

func NewSegmenter(width int) (*Segmenter, error) {
	if width < len(StartCode) {
		return nil, &ConfigurationError{Width: width, PatternLen: len(StartCode)}
	}
	return &Segmenter{width: width}, nil
}

func (s *Segmenter) Width() int {
	return s.width
}

// Segment returns the spans of every NAL unit in buf, in stream order.
//
// A buffer without any StartCode fails with a *TerminationError and no spans.
// Any later failure returns the spans found up to that point together with the
// error.
func (s *Segmenter) Segment(buf []byte) ([]Span, error) {
	p, err := s.newPass(buf)
	if err != nil {
		return nil, err
	}
	return p.run()
}

type state int

const (
	stateAwaitingFirstMarker state = iota
	stateAtStartCode
	stateScanningBody
	stateAtBoundary
	stateResyncing
	stateDone
)

// pass is the state of one Segment call.
type pass struct {
	buf   []byte
	state state

	cursor int
	start  int // first byte of the current unit

	boundary    int  // offset of the three bytes that ended the current unit
	prefixFound bool // the boundary was a StartCodePrefix rather than zero padding

	marker *ChunkMatcher // StartCode
	zeros  *ChunkMatcher // the two zero bytes every boundary begins with

	spans []Span
}

func (s *Segmenter) newPass(buf []byte) (*pass, error) {
	marker, err := NewChunkMatcher(StartCode[:], s.width)
	if err != nil {
		return nil, err
	}
	zeros, err := NewChunkMatcher(StartCodePrefix[:2], s.width)
	if err != nil {
		return nil, err
	}
	return &pass{
		buf:    buf,
		marker: marker,
		zeros:  zeros,
	}, nil
}

func (p *pass) run() ([]Span, error) {
	for {
		var err error
		switch p.state {
		case stateAwaitingFirstMarker:
			var at int
			if at, err = preprocess(p.marker, p.buf); err != nil {
				return nil, err
			}
			p.cursor = at
			p.state = stateAtStartCode
		case stateAtStartCode:
			err = p.atStartCode()
		case stateScanningBody:
			err = p.scanBody()
		case stateAtBoundary:
			err = p.atBoundary()
		case stateResyncing:
			err = p.resync()
		case stateDone:
			return p.spans, nil
		}
		if err != nil {
			return p.spans, err
		}
	}
}

func (p *pass) atStartCode() error {
	end := min(p.cursor+len(StartCode), len(p.buf))
	if got := p.buf[p.cursor:end]; !bytes.Equal(got, StartCode[:]) {
		return &IncorrectByteSequenceError{
			Offset:   p.cursor,
			Expected: StartCode[:],
			Got:      append([]byte(nil), got...),
		}
	}

	p.cursor = end
	p.start = end
	p.state = stateScanningBody
	return nil
}

func (p *pass) scanBody() error {
	at, err := p.zeros.Index(p.buf, p.cursor)
	if err != nil {
		if !errors.Is(err, ErrTermination) {
			return err
		}
		// end of stream, the unit owns the final byte
		if err := p.emit(len(p.buf)); err != nil {
			return err
		}
		p.cursor = len(p.buf)
		p.state = stateDone
		return nil
	}

	// the third byte is compared with one zero of padding past the end
	var third byte
	if at+2 < len(p.buf) {
		third = p.buf[at+2]
	}

	switch third {
	case StartCodePrefix[2]:
		p.prefixFound = true
	case 0x00:
		p.prefixFound = false
	default:
		// 00 00 03 and friends belong to the payload
		p.cursor = at + 1
		return nil
	}

	p.boundary = at
	p.cursor = at
	p.state = stateAtBoundary
	return nil
}

func (p *pass) atBoundary() error {
	if err := p.emit(p.boundary); err != nil {
		return err
	}

	if p.prefixFound {
		p.cursor = min(p.boundary+len(StartCodePrefix), len(p.buf))
		p.start = p.cursor
		p.state = stateScanningBody
		return nil
	}

	// The zeros stay under the cursor: they may be the head of the next
	// StartCode.
	p.state = stateResyncing
	return nil
}

func (p *pass) resync() error {
	at, err := p.marker.Index(p.buf, p.cursor)
	if err != nil {
		if !errors.Is(err, ErrTermination) {
			return err
		}
		if _, ok := firstNonZero(p.buf, p.cursor); ok {
			return &TerminationError{Offset: p.cursor, Stage: "resynchronizing after a unit"}
		}
		// trailing_zero_8bits up to the end of the stream
		p.cursor = len(p.buf)
		p.state = stateDone
		return nil
	}

	if off, ok := firstNonZero(p.buf[:at], p.cursor); ok {
		return &UnexpectedByteError{Offset: off, Found: p.buf[off], Expected: "0x00"}
	}

	p.cursor = at
	p.state = stateAtStartCode
	return nil
}

// emit closes the current unit at end. Empty units are dropped.
func (p *pass) emit(end int) error {
	if end < p.start {
		return &MisalignedIndicesError{Start: p.start, End: end}
	}
	if end > p.start {
		p.spans = append(p.spans, Span{Offset: p.start, Length: end - p.start})
	}
	return nil
}

func firstNonZero(buf []byte, from int) (int, bool) {
	for i := from; i < len(buf); i++ {
		if buf[i] != 0x00 {
			return i, true
		}
	}
	return 0, false
}
