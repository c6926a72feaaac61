// Package annexb splits H.264 Annex B byte streams into NAL unit spans.
//
// Rec. ITU-T H.264 (08/2021) Annex B. Spans are windows into the caller's
// buffer: nothing is copied and emulation prevention bytes are left in place.
package annexb

const (
	// DefaultScanWidth is the chunk width used when callers have no preference.
	DefaultScanWidth = 64

	// EmulationPreventionByte may appear inside a NAL unit after two zero bytes
	// so that the payload never emulates a start code prefix.
	EmulationPreventionByte byte = 0x03
)

// StartCodePrefix delimits NAL units in the byte stream.
var StartCodePrefix = [3]byte{0x00, 0x00, 0x01}

// StartCode is a zero_byte followed by StartCodePrefix, the four-byte marker
// that opens the stream and every parameter set.
var StartCode = [4]byte{0x00, 0x00, 0x00, 0x01}

// Span locates the payload of one NAL unit inside a buffer. The header byte is
// included, the start code and trailing zero padding are not.
type Span struct {
	Offset int
	Length int
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Bytes returns the span's window into buf without copying.
func (s Span) Bytes(buf []byte) []byte {
	return buf[s.Offset:s.End():s.End()]
}

// Join serializes the spans back into a byte stream, each one prefixed with
// StartCode. Zero padding between units is not reproduced.
func Join(buf []byte, spans []Span) []byte {
	size := 0
	for _, s := range spans {
		size += len(StartCode) + s.Length
	}

	out := make([]byte, 0, size)
	for _, s := range spans {
		out = append(out, StartCode[:]...)
		out = append(out, s.Bytes(buf)...)
	}
	return out
}

// Unescape appends src to dst with every emulation prevention byte removed,
// i.e. each 0x03 following two zero bytes. The result no longer aliases the
// original buffer.
func Unescape(dst, src []byte) []byte {
	zeros := 0
	for _, b := range src {
		if zeros >= 2 && b == EmulationPreventionByte {
			zeros = 0
			continue
		}
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
		dst = append(dst, b)
	}
	return dst
}
