package h264

import "encoding/binary"

// HeaderBatch holds decoded headers in columns, one element per input byte.
type HeaderBatch struct {
	ForbiddenZeroBits []uint8
	RefIDCs           []uint8
	UnitTypes         []uint8
}

const (
	lanes       = 8
	laneOnes    = 0x0101010101010101
	refIDCMask  = 0x03 * laneOnes
	unitTypeMsk = 0x1f * laneOnes
)

// DecodeHeaders decodes every byte of chunk as a nal_unit_header. The result
// equals calling DecodeHeader on each byte.
func DecodeHeaders(chunk []byte) HeaderBatch {
	var b HeaderBatch
	b.Decode(chunk)
	return b
}

// Decode fills the batch from chunk, reusing its backing arrays when they are
// large enough.
func (b *HeaderBatch) Decode(chunk []byte) {
	n := len(chunk)
	b.ForbiddenZeroBits = grow(b.ForbiddenZeroBits, n)
	b.RefIDCs = grow(b.RefIDCs, n)
	b.UnitTypes = grow(b.UnitTypes, n)

	// Eight headers per step: the shifts bleed bits across byte lanes, the
	// masks cut them off again.
	i := 0
	for ; i+lanes <= n; i += lanes {
		w := binary.LittleEndian.Uint64(chunk[i:])
		binary.LittleEndian.PutUint64(b.ForbiddenZeroBits[i:], (w>>7)&laneOnes)
		binary.LittleEndian.PutUint64(b.RefIDCs[i:], (w>>5)&refIDCMask)
		binary.LittleEndian.PutUint64(b.UnitTypes[i:], w&unitTypeMsk)
	}
	for ; i < n; i++ {
		h := DecodeHeader(chunk[i])
		b.ForbiddenZeroBits[i] = h.ForbiddenZeroBit
		b.RefIDCs[i] = h.RefIDC
		b.UnitTypes[i] = uint8(h.UnitType)
	}
}

func (b HeaderBatch) Len() int {
	return len(b.UnitTypes)
}

// At returns the i-th header in row form.
func (b HeaderBatch) At(i int) Header {
	return Header{
		ForbiddenZeroBit: b.ForbiddenZeroBits[i],
		RefIDC:           b.RefIDCs[i],
		UnitType:         NALUnitType(b.UnitTypes[i]),
	}
}

func grow(s []uint8, n int) []uint8 {
	if cap(s) < n {
		return make([]uint8, n)
	}
	return s[:n]
}
