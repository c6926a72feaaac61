package mapper

import (
	"fmt"

	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"go.uber.org/zap"
)

type Mapper struct {
	l *zap.SugaredLogger
}

func NewMapper(l *zap.SugaredLogger) *Mapper {
	return &Mapper{l: l}
}

// FromNALToEntityUnit maps a parsed unit, previewing at most preview payload bytes.
func (m *Mapper) FromNALToEntityUnit(index int, n h264.NAL, preview int) entities.Unit {
	u := entities.Unit{
		Index:            index,
		Offset:           n.Offset,
		Length:           n.Length,
		ForbiddenZeroBit: n.ForbiddenZeroBit,
		RefIDC:           n.RefIDC,
		UnitType:         uint8(n.UnitType),
		Kind:             n.Kind.String(),
	}

	if preview > 0 {
		u.Preview = fmt.Sprintf("% X", n.Data[:min(preview, len(n.Data))])
	}

	if n.ForbiddenZeroBit != 0 {
		m.l.Warnw("forbidden_zero_bit is set",
			"offset", n.Offset,
			"header", fmt.Sprintf("0x%02X", n.HeaderByte),
		)
	}

	return u
}

// FromNALUsToKindCounts tallies units per RBSP kind, in h264.RBSPKinds order.
// Kinds that never occur are left out.
func (m *Mapper) FromNALUsToKindCounts(nalus h264.NALUs) []entities.KindCount {
	counts := map[h264.RBSPKind]*entities.KindCount{}
	for _, u := range nalus.Units {
		c, ok := counts[u.Kind]
		if !ok {
			c = &entities.KindCount{Kind: u.Kind.String()}
			counts[u.Kind] = c
		}
		c.Count++
		c.Bytes += u.Length
	}

	result := []entities.KindCount{}
	for _, k := range h264.RBSPKinds() {
		if c, ok := counts[k]; ok {
			result = append(result, *c)
		}
	}
	return result
}
