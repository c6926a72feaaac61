package mapper_test

import (
	"testing"

	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromNALToEntityUnit(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := mapper.NewMapper(zap.New(core).Sugar())

	nal, err := h264.ParseNAL([]byte{0x67, 0x42, 0xC0, 0x1E})
	require.NoError(t, err)
	nal.Offset = 10

	u := m.FromNALToEntityUnit(3, nal, 2)
	assert.Equal(t, entities.Unit{
		Index:    3,
		Offset:   10,
		Length:   4,
		RefIDC:   3,
		UnitType: 7,
		Kind:     h264.SPS.String(),
		Preview:  "67 42",
	}, u)

	u = m.FromNALToEntityUnit(3, nal, 100)
	assert.Equal(t, "67 42 C0 1E", u.Preview)

	u = m.FromNALToEntityUnit(3, nal, 0)
	assert.Empty(t, u.Preview)

	assert.Zero(t, logs.Len())
}

func TestFromNALToEntityUnit_ForbiddenBit(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := mapper.NewMapper(zap.New(core).Sugar())

	nalus, err := h264.ParseNALUs([]byte{0x00, 0x00, 0x00, 0x01, 0xE7, 0x42})
	require.NoError(t, err)
	require.Len(t, nalus.Units, 1)

	u := m.FromNALToEntityUnit(0, nalus.Units[0], 0)

	assert.Equal(t, uint8(1), u.ForbiddenZeroBit)
	assert.Equal(t, h264.SPS.String(), u.Kind)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "0xE7", logs.All()[0].ContextMap()["header"])
}

func TestFromNALUsToKindCounts(t *testing.T) {
	m := mapper.NewMapper(zap.NewNop().Sugar())

	nalus, err := h264.ParseNALUs([]byte{
		0x00, 0x00, 0x00, 0x01, 0x68, 0xCE,
		0x00, 0x00, 0x01, 0x67, 0x42, 0xC0,
		0x00, 0x00, 0x01, 0x41,
		0x00, 0x00, 0x01, 0x68, 0xEE, 0x01,
	})
	require.NoError(t, err)

	assert.Equal(t, []entities.KindCount{
		{Kind: h264.CodedSliceNonIDR.String(), Count: 1, Bytes: 1},
		{Kind: h264.SPS.String(), Count: 1, Bytes: 3},
		{Kind: h264.PPS.String(), Count: 2, Bytes: 5},
	}, m.FromNALUsToKindCounts(nalus))

	assert.Equal(t, []entities.KindCount{}, m.FromNALUsToKindCounts(h264.NALUs{}))
}
