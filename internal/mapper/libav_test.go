package mapper_test

import (
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestFromLibAVCodecIDToCodec(t *testing.T) {
	m := mapper.NewMapper(zaptest.NewLogger(t).Sugar())

	tests := []struct {
		in       astiav.CodecID
		expected entities.Codec
	}{
		{astiav.CodecIDH264, entities.H264},
		{astiav.CodecIDHevc, entities.H265},
		{astiav.CodecIDVp9, entities.VP9},
		{astiav.CodecIDAac, entities.AAC},
		{astiav.CodecIDOpus, entities.Opus},
		{astiav.CodecID(0), entities.UnknownCodec},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, m.FromLibAVCodecIDToCodec(tt.in), tt.in.String())
	}
}

func TestFromLibAVMediaTypeToType(t *testing.T) {
	m := mapper.NewMapper(zaptest.NewLogger(t).Sugar())

	assert.Equal(t, entities.VideoType, m.FromLibAVMediaTypeToType(astiav.MediaTypeVideo))
	assert.Equal(t, entities.AudioType, m.FromLibAVMediaTypeToType(astiav.MediaTypeAudio))
	assert.Equal(t, entities.UnknownType, m.FromLibAVMediaTypeToType(astiav.MediaTypeSubtitle))
}
