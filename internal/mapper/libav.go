package mapper

import (
	"github.com/asticode/go-astiav"
	"github.com/flavioribeiro/nalscan/internal/entities"
)

func (m *Mapper) FromLibAVStreamToEntityStream(libavStream *astiav.Stream) entities.Stream {
	return entities.Stream{
		Codec: m.FromLibAVCodecIDToCodec(libavStream.CodecParameters().CodecID()),
		Type:  m.FromLibAVMediaTypeToType(libavStream.CodecParameters().MediaType()),
		Index: libavStream.Index(),
	}
}

func (m *Mapper) FromLibAVCodecIDToCodec(id astiav.CodecID) entities.Codec {
	switch id {
	case astiav.CodecIDH264:
		return entities.H264
	case astiav.CodecIDHevc:
		return entities.H265
	case astiav.CodecIDVp9:
		return entities.VP9
	case astiav.CodecIDAac:
		return entities.AAC
	case astiav.CodecIDOpus:
		return entities.Opus
	}
	m.l.Infow("codec not mapped", "codec", id.String())
	return entities.UnknownCodec
}

func (m *Mapper) FromLibAVMediaTypeToType(mt astiav.MediaType) entities.MediaType {
	switch mt {
	case astiav.MediaTypeVideo:
		return entities.VideoType
	case astiav.MediaTypeAudio:
		return entities.AudioType
	}
	return entities.UnknownType
}
