package entities

import (
	"fmt"
	"time"
)

type Config struct {
	// Chunk width used by every start code scan, at least 4.
	ScanWidth int `required:"true" default:"64"`

	FFmpegPath string `required:"true" default:"ffmpeg"`
	VideoCodec string `required:"true" default:"libx264"`
	// Constant rate factor handed to the encoder, 0-51 for libx264.
	CRF int `required:"true" default:"23"`
	// Directory for transcoded elementary streams, empty means next to the input.
	OutputDir string `default:""`

	// Number of payload bytes shown per unit in listings.
	PreviewBytes int  `required:"true" default:"16"`
	Debug        bool `default:"false"`
}

func (c *Config) Valid() error {
	if c == nil {
		return ErrMissingConfig
	}

	if c.ScanWidth < 4 {
		return fmt.Errorf("%w: got %d", ErrInvalidScanWidth, c.ScanWidth)
	}

	if c.FFmpegPath == "" {
		return ErrMissingFFmpegPath
	}

	if c.CRF < 0 || c.CRF > 51 {
		return fmt.Errorf("%w: got %d", ErrInvalidCRF, c.CRF)
	}

	return nil
}

type Codec string
type MediaType string

const (
	UnknownCodec Codec = "unknownCodec"
	H264         Codec = "h264"
	H265         Codec = "h265"
	VP9          Codec = "vp9"
	AAC          Codec = "aac"
	Opus         Codec = "opus"
)

const (
	UnknownType MediaType = "unknownMediaType"
	VideoType   MediaType = "video"
	AudioType   MediaType = "audio"
)

type Stream struct {
	Codec Codec
	Type  MediaType
	Index int
}

// StreamInfo describes a media file as reported by the prober.
type StreamInfo struct {
	// Container or elementary stream format name, e.g. "mov,mp4,m4a,3gp,3g2,mj2" or "h264".
	Format   string
	Duration time.Duration
	Streams  []Stream
}

func (s *StreamInfo) VideoStreams() []Stream {
	var result []Stream
	for _, s := range s.Streams {
		if s.Type == VideoType {
			result = append(result, s)
		}
	}
	return result
}

// IsRawH264 reports whether the file already is an H.264 elementary stream.
func (s *StreamInfo) IsRawH264() bool {
	if s == nil || s.Format != string(H264) {
		return false
	}
	videos := s.VideoStreams()
	return len(videos) == 1 && videos[0].Codec == H264
}

// Unit is one NAL unit as listed in a StreamReport.
type Unit struct {
	Index            int    `json:"index"`
	Offset           int    `json:"offset"`
	Length           int    `json:"length"`
	ForbiddenZeroBit uint8  `json:"forbidden_zero_bit"`
	RefIDC           uint8  `json:"nal_ref_idc"`
	UnitType         uint8  `json:"nal_unit_type"`
	Kind             string `json:"kind"`
	Preview          string `json:"preview,omitempty"`
}

type KindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
	Bytes int    `json:"bytes"`
}

// StreamReport summarizes one segmented elementary stream.
type StreamReport struct {
	Source       string      `json:"source"`
	SizeBytes    int         `json:"size_bytes"`
	ScanWidth    int         `json:"scan_width"`
	Units        []Unit      `json:"units,omitempty"`
	Kinds        []KindCount `json:"kinds"`
	PayloadBytes int         `json:"payload_bytes"`
	// Set when segmentation stopped early; Units holds what was found before.
	Error string `json:"error,omitempty"`
}
