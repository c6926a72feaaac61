package probers

import (
	"fmt"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type LibAVFFmpeg struct {
	c *entities.Config
	l *zap.SugaredLogger
	m *mapper.Mapper
}

type ResultLibAVFFmpeg struct {
	fx.Out
	LibAVFFmpegProber Prober
}

// NewLibAVFFmpeg creates a new LibAVFFmpeg Prober
func NewLibAVFFmpeg(
	c *entities.Config,
	l *zap.SugaredLogger,
	m *mapper.Mapper,
) ResultLibAVFFmpeg {
	return ResultLibAVFFmpeg{
		LibAVFFmpegProber: &LibAVFFmpeg{
			c: c,
			l: l,
			m: m,
		},
	}
}

// StreamInfo opens the file with libavformat to discover its format and streams.
func (c *LibAVFFmpeg) StreamInfo(path string) (*entities.StreamInfo, error) {
	if path == "" {
		return nil, entities.ErrMissingInputFile
	}

	closer := astikit.NewCloser()
	defer closer.Close()

	var inputFormatContext *astiav.FormatContext
	if inputFormatContext = astiav.AllocFormatContext(); inputFormatContext == nil {
		return nil, entities.ErrFFmpegLibAVFormatContextIsNil
	}
	closer.Add(inputFormatContext.Free)

	// letting libavformat guess the format, raw elementary streams included
	if err := inputFormatContext.OpenInput(path, nil, nil); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, entities.ErrFFmpegLibAVFormatContextOpenInputFailed, err)
	}
	closer.Add(inputFormatContext.CloseInput)

	if err := inputFormatContext.FindStreamInfo(nil); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, entities.ErrFFmpegLibAVFindStreamInfo, err)
	}

	si := &entities.StreamInfo{}
	if f := inputFormatContext.InputFormat(); f != nil {
		si.Format = f.Name()
	}
	if d := inputFormatContext.Duration(); d > 0 {
		// AV_TIME_BASE is microseconds
		si.Duration = time.Duration(d) * time.Microsecond
	}

	for _, is := range inputFormatContext.Streams() {
		if is.CodecParameters().MediaType() != astiav.MediaTypeAudio &&
			is.CodecParameters().MediaType() != astiav.MediaTypeVideo {
			c.l.Infow("skipping media type",
				"type", is.CodecParameters().MediaType().String(),
				"index", is.Index(),
			)
			continue
		}
		si.Streams = append(si.Streams, c.m.FromLibAVStreamToEntityStream(is))
	}

	c.l.Debugw("probed input",
		"path", path,
		"format", si.Format,
		"streams", len(si.Streams),
	)

	return si, nil
}
