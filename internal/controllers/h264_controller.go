package controllers

import (
	"github.com/flavioribeiro/nalscan/h264"
	"github.com/flavioribeiro/nalscan/internal/controllers/loader"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"go.uber.org/zap"
)

// H264Controller segments Annex B byte streams and reports their units.
type H264Controller struct {
	c      *entities.Config
	l      *zap.SugaredLogger
	m      *mapper.Mapper
	loader *loader.MmapLoader
	parser *h264.Parser
}

func NewH264Controller(
	c *entities.Config,
	l *zap.SugaredLogger,
	m *mapper.Mapper,
	loader *loader.MmapLoader,
) (*H264Controller, error) {
	if err := c.Valid(); err != nil {
		return nil, err
	}

	parser, err := h264.NewParser(c.ScanWidth)
	if err != nil {
		return nil, err
	}

	return &H264Controller{
		c:      c,
		l:      l,
		m:      m,
		loader: loader,
		parser: parser,
	}, nil
}

// AnalyzeFile maps path into memory and analyzes its contents.
func (c *H264Controller) AnalyzeFile(path string) (*entities.StreamReport, error) {
	f, err := c.loader.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			c.l.Errorw("error while unmapping file", "path", path, "error", err)
		}
	}()

	return c.Analyze(path, f.Bytes())
}

// Analyze segments buf and classifies every unit. When segmentation stops
// early the report still lists the units found before the failure, and the
// error is returned alongside it.
func (c *H264Controller) Analyze(source string, buf []byte) (*entities.StreamReport, error) {
	nalus, err := c.parser.Parse(buf)

	report := &entities.StreamReport{
		Source:    source,
		SizeBytes: len(buf),
		ScanWidth: c.c.ScanWidth,
		Units:     make([]entities.Unit, 0, len(nalus.Units)),
		Kinds:     c.m.FromNALUsToKindCounts(nalus),
	}
	for i, n := range nalus.Units {
		report.Units = append(report.Units, c.m.FromNALToEntityUnit(i, n, c.c.PreviewBytes))
		report.PayloadBytes += n.Length
	}

	if err != nil {
		report.Error = err.Error()
		c.l.Errorw("segmentation stopped early",
			"source", source,
			"units", len(report.Units),
			"error", err,
		)
		return report, err
	}

	c.l.Infow("stream analyzed",
		"source", source,
		"size", len(buf),
		"units", len(report.Units),
	)
	return report, nil
}
