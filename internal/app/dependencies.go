package app

import (
	"github.com/flavioribeiro/nalscan/internal/controllers"
	"github.com/flavioribeiro/nalscan/internal/controllers/loader"
	"github.com/flavioribeiro/nalscan/internal/controllers/probers"
	"github.com/flavioribeiro/nalscan/internal/controllers/transcoder"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/flavioribeiro/nalscan/internal/mapper"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Options override environment settings, zero values keep them.
type Options struct {
	ScanWidth int
	Debug     bool
}

func Dependencies(o Options) fx.Option {
	return fx.Options(
		// Controllers
		fx.Provide(controllers.NewH264Controller),
		fx.Provide(transcoder.NewFFmpegTranscoder),
		fx.Provide(loader.NewMmapLoader),
		fx.Provide(probers.NewLibAVFFmpeg),

		// Mappers
		fx.Provide(mapper.NewMapper),

		// Logging, Config constructors
		fx.Provide(NewLogger),
		fx.Provide(func() (*entities.Config, error) {
			return NewConfig(o)
		}),
	)
}

// NewConfig reads the NALSCAN_* environment and applies o on top of it.
func NewConfig(o Options) (*entities.Config, error) {
	var c entities.Config
	if err := envconfig.Process("nalscan", &c); err != nil {
		return nil, err
	}

	if o.ScanWidth != 0 {
		c.ScanWidth = o.ScanWidth
	}
	if o.Debug {
		c.Debug = true
	}

	if err := c.Valid(); err != nil {
		return nil, err
	}
	return &c, nil
}

func NewLogger(c *entities.Config) (*zap.SugaredLogger, error) {
	newLogger := zap.NewProduction
	if c.Debug {
		newLogger = zap.NewDevelopment
	}

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
