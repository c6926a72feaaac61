package app_test

import (
	"os"
	"testing"

	"github.com/flavioribeiro/nalscan/internal/app"
	"github.com/flavioribeiro/nalscan/internal/controllers"
	"github.com/flavioribeiro/nalscan/internal/controllers/transcoder"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"
)

// clearEnv unsets every NALSCAN_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"NALSCAN_SCANWIDTH", "NALSCAN_FFMPEGPATH", "NALSCAN_VIDEOCODEC", "NALSCAN_CRF",
		"NALSCAN_OUTPUTDIR", "NALSCAN_PREVIEWBYTES", "NALSCAN_DEBUG",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := app.NewConfig(app.Options{})
	require.NoError(t, err)

	assert.Equal(t, &entities.Config{
		ScanWidth:    64,
		FFmpegPath:   "ffmpeg",
		VideoCodec:   "libx264",
		CRF:          23,
		PreviewBytes: 16,
	}, c)
}

func TestNewConfig_EnvAndOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NALSCAN_SCANWIDTH", "32")
	t.Setenv("NALSCAN_CRF", "18")
	t.Setenv("NALSCAN_OUTPUTDIR", "/tmp/out")

	c, err := app.NewConfig(app.Options{})
	require.NoError(t, err)
	assert.Equal(t, 32, c.ScanWidth)
	assert.Equal(t, 18, c.CRF)
	assert.Equal(t, "/tmp/out", c.OutputDir)

	c, err = app.NewConfig(app.Options{ScanWidth: 128, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, 128, c.ScanWidth)
	assert.True(t, c.Debug)
}

func TestNewConfig_Invalid(t *testing.T) {
	clearEnv(t)

	_, err := app.NewConfig(app.Options{ScanWidth: 2})
	assert.ErrorIs(t, err, entities.ErrInvalidScanWidth)

	t.Setenv("NALSCAN_CRF", "99")
	_, err = app.NewConfig(app.Options{})
	assert.ErrorIs(t, err, entities.ErrInvalidCRF)

	t.Setenv("NALSCAN_CRF", "not-a-number")
	_, err = app.NewConfig(app.Options{})
	assert.Error(t, err)
}

func TestNewConfig_IgnoresHostEnvironment(t *testing.T) {
	t.Setenv("NALSCAN_SCANWIDTH", "2")
	t.Setenv("NALSCAN_DEBUG", "true")
	clearEnv(t)

	c, err := app.NewConfig(app.Options{})
	require.NoError(t, err)
	assert.Equal(t, 64, c.ScanWidth)
	assert.False(t, c.Debug)
}

func TestNewLogger(t *testing.T) {
	l, err := app.NewLogger(&entities.Config{})
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l, err = app.NewLogger(&entities.Config{Debug: true})
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestDependencies(t *testing.T) {
	clearEnv(t)

	var (
		h264Controller *controllers.H264Controller
		tr             *transcoder.FFmpegTranscoder
		c              *entities.Config
	)

	fxtest.New(t,
		app.Dependencies(app.Options{ScanWidth: 8}),
		fx.Populate(&h264Controller, &tr, &c),
	).RequireStart().RequireStop()

	require.NotNil(t, h264Controller)
	require.NotNil(t, tr)
	assert.Equal(t, 8, c.ScanWidth)
}
