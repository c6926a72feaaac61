package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flavioribeiro/nalscan/internal/controllers/probers"
	"github.com/flavioribeiro/nalscan/internal/entities"
	"go.uber.org/zap"
)

// FFmpegTranscoder extracts the video of a media file into a raw Annex B
// H.264 elementary stream by running the ffmpeg binary.
type FFmpegTranscoder struct {
	c      *entities.Config
	l      *zap.SugaredLogger
	prober probers.Prober
}

func NewFFmpegTranscoder(
	c *entities.Config,
	l *zap.SugaredLogger,
	prober probers.Prober,
) *FFmpegTranscoder {
	return &FFmpegTranscoder{
		c:      c,
		l:      l,
		prober: prober,
	}
}

// Transcode returns the path of an elementary stream for input. Inputs that
// already are raw H.264 are returned as is.
func (t *FFmpegTranscoder) Transcode(ctx context.Context, input string) (string, error) {
	if input == "" {
		return "", entities.ErrMissingInputFile
	}

	if t.prober != nil {
		si, err := t.prober.StreamInfo(input)
		if err != nil {
			return "", err
		}
		if si.IsRawH264() {
			t.l.Infow("input is already an h264 elementary stream", "input", input)
			return input, nil
		}
		if len(si.VideoStreams()) == 0 {
			return "", fmt.Errorf("%s: %w", input, entities.ErrMissingVideoStream)
		}
	}

	output := OutputPathFor(input, t.c.OutputDir)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.c.FFmpegPath, t.arguments(input, output)...)
	cmd.Stderr = &stderr

	t.l.Infow("transcoding",
		"input", input,
		"output", output,
		"codec", t.c.VideoCodec,
		"crf", t.c.CRF,
	)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %v: %s", entities.ErrFFmpegTranscodeFailed, input, err, strings.TrimSpace(stderr.String()))
	}

	t.l.Infow("conversion complete", "output", output)
	return output, nil
}

func (t *FFmpegTranscoder) arguments(input, output string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-nostats", "-y",
		"-i", input,
		"-map", "0:v:0", "-an",
		"-c:v", t.c.VideoCodec,
		"-crf", strconv.Itoa(t.c.CRF),
		"-f", "h264",
		output,
	}
}

// OutputPathFor names the elementary stream derived from input, placed in
// outDir or next to input when outDir is empty.
func OutputPathFor(input, outDir string) string {
	name := CleanFileName(input) + ".h264"
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, name)
}

// CleanFileName returns the last path element of path, dropping a single
// ".mp4" or ".zip" extension.
func CleanFileName(path string) string {
	name := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		name = path[i+1:]
	}

	parts := strings.Split(name, ".")
	if len(parts) == 2 && (parts[1] == "mp4" || parts[1] == "zip") {
		return parts[0]
	}
	return name
}
