package teststreaming

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flavioribeiro/nalscan/internal/entities"
)

type FFmpeg interface {
	Generate(dir string) (string, error)
	ExpectedStreams() []entities.Stream
	ExpectedFormat() string
}

type testFFmpeg struct {
	arguments       string
	name            string
	expectedStreams []entities.Stream
	expectedFormat  string
}

// Generate renders the fixture into dir and returns its path.
func (t *testFFmpeg) Generate(dir string) (string, error) {
	output := filepath.Join(dir, t.name)
	cmdExec := exec.Command("ffmpeg", append(prepareFFmpegParameters(t.arguments), output)...)

	if out, err := cmdExec.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg %s: %w: %s", t.name, err, strings.TrimSpace(string(out)))
	}
	return output, nil
}

func (t *testFFmpeg) ExpectedStreams() []entities.Stream {
	return t.expectedStreams
}

func (t *testFFmpeg) ExpectedFormat() string {
	return t.expectedFormat
}

// Available reports whether an ffmpeg binary is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Fixture generates f under a per-test directory. The test is skipped when
// ffmpeg or one of the encoders it needs is missing.
func Fixture(t testing.TB, f FFmpeg) string {
	t.Helper()
	if !Available() {
		t.Skip("ffmpeg is not available")
	}

	path, err := f.Generate(t.TempDir())
	if err != nil {
		t.Skipf("could not generate fixture: %v", err)
	}
	return path
}

func prepareFFmpegParameters(cmd string) []string {
	result := []string{}

	for _, item := range strings.Split(cmd, " ") {
		item = strings.ReplaceAll(item, "\\", "")
		item = strings.ReplaceAll(item, "\n", "")
		item = strings.ReplaceAll(item, "\t", "")
		item = strings.ReplaceAll(item, " ", "")
		if item != "" {
			result = append(result, item)
		}
	}

	return result
}
