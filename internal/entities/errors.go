package entities

import (
	"errors"
	"fmt"
)

var ErrMissingConfig = errors.New("config must not be nil")
var ErrInvalidScanWidth = errors.New("scan width must be at least 4")
var ErrMissingFFmpegPath = errors.New("ffmpeg path must not be empty")
var ErrInvalidCRF = errors.New("crf must be between 0 and 51")

var ErrMissingInputFile = errors.New("input file path must not be empty")
var ErrMissingProber = errors.New("there is no prober")
var ErrMissingVideoStream = errors.New("input has no video stream")

var ErrMapping = errors.New("memory mapping error")
var ErrMappingNotRegular = fmt.Errorf("%w file is not a regular file", ErrMapping)

// FFmpeg/LibAV
var ErrFFMpegLibAV = errors.New("ffmpeg/libav error")
var ErrFFmpegLibAVNotFound = fmt.Errorf("%w input not found", ErrFFMpegLibAV)
var ErrFFmpegLibAVFormatContextIsNil = fmt.Errorf("%w format context is nil", ErrFFMpegLibAV)
var ErrFFmpegLibAVFormatContextOpenInputFailed = fmt.Errorf("%w format context open input has failed", ErrFFMpegLibAV)
var ErrFFmpegLibAVFindStreamInfo = fmt.Errorf("%w could not find stream info", ErrFFMpegLibAV)
var ErrFFmpegTranscodeFailed = fmt.Errorf("%w transcoding has failed", ErrFFMpegLibAV)
