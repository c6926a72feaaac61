package probers

import "github.com/flavioribeiro/nalscan/internal/entities"

// Prober discovers the format and streams of a media file.
type Prober interface {
	StreamInfo(path string) (*entities.StreamInfo, error)
}
