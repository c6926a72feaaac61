package loader

import (
	"fmt"
	"os"

	"github.com/flavioribeiro/nalscan/internal/entities"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// MappedFile is a read-only memory mapping of a whole file.
type MappedFile struct {
	path string
	data []byte
}

// Bytes returns the mapped contents. The slice is only valid until Close and
// must not be written to.
func (m *MappedFile) Bytes() []byte {
	return m.data
}

func (m *MappedFile) Path() string {
	return m.path
}

func (m *MappedFile) Len() int {
	return len(m.data)
}

func (m *MappedFile) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	if len(data) == 0 {
		return nil
	}
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("%w munmap %s: %v", entities.ErrMapping, m.path, err)
	}
	return nil
}

type MmapLoader struct {
	l *zap.SugaredLogger
}

func NewMmapLoader(l *zap.SugaredLogger) *MmapLoader {
	return &MmapLoader{l: l}
}

// Open maps path read-only. Empty files yield an empty, unmapped buffer since
// mmap rejects zero lengths.
func (ld *MmapLoader) Open(path string) (*MappedFile, error) {
	if path == "" {
		return nil, entities.ErrMissingInputFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, entities.ErrMappingNotRegular)
	}

	size := fi.Size()
	if size == 0 {
		ld.l.Debugw("mapping skipped for empty file", "path", path)
		return &MappedFile{path: path, data: []byte{}}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("%w %s is too large to map (%d bytes)", entities.ErrMapping, path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w mmap %s: %v", entities.ErrMapping, path, err)
	}

	ld.l.Debugw("file mapped",
		"path", path,
		"size", size,
	)
	return &MappedFile{path: path, data: data}, nil
}
