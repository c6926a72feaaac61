package annexb

import (
	"fmt"
	"math/bits"
)

// Matcher finds a fixed byte pattern in a buffer.
type Matcher interface {
	// Index returns the smallest offset >= cursor at which the pattern starts,
	// or a *TerminationError when the buffer ends first.
	Index(buf []byte, cursor int) (int, error)
}

// ChunkMatcher scans the buffer in windows of a fixed width. For every window
// it builds one lane mask per pattern byte from the window rotated left by the
// byte's position, ANDs the masks together and takes the lowest set lane.
//
// A ChunkMatcher keeps scratch space between calls and must not be used from
// several goroutines at once.
type ChunkMatcher struct {
	pattern []byte
	width   int

	scratch []byte // zero-padded copy of a short final window
	rotated []byte
	lane    []uint64
	acc     []uint64
}

var _ Matcher = (*ChunkMatcher)(nil)

// NewChunkMatcher returns a matcher for pattern using windows of width bytes.
// It fails with a *ConfigurationError when width < len(pattern).
func NewChunkMatcher(pattern []byte, width int) (*ChunkMatcher, error) {
	if len(pattern) == 0 || width < len(pattern) {
		return nil, &ConfigurationError{Width: width, PatternLen: len(pattern)}
	}

	words := (width + 63) / 64
	return &ChunkMatcher{
		pattern: append([]byte(nil), pattern...),
		width:   width,
		scratch: make([]byte, width),
		rotated: make([]byte, width),
		lane:    make([]uint64, words),
		acc:     make([]uint64, words),
	}, nil
}

func (m *ChunkMatcher) Width() int {
	return m.width
}

func (m *ChunkMatcher) Index(buf []byte, cursor int) (int, error) {
	if cursor < 0 {
		cursor = 0
	}
	from := cursor
	k := len(m.pattern)

	for cursor+k <= len(buf) {
		window, valid := m.window(buf, cursor)
		if lane, ok := m.firstMatch(window, valid); ok {
			return cursor + lane, nil
		}
		if cursor+m.width >= len(buf) {
			break
		}
		// A match starting in the last k-1 lanes continues into the next
		// window, so the next window has to overlap them.
		cursor += m.width - (k - 1)
	}

	return 0, &TerminationError{
		Offset: from,
		Stage:  fmt.Sprintf("scanning for % X", m.pattern),
	}
}

// window returns width bytes starting at cursor and how many of them come from
// buf. A short tail is copied into the zero-padded scratch window.
func (m *ChunkMatcher) window(buf []byte, cursor int) ([]byte, int) {
	end := cursor + m.width
	if end <= len(buf) {
		return buf[cursor:end], m.width
	}

	n := copy(m.scratch, buf[cursor:])
	clear(m.scratch[n:])
	return m.scratch, n
}

func (m *ChunkMatcher) firstMatch(window []byte, valid int) (int, bool) {
	for w := range m.acc {
		m.acc[w] = ^uint64(0)
	}

	for i, p := range m.pattern {
		rotateLeft(m.rotated, window, i)
		equalMask(m.lane, m.rotated, p)

		hit := false
		for w := range m.acc {
			m.acc[w] &= m.lane[w]
			hit = hit || m.acc[w] != 0
		}
		if !hit {
			return 0, false
		}
	}

	// Lanes past valid-k either wrapped around the window or read padding.
	keepLanes(m.acc, valid-len(m.pattern)+1)

	for w, set := range m.acc {
		if set != 0 {
			return w*64 + bits.TrailingZeros64(set), true
		}
	}
	return 0, false
}

func rotateLeft(dst, src []byte, by int) {
	n := copy(dst, src[by:])
	copy(dst[n:], src[:by])
}

// equalMask sets bit j of mask iff chunk[j] == b.
func equalMask(mask []uint64, chunk []byte, b byte) {
	clear(mask)
	for j, c := range chunk {
		if c == b {
			mask[j>>6] |= 1 << (uint(j) & 63)
		}
	}
}

// keepLanes clears every lane >= lanes.
func keepLanes(mask []uint64, lanes int) {
	for w := range mask {
		lo := w * 64
		switch {
		case lanes <= lo:
			mask[w] = 0
		case lanes < lo+64:
			mask[w] &= (uint64(1) << uint(lanes-lo)) - 1
		}
	}
}
