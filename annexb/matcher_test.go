package annexb_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/flavioribeiro/nalscan/annexb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunkMatcher_RejectsNarrowWidth(t *testing.T) {
	for _, width := range []int{-1, 0, 1, 2, 3} {
		m, err := annexb.NewChunkMatcher(annexb.StartCode[:], width)

		assert.Nil(t, m)
		require.Error(t, err)
		assert.True(t, errors.Is(err, annexb.ErrConfiguration))

		var cfgErr *annexb.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, width, cfgErr.Width)
		assert.Equal(t, 4, cfgErr.PatternLen)
	}
}

func TestChunkMatcher_FindsMatchAtEveryPosition(t *testing.T) {
	for width := 4; width <= 70; width++ {
		m, err := annexb.NewChunkMatcher(annexb.StartCode[:], width)
		require.NoError(t, err)

		for pos := 0; pos < 3*width; pos++ {
			buf := bytes.Repeat([]byte{0xAA}, 3*width+8)
			copy(buf[pos:], annexb.StartCode[:])

			at, err := m.Index(buf, 0)
			require.NoError(t, err, "width %d pos %d", width, pos)
			assert.Equal(t, pos, at, "width %d pos %d", width, pos)
		}
	}
}

func TestChunkMatcher_MatchStraddlingWindowBoundary(t *testing.T) {
	// The marker's first byte sits in the last lane of the first window.
	buf := []byte{
		0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0x00,
		0x00, 0x00, 0x01, 0xAA, 0xAA,
	}
	m, err := annexb.NewChunkMatcher(annexb.StartCode[:], 8)
	require.NoError(t, err)

	at, err := m.Index(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, at)
}

func TestChunkMatcher_IgnoresWrappedLanes(t *testing.T) {
	// Rotating this window wraps 00 00 00 | 01 into a fake marker at lane 5.
	buf := []byte{0x01, 0xAA, 0xAA, 0xAA, 0xAA, 0x00, 0x00, 0x00}
	m, err := annexb.NewChunkMatcher(annexb.StartCode[:], 8)
	require.NoError(t, err)

	_, err = m.Index(buf, 0)
	assert.True(t, errors.Is(err, annexb.ErrTermination))
}

func TestChunkMatcher_IgnoresPaddingInShortWindow(t *testing.T) {
	// The zero padded window wraps into [00 00 00 | 01] at lane 13.
	buf := []byte{0x01, 0xAA, 0xAA, 0xAA}
	m, err := annexb.NewChunkMatcher(annexb.StartCode[:], 16)
	require.NoError(t, err)

	_, err = m.Index(buf, 0)
	assert.True(t, errors.Is(err, annexb.ErrTermination))
}

func TestChunkMatcher_AgreesWithBytesIndex(t *testing.T) {
	rnd := rand.New(rand.NewSource(264))
	patterns := [][]byte{
		annexb.StartCode[:],
		annexb.StartCodePrefix[:],
		{0x00, 0x00},
		{0x00, 0x01, 0x00, 0x01, 0x00},
	}

	for i := 0; i < 500; i++ {
		// a tiny alphabet makes partial matches frequent
		buf := make([]byte, rnd.Intn(200))
		for j := range buf {
			buf[j] = byte(rnd.Intn(3)) % 2
		}
		pattern := patterns[rnd.Intn(len(patterns))]
		width := len(pattern) + rnd.Intn(80)
		cursor := 0
		if len(buf) > 0 {
			cursor = rnd.Intn(len(buf))
		}

		m, err := annexb.NewChunkMatcher(pattern, width)
		require.NoError(t, err)

		want := bytes.Index(buf[cursor:], pattern)
		got, err := m.Index(buf, cursor)
		if want < 0 {
			assert.True(t, errors.Is(err, annexb.ErrTermination), "buf % X pattern % X width %d", buf, pattern, width)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, cursor+want, got, "buf % X pattern % X width %d cursor %d", buf, pattern, width, cursor)
	}
}

func TestChunkMatcher_ReusableAcrossBuffers(t *testing.T) {
	m, err := annexb.NewChunkMatcher(annexb.StartCode[:], 8)
	require.NoError(t, err)

	at, err := m.Index([]byte{0x00, 0x00, 0x00}, 0)
	assert.Error(t, err)

	at, err = m.Index([]byte{0xAA, 0x00, 0x00, 0x00, 0x01}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, at)
}
