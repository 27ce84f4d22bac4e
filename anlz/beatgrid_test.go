package anlz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildBeatGridEntry(beatNumber, tempo100x uint16, timeMs uint32) []byte {
	entry := be16(beatNumber)
	entry = append(entry, be16(tempo100x)...)
	entry = append(entry, be32(timeMs)...)
	return entry
}

func TestDecodeBeatGridSkipsReservedAndReadsEntries(t *testing.T) {
	body := be32(0) // 4 reserved bytes
	body = append(body, be32(2)...)
	body = append(body, buildBeatGridEntry(1, 12000, 0)...)
	body = append(body, buildBeatGridEntry(2, 12000, 500)...)

	entries, ok := decodeBeatGrid(body)
	require.True(t, ok)
	require.Len(t, entries, 2)
	require.Equal(t, uint16(1), entries[0].BeatNumber)
	require.Equal(t, uint32(500), entries[1].TimeMs)
}

func TestDecodeBeatGridStopsAtTruncatedEntry(t *testing.T) {
	body := be32(0)
	body = append(body, be32(2)...)
	body = append(body, buildBeatGridEntry(1, 12000, 0)...)
	// second entry declared but not present

	entries, ok := decodeBeatGrid(body)
	require.True(t, ok)
	require.Len(t, entries, 1)
}

func TestDecodePathHandlesTruncatedLength(t *testing.T) {
	full := []byte{0, 'a', 0, 'b', 0, 'c'}
	body := append(be32(uint32(len(full)+100)), full...)

	require.Equal(t, "abc", decodePath(body))
}
