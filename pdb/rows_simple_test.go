package pdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeGenreRow(t *testing.T) {
	buf := le32(7)
	buf = append(buf, encodeShortASCII("House")...)
	db := &Database{data: buf}

	row, ok := db.DecodeGenreRow(0)
	require.True(t, ok)
	require.Equal(t, int64(7), row.ID)
	require.Equal(t, "House", row.Name)
}

func TestDecodeLabelRow(t *testing.T) {
	buf := le32(3)
	buf = append(buf, encodeShortASCII("Ninja Tune")...)
	db := &Database{data: buf}

	row, ok := db.DecodeLabelRow(0)
	require.True(t, ok)
	require.Equal(t, int64(3), row.ID)
	require.Equal(t, "Ninja Tune", row.Name)
}

func TestDecodeKeyRow(t *testing.T) {
	buf := le32(9)
	buf = append(buf, le32(0)...) // unused second u32
	buf = append(buf, encodeShortASCII("Am")...)
	db := &Database{data: buf}

	row, ok := db.DecodeKeyRow(0)
	require.True(t, ok)
	require.Equal(t, int64(9), row.ID)
	require.Equal(t, "Am", row.Name)
}

func TestDecodeArtworkRow(t *testing.T) {
	buf := le32(42)
	buf = append(buf, encodeShortASCII("/artwork/42.jpg")...)
	db := &Database{data: buf}

	row, ok := db.DecodeArtworkRow(0)
	require.True(t, ok)
	require.Equal(t, int64(42), row.ID)
	require.Equal(t, "/artwork/42.jpg", row.Path)
}

func TestDecodePlaylistTreeRowFolder(t *testing.T) {
	buf := make([]byte, playlistTreeRowFixedSize)
	copy(buf[playlistTreeOfsParentID:], le32(0))
	copy(buf[playlistTreeOfsSortOrder:], le32(1))
	copy(buf[playlistTreeOfsID:], le32(5))
	copy(buf[playlistTreeOfsIsFolder:], le32(1))
	buf = append(buf, encodeShortASCII("Techno Sets")...)
	db := &Database{data: buf}

	row, ok := db.DecodePlaylistTreeRow(0)
	require.True(t, ok)
	require.Equal(t, int64(5), row.ID)
	require.True(t, row.IsFolder)
	require.Equal(t, "Techno Sets", row.Name)
}

func TestDecodePlaylistTreeRowRejectsShortBuffer(t *testing.T) {
	db := &Database{data: make([]byte, playlistTreeRowFixedSize-1)}
	_, ok := db.DecodePlaylistTreeRow(0)
	require.False(t, ok)
}

func TestDecodePlaylistEntryRow(t *testing.T) {
	buf := le32(3)
	buf = append(buf, le32(100)...)
	buf = append(buf, le32(1)...)
	db := &Database{data: buf}

	row, ok := db.DecodePlaylistEntryRow(0)
	require.True(t, ok)
	require.Equal(t, uint32(3), row.EntryIndex)
	require.Equal(t, int64(100), row.TrackID)
	require.Equal(t, int64(1), row.PlaylistID)
}

func TestDecodeHistoryPlaylistRow(t *testing.T) {
	buf := le32(11)
	buf = append(buf, encodeShortASCII("2024-01-01")...)
	db := &Database{data: buf}

	row, ok := db.DecodeHistoryPlaylistRow(0)
	require.True(t, ok)
	require.Equal(t, int64(11), row.ID)
	require.Equal(t, "2024-01-01", row.Name)
}

func TestDecodeHistoryEntryRow(t *testing.T) {
	buf := le32(200)
	buf = append(buf, le32(11)...)
	buf = append(buf, le32(4)...)
	db := &Database{data: buf}

	row, ok := db.DecodeHistoryEntryRow(0)
	require.True(t, ok)
	require.Equal(t, int64(200), row.TrackID)
	require.Equal(t, int64(11), row.PlaylistID)
	require.Equal(t, uint32(4), row.EntryIndex)
}

func TestDecodeHistoryEntryRowRejectsShortBuffer(t *testing.T) {
	db := &Database{data: make([]byte, historyEntryRowSize-1)}
	_, ok := db.DecodeHistoryEntryRow(0)
	require.False(t, ok)
}
