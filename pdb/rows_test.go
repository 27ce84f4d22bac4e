package pdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeArtistRowNearOffset(t *testing.T) {
	// subtype without bit 0x04 set: use the one-byte near offset (9).
	buf := make([]byte, artistOfsFarOffset+2)
	copy(buf[0:2], le16(0x0000))
	copy(buf[4:8], le32(42))
	buf[artistOfsNameNear] = byte(len(buf))
	buf = append(buf, encodeShortASCII("Daft Punk")...)

	db := &Database{data: buf}
	row, ok := db.DecodeArtistRow(0)
	require.True(t, ok)
	require.Equal(t, int64(42), row.ID)
	require.Equal(t, "Daft Punk", row.Name)
}

func TestDecodeArtistRowFarOffset(t *testing.T) {
	buf := make([]byte, artistOfsFarOffset+2)
	copy(buf[0:2], le16(0x0004)) // subtype with far-offset bit set
	copy(buf[4:8], le32(7))

	nameOff := uint16(len(buf))
	copy(buf[artistOfsFarOffset:artistOfsFarOffset+2], le16(nameOff))
	buf = append(buf, encodeShortASCII("deadmau5")...)

	db := &Database{data: buf}
	row, ok := db.DecodeArtistRow(0)
	require.True(t, ok)
	require.Equal(t, int64(7), row.ID)
	require.Equal(t, "deadmau5", row.Name)
}

func TestDecodeTagRowFarOffsetIsU32AtNearPosition(t *testing.T) {
	// The far-offset u32 at tagOfsNameNear overruns tagRowFixedSize by 2
	// bytes (a u32 replacing what is normally a single near-offset byte),
	// so the string payload for this shape starts 2 bytes later than usual.
	buf := make([]byte, tagOfsNameNear+4)
	copy(buf[0:2], le16(0x0684))
	copy(buf[tagOfsID:tagOfsID+4], le32(99))

	nameOff := uint32(len(buf))
	copy(buf[tagOfsNameNear:tagOfsNameNear+4], le32(nameOff))
	buf = append(buf, encodeShortASCII("Deep House")...)

	db := &Database{data: buf}
	row, ok := db.DecodeTagRow(0)
	require.True(t, ok)
	require.Equal(t, int64(99), row.ID)
	require.Equal(t, "Deep House", row.Name)
}

func TestDecodeTagRowNearOffsetWhenSubtypeNot0x0684(t *testing.T) {
	buf := make([]byte, tagRowFixedSize)
	copy(buf[0:2], le16(0x0680))
	copy(buf[tagOfsID:tagOfsID+4], le32(5))

	nameOff := byte(len(buf))
	buf[tagOfsNameNear] = nameOff
	buf = append(buf, encodeShortASCII("Techno")...)

	db := &Database{data: buf}
	row, ok := db.DecodeTagRow(0)
	require.True(t, ok)
	require.Equal(t, "Techno", row.Name)
}

func TestDecodeColorRowReadsIDFromPaddedOffset(t *testing.T) {
	buf := make([]byte, colorRowFixedSize)
	copy(buf[colorOfsID:colorOfsID+2], le16(3))
	buf = append(buf, encodeShortASCII("Red")...)

	db := &Database{data: buf}
	row, ok := db.DecodeColorRow(0)
	require.True(t, ok)
	require.Equal(t, int64(3), row.ID)
	require.Equal(t, "Red", row.Name)
}
