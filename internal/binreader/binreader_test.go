package binreader_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftbox/cratedigger/internal/binreader"
)

func TestU32LEBoundsChecked(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04}
	v, ok := binreader.U32LE(buf, 0)
	require.True(t, ok)
	require.Equal(t, uint32(0x04030201), v)

	_, ok = binreader.U32LE(buf, 1)
	require.False(t, ok)
}

func TestU32BE(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x03, 0xE8}
	v, ok := binreader.U32BE(buf, 0)
	require.True(t, ok)
	require.Equal(t, uint32(1000), v)
}

func TestSliceOverrunReturnsNil(t *testing.T) {
	buf := make([]byte, 10)
	require.Nil(t, binreader.Slice(buf, 5, 10))
	require.NotNil(t, binreader.Slice(buf, 5, 5))
	require.Nil(t, binreader.Slice(buf, -1, 1))
}

func TestDeviceSQLStringShortASCII(t *testing.T) {
	// length_and_kind = 0x0B -> length = 0x0B >> 1 = 5, payload is 4 bytes.
	buf := append([]byte{0x0B}, []byte("abcd")...)
	require.Equal(t, "abcd", binreader.DeviceSQLString(buf, 0))
}

func TestDeviceSQLStringShortASCIIZeroLength(t *testing.T) {
	buf := []byte{0x00}
	require.Equal(t, "", binreader.DeviceSQLString(buf, 0))
}

func TestDeviceSQLStringLongASCII(t *testing.T) {
	payload := "hello world"
	total := 4 + len(payload)
	buf := []byte{0x40, byte(total), byte(total >> 8), 0x00}
	buf = append(buf, []byte(payload)...)
	require.Equal(t, payload, binreader.DeviceSQLString(buf, 0))
}

func TestDeviceSQLStringLongUTF16LE(t *testing.T) {
	// "hi" -> two UTF-16LE code units.
	chars := []uint16{'h', 'i'}
	total := 4 + len(chars)*2
	buf := []byte{0x90, byte(total), byte(total >> 8), 0x00}
	for _, c := range chars {
		buf = append(buf, byte(c), byte(c>>8))
	}
	require.Equal(t, "hi", binreader.DeviceSQLString(buf, 0))
}

func TestDeviceSQLStringOverrunYieldsEmpty(t *testing.T) {
	// Long ASCII header claims a length far past the buffer.
	buf := []byte{0x40, 0xFF, 0xFF, 0x00}
	require.Equal(t, "", binreader.DeviceSQLString(buf, 0))

	// Offset itself past the buffer.
	require.Equal(t, "", binreader.DeviceSQLString(buf, 100))
}

func TestUTF16BEToUTF8StopsAtNUL(t *testing.T) {
	buf := []byte{0x00, 'h', 0x00, 'i', 0x00, 0x00, 0x00, 'x'}
	require.Equal(t, "hi", binreader.UTF16BEToUTF8(buf, 0, 4))
}
