package anlz

import "github.com/riftbox/cratedigger/internal/binreader"

const (
	beatGridCountOffset  = 4
	beatGridEntriesStart = 8
	beatGridEntrySize    = 8
)

// decodeBeatGrid decodes a PBIT section body: 4 reserved bytes, a u32 beat
// count, then that many 8-byte entries. The reserved bytes' meaning is
// unknown and, per the reference implementation, simply skipped.
func decodeBeatGrid(body []byte) ([]BeatGridEntry, bool) {
	count, ok := binreader.U32BE(body, beatGridCountOffset)
	if !ok {
		return nil, false
	}
	entries := make([]BeatGridEntry, 0, count)
	offset := beatGridEntriesStart
	for i := uint32(0); i < count; i++ {
		if offset+beatGridEntrySize > len(body) {
			break
		}
		beatNumber, _ := binreader.U16BE(body, offset)
		tempo, _ := binreader.U16BE(body, offset+2)
		timeMs, _ := binreader.U32BE(body, offset+4)
		entries = append(entries, BeatGridEntry{
			BeatNumber: beatNumber,
			Tempo100x:  tempo,
			TimeMs:     timeMs,
		})
		offset += beatGridEntrySize
	}
	return entries, true
}

// decodePath decodes a PPTH section body: a u32 byte length followed by
// that many bytes of UTF-16BE.
func decodePath(body []byte) string {
	byteLen, ok := binreader.U32BE(body, 0)
	if !ok {
		return ""
	}
	charCount := int(byteLen) / 2
	if 4+int(byteLen) > len(body) {
		// Truncated length: decode however much is actually present.
		charCount = (len(body) - 4) / 2
	}
	if charCount < 0 {
		return ""
	}
	return binreader.UTF16BEToUTF8(body, 4, charCount)
}
