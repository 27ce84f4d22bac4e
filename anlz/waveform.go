package anlz

import "github.com/riftbox/cratedigger/internal/binreader"

// decodeBluePreview decodes a PWAV/PWV2 body: u32 data_len, u32 reserved,
// data_len bytes.
func decodeBluePreview(body []byte) (WaveformPreview, bool) {
	dataLen, ok := binreader.U32BE(body, 0)
	if !ok {
		return WaveformPreview{}, false
	}
	data := binreader.Slice(body, 8, int(dataLen))
	if data == nil {
		return WaveformPreview{}, false
	}
	return WaveformPreview{Style: WaveformStyleBlue, BytesPerEntry: 1, Data: data}, true
}

// decodeBlueScroll decodes a PWV3 body: u32 bytes_per_entry (=1), u32
// entry_count, u32 reserved, entry_count bytes.
func decodeBlueScroll(body []byte) (WaveformDetail, bool) {
	bpe, ok := binreader.U32BE(body, 0)
	if !ok {
		return WaveformDetail{}, false
	}
	entryCount, ok := binreader.U32BE(body, 4)
	if !ok {
		return WaveformDetail{}, false
	}
	data := binreader.Slice(body, 12, int(entryCount)*int(bpe))
	if data == nil {
		return WaveformDetail{}, false
	}
	return WaveformDetail{Style: WaveformStyleBlue, BytesPerEntry: int(bpe), Data: data}, true
}

// decodeRGBWaveform decodes the shared PWV4/PWV5 body shape: u32
// bytes_per_entry, u32 entry_count, u32 reserved, entry_count ×
// bytes_per_entry bytes. PWV4 uses the result as a preview, PWV5 as the
// scrolling detail; the wire format is otherwise identical.
func decodeRGBWaveform(body []byte) (int, []byte, bool) {
	bpe, ok := binreader.U32BE(body, 0)
	if !ok {
		return 0, nil, false
	}
	entryCount, ok := binreader.U32BE(body, 4)
	if !ok {
		return 0, nil, false
	}
	data := binreader.Slice(body, 12, int(entryCount)*int(bpe))
	if data == nil {
		return 0, nil, false
	}
	return int(bpe), data, true
}

// decodeThreeBandWaveform decodes the shared PWV6/PWV7 body shape: u32
// bytes_per_entry (=3), u32 entry_count, entry_count × 3 bytes. Unlike the
// RGB shape, there is no reserved field between the header and the data.
func decodeThreeBandWaveform(body []byte) (int, []byte, bool) {
	bpe, ok := binreader.U32BE(body, 0)
	if !ok {
		return 0, nil, false
	}
	entryCount, ok := binreader.U32BE(body, 4)
	if !ok {
		return 0, nil, false
	}
	data := binreader.Slice(body, 8, int(entryCount)*int(bpe))
	if data == nil {
		return 0, nil, false
	}
	return int(bpe), data, true
}
