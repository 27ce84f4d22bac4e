package anlz

import (
	"github.com/riftbox/cratedigger/dberror"
	"github.com/riftbox/cratedigger/hostio"
	"github.com/riftbox/cratedigger/internal/binreader"
	"github.com/riftbox/cratedigger/logsink"
)

const (
	magicPMAI            = 0x504D4149 // "PMAI"
	fileHeaderLenOffset  = 4
	sectionHeaderSize    = 12
	minFileHeaderSize    = 12
)

// File is the decoded contents of a single ANLZ*.DAT/.EXT/.2EX file:
// every section this library understands, merged as encountered (a file
// may legally carry, say, both PCUE and PCX2 sections; later sections of
// the same kind overwrite earlier ones within a single file, per the
// container walk order).
type File struct {
	Path            string
	CuePoints       []CuePoint
	CuePointsExt    bool
	BeatGrid        []BeatGridEntry
	Structure       *SongStructure
	Preview         *WaveformPreview
	Detail          *WaveformDetail
}

// Open reads path via fsys and decodes every section it recognizes.
func Open(fsys hostio.FS, path string, log logsink.Sink) (*File, error) {
	if log == nil {
		log = logsink.Nop
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data, path, log)
}

func decode(data []byte, sourceTag string, log logsink.Sink) (*File, error) {
	if len(data) < minFileHeaderSize {
		return nil, dberror.New(dberror.InvalidFileFormat, "file too small to be a valid ANLZ file: %s", sourceTag)
	}
	magic, ok := binreader.U32BE(data, 0)
	if !ok || magic != magicPMAI {
		return nil, dberror.New(dberror.InvalidFileFormat, "bad ANLZ magic in %s", sourceTag)
	}
	headerLen, ok := binreader.U32BE(data, fileHeaderLenOffset)
	if !ok || int(headerLen) > len(data) {
		return nil, dberror.New(dberror.InvalidFileFormat, "bad ANLZ header length in %s", sourceTag)
	}

	f := &File{}
	offset := int(headerLen)
	for offset+sectionHeaderSize <= len(data) {
		tagRaw, _ := binreader.U32BE(data, offset)
		// sectionHeaderLen (offset+4) is unused: real sections match sectionHeaderSize.
		sectionLen, ok := binreader.U32BE(data, offset+8)
		if !ok || sectionLen == 0 || offset+int(sectionLen) > len(data) || int(sectionLen) < sectionHeaderSize {
			log.Log(logsink.Record{Level: logsink.Warn, Message: "terminating ANLZ section walk on malformed section", Source: sourceTag})
			break
		}
		body := data[offset+sectionHeaderSize : offset+int(sectionLen)]
		dispatchSection(f, SectionTag(tagRaw), body, sourceTag, log)
		offset += int(sectionLen)
	}
	return f, nil
}

func dispatchSection(f *File, tag SectionTag, body []byte, sourceTag string, log logsink.Sink) {
	switch tag {
	case TagPCUE, TagPCU2:
		if cues, ok := decodeCueList(body, false); ok {
			f.CuePoints = cues
			f.CuePointsExt = false
		}
	case TagPCX2:
		if cues, ok := decodeCueList(body, true); ok {
			f.CuePoints = cues
			f.CuePointsExt = true
		}
	case TagPBIT:
		if grid, ok := decodeBeatGrid(body); ok {
			f.BeatGrid = grid
		}
	case TagPPTH:
		f.Path = decodePath(body)
	case TagPWAV, TagPWV2:
		if prev, ok := decodeBluePreview(body); ok {
			f.Preview = &prev
		}
	case TagPWV3:
		if det, ok := decodeBlueScroll(body); ok {
			f.Detail = &det
		}
	case TagPWV4:
		if bpe, data, ok := decodeRGBWaveform(body); ok {
			f.Preview = &WaveformPreview{Style: WaveformStyleRGB, BytesPerEntry: bpe, Data: data}
		}
	case TagPWV5:
		if bpe, data, ok := decodeRGBWaveform(body); ok {
			f.Detail = &WaveformDetail{Style: WaveformStyleRGB, BytesPerEntry: bpe, Data: data}
		}
	case TagPWV6:
		if bpe, data, ok := decodeThreeBandWaveform(body); ok {
			f.Preview = &WaveformPreview{Style: WaveformStyleThreeBand, BytesPerEntry: bpe, Data: data}
		}
	case TagPWV7:
		if bpe, data, ok := decodeThreeBandWaveform(body); ok {
			f.Detail = &WaveformDetail{Style: WaveformStyleThreeBand, BytesPerEntry: bpe, Data: data}
		}
	case TagPSI2, TagPSSI:
		if s, ok := decodeSongStructure(body); ok {
			f.Structure = &s
		}
	default:
		// Unknown section types are skipped.
	}
}
