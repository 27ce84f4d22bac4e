package anlz

import (
	"sort"

	"github.com/riftbox/cratedigger/internal/binreader"
)

const (
	entryMagicPCPT        = 0x50435054
	entryMagicPCP2        = 0x50435032
	cueEntryHotCueOffset  = 12
	cueEntryStatusOffset  = 16
	cueEntryTypeOffset    = 32
	cueEntryTimeOffset    = 36
	cueEntryLoopEndOffset = 40
	cueEntryColorOffset   = 44
	cueEntryCommentLenOff = 56
	cueEntryCommentOff    = 60
)

// decodeCueList decodes a PCUE/PCU2 (ext=false) or PCX2 (ext=true) section
// body: a u32 entry count followed by that many variable-length entries.
func decodeCueList(body []byte, ext bool) ([]CuePoint, bool) {
	count, ok := binreader.U32BE(body, 0)
	if !ok {
		return nil, false
	}
	var cues []CuePoint
	offset := 4
	for i := uint32(0); i < count; i++ {
		if offset+12 > len(body) {
			break
		}
		entryLen, ok := binreader.U32BE(body, offset+8)
		if !ok || entryLen == 0 || offset+int(entryLen) > len(body) {
			break
		}
		magic, _ := binreader.U32BE(body, offset)
		if magic != entryMagicPCPT && magic != entryMagicPCP2 {
			offset += int(entryLen)
			continue
		}
		if cue, ok := decodeCueEntry(body[offset:offset+int(entryLen)], ext); ok {
			cues = append(cues, cue)
		}
		offset += int(entryLen)
	}
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].TimeMs < cues[j].TimeMs })
	return cues, true
}

func decodeCueEntry(entry []byte, ext bool) (CuePoint, bool) {
	status, ok := binreader.U32BE(entry, cueEntryStatusOffset)
	if !ok || status == 0 {
		return CuePoint{}, false
	}
	hotCue, _ := binreader.U32BE(entry, cueEntryHotCueOffset)
	typeByte, _ := binreader.U8(entry, cueEntryTypeOffset)
	timeMs, _ := binreader.U32BE(entry, cueEntryTimeOffset)
	loopEndMs, _ := binreader.U32BE(entry, cueEntryLoopEndOffset)

	cue := CuePoint{
		HotCueNumber: hotCue,
		Type:         parseCueType(typeByte),
		TimeMs:       timeMs,
		LoopEndMs:    loopEndMs,
	}

	if ext {
		if colorID, ok := binreader.U8(entry, cueEntryColorOffset); ok {
			cue.ColorID = colorID
			cue.HasColor = true
		}
		if commentLen, ok := binreader.U32BE(entry, cueEntryCommentLenOff); ok && commentLen > 0 {
			cue.Comment = binreader.UTF16BEToUTF8(entry, cueEntryCommentOff, int(commentLen)/2)
			cue.HasComment = true
		}
	}

	return cue, true
}

func parseCueType(raw uint8) CueType {
	switch raw {
	case 0:
		return CueTypeCue
	case 1:
		return CueTypeFadeIn
	case 2:
		return CueTypeFadeOut
	case 3:
		return CueTypeLoad
	case 4:
		return CueTypeLoop
	default:
		return CueTypeCue
	}
}
