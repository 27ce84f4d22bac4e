package anlz

import "github.com/riftbox/cratedigger/internal/binreader"

// structureMaskKeyBase is the fixed 19-byte XOR mask seed. The real key for
// a given section is K[i] = structureMaskKeyBase[i] + count (mod 256),
// where count is the low byte of the section's entry count.
var structureMaskKeyBase = [19]byte{
	0xCB, 0xE1, 0xEE, 0xFA, 0xE5, 0xEE, 0xAD, 0xEE, 0xE9, 0xD2,
	0xE9, 0xEB, 0xE1, 0xE9, 0xF3, 0xE8, 0xE9, 0xF4, 0xE1,
}

const (
	structureEntryBytesOffset = 0
	structureEntryCountOffset = 4
	structureBodyProperOffset = 6

	structureMoodOffset     = 0
	structureEndBeatOffset  = 8
	structureBankOffset     = 12
	structurePhraseEntriesOffset = 14
	structurePhraseEntrySize     = 24
)

// decodeSongStructure decodes a PSI2/PSSI section body: a fixed 24-byte
// entry-bytes check, an entry count, then a possibly XOR-masked "body
// proper" holding mood, end beat, bank, and one 24-byte record per phrase.
func decodeSongStructure(body []byte) (SongStructure, bool) {
	entryBytes, ok := binreader.U32BE(body, structureEntryBytesOffset)
	if !ok || entryBytes != 24 {
		return SongStructure{}, false
	}
	entryCount, ok := binreader.U16BE(body, structureEntryCountOffset)
	if !ok {
		return SongStructure{}, false
	}
	if structureBodyProperOffset > len(body) {
		return SongStructure{}, false
	}
	bodyProper := append([]byte(nil), body[structureBodyProperOffset:]...)

	rawMood, ok := binreader.U16BE(bodyProper, structureMoodOffset)
	if !ok {
		return SongStructure{}, false
	}
	if rawMood > 20 {
		unmaskStructureBody(bodyProper, byte(entryCount))
		rawMood, ok = binreader.U16BE(bodyProper, structureMoodOffset)
		if !ok {
			return SongStructure{}, false
		}
	}
	if rawMood < 1 || rawMood > 3 {
		return SongStructure{}, false
	}

	endBeat, _ := binreader.U16BE(bodyProper, structureEndBeatOffset)
	bank, _ := binreader.U8(bodyProper, structureBankOffset)

	phrases := make([]Phrase, 0, entryCount)
	offset := structurePhraseEntriesOffset
	for i := uint16(0); i < entryCount; i++ {
		if offset+structurePhraseEntrySize > len(bodyProper) {
			break
		}
		entry := bodyProper[offset : offset+structurePhraseEntrySize]
		index, _ := binreader.U16BE(entry, 0)
		startBeat, _ := binreader.U16BE(entry, 2)
		kind, _ := binreader.U16BE(entry, 4)
		k1, _ := binreader.U8(entry, 7)
		k2, _ := binreader.U8(entry, 9)
		k3, _ := binreader.U8(entry, 19)
		fillPresent, _ := binreader.U8(entry, 21)
		fillStartBeat, _ := binreader.U16BE(entry, 22)
		phrases = append(phrases, Phrase{
			Index:         index,
			StartBeat:     startBeat,
			Kind:          kind,
			K1:            k1,
			K2:            k2,
			K3:            k3,
			FillPresent:   fillPresent != 0,
			FillStartBeat: fillStartBeat,
		})
		offset += structurePhraseEntrySize
	}

	for i := range phrases {
		if i+1 < len(phrases) {
			phrases[i].EndBeat = phrases[i+1].StartBeat
		} else {
			phrases[i].EndBeat = endBeat
		}
	}

	return SongStructure{
		Mood:    Mood(rawMood),
		EndBeat: endBeat,
		Bank:    bank,
		Phrases: phrases,
	}, true
}

// unmaskStructureBody XOR-unmasks buf in place with the repeating 19-byte
// key derived from count. The mask is its own inverse, so this function
// also re-masks.
func unmaskStructureBody(buf []byte, count byte) {
	var key [19]byte
	for i, b := range structureMaskKeyBase {
		key[i] = b + count
	}
	for j := range buf {
		buf[j] ^= key[j%19]
	}
}
