package anlz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildStructureBody constructs an unmasked PSI2 body with a single phrase
// entry, then optionally XOR-masks it the way a raw mood > 20 file would
// be on disk.
func buildStructureBody(mood uint16, endBeat uint16, bank byte, phraseKind uint16, masked bool) []byte {
	entryCount := uint16(1)
	bodyProper := make([]byte, structurePhraseEntriesOffset+structurePhraseEntrySize)
	copy(bodyProper[0:2], be16(mood))
	copy(bodyProper[8:10], be16(endBeat))
	bodyProper[12] = bank
	entry := bodyProper[structurePhraseEntriesOffset:]
	copy(entry[0:2], be16(1))  // index
	copy(entry[2:4], be16(1))  // start beat
	copy(entry[4:6], be16(phraseKind))

	if masked {
		unmaskStructureBody(bodyProper, byte(entryCount))
	}

	body := make([]byte, 0, 6+len(bodyProper))
	body = append(body, be32(24)...)
	body = append(body, be16(entryCount)...)
	body = append(body, bodyProper...)
	return body
}

func TestSongStructureUnmasksWhenRawMoodAbove20(t *testing.T) {
	body := buildStructureBody(2, 64, 1, 9, true)
	s, ok := decodeSongStructure(body)
	require.True(t, ok)
	require.Equal(t, MoodMid, s.Mood)
	require.Equal(t, uint16(64), s.EndBeat)
	require.Len(t, s.Phrases, 1)
	require.Equal(t, uint16(9), s.Phrases[0].Kind)
	require.Equal(t, "Chorus", s.PhraseName(s.Phrases[0]))
}

func TestSongStructureUnmaskedWhenRawMoodLow(t *testing.T) {
	body := buildStructureBody(1, 32, 0, 1, false)
	s, ok := decodeSongStructure(body)
	require.True(t, ok)
	require.Equal(t, MoodHigh, s.Mood)
	require.Equal(t, "Intro", s.PhraseName(s.Phrases[0]))
}

func TestSongStructureRejectsBadEntryBytes(t *testing.T) {
	body := append(be32(23), be16(0)...)
	_, ok := decodeSongStructure(body)
	require.False(t, ok)
}

func TestSongStructureLastPhraseInheritsStructureEndBeat(t *testing.T) {
	body := buildStructureBody(3, 100, 2, 9, false)
	s, ok := decodeSongStructure(body)
	require.True(t, ok)
	require.Equal(t, uint16(100), s.Phrases[len(s.Phrases)-1].EndBeat)
}

// TestSongStructureEndBeatChainsAcrossPhrases builds a 5-phrase, strictly
// increasing body and checks that every phrase but the last takes its
// end_beat from the next phrase's start_beat, with only the final phrase
// falling back to the structure's own end_beat.
func TestSongStructureEndBeatChainsAcrossPhrases(t *testing.T) {
	startBeats := []uint16{1, 33, 65, 97, 129}
	entryCount := uint16(len(startBeats))
	bodyProper := make([]byte, structurePhraseEntriesOffset+int(entryCount)*structurePhraseEntrySize)
	copy(bodyProper[0:2], be16(2))
	copy(bodyProper[8:10], be16(500))
	bodyProper[12] = 1
	for i, sb := range startBeats {
		entry := bodyProper[structurePhraseEntriesOffset+i*structurePhraseEntrySize:]
		copy(entry[0:2], be16(uint16(i+1)))
		copy(entry[2:4], be16(sb))
		copy(entry[4:6], be16(9))
	}

	body := make([]byte, 0, 6+len(bodyProper))
	body = append(body, be32(24)...)
	body = append(body, be16(entryCount)...)
	body = append(body, bodyProper...)

	s, ok := decodeSongStructure(body)
	require.True(t, ok)
	require.Len(t, s.Phrases, 5)
	for i := 0; i < len(startBeats)-1; i++ {
		require.Equal(t, startBeats[i+1], s.Phrases[i].EndBeat)
	}
	require.Equal(t, uint16(500), s.Phrases[len(s.Phrases)-1].EndBeat)
}
