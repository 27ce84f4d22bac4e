// Package anlz decodes Rekordbox's per-track analysis files (ANLZ*.DAT,
// .EXT, .2EX): a PMAI-magic container of typed, big-endian sections
// carrying cue points, beat grids, waveforms, a file-path reference, and
// XOR-masked song-structure metadata.
package anlz

// SectionTag is a big-endian four-character section type code.
type SectionTag uint32

const (
	TagPCUE SectionTag = 0x50435545 // "PCUE"
	TagPCU2 SectionTag = 0x50435532 // "PCU2"
	TagPCX2 SectionTag = 0x50435832 // "PCX2"
	TagPBIT SectionTag = 0x50424954 // "PBIT"
	TagPPTH SectionTag = 0x50505448 // "PPTH"
	TagPWAV SectionTag = 0x50574156 // "PWAV"
	TagPWV2 SectionTag = 0x50575632 // "PWV2"
	TagPWV3 SectionTag = 0x50575633 // "PWV3"
	TagPWV4 SectionTag = 0x50575634 // "PWV4"
	TagPWV5 SectionTag = 0x50575635 // "PWV5"
	TagPWV6 SectionTag = 0x50575636 // "PWV6"
	TagPWV7 SectionTag = 0x50575637 // "PWV7"
	TagPSI2 SectionTag = 0x50534932 // "PSI2"
	TagPSSI SectionTag = 0x50535349 // "PSSI", the tag real exports use for song structure
)

// CueType is the kind of a cue-list entry.
type CueType uint8

const (
	CueTypeCue     CueType = 0
	CueTypeFadeIn  CueType = 1
	CueTypeFadeOut CueType = 2
	CueTypeLoad    CueType = 3
	CueTypeLoop    CueType = 4
)

// CuePoint is one decoded, active entry from a PCUE/PCU2/PCX2 section.
type CuePoint struct {
	HotCueNumber uint32
	Type         CueType
	TimeMs       uint32
	LoopEndMs    uint32
	ColorID      uint8
	HasColor     bool
	Comment      string
	HasComment   bool
}

// TimeSeconds returns the cue's position in seconds.
func (c CuePoint) TimeSeconds() float64 { return float64(c.TimeMs) / 1000.0 }

// IsHotCue reports whether this cue occupies a numbered hot-cue slot.
func (c CuePoint) IsHotCue() bool { return c.HotCueNumber != 0 }

// IsLoop reports whether this cue is a loop (as opposed to a single point).
func (c CuePoint) IsLoop() bool { return c.Type == CueTypeLoop }

// LoopDurationMs returns the loop length in milliseconds, or 0 if this
// cue is not a loop.
func (c CuePoint) LoopDurationMs() uint32 {
	if !c.IsLoop() || c.LoopEndMs <= c.TimeMs {
		return 0
	}
	return c.LoopEndMs - c.TimeMs
}

// BeatGridEntry is one beat marker from a PBIT section.
type BeatGridEntry struct {
	BeatNumber uint16
	Tempo100x  uint16
	TimeMs     uint32
}

// WaveformStyle ranks waveform-detail quality; higher values win when
// merging contributions from multiple ANLZ files for the same track.
type WaveformStyle int

const (
	WaveformStyleBlue WaveformStyle = iota
	WaveformStyleRGB
	WaveformStyleThreeBand
)

// WaveformPreview is a fixed-length, low-resolution rendering of a track's
// waveform (blue or RGB style).
type WaveformPreview struct {
	Style        WaveformStyle
	BytesPerEntry int
	Data         []byte
}

// WaveformDetail is a full-resolution scrolling waveform rendering.
type WaveformDetail struct {
	Style         WaveformStyle
	BytesPerEntry int
	Data          []byte
}

// Height returns the low-5-bit amplitude of a blue-style entry.
func (w WaveformDetail) Height(i int) uint8 {
	if w.BytesPerEntry != 1 || i < 0 || i >= len(w.Data) {
		return 0
	}
	return w.Data[i] & 0x1F
}

// RGBColor is a decoded R5G6B5 waveform colour, zero-extended to 8 bits
// per channel.
type RGBColor struct {
	R, G, B uint8
}

// RGBColorAt unpacks the 16-bit R5G6B5 pair at entry i of an RGB-style
// waveform.
func RGBColorAt(data []byte, bytesPerEntry, i int) (RGBColor, bool) {
	if bytesPerEntry < 2 {
		return RGBColor{}, false
	}
	base := i * bytesPerEntry
	if base+2 > len(data) {
		return RGBColor{}, false
	}
	packed := uint16(data[base])<<8 | uint16(data[base+1])
	r := uint8(packed>>11) & 0x1F
	g := uint8(packed>>5) & 0x3F
	b := uint8(packed) & 0x1F
	return RGBColor{
		R: r << 3,
		G: g << 2,
		B: b << 3,
	}, true
}

// ThreeBandAmplitudes is the low/mid/high amplitude triple of one
// three-band waveform entry.
type ThreeBandAmplitudes struct {
	Low, Mid, High uint8
}

// ThreeBandAt reads the amplitude triple at entry i of a three-band
// waveform (each channel is the low 5 bits of its byte).
func ThreeBandAt(data []byte, i int) (ThreeBandAmplitudes, bool) {
	base := i * 3
	if base+3 > len(data) {
		return ThreeBandAmplitudes{}, false
	}
	return ThreeBandAmplitudes{
		Low:  data[base] & 0x1F,
		Mid:  data[base+1] & 0x1F,
		High: data[base+2] & 0x1F,
	}, true
}

// Mood is the song-structure mood classification, which selects the
// phrase-kind naming table.
type Mood int

const (
	MoodHigh Mood = 1
	MoodMid  Mood = 2
	MoodLow  Mood = 3
)

// Phrase is one decoded song-structure phrase entry.
type Phrase struct {
	Index         uint16
	StartBeat     uint16
	EndBeat       uint16
	Kind          uint16
	K1, K2, K3    uint8
	FillPresent   bool
	FillStartBeat uint16
}

// SongStructure is the decoded, unmasked form of a PSI2/PSSI section.
type SongStructure struct {
	Mood    Mood
	EndBeat uint16
	Bank    uint8
	Phrases []Phrase
}

// PhraseName returns the presentation name of a phrase's Kind under this
// structure's Mood, or "" if the (mood, kind) pair is unrecognized.
func (s SongStructure) PhraseName(p Phrase) string {
	return phraseName(s.Mood, p.Kind)
}
