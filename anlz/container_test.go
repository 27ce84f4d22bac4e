package anlz

import (
	"testing"
	"testing/fstest"

	"github.com/riftbox/cratedigger/hostio"
	"github.com/stretchr/testify/require"
)

func buildSection(tag SectionTag, body []byte) []byte {
	sectionLen := 12 + len(body)
	out := make([]byte, 0, sectionLen)
	out = append(out, be32(uint32(tag))...)
	out = append(out, be32(12)...)
	out = append(out, be32(uint32(sectionLen))...)
	out = append(out, body...)
	return out
}

func buildANLZFile(sections ...[]byte) []byte {
	header := make([]byte, 12)
	copy(header[0:4], be32(magicPMAI))
	copy(header[4:8], be32(uint32(len(header))))
	buf := header
	for _, s := range sections {
		buf = append(buf, s...)
	}
	copy(buf[8:12], be32(uint32(len(buf))))
	return buf
}

func TestOpenRejectsBadMagic(t *testing.T) {
	data := make([]byte, 16)
	fsys := hostio.FromFS(fstest.MapFS{"ANLZ0000.DAT": {Data: data}})
	_, err := Open(fsys, "ANLZ0000.DAT", nil)
	require.Error(t, err)
}

func TestContainerSkipsUnknownSectionsAndDecodesKnownOnes(t *testing.T) {
	pathBody := append(be32(uint32(len("test.mp3")*2)), []byte{
		0, 't', 0, 'e', 0, 's', 0, 't', 0, '.', 0, 'm', 0, 'p', 0, '3',
	}...)
	unknown := buildSection(SectionTag(0x554E4B4E), []byte{1, 2, 3, 4})
	path := buildSection(TagPPTH, pathBody)
	data := buildANLZFile(unknown, path)

	fsys := hostio.FromFS(fstest.MapFS{"ANLZ0000.DAT": {Data: data}})
	f, err := Open(fsys, "ANLZ0000.DAT", nil)
	require.NoError(t, err)
	require.Equal(t, "test.mp3", f.Path)
}

func TestContainerTerminatesOnOversizedSection(t *testing.T) {
	badSection := make([]byte, 12)
	copy(badSection[0:4], be32(uint32(TagPBIT)))
	copy(badSection[4:8], be32(12))
	copy(badSection[8:12], be32(999999))
	data := buildANLZFile(badSection)

	fsys := hostio.FromFS(fstest.MapFS{"ANLZ0000.DAT": {Data: data}})
	f, err := Open(fsys, "ANLZ0000.DAT", nil)
	require.NoError(t, err)
	require.Nil(t, f.BeatGrid)
}

func TestContainerDecodesCueListSection(t *testing.T) {
	entry := buildCueEntry(60, 1, 1, 0, 10000, 0, 2)
	cueBody := append(be32(1), entry...)
	section := buildSection(TagPCX2, cueBody)
	data := buildANLZFile(section)

	fsys := hostio.FromFS(fstest.MapFS{"ANLZ0000.EXT": {Data: data}})
	f, err := Open(fsys, "ANLZ0000.EXT", nil)
	require.NoError(t, err)
	require.True(t, f.CuePointsExt)
	require.Len(t, f.CuePoints, 1)
	require.Equal(t, 10.0, f.CuePoints[0].TimeSeconds())
}
