package rekordbox

import (
	"testing"
	"testing/fstest"

	"github.com/riftbox/cratedigger/hostio"
	"github.com/riftbox/cratedigger/index"
	"github.com/stretchr/testify/require"
)

func le16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }
func le32(v uint32) []byte { return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} }
func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be32(v uint32) []byte { return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)} }

func encodeShortASCII(s string) []byte {
	length := len(s) + 1
	return append([]byte{byte(length << 1)}, []byte(s)...)
}

// buildPage constructs one page_size-byte data page containing the given
// rows (each already laid out as a byte slice) at the page's row-group
// heap, addressable via present-flag/row-offset tail entries.
func buildPage(pageSize uint32, pageIndex, typeRaw, nextPage uint32, rows [][]byte) []byte {
	page := make([]byte, pageSize)
	copy(page[4:8], le32(pageIndex))
	copy(page[8:12], le32(typeRaw))
	copy(page[12:16], le32(nextPage))

	numRowOffsets := uint32(len(rows))
	rowInfo := numRowOffsets & 0x1FFF
	copy(page[20:24], le32(rowInfo))

	heap := page[40:]
	var offsets []uint16
	pos := 0
	for _, row := range rows {
		offsets = append(offsets, uint16(pos))
		copy(heap[pos:], row)
		pos += len(row)
	}

	tailBase := int(pageSize)
	var presentFlags uint16
	for i := range offsets {
		presentFlags |= 1 << uint(i)
	}
	copy(page[tailBase-4:tailBase-2], le16(presentFlags))
	for i, ofs := range offsets {
		p := tailBase - (6 + 2*i)
		copy(page[p:p+2], le16(ofs))
	}
	return page
}

func buildHeader(pageSize uint32, tables [][4]uint32) []byte {
	buf := make([]byte, 28)
	copy(buf[4:8], le32(pageSize))
	copy(buf[8:12], le32(uint32(len(tables))))
	for _, t := range tables {
		for _, v := range t {
			buf = append(buf, le32(v)...)
		}
	}
	return buf
}

// buildTrackRow constructs a minimal RawTrackRow fixed prefix (136 bytes)
// plus title and file-path device-SQL strings, per spec §4.3.
func buildTrackRow(id, artistID uint32, title, filePath string) []byte {
	const fixedSize = 94 + 21*2
	row := make([]byte, fixedSize)
	copy(row[68:72], le32(artistID))
	copy(row[72:76], le32(id))

	titleOff := uint16(len(row))
	titleBytes := encodeShortASCII(title)
	row = append(row, titleBytes...)

	pathOff := uint16(len(row))
	pathBytes := encodeShortASCII(filePath)
	row = append(row, pathBytes...)

	copy(row[94+17*2:94+18*2], le16(titleOff))
	copy(row[94+20*2:94+21*2], le16(pathOff))
	return row
}

func buildArtistRow(id uint32, name string) []byte {
	row := make([]byte, 0xA+2)
	copy(row[4:8], le32(id))
	nameOff := byte(len(row))
	row[9] = nameOff
	row = append(row, encodeShortASCII(name)...)
	return row
}

func buildPDBFile(pageSize uint32, trackRows, artistRows [][]byte) []byte {
	header := buildHeader(pageSize, [][4]uint32{
		{0, 0, 1, 1}, // Tracks table, pages [1,1]
		{2, 0, 2, 2}, // Artists table, pages [2,2]
	})
	trackPage := buildPage(pageSize, 1, 0, 1, trackRows)
	artistPage := buildPage(pageSize, 2, 2, 2, artistRows)

	total := make([]byte, 3*pageSize)
	copy(total, header)
	copy(total[pageSize:], trackPage)
	copy(total[2*pageSize:], artistPage)
	return total
}

func buildANLZCueFile(path string, timeMs uint32) []byte {
	pathUTF16 := make([]byte, 0, len(path)*2)
	for _, r := range path {
		pathUTF16 = append(pathUTF16, be16(uint16(r))...)
	}
	pathBody := append(be32(uint32(len(pathUTF16))), pathUTF16...)
	pathSection := append(be32(0x50505448), be32(12)...)
	pathSection = append(pathSection, be32(uint32(12+len(pathBody)))...)
	pathSection = append(pathSection, pathBody...)

	entry := make([]byte, 60)
	copy(entry[0:4], be32(0x50435032))
	copy(entry[4:8], be32(12))
	copy(entry[8:12], be32(60))
	copy(entry[12:16], be32(1))
	copy(entry[16:20], be32(1))
	copy(entry[36:40], be32(timeMs))

	cueBody := append(be32(1), entry...)
	cueSection := append(be32(0x50435832), be32(12)...)
	cueSection = append(cueSection, be32(uint32(12+len(cueBody)))...)
	cueSection = append(cueSection, cueBody...)

	header := make([]byte, 12)
	copy(header[0:4], be32(0x504D4149))
	copy(header[4:8], be32(12))
	buf := append(header, pathSection...)
	buf = append(buf, cueSection...)
	copy(buf[8:12], be32(uint32(len(buf))))
	return buf
}

func TestEndToEndTrackArtistAndCueJoin(t *testing.T) {
	const pageSize = 4096
	trackRow := buildTrackRow(1, 10, "One More Time", "Music/one-more-time.mp3")
	artistRow := buildArtistRow(10, "Daft Punk")

	pdbData := buildPDBFile(pageSize, [][]byte{trackRow}, [][]byte{artistRow})
	anlzData := buildANLZCueFile("Music/one-more-time.mp3", 10000)

	fsys := fstest.MapFS{
		"export.pdb":       {Data: pdbData},
		"anlz/ANLZ0000.DAT": {Data: anlzData},
	}

	db, err := Open("export.pdb", WithFS(hostio.FromFS(fsys)))
	require.NoError(t, err)
	require.Equal(t, 1, db.TrackCount())
	require.Equal(t, 1, db.ArtistCount())

	track, ok := db.GetTrack(index.TrackID(1))
	require.True(t, ok)
	require.Equal(t, "One More Time", track.Title)

	artistIDs := db.FindArtistsByName("daft punk")
	require.Equal(t, []index.ArtistID{10}, artistIDs)

	tracks := db.FindTracksByArtist(index.ArtistID(10))
	require.Equal(t, []index.TrackID{1}, tracks)

	require.NoError(t, db.LoadANLZDirectory("anlz"))
	cues, ok := db.GetCuePointsForTrack(index.TrackID(1))
	require.True(t, ok)
	require.Len(t, cues, 1)
	require.Equal(t, 10.0, cues[0].TimeSeconds())
}
