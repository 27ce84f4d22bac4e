package rekordbox

import (
	"testing"
	"testing/fstest"

	"github.com/riftbox/cratedigger/hostio"
	"github.com/riftbox/cratedigger/index"
	"github.com/stretchr/testify/require"
)

// buildTagRow constructs a minimal exportExt.pdb tag/category row: u16
// subtype (0, so the near-offset byte at tagOfsNameNear applies), u16
// tag_index, 8 reserved bytes, u32 category, u32 category_pos, u32 id,
// u32 is_category, u8 reserved, u8 ofs_name_near, u8 ofs_unknown_near.
func buildTagRow(id, categoryID, position uint32, isCategory bool, name string) []byte {
	row := make([]byte, tagRowFixedSizeForTest)
	copy(row[12:16], le32(categoryID))
	copy(row[16:20], le32(position))
	copy(row[20:24], le32(id))
	if isCategory {
		copy(row[24:28], le32(1))
	}
	row[29] = byte(len(row))
	row = append(row, encodeShortASCII(name)...)
	return row
}

const tagRowFixedSizeForTest = 31

func buildTagTrackRow(tagID, trackID uint32) []byte {
	row := make([]byte, 8)
	copy(row[0:4], le32(tagID))
	copy(row[4:8], le32(trackID))
	return row
}

func buildExtPDBFile(pageSize uint32, tagRows, tagTrackRows [][]byte) []byte {
	header := buildHeader(pageSize, [][4]uint32{
		{3, 0, 1, 1}, // Tags table
		{4, 0, 2, 2}, // TagTracks table
	})
	tagPage := buildPage(pageSize, 1, 3, 1, tagRows)
	tagTrackPage := buildPage(pageSize, 2, 4, 2, tagTrackRows)

	total := make([]byte, 3*pageSize)
	copy(total, header)
	copy(total[pageSize:], tagPage)
	copy(total[2*pageSize:], tagTrackPage)
	return total
}

func TestExtDBCategoriesTagsAndTrackAssociations(t *testing.T) {
	const pageSize = 4096
	category := buildTagRow(1, 0, 1, true, "Genre")
	tag := buildTagRow(10, 1, 1, false, "Deep House")
	tagTrack := buildTagTrackRow(10, 100)

	data := buildExtPDBFile(pageSize, [][]byte{category, tag}, [][]byte{tagTrack})
	fsys := fstest.MapFS{"exportExt.pdb": {Data: data}}

	db, err := OpenExt("exportExt.pdb", WithFS(hostio.FromFS(fsys)))
	require.NoError(t, err)

	cat, ok := db.GetTag(index.TagID(1))
	require.True(t, ok)
	require.Equal(t, "Genre", cat.Name)

	tg, ok := db.GetTag(index.TagID(10))
	require.True(t, ok)
	require.Equal(t, "Deep House", tg.Name)

	require.Equal(t, []index.TagID{1}, db.CategoryOrder())
	require.Equal(t, []index.TagID{10}, db.CategoryTags(index.TagID(1)))
	require.Equal(t, []index.TrackID{100}, db.FindTracksByTag(index.TagID(10)))
	require.Equal(t, []index.TagID{10}, db.FindTagsByTrack(index.TrackID(100)))
	require.Equal(t, 1, db.TagCount())
}
