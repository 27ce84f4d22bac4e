package pdb

import "github.com/riftbox/cratedigger/internal/binreader"

// Tag row layout (exportExt.pdb): u16 subtype, u16 tag_index, 8 reserved
// bytes, u32 category, u32 category_pos, u32 id, u32 raw_is_category, u8
// reserved, u8 ofs_name_near, u8 ofs_unknown_near, then a device-SQL
// string. Unlike artist/album rows, the far offset here is not gated on a
// subtype bitmask but on an exact subtype value (0x0684), and it replaces
// the near offset with a u32 read AT the near-offset position itself
// rather than at some other fixed position.
const (
	tagOfsSubtype      = 0
	tagOfsCategory     = 12
	tagOfsCategoryPos  = 16
	tagOfsID           = 20
	tagOfsIsCategory   = 24
	tagOfsNameNear     = 29
	tagFarSubtype      = 0x0684
	tagRowFixedSize    = 31
)

// TagRow is the decoded form of a Tags-table row (exportExt.pdb).
type TagRow struct {
	ID          int64
	CategoryID  int64
	Position    uint32
	IsCategory  bool
	Name        string
}

// DecodeTagRow decodes a tag or tag-category row at rowBase.
func (db *Database) DecodeTagRow(rowBase int) (TagRow, bool) {
	if db.DataAt(rowBase, tagRowFixedSize) == nil {
		return TagRow{}, false
	}
	subtype, _ := binreader.U16LE(db.data, rowBase+tagOfsSubtype)
	category, _ := binreader.U32LE(db.data, rowBase+tagOfsCategory)
	categoryPos, _ := binreader.U32LE(db.data, rowBase+tagOfsCategoryPos)
	id, _ := binreader.U32LE(db.data, rowBase+tagOfsID)
	isCategory, _ := binreader.U32LE(db.data, rowBase+tagOfsIsCategory)

	nameOffset := tagOfsNameNear
	if subtype == tagFarSubtype {
		if far, ok := binreader.U32LE(db.data, rowBase+tagOfsNameNear); ok {
			nameOffset = int(far)
		}
	} else {
		if near, ok := binreader.U8(db.data, rowBase+tagOfsNameNear); ok {
			nameOffset = int(near)
		}
	}

	return TagRow{
		ID:         int64(id),
		CategoryID: int64(category),
		Position:   categoryPos,
		IsCategory: isCategory != 0,
		Name:       db.ReadString(rowBase + nameOffset),
	}, true
}

// TagTrackRow is the decoded form of a TagTracks-table row (exportExt.pdb):
// a single tag-to-track association.
type TagTrackRow struct {
	TagID   int64
	TrackID int64
}

const tagTrackRowSize = 8

// DecodeTagTrackRow decodes a tag-track association row at rowBase.
func (db *Database) DecodeTagTrackRow(rowBase int) (TagTrackRow, bool) {
	if db.DataAt(rowBase, tagTrackRowSize) == nil {
		return TagTrackRow{}, false
	}
	tagID, _ := binreader.U32LE(db.data, rowBase)
	trackID, _ := binreader.U32LE(db.data, rowBase+4)
	return TagTrackRow{TagID: int64(tagID), TrackID: int64(trackID)}, true
}
