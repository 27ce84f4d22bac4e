package pdb

import "github.com/riftbox/cratedigger/internal/binreader"

// Artist row layout: u16 subtype, u16 index_shift, u32 id, u8 unknown,
// u8 ofs_name_near, followed by a device-SQL string. When subtype bit
// 0x04 is set, the true offset is a u16 at row_base+0x0A instead of the
// one-byte near offset.
const (
	artistOfsSubtype    = 0
	artistOfsID         = 4
	artistOfsNameNear   = 9
	artistOfsFarOffset  = 0x0A
	artistFarSubtypeBit = 0x04
)

// ArtistRow is the decoded form of an Artists-table row.
type ArtistRow struct {
	ID   int64
	Name string
}

// DecodeArtistRow decodes an artist row at rowBase.
func (db *Database) DecodeArtistRow(rowBase int) (ArtistRow, bool) {
	if db.DataAt(rowBase, artistOfsFarOffset+2) == nil {
		return ArtistRow{}, false
	}
	subtype, _ := binreader.U16LE(db.data, rowBase+artistOfsSubtype)
	id, _ := binreader.U32LE(db.data, rowBase+artistOfsID)
	nameOffset := resolveNearFarOffset16(db, rowBase, subtype, artistOfsNameNear, artistOfsFarOffset)
	return ArtistRow{
		ID:   int64(id),
		Name: db.ReadString(rowBase + nameOffset),
	}, true
}

// Album row layout: u16 subtype, u16 index_shift, u32 unknown1, u32
// artist_id, u32 id, u32 unknown2, u8 unknown3, u8 ofs_name_near,
// followed by a device-SQL string. Far offset (when subtype bit 0x04 is
// set) is a u16 at row_base+0x16.
const (
	albumOfsSubtype   = 0
	albumOfsArtistID  = 8
	albumOfsID        = 12
	albumOfsNameNear  = 21
	albumOfsFarOffset = 0x16
)

// AlbumRow is the decoded form of an Albums-table row.
type AlbumRow struct {
	ID       int64
	ArtistID int64
	Name     string
}

// DecodeAlbumRow decodes an album row at rowBase.
func (db *Database) DecodeAlbumRow(rowBase int) (AlbumRow, bool) {
	if db.DataAt(rowBase, albumOfsFarOffset+2) == nil {
		return AlbumRow{}, false
	}
	subtype, _ := binreader.U16LE(db.data, rowBase+albumOfsSubtype)
	id, _ := binreader.U32LE(db.data, rowBase+albumOfsID)
	artistID, _ := binreader.U32LE(db.data, rowBase+albumOfsArtistID)
	nameOffset := resolveNearFarOffset16(db, rowBase, subtype, albumOfsNameNear, albumOfsFarOffset)
	return AlbumRow{
		ID:       int64(id),
		ArtistID: int64(artistID),
		Name:     db.ReadString(rowBase + nameOffset),
	}, true
}

// resolveNearFarOffset16 implements the near/far offset idiom common to
// artist and album rows: the one-byte offset at nearOff is used unless
// subtype's bit 0x04 is set, in which case a u16 at farPos replaces it.
func resolveNearFarOffset16(db *Database, rowBase int, subtype uint16, nearOff, farPos int) int {
	nearByte, _ := binreader.U8(db.data, rowBase+nearOff)
	offset := int(nearByte)
	if subtype&artistFarSubtypeBit != 0 {
		if far, ok := binreader.U16LE(db.data, rowBase+farPos); ok {
			offset = int(far)
		}
	}
	return offset
}
