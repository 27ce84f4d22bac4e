package pdb

import "github.com/riftbox/cratedigger/internal/binreader"

// This file covers the "trailing device-SQL string" idiom (spec §4.3):
// a small fixed-size prefix followed immediately by a device-SQL string.

// GenreRow: u32 id, then name.
type GenreRow struct {
	ID   int64
	Name string
}

const genreRowFixedSize = 4

// DecodeGenreRow decodes a genre row at rowBase.
func (db *Database) DecodeGenreRow(rowBase int) (GenreRow, bool) {
	id, ok := binreader.U32LE(db.data, rowBase)
	if !ok {
		return GenreRow{}, false
	}
	return GenreRow{ID: int64(id), Name: db.ReadString(rowBase + genreRowFixedSize)}, true
}

// LabelRow: u32 id, then name.
type LabelRow struct {
	ID   int64
	Name string
}

const labelRowFixedSize = 4

// DecodeLabelRow decodes a label row at rowBase.
func (db *Database) DecodeLabelRow(rowBase int) (LabelRow, bool) {
	id, ok := binreader.U32LE(db.data, rowBase)
	if !ok {
		return LabelRow{}, false
	}
	return LabelRow{ID: int64(id), Name: db.ReadString(rowBase + labelRowFixedSize)}, true
}

// KeyRow: u32 id, u32 id2 (unused), then name.
type KeyRow struct {
	ID   int64
	Name string
}

const keyRowFixedSize = 8

// DecodeKeyRow decodes a musical-key row at rowBase.
func (db *Database) DecodeKeyRow(rowBase int) (KeyRow, bool) {
	id, ok := binreader.U32LE(db.data, rowBase)
	if !ok {
		return KeyRow{}, false
	}
	return KeyRow{ID: int64(id), Name: db.ReadString(rowBase + keyRowFixedSize)}, true
}

// ColorRow: 5 bytes padding, u16 id, u8 unknown, then name.
type ColorRow struct {
	ID   int64
	Name string
}

const (
	colorOfsID      = 5
	colorRowFixedSize = 8
)

// DecodeColorRow decodes a color row at rowBase.
func (db *Database) DecodeColorRow(rowBase int) (ColorRow, bool) {
	id, ok := binreader.U16LE(db.data, rowBase+colorOfsID)
	if !ok {
		return ColorRow{}, false
	}
	return ColorRow{ID: int64(id), Name: db.ReadString(rowBase + colorRowFixedSize)}, true
}

// ArtworkRow: u32 id, then path.
type ArtworkRow struct {
	ID   int64
	Path string
}

const artworkRowFixedSize = 4

// DecodeArtworkRow decodes an artwork row at rowBase.
func (db *Database) DecodeArtworkRow(rowBase int) (ArtworkRow, bool) {
	id, ok := binreader.U32LE(db.data, rowBase)
	if !ok {
		return ArtworkRow{}, false
	}
	return ArtworkRow{ID: int64(id), Path: db.ReadString(rowBase + artworkRowFixedSize)}, true
}

// PlaylistTreeRow: u32 parent_id, u32 unknown, u32 sort_order, u32 id,
// u32 raw_is_folder, then name.
type PlaylistTreeRow struct {
	ParentID  int64
	SortOrder uint32
	ID        int64
	IsFolder  bool
	Name      string
}

const (
	playlistTreeOfsParentID  = 0
	playlistTreeOfsSortOrder = 8
	playlistTreeOfsID        = 12
	playlistTreeOfsIsFolder  = 16
	playlistTreeRowFixedSize = 20
)

// DecodePlaylistTreeRow decodes a playlist-tree row at rowBase.
func (db *Database) DecodePlaylistTreeRow(rowBase int) (PlaylistTreeRow, bool) {
	if db.DataAt(rowBase, playlistTreeRowFixedSize) == nil {
		return PlaylistTreeRow{}, false
	}
	parentID, _ := binreader.U32LE(db.data, rowBase+playlistTreeOfsParentID)
	sortOrder, _ := binreader.U32LE(db.data, rowBase+playlistTreeOfsSortOrder)
	id, _ := binreader.U32LE(db.data, rowBase+playlistTreeOfsID)
	isFolder, _ := binreader.U32LE(db.data, rowBase+playlistTreeOfsIsFolder)
	return PlaylistTreeRow{
		ParentID:  int64(parentID),
		SortOrder: sortOrder,
		ID:        int64(id),
		IsFolder:  isFolder != 0,
		Name:      db.ReadString(rowBase + playlistTreeRowFixedSize),
	}, true
}

// PlaylistEntryRow: u32 entry_index, u32 track_id, u32 playlist_id.
type PlaylistEntryRow struct {
	EntryIndex uint32
	TrackID    int64
	PlaylistID int64
}

const playlistEntryRowSize = 12

// DecodePlaylistEntryRow decodes a playlist-entry row at rowBase.
func (db *Database) DecodePlaylistEntryRow(rowBase int) (PlaylistEntryRow, bool) {
	if db.DataAt(rowBase, playlistEntryRowSize) == nil {
		return PlaylistEntryRow{}, false
	}
	entryIndex, _ := binreader.U32LE(db.data, rowBase)
	trackID, _ := binreader.U32LE(db.data, rowBase+4)
	playlistID, _ := binreader.U32LE(db.data, rowBase+8)
	return PlaylistEntryRow{
		EntryIndex: entryIndex,
		TrackID:    int64(trackID),
		PlaylistID: int64(playlistID),
	}, true
}

// HistoryPlaylistRow: u32 id, then name.
type HistoryPlaylistRow struct {
	ID   int64
	Name string
}

const historyPlaylistRowFixedSize = 4

// DecodeHistoryPlaylistRow decodes a history-playlist row at rowBase.
func (db *Database) DecodeHistoryPlaylistRow(rowBase int) (HistoryPlaylistRow, bool) {
	id, ok := binreader.U32LE(db.data, rowBase)
	if !ok {
		return HistoryPlaylistRow{}, false
	}
	return HistoryPlaylistRow{ID: int64(id), Name: db.ReadString(rowBase + historyPlaylistRowFixedSize)}, true
}

// HistoryEntryRow: u32 track_id, u32 playlist_id, u32 entry_index.
type HistoryEntryRow struct {
	TrackID    int64
	PlaylistID int64
	EntryIndex uint32
}

const historyEntryRowSize = 12

// DecodeHistoryEntryRow decodes a history-entry row at rowBase.
func (db *Database) DecodeHistoryEntryRow(rowBase int) (HistoryEntryRow, bool) {
	if db.DataAt(rowBase, historyEntryRowSize) == nil {
		return HistoryEntryRow{}, false
	}
	trackID, _ := binreader.U32LE(db.data, rowBase)
	playlistID, _ := binreader.U32LE(db.data, rowBase+4)
	entryIndex, _ := binreader.U32LE(db.data, rowBase+8)
	return HistoryEntryRow{
		TrackID:    int64(trackID),
		PlaylistID: int64(playlistID),
		EntryIndex: entryIndex,
	}, true
}
