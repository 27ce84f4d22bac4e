package pdb

// PageType identifies a table in export.pdb. Values not listed here are
// present in real exports but carry no rows this library indexes; they are
// skipped during the table scan rather than rejected.
type PageType uint32

const (
	PageTypeTracks           PageType = 0
	PageTypeGenres           PageType = 1
	PageTypeArtists          PageType = 2
	PageTypeAlbums           PageType = 3
	PageTypeLabels           PageType = 4
	PageTypeKeys             PageType = 5
	PageTypeColors           PageType = 6
	PageTypePlaylistTree     PageType = 7
	PageTypePlaylistEntries  PageType = 8
	PageTypeHistoryPlaylists PageType = 11
	PageTypeHistoryEntries   PageType = 12
	PageTypeArtwork          PageType = 13
)

// PageTypeExt identifies a table in exportExt.pdb.
type PageTypeExt uint32

const (
	PageTypeExtTags      PageTypeExt = 3
	PageTypeExtTagTracks PageTypeExt = 4
)

// pageFlagDataPage is cleared on data pages: is_data_page = (flags & 0x40) == 0.
const pageFlagDataPage = 0x40

// Table is one 16-byte table descriptor from the PDB header.
type Table struct {
	// TypeRaw is the raw u32 table-kind value, interpreted as PageType in
	// export.pdb or PageTypeExt in exportExt.pdb depending on the owning
	// Database's IsExt flag.
	TypeRaw        uint32
	EmptyCandidate uint32
	FirstPage      uint32
	LastPage       uint32
}

// Type returns the table kind as a regular PageType.
func (t Table) Type() PageType { return PageType(t.TypeRaw) }

// TypeExt returns the table kind as an extended PageTypeExt.
func (t Table) TypeExt() PageTypeExt { return PageTypeExt(t.TypeRaw) }

// RowGroup is up to 16 rows within a data page, addressed by a
// present-flags bitmap and a per-row offset table living at the page tail.
type RowGroup struct {
	PresentFlags uint16
	// RowOffsets holds up to 16 entries; RowOffsets[i] is only meaningful
	// when bit i of PresentFlags is set.
	RowOffsets []uint16
	// HeapPos is the file offset of this row group's string/row heap,
	// i.e. page_offset + 40.
	HeapPos int
}

// Page is one decoded page header plus, for data pages, its row groups.
type Page struct {
	PageIndex     uint32
	TypeRaw       uint32
	NextPageIndex uint32
	NumRowOffsets uint16
	NumRows       uint16
	PageFlags     uint8
	FreeSize      uint16
	UsedSize      uint16
	IsDataPage    bool
	RowGroups     []RowGroup
}

// Type returns the page's table kind as a regular PageType.
func (p Page) Type() PageType { return PageType(p.TypeRaw) }

// TypeExt returns the page's table kind as an extended PageTypeExt.
func (p Page) TypeExt() PageTypeExt { return PageTypeExt(p.TypeRaw) }
