package index

import "github.com/riftbox/cratedigger/pdb"

// BuildFromDatabase runs a full table scan over db and returns the
// resulting Indices. Which tables are scanned depends on db.IsExt():
// export.pdb tracks/artists/albums/... or exportExt.pdb tags/tag-tracks.
func BuildFromDatabase(db *pdb.Database) *Indices {
	b := NewBuilder()
	if db.IsExt() {
		buildExt(db, b)
	} else {
		buildStandard(db, b)
	}
	return b.Build()
}

func buildStandard(db *pdb.Database, b *Builder) {
	db.ScanTable(uint32(pdb.PageTypeTracks), func(rowBase int) {
		if row, ok := db.DecodeTrackRow(rowBase); ok {
			b.AddTrack(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeArtists), func(rowBase int) {
		if row, ok := db.DecodeArtistRow(rowBase); ok {
			b.AddArtist(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeAlbums), func(rowBase int) {
		if row, ok := db.DecodeAlbumRow(rowBase); ok {
			b.AddAlbum(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeGenres), func(rowBase int) {
		if row, ok := db.DecodeGenreRow(rowBase); ok {
			b.AddGenre(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeLabels), func(rowBase int) {
		if row, ok := db.DecodeLabelRow(rowBase); ok {
			b.AddLabel(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeColors), func(rowBase int) {
		if row, ok := db.DecodeColorRow(rowBase); ok {
			b.AddColor(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeKeys), func(rowBase int) {
		if row, ok := db.DecodeKeyRow(rowBase); ok {
			b.AddKey(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeArtwork), func(rowBase int) {
		if row, ok := db.DecodeArtworkRow(rowBase); ok {
			b.AddArtwork(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypePlaylistTree), func(rowBase int) {
		if row, ok := db.DecodePlaylistTreeRow(rowBase); ok {
			b.AddPlaylistTreeRow(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypePlaylistEntries), func(rowBase int) {
		if row, ok := db.DecodePlaylistEntryRow(rowBase); ok {
			b.AddPlaylistEntryRow(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeHistoryPlaylists), func(rowBase int) {
		if row, ok := db.DecodeHistoryPlaylistRow(rowBase); ok {
			b.AddHistoryPlaylistRow(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeHistoryEntries), func(rowBase int) {
		if row, ok := db.DecodeHistoryEntryRow(rowBase); ok {
			b.AddHistoryEntryRow(row)
		}
	})
}

func buildExt(db *pdb.Database, b *Builder) {
	db.ScanTable(uint32(pdb.PageTypeExtTags), func(rowBase int) {
		if row, ok := db.DecodeTagRow(rowBase); ok {
			b.AddTagRow(row)
		}
	})
	db.ScanTable(uint32(pdb.PageTypeExtTagTracks), func(rowBase int) {
		if row, ok := db.DecodeTagTrackRow(rowBase); ok {
			b.AddTagTrackRow(row)
		}
	})
}
