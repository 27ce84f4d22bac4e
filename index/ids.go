// Package index materializes the primary and secondary indices used to
// answer every query the rekordbox package exposes: id→row primary
// indices, name→ids and foreign-key→ids secondary indices, and the
// ordered playlist/tag structures, all built in a single pass over a
// decoded pdb.Database.
package index

// Strong id types. Each entity kind gets its own named type so that, for
// example, an ArtistID can never be passed where a TrackID is expected —
// the compiler catches what would otherwise be a silent foreign-key mixup.
type (
	TrackID    int64
	ArtistID   int64
	AlbumID    int64
	GenreID    int64
	LabelID    int64
	ColorID    int64
	KeyID      int64
	ArtworkID  int64
	PlaylistID int64
	TagID      int64
)
