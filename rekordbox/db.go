// Package rekordbox is the public façade over pdb, anlz, index, and join:
// a one-shot load of an export.pdb (optionally paired with exportExt.pdb
// and an ANLZ directory) into an immutable, query-only handle.
package rekordbox

import (
	"sort"
	"strings"

	"github.com/riftbox/cratedigger/anlz"
	"github.com/riftbox/cratedigger/hostio"
	"github.com/riftbox/cratedigger/index"
	"github.com/riftbox/cratedigger/join"
	"github.com/riftbox/cratedigger/logsink"
	"github.com/riftbox/cratedigger/pdb"
)

// DB is a fully-loaded export.pdb handle: track/artist/album/... indices
// plus, once LoadANLZDirectory or LoadANLZFile has been called, joined
// per-track analysis artifacts. Read-only after load; safe for
// concurrent readers. Loading additional ANLZ files is not safe to
// interleave with concurrent queries — callers serialize that
// themselves, per spec §4's shared-resource policy.
type DB struct {
	fs     hostio.FS
	log    logsink.Sink
	idx    *index.Indices
	joined *join.Index
	source string
}

// Open reads and indexes an export.pdb file.
func Open(path string, opts ...Option) (*DB, error) {
	o := newOptions(opts)
	raw, err := pdb.Open(o.fs, path, false, o.log)
	if err != nil {
		return nil, err
	}
	return &DB{
		fs:     o.fs,
		log:    o.log,
		idx:    index.BuildFromDatabase(raw),
		joined: join.NewIndex(),
		source: path,
	}, nil
}

// LoadANLZDirectory recursively scans root for ANLZ files and joins their
// artifacts onto this handle's tracks.
func (db *DB) LoadANLZDirectory(root string) error {
	return db.joined.LoadDirectory(db.fs, root, db.log)
}

// LoadANLZFile decodes and joins a single ANLZ file.
func (db *DB) LoadANLZFile(path string) error {
	return db.joined.LoadFile(db.fs, path, db.log)
}

// GetTrack looks up a track by id.
func (db *DB) GetTrack(id index.TrackID) (pdb.TrackRow, bool) {
	row, ok := db.idx.Tracks[id]
	return row, ok
}

// GetArtist looks up an artist by id.
func (db *DB) GetArtist(id index.ArtistID) (pdb.ArtistRow, bool) {
	row, ok := db.idx.Artists[id]
	return row, ok
}

// GetAlbum looks up an album by id.
func (db *DB) GetAlbum(id index.AlbumID) (pdb.AlbumRow, bool) {
	row, ok := db.idx.Albums[id]
	return row, ok
}

// GetGenre looks up a genre by id.
func (db *DB) GetGenre(id index.GenreID) (pdb.GenreRow, bool) {
	row, ok := db.idx.Genres[id]
	return row, ok
}

// GetLabel looks up a label by id.
func (db *DB) GetLabel(id index.LabelID) (pdb.LabelRow, bool) {
	row, ok := db.idx.Labels[id]
	return row, ok
}

// GetColor looks up a color by id.
func (db *DB) GetColor(id index.ColorID) (pdb.ColorRow, bool) {
	row, ok := db.idx.Colors[id]
	return row, ok
}

// GetKey looks up a musical key by id.
func (db *DB) GetKey(id index.KeyID) (pdb.KeyRow, bool) {
	row, ok := db.idx.Keys[id]
	return row, ok
}

// GetArtwork looks up an artwork row by id.
func (db *DB) GetArtwork(id index.ArtworkID) (pdb.ArtworkRow, bool) {
	row, ok := db.idx.Artwork[id]
	return row, ok
}

// FindTracksByTitle returns track ids whose title case-insensitively
// matches title.
func (db *DB) FindTracksByTitle(title string) []index.TrackID {
	return toTrackIDs(db.idx.TrackTitle.Lookup(title))
}

// FindTracksByArtist returns tracks where artistID appears as artist,
// composer, original artist, or remixer.
func (db *DB) FindTracksByArtist(artistID index.ArtistID) []index.TrackID {
	return db.idx.TracksByArtist[artistID]
}

// FindTracksByAlbum returns tracks belonging to albumID.
func (db *DB) FindTracksByAlbum(albumID index.AlbumID) []index.TrackID {
	return db.idx.TracksByAlbum[albumID]
}

// FindTracksByGenre returns tracks belonging to genreID.
func (db *DB) FindTracksByGenre(genreID index.GenreID) []index.TrackID {
	return db.idx.TracksByGenre[genreID]
}

// FindTracksByBPMRange returns tracks whose tempo (in BPM) falls within
// [minBPM, maxBPM] inclusive.
func (db *DB) FindTracksByBPMRange(minBPM, maxBPM float64) []index.TrackID {
	return db.filterTracks(func(row pdb.TrackRow) bool {
		bpm := float64(row.BPM100x) / 100.0
		return bpm >= minBPM && bpm <= maxBPM
	})
}

// FindTracksByDurationRange returns tracks whose duration in seconds
// falls within [minSeconds, maxSeconds] inclusive.
func (db *DB) FindTracksByDurationRange(minSeconds, maxSeconds uint32) []index.TrackID {
	return db.filterTracks(func(row pdb.TrackRow) bool {
		return row.DurationSeconds >= minSeconds && row.DurationSeconds <= maxSeconds
	})
}

// FindTracksByYearRange returns tracks whose year falls within
// [minYear, maxYear] inclusive.
func (db *DB) FindTracksByYearRange(minYear, maxYear uint16) []index.TrackID {
	return db.filterTracks(func(row pdb.TrackRow) bool {
		return row.Year >= minYear && row.Year <= maxYear
	})
}

// FindTracksByYear returns tracks matching year exactly.
func (db *DB) FindTracksByYear(year uint16) []index.TrackID {
	return db.FindTracksByYearRange(year, year)
}

// FindTracksByRatingRange returns tracks whose rating falls within
// [minRating, maxRating] inclusive.
func (db *DB) FindTracksByRatingRange(minRating, maxRating uint8) []index.TrackID {
	return db.filterTracks(func(row pdb.TrackRow) bool {
		return row.Rating >= minRating && row.Rating <= maxRating
	})
}

// FindTracksByRating returns tracks matching rating exactly.
func (db *DB) FindTracksByRating(rating uint8) []index.TrackID {
	return db.FindTracksByRatingRange(rating, rating)
}

func (db *DB) filterTracks(pred func(pdb.TrackRow) bool) []index.TrackID {
	var out []index.TrackID
	for id, row := range db.idx.Tracks {
		if pred(row) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FindArtistsByName returns artist ids matching name case-insensitively.
func (db *DB) FindArtistsByName(name string) []index.ArtistID {
	return toArtistIDs(db.idx.ArtistName.Lookup(name))
}

// FindAlbumsByName returns album ids matching name case-insensitively.
func (db *DB) FindAlbumsByName(name string) []index.AlbumID {
	return toAlbumIDs(db.idx.AlbumName.Lookup(name))
}

// FindAlbumsByArtist returns albums attributed to artistID.
func (db *DB) FindAlbumsByArtist(artistID index.ArtistID) []index.AlbumID {
	return db.idx.AlbumsByArtist[artistID]
}

// FindGenresByName returns genre ids matching name case-insensitively.
func (db *DB) FindGenresByName(name string) []index.GenreID {
	return toGenreIDs(db.idx.GenreName.Lookup(name))
}

// FindLabelsByName returns label ids matching name case-insensitively.
func (db *DB) FindLabelsByName(name string) []index.LabelID {
	return toLabelIDs(db.idx.LabelName.Lookup(name))
}

// FindColorsByName returns color ids matching name case-insensitively.
func (db *DB) FindColorsByName(name string) []index.ColorID {
	return toColorIDs(db.idx.ColorName.Lookup(name))
}

// FindKeysByName returns key ids matching name case-insensitively.
func (db *DB) FindKeysByName(name string) []index.KeyID {
	return toKeyIDs(db.idx.KeyName.Lookup(name))
}

// GetPlaylist returns playlist id's ordered track sequence.
func (db *DB) GetPlaylist(id index.PlaylistID) ([]index.TrackID, bool) {
	tracks, ok := db.idx.PlaylistTracks[id]
	return tracks, ok
}

// GetPlaylistFolder returns folderID's ordered child playlist/folder ids.
func (db *DB) GetPlaylistFolder(folderID index.PlaylistID) ([]index.PlaylistID, bool) {
	children, ok := db.idx.PlaylistChildren[folderID]
	return children, ok
}

// GetHistoryPlaylist returns a history playlist's ordered track sequence.
func (db *DB) GetHistoryPlaylist(id index.PlaylistID) ([]index.TrackID, bool) {
	tracks, ok := db.idx.HistoryPlaylistTracks[id]
	return tracks, ok
}

// FindHistoryPlaylistByName looks up a history playlist id by exact,
// case-insensitive name.
func (db *DB) FindHistoryPlaylistByName(name string) (index.PlaylistID, bool) {
	fold := strings.ToLower(name)
	for id, n := range db.idx.HistoryPlaylists {
		if strings.ToLower(n) == fold {
			return id, true
		}
	}
	return 0, false
}

// AllTrackIDs returns every indexed track id, sorted ascending.
func (db *DB) AllTrackIDs() []index.TrackID {
	out := make([]index.TrackID, 0, len(db.idx.Tracks))
	for id := range db.idx.Tracks {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllArtistIDs returns every indexed artist id, sorted ascending.
func (db *DB) AllArtistIDs() []index.ArtistID {
	out := make([]index.ArtistID, 0, len(db.idx.Artists))
	for id := range db.idx.Artists {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllAlbumIDs returns every indexed album id, sorted ascending.
func (db *DB) AllAlbumIDs() []index.AlbumID {
	out := make([]index.AlbumID, 0, len(db.idx.Albums))
	for id := range db.idx.Albums {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllGenreIDs returns every indexed genre id, sorted ascending.
func (db *DB) AllGenreIDs() []index.GenreID {
	out := make([]index.GenreID, 0, len(db.idx.Genres))
	for id := range db.idx.Genres {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllPlaylistIDs returns every playlist-tree id (folders and playlists
// alike), sorted ascending.
func (db *DB) AllPlaylistIDs() []index.PlaylistID {
	out := make([]index.PlaylistID, 0, len(db.idx.PlaylistTree))
	for id := range db.idx.PlaylistTree {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GetAllBPMs returns every track's tempo in BPM (not ×100), unordered.
func (db *DB) GetAllBPMs() []float64 {
	out := make([]float64, 0, len(db.idx.Tracks))
	for _, row := range db.idx.Tracks {
		out = append(out, float64(row.BPM100x)/100.0)
	}
	return out
}

// GetAllDurations returns every track's duration in seconds, unordered.
func (db *DB) GetAllDurations() []uint32 {
	out := make([]uint32, 0, len(db.idx.Tracks))
	for _, row := range db.idx.Tracks {
		out = append(out, row.DurationSeconds)
	}
	return out
}

// GetAllYears returns every track's year, unordered.
func (db *DB) GetAllYears() []uint16 {
	out := make([]uint16, 0, len(db.idx.Tracks))
	for _, row := range db.idx.Tracks {
		out = append(out, row.Year)
	}
	return out
}

// GetAllRatings returns every track's rating, unordered.
func (db *DB) GetAllRatings() []uint8 {
	out := make([]uint8, 0, len(db.idx.Tracks))
	for _, row := range db.idx.Tracks {
		out = append(out, row.Rating)
	}
	return out
}

// GetAllBitrates returns every track's bitrate, unordered.
func (db *DB) GetAllBitrates() []uint32 {
	out := make([]uint32, 0, len(db.idx.Tracks))
	for _, row := range db.idx.Tracks {
		out = append(out, row.Bitrate)
	}
	return out
}

// GetAllSampleRates returns every track's sample rate, unordered.
func (db *DB) GetAllSampleRates() []uint32 {
	out := make([]uint32, 0, len(db.idx.Tracks))
	for _, row := range db.idx.Tracks {
		out = append(out, row.SampleRate)
	}
	return out
}

// TrackCount, ArtistCount, AlbumCount, GenreCount, PlaylistCount report
// primary-index sizes.
func (db *DB) TrackCount() int    { return len(db.idx.Tracks) }
func (db *DB) ArtistCount() int   { return len(db.idx.Artists) }
func (db *DB) AlbumCount() int    { return len(db.idx.Albums) }
func (db *DB) GenreCount() int    { return len(db.idx.Genres) }
func (db *DB) PlaylistCount() int { return len(db.idx.PlaylistTree) }

// SourceFile returns the path this handle was opened from.
func (db *DB) SourceFile() string { return db.source }

// GetCuePointsForTrack returns the joined cue points for trackID, resolved
// via the track's stored file path.
func (db *DB) GetCuePointsForTrack(trackID index.TrackID) ([]anlz.CuePoint, bool) {
	row, ok := db.idx.Tracks[trackID]
	if !ok || row.FilePath == "" {
		return nil, false
	}
	return db.GetCuePoints(row.FilePath)
}

// GetCuePoints returns the joined cue points for the exact ANLZ join key
// trackPath.
func (db *DB) GetCuePoints(trackPath string) ([]anlz.CuePoint, bool) {
	a, ok := db.joined.ByPath(trackPath)
	if !ok {
		return nil, false
	}
	return a.CuePoints, true
}

// FindCuePointsByFilename returns cue points for the first join-key entry
// (in sorted key order) containing filename as a substring.
func (db *DB) FindCuePointsByFilename(filename string) ([]anlz.CuePoint, bool) {
	a, ok := db.joined.ByFilenameSubstring(filename)
	if !ok {
		return nil, false
	}
	return a.CuePoints, true
}

// GetBeatGridForTrack returns the joined beat grid for trackID.
func (db *DB) GetBeatGridForTrack(trackID index.TrackID) ([]anlz.BeatGridEntry, bool) {
	row, ok := db.idx.Tracks[trackID]
	if !ok || row.FilePath == "" {
		return nil, false
	}
	a, ok := db.joined.ByPath(row.FilePath)
	if !ok {
		return nil, false
	}
	return a.BeatGrid, true
}

// GetSongStructureForTrack returns the joined song structure for trackID.
func (db *DB) GetSongStructureForTrack(trackID index.TrackID) (*anlz.SongStructure, bool) {
	row, ok := db.idx.Tracks[trackID]
	if !ok || row.FilePath == "" {
		return nil, false
	}
	a, ok := db.joined.ByPath(row.FilePath)
	if !ok || a.Structure == nil {
		return nil, false
	}
	return a.Structure, true
}

// GetWaveformPreviewForTrack returns the joined waveform preview for
// trackID.
func (db *DB) GetWaveformPreviewForTrack(trackID index.TrackID) (*anlz.WaveformPreview, bool) {
	row, ok := db.idx.Tracks[trackID]
	if !ok || row.FilePath == "" {
		return nil, false
	}
	a, ok := db.joined.ByPath(row.FilePath)
	if !ok || a.Preview == nil {
		return nil, false
	}
	return a.Preview, true
}

// GetWaveformDetailForTrack returns the joined waveform detail (the
// highest-quality style contributed) for trackID.
func (db *DB) GetWaveformDetailForTrack(trackID index.TrackID) (*anlz.WaveformDetail, bool) {
	row, ok := db.idx.Tracks[trackID]
	if !ok || row.FilePath == "" {
		return nil, false
	}
	a, ok := db.joined.ByPath(row.FilePath)
	if !ok || a.Detail == nil {
		return nil, false
	}
	return a.Detail, true
}

// CuePointTrackCount returns the number of distinct join keys loaded from
// ANLZ files. Keys whose files carried no cue points are counted too.
func (db *DB) CuePointTrackCount() int {
	return db.joined.Len()
}

func toTrackIDs(ids []int64) []index.TrackID {
	out := make([]index.TrackID, len(ids))
	for i, id := range ids {
		out[i] = index.TrackID(id)
	}
	return out
}

func toArtistIDs(ids []int64) []index.ArtistID {
	out := make([]index.ArtistID, len(ids))
	for i, id := range ids {
		out[i] = index.ArtistID(id)
	}
	return out
}

func toAlbumIDs(ids []int64) []index.AlbumID {
	out := make([]index.AlbumID, len(ids))
	for i, id := range ids {
		out[i] = index.AlbumID(id)
	}
	return out
}

func toGenreIDs(ids []int64) []index.GenreID {
	out := make([]index.GenreID, len(ids))
	for i, id := range ids {
		out[i] = index.GenreID(id)
	}
	return out
}

func toLabelIDs(ids []int64) []index.LabelID {
	out := make([]index.LabelID, len(ids))
	for i, id := range ids {
		out[i] = index.LabelID(id)
	}
	return out
}

func toColorIDs(ids []int64) []index.ColorID {
	out := make([]index.ColorID, len(ids))
	for i, id := range ids {
		out[i] = index.ColorID(id)
	}
	return out
}

func toKeyIDs(ids []int64) []index.KeyID {
	out := make([]index.KeyID, len(ids))
	for i, id := range ids {
		out[i] = index.KeyID(id)
	}
	return out
}
