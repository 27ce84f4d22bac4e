package index

import (
	"sort"

	"github.com/riftbox/cratedigger/pdb"
)

// Indices is the complete, immutable set of indices built from one
// export.pdb (or exportExt.pdb) load. Once Builder.Build returns, every
// field here is read-only; concurrent readers may share it freely.
type Indices struct {
	Tracks  map[TrackID]pdb.TrackRow
	Artists map[ArtistID]pdb.ArtistRow
	Albums  map[AlbumID]pdb.AlbumRow
	Genres  map[GenreID]pdb.GenreRow
	Labels  map[LabelID]pdb.LabelRow
	Colors  map[ColorID]pdb.ColorRow
	Keys    map[KeyID]pdb.KeyRow
	Artwork map[ArtworkID]pdb.ArtworkRow

	TrackTitle NameIndex
	ArtistName NameIndex
	AlbumName  NameIndex
	GenreName  NameIndex
	LabelName  NameIndex
	ColorName  NameIndex
	KeyName    NameIndex

	TracksByArtist map[ArtistID][]TrackID
	TracksByAlbum  map[AlbumID][]TrackID
	TracksByGenre  map[GenreID][]TrackID
	AlbumsByArtist map[ArtistID][]AlbumID

	// PlaylistTree holds every playlist-tree row (folders and leaf
	// playlists alike), keyed by id.
	PlaylistTree map[PlaylistID]pdb.PlaylistTreeRow
	// PlaylistChildren orders each folder's direct children by sort_order.
	// The slice is sized to max(sort_order)+1; positions skipped by the
	// input stream are left as zero-valued PlaylistID sentinels.
	PlaylistChildren map[PlaylistID][]PlaylistID
	// PlaylistTracks orders each playlist's track entries by entry_index.
	// The slice is sized to max(entry_index)+1; positions skipped by the
	// input stream are left as zero-valued TrackID sentinels.
	PlaylistTracks map[PlaylistID][]TrackID

	HistoryPlaylists map[PlaylistID]string
	// HistoryPlaylistTracks orders each history playlist's entries by
	// entry_index, sentinel-padded the same way as PlaylistTracks.
	HistoryPlaylistTracks map[PlaylistID][]TrackID

	Tags           map[TagID]pdb.TagRow
	Categories     map[TagID]pdb.TagRow
	TagName        NameIndex
	CategoryOrder  []TagID
	CategoryTags   map[TagID][]TagID
	TagTracks      map[TagID][]TrackID
	TrackTags      map[TrackID][]TagID
}

// Builder accumulates rows during a single table-scan pass and produces
// an immutable Indices via Build.
type Builder struct {
	tracks  map[TrackID]pdb.TrackRow
	artists map[ArtistID]pdb.ArtistRow
	albums  map[AlbumID]pdb.AlbumRow
	genres  map[GenreID]pdb.GenreRow
	labels  map[LabelID]pdb.LabelRow
	colors  map[ColorID]pdb.ColorRow
	keys    map[KeyID]pdb.KeyRow
	artwork map[ArtworkID]pdb.ArtworkRow

	trackTitle NameIndex
	artistName NameIndex
	albumName  NameIndex
	genreName  NameIndex
	labelName  NameIndex
	colorName  NameIndex
	keyName    NameIndex

	tracksByArtist map[ArtistID][]TrackID
	tracksByAlbum  map[AlbumID][]TrackID
	tracksByGenre  map[GenreID][]TrackID
	albumsByArtist map[ArtistID][]AlbumID

	playlistTree     map[PlaylistID]pdb.PlaylistTreeRow
	playlistChildPos map[PlaylistID][]sortPair
	playlistEntries  map[PlaylistID][]sortPair

	historyPlaylists     map[PlaylistID]string
	historyEntries       map[PlaylistID][]sortPair

	tags          map[TagID]pdb.TagRow
	categories    map[TagID]pdb.TagRow
	tagName       NameIndex
	categoryOrder []sortPair
	categoryTags  map[TagID][]sortPair
	tagTracks     map[TagID][]TrackID
	trackTags     map[TrackID][]TagID
}

// sortPair is a (position, value) pair sorted by position to recover
// display order, matching the reference implementation's
// std::vector<std::pair<uint32_t, Id>> + std::sort idiom.
type sortPair struct {
	pos int64
	val int64
}

// NewBuilder returns an empty Builder ready to accept rows.
func NewBuilder() *Builder {
	return &Builder{
		tracks:  make(map[TrackID]pdb.TrackRow),
		artists: make(map[ArtistID]pdb.ArtistRow),
		albums:  make(map[AlbumID]pdb.AlbumRow),
		genres:  make(map[GenreID]pdb.GenreRow),
		labels:  make(map[LabelID]pdb.LabelRow),
		colors:  make(map[ColorID]pdb.ColorRow),
		keys:    make(map[KeyID]pdb.KeyRow),
		artwork: make(map[ArtworkID]pdb.ArtworkRow),

		tracksByArtist: make(map[ArtistID][]TrackID),
		tracksByAlbum:  make(map[AlbumID][]TrackID),
		tracksByGenre:  make(map[GenreID][]TrackID),
		albumsByArtist: make(map[ArtistID][]AlbumID),

		playlistTree:     make(map[PlaylistID]pdb.PlaylistTreeRow),
		playlistChildPos: make(map[PlaylistID][]sortPair),
		playlistEntries:  make(map[PlaylistID][]sortPair),

		historyPlaylists: make(map[PlaylistID]string),
		historyEntries:   make(map[PlaylistID][]sortPair),

		tags:         make(map[TagID]pdb.TagRow),
		categories:   make(map[TagID]pdb.TagRow),
		categoryTags: make(map[TagID][]sortPair),
		tagTracks:    make(map[TagID][]TrackID),
		trackTags:    make(map[TrackID][]TagID),
	}
}

// AddTrack indexes one decoded track row.
func (b *Builder) AddTrack(row pdb.TrackRow) {
	id := TrackID(row.ID)
	b.tracks[id] = row
	if row.Title != "" {
		b.trackTitle.Add(row.Title, int64(id))
	}
	for _, artistID := range []int64{row.ArtistID, row.ComposerID, row.OriginalArtistID, row.RemixerID} {
		if artistID > 0 {
			b.tracksByArtist[ArtistID(artistID)] = append(b.tracksByArtist[ArtistID(artistID)], id)
		}
	}
	if row.AlbumID > 0 {
		b.tracksByAlbum[AlbumID(row.AlbumID)] = append(b.tracksByAlbum[AlbumID(row.AlbumID)], id)
	}
	if row.GenreID > 0 {
		b.tracksByGenre[GenreID(row.GenreID)] = append(b.tracksByGenre[GenreID(row.GenreID)], id)
	}
}

// AddArtist indexes one decoded artist row.
func (b *Builder) AddArtist(row pdb.ArtistRow) {
	id := ArtistID(row.ID)
	b.artists[id] = row
	if row.Name != "" {
		b.artistName.Add(row.Name, int64(id))
	}
}

// AddAlbum indexes one decoded album row.
func (b *Builder) AddAlbum(row pdb.AlbumRow) {
	id := AlbumID(row.ID)
	b.albums[id] = row
	if row.Name != "" {
		b.albumName.Add(row.Name, int64(id))
	}
	if row.ArtistID > 0 {
		artistID := ArtistID(row.ArtistID)
		b.albumsByArtist[artistID] = append(b.albumsByArtist[artistID], id)
	}
}

// AddGenre indexes one decoded genre row.
func (b *Builder) AddGenre(row pdb.GenreRow) {
	id := GenreID(row.ID)
	b.genres[id] = row
	if row.Name != "" {
		b.genreName.Add(row.Name, int64(id))
	}
}

// AddLabel indexes one decoded label row.
func (b *Builder) AddLabel(row pdb.LabelRow) {
	id := LabelID(row.ID)
	b.labels[id] = row
	if row.Name != "" {
		b.labelName.Add(row.Name, int64(id))
	}
}

// AddColor indexes one decoded color row.
func (b *Builder) AddColor(row pdb.ColorRow) {
	id := ColorID(row.ID)
	b.colors[id] = row
	if row.Name != "" {
		b.colorName.Add(row.Name, int64(id))
	}
}

// AddKey indexes one decoded musical-key row.
func (b *Builder) AddKey(row pdb.KeyRow) {
	id := KeyID(row.ID)
	b.keys[id] = row
	if row.Name != "" {
		b.keyName.Add(row.Name, int64(id))
	}
}

// AddArtwork indexes one decoded artwork row.
func (b *Builder) AddArtwork(row pdb.ArtworkRow) {
	b.artwork[ArtworkID(row.ID)] = row
}

// AddPlaylistTreeRow indexes one playlist-tree row (folder or playlist).
func (b *Builder) AddPlaylistTreeRow(row pdb.PlaylistTreeRow) {
	id := PlaylistID(row.ID)
	b.playlistTree[id] = row
	if row.ParentID > 0 {
		parent := PlaylistID(row.ParentID)
		b.playlistChildPos[parent] = append(b.playlistChildPos[parent], sortPair{pos: int64(row.SortOrder), val: int64(id)})
	}
}

// AddPlaylistEntryRow indexes one playlist-entry row.
func (b *Builder) AddPlaylistEntryRow(row pdb.PlaylistEntryRow) {
	playlist := PlaylistID(row.PlaylistID)
	b.playlistEntries[playlist] = append(b.playlistEntries[playlist], sortPair{pos: int64(row.EntryIndex), val: row.TrackID})
}

// AddHistoryPlaylistRow indexes one history-playlist row.
func (b *Builder) AddHistoryPlaylistRow(row pdb.HistoryPlaylistRow) {
	b.historyPlaylists[PlaylistID(row.ID)] = row.Name
}

// AddHistoryEntryRow indexes one history-entry row.
func (b *Builder) AddHistoryEntryRow(row pdb.HistoryEntryRow) {
	playlist := PlaylistID(row.PlaylistID)
	b.historyEntries[playlist] = append(b.historyEntries[playlist], sortPair{pos: int64(row.EntryIndex), val: row.TrackID})
}

// AddTagRow indexes one tag or tag-category row (exportExt.pdb).
func (b *Builder) AddTagRow(row pdb.TagRow) {
	id := TagID(row.ID)
	if row.IsCategory {
		b.categories[id] = row
		if row.Name != "" {
			b.tagName.Add(row.Name, int64(id))
		}
		b.categoryOrder = append(b.categoryOrder, sortPair{pos: int64(row.Position), val: int64(id)})
		return
	}
	b.tags[id] = row
	if row.Name != "" {
		b.tagName.Add(row.Name, int64(id))
	}
	cat := TagID(row.CategoryID)
	b.categoryTags[cat] = append(b.categoryTags[cat], sortPair{pos: int64(row.Position), val: int64(id)})
}

// AddTagTrackRow indexes one tag-track association row (exportExt.pdb).
func (b *Builder) AddTagTrackRow(row pdb.TagTrackRow) {
	tag := TagID(row.TagID)
	track := TrackID(row.TrackID)
	b.tagTracks[tag] = append(b.tagTracks[tag], track)
	b.trackTags[track] = append(b.trackTags[track], tag)
}

// Build finalizes accumulated positions into sorted, immutable order and
// returns the resulting Indices.
func (b *Builder) Build() *Indices {
	idx := &Indices{
		Tracks:  b.tracks,
		Artists: b.artists,
		Albums:  b.albums,
		Genres:  b.genres,
		Labels:  b.labels,
		Colors:  b.colors,
		Keys:    b.keys,
		Artwork: b.artwork,

		TrackTitle: b.trackTitle,
		ArtistName: b.artistName,
		AlbumName:  b.albumName,
		GenreName:  b.genreName,
		LabelName:  b.labelName,
		ColorName:  b.colorName,
		KeyName:    b.keyName,

		TracksByArtist: b.tracksByArtist,
		TracksByAlbum:  b.tracksByAlbum,
		TracksByGenre:  b.tracksByGenre,
		AlbumsByArtist: b.albumsByArtist,

		PlaylistTree:          b.playlistTree,
		PlaylistChildren:      make(map[PlaylistID][]PlaylistID, len(b.playlistChildPos)),
		PlaylistTracks:        make(map[PlaylistID][]TrackID, len(b.playlistEntries)),
		HistoryPlaylists:      b.historyPlaylists,
		HistoryPlaylistTracks: make(map[PlaylistID][]TrackID, len(b.historyEntries)),

		Tags:          b.tags,
		Categories:    b.categories,
		TagName:       b.tagName,
		CategoryTags:  make(map[TagID][]TagID, len(b.categoryTags)),
		TagTracks:     b.tagTracks,
		TrackTags:     b.trackTags,
	}

	for playlist, kids := range b.playlistChildPos {
		out := make([]PlaylistID, maxPos(kids)+1)
		for _, p := range kids {
			out[p.pos] = PlaylistID(p.val)
		}
		idx.PlaylistChildren[playlist] = out
	}
	for playlist, entries := range b.playlistEntries {
		out := make([]TrackID, maxPos(entries)+1)
		for _, p := range entries {
			out[p.pos] = TrackID(p.val)
		}
		idx.PlaylistTracks[playlist] = out
	}
	for playlist, entries := range b.historyEntries {
		out := make([]TrackID, maxPos(entries)+1)
		for _, p := range entries {
			out[p.pos] = TrackID(p.val)
		}
		idx.HistoryPlaylistTracks[playlist] = out
	}
	for cat, tags := range b.categoryTags {
		sortPairs(tags)
		out := make([]TagID, len(tags))
		for i, p := range tags {
			out[i] = TagID(p.val)
		}
		idx.CategoryTags[cat] = out
	}

	sortPairs(b.categoryOrder)
	idx.CategoryOrder = make([]TagID, len(b.categoryOrder))
	for i, p := range b.categoryOrder {
		idx.CategoryOrder[i] = TagID(p.val)
	}

	return idx
}

// maxPos returns the largest pos among pairs, or -1 if pairs is empty.
// Positions are the raw entry_index/sort_order values from the input
// stream, which may skip values; the caller sizes a slice to maxPos+1
// and leaves the skipped positions holding their zero value as
// sentinels, matching the reference implementation's std::vector resize.
func maxPos(pairs []sortPair) int64 {
	max := int64(-1)
	for _, p := range pairs {
		if p.pos > max {
			max = p.pos
		}
	}
	return max
}

func sortPairs(pairs []sortPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].pos != pairs[j].pos {
			return pairs[i].pos < pairs[j].pos
		}
		return pairs[i].val < pairs[j].val
	})
}
