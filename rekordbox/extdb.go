package rekordbox

import (
	"sort"

	"github.com/riftbox/cratedigger/index"
	"github.com/riftbox/cratedigger/pdb"
)

// ExtDB is a fully-loaded exportExt.pdb handle: tags, tag categories, and
// tag↔track associations. Distinct from DB because exportExt.pdb carries
// a disjoint table set from export.pdb (spec §4.1's C2 notes the two
// share one container format but not one table-type interpretation).
type ExtDB struct {
	idx    *index.Indices
	source string
}

// OpenExt reads and indexes an exportExt.pdb file.
func OpenExt(path string, opts ...Option) (*ExtDB, error) {
	o := newOptions(opts)
	raw, err := pdb.Open(o.fs, path, true, o.log)
	if err != nil {
		return nil, err
	}
	return &ExtDB{idx: index.BuildFromDatabase(raw), source: path}, nil
}

// GetTag looks up a tag or tag-category row by id.
func (db *ExtDB) GetTag(id index.TagID) (pdb.TagRow, bool) {
	if row, ok := db.idx.Tags[id]; ok {
		return row, true
	}
	row, ok := db.idx.Categories[id]
	return row, ok
}

// FindTagsByName returns tag/category ids matching name case-insensitively.
func (db *ExtDB) FindTagsByName(name string) []index.TagID {
	return toTagIDs(db.idx.TagName.Lookup(name))
}

// FindTracksByTag returns every track associated with tagID.
func (db *ExtDB) FindTracksByTag(tagID index.TagID) []index.TrackID {
	return db.idx.TagTracks[tagID]
}

// FindTagsByTrack returns every tag associated with trackID.
func (db *ExtDB) FindTagsByTrack(trackID index.TrackID) []index.TagID {
	return db.idx.TrackTags[trackID]
}

// CategoryOrder returns every tag-category id in display order
// (ascending category_pos).
func (db *ExtDB) CategoryOrder() []index.TagID {
	return db.idx.CategoryOrder
}

// CategoryTags returns categoryID's tags in display order (ascending
// category_pos).
func (db *ExtDB) CategoryTags(categoryID index.TagID) []index.TagID {
	return db.idx.CategoryTags[categoryID]
}

// AllTagIDs returns every tag id (excluding categories), sorted ascending.
func (db *ExtDB) AllTagIDs() []index.TagID {
	out := make([]index.TagID, 0, len(db.idx.Tags))
	for id := range db.idx.Tags {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TagCount returns the number of indexed tags (excluding categories).
func (db *ExtDB) TagCount() int { return len(db.idx.Tags) }

// SourceFile returns the path this handle was opened from.
func (db *ExtDB) SourceFile() string { return db.source }

func toTagIDs(ids []int64) []index.TagID {
	out := make([]index.TagID, len(ids))
	for i, id := range ids {
		out[i] = index.TagID(id)
	}
	return out
}
