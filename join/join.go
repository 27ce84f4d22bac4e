// Package join maps ANLZ-derived per-track artifacts (cues, beat grids,
// waveforms, song structure) onto tracks by the file path embedded in
// each ANLZ file's PPTH section, with a filename-substring fallback.
package join

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/riftbox/cratedigger/anlz"
	"github.com/riftbox/cratedigger/hostio"
	"github.com/riftbox/cratedigger/logsink"
)

// Artifacts is the merged, per-track analysis data contributed by every
// ANLZ file (.DAT/.EXT/.2EX) that shares one join key.
type Artifacts struct {
	CuePoints    []anlz.CuePoint
	CuePointsExt bool
	BeatGrid     []anlz.BeatGridEntry
	Structure    *anlz.SongStructure
	Preview      *anlz.WaveformPreview
	Detail       *anlz.WaveformDetail
}

// pathEntry is one (key, artifacts) pair kept in key-sorted order so
// filename-substring lookups have a deterministic first match, per spec
// §4.7's "natural ordering of the underlying ordered map" requirement.
type pathEntry struct {
	key       string
	artifacts *Artifacts
}

// Index is the join layer's result: every ANLZ file loaded during a
// directory scan, merged by path key.
type Index struct {
	entries []pathEntry
}

// NewIndex returns an empty join index.
func NewIndex() *Index {
	return &Index{}
}

// LoadDirectory walks root for every ANLZ file hostio.FS recognizes,
// decodes each one, and merges it into the index keyed by its embedded
// PPTH path (falling back to the file's stem when PPTH is absent).
func (idx *Index) LoadDirectory(fsys hostio.FS, root string, log logsink.Sink) error {
	if log == nil {
		log = logsink.Nop
	}
	paths, err := fsys.WalkANLZFiles(root)
	if err != nil {
		return err
	}
	for _, p := range paths {
		f, err := anlz.Open(fsys, p, log)
		if err != nil {
			log.Log(logsink.Record{Level: logsink.Warn, Message: "skipping unreadable ANLZ file", Source: p})
			continue
		}
		idx.merge(joinKey(f, p), f)
	}
	return nil
}

// LoadFile decodes a single ANLZ file and merges it into the index.
func (idx *Index) LoadFile(fsys hostio.FS, path string, log logsink.Sink) error {
	if log == nil {
		log = logsink.Nop
	}
	f, err := anlz.Open(fsys, path, log)
	if err != nil {
		return err
	}
	idx.merge(joinKey(f, path), f)
	return nil
}

func joinKey(f *anlz.File, filePath string) string {
	if f.Path != "" {
		return f.Path
	}
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// merge applies the §4.7 per-field merge rules for one ANLZ file's
// contribution to an existing (or new) join-key entry.
func (idx *Index) merge(key string, f *anlz.File) {
	e := idx.find(key)
	if e == nil {
		e = &Artifacts{}
		idx.insert(key, e)
	}

	if len(f.CuePoints) > 0 {
		if len(e.CuePoints) == 0 || (f.CuePointsExt && !e.CuePointsExt) {
			e.CuePoints = f.CuePoints
			e.CuePointsExt = f.CuePointsExt
		}
	}
	if len(f.BeatGrid) > 0 && len(e.BeatGrid) == 0 {
		e.BeatGrid = f.BeatGrid
	}
	if f.Structure != nil && e.Structure == nil {
		e.Structure = f.Structure
	}
	if f.Preview != nil && (e.Preview == nil ||
		(e.Preview.Style == anlz.WaveformStyleRGB && f.Preview.Style == anlz.WaveformStyleThreeBand)) {
		e.Preview = f.Preview
	}
	if f.Detail != nil && (e.Detail == nil || f.Detail.Style > e.Detail.Style) {
		e.Detail = f.Detail
	}
}

func (idx *Index) find(key string) *Artifacts {
	i := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].key >= key })
	if i < len(idx.entries) && idx.entries[i].key == key {
		return idx.entries[i].artifacts
	}
	return nil
}

func (idx *Index) insert(key string, a *Artifacts) {
	i := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].key >= key })
	idx.entries = append(idx.entries, pathEntry{})
	copy(idx.entries[i+1:], idx.entries[i:])
	idx.entries[i] = pathEntry{key: key, artifacts: a}
}

// Len returns the number of distinct join keys carrying merged artifacts.
func (idx *Index) Len() int { return len(idx.entries) }

// ByPath looks up artifacts by an exact join-key match.
func (idx *Index) ByPath(path string) (*Artifacts, bool) {
	a := idx.find(path)
	return a, a != nil
}

// ByFilenameSubstring returns the artifacts for the first key (in sorted
// key order) that contains substr, per spec §4.7.
func (idx *Index) ByFilenameSubstring(substr string) (*Artifacts, bool) {
	for _, e := range idx.entries {
		if strings.Contains(e.key, substr) {
			return e.artifacts, true
		}
	}
	return nil, false
}

// ByTrackPath resolves via the track's stored file-path string (an exact
// match against the join key). Callers first resolve a track id to its
// FilePath field via the track index, then call this with that string.
func ByTrackPath(idx *Index, filePath string) (*Artifacts, bool) {
	return idx.ByPath(filePath)
}
