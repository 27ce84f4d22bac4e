package pdb

import "github.com/riftbox/cratedigger/internal/binreader"

// Track offsets within the fixed-size prefix of a track row, reverse
// engineered by the community (see original_source/include/cratedigger/rekordbox_pdb.hpp,
// RawTrackRow) and treated here as a contract, per spec §4.3.
const (
	trackOfsSampleRate         = 8
	trackOfsComposerID         = 12
	trackOfsFileSize           = 16
	trackOfsArtworkID          = 28
	trackOfsKeyID              = 32
	trackOfsOriginalArtistID   = 36
	trackOfsLabelID            = 40
	trackOfsRemixerID          = 44
	trackOfsBitrate            = 48
	trackOfsTrackNumber        = 52
	trackOfsTempo              = 56
	trackOfsGenreID            = 60
	trackOfsAlbumID            = 64
	trackOfsArtistID           = 68
	trackOfsID                 = 72
	trackOfsDiscNumber         = 76
	trackOfsPlayCount          = 78
	trackOfsYear               = 80
	trackOfsSampleDepth        = 82
	trackOfsDuration           = 84
	trackOfsColorID            = 88
	trackOfsRating             = 89
	trackOfsStrings            = 94
	trackNumStringOffsets      = 21
	trackRowFixedSize          = trackOfsStrings + trackNumStringOffsets*2
)

// Track string-offset table indices, fixed by position per spec §4.3.
const (
	trackStrISRC             = 0
	trackStrTexter           = 1
	trackStrMessage          = 5
	trackStrKuvoPublic       = 6
	trackStrAutoloadHotCues  = 7
	trackStrDateAdded        = 10
	trackStrReleaseDate      = 11
	trackStrMixName          = 12
	trackStrAnalyzePath      = 14
	trackStrAnalyzeDate      = 15
	trackStrComment          = 16
	trackStrTitle            = 17
	trackStrFilename         = 19
	trackStrFilePath         = 20
)

// TrackRow is the decoded form of a Tracks-table row.
type TrackRow struct {
	ID                int64
	ArtistID          int64
	ComposerID        int64
	OriginalArtistID  int64
	RemixerID         int64
	AlbumID           int64
	GenreID           int64
	LabelID           int64
	KeyID             int64
	ColorID           int64
	ArtworkID         int64
	DurationSeconds   uint32
	BPM100x           uint32
	Rating            uint8
	Bitrate           uint32
	SampleRate        uint32
	SampleDepth       uint16
	Year              uint16
	FileSize          uint32
	TrackNumber       uint32
	DiscNumber        uint16
	PlayCount         uint16

	Title       string
	FilePath    string
	Filename    string
	Comment     string
	AnalyzeDate string
	AnalyzePath string
	MixName     string
	ReleaseDate string
	DateAdded   string
	ISRC        string
	Message     string
	KuvoPublic  string
	AutoloadHotCues string
	Texter      string
}

// DecodeTrackRow decodes a track row at rowBase, or ok=false if the fixed
// prefix runs past the end of the file.
func (db *Database) DecodeTrackRow(rowBase int) (TrackRow, bool) {
	if db.DataAt(rowBase, trackRowFixedSize) == nil {
		return TrackRow{}, false
	}

	u16 := func(off int) uint16 { v, _ := binreader.U16LE(db.data, rowBase+off); return v }
	u32 := func(off int) uint32 { v, _ := binreader.U32LE(db.data, rowBase+off); return v }
	u8 := func(off int) uint8 { v, _ := binreader.U8(db.data, rowBase+off); return v }

	var row TrackRow
	row.ID = int64(u32(trackOfsID))
	row.ArtistID = int64(u32(trackOfsArtistID))
	row.ComposerID = int64(u32(trackOfsComposerID))
	row.OriginalArtistID = int64(u32(trackOfsOriginalArtistID))
	row.RemixerID = int64(u32(trackOfsRemixerID))
	row.AlbumID = int64(u32(trackOfsAlbumID))
	row.GenreID = int64(u32(trackOfsGenreID))
	row.LabelID = int64(u32(trackOfsLabelID))
	row.KeyID = int64(u32(trackOfsKeyID))
	row.ColorID = int64(u8(trackOfsColorID))
	row.ArtworkID = int64(u32(trackOfsArtworkID))
	row.DurationSeconds = uint32(u16(trackOfsDuration))
	row.BPM100x = u32(trackOfsTempo)
	row.Rating = u8(trackOfsRating)
	row.Bitrate = u32(trackOfsBitrate)
	row.SampleRate = u32(trackOfsSampleRate)
	row.SampleDepth = u16(trackOfsSampleDepth)
	row.Year = u16(trackOfsYear)
	row.FileSize = u32(trackOfsFileSize)
	row.TrackNumber = u32(trackOfsTrackNumber)
	row.DiscNumber = u16(trackOfsDiscNumber)
	row.PlayCount = u16(trackOfsPlayCount)

	stringOffset := func(index int) string {
		ofs := u16(trackOfsStrings + index*2)
		return db.ReadString(rowBase + int(ofs))
	}
	row.ISRC = stringOffset(trackStrISRC)
	row.Texter = stringOffset(trackStrTexter)
	row.Message = stringOffset(trackStrMessage)
	row.KuvoPublic = stringOffset(trackStrKuvoPublic)
	row.AutoloadHotCues = stringOffset(trackStrAutoloadHotCues)
	row.DateAdded = stringOffset(trackStrDateAdded)
	row.ReleaseDate = stringOffset(trackStrReleaseDate)
	row.MixName = stringOffset(trackStrMixName)
	row.AnalyzePath = stringOffset(trackStrAnalyzePath)
	row.AnalyzeDate = stringOffset(trackStrAnalyzeDate)
	row.Comment = stringOffset(trackStrComment)
	row.Title = stringOffset(trackStrTitle)
	row.Filename = stringOffset(trackStrFilename)
	row.FilePath = stringOffset(trackStrFilePath)

	return row, true
}
