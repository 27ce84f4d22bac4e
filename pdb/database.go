// Package pdb decodes Rekordbox's paged binary container format
// (export.pdb and exportExt.pdb): header, table descriptors, pages, row
// groups, and the device-SQL strings rows point into. It has no notion of
// what a row *means* — that lives in the per-table row decoders alongside
// this file — only how to find every present row's byte address.
package pdb

import (
	"github.com/riftbox/cratedigger/dberror"
	"github.com/riftbox/cratedigger/hostio"
	"github.com/riftbox/cratedigger/internal/binreader"
	"github.com/riftbox/cratedigger/logsink"
)

const (
	headerTableCountOffset = 8
	headerPageSizeOffset   = 4
	headerTablesOffset     = 28
	tableDescriptorSize    = 16
	maxPageSize            = 65536
)

// Database is a fully-loaded PDB file: the whole file buffer, plus the
// table descriptors parsed from its header. Open reads the entire file
// into memory once, matching the reference implementation and this
// module's "load, then serve from memory" lifecycle.
type Database struct {
	data      []byte
	pageSize  uint32
	tableCnt  uint32
	isExt     bool
	tables    []Table
	log       logsink.Sink
	sourceTag string // path, used only for log/error messages
}

// Open reads path via fsys, validates the PDB header, and parses its table
// descriptors. isExt selects exportExt.pdb table-type interpretation
// (tags, tag-tracks) over export.pdb's (tracks, artists, ...).
func Open(fsys hostio.FS, path string, isExt bool, log logsink.Sink) (*Database, error) {
	if log == nil {
		log = logsink.Nop
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < headerTablesOffset {
		return nil, dberror.New(dberror.InvalidFileFormat, "file too small to be a valid PDB file: %s", path)
	}

	pageSize, ok := binreader.U32LE(data, headerPageSizeOffset)
	if !ok || pageSize == 0 || pageSize > maxPageSize {
		return nil, dberror.New(dberror.InvalidFileFormat, "invalid page size %d in %s", pageSize, path)
	}
	tableCount, ok := binreader.U32LE(data, headerTableCountOffset)
	if !ok {
		return nil, dberror.New(dberror.InvalidFileFormat, "cannot read table count in %s", path)
	}

	tables := make([]Table, 0, tableCount)
	off := headerTablesOffset
	for i := uint32(0); i < tableCount; i++ {
		if off+tableDescriptorSize > len(data) {
			return nil, dberror.New(dberror.CorruptedData, "table definition %d extends past end of file: %s", i, path)
		}
		typeRaw, _ := binreader.U32LE(data, off)
		emptyCandidate, _ := binreader.U32LE(data, off+4)
		firstPage, _ := binreader.U32LE(data, off+8)
		lastPage, _ := binreader.U32LE(data, off+12)
		tables = append(tables, Table{
			TypeRaw:        typeRaw,
			EmptyCandidate: emptyCandidate,
			FirstPage:      firstPage,
			LastPage:       lastPage,
		})
		off += tableDescriptorSize
	}

	db := &Database{
		data:      data,
		pageSize:  pageSize,
		tableCnt:  tableCount,
		isExt:     isExt,
		tables:    tables,
		log:       log,
		sourceTag: path,
	}
	log.Log(logsink.Record{Level: logsink.Info, Message: "opened PDB file", Source: path})
	return db, nil
}

// PageSize returns the on-disk page size in bytes.
func (db *Database) PageSize() uint32 { return db.pageSize }

// TableCount returns the number of table descriptors in the header.
func (db *Database) TableCount() uint32 { return db.tableCnt }

// IsExt reports whether this Database was opened as an exportExt.pdb file.
func (db *Database) IsExt() bool { return db.isExt }

// Tables returns the parsed table descriptors, in header order.
func (db *Database) Tables() []Table { return db.tables }

// DataAt returns buf[offset:offset+size], or nil if that range would run
// past the end of the loaded file.
func (db *Database) DataAt(offset, size int) []byte {
	return binreader.Slice(db.data, offset, size)
}

// ReadString decodes a device-SQL string starting at the given absolute
// file offset. An out-of-range offset yields the empty string, never an
// error.
func (db *Database) ReadString(offset int) string {
	if offset < 0 || offset >= len(db.data) {
		return ""
	}
	return binreader.DeviceSQLString(db.data, offset)
}

// ReadPage decodes the page header (and, for data pages, its row groups)
// at the given page index.
func (db *Database) ReadPage(pageIndex uint32) (Page, error) {
	pageOffset := int(db.pageSize) * int(pageIndex)
	if pageOffset+int(db.pageSize) > len(db.data) {
		return Page{}, dberror.New(dberror.CorruptedData, "page %d extends past end of file: %s", pageIndex, db.sourceTag)
	}
	base := pageOffset

	realPageIndex, _ := binreader.U32LE(db.data, base+4)
	typeRaw, _ := binreader.U32LE(db.data, base+8)
	nextPageIndex, _ := binreader.U32LE(db.data, base+12)
	rowInfo, _ := binreader.U32LE(db.data, base+20)
	freeSize, _ := binreader.U16LE(db.data, base+24)
	usedSize, _ := binreader.U16LE(db.data, base+26)

	numRowOffsets := uint16(rowInfo & 0x1FFF)
	numRows := uint16((rowInfo >> 13) & 0x7FF)
	pageFlags := uint8((rowInfo >> 24) & 0xFF)
	isDataPage := (pageFlags & pageFlagDataPage) == 0

	page := Page{
		PageIndex:     realPageIndex,
		TypeRaw:       typeRaw,
		NextPageIndex: nextPageIndex,
		NumRowOffsets: numRowOffsets,
		NumRows:       numRows,
		PageFlags:     pageFlags,
		FreeSize:      freeSize,
		UsedSize:      usedSize,
		IsDataPage:    isDataPage,
	}

	if isDataPage && numRowOffsets > 0 {
		numGroups := (int(numRowOffsets)-1)/16 + 1
		heapPos := 40
		pageSize := int(db.pageSize)

		for g := 0; g < numGroups; g++ {
			group := RowGroup{HeapPos: pageOffset + heapPos}
			tailBase := pageSize - g*0x24

			if tailBase >= 4 && tailBase <= pageSize {
				if v, ok := binreader.U16LE(db.data, base+tailBase-4); ok {
					group.PresentFlags = v
				}
			}
			group.RowOffsets = make([]uint16, 0, 16)
			for row := 0; row < 16; row++ {
				ofsPos := tailBase - (6 + 2*row)
				if ofsPos >= 2 && ofsPos < pageSize {
					v, ok := binreader.U16LE(db.data, base+ofsPos)
					if ok {
						group.RowOffsets = append(group.RowOffsets, v)
						continue
					}
				}
				group.RowOffsets = append(group.RowOffsets, 0)
			}
			page.RowGroups = append(page.RowGroups, group)
		}
	}

	return page, nil
}

// RowHandler is invoked once per present row with the row's absolute file
// offset (row group heap position + row offset).
type RowHandler func(rowBase int)

// ScanTable walks the table matching typeRaw (compared against each
// table's TypeRaw), following the page linked list from FirstPage through
// LastPage inclusive, and invokes handler for every present row in every
// data page visited. A page read failure is logged and ends that table's
// scan; it does not propagate as an error, per this module's non-fatal
// scan policy.
func (db *Database) ScanTable(typeRaw uint32, handler RowHandler) {
	for _, table := range db.tables {
		if table.TypeRaw != typeRaw {
			continue
		}
		db.scanPageChain(table, handler)
		return
	}
	db.log.Log(logsink.Record{Level: logsink.Warn, Message: "table type not found", Source: db.sourceTag})
}

func (db *Database) scanPageChain(table Table, handler RowHandler) {
	current := table.FirstPage
	for {
		page, err := db.ReadPage(current)
		if err != nil {
			db.log.Log(logsink.Record{Level: logsink.Error, Message: "failed to read page", Source: db.sourceTag})
			return
		}
		if page.IsDataPage {
			for _, group := range page.RowGroups {
				for i, ofs := range group.RowOffsets {
					if (group.PresentFlags>>uint(i))&1 == 0 {
						continue
					}
					handler(group.HeapPos + int(ofs))
				}
			}
		}
		if current == table.LastPage {
			return
		}
		current = page.NextPageIndex
	}
}
