// Package exsheet reads and writes rectangular ranges of cells in xlsx sheets.
// Writes are idempotent: a cell is only set when its content would change, and
// rows are only inserted when the write would change something.
package exsheet

import (
	"github.com/ukaji3/exsheet-go/pkg/exsheet/grid"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
)

// ReadOptions configures a read.
type ReadOptions struct {
	// Sheet is the sheet to read. If empty, the first sheet is used.
	Sheet string
	// Selection picks the window. If nil, the whole sheet is read.
	// A ByRange reference may also name a defined name such as "Print_Area".
	Selection grid.Selection
	// Header treats the first row of the window as field names.
	Header bool
}

// WriteOptions configures a write.
type WriteOptions struct {
	// Sheet is the sheet to write. If empty, the active sheet is used.
	// A missing sheet is created.
	Sheet string
	// StartRow is the anchor row (1-based). If 0, defaults to 1.
	StartRow int
	// StartCol is the anchor column (1-based). If 0, defaults to 1.
	StartCol int
	// Data is the payload, rows or records.
	Data models.Payload
	// Insert inserts blank rows at the anchor before writing, but only when
	// the write would change something.
	Insert bool
}

// DefaultReadOptions returns options reading the whole first sheet.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		Selection: grid.WholeSheet(),
	}
}

func (o WriteOptions) anchorRow() int {
	if o.StartRow == 0 {
		return 1
	}
	return o.StartRow
}

func (o WriteOptions) anchorCol() int {
	if o.StartCol == 0 {
		return 1
	}
	return o.StartCol
}
