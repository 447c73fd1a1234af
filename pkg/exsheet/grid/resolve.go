// Package grid resolves cell windows and walks them over a sheet to read rows,
// read header-keyed records, and perform idempotent writes.
package grid

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exsheet-go/pkg/exsheet/address"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
)

// Extent is the current size of a sheet.
type Extent struct {
	MaxRow int
	MaxCol int
}

// Selection picks the window a read covers. It is either ByCoordinates or ByRange.
type Selection interface {
	selection()
}

// ByCoordinates selects a window by explicit 1-based coordinates.
type ByCoordinates struct {
	StartRow int
	StartCol int
	// EndRow is the last row. If nil, the window runs to the sheet's last row.
	EndRow *int
	// EndCol is the last column. If nil, the window runs to the sheet's last column.
	EndCol *int
}

// ByRange selects a window by range notation such as "B2:E5", "B2:" or "B2".
type ByRange struct {
	Ref string
}

func (ByCoordinates) selection() {}
func (ByRange) selection()       {}

// WholeSheet selects every cell up to the sheet extent.
func WholeSheet() Selection {
	return ByCoordinates{StartRow: 1, StartCol: 1}
}

// SelectionFromParams maps the flat parameter list used by the CLI and HTTP
// surfaces onto a Selection. End values of 0 mean "through the sheet extent".
//
// A non-empty rangeRef always wins: the coordinate parameters are ignored, and
// overridden reports whether any of them differed from their defaults
// (1, 1, 0, 0) so the caller can warn about it.
func SelectionFromParams(rangeRef string, startRow, startCol, endRow, endCol int) (sel Selection, overridden bool) {
	if strings.TrimSpace(rangeRef) != "" {
		overridden = startRow != 1 || startCol != 1 || endRow != 0 || endCol != 0
		return ByRange{Ref: rangeRef}, overridden
	}

	c := ByCoordinates{StartRow: startRow, StartCol: startCol}
	if endRow != 0 {
		c.EndRow = &endRow
	}
	if endCol != 0 {
		c.EndCol = &endCol
	}
	return c, false
}

// Resolve turns a Selection into a validated bound against the sheet extent.
// A nil Selection or an empty range string selects the whole sheet.
func Resolve(sel Selection, ext Extent) (models.Bound, error) {
	var (
		b   models.Bound
		err error
	)
	switch s := sel.(type) {
	case nil:
		b = resolveCoordinates(ByCoordinates{StartRow: 1, StartCol: 1}, ext)
	case ByCoordinates:
		b = resolveCoordinates(s, ext)
	case ByRange:
		if strings.TrimSpace(s.Ref) == "" {
			b = resolveCoordinates(ByCoordinates{StartRow: 1, StartCol: 1}, ext)
			break
		}
		b, err = resolveRange(s.Ref, ext)
	default:
		return models.Bound{}, fmt.Errorf("%w: unsupported selection %T", address.ErrInvalidRange, sel)
	}
	if err != nil {
		return models.Bound{}, err
	}
	if err := Validate(b); err != nil {
		return models.Bound{}, err
	}
	return b, nil
}

func resolveCoordinates(c ByCoordinates, ext Extent) models.Bound {
	b := models.Bound{
		StartRow: c.StartRow,
		StartCol: c.StartCol,
		EndRow:   ext.MaxRow,
		EndCol:   ext.MaxCol,
	}
	if c.EndRow != nil {
		b.EndRow = *c.EndRow
	}
	if c.EndCol != nil {
		b.EndCol = *c.EndCol
	}
	return b
}

// resolveRange applies the defaulting rules for omitted components: a missing
// start column or row is 1; a missing end component is the sheet extent when a
// ':' was written and the start component otherwise.
func resolveRange(ref string, ext Extent) (models.Bound, error) {
	r, err := address.ParseRange(ref)
	if err != nil {
		return models.Bound{}, err
	}

	b := models.Bound{StartRow: 1, StartCol: 1}
	if r.Start.HasCol {
		b.StartCol = r.Start.Col
	}
	if r.Start.HasRow {
		b.StartRow = r.Start.Row
	}

	switch {
	case r.End.HasCol:
		b.EndCol = r.End.Col
	case r.HasColon:
		b.EndCol = ext.MaxCol
	default:
		b.EndCol = b.StartCol
	}

	switch {
	case r.End.HasRow:
		b.EndRow = r.End.Row
	case r.HasColon:
		b.EndRow = ext.MaxRow
	default:
		b.EndRow = b.StartRow
	}
	return b, nil
}

// Validate checks the ordering invariants of a bound.
func Validate(b models.Bound) error {
	switch {
	case b.StartRow < 1:
		return fmt.Errorf("%w: startrow %d is smaller than 1", address.ErrInvalidRange, b.StartRow)
	case b.StartCol < 1:
		return fmt.Errorf("%w: startcolumn %d is smaller than 1", address.ErrInvalidRange, b.StartCol)
	case b.EndRow < b.StartRow:
		return fmt.Errorf("%w: endrow %d is smaller than startrow %d", address.ErrInvalidRange, b.EndRow, b.StartRow)
	case b.EndCol < b.StartCol:
		return fmt.Errorf("%w: endcolumn %d is smaller than startcolumn %d", address.ErrInvalidRange, b.EndCol, b.StartCol)
	case b.EndRow > address.MaxRow:
		return fmt.Errorf("%w: endrow %d is beyond the last row %d", address.ErrInvalidRange, b.EndRow, address.MaxRow)
	case b.EndCol > address.MaxColumn:
		return fmt.Errorf("%w: endcolumn %d is beyond the last column %d", address.ErrInvalidRange, b.EndCol, address.MaxColumn)
	}
	return nil
}
