// Package address converts between column letters, cell names and range strings.
package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidAddress indicates a malformed column-letter token or an out of range ordinal.
var ErrInvalidAddress = errors.New("invalid address")

// ErrInvalidRange indicates a range string or bound that cannot describe a rectangle.
var ErrInvalidRange = errors.New("invalid range")

// MaxColumn is the last column an xlsx sheet can address (XFD).
const MaxColumn = excelize.MaxColumns

// MaxRow is the last row an xlsx sheet can address.
const MaxRow = excelize.TotalRows

// Cell is a 1-based cell coordinate.
type Cell struct {
	Row int
	Col int
}

// String returns the cell name, e.g. "B2". Invalid cells render as "R<row>C<col>".
func (c Cell) String() string {
	name, err := FormatCell(c.Row, c.Col)
	if err != nil {
		return fmt.Sprintf("R%dC%d", c.Row, c.Col)
	}
	return name
}

// ColumnToOrdinal maps column letters (A=1 ... Z=26, AA=27 ...) to a 1-based ordinal.
// Letters are matched case-insensitively.
func ColumnToOrdinal(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column", ErrInvalidAddress)
	}
	for i := 0; i < len(letters); i++ {
		if !isLetter(letters[i]) {
			return 0, fmt.Errorf("%w: column %q is not alphabetic", ErrInvalidAddress, letters)
		}
	}
	// Longer tokens would overflow before excelize gets to check the limit.
	if len(letters) > 3 {
		return 0, fmt.Errorf("%w: column %q exceeds %d", ErrInvalidAddress, letters, MaxColumn)
	}
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %v", ErrInvalidAddress, letters, err)
	}
	return n, nil
}

// OrdinalToLetters is the inverse of ColumnToOrdinal. Output is uppercase.
func OrdinalToLetters(n int) (string, error) {
	if n < 1 || n > MaxColumn {
		return "", fmt.Errorf("%w: column ordinal %d out of range [1, %d]", ErrInvalidAddress, n, MaxColumn)
	}
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return name, nil
}

// FormatCell returns "<letters><row>" for a 1-based coordinate.
func FormatCell(row, col int) (string, error) {
	if row < 1 {
		return "", fmt.Errorf("%w: row %d is smaller than 1", ErrInvalidAddress, row)
	}
	letters, err := OrdinalToLetters(col)
	if err != nil {
		return "", err
	}
	return letters + strconv.Itoa(row), nil
}

// ParseCell parses a single cell name such as "C3" or "$C$3".
func ParseCell(ref string) (Cell, error) {
	p, err := parsePart(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""))
	if err != nil {
		if errors.Is(err, ErrInvalidAddress) {
			return Cell{}, err
		}
		return Cell{}, fmt.Errorf("%w: cell %q", ErrInvalidAddress, ref)
	}
	if !p.HasCol || !p.HasRow {
		return Cell{}, fmt.Errorf("%w: cell %q needs both column and row", ErrInvalidAddress, ref)
	}
	if p.Row < 1 {
		return Cell{}, fmt.Errorf("%w: row %d is smaller than 1", ErrInvalidAddress, p.Row)
	}
	return Cell{Row: p.Row, Col: p.Col}, nil
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
