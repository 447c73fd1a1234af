// Package storage is the workbook collaborator the read and write paths run against.
// The xlsx implementation is backed by excelize.
package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrFileNotFound indicates the workbook file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the named sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Sheet is a named grid of cells inside a workbook. Rows and columns are 1-based.
type Sheet interface {
	Name() string
	// Extent reports the last row and column holding a value; both are at least 1.
	Extent() (maxRow, maxCol int, err error)
	// Get returns nil, string, bool, int64 or float64.
	Get(row, col int) (interface{}, error)
	Set(row, col int, value interface{}) error
	InsertRows(at, count int) error
}

// Workbook is an open workbook file.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Sheet, error)
	ActiveSheet() (Sheet, error)
	CreateSheet(name string) (Sheet, error)
	DeleteSheet(name string) error
	Save(path string) error
	Close() error
}

// XLSXWorkbook is a Workbook over an excelize file.
type XLSXWorkbook struct {
	f *excelize.File
}

// Open opens an existing workbook.
func Open(path string) (*XLSXWorkbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &XLSXWorkbook{f: f}, nil
}

// OpenOrCreate opens the workbook at path, or returns a new in-memory workbook
// when the file does not exist. created reports which happened. Nothing is
// written to disk until Save.
func OpenOrCreate(path string) (wb *XLSXWorkbook, created bool, err error) {
	wb, err = Open(path)
	if errors.Is(err, ErrFileNotFound) {
		return &XLSXWorkbook{f: excelize.NewFile()}, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return wb, false, nil
}

// SheetNames returns sheet names in workbook order.
func (w *XLSXWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Sheet returns the sheet with the given name. Matching is case-insensitive, as in Excel.
func (w *XLSXWorkbook) Sheet(name string) (Sheet, error) {
	for _, n := range w.f.GetSheetList() {
		if strings.EqualFold(n, name) {
			return &XLSXSheet{f: w.f, name: n}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// ActiveSheet returns the sheet that is selected when the file is opened.
func (w *XLSXWorkbook) ActiveSheet() (Sheet, error) {
	name := w.f.GetSheetName(w.f.GetActiveSheetIndex())
	if name == "" {
		return nil, fmt.Errorf("%w: no active sheet", ErrSheetNotFound)
	}
	return &XLSXSheet{f: w.f, name: name}, nil
}

// CreateSheet adds a sheet and makes it active.
func (w *XLSXWorkbook) CreateSheet(name string) (Sheet, error) {
	idx, err := w.f.NewSheet(name)
	if err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	w.f.SetActiveSheet(idx)
	return &XLSXSheet{f: w.f, name: name}, nil
}

// DeleteSheet removes a sheet.
func (w *XLSXWorkbook) DeleteSheet(name string) error {
	if err := w.f.DeleteSheet(name); err != nil {
		return fmt.Errorf("delete sheet %q: %w", name, err)
	}
	return nil
}

// Save writes the workbook to path.
func (w *XLSXWorkbook) Save(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Close releases resources held by the workbook.
func (w *XLSXWorkbook) Close() error {
	return w.f.Close()
}

// XLSXSheet is a Sheet inside an XLSXWorkbook.
type XLSXSheet struct {
	f    *excelize.File
	name string
}

// Name returns the sheet name.
func (s *XLSXSheet) Name() string {
	return s.name
}

// Extent scans the sheet once and returns its last used row and column. An
// empty sheet is 1x1.
func (s *XLSXSheet) Extent() (int, int, error) {
	rows, err := s.f.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, 0, fmt.Errorf("read extent of %q: %w", s.name, err)
	}
	maxRow, maxCol := dataExtent(rows)
	return maxRow, maxCol, nil
}

// Get returns the decoded value of a cell. Unset cells are nil.
func (s *XLSXSheet) Get(row, col int) (interface{}, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	raw, err := s.f.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get %s!%s: %w", s.name, cell, err)
	}
	if raw == "" {
		return nil, nil
	}
	typ, err := s.f.GetCellType(s.name, cell)
	if err != nil {
		return nil, fmt.Errorf("get type of %s!%s: %w", s.name, cell, err)
	}
	return decodeValue(typ, raw), nil
}

// Set stores a scalar in a cell. nil clears the value.
func (s *XLSXSheet) Set(row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if value == nil {
		err = s.f.SetCellDefault(s.name, cell, "")
	} else {
		err = s.f.SetCellValue(s.name, cell, encodeValue(value))
	}
	if err != nil {
		return fmt.Errorf("set %s!%s: %w", s.name, cell, err)
	}
	return nil
}

// InsertRows inserts count blank rows before row at, shifting existing rows down.
func (s *XLSXSheet) InsertRows(at, count int) error {
	if count <= 0 {
		return nil
	}
	if err := s.f.InsertRows(s.name, at, count); err != nil {
		return fmt.Errorf("insert %d rows at %d in %q: %w", count, at, s.name, err)
	}
	return nil
}
