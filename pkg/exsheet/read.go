package exsheet

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/exsheet-go/pkg/exsheet/grid"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/storage"
)

// Read reads a window of cells from a sheet of an existing workbook.
func Read(path string, opts ReadOptions) (*models.ReadResult, error) {
	wb, err := storage.Open(path)
	if err != nil {
		return nil, newOperationError("read", path, opts.Sheet, err)
	}
	defer wb.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		names := wb.SheetNames()
		if len(names) == 0 {
			return nil, newOperationError("read", path, "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound))
		}
		sheetName = names[0]
	}

	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return nil, newOperationError("read", path, sheetName, err)
	}

	ext, err := extentOf(sheet)
	if err != nil {
		return nil, newOperationError("read", path, sheet.Name(), err)
	}

	sel := opts.Selection
	if r, ok := sel.(grid.ByRange); ok {
		name := strings.TrimSpace(r.Ref)
		if ref, found := wb.DefinedRange(name, sheet.Name()); found {
			log.Debug().Str("name", name).Str("range", ref).Msg("resolved defined name")
			sel = grid.ByRange{Ref: ref}
		}
	}

	bound, err := grid.Resolve(sel, ext)
	if err != nil {
		return nil, newOperationError("read", path, sheet.Name(), err)
	}

	result := &models.ReadResult{
		Path:  path,
		Sheet: sheet.Name(),
		Bound: bound,
	}
	if opts.Header {
		records, err := grid.ReadRecords(sheet, bound)
		if err != nil {
			return nil, newOperationError("read", path, sheet.Name(), err)
		}
		result.Rows = records
	} else {
		rows, err := grid.ReadRows(sheet, bound)
		if err != nil {
			return nil, newOperationError("read", path, sheet.Name(), err)
		}
		result.Rows = rows
	}

	log.Debug().
		Str("path", path).
		Str("sheet", sheet.Name()).
		Str("bound", bound.String()).
		Bool("header", opts.Header).
		Msg("read")
	return result, nil
}

func extentOf(sheet storage.Sheet) (grid.Extent, error) {
	maxRow, maxCol, err := sheet.Extent()
	if err != nil {
		return grid.Extent{}, err
	}
	return grid.Extent{MaxRow: maxRow, MaxCol: maxCol}, nil
}
