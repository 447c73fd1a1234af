package exsheet

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/exsheet-go/pkg/exsheet/address"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/grid"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/storage"
)

// Write places opts.Data into a sheet, creating the file and the sheet when
// absent. The file is saved only when something changed.
func Write(path string, opts WriteOptions) (*models.WriteResult, error) {
	if err := opts.Data.Validate(); err != nil {
		return nil, newOperationError("write", path, opts.Sheet, err)
	}

	wb, created, err := storage.OpenOrCreate(path)
	if err != nil {
		return nil, newOperationError("write", path, opts.Sheet, err)
	}
	defer wb.Close()

	sheet, fresh, err := writeTarget(wb, opts.Sheet, created)
	if err != nil {
		return nil, newOperationError("write", path, opts.Sheet, err)
	}

	outcome, err := grid.Write(sheet, grid.WriteRequest{
		Anchor:     address.Cell{Row: opts.anchorRow(), Col: opts.anchorCol()},
		Payload:    opts.Data,
		Insert:     opts.Insert,
		FreshSheet: fresh,
	})
	if err != nil {
		return nil, newOperationError("write", path, sheet.Name(), err)
	}

	result := &models.WriteResult{
		Path:     path,
		Sheet:    sheet.Name(),
		Changed:  created || fresh || outcome.Changed,
		Inserted: outcome.Inserted,
		Cells:    outcome.CellsWritten,
	}
	if result.Changed {
		if err := wb.Save(path); err != nil {
			return nil, newOperationError("write", path, sheet.Name(), err)
		}
	}

	log.Debug().
		Str("path", path).
		Str("sheet", sheet.Name()).
		Bool("created", created).
		Bool("fresh_sheet", fresh).
		Bool("changed", result.Changed).
		Int("inserted", result.Inserted).
		Int("cells", result.Cells).
		Msg("write")
	return result, nil
}

// writeTarget returns the sheet to write and whether it was created here. In a
// workbook that did not exist before, the default sheet is dropped once a named
// sheet replaces it.
func writeTarget(wb *storage.XLSXWorkbook, name string, created bool) (storage.Sheet, bool, error) {
	if name == "" {
		sheet, err := wb.ActiveSheet()
		return sheet, created, err
	}

	sheet, err := wb.Sheet(name)
	if err == nil {
		return sheet, false, nil
	}
	if !errors.Is(err, storage.ErrSheetNotFound) {
		return nil, false, err
	}

	defaults := wb.SheetNames()
	sheet, err = wb.CreateSheet(name)
	if err != nil {
		return nil, false, err
	}
	if created {
		for _, d := range defaults {
			if err := wb.DeleteSheet(d); err != nil {
				return nil, false, err
			}
		}
	}
	return sheet, true, nil
}
