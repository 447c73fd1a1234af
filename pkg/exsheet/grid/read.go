package grid

import (
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
)

// CellGetter reads single cells. Unset cells return nil without an error.
type CellGetter interface {
	Get(row, col int) (interface{}, error)
}

// ReadRows returns one row per sheet row in [StartRow, EndRow], each holding one
// value per column in [StartCol, EndCol].
func ReadRows(g CellGetter, b models.Bound) ([][]interface{}, error) {
	rows := make([][]interface{}, 0, b.Rows())
	for r := b.StartRow; r <= b.EndRow; r++ {
		row, err := readRow(g, r, b.StartCol, b.EndCol)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadHeader returns the deduplicated field names found on the bound's first row.
func ReadHeader(g CellGetter, b models.Bound) ([]string, error) {
	cells, err := readRow(g, b.StartRow, b.StartCol, b.EndCol)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cells))
	for i, v := range cells {
		names[i] = headerName(v, b.StartCol+i)
	}
	return DedupeHeader(names), nil
}

// ReadRecords treats the bound's first row as a header and returns one record
// per row in (StartRow, EndRow]. The end row is included.
func ReadRecords(g CellGetter, b models.Bound) ([]models.Record, error) {
	header, err := ReadHeader(g, b)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, b.Rows()-1)
	for r := b.StartRow + 1; r <= b.EndRow; r++ {
		cells, err := readRow(g, r, b.StartCol, b.EndCol)
		if err != nil {
			return nil, err
		}
		rec := make(models.Record, len(header))
		for i, key := range header {
			rec[i] = models.Field{Key: key, Value: cells[i]}
		}
		records = append(records, rec)
	}
	return records, nil
}

func readRow(g CellGetter, row, startCol, endCol int) ([]interface{}, error) {
	out := make([]interface{}, 0, endCol-startCol+1)
	for c := startCol; c <= endCol; c++ {
		v, err := g.Get(row, c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
