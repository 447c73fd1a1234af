package storage

// dataExtent finds the last row and column holding a non-empty value.
// An empty sheet still reports 1x1, matching how spreadsheet tools size a blank sheet.
func dataExtent(rows [][]string) (maxRow, maxCol int) {
	maxRow, maxCol = 1, 1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if rowIdx+1 > maxRow {
				maxRow = rowIdx + 1
			}
			if colIdx+1 > maxCol {
				maxCol = colIdx + 1
			}
		}
	}

	return
}
