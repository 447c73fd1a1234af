package models

// ReadResult is the outcome of a read.
type ReadResult struct {
	// Path is the workbook file that was read.
	Path string `json:"path"`
	// Sheet is the name of the sheet that was read.
	Sheet string `json:"sheet"`
	// Bound is the resolved window, embedded so its fields sit at the top level.
	Bound
	// Rows holds [][]interface{} in positional mode or []Record in header mode.
	Rows interface{} `json:"rows"`
}

// WriteResult is the outcome of a write.
type WriteResult struct {
	// Path is the workbook file that was written.
	Path string `json:"path"`
	// Sheet is the name of the sheet that was written.
	Sheet string `json:"sheet"`
	// Changed is true when any cell, sheet or file was created or modified.
	Changed bool `json:"changed"`
	// Inserted is the number of blank rows inserted before writing.
	Inserted int `json:"inserted"`
	// Cells is the number of cells whose value was set.
	Cells int `json:"cells"`
}
