// Package models defines data structures shared by the read and write paths.
package models

import (
	"github.com/ukaji3/exsheet-go/pkg/exsheet/address"
)

// Bound represents the validated rectangle an operation iterates over.
type Bound struct {
	// StartRow is the first row (1-based).
	StartRow int `json:"startrow"`
	// StartCol is the first column (1-based).
	StartCol int `json:"startcolumn"`
	// EndRow is the last row (1-based, inclusive).
	EndRow int `json:"endrow"`
	// EndCol is the last column (1-based, inclusive).
	EndCol int `json:"endcolumn"`
}

// Rows returns the number of rows covered by the bound.
func (b Bound) Rows() int {
	return b.EndRow - b.StartRow + 1
}

// Cols returns the number of columns covered by the bound.
func (b Bound) Cols() int {
	return b.EndCol - b.StartCol + 1
}

// String renders the bound in range notation, e.g. "B2:E5".
func (b Bound) String() string {
	start := address.Cell{Row: b.StartRow, Col: b.StartCol}
	end := address.Cell{Row: b.EndRow, Col: b.EndCol}
	return start.String() + ":" + end.String()
}
