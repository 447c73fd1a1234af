package exsheet

import (
	"fmt"

	"github.com/ukaji3/exsheet-go/pkg/exsheet/address"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/storage"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = storage.ErrFileNotFound

// ErrSheetNotFound indicates the named sheet is absent from an existing workbook.
var ErrSheetNotFound = storage.ErrSheetNotFound

// ErrInvalidRange indicates the resolved bound violates its ordering invariants.
var ErrInvalidRange = address.ErrInvalidRange

// ErrInvalidAddress indicates a malformed column-letter token or anchor.
var ErrInvalidAddress = address.ErrInvalidAddress

// ErrEmptyPayloadRow indicates a null row in the write payload.
var ErrEmptyPayloadRow = models.ErrEmptyPayloadRow

// ErrPayloadShape indicates mixed row shapes or non-scalar values in the write payload.
var ErrPayloadShape = models.ErrPayloadShape

// OperationError represents a failed read or write.
type OperationError struct {
	Op    string // "read" or "write"
	Path  string
	Sheet string
	Err   error
}

func (e *OperationError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s (sheet %q): %v", e.Op, e.Path, e.Sheet, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// newOperationError creates a new OperationError.
func newOperationError(op, path, sheet string, err error) *OperationError {
	return &OperationError{
		Op:    op,
		Path:  path,
		Sheet: sheet,
		Err:   err,
	}
}
