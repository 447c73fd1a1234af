package storage

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// decodeValue turns a raw cell value into a scalar according to the cell type.
func decodeValue(typ excelize.CellType, raw string) interface{} {
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "TRUE")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return raw
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// encodeValue converts values excelize does not know how to store.
func encodeValue(v interface{}) interface{} {
	if n, ok := v.(json.Number); ok {
		return parseValue(n.String())
	}
	return v
}
