package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/xuri/excelize/v2"
)

// MaxCellChars is the longest text a cell holds, counted in UTF-16 units.
// Longer strings would be cut when stored.
const MaxCellChars = excelize.TotalCellChars

// ErrEmptyPayloadRow indicates a null entry in the data list.
var ErrEmptyPayloadRow = errors.New("empty payload row")

// ErrPayloadShape indicates rows of mixed shape or a cell value that is not a scalar.
var ErrPayloadShape = errors.New("payload shape mismatch")

// Payload is the data of one write. Exactly one of Rows (positional) or Records
// (named) is used; the two shapes are never mixed.
type Payload struct {
	Rows    [][]interface{}
	Records []Record
}

// RowsPayload returns a positional payload.
func RowsPayload(rows [][]interface{}) Payload {
	return Payload{Rows: rows}
}

// RecordsPayload returns a named payload.
func RecordsPayload(records []Record) Payload {
	return Payload{Records: records}
}

// Named reports whether the payload is a list of records.
func (p Payload) Named() bool {
	return p.Records != nil
}

// Len returns the number of payload rows, excluding any header.
func (p Payload) Len() int {
	if p.Named() {
		return len(p.Records)
	}
	return len(p.Rows)
}

// Validate checks that exactly one shape is used and every value is a scalar
// that fits in a cell.
func (p Payload) Validate() error {
	if p.Rows != nil && p.Records != nil {
		return fmt.Errorf("%w: both positional rows and records set", ErrPayloadShape)
	}
	for i, row := range p.Rows {
		if row == nil {
			return fmt.Errorf("row %d: %w", i, ErrEmptyPayloadRow)
		}
		for j, v := range row {
			if err := checkCellValue(v); err != nil {
				return fmt.Errorf("row %d column %d: %w", i, j, err)
			}
		}
	}
	for i, rec := range p.Records {
		if rec == nil {
			return fmt.Errorf("row %d: %w", i, ErrEmptyPayloadRow)
		}
		for _, f := range rec {
			if err := checkCellValue(f.Key); err != nil {
				return fmt.Errorf("row %d field name: %w", i, err)
			}
			if err := checkCellValue(f.Value); err != nil {
				return fmt.Errorf("row %d field %q: %w", i, f.Key, err)
			}
		}
	}
	return nil
}

// MarshalJSON encodes the payload as a JSON list of lists or list of objects.
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.Named() {
		return json.Marshal(p.Records)
	}
	if p.Rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Rows)
}

// UnmarshalJSON decodes a JSON list whose first element decides the shape.
func (p *Payload) UnmarshalJSON(data []byte) error {
	decoded, err := DecodePayload(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// DecodePayload decodes a list of lists or a list of objects. Numbers decode to
// int64 when integral and float64 otherwise. The whole list is checked before
// anything is returned.
func DecodePayload(data []byte) (Payload, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return Payload{}, fmt.Errorf("%w: data must be a list: %v", ErrPayloadShape, err)
	}
	if len(items) == 0 {
		return Payload{}, nil
	}

	named := false
	switch firstByte(items[0]) {
	case '[':
	case '{':
		named = true
	case 'n':
		return Payload{}, fmt.Errorf("row 0: %w", ErrEmptyPayloadRow)
	default:
		return Payload{}, fmt.Errorf("row 0: %w: expected a list or an object", ErrPayloadShape)
	}

	if named {
		records := make([]Record, 0, len(items))
		for i, raw := range items {
			if err := checkRowKind(raw, '{', i); err != nil {
				return Payload{}, err
			}
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return Payload{}, fmt.Errorf("row %d: %w", i, err)
			}
			records = append(records, rec)
		}
		return RecordsPayload(records), nil
	}

	rows := make([][]interface{}, 0, len(items))
	for i, raw := range items {
		if err := checkRowKind(raw, '[', i); err != nil {
			return Payload{}, err
		}
		var cells []json.RawMessage
		if err := json.Unmarshal(raw, &cells); err != nil {
			return Payload{}, fmt.Errorf("row %d: %w", i, err)
		}
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			v, err := decodeScalar(c)
			if err != nil {
				return Payload{}, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return RowsPayload(rows), nil
}

func checkRowKind(raw json.RawMessage, want byte, i int) error {
	switch got := firstByte(raw); got {
	case want:
		return nil
	case 'n':
		return fmt.Errorf("row %d: %w", i, ErrEmptyPayloadRow)
	default:
		return fmt.Errorf("row %d: %w: rows must all be lists or all be objects", i, ErrPayloadShape)
	}
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// decodeScalar decodes one JSON value and rejects lists and objects.
func decodeScalar(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil, string, bool:
		return x, nil
	case json.Number:
		return normalizeNumber(x), nil
	default:
		return nil, fmt.Errorf("%w: %T is not a scalar", ErrPayloadShape, v)
	}
}

func normalizeNumber(n json.Number) interface{} {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func checkCellValue(v interface{}) error {
	if !IsScalar(v) {
		return fmt.Errorf("%w: %T is not a scalar", ErrPayloadShape, v)
	}
	if str, ok := v.(string); ok {
		if n := cellChars(str); n > MaxCellChars {
			return fmt.Errorf("%w: text of %d characters exceeds the cell limit of %d", ErrPayloadShape, n, MaxCellChars)
		}
	}
	return nil
}

// cellChars counts UTF-16 units, the unit the cell limit is defined in.
func cellChars(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// IsScalar reports whether v can be stored in a single cell.
func IsScalar(v interface{}) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}
