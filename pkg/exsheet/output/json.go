// Package output serializes operation results for the CLI and HTTP surfaces.
package output

import (
	"bytes"
	"encoding/json"
)

// Failure is the body emitted when an operation fails.
type Failure struct {
	Failed bool   `json:"failed"`
	Msg    string `json:"msg"`
}

// NewFailure wraps an error as a Failure.
func NewFailure(err error) Failure {
	return Failure{Failed: true, Msg: err.Error()}
}

// ToJSON serializes v. HTML characters are left unescaped so cell text stays readable.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FailureToJSON serializes err as a Failure.
func FailureToJSON(err error, pretty bool) ([]byte, error) {
	return ToJSON(NewFailure(err), pretty)
}
