package address

import (
	"fmt"
	"strconv"
	"strings"
)

// Part is one side of a range string. Components that were not written are
// reported through HasCol / HasRow rather than a zero value.
type Part struct {
	Col    int
	Row    int
	HasCol bool
	HasRow bool
}

// RangeRef is a parsed range string before any sheet extent is applied.
type RangeRef struct {
	Start Part
	End   Part
	// HasColon is false for the single-cell shorthand ("B2").
	HasColon bool
}

// ParseRange parses range notation of the form letters? digits? (':' letters? digits?)?.
// Examples: "B2:E5", "B2:", ":E5", "B:D", "2:4", "B2". Absolute markers ($) are ignored.
func ParseRange(ref string) (RangeRef, error) {
	s := strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return RangeRef{}, fmt.Errorf("%w: %q has more than one ':'", ErrInvalidRange, ref)
	}

	start, err := parsePart(parts[0])
	if err != nil {
		return RangeRef{}, fmt.Errorf("range %q: %w", ref, err)
	}
	out := RangeRef{Start: start}
	if len(parts) == 2 {
		out.HasColon = true
		end, err := parsePart(parts[1])
		if err != nil {
			return RangeRef{}, fmt.Errorf("range %q: %w", ref, err)
		}
		out.End = end
	}
	return out, nil
}

// parsePart splits "AB12" into its letter and digit components. Either may be empty.
func parsePart(s string) (Part, error) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	letters, digits := s[:i], s[i:]
	for j := 0; j < len(digits); j++ {
		if !isDigit(digits[j]) {
			return Part{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidRange, digits[j:], s)
		}
	}

	var p Part
	if letters != "" {
		col, err := ColumnToOrdinal(letters)
		if err != nil {
			return Part{}, err
		}
		p.Col, p.HasCol = col, true
	}
	if digits != "" {
		row, err := strconv.Atoi(digits)
		if err != nil {
			return Part{}, fmt.Errorf("%w: row %q: %v", ErrInvalidRange, digits, err)
		}
		p.Row, p.HasRow = row, true
	}
	return p, nil
}
