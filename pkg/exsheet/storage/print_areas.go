package storage

import (
	"strings"
)

// builtinPrefix marks names Excel reserves, such as _xlnm.Print_Area.
const builtinPrefix = "_xlnm."

// DefinedRange looks up a defined name visible from sheet and returns the first
// area it refers to on that sheet, with absolute markers removed (e.g. "A1:D10").
// Built-in names can be given without their prefix, so "Print_Area" finds the
// sheet's print area.
func (w *XLSXWorkbook) DefinedRange(name, sheet string) (string, bool) {
	for _, dn := range w.f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, name) && !strings.EqualFold(dn.Name, builtinPrefix+name) {
			continue
		}
		if dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") && !strings.EqualFold(dn.Scope, sheet) {
			continue
		}
		if ref, ok := areaOnSheet(dn.RefersTo, sheet); ok {
			return ref, true
		}
	}
	return "", false
}

// areaOnSheet parses a reference string and returns the first area on sheet.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func areaOnSheet(ref, sheet string) (string, bool) {
	for _, part := range strings.Split(strings.TrimPrefix(ref, "="), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Split by ! to separate sheet name and range
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		owner := strings.Trim(part[:idx], "'")
		if !strings.EqualFold(owner, sheet) {
			continue
		}

		area := strings.ReplaceAll(part[idx+1:], "$", "")
		if area != "" {
			return area, true
		}
	}
	return "", false
}
