package grid

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/exsheet-go/pkg/exsheet/address"
)

// DedupeHeader returns a copy of names in which every repeat is renamed by
// appending "_2", "_3", ... using the first suffix not already taken.
// ["Name", "Age", "Name"] becomes ["Name", "Age", "Name_2"].
func DedupeHeader(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]struct{}, len(names))
	for i, name := range names {
		key := name
		if _, dup := used[key]; dup {
			for n := 2; ; n++ {
				key = name + "_" + strconv.Itoa(n)
				if _, taken := used[key]; !taken {
					break
				}
			}
		}
		used[key] = struct{}{}
		out[i] = key
	}
	return out
}

// headerName turns a header cell value into a field name. Blank header cells
// are named after their column letters.
func headerName(v interface{}, col int) string {
	switch x := v.(type) {
	case nil:
	case string:
		if x != "" {
			return x
		}
	default:
		return fmt.Sprint(x)
	}
	letters, err := address.OrdinalToLetters(col)
	if err != nil {
		return strconv.Itoa(col)
	}
	return letters
}
