package grid

import "fmt"

type cellKey struct{ row, col int }

// memSheet is an in-memory Sheet that records mutations.
type memSheet struct {
	cells   map[cellKey]interface{}
	sets    int
	inserts [][2]int
	failGet bool
}

func newMemSheet(rows ...[]interface{}) *memSheet {
	s := &memSheet{cells: make(map[cellKey]interface{})}
	for r, row := range rows {
		for c, v := range row {
			if v != nil {
				s.cells[cellKey{r + 1, c + 1}] = v
			}
		}
	}
	return s
}

func (s *memSheet) Get(row, col int) (interface{}, error) {
	if s.failGet {
		return nil, fmt.Errorf("get %d,%d: broken", row, col)
	}
	return s.cells[cellKey{row, col}], nil
}

func (s *memSheet) Set(row, col int, value interface{}) error {
	s.sets++
	if value == nil {
		delete(s.cells, cellKey{row, col})
		return nil
	}
	s.cells[cellKey{row, col}] = value
	return nil
}

func (s *memSheet) InsertRows(at, count int) error {
	s.inserts = append(s.inserts, [2]int{at, count})
	shifted := make(map[cellKey]interface{}, len(s.cells))
	for k, v := range s.cells {
		if k.row >= at {
			k.row += count
		}
		shifted[k] = v
	}
	s.cells = shifted
	return nil
}

func (s *memSheet) extent() Extent {
	ext := Extent{MaxRow: 1, MaxCol: 1}
	for k := range s.cells {
		if k.row > ext.MaxRow {
			ext.MaxRow = k.row
		}
		if k.col > ext.MaxCol {
			ext.MaxCol = k.col
		}
	}
	return ext
}

// getterOnly hides the mutating methods of a memSheet.
type getterOnly struct{ s *memSheet }

func (g getterOnly) Get(row, col int) (interface{}, error) { return g.s.Get(row, col) }
