package grid

import (
	"fmt"

	"github.com/ukaji3/exsheet-go/pkg/exsheet/address"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
)

// Sheet is the mutable view of a sheet the writer needs.
type Sheet interface {
	CellGetter
	Set(row, col int, value interface{}) error
	InsertRows(at, count int) error
}

// WriteRequest describes one write.
type WriteRequest struct {
	// Anchor is the top-left cell of the written block.
	Anchor address.Cell
	// Payload is the data to write.
	Payload models.Payload
	// Insert requests blank rows at the anchor row before writing.
	Insert bool
	// FreshSheet marks a sheet created for this write. Its header cells are
	// written without comparing against stored content.
	FreshSheet bool
}

// WriteOutcome reports what a write did.
type WriteOutcome struct {
	// Changed is true when rows were inserted or any cell was set.
	Changed bool
	// Inserted is the number of rows inserted.
	Inserted int
	// CellsWritten is the number of cells set.
	CellsWritten int
}

// PlannedCell is one value the write would place.
type PlannedCell struct {
	Row    int
	Col    int
	Value  interface{}
	Header bool
}

// Plan is a write compiled against its anchor: every target cell in write order
// and the number of rows an insert would add.
type Plan struct {
	Anchor address.Cell
	// Header holds field names in column order for record payloads.
	Header      []string
	Cells       []PlannedCell
	InsertCount int
}

// NewPlan lays the payload out from anchor. Positional rows are written
// row-major. Records get a header row at the anchor row; each distinct key is
// assigned a column in first-occurrence order, and a record without a key
// leaves that cell alone.
func NewPlan(anchor address.Cell, p models.Payload) (*Plan, error) {
	if anchor.Row < 1 || anchor.Col < 1 {
		return nil, fmt.Errorf("%w: anchor row %d column %d", address.ErrInvalidAddress, anchor.Row, anchor.Col)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	plan := &Plan{Anchor: anchor}
	if p.Named() {
		plan.layoutRecords(p.Records)
	} else {
		plan.layoutRows(p.Rows)
	}

	for _, c := range plan.Cells {
		if c.Col > address.MaxColumn {
			return nil, fmt.Errorf("%w: write reaches column %d beyond %d", address.ErrInvalidAddress, c.Col, address.MaxColumn)
		}
		if c.Row > address.MaxRow {
			return nil, fmt.Errorf("%w: write reaches row %d beyond %d", address.ErrInvalidAddress, c.Row, address.MaxRow)
		}
	}
	return plan, nil
}

func (p *Plan) layoutRows(rows [][]interface{}) {
	for i, row := range rows {
		for j, v := range row {
			p.Cells = append(p.Cells, PlannedCell{
				Row:   p.Anchor.Row + i,
				Col:   p.Anchor.Col + j,
				Value: v,
			})
		}
	}
	p.InsertCount = len(rows)
}

func (p *Plan) layoutRecords(records []models.Record) {
	columns := make(map[string]int)
	for _, rec := range records {
		for _, f := range rec {
			if _, ok := columns[f.Key]; ok {
				continue
			}
			columns[f.Key] = p.Anchor.Col + len(p.Header)
			p.Header = append(p.Header, f.Key)
		}
	}

	for _, key := range p.Header {
		p.Cells = append(p.Cells, PlannedCell{
			Row:    p.Anchor.Row,
			Col:    columns[key],
			Value:  key,
			Header: true,
		})
	}
	for i, rec := range records {
		for _, f := range rec {
			p.Cells = append(p.Cells, PlannedCell{
				Row:   p.Anchor.Row + 1 + i,
				Col:   columns[f.Key],
				Value: f.Value,
			})
		}
	}
	p.InsertCount = len(records) + 1
}

// Diff reports whether any planned cell differs from what g holds now. It only
// reads, so it is the dry run that decides whether an insert may happen.
func (p *Plan) Diff(g CellGetter) (bool, error) {
	for _, c := range p.Cells {
		cur, err := g.Get(c.Row, c.Col)
		if err != nil {
			return false, err
		}
		if !Equal(cur, c.Value) {
			return true, nil
		}
	}
	return false, nil
}

// Apply runs the write in three ordered steps: diff, insert, mutate.
// With insert set, the diff runs against the sheet as it is and a plan that
// matches stored content returns without touching the sheet. Otherwise rows
// are inserted at the anchor and every planned cell whose value differs is
// set. With fresh set, header cells are set unconditionally.
func (p *Plan) Apply(s Sheet, insert, fresh bool) (WriteOutcome, error) {
	var out WriteOutcome

	if insert {
		differs, err := p.Diff(s)
		if err != nil {
			return out, fmt.Errorf("diff: %w", err)
		}
		if !differs {
			return out, nil
		}
		if p.InsertCount > 0 {
			if err := s.InsertRows(p.Anchor.Row, p.InsertCount); err != nil {
				return out, err
			}
			out.Inserted = p.InsertCount
			out.Changed = true
		}
	}

	for _, c := range p.Cells {
		if !(fresh && c.Header) {
			cur, err := s.Get(c.Row, c.Col)
			if err != nil {
				return out, err
			}
			if Equal(cur, c.Value) {
				continue
			}
		}
		if err := s.Set(c.Row, c.Col, c.Value); err != nil {
			return out, err
		}
		out.CellsWritten++
		out.Changed = true
	}
	return out, nil
}

// Write plans req and applies it to s.
func Write(s Sheet, req WriteRequest) (WriteOutcome, error) {
	plan, err := NewPlan(req.Anchor, req.Payload)
	if err != nil {
		return WriteOutcome{}, err
	}
	return plan.Apply(s, req.Insert, req.FreshSheet)
}
