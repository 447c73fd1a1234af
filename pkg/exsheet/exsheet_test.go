package exsheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exsheet-go/internal/testutil/testlog"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/grid"
	"github.com/ukaji3/exsheet-go/pkg/exsheet/models"
)

func mustPayload(t *testing.T, js string) models.Payload {
	t.Helper()
	p, err := models.DecodePayload([]byte(js))
	require.NoError(t, err)
	return p
}

func writeFixture(t *testing.T, fill func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	fill(f)
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")

	res, err := Write(path, WriteOptions{Data: mustPayload(t, `[[1, 2], [3, 4]]`)})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Sheet1", res.Sheet)

	out, err := Read(path, ReadOptions{Selection: grid.ByRange{Ref: "A1:B2"}})
	require.NoError(t, err)
	assert.Equal(t, models.Bound{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: 2}, out.Bound)
	assert.Equal(t, [][]interface{}{{int64(1), int64(2)}, {int64(3), int64(4)}}, out.Rows)
}

func TestWriteTwiceIsNoop(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	opts := WriteOptions{
		Sheet:    "Data",
		StartRow: 2,
		StartCol: 2,
		Data:     mustPayload(t, `[["a", 1.5, true], ["b", 2, null]]`),
		Insert:   true,
	}

	first, err := Write(path, opts)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := Write(path, opts)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Zero(t, second.Inserted)
	assert.Zero(t, second.Cells)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "file must not be rewritten")
}

func TestWriteRecordsInsertScenario(t *testing.T) {
	testlog.Start(t)
	path := writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "title")
		f.SetCellValue("Sheet1", "A2", "old")
		f.SetCellValue("Sheet1", "B2", "row")
	})
	opts := WriteOptions{
		StartRow: 2,
		StartCol: 1,
		Data:     mustPayload(t, `[{"a": 1, "b": 2}, {"a": 3, "b": 4}]`),
		Insert:   true,
	}

	res, err := Write(path, opts)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 3, res.Inserted)

	out, err := Read(path, ReadOptions{Selection: grid.ByRange{Ref: "A1:B5"}})
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{
		{"title", nil},
		{"a", "b"},
		{int64(1), int64(2)},
		{int64(3), int64(4)},
		{"old", "row"},
	}, out.Rows)

	again, err := Write(path, opts)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Zero(t, again.Inserted)

	out, err = Read(path, DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, out.EndRow, "repeat write must not insert rows")
}

func TestReadHeaderMode(t *testing.T) {
	testlog.Start(t)
	path := writeFixture(t, func(f *excelize.File) {
		f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Age", "Name"})
		f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Ann", 30, "A."})
		f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Bob", 41, "B."})
	})

	out, err := Read(path, ReadOptions{Header: true})
	require.NoError(t, err)

	records, ok := out.Rows.([]models.Record)
	require.True(t, ok)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Name", "Age", "Name_2"}, records[0].Keys())
	assert.Equal(t, models.Record{
		{Key: "Name", Value: "Bob"},
		{Key: "Age", Value: int64(41)},
		{Key: "Name_2", Value: "B."},
	}, records[1])
}

func TestReadRangeOverridesCoordinates(t *testing.T) {
	testlog.Start(t)
	path := writeFixture(t, func(f *excelize.File) {
		f.SetSheetRow("Sheet1", "A1", &[]interface{}{1, 2, 3})
		f.SetSheetRow("Sheet1", "A2", &[]interface{}{4, 5, 6})
	})

	sel, overridden := grid.SelectionFromParams("C2", 1, 1, 2, 2)
	require.True(t, overridden)

	out, err := Read(path, ReadOptions{Selection: sel})
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{int64(6)}}, out.Rows)
}

func TestReadDefinedName(t *testing.T) {
	testlog.Start(t)
	path := writeFixture(t, func(f *excelize.File) {
		f.SetSheetRow("Sheet1", "A1", &[]interface{}{"x", "y"})
		f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, 2})
		require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
			Name:     "_xlnm.Print_Area",
			RefersTo: "Sheet1!$B$1:$B$2",
			Scope:    "Sheet1",
		}))
	})

	out, err := Read(path, ReadOptions{Selection: grid.ByRange{Ref: "Print_Area"}})
	require.NoError(t, err)
	assert.Equal(t, "B1:B2", out.Bound.String())
	assert.Equal(t, [][]interface{}{{"y"}, {int64(2)}}, out.Rows)
}

func TestReadErrors(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.xlsx"), DefaultReadOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	path := writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", 1)
	})
	_, err = Read(path, ReadOptions{Sheet: "Nope"})
	assert.ErrorIs(t, err, ErrSheetNotFound)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "read", opErr.Op)
	assert.Equal(t, "Nope", opErr.Sheet)

	_, err = Read(path, ReadOptions{Selection: grid.ByRange{Ref: "C3:A1"}})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestReadEmptySheet(t *testing.T) {
	testlog.Start(t)
	path := writeFixture(t, func(f *excelize.File) {})

	out, err := Read(path, DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{nil}}, out.Rows)
}

func TestWriteCreatesNamedSheetInNewFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "new.xlsx")

	res, err := Write(path, WriteOptions{
		Sheet: "People",
		Data:  mustPayload(t, `[{"first": "Taro", "last": "Yamada"}]`),
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "People", res.Sheet)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"People"}, f.GetSheetList())

	out, err := Read(path, ReadOptions{Sheet: "People", Header: true})
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{{Key: "first", Value: "Taro"}, {Key: "last", Value: "Yamada"}}}, out.Rows)
}

func TestWriteAddsSheetToExistingFile(t *testing.T) {
	testlog.Start(t)
	path := writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "keep")
	})

	res, err := Write(path, WriteOptions{Sheet: "Extra", Data: mustPayload(t, `[]`)})
	require.NoError(t, err)
	assert.True(t, res.Changed, "creating a sheet is a change")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1", "Extra"}, f.GetSheetList())
}

func TestWriteRejectsBadPayloadBeforeTouchingFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "never.xlsx")

	_, err := Write(path, WriteOptions{
		Data: models.RowsPayload([][]interface{}{{1}, nil}),
	})
	assert.ErrorIs(t, err, ErrEmptyPayloadRow)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteOverlongTextRepeatedWithInsert(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "long.xlsx")
	opts := WriteOptions{
		Data:   models.RowsPayload([][]interface{}{{strings.Repeat("x", 40000)}}),
		Insert: true,
	}

	for i := 0; i < 3; i++ {
		_, err := Write(path, opts)
		assert.ErrorIs(t, err, ErrPayloadShape)
	}
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	opts.Data = models.RowsPayload([][]interface{}{{strings.Repeat("x", models.MaxCellChars)}})
	first, err := Write(path, opts)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	for i := 0; i < 2; i++ {
		again, err := Write(path, opts)
		require.NoError(t, err)
		assert.False(t, again.Changed)
		assert.Zero(t, again.Inserted)
	}

	out, err := Read(path, DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, out.EndRow)
}
