package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestEditorReadWriteCells(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "catalog.xlsx")
	writeWorkbook(t, in, [][]interface{}{
		{"Артикул", "Название"},
		{"A-1", "aviator"},
	})

	ed, err := OpenFile(in)
	require.NoError(t, err)
	defer ed.Close()

	sheet := ed.ActiveSheet()
	assert.Equal(t, "Sheet1", sheet)

	headers, err := ed.GetColumnHeaders(sheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Артикул", "Название"}, headers)

	v, err := ed.GetCell(sheet, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "aviator", v)

	require.NoError(t, ed.SetCell(sheet, 2, 2, "wayfarer"))
	out := filepath.Join(dir, "out.xlsx")
	require.NoError(t, ed.SaveAs(out))
	assert.Equal(t, out, ed.Path())

	reopened, err := OpenFile(out)
	require.NoError(t, err)
	defer reopened.Close()
	rows, err := reopened.GetAllRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Артикул", "Название"}, {"A-1", "wayfarer"}}, rows)
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
}

func TestGetColumnHeadersEmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	writeWorkbook(t, path, nil)

	ed, err := OpenFile(path)
	require.NoError(t, err)
	defer ed.Close()

	headers, err := ed.GetColumnHeaders(ed.ActiveSheet())
	require.NoError(t, err)
	assert.Empty(t, headers)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "/data/catalog_seo.xlsx", OutputPath("/data/catalog.xlsx"))
	assert.Equal(t, "price.list_seo.XLSX", OutputPath("price.list.XLSX"))
	assert.Equal(t, "noext_seo", OutputPath("noext"))
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	for _, name := range []string{"b.xlsx", "a.XLSX", "a_seo.xlsx", "~$b.xlsx", "notes.txt", "sub/c.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	files, err := FindWorkbooks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.XLSX"),
		filepath.Join(dir, "b.xlsx"),
		filepath.Join(dir, "sub", "c.xlsx"),
	}, files)
}

func TestFindWorkbooksMissingDirectory(t *testing.T) {
	_, err := FindWorkbooks(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
