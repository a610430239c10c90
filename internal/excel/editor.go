package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file     *excelize.File
	filepath string
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// Path returns the file the workbook was opened from or last saved to.
func (e *Editor) Path() string {
	return e.filepath
}

// ActiveSheet returns the name of the sheet selected when the file was saved.
func (e *Editor) ActiveSheet() string {
	return e.file.GetSheetName(e.file.GetActiveSheetIndex())
}

// GetAllRows returns all rows from a sheet
func (e *Editor) GetAllRows(sheet string) ([][]string, error) {
	rows, err := e.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// GetColumnHeaders returns all column headers (first row)
func (e *Editor) GetColumnHeaders(sheet string) ([]string, error) {
	rows, err := e.GetAllRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	return rows[0], nil
}

// GetCell returns the formatted value at 1-based column and row.
func (e *Editor) GetCell(sheet string, col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return e.file.GetCellValue(sheet, cell)
}

// SetCell writes value at 1-based column and row.
func (e *Editor) SetCell(sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return e.file.SetCellValue(sheet, cell, value)
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	e.filepath = filepath
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}
