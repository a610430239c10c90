package rewrite

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyData means the sheet has no data rows below the header.
	ErrEmptyData = errors.New("нет данных")
	// ErrMissingColumns means none of the Бренд, Название, Описание headers exist.
	ErrMissingColumns = errors.New("отсутствуют колонки")
)

// IOError wraps a failure to read or write a workbook file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
