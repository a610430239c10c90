package rewrite

import (
	"fmt"
	"strings"
	"sunseo/internal/excel"
)

// NoPreviewColumns is shown when neither Название nor Описание exists.
const NoPreviewColumns = "Нет колонок для предпросмотра"

// Preview renders the template output for the first data row without
// changing or saving wb. The generator is never called.
func (r *Rewriter) Preview(wb *excel.Editor, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	sheet := wb.ActiveSheet()
	headers, err := wb.GetColumnHeaders(sheet)
	if err != nil {
		return "", &IOError{Op: "read", Path: wb.Path(), Err: err}
	}

	cols := ResolveColumns(headers)
	nameCol, hasName := cols.Index(RoleName)
	descCol, hasDesc := cols.Index(RoleDescription)
	if !hasName && !hasDesc {
		return NoPreviewColumns, nil
	}

	vars := Vars{
		Brand:      r.localizer.Localize(opts.Brand),
		Collection: opts.Collection,
		Quality:    opts.Quality,
		Length:     opts.Length,
		Style:      opts.Style,
	}
	if hasName {
		model, err := wb.GetCell(sheet, nameCol, 2)
		if err != nil {
			return "", &IOError{Op: "read", Path: wb.Path(), Err: err}
		}
		vars.Model = strings.TrimSpace(model)
	}
	if hasDesc {
		desc, err := wb.GetCell(sheet, descCol, 2)
		if err != nil {
			return "", &IOError{Op: "read", Path: wb.Path(), Err: err}
		}
		vars.Description = desc
	}

	name, err := r.templates.Name.Execute(vars)
	if err != nil {
		return "", err
	}
	desc, err := r.templates.Description.Execute(vars)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Новое название: %s\nНовое описание: %s", name, desc), nil
}

// PreviewFile opens path and returns Preview for it.
func (r *Rewriter) PreviewFile(path string, opts Options) (string, error) {
	wb, err := excel.OpenFile(path)
	if err != nil {
		return "", &IOError{Op: "open", Path: path, Err: err}
	}
	defer wb.Close()

	return r.Preview(wb, opts)
}
