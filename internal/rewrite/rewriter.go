// Package rewrite fills the brand, name and description columns of a
// product workbook with SEO text.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sunseo/internal/brand"
	"sunseo/internal/excel"
	"sunseo/internal/generator"
	"sunseo/internal/logger"
	"time"

	"github.com/go-playground/validator/v10"
)

type Quality string

const (
	QualityLow     Quality = "low"
	QualityMedium  Quality = "medium"
	QualityPremium Quality = "premium"
)

type Length string

const (
	LengthShort  Length = "short"
	LengthNormal Length = "normal"
	LengthLong   Length = "long"
)

type Style string

const (
	StyleNormal  Style = "normal"
	StylePremium Style = "premium"
)

const (
	nameMaxLength        = 50
	descriptionMaxLength = 200
)

// Options control one processing run.
type Options struct {
	Brand        string
	Collection   string
	Quality      Quality `validate:"oneof=low medium premium"`
	Length       Length  `validate:"oneof=short normal long"`
	Style        Style   `validate:"oneof=normal premium"`
	UseGenerator bool
}

// Validate checks the enumerated options.
func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// ProgressFunc receives the share of processed rows in percent.
type ProgressFunc func(percent float64)

// Result describes a finished run.
type Result struct {
	OutputPath string
	Rows       int
	Report     string
	// GeneratedRows counts rows whose name or description came from the generator.
	GeneratedRows int
	Elapsed       time.Duration
}

// Rewriter rewrites product workbooks.
type Rewriter struct {
	localizer *brand.Localizer
	source    generator.Source
	templates *Templates
}

// New returns a Rewriter. A nil source disables generation and nil
// templates select the built-in texts.
func New(localizer *brand.Localizer, source generator.Source, templates *Templates) *Rewriter {
	if localizer == nil {
		localizer = brand.NewLocalizer(nil)
	}
	if source == nil {
		source = generator.None{}
	}
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &Rewriter{
		localizer: localizer,
		source:    source,
		templates: templates,
	}
}

// ProcessFile opens path, processes it and closes it again.
func (r *Rewriter) ProcessFile(ctx context.Context, path string, opts Options, onProgress ProgressFunc) (*Result, error) {
	wb, err := excel.OpenFile(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer wb.Close()

	return r.Process(ctx, wb, opts, onProgress)
}

// Process rewrites the active sheet of wb and saves it next to the input as
// <stem>_seo<ext>. onProgress is called once per data row, in row order.
// A cancelled ctx stops the run between rows without saving.
func (r *Rewriter) Process(ctx context.Context, wb *excel.Editor, opts Options, onProgress ProgressFunc) (*Result, error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	inputPath := wb.Path()
	sheet := wb.ActiveSheet()
	logger.Info("Starting processing", "file", inputPath, "sheet", sheet)

	rows, err := wb.GetAllRows(sheet)
	if err != nil {
		return nil, &IOError{Op: "read", Path: inputPath, Err: err}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyData
	}

	cols := ResolveColumns(rows[0])
	if cols.Empty() {
		return nil, ErrMissingColumns
	}

	total := len(rows) - 1
	if total <= 0 {
		return nil, ErrEmptyData
	}

	localized := r.localizer.Localize(opts.Brand)
	logger.Info("Resolved brand", "brand", opts.Brand, "localized", localized)

	gen := r.acquire(ctx, opts)
	if closer, ok := gen.(io.Closer); ok {
		defer closer.Close()
	}

	var (
		report    []string
		count     int
		generated int
	)

	for rowIdx := 2; rowIdx <= len(rows); rowIdx++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("Processing cancelled", "file", inputPath, "row", rowIdx)
			return nil, err
		}

		cells := rows[rowIdx-1]
		vars := Vars{
			Brand:      localized,
			Collection: opts.Collection,
			Quality:    opts.Quality,
			Length:     opts.Length,
			Style:      opts.Style,
		}
		fromGenerator := false

		if col, ok := cols.Index(RoleBrand); ok {
			if err := wb.SetCell(sheet, col, rowIdx, localized); err != nil {
				return nil, &IOError{Op: "write", Path: inputPath, Err: err}
			}
		}

		if col, ok := cols.Index(RoleName); ok {
			vars.Model = strings.TrimSpace(cellValue(cells, col))

			name, usedGen, err := r.render(ctx, gen, r.templates.NamePrompt, r.templates.Name, vars, nameMaxLength)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCell(sheet, col, rowIdx, name); err != nil {
				return nil, &IOError{Op: "write", Path: inputPath, Err: err}
			}
			fromGenerator = fromGenerator || usedGen
			report = append(report, fmt.Sprintf("Строка %d: %s", rowIdx, name))
		}

		if col, ok := cols.Index(RoleDescription); ok {
			vars.Description = cellValue(cells, col)

			desc, usedGen, err := r.render(ctx, gen, r.templates.DescriptionPrompt, r.templates.Description, vars, descriptionMaxLength)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCell(sheet, col, rowIdx, desc); err != nil {
				return nil, &IOError{Op: "write", Path: inputPath, Err: err}
			}
			fromGenerator = fromGenerator || usedGen
		}

		if fromGenerator {
			generated++
		}
		count++
		if onProgress != nil {
			onProgress(100 * float64(count) / float64(total))
		}
		logger.Debug("Row processed", "row", rowIdx, "generated", fromGenerator)
	}

	outputPath := excel.OutputPath(inputPath)
	if err := wb.SaveAs(outputPath); err != nil {
		return nil, &IOError{Op: "save", Path: outputPath, Err: err}
	}

	elapsed := time.Since(start)
	report = append(report, fmt.Sprintf("Время: %.2f сек", elapsed.Seconds()))

	logger.Info("Processing completed",
		"file", inputPath,
		"output", outputPath,
		"rows", count,
		"generated_rows", generated,
		"elapsed", elapsed)

	return &Result{
		OutputPath:    outputPath,
		Rows:          count,
		Report:        strings.Join(report, "\n"),
		GeneratedRows: generated,
		Elapsed:       elapsed,
	}, nil
}

// acquire returns nil when generation is off or the source cannot provide a
// generator; the run then uses the templates.
func (r *Rewriter) acquire(ctx context.Context, opts Options) generator.TextGenerator {
	if !opts.UseGenerator {
		return nil
	}

	gen, err := r.source.Acquire(ctx)
	if err != nil {
		logger.Warn("Text generator unavailable, using templates", "error", err)
		return nil
	}
	return gen
}

// render asks gen for text when it is set and falls back to the template
// when it is not or when the call fails.
func (r *Rewriter) render(ctx context.Context, gen generator.TextGenerator, prompt, fallback *Template, vars Vars, maxLength int) (string, bool, error) {
	if gen != nil {
		p, err := prompt.Execute(vars)
		if err != nil {
			return "", false, err
		}

		text, err := gen.Generate(ctx, p, maxLength)
		text = strings.TrimSpace(text)
		switch {
		case err == nil && text != "":
			return text, true, nil
		case errors.Is(err, context.Canceled):
			return "", false, err
		case err != nil:
			logger.Warn("Generation failed, using template", "error", err)
		default:
			logger.Warn("Generator returned empty text, using template")
		}
	}

	text, err := fallback.Execute(vars)
	if err != nil {
		return "", false, err
	}
	return text, false, nil
}

// cellValue returns the 1-based column of a row from GetRows, which trims
// trailing empty cells.
func cellValue(cells []string, col int) string {
	if col-1 < len(cells) {
		return cells[col-1]
	}
	return ""
}
