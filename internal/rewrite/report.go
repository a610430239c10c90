package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReportPath returns <output stem>_report.txt next to the output workbook.
func ReportPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_report.txt"
}

// SaveReport writes the run summary and per-row report to path.
func SaveReport(path, inputPath string, res *Result, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "Отчёт - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "===========================================\n\n")

	fmt.Fprintf(file, "Исходный файл: %s\n", inputPath)
	fmt.Fprintf(file, "Файл создан: %s\n", res.OutputPath)
	fmt.Fprintf(file, "Строк: %d\n", res.Rows)
	fmt.Fprintf(file, "Время обработки: %.2f сек\n", res.Elapsed.Seconds())
	fmt.Fprintf(file, "Бренд: %s\n", opts.Brand)
	fmt.Fprintf(file, "Коллекция: %s\n", opts.Collection)
	fmt.Fprintf(file, "Качество: %s, длина: %s, стиль: %s\n", opts.Quality, opts.Length, opts.Style)
	if opts.UseGenerator {
		fmt.Fprintf(file, "Сгенерировано ИИ: %d из %d строк\n", res.GeneratedRows, res.Rows)
	}

	fmt.Fprintf(file, "\n%s\n", res.Report)
	fmt.Fprintf(file, "\n===========================================\n")

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
