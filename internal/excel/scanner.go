package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OutputSuffix marks workbooks written by the rewriter.
const OutputSuffix = "_seo"

// OutputPath returns <dir>/<stem>_seo<ext> for an input workbook path.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + OutputSuffix + ext
}

// FindWorkbooks returns every .xlsx file under dir, sorted, skipping files
// that are themselves rewriter output and Excel lock files.
func FindWorkbooks(dir string) ([]string, error) {
	var xlsxFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		name := info.Name()
		if strings.ToLower(filepath.Ext(name)) != ".xlsx" || strings.HasPrefix(name, "~$") {
			return nil
		}
		if strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), OutputSuffix) {
			return nil
		}

		xlsxFiles = append(xlsxFiles, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	sort.Strings(xlsxFiles)
	return xlsxFiles, nil
}
