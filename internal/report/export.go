// Package report renders the ranking as CSV or XLSX files and prints the
// localized console reports.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pavelanni/meritrank/internal/model"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DefaultFileName is where the shell writes its export.
const DefaultFileName = "alumnos_ranking.csv"

// Formats lists every supported export format.
var Formats = []string{FormatCSV, FormatXLSX}

// IsFormat reports whether f names a supported export format.
func IsFormat(f string) bool {
	return slices.Contains(Formats, strings.ToLower(f))
}

// FormatFor picks the format for path from its extension, falling back to fallback.
func FormatFor(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	}
	return strings.ToLower(fallback)
}

// Write renders rows to w in the given format.
func Write(w io.Writer, format string, rows []model.RankingRow) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	}
	return model.InvalidInput("report.Write", "unknown export format %q", format)
}

// ExportFile writes rows to path, replacing any existing file.
func ExportFile(path, format string, rows []model.RankingRow) error {
	if !IsFormat(format) {
		return model.InvalidInput("report.ExportFile", "unknown export format %q", format)
	}
	f, err := os.Create(path)
	if err != nil {
		return model.Unavailable("report.ExportFile", "create "+path, err)
	}
	if err := Write(f, format, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return model.Unavailable("report.ExportFile", "close "+path, err)
	}
	return nil
}
