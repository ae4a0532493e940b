// Package parser provides spreadsheet decoders that yield raw rows of typed cells.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
)

// ErrSheetNotFound is returned by SheetRows when the workbook has no such sheet.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnsupportedFormat is returned by Open for file types no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Workbook is an opened spreadsheet.
type Workbook interface {
	// SheetNames returns sheet names in declared order.
	SheetNames() []string
	// SheetRows returns every row of the named sheet. Rows may have different lengths.
	SheetRows(name string) ([][]models.Cell, error)
	// Close releases the underlying file.
	Close() error
}

// OpenOptions configures decoders.
type OpenOptions struct {
	// RawValues disables number formatting in xlsx cells.
	RawValues bool
}

// Open picks a decoder from the file extension and opens the workbook.
func Open(path string, opts OpenOptions) (Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return openXLSX(path, opts.RawValues)
	case ".csv":
		return openDelimited(path, ',')
	case ".tsv", ".tab":
		return openDelimited(path, '\t')
	case ".htm", ".html":
		return openHTML(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions(), " "))
	}
}

// SupportedExtensions lists the extensions Open accepts.
func SupportedExtensions() []string {
	return []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv", ".tsv", ".tab", ".htm", ".html"}
}

// sheetStem derives a sheet name for single-sheet formats.
func sheetStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
