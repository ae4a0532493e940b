// Package sheetmd converts spreadsheet workbooks into Markdown tables.
package sheetmd

import "log/slog"

// DefaultMaxFileSize is the largest workbook Extract accepts unless overridden.
const DefaultMaxFileSize = 100 * 1024 * 1024

// Options configures extraction behavior.
type Options struct {
	// SheetName restricts extraction to the first sheet with exactly this name.
	// Nil extracts every sheet.
	SheetName *string
	// RawValues reads unformatted cell values where the decoder supports it.
	RawValues bool
	// MaxFileSize is the largest file Extract opens (default: 100 MB).
	MaxFileSize int64
	// Logger receives per-sheet diagnostics (default: slog.Default()).
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	o := Options{}
	o.defaults()
	return o
}

func (o *Options) defaults() {
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
