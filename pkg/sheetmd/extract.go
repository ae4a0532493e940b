package sheetmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/parser"
)

// Extract opens a workbook and extracts its sheets into tables.
// Only a workbook that cannot be opened is an error; sheet failures are kept as
// errored entries in the result.
func Extract(path string, opts Options) (models.WorkbookResult, error) {
	opts.defaults()

	info, err := os.Stat(path)
	if err != nil {
		return models.WorkbookResult{}, &OpenError{Path: path, Err: err}
	}
	if info.Size() > opts.MaxFileSize {
		return models.WorkbookResult{}, &OpenError{
			Path: path,
			Err:  fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), opts.MaxFileSize),
		}
	}

	wb, err := parser.Open(path, parser.OpenOptions{RawValues: opts.RawValues})
	if err != nil {
		return models.WorkbookResult{}, &OpenError{Path: path, Err: err}
	}
	defer wb.Close()

	opts.Logger.Debug("extracting workbook", "path", path, "sheets", len(wb.SheetNames()))

	result := ExtractWorkbook(wb, opts)
	result.BookName = filepath.Base(path)
	return result, nil
}

// ExtractWorkbook extracts every selected sheet of an opened workbook in declared
// order. With a sheet filter only the first sheet whose name matches exactly is
// extracted; no match yields an empty result.
func ExtractWorkbook(wb parser.Workbook, opts Options) models.WorkbookResult {
	opts.defaults()

	var result models.WorkbookResult
	for _, name := range selectSheets(wb.SheetNames(), opts.SheetName) {
		entry := ExtractSheet(wb, name)
		if entry.Error != nil {
			opts.Logger.Info("skipping sheet", "sheet", name, "error", entry.Error.Message())
		} else {
			opts.Logger.Debug("extracted sheet", "sheet", name,
				"columns", len(entry.Table.Header), "rows", len(entry.Table.Rows))
		}
		result.Tables = append(result.Tables, entry)
	}
	return result
}

func selectSheets(names []string, filter *string) []string {
	if filter == nil {
		return names
	}
	for _, name := range names {
		if name == *filter {
			return []string{name}
		}
	}
	return nil
}

// ExtractSheet reads one sheet and maps its rows onto the header from the first row.
func ExtractSheet(wb parser.Workbook, name string) models.TableResult {
	rows, err := wb.SheetRows(name)
	switch {
	case errors.Is(err, parser.ErrSheetNotFound):
		return models.Failed(name, NewSheetError(name, ErrSheetMissing, nil))
	case err != nil:
		return models.Failed(name, NewSheetError(name, ErrSheetRead, err))
	case len(rows) == 0 || len(rows[0]) == 0:
		return models.Failed(name, NewSheetError(name, ErrNoHeaderRow, nil))
	}

	header := DeriveHeader(rows[0])
	table := models.NamedTable{
		SheetName: name,
		Header:    header,
		Rows:      make([]models.TableRow, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, zipRow(header, row))
	}
	return models.Ok(table)
}

// DeriveHeader names each column of the first row. Blank cells become NULL<index>
// and repeated names get an _<index> suffix, then _<n> until the name is unused.
func DeriveHeader(first []models.Cell) models.Header {
	header := make(models.Header, len(first))
	seen := make(map[string]bool, len(first))
	for i, c := range first {
		name := SanitizeText(c.String())
		if name == "" {
			name = "NULL" + strconv.Itoa(i)
		}
		if seen[name] {
			base := name + "_" + strconv.Itoa(i)
			name = base
			for n := 2; seen[name]; n++ {
				name = base + "_" + strconv.Itoa(n)
			}
		}
		seen[name] = true
		header[i] = models.Column{Index: i, Name: name}
	}
	return header
}

// zipRow pairs each header column with the cell at the same position.
func zipRow(header models.Header, row []models.Cell) models.TableRow {
	out := make(models.TableRow, len(header))
	for i, col := range header {
		var cell models.Cell
		if col.Index < len(row) {
			cell = row[col.Index]
		}
		out[i] = models.Field{Name: col.Name, Value: Sanitize(cell)}
	}
	return out
}
