package parser

import (
	"encoding/csv"
	"os"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
)

// delimitedWorkbook exposes a CSV or TSV file as a single sheet named after the file.
type delimitedWorkbook struct {
	path  string
	name  string
	comma rune
}

func openDelimited(path string, comma rune) (*delimitedWorkbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return &delimitedWorkbook{path: path, name: sheetStem(path), comma: comma}, nil
}

func (w *delimitedWorkbook) SheetNames() []string {
	return []string{w.name}
}

// SheetRows reads the file on demand so malformed content surfaces as a sheet error.
func (w *delimitedWorkbook) SheetRows(name string) ([][]models.Cell, error) {
	if name != w.name {
		return nil, ErrSheetNotFound
	}

	file, err := os.Open(w.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = w.comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]models.Cell, len(records))
	for i, record := range records {
		rows[i] = textRow(record)
	}
	return usedRange(rows), nil
}

func (w *delimitedWorkbook) Close() error {
	return nil
}
