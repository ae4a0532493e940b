package parser

import (
	"fmt"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
	"github.com/xuri/excelize/v2"
)

// xlsxWorkbook decodes Office Open XML workbooks.
type xlsxWorkbook struct {
	f   *excelize.File
	raw bool
}

func openXLSX(path string, raw bool) (*xlsxWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &xlsxWorkbook{f: f, raw: raw}, nil
}

// NewXLSX wraps an already opened excelize file.
func NewXLSX(f *excelize.File, raw bool) Workbook {
	return &xlsxWorkbook{f: f, raw: raw}
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *xlsxWorkbook) SheetRows(name string) ([][]models.Cell, error) {
	if idx, err := w.f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, ErrSheetNotFound
	}

	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: w.raw})
	if err != nil {
		return nil, err
	}

	result := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			kind, err := w.cellKind(name, colIdx, rowIdx, value)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = models.Cell{Kind: kind, Value: value}
		}
		result[rowIdx] = cells
	}
	return usedRange(result), nil
}

func (w *xlsxWorkbook) cellKind(sheet string, colIdx, rowIdx int, value string) (models.CellKind, error) {
	cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return models.CellEmpty, err
	}
	typ, err := w.f.GetCellType(sheet, cellName)
	if err != nil {
		return models.CellEmpty, fmt.Errorf("cell %s: %w", cellName, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return models.CellBool, nil
	case excelize.CellTypeDate:
		return models.CellDate, nil
	case excelize.CellTypeError:
		return models.CellError, nil
	case excelize.CellTypeNumber:
		return models.CellNumber, nil
	case excelize.CellTypeUnset:
		// Numbers written without an explicit type carry no t attribute.
		return classify(value), nil
	default:
		return models.CellText, nil
	}
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}
