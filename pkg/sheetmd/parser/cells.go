package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
)

// classify infers a cell kind from text for decoders that carry no type information.
func classify(s string) models.CellKind {
	if s == "" {
		return models.CellEmpty
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.CellNumber
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return models.CellNumber
	}
	switch strings.ToUpper(s) {
	case "TRUE", "FALSE":
		return models.CellBool
	}
	if (strings.HasPrefix(s, "#") && strings.HasSuffix(s, "!")) || s == "#N/A" {
		return models.CellError
	}
	return models.CellText
}

// textRow converts a decoded string row into cells.
func textRow(row []string) []models.Cell {
	cells := make([]models.Cell, len(row))
	for i, v := range row {
		cells[i] = models.Cell{Kind: classify(v), Value: v}
	}
	return cells
}

// usedRange trims rows to the block spanned by non-empty cells: leading and
// trailing blank rows and leading blank columns are dropped, so the first row is
// the top row of the data. A sheet without any value yields nil.
func usedRange(rows [][]models.Cell) [][]models.Cell {
	top, bottom, left := -1, -1, -1
	for i, row := range rows {
		first := firstValue(row)
		if first < 0 {
			continue
		}
		if top < 0 {
			top = i
		}
		bottom = i
		if left < 0 || first < left {
			left = first
		}
	}
	if top < 0 {
		return nil
	}

	used := rows[top : bottom+1]
	if left == 0 {
		return used
	}
	shifted := make([][]models.Cell, len(used))
	for i, row := range used {
		if left < len(row) {
			shifted[i] = row[left:]
		}
	}
	return shifted
}

func firstValue(row []models.Cell) int {
	for i, c := range row {
		if !c.IsEmpty() {
			return i
		}
	}
	return -1
}
