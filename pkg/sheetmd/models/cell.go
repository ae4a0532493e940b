// Package models defines data structures for spreadsheet-to-Markdown conversion.
package models

// CellKind identifies the decoded type of a cell value.
type CellKind int

const (
	// CellEmpty is a blank cell or a position past the end of a short row.
	CellEmpty CellKind = iota
	// CellText is a string cell (shared, inline or formula result).
	CellText
	// CellNumber is a numeric cell.
	CellNumber
	// CellBool is a boolean cell.
	CellBool
	// CellDate is a date or time cell.
	CellDate
	// CellError is a cell holding a spreadsheet error such as #DIV/0!.
	CellError
)

var cellKindNames = [...]string{"empty", "text", "number", "bool", "date", "error"}

func (k CellKind) String() string {
	if k < 0 || int(k) >= len(cellKindNames) {
		return "unknown"
	}
	return cellKindNames[k]
}

// Cell is a single decoded cell value. Only its string form is used downstream.
type Cell struct {
	// Kind is the decoded value type.
	Kind CellKind `json:"kind"`
	// Value is the formatted string representation.
	Value string `json:"value"`
}

// String returns the cell's string form; empty cells are "".
func (c Cell) String() string {
	if c.Kind == CellEmpty {
		return ""
	}
	return c.Value
}

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty || c.Value == ""
}

// TextCell is a convenience constructor for a text cell; "" yields an empty cell.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Value: s}
}
