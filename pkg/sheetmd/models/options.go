package models

// KVFilter selects rows by matching a column name and its value.
// Both fields are regular expressions.
type KVFilter struct {
	// Key matches column names.
	Key string `json:"key" yaml:"key"`
	// Value matches the value in any column whose name matched Key.
	Value string `json:"value" yaml:"value"`
}

// RenderOptions configures which sheets reach the renderer and how tables are printed.
type RenderOptions struct {
	// Heading replaces the sheet name as the per-table heading when set.
	Heading *string
	// SheetName restricts extraction to the sheet with exactly this name.
	SheetName *string
	// Filters keep only rows matching every filter.
	Filters []KVFilter
	// Columns selects and orders the rendered columns by name. Empty renders all.
	Columns []string
}
