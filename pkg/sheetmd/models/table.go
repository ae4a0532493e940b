package models

import (
	"bytes"
	"encoding/json"
)

// Column is one header column: its position in the sheet and its derived name.
type Column struct {
	// Index is the 0-based column position.
	Index int `json:"index"`
	// Name is the unique column name.
	Name string `json:"name"`
}

// Header is the ordered column list derived from a sheet's first row.
type Header []Column

// Names returns the column names in header order.
func (h Header) Names() []string {
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.Name
	}
	return names
}

// Field is one header name and the sanitized value under it.
type Field struct {
	Name  string
	Value string
}

// TableRow holds one field per header column, in header order.
type TableRow []Field

// Value returns the value stored under name.
func (r TableRow) Value(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the row as an object whose keys keep header order.
func (r TableRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NamedTable is a sheet's extracted records paired with the sheet name.
type NamedTable struct {
	// SheetName is the originating sheet.
	SheetName string `json:"sheet_name"`
	// Header is the column list derived from the first row.
	Header Header `json:"header"`
	// Rows are the data rows in sheet order. Empty when the sheet only has a header.
	Rows []TableRow `json:"rows"`
}

// ErroredTable records a sheet that could not be turned into a table.
type ErroredTable struct {
	// SheetName is the originating sheet.
	SheetName string `json:"sheet_name"`
	// Err is the failure cause.
	Err error `json:"-"`
}

// Message returns the error text, or "" when no error is attached.
func (e ErroredTable) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// MarshalJSON includes the error message alongside the sheet name.
func (e ErroredTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SheetName string `json:"sheet_name"`
		Error     string `json:"error"`
	}{e.SheetName, e.Message()})
}

// TableResult is either a table or an errored sheet. Exactly one side is set.
type TableResult struct {
	Table *NamedTable   `json:"table,omitempty"`
	Error *ErroredTable `json:"error,omitempty"`
}

// Ok wraps a successfully extracted table.
func Ok(t NamedTable) TableResult {
	return TableResult{Table: &t}
}

// Failed wraps a sheet failure.
func Failed(sheetName string, err error) TableResult {
	return TableResult{Error: &ErroredTable{SheetName: sheetName, Err: err}}
}

// OK reports whether the result holds a table.
func (r TableResult) OK() bool {
	return r.Table != nil
}

// SheetName returns the sheet the result belongs to.
func (r TableResult) SheetName() string {
	if r.Table != nil {
		return r.Table.SheetName
	}
	if r.Error != nil {
		return r.Error.SheetName
	}
	return ""
}
