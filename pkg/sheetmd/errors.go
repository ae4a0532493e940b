package sheetmd

import (
	"errors"
	"fmt"
)

// ErrWorkbookOpen indicates the workbook container could not be opened or decoded.
var ErrWorkbookOpen = errors.New("cannot open workbook")

// ErrSheetMissing indicates the requested sheet does not exist in the workbook.
var ErrSheetMissing = errors.New("sheet is missing")

// ErrSheetRead indicates the decoder failed while reading a sheet.
var ErrSheetRead = errors.New("sheet read error")

// ErrNoHeaderRow indicates a sheet has no first row to derive headers from.
var ErrNoHeaderRow = errors.New("no header row")

// ErrEmptyResultSet indicates no sheet reached the renderer.
var ErrEmptyResultSet = errors.New("no results")

// OpenError reports a workbook that could not be opened. It matches ErrWorkbookOpen.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open workbook %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() []error {
	return []error{ErrWorkbookOpen, e.Err}
}

// SheetError represents a per-sheet extraction failure.
type SheetError struct {
	SheetName string
	// Kind is one of ErrSheetMissing, ErrSheetRead or ErrNoHeaderRow.
	Kind error
	// Err is the decoder error, if any.
	Err error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %s", e.SheetName, e.Reason())
}

// Reason describes the failure without the sheet name.
func (e *SheetError) Reason() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *SheetError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName string, kind, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Kind:      kind,
		Err:       err,
	}
}

// failureReason returns the text shown for a failed sheet next to its name.
func failureReason(err error) string {
	var sheetErr *SheetError
	if errors.As(err, &sheetErr) {
		return sheetErr.Reason()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
