package models

// WorkbookResult is the per-sheet outcome of extracting a workbook.
type WorkbookResult struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Tables holds one entry per selected sheet, in workbook order.
	Tables []TableResult `json:"tables"`
}

// Failures returns the errored entries.
func (w WorkbookResult) Failures() []ErroredTable {
	var out []ErroredTable
	for _, t := range w.Tables {
		if t.Error != nil {
			out = append(out, *t.Error)
		}
	}
	return out
}
