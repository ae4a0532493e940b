package sheetmd

import "github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"

// Project applies the row filters and column selection of opts to every table and
// returns a new result. Errored entries are kept as they are.
func Project(result models.WorkbookResult, opts models.RenderOptions) (models.WorkbookResult, error) {
	filter, err := compileFilters(opts.Filters)
	if err != nil {
		return models.WorkbookResult{}, err
	}

	out := models.WorkbookResult{
		BookName: result.BookName,
		Tables:   make([]models.TableResult, len(result.Tables)),
	}
	for i, entry := range result.Tables {
		if entry.Table == nil {
			out.Tables[i] = entry
			continue
		}
		out.Tables[i] = models.Ok(projectTable(*entry.Table, opts.Columns, filter))
	}
	return out, nil
}

// projectTable keeps the rows accepted by filter and the selected columns, in
// selection order. Fields are copied by position.
func projectTable(t models.NamedTable, columns []string, filter rowFilter) models.NamedTable {
	positions := selectColumns(t.Header, columns)

	header := make(models.Header, len(positions))
	for i, p := range positions {
		header[i] = t.Header[p]
	}

	rows := make([]models.TableRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !filter.match(row) {
			continue
		}
		kept := make(models.TableRow, len(positions))
		for i, p := range positions {
			if p < len(row) {
				kept[i] = row[p]
			} else {
				kept[i] = models.Field{Name: t.Header[p].Name}
			}
		}
		rows = append(rows, kept)
	}

	return models.NamedTable{SheetName: t.SheetName, Header: header, Rows: rows}
}

// selectColumns returns the header positions to keep: all of them, or the
// requested names that exist, in request order.
func selectColumns(header models.Header, columns []string) []int {
	if len(columns) == 0 {
		positions := make([]int, len(header))
		for i := range header {
			positions[i] = i
		}
		return positions
	}

	index := make(map[string]int, len(header))
	for i, c := range header {
		index[c.Name] = i
	}
	var positions []int
	for _, name := range columns {
		if p, ok := index[name]; ok {
			positions = append(positions, p)
		}
	}
	return positions
}
