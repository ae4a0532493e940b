package sheetmd

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
)

// minColumnWidth keeps separator rows at least three dashes wide.
const minColumnWidth = 3

// RenderMarkdown renders a workbook result as one Markdown document.
// A single entry renders as a bare table. Several entries each get a heading and
// are separated by a blank line. An empty result is ErrEmptyResultSet.
func RenderMarkdown(result models.WorkbookResult, opts models.RenderOptions) (string, error) {
	filter, err := compileFilters(opts.Filters)
	if err != nil {
		return "", err
	}

	switch len(result.Tables) {
	case 0:
		return "", ErrEmptyResultSet
	case 1:
		return renderEntry(result.Tables[0], false, opts, filter), nil
	}

	blocks := make([]string, len(result.Tables))
	for i, entry := range result.Tables {
		blocks[i] = renderEntry(entry, true, opts, filter)
	}
	return strings.Join(blocks, "\n\n"), nil
}

// TableToMarkdown renders a single table result, optionally under a heading.
func TableToMarkdown(entry models.TableResult, withHeading bool, opts models.RenderOptions) (string, error) {
	filter, err := compileFilters(opts.Filters)
	if err != nil {
		return "", err
	}
	return renderEntry(entry, withHeading, opts, filter), nil
}

func renderEntry(entry models.TableResult, withHeading bool, opts models.RenderOptions, filter rowFilter) string {
	var body string
	if entry.Error != nil {
		body = "_Sheet " + quoteName(entry.Error.SheetName) + " could not be read: " +
			SanitizeText(failureReason(entry.Error.Err)) + "_"
	} else {
		body = renderTable(projectTable(*entry.Table, opts.Columns, filter))
	}

	if !withHeading {
		return body
	}
	heading := entry.SheetName()
	if opts.Heading != nil {
		heading = *opts.Heading
	}
	return "## " + heading + "\n\n" + body
}

func quoteName(name string) string {
	return `"` + SanitizeText(name) + `"`
}

// renderTable prints the header row, the separator and one line per row. Values
// are read by position; row i field j belongs to header column j.
func renderTable(t models.NamedTable) string {
	if len(t.Header) == 0 {
		return "_Sheet " + quoteName(t.SheetName) + " has no matching columns_"
	}
	names := t.Header.Names()

	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		line := make([]string, len(names))
		for i := range names {
			if i < len(row) {
				line[i] = row[i].Value
			}
		}
		cells[r] = line
	}

	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = max(minColumnWidth, runewidth.StringWidth(name))
	}
	for _, line := range cells {
		for i, v := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(v))
		}
	}

	var sb strings.Builder
	writeLine(&sb, names, widths)
	sb.WriteString("\n|")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteByte('|')
	}
	for _, line := range cells {
		sb.WriteByte('\n')
		writeLine(&sb, line, widths)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, values []string, widths []int) {
	sb.WriteByte('|')
	for i, v := range values {
		sb.WriteByte(' ')
		sb.WriteString(runewidth.FillRight(v, widths[i]))
		sb.WriteString(" |")
	}
}
