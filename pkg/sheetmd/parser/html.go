package parser

import (
	"os"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxColspan caps column expansion for hostile colspan values.
const maxColspan = 1000

// htmlSheet is one <table> of an HTML workbook.
type htmlSheet struct {
	name string
	rows [][]models.Cell
}

// htmlWorkbook treats every top-level <table> of a page as a sheet, the way
// spreadsheet applications export a workbook as a web page.
type htmlWorkbook struct {
	sheets []htmlSheet
}

func openHTML(path string) (*htmlWorkbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := html.Parse(file)
	if err != nil {
		return nil, err
	}

	wb := &htmlWorkbook{}
	collectTables(doc, wb)
	return wb, nil
}

func (w *htmlWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}
	return names
}

func (w *htmlWorkbook) SheetRows(name string) ([][]models.Cell, error) {
	for _, s := range w.sheets {
		if s.name == name {
			return s.rows, nil
		}
	}
	return nil, ErrSheetNotFound
}

func (w *htmlWorkbook) Close() error {
	return nil
}

// collectTables walks the DOM and records each outermost table.
func collectTables(n *html.Node, wb *htmlWorkbook) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Table {
		name := tableCaption(n)
		if name == "" {
			name = "Table" + strconv.Itoa(len(wb.sheets)+1)
		}
		wb.sheets = append(wb.sheets, htmlSheet{name: name, rows: usedRange(tableRows(n))})
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTables(c, wb)
	}
}

func tableCaption(table *html.Node) string {
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Caption {
			return strings.TrimSpace(cellText(c))
		}
	}
	return ""
}

// tableRows returns the rows of table, skipping rows of nested tables.
func tableRows(table *html.Node) [][]models.Cell {
	var rows [][]models.Cell
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead, atom.Tbody, atom.Tfoot:
				walk(c)
			case atom.Tr:
				rows = append(rows, rowCells(c))
			}
		}
	}
	walk(table)
	return rows
}

func rowCells(tr *html.Node) []models.Cell {
	var cells []models.Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		value := strings.TrimSpace(cellText(c))
		cells = append(cells, models.Cell{Kind: classify(value), Value: value})
		for i := 1; i < colspan(c); i++ {
			cells = append(cells, models.Cell{Kind: models.CellEmpty})
		}
	}
	return cells
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key != "colspan" {
			continue
		}
		span, err := strconv.Atoi(strings.TrimSpace(a.Val))
		if err != nil || span < 1 {
			return 1
		}
		return min(span, maxColspan)
	}
	return 1
}

// cellText flattens the text under n. <br> becomes a newline, other whitespace runs
// collapse to one space.
func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			words := strings.Fields(n.Data)
			if len(words) == 0 {
				if n.Data != "" {
					pendingSpace(&sb)
				}
				return
			}
			if isSpace(n.Data[0]) {
				pendingSpace(&sb)
			}
			sb.WriteString(strings.Join(words, " "))
			if isSpace(n.Data[len(n.Data)-1]) {
				sb.WriteByte(' ')
			}
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			sb.WriteByte('\n')
		case n.Type == html.ElementNode && n.DataAtom == atom.Table:
			// nested tables are not flattened into the cell
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(n)
	out := strings.ReplaceAll(sb.String(), " \n", "\n")
	out = strings.ReplaceAll(out, "\n ", "\n")
	return strings.TrimSpace(out)
}

func pendingSpace(sb *strings.Builder) {
	s := sb.String()
	if s != "" && !isSpace(s[len(s)-1]) {
		sb.WriteByte(' ')
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
