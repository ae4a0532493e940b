package sheetmd

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/parser"
	"github.com/xuri/excelize/v2"
)

// fakeWorkbook serves rows from memory; sheets listed in errs fail to decode.
type fakeWorkbook struct {
	names []string
	rows  map[string][][]models.Cell
	errs  map[string]error
}

func (w *fakeWorkbook) SheetNames() []string { return w.names }

func (w *fakeWorkbook) SheetRows(name string) ([][]models.Cell, error) {
	if err, ok := w.errs[name]; ok {
		return nil, err
	}
	rows, ok := w.rows[name]
	if !ok {
		return nil, parser.ErrSheetNotFound
	}
	return rows, nil
}

func (w *fakeWorkbook) Close() error { return nil }

func cells(values ...string) []models.Cell {
	out := make([]models.Cell, len(values))
	for i, v := range values {
		out[i] = models.TextCell(v)
	}
	return out
}

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestDeriveHeader(t *testing.T) {
	header := DeriveHeader(cells("Name", "Age", "", "Name", "a|b"))
	expected := []string{"Name", "Age", "NULL2", "Name_3", `a\|b`}

	if len(header) != len(expected) {
		t.Fatalf("DeriveHeader() returned %d columns; want %d", len(header), len(expected))
	}
	for i, want := range expected {
		if header[i].Name != want {
			t.Errorf("header[%d].Name = %q; want %q", i, header[i].Name, want)
		}
		if header[i].Index != i {
			t.Errorf("header[%d].Index = %d; want %d", i, header[i].Index, i)
		}
	}
}

func TestDeriveHeaderCollisions(t *testing.T) {
	tests := []struct {
		name     string
		first    []string
		expected []string
	}{
		{"suffix already taken", []string{"A", "A_2", "A"}, []string{"A", "A_2", "A_2_2"}},
		{"generated name reused later", []string{"A", "A", "A_1"}, []string{"A", "A_1", "A_1_2"}},
		{"placeholder taken", []string{"NULL1", ""}, []string{"NULL1", "NULL1_1"}},
		{"triple", []string{"x", "x", "x", "x_1"}, []string{"x", "x_1", "x_2", "x_1_3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := DeriveHeader(cells(tt.first...))
			seen := make(map[string]bool)
			for i, want := range tt.expected {
				if header[i].Name != want {
					t.Errorf("header[%d].Name = %q; want %q", i, header[i].Name, want)
				}
				if seen[header[i].Name] {
					t.Errorf("header name %q is not unique: %v", header[i].Name, header.Names())
				}
				seen[header[i].Name] = true
			}
		})
	}
}

func TestExtractSheet(t *testing.T) {
	wb := &fakeWorkbook{
		names: []string{"Data"},
		rows: map[string][][]models.Cell{
			"Data": {
				cells("Name", "Age", ""),
				cells("Ann", ""),
				cells("Bob", "42", "x", "overflow"),
				cells("multi\nline"),
			},
		},
	}

	res := ExtractSheet(wb, "Data")
	if !res.OK() {
		t.Fatalf("ExtractSheet() failed: %v", res.Error.Err)
	}
	table := res.Table
	if table.SheetName != "Data" {
		t.Errorf("SheetName = %q; want %q", table.SheetName, "Data")
	}
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows; want 3", len(table.Rows))
	}

	for _, row := range table.Rows {
		if len(row) != len(table.Header) {
			t.Errorf("row %v has %d fields; want %d", row, len(row), len(table.Header))
		}
	}
	if v, _ := table.Rows[0].Value("Age"); v != "" {
		t.Errorf("Ann's age = %q; want empty (no NULL placeholder in data)", v)
	}
	if v, _ := table.Rows[0].Value("NULL2"); v != "" {
		t.Errorf("short row padding = %q; want empty", v)
	}
	if v, _ := table.Rows[1].Value("NULL2"); v != "x" {
		t.Errorf("Bob's NULL2 = %q; want %q", v, "x")
	}
	if v, _ := table.Rows[2].Value("Name"); v != "multi<br/>line" {
		t.Errorf("sanitized name = %q; want %q", v, "multi<br/>line")
	}
}

func TestExtractSheetHeaderOnly(t *testing.T) {
	wb := &fakeWorkbook{
		names: []string{"S"},
		rows:  map[string][][]models.Cell{"S": {cells("A", "B")}},
	}

	res := ExtractSheet(wb, "S")
	if !res.OK() {
		t.Fatalf("ExtractSheet() failed: %v", res.Error.Err)
	}
	if res.Table.Rows == nil || len(res.Table.Rows) != 0 {
		t.Errorf("Rows = %#v; want empty non-nil slice", res.Table.Rows)
	}
}

func TestExtractSheetErrors(t *testing.T) {
	decodeErr := errors.New("bad zip entry")
	wb := &fakeWorkbook{
		names: []string{"Empty", "Broken", "Blank"},
		rows: map[string][][]models.Cell{
			"Empty": {},
			"Blank": {{}},
		},
		errs: map[string]error{"Broken": decodeErr},
	}

	tests := []struct {
		sheet string
		kind  error
	}{
		{"Empty", ErrNoHeaderRow},
		{"Blank", ErrNoHeaderRow},
		{"Broken", ErrSheetRead},
		{"Absent", ErrSheetMissing},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			res := ExtractSheet(wb, tt.sheet)
			if res.OK() {
				t.Fatalf("ExtractSheet(%q) succeeded; want %v", tt.sheet, tt.kind)
			}
			if !errors.Is(res.Error.Err, tt.kind) {
				t.Errorf("error = %v; want %v", res.Error.Err, tt.kind)
			}
			var sheetErr *SheetError
			if !errors.As(res.Error.Err, &sheetErr) || sheetErr.SheetName != tt.sheet {
				t.Errorf("error %v is not a SheetError for %q", res.Error.Err, tt.sheet)
			}
			if res.SheetName() != tt.sheet {
				t.Errorf("SheetName() = %q; want %q", res.SheetName(), tt.sheet)
			}
		})
	}

	res := ExtractSheet(wb, "Broken")
	if !errors.Is(res.Error.Err, decodeErr) {
		t.Errorf("decoder error not forwarded: %v", res.Error.Err)
	}
}

func TestExtractWorkbookPartialFailure(t *testing.T) {
	wb := &fakeWorkbook{
		names: []string{"One", "Two", "Three"},
		rows: map[string][][]models.Cell{
			"One":   {cells("A"), cells("1")},
			"Three": {cells("C"), cells("3")},
		},
		errs: map[string]error{"Two": errors.New("corrupt sheet")},
	}

	result := ExtractWorkbook(wb, quietOptions())
	if len(result.Tables) != 3 {
		t.Fatalf("got %d entries; want 3", len(result.Tables))
	}
	for i, name := range wb.names {
		if result.Tables[i].SheetName() != name {
			t.Errorf("entry %d = %q; want %q", i, result.Tables[i].SheetName(), name)
		}
	}
	if !result.Tables[0].OK() || result.Tables[1].OK() || !result.Tables[2].OK() {
		t.Errorf("unexpected success pattern: %v %v %v",
			result.Tables[0].OK(), result.Tables[1].OK(), result.Tables[2].OK())
	}
	if len(result.Failures()) != 1 {
		t.Errorf("Failures() = %d; want 1", len(result.Failures()))
	}
}

func TestExtractWorkbookSheetFilter(t *testing.T) {
	wb := &fakeWorkbook{
		names: []string{"A", "B", "B"},
		rows: map[string][][]models.Cell{
			"A": {cells("x")},
			"B": {cells("y")},
		},
	}

	opts := quietOptions()
	name := "B"
	opts.SheetName = &name
	result := ExtractWorkbook(wb, opts)
	if len(result.Tables) != 1 || result.Tables[0].SheetName() != "B" {
		t.Errorf("filter B = %+v; want exactly one entry for B", result.Tables)
	}

	missing := "b"
	opts.SheetName = &missing
	result = ExtractWorkbook(wb, opts)
	if len(result.Tables) != 0 {
		t.Errorf("filter b = %d entries; want 0 (names match exactly)", len(result.Tables))
	}
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "People")
	f.SetCellValue("People", "A1", "Name")
	f.SetCellValue("People", "B1", "Age")
	f.SetCellValue("People", "A2", "Ann")
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	result, err := Extract(path, quietOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.BookName != "book.xlsx" {
		t.Errorf("BookName = %q; want %q", result.BookName, "book.xlsx")
	}
	if len(result.Tables) != 2 {
		t.Fatalf("got %d entries; want 2", len(result.Tables))
	}
	if !result.Tables[0].OK() {
		t.Errorf("People failed: %v", result.Tables[0].Error.Err)
	}
	if result.Tables[1].OK() || !errors.Is(result.Tables[1].Error.Err, ErrNoHeaderRow) {
		t.Errorf("Empty sheet = %+v; want ErrNoHeaderRow", result.Tables[1])
	}
}

func TestExtractXLSXOffsetTable(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "B2", "Name")
	f.SetCellValue("Sheet1", "C2", "Age")
	f.SetCellValue("Sheet1", "B3", "Ann")
	f.SetCellValue("Sheet1", "C3", 30)

	path := filepath.Join(t.TempDir(), "offset.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	result, err := Extract(path, quietOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(result.Tables) != 1 || !result.Tables[0].OK() {
		t.Fatalf("Extract() = %+v; want one table", result.Tables)
	}

	got, err := RenderMarkdown(result, models.RenderOptions{})
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	expected := "| Name | Age |\n" +
		"|------|-----|\n" +
		"| Ann  | 30  |"
	if got != expected {
		t.Errorf("RenderMarkdown() =\n%s\nwant\n%s", got, expected)
	}
}

func TestExtractOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Extract(filepath.Join(dir, "missing.xlsx"), quietOptions())
	if !errors.Is(err, ErrWorkbookOpen) {
		t.Errorf("missing file error = %v; want ErrWorkbookOpen", err)
	}

	path := filepath.Join(dir, "notazip.xlsx")
	writeTestFile(t, path, "plain text")
	_, err = Extract(path, quietOptions())
	var openErr *OpenError
	if !errors.As(err, &openErr) || openErr.Path != path {
		t.Errorf("corrupt file error = %v; want *OpenError for %s", err, path)
	}

	opts := quietOptions()
	opts.MaxFileSize = 4
	_, err = Extract(path, opts)
	if !errors.Is(err, ErrWorkbookOpen) {
		t.Errorf("oversized file error = %v; want ErrWorkbookOpen", err)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
