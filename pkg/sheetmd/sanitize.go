package sheetmd

import (
	"strings"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
)

// LineBreak replaces line endings inside table cells.
const LineBreak = "<br/>"

// The double carriage return must be replaced before the single one.
var cellReplacer = []struct{ old, new string }{
	{"|", `\|`},
	{"\r\r", LineBreak},
	{"\n", LineBreak},
	{"\r", LineBreak},
}

// Sanitize renders a cell as text safe to place inside a Markdown table cell.
func Sanitize(c models.Cell) string {
	return SanitizeText(c.String())
}

// SanitizeText escapes pipes and turns line endings into LineBreak. The text is not
// HTML-escaped.
func SanitizeText(s string) string {
	for _, r := range cellReplacer {
		s = strings.ReplaceAll(s, r.old, r.new)
	}
	return s
}
