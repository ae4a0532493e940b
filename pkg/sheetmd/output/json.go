package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
)

// ToJSON serializes an extraction result. Row objects keep header column order.
func ToJSON(result models.WorkbookResult, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
