package sheetmd

import (
	"fmt"
	"regexp"

	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
)

type compiledFilter struct {
	key   *regexp.Regexp
	value *regexp.Regexp
}

type rowFilter []compiledFilter

func compileFilters(filters []models.KVFilter) (rowFilter, error) {
	out := make(rowFilter, 0, len(filters))
	for _, f := range filters {
		key, err := regexp.Compile(f.Key)
		if err != nil {
			return nil, fmt.Errorf("filter key %q: %w", f.Key, err)
		}
		value, err := regexp.Compile(f.Value)
		if err != nil {
			return nil, fmt.Errorf("filter value %q: %w", f.Value, err)
		}
		out = append(out, compiledFilter{key: key, value: value})
	}
	return out, nil
}

// match reports whether every filter is satisfied by some field of row.
func (rf rowFilter) match(row models.TableRow) bool {
	for _, f := range rf {
		if !f.matchAny(row) {
			return false
		}
	}
	return true
}

func (f compiledFilter) matchAny(row models.TableRow) bool {
	for _, field := range row {
		if f.key.MatchString(field.Name) && f.value.MatchString(field.Value) {
			return true
		}
	}
	return false
}
