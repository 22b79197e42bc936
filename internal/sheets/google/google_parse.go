package google

import (
	"encoding/json"
	"fmt"
	"strings"
)

var jsonUnmarshal = json.Unmarshal

// valuesToRows converts a values matrix (as returned by Sheets API) into
// trimmed string rows. Rows whose cells are all blank are skipped, matching
// the blank-line handling of the TSV export.
func valuesToRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := toStrings(v)
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if v == nil {
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
