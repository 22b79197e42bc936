package sheets

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single TSV line.
const maxLineSize = 1 << 20

// ParseTSV splits tab-separated text into trimmed rows. Carriage returns are
// removed and blank lines skipped. Quotes carry no meaning.
func ParseTSV(r io.Reader) ([][]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var rows [][]string
	for sc.Scan() {
		line := strings.ReplaceAll(sc.Text(), "\r", "")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
		}
		rows = append(rows, cells)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan tsv: %w", err)
	}
	return rows, nil
}
