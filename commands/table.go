package commands

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// table is a list of records formatted for display on the console.
type table struct {
	header  []string
	records [][]string
}

func makeTable(header []string, records [][]string) (*table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	for i, record := range records {
		if len(record) > len(header) {
			return nil, fmt.Errorf("record %v has more fields than the header (%v)", i+1, len(record))
		}
	}

	return &table{
		header:  header,
		records: records,
	}, nil
}

// print writes the table as left-aligned columns separated by two spaces, omitting trailing
// whitespace.
func (t *table) print(w io.Writer) {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = utf8.RuneCountInString(h)
	}

	for _, record := range t.records {
		for i, v := range record {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(fields []string) {
		var b strings.Builder
		for i := range t.header {
			v := ""
			if i < len(fields) {
				v = fields[i]
			}

			if i > 0 {
				b.WriteString("  ")
			}

			b.WriteString(v)
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v)))
		}

		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	line(t.header)
	for _, record := range t.records {
		line(record)
	}
}
