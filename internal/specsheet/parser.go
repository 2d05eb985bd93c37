package specsheet

import (
	"strings"
)

// DefaultCategory holds rows that appear before any category line.
const DefaultCategory = "General"

// Row is one key/value specification.
type Row struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Category is a named group of rows, in input order.
type Category struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Sheet is a parsed specification, categories in input order.
type Sheet struct {
	Categories []Category `json:"categories"`
}

// Len returns the total number of rows.
func (s *Sheet) Len() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Rows)
	}
	return n
}

// Lookup returns the first value for key in any category, matching keys
// case-insensitively.
func (s *Sheet) Lookup(key string) (string, bool) {
	for _, c := range s.Categories {
		for _, r := range c.Rows {
			if strings.EqualFold(r.Key, key) {
				return r.Value, true
			}
		}
	}
	return "", false
}

// Parse reads specification text into a Sheet. It never fails; lines it
// cannot use are ignored.
func Parse(text string) *Sheet {
	sheet := &Sheet{}
	current := Category{Name: DefaultCategory}

	flush := func() {
		if len(current.Rows) > 0 {
			sheet.Categories = append(sheet.Categories, current)
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		// Rows are often indented under their heading.
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := splitRow(line)
		if !ok {
			name := strings.TrimSpace(strings.TrimRight(line, ":"))
			if name == "" {
				continue
			}
			flush()
			current = Category{Name: name}
			continue
		}
		if key == "" {
			continue
		}
		current.Rows = append(current.Rows, Row{Key: key, Value: value})
	}
	flush()

	return sheet
}

// splitRow splits at the earliest ':', '=' or tab. A trailing ':' with
// nothing after it marks a category heading, not a row.
func splitRow(line string) (key, value string, ok bool) {
	i := strings.IndexAny(line, ":=\t")
	if i < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if value == "" && line[i] == ':' {
		return "", "", false
	}
	return key, value, true
}
