package output

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// TaskHeaders are the column labels of a synchronized task table.
var TaskHeaders = []string{"Order", "Name", "Status", "Date Created", "Creator", "Assignees", "Priority"}

// Row is one table record, keyed by KeyFor(header).
type Row map[string]any

// KeyFor derives the row key for a header label: lowercase, first space
// replaced by an underscore. "Date Created" maps to "date_created"; labels
// with more than one space keep the later spaces.
func KeyFor(header string) string {
	return strings.Replace(strings.ToLower(header), " ", "_", 1)
}

// RenderTable renders rows as a markdown table: a header line, a separator
// line with one "---" per column, then one line per row in input order.
// Values are not escaped.
func RenderTable(headers []string, rows []Row) string {
	var b strings.Builder

	writeLine(&b, headers)

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeLine(&b, sep)

	cells := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			cells[i] = FormatCell(row[KeyFor(h)])
		}
		writeLine(&b, cells)
	}
	return b.String()
}

// FormatCell renders a single value: sequences are joined with ", ",
// anything else is converted to its string form. nil renders empty.
func FormatCell(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = cast.ToString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	return cast.ToString(v)
}

func writeLine(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
