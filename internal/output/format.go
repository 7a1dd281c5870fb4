// Package output provides formatters for CLI output and the markdown task table.
package output

import (
	"fmt"
	"io"
	"strings"

	"clicknote/internal/service"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"
)

// FormatTask formats a task line.
// Format: "{N:>4}  {NAME}  [{STATUS}]" followed by "  ({PRIORITY})" when set.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s  [%s]", num, normalizeTitle(task.Name), task.Status)
	if p := task.Priority.String(); p != "" {
		fmt.Fprintf(w, "  (%s)", p)
	}
	fmt.Fprintln(w)
}

// FormatSectionHeader formats a header framed by separator lines.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, normalizeTitle(title))
	fmt.Fprintln(w, SectionSeparator)
}

// FormatEntry formats an "{ID}  {NAME}" line at the given depth (two spaces per level).
// A non-empty marker such as "[default]" is appended.
func FormatEntry(w io.Writer, depth int, id, name, marker string) {
	line := strings.Repeat("  ", depth) + id + "  " + normalizeTitle(name)
	if marker != "" {
		line += " " + marker
	}
	fmt.Fprintln(w, line)
}

// FormatMember formats a list member line.
func FormatMember(w io.Writer, m service.Member) {
	fmt.Fprintf(w, "%d  %s", m.ID, m.Username)
	if m.Email != "" {
		fmt.Fprintf(w, " <%s>", m.Email)
	}
	fmt.Fprintln(w)
}

// normalizeTitle normalizes a name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
