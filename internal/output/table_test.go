package output_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"clicknote/internal/output"
	"clicknote/internal/testutil"
)

// parseTable returns the header cell count and the number of body rows of
// the first GFM table found in src.
func parseTable(t *testing.T, src string) (columns, rows int) {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader([]byte(src)))

	tables := 0
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case east.KindTable:
			tables++
		case east.KindTableHeader:
			columns = n.ChildCount()
		case east.KindTableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, tables, "expected exactly one table in:\n%s", src)
	return columns, rows
}

func sampleRows() []output.Row {
	return []output.Row{
		{
			"order":        1,
			"name":         "Buy milk",
			"status":       "to do",
			"date_created": "11/14/2023, 10:13:20 PM",
			"creator":      "ann",
			"assignees":    []string{"ann", "bob"},
			"priority":     "High",
		},
		{
			"order":     2,
			"name":      "Walk dog",
			"status":    "done",
			"creator":   "bob",
			"assignees": []string{},
			"priority":  []string{"Low", "Medium", "High", "Critical"},
		},
	}
}

func TestRenderTable_Golden(t *testing.T) {
	testutil.GoldenString(t, "task_table", output.RenderTable(output.TaskHeaders, sampleRows()))
}

func TestRenderTable_Shape(t *testing.T) {
	got := output.RenderTable(output.TaskHeaders, sampleRows())
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "| Order | Name | Status | Date Created | Creator | Assignees | Priority |", lines[0])
	assert.Equal(t, strings.Count(lines[1], "---"), len(output.TaskHeaders))
	assert.True(t, strings.HasPrefix(lines[2], "| 1 | Buy milk |"))
	assert.True(t, strings.HasPrefix(lines[3], "| 2 | Walk dog |"))

	columns, rows := parseTable(t, got)
	assert.Equal(t, len(output.TaskHeaders), columns)
	assert.Equal(t, 2, rows)
}

func TestRenderTable_Empty(t *testing.T) {
	got := output.RenderTable([]string{"A", "B"}, nil)
	assert.Equal(t, "| A | B |\n| --- | --- |\n", got)

	columns, rows := parseTable(t, got)
	assert.Equal(t, 2, columns)
	assert.Zero(t, rows)
}

func TestRenderTable_KeepsInputOrder(t *testing.T) {
	var rows []output.Row
	for i := 1; i <= 25; i++ {
		rows = append(rows, output.Row{"order": i})
	}
	got := output.RenderTable([]string{"Order"}, rows)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	require.Len(t, lines, 27)
	assert.Equal(t, "| 1 |", lines[2])
	assert.Equal(t, "| 25 |", lines[26])

	_, parsed := parseTable(t, got)
	assert.Equal(t, 25, parsed)
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Order", "order"},
		{"Date Created", "date_created"},
		{"Assignees", "assignees"},
		{"Last Date Edited", "last_date edited"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, output.KeyFor(tt.header))
		})
	}
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", output.FormatCell(nil))
	assert.Equal(t, "42", output.FormatCell(42))
	assert.Equal(t, "true", output.FormatCell(true))
	assert.Equal(t, "a, b, c", output.FormatCell([]string{"a", "b", "c"}))
	assert.Equal(t, "1, 2", output.FormatCell([]any{1, "2"}))
	assert.Equal(t, "x", output.FormatCell([1]string{"x"}))
	assert.Equal(t, "", output.FormatCell([]string{}))
}

func TestRenderTable_MissingKeyIsEmpty(t *testing.T) {
	got := output.RenderTable([]string{"Name", "Creator"}, []output.Row{{"name": "solo"}})
	assert.Equal(t, "| Name | Creator |\n| --- | --- |\n| solo |  |\n", got)
}
