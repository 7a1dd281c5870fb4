package notesync_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clicknote/internal/notesync"
	"clicknote/internal/service"
	"clicknote/internal/testutil"
	"clicknote/internal/vault"
)

// recordingStore wraps a vault and counts mutations.
type recordingStore struct {
	*vault.Vault
	creates  int
	replaces int
}

func (s *recordingStore) Create(p, content string) error {
	s.creates++
	return s.Vault.Create(p, content)
}

func (s *recordingStore) Replace(p, content string) error {
	s.replaces++
	return s.Vault.Replace(p, content)
}

func newSync(t *testing.T, svc *testutil.FakeService, files map[string]string) (*notesync.Synchronizer, *recordingStore) {
	t.Helper()
	store := &recordingStore{Vault: testutil.NewMemVault(t, files)}
	s := notesync.New(svc, store, "ClickUp")
	s.Location = time.UTC
	return s, store
}

func TestSync_RewritesBoundNote(t *testing.T) {
	svc := testutil.NewFakeService()
	for i := 1; i <= 3; i++ {
		svc.AddTask("123", service.Task{
			ID:          fmt.Sprintf("t%d", i),
			Name:        fmt.Sprintf("Task %d", i),
			Status:      "to do",
			DateCreated: "1700000000000",
			Creator:     "ann",
			Assignees:   []string{"ann", "bob"},
			Priority:    service.PriorityMedium,
		})
	}
	s, store := newSync(t, svc, map[string]string{
		"ClickUp/Groceries [123].md": "stale content",
		"ClickUp/Other [456].md":     "untouched",
	})

	res, err := s.Sync(context.Background(), "123")
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, "ClickUp/Groceries [123].md", res.Path)
	assert.Equal(t, 3, res.Rows)
	assert.NotEmpty(t, res.RunID)

	got, err := store.Read("ClickUp/Groceries [123].md")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| Order | Name | Status | Date Created | Creator | Assignees | Priority |", lines[0])
	assert.Equal(t, "| 1 | Task 1 | to do | 11/14/2023, 10:13:20 PM | ann | ann, bob | Medium |", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "| 2 | Task 2 |"))
	assert.True(t, strings.HasPrefix(lines[4], "| 3 | Task 3 |"))

	other, err := store.Read("ClickUp/Other [456].md")
	require.NoError(t, err)
	assert.Equal(t, "untouched", other)
	assert.Equal(t, 1, store.replaces)
}

func TestSync_NoNoteIsNoop(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("123", service.Task{ID: "t1", Name: "x"})
	s, store := newSync(t, svc, map[string]string{
		"Elsewhere/Groceries [123].md": "outside root",
		"ClickUp/Groceries [1234].md":  "different id",
	})

	res, err := s.Sync(context.Background(), "123")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, res.Path)
	assert.Zero(t, store.replaces)
	assert.Zero(t, store.creates)
	assert.Zero(t, svc.TaskCalls("123"))
}

func TestSync_MissingVaultDirIsNoop(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("123", service.Task{ID: "t1", Name: "x"})
	s := notesync.New(svc, vault.NewDir(filepath.Join(t.TempDir(), "missing")), "ClickUp")

	res, err := s.Sync(context.Background(), "123")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Zero(t, svc.TaskCalls("123"))
}

func TestSync_EmptyList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddFolderlessList("s1", "123", "Groceries")
	s, store := newSync(t, svc, map[string]string{"ClickUp/Groceries [123].md": "old"})

	res, err := s.Sync(context.Background(), "123")
	require.NoError(t, err)
	assert.Zero(t, res.Rows)

	got, err := store.Read("ClickUp/Groceries [123].md")
	require.NoError(t, err)
	assert.Equal(t, "| Order | Name | Status | Date Created | Creator | Assignees | Priority |\n"+
		"| --- | --- | --- | --- | --- | --- | --- |\n", got)
}

func TestSync_FetchErrorKeepsNote(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.GetTasksErr["123"] = &service.NetworkError{Op: "GET list/123/task", Err: errors.New("connection refused")}
	s, store := newSync(t, svc, map[string]string{"ClickUp/Groceries [123].md": "old"})

	_, err := s.Sync(context.Background(), "123")
	var netErr *service.NetworkError
	require.ErrorAs(t, err, &netErr)

	got, err := store.Read("ClickUp/Groceries [123].md")
	require.NoError(t, err)
	assert.Equal(t, "old", got)
	assert.Zero(t, store.replaces)
}

func TestSync_LegacyPriority(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", service.Task{ID: "a", Name: "A", Priority: service.PriorityLow, DateCreated: "0"})
	s, store := newSync(t, svc, map[string]string{"ClickUp/L [1].md": ""})
	s.LegacyPriority = true

	_, err := s.Sync(context.Background(), "1")
	require.NoError(t, err)

	got, err := store.Read("ClickUp/L [1].md")
	require.NoError(t, err)
	assert.Contains(t, got, "| Low, Medium, High, Critical |\n")
}

func TestSync_SeveralNotesUsesFirst(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", service.Task{ID: "a", Name: "A"})
	s, store := newSync(t, svc, map[string]string{
		"ClickUp/b [1].md": "b",
		"ClickUp/a [1].md": "a",
	})

	res, err := s.Sync(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "ClickUp/a [1].md", res.Path)

	b, err := store.Read("ClickUp/b [1].md")
	require.NoError(t, err)
	assert.Equal(t, "b", b)
}

func TestCreateNote(t *testing.T) {
	svc := testutil.NewFakeService()
	s, store := newSync(t, svc, nil)

	p, err := s.CreateNote("42", "Sprint / Q3")
	require.NoError(t, err)
	assert.Equal(t, "ClickUp/Sprint - Q3 [42].md", p)

	again, err := s.CreateNote("42", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.Equal(t, 1, store.creates)
}

func TestBuildRows(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Name: "A", Status: "open", DateCreated: "1700000000000", Creator: "ann", Priority: service.PriorityCritical},
		{ID: "b", Name: "B", Status: "done", DateCreated: "soon", Assignees: []string{"bob"}},
	}
	rows := notesync.BuildRows(tasks, time.UTC, false)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0]["order"])
	assert.Equal(t, 2, rows[1]["order"])
	assert.Equal(t, "Critical", rows[0]["priority"])
	assert.Equal(t, "", rows[1]["priority"])
	assert.Equal(t, []string{}, rows[0]["assignees"])
	assert.Equal(t, []string{"bob"}, rows[1]["assignees"])
	assert.Equal(t, notesync.InvalidDate, rows[1]["date_created"])
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "11/14/2023, 10:13:20 PM", notesync.FormatDate("1700000000000", time.UTC))
	assert.Equal(t, "1/1/1970, 12:00:00 AM", notesync.FormatDate("", time.UTC))
	assert.Equal(t, notesync.InvalidDate, notesync.FormatDate("abc", time.UTC))
	assert.Equal(t, notesync.InvalidDate, notesync.FormatDate("100000000000000000000", time.UTC))
	assert.Equal(t, notesync.InvalidDate, notesync.FormatDate("9000000000000000", time.UTC))
	assert.Equal(t, notesync.InvalidDate, notesync.FormatDate("-9000000000000000", time.UTC))
	assert.Equal(t, "9/13/275760, 12:00:00 AM", notesync.FormatDate("8640000000000000", time.UTC))

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "11/15/2023, 7:13:20 AM", notesync.FormatDate("1700000000000", tokyo))
}
