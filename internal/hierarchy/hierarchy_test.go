package hierarchy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clicknote/internal/hierarchy"
	"clicknote/internal/testutil"
)

func seededService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTeam("t1", "Acme")
	svc.AddTeam("t2", "Home")
	svc.AddSpace("t1", "s1", "Engineering")
	svc.AddSpace("t1", "s2", "Sales")
	svc.AddSpace("t2", "s3", "Chores")
	svc.AddFolderlessList("s1", "l0", "Inbox")
	svc.AddFolder("s1", "f1", "Backend")
	svc.AddList("f1", "l1", "Sprint 1")
	svc.AddList("f1", "l2", "Sprint 2")
	svc.AddFolder("s3", "f2", "House")
	svc.AddList("f2", "l3", "Groceries")
	return svc
}

func TestWalk(t *testing.T) {
	tree, err := hierarchy.Walk(context.Background(), seededService(), 3)
	require.NoError(t, err)

	require.Len(t, tree.Teams, 2)
	assert.Equal(t, "Acme", tree.Teams[0].Name)
	assert.Equal(t, "Home", tree.Teams[1].Name)

	require.Len(t, tree.Teams[0].Spaces, 2)
	eng := tree.Teams[0].Spaces[0]
	assert.Equal(t, "Engineering", eng.Name)
	require.Len(t, eng.Lists, 1)
	assert.Equal(t, "Inbox", eng.Lists[0].Name)
	require.Len(t, eng.Folders, 1)
	require.Len(t, eng.Folders[0].Lists, 2)
	assert.Equal(t, "l1", eng.Folders[0].Lists[0].ID)
	assert.Equal(t, "l2", eng.Folders[0].Lists[1].ID)

	assert.Empty(t, tree.Teams[0].Spaces[1].Lists)
	assert.Empty(t, tree.Teams[0].Spaces[1].Folders)
}

func TestTree_ListsAndFindList(t *testing.T) {
	tree, err := hierarchy.Walk(context.Background(), seededService(), 0)
	require.NoError(t, err)

	var ids []string
	for _, lp := range tree.Lists() {
		ids = append(ids, lp.List.ID)
	}
	assert.Equal(t, []string{"l0", "l1", "l2", "l3"}, ids)

	lp, ok := tree.FindList("l3")
	require.True(t, ok)
	assert.Equal(t, "Groceries", lp.List.Name)
	assert.Equal(t, "Home", lp.Team)
	assert.Equal(t, "Chores", lp.Space)
	assert.Equal(t, "House", lp.Folder)

	_, ok = tree.FindList("missing")
	assert.False(t, ok)
}

func TestWalk_Error(t *testing.T) {
	tests := []struct {
		name   string
		inject func(*testutil.FakeService, error)
	}{
		{"teams", func(s *testutil.FakeService, err error) { s.GetTeamsErr = err }},
		{"spaces", func(s *testutil.FakeService, err error) { s.GetSpacesErr = err }},
		{"folders", func(s *testutil.FakeService, err error) { s.GetFoldersErr = err }},
		{"lists", func(s *testutil.FakeService, err error) { s.GetListsErr = err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seededService()
			boom := errors.New("boom")
			tt.inject(svc, boom)

			tree, err := hierarchy.Walk(context.Background(), svc, 2)
			assert.ErrorIs(t, err, boom)
			assert.Nil(t, tree)
		})
	}
}
