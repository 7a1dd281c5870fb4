// Package hierarchy walks the Team -> Space -> Folder -> List tree.
//
// Calls on the same level are independent and run in parallel; the result
// keeps the order the API returned at every level.
package hierarchy

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"clicknote/internal/service"
)

// DefaultConcurrency bounds the number of in-flight requests.
const DefaultConcurrency = 4

// Source is the subset of service.Service needed for a walk.
type Source interface {
	GetTeams(ctx context.Context) ([]service.Team, error)
	GetSpaces(ctx context.Context, teamID string) ([]service.Space, error)
	GetFolders(ctx context.Context, spaceID string) ([]service.Folder, error)
	GetFolderlessList(ctx context.Context, spaceID string) ([]service.List, error)
	GetList(ctx context.Context, folderID string) ([]service.List, error)
}

// Tree is the full workspace hierarchy of a user.
type Tree struct {
	Teams []Team
}

// Team is a team with its spaces.
type Team struct {
	service.Team
	Spaces []Space
}

// Space is a space with its folderless lists and folders.
type Space struct {
	service.Space
	Lists   []service.List
	Folders []Folder
}

// Folder is a folder with its lists.
type Folder struct {
	service.Folder
	Lists []service.List
}

// ListPath is a list together with the names of its ancestors.
type ListPath struct {
	List   service.List
	Team   string
	Space  string
	Folder string // empty for folderless lists
}

// Walk fetches the whole hierarchy with at most maxConcurrency requests in
// flight. The first error cancels the remaining requests and is returned.
func Walk(ctx context.Context, src Source, maxConcurrency int) (*Tree, error) {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultConcurrency
	}
	newPool := func() *pool.ContextPool {
		return pool.New().
			WithMaxGoroutines(maxConcurrency).
			WithContext(ctx).
			WithCancelOnError().
			WithFirstError()
	}

	teams, err := src.GetTeams(ctx)
	if err != nil {
		return nil, err
	}
	tree := &Tree{Teams: make([]Team, len(teams))}
	for i, t := range teams {
		tree.Teams[i].Team = t
	}

	p := newPool()
	for i := range tree.Teams {
		team := &tree.Teams[i]
		p.Go(func(ctx context.Context) error {
			spaces, err := src.GetSpaces(ctx, team.ID)
			if err != nil {
				return err
			}
			team.Spaces = make([]Space, len(spaces))
			for j, s := range spaces {
				team.Spaces[j].Space = s
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	p = newPool()
	for i := range tree.Teams {
		for j := range tree.Teams[i].Spaces {
			space := &tree.Teams[i].Spaces[j]
			p.Go(func(ctx context.Context) error {
				lists, err := src.GetFolderlessList(ctx, space.ID)
				if err != nil {
					return err
				}
				space.Lists = lists
				return nil
			})
			p.Go(func(ctx context.Context) error {
				folders, err := src.GetFolders(ctx, space.ID)
				if err != nil {
					return err
				}
				space.Folders = make([]Folder, len(folders))
				for k, f := range folders {
					space.Folders[k].Folder = f
				}
				return nil
			})
		}
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	p = newPool()
	for i := range tree.Teams {
		for j := range tree.Teams[i].Spaces {
			for k := range tree.Teams[i].Spaces[j].Folders {
				folder := &tree.Teams[i].Spaces[j].Folders[k]
				p.Go(func(ctx context.Context) error {
					lists, err := src.GetList(ctx, folder.ID)
					if err != nil {
						return err
					}
					folder.Lists = lists
					return nil
				})
			}
		}
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return tree, nil
}

// Lists flattens the tree. Within a space, folderless lists come first.
func (t *Tree) Lists() []ListPath {
	var out []ListPath
	for _, team := range t.Teams {
		for _, space := range team.Spaces {
			for _, l := range space.Lists {
				out = append(out, ListPath{List: l, Team: team.Name, Space: space.Name})
			}
			for _, folder := range space.Folders {
				for _, l := range folder.Lists {
					out = append(out, ListPath{List: l, Team: team.Name, Space: space.Name, Folder: folder.Name})
				}
			}
		}
	}
	return out
}

// FindList returns the list with the given id.
func (t *Tree) FindList(id string) (ListPath, bool) {
	for _, lp := range t.Lists() {
		if lp.List.ID == id {
			return lp, true
		}
	}
	return ListPath{}, false
}
