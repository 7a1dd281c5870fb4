// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"clicknote/internal/credentials"
	"clicknote/internal/service"
)

// FixedDateCreated is the creation date given to tasks made by the fake.
const FixedDateCreated = "1700000000000"

// CreateCall records one CreateTask call.
type CreateCall struct {
	ListID  string
	Request service.TaskCreationRequest
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu         sync.RWMutex
	user       service.User
	teams      []service.Team
	spaces     map[string][]service.Space  // teamID -> spaces
	folders    map[string][]service.Folder // spaceID -> folders
	folderless map[string][]service.List   // spaceID -> lists
	lists      map[string][]service.List   // folderID -> lists
	members    map[string][]service.Member // listID -> members
	tasks      map[string][]service.Task   // listID -> tasks
	created    []CreateCall
	taskCalls  map[string]int

	// Creds receives the token on a successful GetToken.
	Creds credentials.Provider

	// Error injection for testing
	GetUserErr    error
	GetTeamsErr   error
	GetSpacesErr  error
	GetFoldersErr error
	GetListsErr   error
	GetMembersErr error
	GetTasksErr   map[string]error // listID -> error
	CreateTaskErr error
	GetTokenErr   error

	// CreateTaskAppErr makes CreateTask answer with an application error body.
	CreateTaskAppErr   string
	CreateTaskAppECode string
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		user:        service.User{ID: 1, Username: "tester", Email: "tester@example.com"},
		spaces:      make(map[string][]service.Space),
		folders:     make(map[string][]service.Folder),
		folderless:  make(map[string][]service.List),
		lists:       make(map[string][]service.List),
		members:     make(map[string][]service.Member),
		tasks:       make(map[string][]service.Task),
		taskCalls:   make(map[string]int),
		GetTasksErr: make(map[string]error),
	}
}

// SetUser sets the authorized user.
func (f *FakeService) SetUser(u service.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = u
}

// AddTeam adds a team.
func (f *FakeService) AddTeam(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams = append(f.teams, service.Team{ID: id, Name: name})
}

// AddSpace adds a space to a team.
func (f *FakeService) AddSpace(teamID, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spaces[teamID] = append(f.spaces[teamID], service.Space{ID: id, Name: name})
}

// AddFolder adds a folder to a space.
func (f *FakeService) AddFolder(spaceID, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders[spaceID] = append(f.folders[spaceID], service.Folder{ID: id, Name: name})
}

// AddFolderlessList adds a list directly to a space.
func (f *FakeService) AddFolderlessList(spaceID, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folderless[spaceID] = append(f.folderless[spaceID], service.List{ID: id, Name: name})
	f.ensureListLocked(id)
}

// AddList adds a list to a folder.
func (f *FakeService) AddList(folderID, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[folderID] = append(f.lists[folderID], service.List{ID: id, Name: name})
	f.ensureListLocked(id)
}

// AddMember adds a member to a list.
func (f *FakeService) AddMember(listID string, m service.Member) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[listID] = append(f.members[listID], m)
}

// AddTask appends a task to a list, creating the list if needed.
func (f *FakeService) AddTask(listID string, t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], t)
}

// Created returns the recorded CreateTask calls.
func (f *FakeService) Created() []CreateCall {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]CreateCall, len(f.created))
	copy(out, f.created)
	return out
}

// TaskCalls returns how many times GetTasks was called for listID.
func (f *FakeService) TaskCalls(listID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.taskCalls[listID]
}

func (f *FakeService) ensureListLocked(id string) {
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// GetAuthorizedUser implements service.Service.
func (f *FakeService) GetAuthorizedUser(ctx context.Context) (service.User, error) {
	if f.GetUserErr != nil {
		return service.User{}, f.GetUserErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, nil
}

// GetTeams implements service.Service.
func (f *FakeService) GetTeams(ctx context.Context) ([]service.Team, error) {
	if f.GetTeamsErr != nil {
		return nil, f.GetTeamsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Team{}, f.teams...), nil
}

// GetSpaces implements service.Service.
func (f *FakeService) GetSpaces(ctx context.Context, teamID string) ([]service.Space, error) {
	if f.GetSpacesErr != nil {
		return nil, f.GetSpacesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Space{}, f.spaces[teamID]...), nil
}

// GetFolders implements service.Service.
func (f *FakeService) GetFolders(ctx context.Context, spaceID string) ([]service.Folder, error) {
	if f.GetFoldersErr != nil {
		return nil, f.GetFoldersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Folder{}, f.folders[spaceID]...), nil
}

// GetFolderlessList implements service.Service.
func (f *FakeService) GetFolderlessList(ctx context.Context, spaceID string) ([]service.List, error) {
	if f.GetListsErr != nil {
		return nil, f.GetListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.List{}, f.folderless[spaceID]...), nil
}

// GetList implements service.Service.
func (f *FakeService) GetList(ctx context.Context, folderID string) ([]service.List, error) {
	if f.GetListsErr != nil {
		return nil, f.GetListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.List{}, f.lists[folderID]...), nil
}

// GetListMembers implements service.Service.
func (f *FakeService) GetListMembers(ctx context.Context, listID string) ([]service.Member, error) {
	if f.GetMembersErr != nil {
		return nil, f.GetMembersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Member{}, f.members[listID]...), nil
}

// GetTasks implements service.Service. Unknown lists yield service.ErrNotFound.
func (f *FakeService) GetTasks(ctx context.Context, listID string) ([]service.Task, error) {
	f.mu.Lock()
	f.taskCalls[listID]++
	f.mu.Unlock()

	if err, ok := f.GetTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	return append([]service.Task{}, tasks...), nil
}

// CreateTask implements service.Service. The new task is appended to the
// list so that a following GetTasks sees it.
func (f *FakeService) CreateTask(ctx context.Context, listID string, req service.TaskCreationRequest) (service.CreatedTask, error) {
	if f.CreateTaskErr != nil {
		return service.CreatedTask{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, CreateCall{ListID: listID, Request: req})
	if f.CreateTaskAppErr != "" {
		return service.CreatedTask{Err: f.CreateTaskAppErr, ECode: f.CreateTaskAppECode}, nil
	}

	id := fmt.Sprintf("task-%d", len(f.created))
	url := "https://app.clickup.com/t/" + id
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:          id,
		Name:        req.Name,
		Status:      "to do",
		DateCreated: FixedDateCreated,
		Creator:     f.user.Username,
		Assignees:   []string{},
		Priority:    req.Priority,
		URL:         url,
	})
	return service.CreatedTask{ID: id, Name: req.Name, URL: url}, nil
}

// GetToken implements service.Service. The token is "token-" + code.
func (f *FakeService) GetToken(ctx context.Context, code, clientID, clientSecret string) (string, error) {
	if code == "" {
		return service.MissingCode, &service.AuthExchangeError{Err: service.ErrMissingCode}
	}
	if f.GetTokenErr != nil {
		return "", &service.AuthExchangeError{Err: f.GetTokenErr}
	}
	token := "token-" + code
	if f.Creds != nil {
		if err := f.Creds.SetToken(token); err != nil {
			return "", &service.AuthExchangeError{Err: err}
		}
	}
	return token, nil
}
