// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// MissingCode is returned by GetToken when no authorization code was supplied.
// No request is made in that case.
const MissingCode = "MISSING_CODE"

// Service defines the remote task API consumed by the sync and creation flows.
// All ClickUp API calls go through this interface.
// Commands never build HTTP requests directly.
type Service interface {
	// GetAuthorizedUser returns the user the stored token belongs to.
	GetAuthorizedUser(ctx context.Context) (User, error)

	// GetTeams returns the workspaces visible to the user.
	GetTeams(ctx context.Context) ([]Team, error)

	// GetSpaces returns the spaces of a team.
	GetSpaces(ctx context.Context, teamID string) ([]Space, error)

	// GetFolders returns the folders of a space.
	GetFolders(ctx context.Context, spaceID string) ([]Folder, error)

	// GetFolderlessList returns the lists that live directly in a space.
	GetFolderlessList(ctx context.Context, spaceID string) ([]List, error)

	// GetList returns the lists of a folder.
	GetList(ctx context.Context, folderID string) ([]List, error)

	// GetListMembers returns the users with access to a list.
	GetListMembers(ctx context.Context, listID string) ([]Member, error)

	// GetTasks returns the full current task set of a list in API order.
	GetTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a task in a list. Transport and decode failures are
	// returned as errors; an application-level failure is reported in
	// CreatedTask.Err and must be checked by the caller.
	// Not idempotent: two calls create two tasks.
	CreateTask(ctx context.Context, listID string, req TaskCreationRequest) (CreatedTask, error)

	// GetToken exchanges a one-time authorization code for a bearer token and
	// stores it. An empty code yields MissingCode and an AuthExchangeError
	// wrapping ErrMissingCode, without a network call.
	GetToken(ctx context.Context, code, clientID, clientSecret string) (string, error)
}
