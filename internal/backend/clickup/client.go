// Package clickup implements the service.Service interface using the ClickUp v2 API.
package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"clicknote/internal/config"
	"clicknote/internal/credentials"
	"clicknote/internal/service"
)

// maxTaskPages bounds task pagination against a server that never reports last_page.
const maxTaskPages = 1000

// Client implements service.Service on top of a Fetcher.
type Client struct {
	fetcher *Fetcher
	creds   credentials.Provider
	log     *slog.Logger
}

var _ service.Service = (*Client)(nil)

// New creates a ClickUp client from config. The HTTP client timeout is
// cfg.APITimeout; there is no other deadline.
func New(cfg *config.Config, creds credentials.Provider) *Client {
	httpClient := &http.Client{Timeout: cfg.APITimeout}
	return NewWithHTTPClient(cfg.BaseURL, httpClient, creds)
}

// NewWithHTTPClient creates a client with a custom base URL and HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, creds credentials.Provider) *Client {
	return &Client{
		fetcher: NewFetcher(baseURL, httpClient, creds),
		creds:   creds,
		log:     slog.Default(),
	}
}

// GetAuthorizedUser returns the user the token belongs to.
func (c *Client) GetAuthorizedUser(ctx context.Context) (service.User, error) {
	u, err := getField[userJSON](ctx, c, "get user", "user", "user")
	if err != nil {
		return service.User{}, err
	}
	return service.User{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// GetTeams returns the workspaces of the user.
func (c *Client) GetTeams(ctx context.Context) ([]service.Team, error) {
	teams, err := getField[[]idName](ctx, c, "get teams", "team", "teams")
	if err != nil {
		return nil, err
	}
	result := make([]service.Team, 0, len(teams))
	for _, t := range teams {
		result = append(result, service.Team{ID: t.ID, Name: t.Name})
	}
	return result, nil
}

// GetSpaces returns the spaces of a team.
func (c *Client) GetSpaces(ctx context.Context, teamID string) ([]service.Space, error) {
	spaces, err := getField[[]idName](ctx, c, "get spaces", "team/"+url.PathEscape(teamID)+"/space", "spaces")
	if err != nil {
		return nil, err
	}
	result := make([]service.Space, 0, len(spaces))
	for _, s := range spaces {
		result = append(result, service.Space{ID: s.ID, Name: s.Name})
	}
	return result, nil
}

// GetFolders returns the folders of a space.
func (c *Client) GetFolders(ctx context.Context, spaceID string) ([]service.Folder, error) {
	folders, err := getField[[]idName](ctx, c, "get folders", "space/"+url.PathEscape(spaceID)+"/folder", "folders")
	if err != nil {
		return nil, err
	}
	result := make([]service.Folder, 0, len(folders))
	for _, f := range folders {
		result = append(result, service.Folder{ID: f.ID, Name: f.Name})
	}
	return result, nil
}

// GetFolderlessList returns the lists stored directly in a space.
func (c *Client) GetFolderlessList(ctx context.Context, spaceID string) ([]service.List, error) {
	return c.lists(ctx, "get folderless lists", "space/"+url.PathEscape(spaceID)+"/list")
}

// GetList returns the lists of a folder.
func (c *Client) GetList(ctx context.Context, folderID string) ([]service.List, error) {
	return c.lists(ctx, "get lists", "folder/"+url.PathEscape(folderID)+"/list")
}

func (c *Client) lists(ctx context.Context, op, path string) ([]service.List, error) {
	lists, err := getField[[]idName](ctx, c, op, path, "lists")
	if err != nil {
		return nil, err
	}
	result := make([]service.List, 0, len(lists))
	for _, l := range lists {
		result = append(result, service.List{ID: l.ID, Name: l.Name})
	}
	return result, nil
}

// GetListMembers returns the users with access to a list.
func (c *Client) GetListMembers(ctx context.Context, listID string) ([]service.Member, error) {
	members, err := getField[[]userJSON](ctx, c, "get list members", "list/"+url.PathEscape(listID)+"/member", "members")
	if err != nil {
		return nil, err
	}
	result := make([]service.Member, 0, len(members))
	for _, m := range members {
		result = append(result, service.Member{ID: m.ID, Username: m.Username, Email: m.Email})
	}
	return result, nil
}

// GetTasks returns every task of a list, following pages until the API
// reports the last one.
func (c *Client) GetTasks(ctx context.Context, listID string) ([]service.Task, error) {
	const op = "get tasks"
	base := "list/" + url.PathEscape(listID) + "/task"

	var result []service.Task
	for page := 0; page < maxTaskPages; page++ {
		resp, body, err := c.get(ctx, op, base+"?page="+strconv.Itoa(page))
		if err != nil {
			return nil, err
		}
		tasks, err := decodeField[[]taskJSON](op, resp, body, "tasks")
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			result = append(result, t.toService())
		}

		var lastPage *bool
		if raw, ok := body["last_page"]; ok {
			_ = json.Unmarshal(raw, &lastPage)
		}
		if lastPage == nil || *lastPage || len(tasks) == 0 {
			break
		}
	}
	if result == nil {
		result = []service.Task{}
	}
	return result, nil
}

// CreateTask posts a new task. The response is returned as-is; an
// application-level failure is left in CreatedTask.Err for the caller.
func (c *Client) CreateTask(ctx context.Context, listID string, req service.TaskCreationRequest) (service.CreatedTask, error) {
	const op = "create task"

	payload := createTaskJSON{
		Name:        req.Name,
		Description: req.Description,
		Assignees:   req.Assignees,
	}
	if payload.Assignees == nil {
		payload.Assignees = []int64{}
	}
	if req.Priority != service.PriorityNone {
		p := int(req.Priority)
		payload.Priority = &p
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return service.CreatedTask{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.fetcher.Request(ctx, "list/"+url.PathEscape(listID)+"/task", RequestOptions{
		Method: http.MethodPost,
		Body:   data,
	})
	if err != nil {
		return service.CreatedTask{}, err
	}

	var created createdTaskJSON
	if err := resp.JSON(&created); err != nil {
		return service.CreatedTask{}, withOp(op, err)
	}
	return service.CreatedTask{
		ID:    created.ID,
		Name:  created.Name,
		URL:   created.URL,
		Err:   created.Err,
		ECode: created.ECode,
	}, nil
}

// GetToken exchanges an authorization code for a token and stores it.
// An empty code returns service.MissingCode together with an
// AuthExchangeError, without contacting the remote service.
func (c *Client) GetToken(ctx context.Context, code, clientID, clientSecret string) (string, error) {
	if code == "" {
		return service.MissingCode, &service.AuthExchangeError{Err: service.ErrMissingCode}
	}
	query := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {code},
	}.Encode()

	c.log.Debug("exchanging authorization code", "client_id", clientID)
	resp, err := c.fetcher.Request(ctx, "oauth/token?"+query, RequestOptions{Method: http.MethodPost})
	if err != nil {
		return "", &service.AuthExchangeError{Err: err}
	}

	var data tokenJSON
	if err := resp.JSON(&data); err != nil {
		return "", &service.AuthExchangeError{Err: withOp("get token", err)}
	}
	if data.Err != "" {
		return "", &service.AuthExchangeError{Err: &service.ApplicationError{
			Op: "get token", Message: data.Err, Code: data.ECode, Status: resp.StatusCode,
		}}
	}
	if data.AccessToken == "" {
		return "", &service.AuthExchangeError{Err: &service.RemoteError{
			Op: "get token", Field: "access_token", Status: resp.StatusCode,
		}}
	}
	if err := c.creds.SetToken(data.AccessToken); err != nil {
		return "", &service.AuthExchangeError{Err: err}
	}
	c.log.Debug("stored access token", "type", data.Type)
	return data.AccessToken, nil
}

// get issues a GET and decodes the body as a JSON object.
func (c *Client) get(ctx context.Context, op, path string) (*RawResponse, map[string]json.RawMessage, error) {
	resp, err := c.fetcher.Request(ctx, path, RequestOptions{})
	if err != nil {
		return nil, nil, err
	}
	var body map[string]json.RawMessage
	if err := resp.JSON(&body); err != nil {
		return nil, nil, withOp(op, err)
	}
	if appErr := applicationError(op, resp, body); appErr != nil {
		return nil, nil, appErr
	}
	return resp, body, nil
}

// getField fetches path and projects the named top-level field.
func getField[T any](ctx context.Context, c *Client, op, path, field string) (T, error) {
	resp, body, err := c.get(ctx, op, path)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeField[T](op, resp, body, field)
}

func decodeField[T any](op string, resp *RawResponse, body map[string]json.RawMessage, field string) (T, error) {
	var out T
	raw, ok := body[field]
	if !ok || string(raw) == "null" {
		return out, &service.RemoteError{Op: op, Field: field, Status: resp.StatusCode}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &service.RemoteError{Op: op, Field: field, Status: resp.StatusCode, Err: err}
	}
	return out, nil
}

// applicationError extracts {"err": ..., "ECODE": ...} from a decoded body.
func applicationError(op string, resp *RawResponse, body map[string]json.RawMessage) error {
	raw, ok := body["err"]
	if !ok {
		return nil
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil || msg == "" {
		return nil
	}
	var code string
	if rawCode, ok := body["ECODE"]; ok {
		_ = json.Unmarshal(rawCode, &code)
	}
	return &service.ApplicationError{Op: op, Message: msg, Code: code, Status: resp.StatusCode}
}

// withOp fills in the operation name of a RemoteError produced by RawResponse.JSON.
func withOp(op string, err error) error {
	var remoteErr *service.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Op == "" {
		remoteErr.Op = op
	}
	return err
}
