package clickup

import (
	"strconv"

	"clicknote/internal/service"
)

// Wire shapes of the ClickUp v2 API. Only the fields this module reads are declared.

type idName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type userJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type taskJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status struct {
		Status string `json:"status"`
	} `json:"status"`
	DateCreated string `json:"date_created"`
	Creator     struct {
		Username string `json:"username"`
	} `json:"creator"`
	Assignees []struct {
		Username string `json:"username"`
	} `json:"assignees"`
	Priority *struct {
		ID       string `json:"id"`
		Priority string `json:"priority"`
	} `json:"priority"`
	URL string `json:"url"`
}

func (t taskJSON) toService() service.Task {
	assignees := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		assignees = append(assignees, a.Username)
	}
	var priority service.Priority
	if t.Priority != nil {
		if n, err := strconv.Atoi(t.Priority.ID); err == nil && service.Priority(n).String() != "" {
			priority = service.Priority(n)
		}
	}
	return service.Task{
		ID:          t.ID,
		Name:        t.Name,
		Status:      t.Status.Status,
		DateCreated: t.DateCreated,
		Creator:     t.Creator.Username,
		Assignees:   assignees,
		Priority:    priority,
		URL:         t.URL,
	}
}

type createTaskJSON struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Assignees   []int64 `json:"assignees"`
	Priority    *int    `json:"priority"`
}

type createdTaskJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Err   string `json:"err"`
	ECode string `json:"ECODE"`
}

type tokenJSON struct {
	AccessToken string `json:"access_token"`
	Type        string `json:"type"`
	Err         string `json:"err"`
	ECode       string `json:"ECODE"`
}
