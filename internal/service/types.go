// Package service defines the backend-agnostic interface for task operations.
package service

// User is the authorized ClickUp user.
type User struct {
	ID       int64
	Username string
	Email    string
}

// Team is a ClickUp workspace.
type Team struct {
	ID   string
	Name string
}

// Space is a container below a team.
type Space struct {
	ID   string
	Name string
}

// Folder groups lists inside a space.
type Folder struct {
	ID   string
	Name string
}

// List is the leaf container of tasks.
type List struct {
	ID   string
	Name string
}

// Member is a user with access to a list.
type Member struct {
	ID       int64
	Username string
	Email    string
}

// Task represents a single remote task.
type Task struct {
	ID          string
	Name        string
	Status      string   // status label, e.g. "to do"
	DateCreated string   // epoch milliseconds as sent by the API
	Creator     string   // creator username
	Assignees   []string // assignee usernames in API order
	Priority    Priority
	URL         string
}

// TaskCreationRequest is the payload for CreateTask.
type TaskCreationRequest struct {
	Name        string
	Description string
	Assignees   []int64
	Priority    Priority
}

// CreatedTask is the decoded response of CreateTask.
// Err is non-empty when the service rejected the request.
type CreatedTask struct {
	ID    string
	Name  string
	URL   string
	Err   string
	ECode string
}

// Error returns the application-level failure carried by the response, or nil.
func (t CreatedTask) Error() error {
	if t.Err == "" {
		return nil
	}
	return &ApplicationError{Op: "create task", Message: t.Err, Code: t.ECode}
}
