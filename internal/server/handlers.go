package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clicknote/internal/notesync"
	"clicknote/internal/output"
	"clicknote/internal/service"
	"clicknote/internal/taskflow"
)

const maxSelectionSize = 64 << 10 // 64KB

type taskJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	DateCreated string   `json:"date_created"`
	Creator     string   `json:"creator"`
	Assignees   []string `json:"assignees"`
	Priority    string   `json:"priority"`
	URL         string   `json:"url"`
}

type createRequest struct {
	Selection string `json:"selection"`
	ListID    string `json:"list_id"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.deps.Tasks.GetTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		assignees := t.Assignees
		if assignees == nil {
			assignees = []string{}
		}
		out = append(out, taskJSON{
			ID:          t.ID,
			Name:        t.Name,
			Status:      t.Status,
			DateCreated: t.DateCreated,
			Creator:     t.Creator,
			Assignees:   assignees,
			Priority:    t.Priority.String(),
			URL:         t.URL,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   out,
		"count":   len(out),
	})
}

func (s *Server) handleListTable(c *gin.Context) {
	tasks, err := s.deps.Tasks.GetTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	rows := notesync.BuildRows(tasks, s.deps.Location, s.deps.LegacyPriority)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"markdown": output.RenderTable(output.TaskHeaders, rows),
		"rows":     len(rows),
	})
}

func (s *Server) handleSync(c *gin.Context) {
	res, err := s.deps.Syncer.Sync(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"run_id":  res.RunID,
		"path":    res.Path,
		"rows":    res.Rows,
		"skipped": res.Skipped,
	})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if len(req.Selection) > maxSelectionSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "selection exceeds maximum size of 64KB",
		})
		return
	}

	var lists taskflow.ListSource = s.deps.Lists
	if id := strings.TrimSpace(req.ListID); id != "" {
		lists = taskflow.FixedList{ID: id}
	} else if lists == nil {
		lists = taskflow.FixedList{}
	}
	flow := taskflow.New(s.deps.Creator, s.deps.Syncer, lists)
	flow.Delay = s.deps.LinkDelay
	flow.Logger = s.log

	buf := taskflow.SelectAll(req.Selection)
	res, err := flow.CreateFromSelection(c.Request.Context(), buf)
	if err != nil && res.Task.ID == "" {
		s.writeError(c, err)
		return
	}

	body := gin.H{
		"success": true,
		"run_id":  res.RunID,
		"skipped": res.Skipped,
	}
	if res.Skipped {
		body["reason"] = res.Reason
		c.JSON(http.StatusOK, body)
		return
	}
	body["list_id"] = res.ListID
	body["task"] = gin.H{"id": res.Task.ID, "name": res.Task.Name, "url": res.Task.URL}
	body["link"] = res.Link
	body["text"] = buf.String()
	if err != nil {
		s.log.Warn("task created but follow-up failed", "run", res.RunID, "err", err)
		body["sync_error"] = err.Error()
	}
	c.JSON(http.StatusCreated, body)
}

// writeError maps the error taxonomy onto status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"success": false, "error": err.Error()}

	var (
		appErr    *service.ApplicationError
		remoteErr *service.RemoteError
		netErr    *service.NetworkError
	)
	switch {
	case service.IsAuthError(err):
		status = http.StatusUnauthorized
		body["auth"] = true
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &appErr), errors.As(err, &remoteErr), errors.As(err, &netErr):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.log.Warn("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, body)
}
