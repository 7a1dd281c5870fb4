// Package taskflow turns a text selection into a remote task and links the
// selection to it.
package taskflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"clicknote/internal/config"
	"clicknote/internal/notesync"
	"clicknote/internal/service"
)

// DefaultDelay is the pause between task creation and splicing the link.
const DefaultDelay = 100 * time.Millisecond

// Editor is the document holding the selection.
type Editor interface {
	Selection() string
	InsertAfterSelection(ctx context.Context, text string) error
}

// Creator creates remote tasks.
type Creator interface {
	CreateTask(ctx context.Context, listID string, req service.TaskCreationRequest) (service.CreatedTask, error)
}

// Syncer regenerates the note of a list.
type Syncer interface {
	Sync(ctx context.Context, listID string) (notesync.Result, error)
}

// ListSource provides the destination list. A nil ref means none is chosen.
type ListSource interface {
	DefaultList() (*config.ListRef, error)
}

// FixedList is a ListSource that always returns the same list.
type FixedList config.ListRef

// DefaultList implements ListSource.
func (l FixedList) DefaultList() (*config.ListRef, error) {
	if l.ID == "" {
		return nil, nil
	}
	ref := config.ListRef(l)
	return &ref, nil
}

// Result describes a creation run.
type Result struct {
	RunID   string
	ListID  string
	Task    service.CreatedTask
	Link    string // text spliced after the selection
	Sync    notesync.Result
	Skipped bool   // empty selection or no destination list
	Reason  string // why it was skipped
}

// Flow creates tasks from selections.
type Flow struct {
	creator Creator
	syncer  Syncer
	lists   ListSource

	Delay  time.Duration
	Logger *slog.Logger
}

// New creates a Flow.
func New(creator Creator, syncer Syncer, lists ListSource) *Flow {
	return &Flow{
		creator: creator,
		syncer:  syncer,
		lists:   lists,
		Delay:   DefaultDelay,
		Logger:  slog.Default(),
	}
}

// LinkText returns the markdown spliced after a selection for a created task.
func LinkText(url string) string {
	return " [task](" + url + ")"
}

// CreateFromSelection creates a task named after the editor's selection in
// the destination list with priority High, links it after the selection and
// resyncs the list's note. An empty selection or a missing destination list
// is a no-op.
//
// An application error from the remote service is returned as
// *service.ApplicationError and nothing is spliced. A resync failure is
// returned together with the successful creation result.
func (f *Flow) CreateFromSelection(ctx context.Context, ed Editor) (Result, error) {
	res := Result{RunID: ulid.Make().String()}
	log := f.logger().With("run", res.RunID)

	selection := ed.Selection()
	if strings.TrimSpace(selection) == "" {
		res.Skipped, res.Reason = true, service.ErrEmptySelection.Error()
		log.Debug("nothing selected")
		return res, nil
	}

	list, err := f.lists.DefaultList()
	if err != nil {
		return res, fmt.Errorf("read default list: %w", err)
	}
	if list == nil {
		res.Skipped, res.Reason = true, service.ErrNoDefaultList.Error()
		log.Debug("no default list")
		return res, nil
	}
	res.ListID = list.ID
	log = log.With("list", list.ID)

	created, err := f.create(ctx, list.ID, service.TaskCreationRequest{
		Name:        selection,
		Description: "",
		Assignees:   []int64{},
		Priority:    service.PriorityHigh,
	})
	res.Task = created
	if err != nil {
		log.Error("task creation failed", "err", err)
		return res, err
	}
	log.Info("created task", "task", created.ID)

	if err := f.wait(ctx); err != nil {
		return res, err
	}

	link := LinkText(created.URL)
	if err := ed.InsertAfterSelection(ctx, link); err != nil {
		return res, fmt.Errorf("insert link: %w", err)
	}
	res.Link = link

	return f.resync(ctx, log, res)
}

// CreateInList creates a task from an explicit request and resyncs the
// list's note. Nothing is spliced.
func (f *Flow) CreateInList(ctx context.Context, listID string, req service.TaskCreationRequest) (Result, error) {
	res := Result{RunID: ulid.Make().String(), ListID: listID}
	log := f.logger().With("run", res.RunID, "list", listID)

	if req.Assignees == nil {
		req.Assignees = []int64{}
	}
	created, err := f.create(ctx, listID, req)
	res.Task = created
	if err != nil {
		log.Error("task creation failed", "err", err)
		return res, err
	}
	log.Info("created task", "task", created.ID)

	return f.resync(ctx, log, res)
}

func (f *Flow) create(ctx context.Context, listID string, req service.TaskCreationRequest) (service.CreatedTask, error) {
	created, err := f.creator.CreateTask(ctx, listID, req)
	if err != nil {
		return created, err
	}
	if appErr := created.Error(); appErr != nil {
		return created, appErr
	}
	return created, nil
}

func (f *Flow) resync(ctx context.Context, log *slog.Logger, res Result) (Result, error) {
	synced, err := f.syncer.Sync(ctx, res.ListID)
	res.Sync = synced
	if err != nil {
		log.Warn("resync failed", "err", err)
		return res, fmt.Errorf("resync list %s: %w", res.ListID, err)
	}
	return res, nil
}

func (f *Flow) wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (f *Flow) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}
