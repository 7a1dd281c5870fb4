// Package notesync regenerates the markdown note bound to a remote task list.
//
// A note is bound to a list when it lives under the notes root and its path
// contains "[<listID>]". Each sync fetches the full task set and replaces the
// note's entire content with a freshly rendered table.
package notesync

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"clicknote/internal/output"
	"clicknote/internal/service"
)

// DateLayout matches the en-US locale date/time rendering.
const DateLayout = "1/2/2006, 3:04:05 PM"

// InvalidDate is rendered for a creation date that is not a number.
const InvalidDate = "Invalid Date"

// TaskLister fetches the tasks of a list.
type TaskLister interface {
	GetTasks(ctx context.Context, listID string) ([]service.Task, error)
}

// Store is the subset of the note store used by the synchronizer.
type Store interface {
	Find(match func(path string) bool) ([]string, error)
	Create(path, content string) error
	Replace(path, content string) error
}

// Result describes one sync run.
type Result struct {
	RunID   string
	ListID  string
	Path    string // note that was rewritten; empty when skipped
	Rows    int
	Skipped bool // no bound note was found
}

// Synchronizer rewrites list notes from remote tasks.
type Synchronizer struct {
	svc   TaskLister
	store Store

	// Root is the vault folder holding list notes.
	Root string
	// LegacyPriority renders every priority cell as the full label set.
	LegacyPriority bool
	// Location is used to render creation dates. Defaults to time.Local.
	Location *time.Location
	Logger   *slog.Logger
}

// New creates a Synchronizer for notes under root.
func New(svc TaskLister, store Store, root string) *Synchronizer {
	return &Synchronizer{
		svc:      svc,
		store:    store,
		Root:     strings.Trim(root, "/"),
		Location: time.Local,
		Logger:   slog.Default(),
	}
}

// Locate returns the note bound to listID. When several notes match, the
// first in path order wins.
func (s *Synchronizer) Locate(listID string) (string, bool, error) {
	token := "[" + listID + "]"
	prefix := ""
	if s.Root != "" {
		prefix = s.Root + "/"
	}
	matches, err := s.store.Find(func(p string) bool {
		return strings.HasPrefix(p, prefix) && strings.Contains(p, token)
	})
	if err != nil {
		return "", false, err
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	if len(matches) > 1 {
		s.logger().Warn("several notes are bound to the list", "list", listID, "using", matches[0], "count", len(matches))
	}
	return matches[0], true, nil
}

// Sync regenerates the note bound to listID. When no note is bound it does
// nothing and reports Skipped.
func (s *Synchronizer) Sync(ctx context.Context, listID string) (Result, error) {
	res := Result{RunID: ulid.Make().String(), ListID: listID}
	log := s.logger().With("run", res.RunID, "list", listID)

	notePath, ok, err := s.Locate(listID)
	if err != nil {
		return res, fmt.Errorf("locate note: %w", err)
	}
	if !ok {
		log.Info("could not find note to sync")
		res.Skipped = true
		return res, nil
	}

	tasks, err := s.svc.GetTasks(ctx, listID)
	if err != nil {
		return res, err
	}

	rows := BuildRows(tasks, s.location(), s.LegacyPriority)
	if err := s.store.Replace(notePath, output.RenderTable(output.TaskHeaders, rows)); err != nil {
		return res, fmt.Errorf("replace note: %w", err)
	}

	res.Path = notePath
	res.Rows = len(rows)
	log.Debug("synchronized note", "path", notePath, "rows", res.Rows)
	return res, nil
}

// NotePath returns the path a new note for the list would get.
func (s *Synchronizer) NotePath(listID, name string) string {
	file := fmt.Sprintf("%s [%s].md", strings.TrimSpace(name), listID)
	file = strings.TrimSpace(strings.ReplaceAll(file, "/", "-"))
	if s.Root == "" {
		return file
	}
	return path.Join(s.Root, file)
}

// CreateNote binds a new, empty note to listID unless one already exists.
// It returns the path of the bound note.
func (s *Synchronizer) CreateNote(listID, name string) (string, error) {
	if existing, ok, err := s.Locate(listID); err != nil {
		return "", err
	} else if ok {
		return existing, nil
	}
	p := s.NotePath(listID, name)
	if err := s.store.Create(p, ""); err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	return p, nil
}

// BuildRows maps tasks to table rows. order is the 1-based fetch position.
func BuildRows(tasks []service.Task, loc *time.Location, legacyPriority bool) []output.Row {
	rows := make([]output.Row, 0, len(tasks))
	for i, t := range tasks {
		assignees := t.Assignees
		if assignees == nil {
			assignees = []string{}
		}
		var priority any = t.Priority.String()
		if legacyPriority {
			priority = service.PriorityLabels
		}
		rows = append(rows, output.Row{
			"id":           t.ID,
			"order":        i + 1,
			"name":         t.Name,
			"status":       t.Status,
			"date_created": FormatDate(t.DateCreated, loc),
			"creator":      t.Creator,
			"assignees":    assignees,
			"priority":     priority,
		})
	}
	return rows
}

// maxDateMillis is the largest representable date offset, 100 million days
// either side of the epoch.
const maxDateMillis = 8.64e15

// FormatDate renders an epoch-milliseconds string in loc. An empty string
// counts as zero; anything non-numeric or beyond maxDateMillis renders as
// InvalidDate.
func FormatDate(ms string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	ms = strings.TrimSpace(ms)
	var n float64
	if ms != "" {
		var err error
		n, err = strconv.ParseFloat(ms, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) > maxDateMillis {
			return InvalidDate
		}
	}
	return time.UnixMilli(int64(n)).In(loc).Format(DateLayout)
}

func (s *Synchronizer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Synchronizer) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}
