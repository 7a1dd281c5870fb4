package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSelectionNotFound is returned when the selected text is not in the note.
var ErrSelectionNotFound = errors.New("selection not found in note")

// NoteSelection is a span of text inside a note. It implements the editor
// used by the task creation flow.
type NoteSelection struct {
	vault  *Vault
	path   string
	text   string
	offset int
}

// Select locates the first occurrence of text in the note at p.
// An empty text yields an empty selection.
func (v *Vault) Select(p, text string) (*NoteSelection, error) {
	content, err := v.Read(p)
	if err != nil {
		return nil, err
	}
	sel := &NoteSelection{vault: v, path: p, text: text}
	if text == "" {
		return sel, nil
	}
	i := strings.Index(content, text)
	if i < 0 {
		return nil, fmt.Errorf("%s: %w", p, ErrSelectionNotFound)
	}
	sel.offset = i
	return sel, nil
}

// Path returns the note path.
func (s *NoteSelection) Path() string { return s.path }

// Selection returns the selected text.
func (s *NoteSelection) Selection() string { return s.text }

// InsertAfterSelection splices text right after the selection and rewrites
// the note. The note is re-read first; if the selection moved, its first
// occurrence is used.
func (s *NoteSelection) InsertAfterSelection(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := s.vault.Read(s.path)
	if err != nil {
		return err
	}

	at := s.offset
	if !strings.HasPrefix(content[min(at, len(content)):], s.text) {
		at = strings.Index(content, s.text)
		if at < 0 {
			return fmt.Errorf("%s: %w", s.path, ErrSelectionNotFound)
		}
		s.offset = at
	}
	end := at + len(s.text)
	return s.vault.Replace(s.path, content[:end]+text+content[end:])
}
