// Package vault provides the local note store: a directory tree of markdown
// notes addressed by slash-separated paths relative to the vault root.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ErrExists is returned by Create when the note already exists.
var ErrExists = errors.New("note already exists")

// ErrNotExist is returned when a note does not exist.
var ErrNotExist = errors.New("note does not exist")

// Vault is a note store backed by an afero filesystem.
type Vault struct {
	fs afero.Fs
}

// New returns a vault rooted at the root of fsys.
func New(fsys afero.Fs) *Vault {
	return &Vault{fs: fsys}
}

// NewDir returns a vault rooted at dir on the OS filesystem.
func NewDir(dir string) *Vault {
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// clean turns a vault path into an absolute path on the underlying fs.
func clean(p string) string {
	return path.Clean("/" + strings.TrimPrefix(p, "/"))
}

// List returns the paths of all notes, sorted. Files and directories whose
// name starts with "." are skipped. A vault whose root does not exist yet is
// empty.
func (v *Vault) List() ([]string, error) {
	if _, err := v.fs.Stat("/"); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var paths []string
	err := afero.Walk(v.fs, "/", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if p != "/" && strings.HasPrefix(name, ".") {
			if info.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			paths = append(paths, strings.TrimPrefix(path.Clean("/"+toSlash(p)), "/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Find returns the sorted paths for which match returns true.
func (v *Vault) Find(match func(path string) bool) ([]string, error) {
	all, err := v.List()
	if err != nil {
		return nil, err
	}
	var found []string
	for _, p := range all {
		if match(p) {
			found = append(found, p)
		}
	}
	return found, nil
}

// Read returns the content of a note.
func (v *Vault) Read(p string) (string, error) {
	data, err := afero.ReadFile(v.fs, clean(p))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", p, ErrNotExist)
		}
		return "", fmt.Errorf("failed to read %s: %w", p, err)
	}
	return string(data), nil
}

// Delete removes a note.
func (v *Vault) Delete(p string) error {
	if err := v.fs.Remove(clean(p)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", p, ErrNotExist)
		}
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

// Create writes a new note, creating parent folders as needed.
// It fails with ErrExists if the note is already there.
func (v *Vault) Create(p, content string) error {
	name := clean(p)
	if err := v.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", p, err)
	}
	f, err := v.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", p, ErrExists)
		}
		return fmt.Errorf("failed to create %s: %w", p, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	return nil
}

// Replace sets the full content of a note by writing a temp file next to it
// and renaming it over the target. Readers see the old or the new content,
// never a missing note.
func (v *Vault) Replace(p, content string) error {
	name := clean(p)
	dir := path.Dir(name)
	if err := v.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", p, err)
	}
	tmp := path.Join(dir, ".clicknote-"+uuid.NewString()+".tmp")
	if err := afero.WriteFile(v.fs, tmp, []byte(content), 0o644); err != nil {
		_ = v.fs.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	if err := v.fs.Rename(tmp, name); err != nil {
		_ = v.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", p, err)
	}
	return nil
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
