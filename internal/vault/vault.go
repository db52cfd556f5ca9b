// Package vault is the narrow filesystem capability the sync core
// writes through: path-addressed reads, note and binary creation, folder
// creation, and trash-style removal. Backing it with afero keeps the
// real filesystem and the in-memory test double behind one type.
package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

type Vault struct {
	fs   afero.Fs
	root string
}

// New opens a vault rooted at dir on the real filesystem.
func New(dir string) *Vault {
	return &Vault{fs: afero.NewOsFs(), root: dir}
}

// NewWithFs opens a vault over an arbitrary filesystem, typically an
// in-memory one in tests.
func NewWithFs(fs afero.Fs, dir string) *Vault {
	return &Vault{fs: fs, root: dir}
}

func (v *Vault) path(rel string) string {
	return filepath.Join(v.root, filepath.FromSlash(rel))
}

// Exists reports whether a file is present at rel.
func (v *Vault) Exists(rel string) (bool, error) {
	ok, err := afero.Exists(v.fs, v.path(rel))
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", rel, err)
	}
	return ok, nil
}

// ReadNote returns the content of the note at rel.
func (v *Vault) ReadNote(rel string) (string, error) {
	data, err := afero.ReadFile(v.fs, v.path(rel))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

// WriteNote creates or replaces the note at rel.
func (v *Vault) WriteNote(rel, content string) error {
	if err := afero.WriteFile(v.fs, v.path(rel), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// WriteBinary creates or replaces a binary asset at rel.
func (v *Vault) WriteBinary(rel string, data []byte) error {
	if err := afero.WriteFile(v.fs, v.path(rel), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// CreateFolder makes rel and any missing parents. An already existing
// folder is fine: overlapping passes race on folder creation and both
// outcomes are valid.
func (v *Vault) CreateFolder(rel string) error {
	err := v.fs.MkdirAll(v.path(rel), 0o755)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("creating folder %s: %w", rel, err)
	}
	return nil
}

// TrashNote removes a single note.
func (v *Vault) TrashNote(rel string) error {
	if err := v.fs.Remove(v.path(rel)); err != nil {
		return fmt.Errorf("removing %s: %w", rel, err)
	}
	return nil
}

// TrashFolder removes a folder and everything under it.
func (v *Vault) TrashFolder(rel string) error {
	if err := v.fs.RemoveAll(v.path(rel)); err != nil {
		return fmt.Errorf("removing folder %s: %w", rel, err)
	}
	return nil
}

// Walk visits every entry under rel, reporting paths relative to the
// vault root with forward slashes.
func (v *Vault) Walk(rel string, fn func(rel string, isDir bool) error) error {
	return afero.Walk(v.fs, v.path(rel), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, relErr := filepath.Rel(v.root, p)
		if relErr != nil {
			return relErr
		}
		return fn(filepath.ToSlash(relPath), info.IsDir())
	})
}
