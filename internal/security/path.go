package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPath is returned when no path is given
	ErrEmptyPath = errors.New("path cannot be empty")
	// ErrOutsideDirectory is returned when a path escapes the documents directory
	ErrOutsideDirectory = errors.New("path is outside the documents directory")
)

// PathValidator confines file access to a documents directory
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator rooted at dir. The directory does not
// have to exist yet; until it does, paths are not restricted.
func NewPathValidator(dir string) (*PathValidator, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("documents directory cannot be empty")
	}

	return &PathValidator{root: dir}, nil
}

// Root returns the documents directory the validator was created with
func (v *PathValidator) Root() string {
	return v.root
}

func (v *PathValidator) rootExists() bool {
	_, err := os.Stat(v.root)
	return !os.IsNotExist(err)
}

// Resolve turns a user supplied path into an absolute path inside the
// documents directory. Relative paths are taken relative to the directory
// and NUL bytes are stripped before resolution.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := v.Validate(absPath); err != nil {
		return "", err
	}

	return absPath, nil
}

// Validate checks that path lies inside the documents directory
func (v *PathValidator) Validate(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	within, err := v.Within(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}

	return nil
}

// Within reports whether path, and the file a symlink at path points to,
// both lie inside the documents directory
func (v *PathValidator) Within(path string) (bool, error) {
	if !v.rootExists() {
		return true, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absRoot, err := filepath.Abs(v.root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve documents directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanRoot := filepath.Clean(absRoot)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}

	realRoot := cleanRoot
	if resolved, err := filepath.EvalSymlinks(cleanRoot); err == nil {
		realRoot = resolved
	}

	inside := func(p string) bool {
		return isUnder(p, cleanRoot) || isUnder(p, realRoot)
	}

	return inside(cleanPath) && inside(realPath), nil
}

func isUnder(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}

// ValidateDirectory checks that dir is inside the documents directory and,
// if it exists, is a directory
func (v *PathValidator) ValidateDirectory(dir string) error {
	if err := v.Validate(dir); err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}

	return nil
}
