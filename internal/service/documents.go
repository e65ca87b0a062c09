package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/mcp-seo-headings/internal/source"
)

// errLimitReached stops a directory walk once enough files were collected
var errLimitReached = errors.New("file limit reached")

// ListDocuments lists supported document files below a directory inside the
// documents directory. An empty directory means the documents directory.
func (s *Service) ListDocuments(req ListDocumentsRequest) (*ListDocumentsResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.Root()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}
	if _, err := os.Stat(absDirectory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	files, err := s.findDocuments(absDirectory, req.Query, 0)
	if err != nil {
		return nil, err
	}

	return &ListDocumentsResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// findDocuments walks directory collecting supported files whose name
// contains query. A positive limit caps the number of files returned.
func (s *Service) findDocuments(directory, query string, limit int) ([]FileInfo, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	files := make([]FileInfo, 0)

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Continue walking even if we encounter an error with a specific entry
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		// Security check: skip anything a symlink takes outside the documents directory
		if within, err := s.pathValidator.Within(path); err != nil || !within {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != directory && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !source.IsSupportedFile(d.Name()) {
			return nil
		}
		if query != "" && !strings.Contains(strings.ToLower(d.Name()), query) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}
		if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         d.Name(),
			Format:       source.FormatForPath(path),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})

		if limit > 0 && len(files) >= limit {
			return errLimitReached
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return files, nil
}
