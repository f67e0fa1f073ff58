// Package attachments copies files uploaded against a workflow step into a
// managed directory and hands back the path recorded in Attachment_Path.
package attachments

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
)

// Store keeps attachments under Root, one directory per record and step.
type Store struct {
	Root string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Root: dir}
}

// Expand resolves file paths and doublestar patterns ("reports/**/*.pdf")
// into a sorted, de-duplicated list of regular files. A pattern that
// matches nothing yields ErrNoFilesFound.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		found := false
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			found = true
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, pattern)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Put copies src into the store and returns its path relative to Root,
// using forward slashes so the value is portable between machines.
func (s *Store) Put(ctx context.Context, recordID, stepID int, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening attachment: %w", err)
	}
	defer in.Close()

	rel := filepath.Join(strconv.Itoa(recordID), strconv.Itoa(stepID), uuid.New().String()+"-"+filepath.Base(src))
	dst := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("creating attachment directory: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("creating attachment: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("copying attachment: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("closing attachment: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// Resolve turns a stored relative path back into a filesystem path.
func (s *Store) Resolve(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Remove deletes a stored attachment. A missing file is not an error.
func (s *Store) Remove(rel string) error {
	err := os.Remove(s.Resolve(rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
