package attachments

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/waypoint/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestPutCopiesFile(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "report.pdf")
	writeFile(t, src, "pdf bytes")

	s := New(t.TempDir())
	rel, err := s.Put(context.Background(), 1000, 5, src)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !strings.HasPrefix(rel, "1000/5/") || !strings.HasSuffix(rel, "-report.pdf") {
		t.Errorf("unexpected relative path %q", rel)
	}

	data, err := os.ReadFile(s.Resolve(rel))
	if err != nil {
		t.Fatalf("Failed to read stored attachment: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("stored content = %q", data)
	}

	second, err := s.Put(context.Background(), 1000, 5, src)
	if err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	if second == rel {
		t.Error("uploading the same file twice should not overwrite the first copy")
	}

	if err := s.Remove(rel); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Remove(rel); err != nil {
		t.Errorf("removing a missing attachment should not fail: %v", err)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "reports", "q1", "a.pdf"), "a")
	writeFile(t, filepath.Join(dir, "reports", "q2", "b.pdf"), "b")
	writeFile(t, filepath.Join(dir, "reports", "notes.txt"), "n")

	files, err := Expand([]string{
		filepath.Join(dir, "reports", "**", "*.pdf"),
		filepath.Join(dir, "reports", "q1", "a.pdf"),
	})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 unique files, got %v", files)
	}

	_, err = Expand([]string{filepath.Join(dir, "missing", "*.pdf")})
	if !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Errorf("expected ErrNoFilesFound, got %v", err)
	}
}
