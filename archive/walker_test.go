package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type zipEntry struct {
	name    string
	content string
}

func makeZip(t *testing.T, entries ...zipEntry) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "bundle.zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		if strings.HasSuffix(e.name, "/") {
			hdr := &zip.FileHeader{Name: e.name}
			hdr.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(hdr); err != nil {
				t.Fatalf("Failed to create directory %s: %v", e.name, err)
			}
			continue
		}
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return zipPath
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml")
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t,
		zipEntry{"forms/", ""},
		zipEntry{"forms/signup10.yaml", "ten"},
		zipEntry{"forms/signup2.yaml", "two"},
		zipEntry{"readme.txt", "readme"},
		zipEntry{"survey.yaml", "survey"},
	)

	t.Run("match in natural order", func(t *testing.T) {
		var visited []string
		err := Walk(zipPath, isYAML, func(archive, name string, data []byte) error {
			if archive != zipPath {
				t.Errorf("archive = %s, want %s", archive, zipPath)
			}
			visited = append(visited, name+"="+string(data))
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		want := "forms/signup2.yaml=two,forms/signup10.yaml=ten,survey.yaml=survey"
		if got := strings.Join(visited, ","); got != want {
			t.Errorf("visited %s, want %s", got, want)
		}
	})

	t.Run("nil match skips directories only", func(t *testing.T) {
		var visited int
		err := Walk(zipPath, nil, func(string, string, []byte) error {
			visited++
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if visited != 4 {
			t.Errorf("visited %d files, want 4", visited)
		}
	})

	t.Run("walkFn returns error", func(t *testing.T) {
		stopErr := errors.New("stop walking")
		var visited int
		err := Walk(zipPath, isYAML, func(string, string, []byte) error {
			visited++
			if visited == 2 {
				return stopErr
			}
			return nil
		})
		if !errors.Is(err, stopErr) {
			t.Errorf("Walk() error = %v, want %v", err, stopErr)
		}
		if visited != 2 {
			t.Errorf("visited %d files, want 2 (early termination)", visited)
		}
	})
}

func TestWalk_InvalidArchive(t *testing.T) {
	noop := func(string, string, []byte) error { return nil }

	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk(filepath.Join(t.TempDir(), "file.zip"), nil, noop); err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		if err := Walk(invalidZip, nil, noop); err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		zipPath := makeZip(t, zipEntry{"ok.yaml", "ok"}, zipEntry{"../evil.yaml", "evil"})
		var visited int
		err := Walk(zipPath, nil, func(string, string, []byte) error {
			visited++
			return nil
		})
		if err == nil {
			t.Error("Expected error for unsafe archive")
		}
		if visited != 0 {
			t.Errorf("nothing must be visited in unsafe archive, visited %d", visited)
		}
	})
}

func TestIsSafePath(t *testing.T) {
	tests := map[string]bool{
		"form.yaml":         true,
		"a/b/form.yaml":     true,
		"a/..b/form.yaml":   true,
		"/etc/passwd":       false,
		`\windows\form`:     false,
		"a/../../form.yaml": false,
		"..":                false,
	}
	for name, want := range tests {
		if got := isSafePath(name); got != want {
			t.Errorf("isSafePath(%q) = %v, want %v", name, got, want)
		}
	}
}
