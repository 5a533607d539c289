package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/lenient/pkg/core"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "config.json")
		content := []byte("{\n  \"a\": 1\n}\n")

		if err := writeFileAtomic(filename, content, 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		// Verify existence
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			t.Fatal("File was not created")
		}

		// Verify content
		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("Expected content %q, got %q", content, got)
		}
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "config.json")

		// Initial write
		if err := os.WriteFile(filename, []byte("{}"), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		// Overwrite
		newContent := []byte("[]")
		if err := writeFileAtomic(filename, newContent, 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		// Verify content
		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(got) != string(newContent) {
			t.Errorf("Expected content '[]', got '%s'", string(got))
		}
	})

	t.Run("Respects Permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "secret.json")

		// Write with specific permissions (e.g. 0600 - rw-------)
		// Note: Windows permissions are limited, but check anyway.
		if err := writeFileAtomic(filename, []byte("secret"), 0600); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		info, err := os.Stat(filename)
		if err != nil {
			t.Fatal(err)
		}

		// On Windows, 0600 might be 0666 because of how Go handles it,
		// but let's check it's not simply ignored if we were on *nix.
		// For robustness, we mostly care that it writes successfully.
		t.Logf("File permissions: %v", info.Mode())
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "missing_folder", "config.json")

		// Should fail because atomic helper assumes dir exists (or create temp fails)
		err := writeFileAtomic(filename, []byte("fail"), 0644)
		if err == nil {
			t.Error("Expected error when directory is missing, got nil")
		}
	})
}

func TestAtomicWriter(t *testing.T) {
	t.Run("Commits On Close", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "a.json")
		if err := os.WriteFile(filename, []byte("old"), 0644); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}

		w := &atomicWriter{filename: filename, perm: 0644}
		if _, err := io.WriteString(w, "new"); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "old" {
			t.Errorf("Destination changed before Close: %q", got)
		}

		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		got, _ = os.ReadFile(filename)
		if string(got) != "new" {
			t.Errorf("Expected 'new', got %q", got)
		}

		entries, _ := os.ReadDir(tmpDir)
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("Temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("Rejects Use After Close", func(t *testing.T) {
		w := &atomicWriter{filename: filepath.Join(t.TempDir(), "a.json"), perm: 0644}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if _, err := w.Write([]byte("x")); !errors.Is(err, core.ErrStreamClosed) {
			t.Errorf("Expected ErrStreamClosed, got %v", err)
		}
		if err := w.Close(); !errors.Is(err, core.ErrStreamClosed) {
			t.Errorf("Expected ErrStreamClosed on second Close, got %v", err)
		}
	})
}
