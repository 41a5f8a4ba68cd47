package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
)

func newTestFileStorage(t *testing.T) (ImageFileStorage, string) {
	t.Helper()

	root := t.TempDir()
	storage, err := NewImageFileStorage(config.Media{Root: root, ImagesDir: "images"}, logger.NewLogger("test"))
	if err != nil {
		t.Fatalf("failed to create file storage: %v", err)
	}
	return storage, root
}

func TestImageFileStorage_CreatesImagesDir(t *testing.T) {
	_, root := newTestFileStorage(t)

	info, err := os.Stat(filepath.Join(root, "images"))
	if err != nil {
		t.Fatalf("expected images dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected images path to be a directory")
	}
}

func TestImageFileStorage_SaveAndRead(t *testing.T) {
	storage, root := newTestFileStorage(t)

	data := []byte("fake image bytes")
	path, err := storage.Save("abc123.jpg", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join("images", "abc123.jpg") {
		t.Errorf("expected path relative to media root, got %s", path)
	}

	saved, err := os.ReadFile(filepath.Join(root, path))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(saved) != string(data) {
		t.Errorf("saved bytes differ: got %q", saved)
	}
}

func TestImageFileStorage_SaveExistingIsNoop(t *testing.T) {
	storage, root := newTestFileStorage(t)

	original := []byte("original content")
	if _, err := storage.Save("abc123.jpg", original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a second save with the same name must not rewrite the file
	path, err := storage.Save("abc123.jpg", []byte("different content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := os.ReadFile(filepath.Join(root, path))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(saved) != string(original) {
		t.Errorf("expected original content preserved, got %q", saved)
	}
}

func TestImageFileStorage_Exists(t *testing.T) {
	storage, _ := newTestFileStorage(t)

	if storage.Exists("missing.jpg") {
		t.Error("expected Exists=false for missing file")
	}

	if _, err := storage.Save("present.jpg", []byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !storage.Exists("present.jpg") {
		t.Error("expected Exists=true after save")
	}
}

func TestImageFileStorage_RemoveMissingIsNotError(t *testing.T) {
	storage, _ := newTestFileStorage(t)

	if err := storage.Remove("missing.jpg"); err != nil {
		t.Fatalf("expected nil error removing missing file, got %v", err)
	}
}

func TestImageFileStorage_Remove(t *testing.T) {
	storage, _ := newTestFileStorage(t)

	if _, err := storage.Save("gone.jpg", []byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := storage.Remove("gone.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storage.Exists("gone.jpg") {
		t.Error("expected file removed")
	}
}
