package filemgr

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

// 1x1 transparent PNG.
const onePxPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAAC0lEQVR4nGNgAAIAAAUAAXpeqz8AAAAASUVORK5CYII="

func withTempRoot(t *testing.T) {
	t.Helper()
	old := uploadRoot
	uploadRoot = t.TempDir()
	t.Cleanup(func() { uploadRoot = old })
}

func savedFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(uploadRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	return files
}

func TestSaveBase64ImageWritesOriginalAndThumb(t *testing.T) {
	withTempRoot(t)

	orig, thumb, err := SaveBase64Image(onePxPNG, EntityRecipe, 50)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if orig == "" || thumb == "" {
		t.Fatalf("expected both paths, got %q and %q", orig, thumb)
	}
	if !strings.HasSuffix(orig, ".png") {
		t.Fatalf("expected sniffed .png extension, got %q", orig)
	}
	if !strings.HasSuffix(thumb, ".jpg") {
		t.Fatalf("expected .jpg thumbnail, got %q", thumb)
	}
	if files := savedFiles(t); len(files) != 2 {
		t.Fatalf("expected 2 files on disk, got %v", files)
	}
}

func TestSaveBase64ImageStripsDataURI(t *testing.T) {
	withTempRoot(t)

	if _, _, err := SaveBase64Image("data:image/png;base64,"+onePxPNG, EntityUser, 50); err != nil {
		t.Fatalf("data-URI payload should be accepted: %v", err)
	}
}

func TestSaveBase64ImageRejectsGarbage(t *testing.T) {
	withTempRoot(t)

	for _, payload := range []string{"", "not base64!!", "aGVsbG8gd29ybGQ="} {
		_, _, err := SaveBase64Image(payload, EntityUser, 50)
		if !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("payload %q: expected ErrInvalidImage, got %v", payload, err)
		}
		if files := savedFiles(t); len(files) != 0 {
			t.Fatalf("payload %q: no files should be written, got %v", payload, files)
		}
	}
}
