package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLocalStore(t *testing.T) {
	t.Run("creates output directory if not exists", func(t *testing.T) {
		outputDir := filepath.Join(t.TempDir(), "tracks")

		store, err := NewLocalStore(outputDir)
		if err != nil {
			t.Fatalf("NewLocalStore() error = %v", err)
		}
		defer func() { _ = os.RemoveAll(store.ScratchDir()) }()

		if store.OutputDir() != outputDir {
			t.Errorf("OutputDir() = %v, want %v", store.OutputDir(), outputDir)
		}

		info, err := os.Stat(outputDir)
		if err != nil {
			t.Fatalf("directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("provides a scratch directory", func(t *testing.T) {
		store, err := NewLocalStore(filepath.Join(t.TempDir(), "tracks"))
		if err != nil {
			t.Fatalf("NewLocalStore() error = %v", err)
		}
		defer func() { _ = os.RemoveAll(store.ScratchDir()) }()

		info, err := os.Stat(store.ScratchDir())
		if err != nil {
			t.Fatalf("scratch directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})
}

func TestLocalStore_Publish(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("copies file into output directory", func(t *testing.T) {
		src := filepath.Join(store.ScratchDir(), "cut.mp3")
		if err := os.WriteFile(src, []byte("track data"), 0o644); err != nil {
			t.Fatalf("write source file: %v", err)
		}

		location, err := store.Publish(ctx, src, "01 - Opening Track.mp3")
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		want := filepath.Join(store.OutputDir(), "01 - Opening Track.mp3")
		if location != want {
			t.Errorf("location = %v, want %v", location, want)
		}

		content, err := os.ReadFile(location)
		if err != nil {
			t.Fatalf("failed to read published file: %v", err)
		}
		if string(content) != "track data" {
			t.Errorf("got %q, want %q", string(content), "track data")
		}
	})

	t.Run("returns error for missing source", func(t *testing.T) {
		_, err := store.Publish(ctx, "/non/existent/file", "02 - Track.mp3")
		if err == nil {
			t.Error("expected error for missing source file")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Publish(ctx, "/some/path", "03 - Track.mp3")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLocalStore_Cleanup(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("removes files", func(t *testing.T) {
		var paths []string
		for i := 0; i < 3; i++ {
			p := filepath.Join(store.ScratchDir(), "cleanup_"+string(rune('a'+i)))
			if err := os.WriteFile(p, []byte("data"), 0o644); err != nil {
				t.Fatalf("write file: %v", err)
			}
			paths = append(paths, p)
		}

		if err := store.Cleanup(ctx, paths); err != nil {
			t.Fatalf("Cleanup() error = %v", err)
		}

		for _, p := range paths {
			if _, err := os.Stat(p); !os.IsNotExist(err) {
				t.Errorf("file %s still exists", p)
			}
		}
	})

	t.Run("ignores non-existent files", func(t *testing.T) {
		if err := store.Cleanup(ctx, []string{"/non/existent/file"}); err != nil {
			t.Errorf("Cleanup() should ignore non-existent files, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.Cleanup(ctx, []string{"/some/path"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func setupTestStore(t *testing.T) *LocalStore {
	t.Helper()

	store, err := NewLocalStore(filepath.Join(t.TempDir(), "tracks"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(store.ScratchDir()) })
	return store
}
