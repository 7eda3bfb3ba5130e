package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements the Store interface using local disk.
// Published tracks land in a configurable output directory.
type LocalStore struct {
	outputDir  string
	scratchDir string
}

// NewLocalStore creates a new LocalStore instance.
// The outputDir parameter specifies where published tracks are written;
// if empty, "tracks" under the working directory is used. Both the
// output and scratch directories are created if they don't exist.
func NewLocalStore(outputDir string) (*LocalStore, error) {
	if outputDir == "" {
		outputDir = "tracks"
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	scratchDir, err := os.MkdirTemp("", "vinylsplit_*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	return &LocalStore{outputDir: outputDir, scratchDir: scratchDir}, nil
}

// OutputDir returns the output directory path.
func (s *LocalStore) OutputDir() string {
	return s.outputDir
}

// ScratchDir returns the scratch directory path.
func (s *LocalStore) ScratchDir() string {
	return s.scratchDir
}

// Publish copies the file at localPath into the output directory under
// name and returns the destination path. A copy is used instead of a
// rename so the scratch directory may live on a different filesystem.
func (s *LocalStore) Publish(ctx context.Context, localPath, name string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	src, err := os.Open(localPath) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return "", fmt.Errorf("open track file: %w", err)
	}
	defer func() { _ = src.Close() }()

	destPath := filepath.Join(s.outputDir, name)
	dest, err := os.Create(destPath) // #nosec G304 - name is sanitized by the caller
	if err != nil {
		return "", fmt.Errorf("create published file: %w", err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		_ = dest.Close()
		_ = os.Remove(destPath)
		return "", fmt.Errorf("write published file: %w", err)
	}

	if err := dest.Close(); err != nil {
		_ = os.Remove(destPath)
		return "", fmt.Errorf("close published file: %w", err)
	}

	return destPath, nil
}

// Cleanup removes the specified intermediate files.
// It continues cleanup even if some files fail to delete,
// returning the first error encountered.
func (s *LocalStore) Cleanup(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove intermediate file %s: %w", p, err)
			}
		}
	}
	return firstErr
}

// Verify interface implementation at compile time.
var _ Store = (*LocalStore)(nil)
