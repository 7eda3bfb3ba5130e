// Package storage provides destinations for finished track files.
// It defines the Store interface (port) for hexagonal architecture and
// implementations for a local output directory and S3.
package storage

import (
	"context"
)

// Store defines the interface for publishing finished track files.
// Implementations provide a scratch directory where intermediate cuts
// are written, and a destination where published tracks end up.
type Store interface {
	// ScratchDir returns a directory where intermediate files may be
	// written before publication.
	ScratchDir() string

	// Publish makes the file at localPath available under name and
	// returns its final location: a filesystem path for local stores,
	// a URL for remote ones.
	Publish(ctx context.Context, localPath, name string) (location string, err error)

	// Cleanup removes the specified intermediate files.
	// It continues cleanup even if some files fail to delete.
	Cleanup(ctx context.Context, paths []string) error
}
