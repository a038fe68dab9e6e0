// Package store persists count snapshots and the SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/hmmcount/internal/corpus"
	"github.com/rcliao/hmmcount/internal/hmm"
	"github.com/rcliao/hmmcount/internal/model"
)

// ErrNotFound is returned when no snapshot matches a reference.
var ErrNotFound = errors.New("snapshot not found")

// SaveParams holds parameters for storing a snapshot.
type SaveParams struct {
	Name   string
	Corpus string
	Counts *hmm.Counts
	Stats  corpus.Stats
	Rare   bool
}

// ListParams holds parameters for listing snapshots.
type ListParams struct {
	Name  string
	Limit int
}

// Store defines the snapshot storage interface.
type Store interface {
	// Save stores a full copy of the counts under a new snapshot id.
	Save(ctx context.Context, p SaveParams) (*model.Snapshot, error)

	// Load returns the snapshot whose id equals ref, or else the latest
	// snapshot named ref, together with its counts.
	Load(ctx context.Context, ref string) (*model.Snapshot, *hmm.Counts, error)

	// List lists snapshots, newest first.
	List(ctx context.Context, p ListParams) ([]model.Snapshot, error)

	// Rm deletes the snapshot ref resolves to.
	Rm(ctx context.Context, ref string) error

	// Close closes the store.
	Close() error
}
