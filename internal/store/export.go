package store

import (
	"context"
	"fmt"
	"io"

	"github.com/rcliao/hmmcount/internal/hmm"
	"github.com/rcliao/hmmcount/internal/model"
)

// Export writes the counts of snapshot ref to w in the counts file format.
func (s *SQLiteStore) Export(ctx context.Context, ref string, w io.Writer, orders ...int) (*model.Snapshot, error) {
	snap, c, err := s.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := c.Write(w, orders...); err != nil {
		return nil, fmt.Errorf("export %s: %w", snap.ID, err)
	}
	return snap, nil
}

// Import reads a counts file and stores it as a new snapshot named name.
func (s *SQLiteStore) Import(ctx context.Context, name, source string, r io.Reader) (*model.Snapshot, error) {
	c, err := hmm.ReadCounts(r)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return s.Save(ctx, SaveParams{
		Name:   name,
		Corpus: source,
		Counts: c,
	})
}
