package store

import (
	"context"
	"fmt"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string      `json:"db_path" yaml:"db_path"`
	DBSizeBytes   int64       `json:"db_size_bytes" yaml:"db_size_bytes"`
	Snapshots     int         `json:"snapshots" yaml:"snapshots"`
	NGramRows     int         `json:"ngram_rows" yaml:"ngram_rows"`
	EmissionRows  int         `json:"emission_rows" yaml:"emission_rows"`
	SnapshotNames []NameStats `json:"names" yaml:"names"`
}

// NameStats holds per-name snapshot counts.
type NameStats struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		table string
		dst   *int
	}{
		{"snapshots", &st.Snapshots},
		{"ngram_counts", &st.NGramRows},
		{"emission_counts", &st.EmissionRows},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COUNT(*) AS cnt
		FROM snapshots
		GROUP BY name ORDER BY cnt DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("count names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ns NameStats
		if err := rows.Scan(&ns.Name, &ns.Count); err != nil {
			return nil, fmt.Errorf("scan name stats: %w", err)
		}
		st.SnapshotNames = append(st.SnapshotNames, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan name stats: %w", err)
	}
	return st, nil
}
