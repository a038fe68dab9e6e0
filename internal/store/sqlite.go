package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/hmmcount/internal/hmm"
	"github.com/rcliao/hmmcount/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// newID returns a ULID; ids sort in creation order.
func (s *SQLiteStore) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		corpus      TEXT,
		n           INTEGER NOT NULL,
		tokens      INTEGER NOT NULL DEFAULT 0,
		sentences   INTEGER NOT NULL DEFAULT 0,
		rare        INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name);

	CREATE TABLE IF NOT EXISTS ngram_counts (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		k           INTEGER NOT NULL,
		tags        TEXT NOT NULL,
		count       REAL NOT NULL,
		PRIMARY KEY (snapshot_id, k, tags)
	);

	CREATE TABLE IF NOT EXISTS emission_counts (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		tag         TEXT NOT NULL,
		word        TEXT NOT NULL,
		count       REAL NOT NULL,
		PRIMARY KEY (snapshot_id, tag, word)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, p SaveParams) (*model.Snapshot, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("snapshot name is required")
	}
	if p.Counts == nil {
		return nil, fmt.Errorf("snapshot %q has no counts", p.Name)
	}

	now := time.Now().UTC()
	id := s.newID(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, corpus, n, tokens, sentences, rare, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Name, p.Corpus, p.Counts.N, p.Stats.Tokens, p.Stats.Sentences, p.Rare,
		now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	gramStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ngram_counts (snapshot_id, k, tags, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer gramStmt.Close()
	for i, table := range p.Counts.NGrams {
		for key, count := range table {
			if _, err := gramStmt.ExecContext(ctx, id, i+1, string(key), count); err != nil {
				return nil, fmt.Errorf("insert %d-gram: %w", i+1, err)
			}
		}
	}

	emStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO emission_counts (snapshot_id, tag, word, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer emStmt.Close()
	for e, count := range p.Counts.Emissions {
		if _, err := emStmt.ExecContext(ctx, id, e.Tag, e.Word, count); err != nil {
			return nil, fmt.Errorf("insert emission: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Snapshot{
		ID:        id,
		Name:      p.Name,
		Corpus:    p.Corpus,
		Order:     p.Counts.N,
		Tokens:    p.Stats.Tokens,
		Sentences: p.Stats.Sentences,
		Rare:      p.Rare,
		CreatedAt: now.Truncate(time.Second),
	}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, ref string) (*model.Snapshot, *hmm.Counts, error) {
	snap, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	c, err := hmm.New(snap.Order)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot %s: %w", snap.ID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT k, tags, count FROM ngram_counts WHERE snapshot_id = ?`, snap.ID)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var k int
		var tags string
		var count float64
		if err := rows.Scan(&k, &tags, &count); err != nil {
			rows.Close()
			return nil, nil, err
		}
		if k < 1 || k > len(c.NGrams) {
			rows.Close()
			return nil, nil, fmt.Errorf("snapshot %s: %d-gram row in a %d-gram model", snap.ID, k, c.N)
		}
		c.NGrams[k-1][model.TagKey(tags)] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT tag, word, count FROM emission_counts WHERE snapshot_id = ?`, snap.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e model.Emission
		var count float64
		if err := rows.Scan(&e.Tag, &e.Word, &count); err != nil {
			return nil, nil, err
		}
		c.Emissions[e] = count
		c.Tags[e.Tag] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return snap, c, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Snapshot, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, name, corpus, n, tokens, sentences, rare, created_at FROM snapshots`
	var args []interface{}
	if p.Name != "" {
		query += ` WHERE name = ?`
		args = append(args, p.Name)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []model.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (s *SQLiteStore) Rm(ctx context.Context, ref string) error {
	snap, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, snap.ID)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// resolve finds a snapshot by exact id, falling back to the latest one
// with that name.
func (s *SQLiteStore) resolve(ctx context.Context, ref string) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, corpus, n, tokens, sentences, rare, created_at
		 FROM snapshots WHERE id = ? OR name = ?
		 ORDER BY (id = ?) DESC, id DESC LIMIT 1`, ref, ref, ref)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner) (model.Snapshot, error) {
	var snap model.Snapshot
	var corpusName sql.NullString
	var createdAt string

	err := row.Scan(&snap.ID, &snap.Name, &corpusName, &snap.Order,
		&snap.Tokens, &snap.Sentences, &snap.Rare, &createdAt)
	if err != nil {
		return snap, err
	}

	snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if corpusName.Valid {
		snap.Corpus = corpusName.String
	}
	return snap, nil
}
