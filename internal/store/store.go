// Package store handles SQLite persistence of stat snapshots.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/textlens/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for snapshot data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			char_count INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			sentence_count INTEGER NOT NULL,
			reading_time TEXT NOT NULL,
			exclude_spaces INTEGER NOT NULL,
			char_limit INTEGER,
			exceeds_limit INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot_letters (
			snapshot_id INTEGER NOT NULL,
			letter TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (snapshot_id, letter)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSnapshot stores derived counts and their letter distribution.
func (s *Store) InsertSnapshot(ctx context.Context, snap model.Snapshot, letters []model.SnapshotLetter) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var limit any
	if snap.CharLimit != nil {
		limit = *snap.CharLimit
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (created_at, source, char_count, word_count, sentence_count, reading_time, exclude_spaces, char_limit, exceeds_limit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.CreatedAt.UTC().Format(time.RFC3339Nano),
		snap.Source,
		snap.CharCount,
		snap.WordCount,
		snap.SentenceCount,
		snap.ReadingTime,
		boolToInt(snap.ExcludeSpaces),
		limit,
		boolToInt(snap.ExceedsLimit),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(letters) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO snapshot_letters (snapshot_id, letter, count) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, l := range letters {
			if _, err := stmt.ExecContext(ctx, id, l.Letter, l.Count); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSnapshots returns snapshots filtered by the history config, oldest first.
func (s *Store) ListSnapshots(ctx context.Context, cfg model.HistoryConfig) ([]model.Snapshot, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, created_at, source, char_count, word_count, sentence_count, reading_time, exclude_spaces, char_limit, exceeds_limit
		FROM snapshots
		WHERE %s
		ORDER BY created_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var createdAt string
		var exclude, exceeds int
		var limit sql.NullInt64
		if err := rows.Scan(&snap.ID, &createdAt, &snap.Source, &snap.CharCount, &snap.WordCount, &snap.SentenceCount, &snap.ReadingTime, &exclude, &limit, &exceeds); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		snap.CreatedAt = parsed
		snap.ExcludeSpaces = exclude != 0
		snap.ExceedsLimit = exceeds != 0
		if limit.Valid {
			v := int(limit.Int64)
			snap.CharLimit = &v
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}

// LetterTotals aggregates letter counts across snapshots, most frequent first.
func (s *Store) LetterTotals(ctx context.Context, snapshotIDs []int64) ([]model.SnapshotLetter, error) {
	if len(snapshotIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(snapshotIDs))
	args := make([]any, len(snapshotIDs))
	for i, id := range snapshotIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT letter, SUM(count) AS total
		FROM snapshot_letters
		WHERE snapshot_id IN (%s)
		GROUP BY letter
		ORDER BY total DESC, letter ASC`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SnapshotLetter
	for rows.Next() {
		var l model.SnapshotLetter
		if err := rows.Scan(&l.Letter, &l.Count); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
