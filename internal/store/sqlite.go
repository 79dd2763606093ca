package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"resumeaudit/internal/store/migrations"
	"resumeaudit/internal/types"
)

// SQLiteStore keeps entries in a single SQLite database file
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens path and applies the embedded migrations
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry                Entry
		resumeJSON           string
		biasScore, biasCount sql.NullInt64
		created, updated     int64
	)
	if err := row.Scan(&entry.Slot, &entry.ID, &entry.UserID, &resumeJSON, &biasScore, &biasCount, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(resumeJSON), &entry.Resume); err != nil {
		return nil, fmt.Errorf("decode resume in slot %s: %w", entry.Slot, err)
	}
	if biasScore.Valid {
		entry.BiasScore = intPtr(int(biasScore.Int64))
	}
	if biasCount.Valid {
		entry.BiasIssues = intPtr(int(biasCount.Int64))
	}
	entry.CreatedAt = fromMillis(created)
	entry.UpdatedAt = fromMillis(updated)
	return &entry, nil
}

const selectEntry = `SELECT slot, id, user_id, resume_json, bias_score, bias_issues, created_at, updated_at FROM resumes`

func (s *SQLiteStore) Get(ctx context.Context, slot string) (*Entry, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	entry, err := scanEntry(s.db.QueryRowContext(ctx, selectEntry+` WHERE slot = ?`, slot))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %s: %w", slot, err)
	}
	return entry, nil
}

func (s *SQLiteStore) Save(ctx context.Context, slot string, r types.ResumeRecord) (*Entry, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := scanEntry(tx.QueryRowContext(ctx, selectEntry+` WHERE slot = ?`, slot))
	if errors.Is(err, sql.ErrNoRows) {
		existing, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}

	entry, err := prepareSave(slot, r, existing, s.now().UTC())
	if err != nil {
		return nil, err
	}
	resumeJSON, err := json.Marshal(entry.Resume)
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO resumes (slot, id, user_id, resume_json, bias_score, bias_issues, created_at, updated_at)
VALUES (?, ?, ?, ?, NULL, NULL, ?, ?)
ON CONFLICT (slot) DO UPDATE SET
    resume_json = excluded.resume_json,
    bias_score = NULL,
    bias_issues = NULL,
    updated_at = excluded.updated_at`,
		entry.Slot, entry.ID, entry.UserID, string(resumeJSON), toMillis(entry.CreatedAt), toMillis(entry.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("save slot %s: %w", slot, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	return entry, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntry+` ORDER BY CASE slot WHEN 'public' THEN 0 WHEN 'A' THEN 1 ELSE 2 END`)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, slot string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) RecordBias(ctx context.Context, slot string, score, issues int) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE resumes SET bias_score = ?, bias_issues = ?, updated_at = ? WHERE slot = ?`,
		score, issues, toMillis(s.now()), slot)
	if err != nil {
		return fmt.Errorf("record bias for slot %s: %w", slot, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
