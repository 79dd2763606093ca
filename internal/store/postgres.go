package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sony/gobreaker/v2"

	"resumeaudit/internal/config"
	apperrors "resumeaudit/internal/errors"
	"resumeaudit/internal/types"
)

// ErrUnavailable is returned while the database circuit breaker is open
var ErrUnavailable = errors.New("resume store unavailable")

const postgresSchema = `
CREATE TABLE IF NOT EXISTS resumes (
    slot TEXT PRIMARY KEY,
    id UUID NOT NULL,
    user_id TEXT NOT NULL,
    resume JSONB NOT NULL,
    bias_score INTEGER,
    bias_issues INTEGER,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps entries in PostgreSQL behind a circuit breaker
type PostgresStore struct {
	pool *pgxpool.Pool
	cb   *gobreaker.CircuitBreaker[any]
	now  func() time.Time
}

// OpenPostgres connects, verifies the connection and ensures the schema
func OpenPostgres(ctx context.Context, cfg config.StoreConfig, logger *apperrors.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{
		pool: pool,
		cb:   newStoreBreaker(cfg.CircuitBreaker, logger),
		now:  time.Now,
	}, nil
}

// newStoreBreaker returns nil when the breaker is disabled. Caller errors
// such as a missing slot do not count as failures.
func newStoreBreaker(cfg config.CircuitBreakerConfig, logger *apperrors.Logger) *gobreaker.CircuitBreaker[any] {
	if !cfg.Enabled {
		return nil
	}
	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "store-postgres",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrEmptyRecord) ||
				errors.Is(err, ErrInvalidSlot) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// guard runs fn through the breaker, reporting an open breaker as ErrUnavailable
func guard[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}
	res, err := cb.Execute(func() (any, error) { return fn() })
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

const pgSelectEntry = `SELECT slot, id::text, user_id, resume, bias_score, bias_issues, created_at, updated_at FROM resumes`

func scanPgEntry(row pgx.Row) (*Entry, error) {
	var (
		entry      Entry
		resumeJSON []byte
	)
	err := row.Scan(&entry.Slot, &entry.ID, &entry.UserID, &resumeJSON,
		&entry.BiasScore, &entry.BiasIssues, &entry.CreatedAt, &entry.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resumeJSON, &entry.Resume); err != nil {
		return nil, fmt.Errorf("decode resume in slot %s: %w", entry.Slot, err)
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	entry.UpdatedAt = entry.UpdatedAt.UTC()
	return &entry, nil
}

func (s *PostgresStore) Get(ctx context.Context, slot string) (*Entry, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	return guard(s.cb, func() (*Entry, error) {
		return scanPgEntry(s.pool.QueryRow(ctx, pgSelectEntry+` WHERE slot = $1`, slot))
	})
}

func (s *PostgresStore) Save(ctx context.Context, slot string, r types.ResumeRecord) (*Entry, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	return guard(s.cb, func() (*Entry, error) {
		var saved *Entry
		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			existing, err := scanPgEntry(tx.QueryRow(ctx, pgSelectEntry+` WHERE slot = $1 FOR UPDATE`, slot))
			if err != nil && !errors.Is(err, ErrNotFound) {
				return err
			}
			entry, err := prepareSave(slot, r, existing, s.now().UTC())
			if err != nil {
				return err
			}
			resumeJSON, err := json.Marshal(entry.Resume)
			if err != nil {
				return fmt.Errorf("encode resume: %w", err)
			}
			_, err = tx.Exec(ctx, `
INSERT INTO resumes (slot, id, user_id, resume, bias_score, bias_issues, created_at, updated_at)
VALUES ($1, $2, $3, $4, NULL, NULL, $5, $6)
ON CONFLICT (slot) DO UPDATE SET
    resume = EXCLUDED.resume,
    bias_score = NULL,
    bias_issues = NULL,
    updated_at = EXCLUDED.updated_at`,
				entry.Slot, entry.ID, entry.UserID, resumeJSON, entry.CreatedAt, entry.UpdatedAt)
			if err != nil {
				return fmt.Errorf("save slot %s: %w", slot, err)
			}
			saved = entry
			return nil
		})
		return saved, err
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	return guard(s.cb, func() ([]Entry, error) {
		rows, err := s.pool.Query(ctx, pgSelectEntry+` ORDER BY CASE slot WHEN 'public' THEN 0 WHEN 'A' THEN 1 ELSE 2 END`)
		if err != nil {
			return nil, fmt.Errorf("list resumes: %w", err)
		}
		defer rows.Close()

		entries := []Entry{}
		for rows.Next() {
			entry, err := scanPgEntry(rows)
			if err != nil {
				return nil, err
			}
			entries = append(entries, *entry)
		}
		return entries, rows.Err()
	})
}

func (s *PostgresStore) Delete(ctx context.Context, slot string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	_, err := guard(s.cb, func() (struct{}, error) {
		tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE slot = $1`, slot)
		if err != nil {
			return struct{}{}, fmt.Errorf("delete slot %s: %w", slot, err)
		}
		if tag.RowsAffected() == 0 {
			return struct{}{}, ErrNotFound
		}
		return struct{}{}, nil
	})
	return err
}

func (s *PostgresStore) RecordBias(ctx context.Context, slot string, score, issues int) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	_, err := guard(s.cb, func() (struct{}, error) {
		tag, err := s.pool.Exec(ctx,
			`UPDATE resumes SET bias_score = $1, bias_issues = $2, updated_at = $3 WHERE slot = $4`,
			score, issues, s.now().UTC(), slot)
		if err != nil {
			return struct{}{}, fmt.Errorf("record bias for slot %s: %w", slot, err)
		}
		if tag.RowsAffected() == 0 {
			return struct{}{}, ErrNotFound
		}
		return struct{}{}, nil
	})
	return err
}

// BreakerState reports the circuit breaker state for health checks
func (s *PostgresStore) BreakerState() string {
	if s.cb == nil {
		return "disabled"
	}
	return s.cb.State().String()
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
