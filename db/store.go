// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrNotFound = errors.New("count not found")

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// CountRun is one stored count.
type CountRun struct {
	ID               string
	Label            string
	Seats            int
	Seed             uint64
	LastSeatShortcut bool
	Quota            int64
	TotalBallots     int64
	State            string
	Rounds           int
	InputsHash       string
	CreatedAt        time.Time
}

// Store reads and writes count runs and their result snapshots. Queries are
// written with ? placeholders and rebound for PostgreSQL.
type Store struct {
	db     *sql.DB
	dbType string
}

func NewStore(db *sql.DB, dbType string) *Store {
	return &Store{db: db, dbType: dbType}
}

func (s *Store) rebind(query string) string {
	if s.dbType != TypePostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// InsertRun stores a run and its snapshot payload in one transaction.
func (s *Store) InsertRun(ctx context.Context, run CountRun, payload []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := run.CreatedAt.UTC().Format(timeLayout)
	shortcut := 0
	if run.LastSeatShortcut {
		shortcut = 1
	}

	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO count_run (id, label, seats, seed, last_seat_shortcut, quota, total_ballots,
		                       state, rounds, inputs_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), run.ID, run.Label, run.Seats, strconv.FormatUint(run.Seed, 10), shortcut, run.Quota,
		run.TotalBallots, run.State, run.Rounds, run.InputsHash, created)
	if err != nil {
		return fmt.Errorf("failed to insert count run: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO result_snapshot (count_id, computed_at, payload)
		VALUES (?, ?, ?)
	`), run.ID, created, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert result snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit count run: %w", err)
	}
	return nil
}

const runColumns = `id, label, seats, seed, last_seat_shortcut, quota, total_ballots,
	state, rounds, inputs_hash, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (CountRun, error) {
	var (
		run      CountRun
		seed     string
		shortcut int
		created  string
	)
	err := row.Scan(&run.ID, &run.Label, &run.Seats, &seed, &shortcut, &run.Quota,
		&run.TotalBallots, &run.State, &run.Rounds, &run.InputsHash, &created)
	if err != nil {
		return CountRun{}, err
	}
	run.Seed, err = strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return CountRun{}, fmt.Errorf("bad stored seed %q: %w", seed, err)
	}
	run.LastSeatShortcut = shortcut != 0
	run.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return CountRun{}, fmt.Errorf("bad stored timestamp %q: %w", created, err)
	}
	return run, nil
}

// GetRun returns the run with the given id, or ErrNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (CountRun, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+runColumns+` FROM count_run WHERE id = ?`), id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return CountRun{}, ErrNotFound
	}
	if err != nil {
		return CountRun{}, fmt.Errorf("failed to query count run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]CountRun, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+runColumns+`
		FROM count_run
		ORDER BY created_at DESC, id
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query count runs: %w", err)
	}
	defer rows.Close()

	runs := []CountRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan count run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate count runs: %w", err)
	}
	return runs, nil
}

// GetSnapshot returns the stored result payload of a run, or ErrNotFound.
func (s *Store) GetSnapshot(ctx context.Context, id string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT payload FROM result_snapshot WHERE count_id = ?`), id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query result snapshot: %w", err)
	}
	return []byte(payload), nil
}

// DeleteRun removes a run and its snapshot, or returns ErrNotFound.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM result_snapshot WHERE count_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete result snapshot: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM count_run WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete count run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete count run: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
