package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `
	id, started_at, finished_at, command, workdir, cases_path,
	total, passed, status, failed_index, failure_kind, failure_detail`

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
//
// Returns an empty slice (not nil) if the store holds no runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT`+runColumns+`
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a run and its case rows in fixture order.
// Returns an error wrapping ErrRunNotFound if no run has the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, []CaseResult, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	cases, err := s.readCaseResults(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &run, cases, nil
}

func (s *Store) readCaseResults(ctx context.Context, runID string) ([]CaseResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, idx, status, exit_code, duration_ms, detail
		FROM case_results
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query case results: %w", err)
	}
	defer rows.Close()

	results := []CaseResult{}
	for rows.Next() {
		var (
			cr       CaseResult
			exitCode sql.NullInt64
		)
		if err := rows.Scan(&cr.RunID, &cr.Index, &cr.Status, &exitCode, &cr.DurationMS, &cr.Detail); err != nil {
			return nil, fmt.Errorf("scan case result: %w", err)
		}
		if exitCode.Valid {
			code := int(exitCode.Int64)
			cr.ExitCode = &code
		}
		results = append(results, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case results: %w", err)
	}
	return results, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run         Run
		startedAt   int64
		finishedAt  sql.NullInt64
		failedIndex sql.NullInt64
		kind        sql.NullString
		detail      sql.NullString
	)
	err := row.Scan(
		&run.ID, &startedAt, &finishedAt, &run.Command, &run.Workdir, &run.CasesPath,
		&run.Total, &run.Passed, &run.Status, &failedIndex, &kind, &detail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.StartedAt = fromMillis(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = fromMillis(finishedAt.Int64)
	}
	run.FailedIndex = int(failedIndex.Int64)
	run.FailureKind = kind.String
	run.FailureDetail = detail.String
	return run, nil
}
