package store

import (
	"context"
	"database/sql"
	"fmt"
)

// BeginRun inserts a run in the running state.
// Uses ON CONFLICT(id) DO NOTHING so a retried write is harmless.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, command, workdir, cases_path, total, passed, status)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		toMillis(run.StartedAt),
		run.Command,
		run.Workdir,
		run.CasesPath,
		run.Total,
		StatusRunning,
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// WriteCaseResult inserts the result of one executed case.
//
// Note: The run referenced by RunID must exist (foreign key constraint).
func (s *Store) WriteCaseResult(ctx context.Context, cr CaseResult) error {
	var exitCode sql.NullInt64
	if cr.ExitCode != nil {
		exitCode = sql.NullInt64{Int64: int64(*cr.ExitCode), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO case_results
		(run_id, idx, status, exit_code, duration_ms, detail)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, idx) DO NOTHING
	`,
		cr.RunID,
		cr.Index,
		cr.Status,
		exitCode,
		cr.DurationMS,
		cr.Detail,
	)
	if err != nil {
		return fmt.Errorf("write case result: %w", err)
	}
	return nil
}

// FinishRun records the final counters and status of a run.
// Only FinishedAt, Passed, Status, and the failure fields of run are used.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	var (
		failedIndex sql.NullInt64
		kind        sql.NullString
		detail      sql.NullString
	)
	if run.FailedIndex > 0 {
		failedIndex = sql.NullInt64{Int64: int64(run.FailedIndex), Valid: true}
		kind = sql.NullString{String: run.FailureKind, Valid: true}
		detail = sql.NullString{String: run.FailureDetail, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, passed = ?, status = ?,
		    failed_index = ?, failure_kind = ?, failure_detail = ?
		WHERE id = ?
	`,
		toMillis(run.FinishedAt),
		run.Passed,
		run.Status,
		failedIndex,
		kind,
		detail,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", run.ID, ErrRunNotFound)
	}
	return nil
}
