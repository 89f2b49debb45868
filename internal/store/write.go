package store

import (
	"context"
	"fmt"
)

// RecordProgram inserts a program record and returns its seq and
// whether a new row was inserted.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: re-recording the
// same handle id returns the existing row's seq with inserted=false.
// A name collision on a DIFFERENT id is a real error (names are minted
// unique; a collision means two registries were mixed) and surfaces as
// a constraint violation.
func (s *Store) RecordProgram(ctx context.Context, rec Record) (seq int64, inserted bool, err error) {
	paramsJSON, err := marshalParams(rec.Params)
	if err != nil {
		return 0, false, fmt.Errorf("record program: %w", err)
	}

	// Transaction makes the insert-or-select atomic.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("record program: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO programs
		(id, name, kernel_hash, params, body)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Name,
		rec.KernelHash,
		paramsJSON,
		string(rec.Body),
	)
	if err != nil {
		return 0, false, fmt.Errorf("record program: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("record program: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		seq, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("record program: last insert id: %w", err)
		}
		inserted = true
	} else {
		err = tx.QueryRowContext(ctx, `
			SELECT seq FROM programs WHERE id = ?
		`, rec.ID).Scan(&seq)
		if err != nil {
			return 0, false, fmt.Errorf("record program: select existing: %w", err)
		}
		inserted = false
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("record program: commit: %w", err)
	}

	return seq, inserted, nil
}

// HasProgram checks whether a handle id is already recorded.
func (s *Store) HasProgram(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM programs WHERE id = ?
	`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check program: %w", err)
	}
	return count > 0, nil
}
