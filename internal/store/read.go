package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ListPrograms returns every recorded program.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the registry is empty.
func (s *Store) ListPrograms(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, name, kernel_hash, params, body
		FROM programs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query programs: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByKernelHash returns every program compiled from the kernel with
// the given hash, in registration order.
func (s *Store) ListByKernelHash(ctx context.Context, kernelHash string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, name, kernel_hash, params, body
		FROM programs
		WHERE kernel_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, kernelHash)
	if err != nil {
		return nil, fmt.Errorf("query programs by kernel hash: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// GetProgram retrieves a single program record by handle id.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetProgram(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, name, kernel_hash, params, body
		FROM programs
		WHERE id = ?
	`, id)

	return scanRecordRow(row)
}

// GetProgramByName retrieves a single program record by its minted name.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetProgramByName(ctx context.Context, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, name, kernel_hash, params, body
		FROM programs
		WHERE name = ?
	`, name)

	return scanRecordRow(row)
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate programs: %w", err)
	}

	// Return empty slice instead of nil
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var paramsJSON, body string
	if err := rows.Scan(&rec.Seq, &rec.ID, &rec.Name, &rec.KernelHash, &paramsJSON, &body); err != nil {
		return Record{}, fmt.Errorf("scan program: %w", err)
	}
	params, err := unmarshalParams(paramsJSON)
	if err != nil {
		return Record{}, err
	}
	rec.Params = params
	rec.Body = []byte(body)
	return rec, nil
}

func scanRecordRow(row *sql.Row) (Record, error) {
	var rec Record
	var paramsJSON, body string
	if err := row.Scan(&rec.Seq, &rec.ID, &rec.Name, &rec.KernelHash, &paramsJSON, &body); err != nil {
		return Record{}, err
	}
	params, err := unmarshalParams(paramsJSON)
	if err != nil {
		return Record{}, err
	}
	rec.Params = params
	rec.Body = []byte(body)
	return rec, nil
}
