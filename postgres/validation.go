package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/pipeline"
)

const recordColumns = `id, request_id, num_nodes, num_edges, is_dag, message, created_at`

// SaveValidation inserts a verdict.
// If rec.ID is empty, a UUID is auto-generated.
// CreatedAt is filled in from the database.
func (s *PGStore) SaveValidation(ctx context.Context, rec *pipeline.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO pipeline_validations (id, request_id, num_nodes, num_edges, is_dag, message)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		rec.ID, rec.RequestID, rec.NumNodes, rec.NumEdges, rec.IsDAG, rec.Message,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("pipeline: insert validation: %w", err)
	}

	return rec.ID, nil
}

// GetValidation fetches a single verdict by its ID.
// Returns nil, nil if not found.
func (s *PGStore) GetValidation(ctx context.Context, id string) (*pipeline.Record, error) {
	var r pipeline.Record
	err := s.db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM pipeline_validations WHERE id = $1`, id,
	).Scan(&r.ID, &r.RequestID, &r.NumNodes, &r.NumEdges, &r.IsDAG, &r.Message, &r.CreatedAt)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("pipeline: get validation: %w", err)
	}

	return &r, nil
}

// ListValidations returns the most recent verdicts, newest first.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListValidations(ctx context.Context, limit int) ([]pipeline.Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+recordColumns+` FROM pipeline_validations ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("pipeline: list validations: %w", err)
	}
	defer rows.Close()

	records := []pipeline.Record{}
	for rows.Next() {
		var r pipeline.Record
		if err := rows.Scan(&r.ID, &r.RequestID, &r.NumNodes, &r.NumEdges, &r.IsDAG, &r.Message, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("pipeline: scan validation: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: rows validations: %w", err)
	}

	return records, nil
}

// DeleteValidation deletes a verdict by its ID.
// Returns ErrRecordNotFound if the record doesn't exist.
func (s *PGStore) DeleteValidation(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM pipeline_validations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pipeline: delete validation: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pipeline.ErrRecordNotFound
	}
	return nil
}

// Summarize counts stored verdicts by outcome.
func (s *PGStore) Summarize(ctx context.Context) (*pipeline.Summary, error) {
	var sum pipeline.Summary
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_dag AND num_nodes > 0),
		       COUNT(*) FILTER (WHERE NOT is_dag),
		       COUNT(*) FILTER (WHERE num_nodes = 0)
		FROM pipeline_validations`,
	).Scan(&sum.Total, &sum.Acyclic, &sum.Cyclic, &sum.Empty)
	if err != nil {
		return nil, fmt.Errorf("pipeline: summarize validations: %w", err)
	}
	return &sum, nil
}
