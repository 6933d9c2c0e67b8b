package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pipeline_validations (
    id         TEXT PRIMARY KEY,
    request_id TEXT NOT NULL DEFAULT '',
    num_nodes  INTEGER NOT NULL,
    num_edges  INTEGER NOT NULL,
    is_dag     BOOLEAN NOT NULL,
    message    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pipeline_validations_created_at ON pipeline_validations(created_at DESC);
`

// CreateSchema creates the pipeline_validations table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the pipeline_validations table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS pipeline_validations CASCADE;`)
	return err
}
