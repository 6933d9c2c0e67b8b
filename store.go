package pipeline

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRecordNotFound = errors.New("pipeline: validation record not found")
)

// Record is one stored verdict. Node and edge lists are never stored.
type Record struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	NumNodes  int       `json:"num_nodes"`
	NumEdges  int       `json:"num_edges"`
	IsDAG     bool      `json:"is_dag"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord builds a record from a validation result.
func NewRecord(requestID string, r Result) *Record {
	return &Record{
		RequestID: requestID,
		NumNodes:  r.NumNodes,
		NumEdges:  r.NumEdges,
		IsDAG:     r.IsDAG,
		Message:   r.Message,
	}
}

// Summary aggregates stored verdicts.
type Summary struct {
	Total   int64 `json:"total"`
	Acyclic int64 `json:"acyclic"`
	Cyclic  int64 `json:"cyclic"`
	Empty   int64 `json:"empty"`
}

// HistoryStore defines the contract for recording validation verdicts.
type HistoryStore interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Records
	SaveValidation(ctx context.Context, rec *Record) (string, error)
	GetValidation(ctx context.Context, id string) (*Record, error)
	ListValidations(ctx context.Context, limit int) ([]Record, error)
	DeleteValidation(ctx context.Context, id string) error
	Summarize(ctx context.Context) (*Summary, error)
}
