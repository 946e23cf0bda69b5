// Package repository keeps finished analyses in memory for the lifetime of a run.
package repository

import (
	"context"

	"github.com/okian/swimzones/internal/domain/model"
)

// Store provides read/write access to finished analyses.
type Store interface {
	// Put stores an analysis, replacing any earlier one for the same session.
	Put(ctx context.Context, a model.Analysis) error

	// Get returns the analysis of a session.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, sessionID string) (model.Analysis, error)

	// All returns every analysis in the order first stored.
	All(ctx context.Context) []model.Analysis

	// Count returns the number of stored analyses.
	Count(ctx context.Context) int
}
