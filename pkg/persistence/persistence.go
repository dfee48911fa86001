// Package persistence provides the storage abstraction for node run contexts.
package persistence

import (
	"context"

	"github.com/lexal/lexal-node/pkg/models"
)

// Persistence is the host-side store backing run contexts.
type Persistence interface {
	RunRepository() RunRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// RunRepository stores run contexts and records their outcome.
// It satisfies models.ResultSaver so it can be bound to a run context.
type RunRepository interface {
	Save(ctx context.Context, run *models.RunContext) error
	GetByID(ctx context.Context, id string) (*models.RunContext, error)
	GetByNodeType(ctx context.Context, nodeTypeID string) ([]*models.RunContext, error)
	SaveResult(ctx context.Context, runID string, payload map[string]any) error
	SaveError(ctx context.Context, runID string, message string) error
}
