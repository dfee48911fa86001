// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/lexal/lexal-node/pkg/models"
)

// CreateTestRun creates a pending RunContext with default values that can be overridden.
func CreateTestRun(overrides ...func(*models.RunContext)) *models.RunContext {
	run := models.NewRunContext(uuid.New().String(), "node-type-1", map[string]any{
		"str_field":    "3",
		"int_field":    float64(4),
		"change_field": false,
	})

	// JSON backed stores keep millisecond precision comfortably.
	run.CreatedAt = run.CreatedAt.Truncate(time.Millisecond)
	run.UpdatedAt = run.CreatedAt

	for _, override := range overrides {
		override(run)
	}

	return run
}

// WithRunID sets the run ID.
func WithRunID(id string) func(*models.RunContext) {
	return func(r *models.RunContext) {
		r.ID = id
	}
}

// WithNodeType sets the node type the run belongs to.
func WithNodeType(nodeTypeID string) func(*models.RunContext) {
	return func(r *models.RunContext) {
		r.NodeTypeID = nodeTypeID
	}
}

// WithProperties sets the run property values.
func WithProperties(properties map[string]any) func(*models.RunContext) {
	return func(r *models.RunContext) {
		r.Properties = properties
	}
}

// WithCreatedAt sets the creation time of the run.
func WithCreatedAt(createdAt time.Time) func(*models.RunContext) {
	return func(r *models.RunContext) {
		r.CreatedAt = createdAt
		r.UpdatedAt = createdAt
	}
}
