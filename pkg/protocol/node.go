// Package protocol defines the contract between a node and the host that runs it.
package protocol

import (
	"context"

	"github.com/lexal/lexal-node/pkg/models"
)

// Node is an executable unit described by a static NodeType.
type Node interface {
	// Info returns the node descriptor used by the host to render and validate properties
	Info() *models.NodeType

	// Execute performs one run and returns the mutated run context.
	// Computation failures are recorded on the run context; the error is only
	// returned when the host could not record the failure itself.
	Execute(ctx context.Context, run *models.RunContext) (*models.RunContext, error)
}
