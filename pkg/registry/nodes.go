// Package registry provides node registration for the registry system.
package registry

import (
	"github.com/lexal/lexal-node/pkg/nodes/lexal"
)

// RegisterDefaultNodes registers all built-in nodes with the registry.
func (r *Registry) RegisterDefaultNodes() error {
	// Register base lexal node
	err := r.RegisterNode(lexal.NewNode(r.logger))
	if err != nil {
		return err
	}

	// Register lexal node with conditional properties
	return r.RegisterNode(lexal.NewExtendedNode(r.logger))
}
