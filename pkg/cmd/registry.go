package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lexal/lexal-node/pkg/registry"
)

// NewRegistry creates a registry holding every built-in node.
func NewRegistry(log *slog.Logger) (*registry.Registry, error) {
	reg := registry.NewRegistry(log)

	err := reg.RegisterDefaultNodes()
	if err != nil {
		return nil, fmt.Errorf("failed to register nodes: %w", err)
	}

	return reg, nil
}
