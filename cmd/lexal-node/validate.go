package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lexal/lexal-node/pkg/log"
	"github.com/lexal/lexal-node/pkg/registry"
	"github.com/lexal/lexal-node/pkg/services"
	"github.com/urfave/cli/v3"
)

var ErrInvalidNodes = errors.New("invalid nodes found")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the built-in node descriptors and their defaults",
		Action: func(_ context.Context, command *cli.Command) error {
			logger := log.WithModule("lexal-node").With("action", "validate")

			return validateNodes(command.Root().Writer, registry.NewRegistry(logger))
		},
	}
}

// validateNodes registers every built-in node and checks that each descriptor's defaults satisfy its own schema.
func validateNodes(w io.Writer, reg *registry.Registry) error {
	err := reg.RegisterDefaultNodes()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNodes, err)
	}

	invalid := 0

	for _, node := range reg.Nodes() {
		nodeType := node.Info()

		err := services.ValidateProperties(nodeType, nodeType.ApplyDefaults(nil))
		if err != nil {
			invalid++

			_, _ = fmt.Fprintf(w, "✗ %s (%s): %v\n", nodeType.ID, nodeType.Name, err)

			continue
		}

		_, _ = fmt.Fprintf(w, "✓ %s (%s)\n", nodeType.ID, nodeType.Name)
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNodes, invalid)
	}

	return nil
}
