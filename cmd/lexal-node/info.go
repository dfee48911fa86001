package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/lexal/lexal-node/pkg/cmd"
	"github.com/lexal/lexal-node/pkg/nodes/lexal"
	"github.com/lexal/lexal-node/pkg/services"
	"github.com/lexal/lexal-node/pkg/web"
	"github.com/urfave/cli/v3"
)

func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:    "info",
		Aliases: []string{"i"},
		Usage:   "Print a node descriptor as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "node",
				Usage: "Node type ID",
				Value: lexal.NodeTypeID,
			},
		},
		Action: func(_ context.Context, command *cli.Command) error {
			return printInfo(command.Root().Writer, command.String("node"))
		},
	}
}

func printInfo(w io.Writer, nodeTypeID string) error {
	registry, err := cmd.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return err
	}

	nodeType, err := services.NewNode(registry).Info(nodeTypeID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(web.InfoResponse{NodeType: nodeType}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode descriptor: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
