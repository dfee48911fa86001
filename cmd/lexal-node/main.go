// Package main provides the lexal node host.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:                  "lexal-node",
		Usage:                 "Serve the lexal node: adds a textual and a numeric property",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			RunCommand(),
			InfoCommand(),
			ValidateCommand(),
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		panic(err)
	}
}
