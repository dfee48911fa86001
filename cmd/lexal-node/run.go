package main

import (
	"context"
	"fmt"

	"github.com/lexal/lexal-node/pkg/cmd"
	"github.com/lexal/lexal-node/pkg/config"
	"github.com/lexal/lexal-node/pkg/log"
	"github.com/lexal/lexal-node/pkg/nodes/lexal"
	"github.com/lexal/lexal-node/pkg/services"
	"github.com/urfave/cli/v3"
)

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Start the node API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				Sources: cli.EnvVars("LEXAL_CONFIG"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   config.DefaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence (file://, redis://, postgres://)",
				Value:   config.DefaultDatabaseURL,
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka, none)",
				Value:   config.DefaultEventBus,
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "default-node",
				Usage:   "Node type served by /info and /execute",
				Value:   lexal.NodeTypeID,
				Sources: cli.EnvVars("DEFAULT_NODE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   config.DefaultLogLevel,
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			cfg, err := loadConfig(command)
			if err != nil {
				return err
			}

			log.Setup(cfg.LogLevel)

			logger := log.WithModule("lexal-node")

			logger.InfoContext(ctx, "Initializing lexal node", "port", cfg.Port, "event_bus", cfg.EventBus)

			registry, err := cmd.NewRegistry(logger)
			if err != nil {
				return err
			}

			if _, ok := registry.Node(cfg.DefaultNode); !ok {
				return fmt.Errorf("default node '%s' is not registered", cfg.DefaultNode)
			}

			persistence, err := cmd.NewPersistence(ctx, logger, cfg.DatabaseURL, cfg.Redis)
			if err != nil {
				return fmt.Errorf("failed to initialize persistence: %w", err)
			}

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus, err := cmd.NewEventBus(cfg.EventBus, cfg.ServiceName, logger)
			if err != nil {
				return err
			}

			if eventBus != nil {
				defer func() {
					if err := eventBus.Close(); err != nil {
						logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
					}
				}()

				err = services.LogRunOutcomes(ctx, eventBus, logger.With("component", "run_outcomes"))
				if err != nil {
					return fmt.Errorf("failed to subscribe to node run events: %w", err)
				}
			}

			tracer, shutdown, err := cmd.NewTracer(ctx, cfg.Tracing, cfg.ServiceName)
			if err != nil {
				return fmt.Errorf("failed to initialize tracer: %w", err)
			}

			defer func() {
				if err := shutdown(context.WithoutCancel(ctx)); err != nil {
					logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
				}
			}()

			api := NewAPI(logger, persistence, registry, eventBus, tracer, cfg.DefaultNode)

			return api.Start(ctx, cfg.Port)
		},
	}
}

// loadConfig reads the optional config file; flags set on the command line or through env vars win.
func loadConfig(command *cli.Command) (config.Config, error) {
	cfg := config.Default()
	cfg.DefaultNode = lexal.NodeTypeID

	if path := command.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}

		if loaded.DefaultNode == "" {
			loaded.DefaultNode = cfg.DefaultNode
		}

		cfg = loaded
	}

	if command.IsSet("port") {
		cfg.Port = command.Int("port")
	}

	if command.IsSet("database-url") {
		cfg.DatabaseURL = command.String("database-url")
	}

	if command.IsSet("event-bus") {
		cfg.EventBus = command.String("event-bus")
	}

	if command.IsSet("default-node") {
		cfg.DefaultNode = command.String("default-node")
	}

	if command.IsSet("log-level") {
		cfg.LogLevel = command.String("log-level")
	}

	if command.IsSet("tracing") {
		cfg.Tracing = command.Bool("tracing")
	}

	return cfg, cfg.Validate()
}
