package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/lexal/lexal-node/pkg/eventbus"
	"github.com/lexal/lexal-node/pkg/metrics"
	"github.com/lexal/lexal-node/pkg/persistence"
	"github.com/lexal/lexal-node/pkg/registry"
	"github.com/lexal/lexal-node/pkg/services"
	"github.com/lexal/lexal-node/pkg/web"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	metrics     *metrics.Metrics
	validate    *validator.Validate
	defaultNode string
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
	defaultNode string,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		eventBus:    eventBus,
		tracer:      tracer,
		metrics:     metrics.New(),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		defaultNode: defaultNode,
	}
}

func (a *API) App() *fiber.App {
	opts := []services.RunOption{
		services.WithLogger(a.logger),
		services.WithMetrics(a.metrics),
	}

	if a.tracer != nil {
		opts = append(opts, services.WithTracer(a.tracer))
	}

	if a.eventBus != nil {
		opts = append(opts, services.WithPublisher(a.eventBus))
	}

	nodeService := services.NewNode(a.registry)
	runService := services.NewRun(a.registry, a.persistence, opts...)

	handlers := web.NewAPIHandlers(nodeService, runService, a.validate, a.registry, a.persistence, a.defaultNode)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			_, ok := a.registry.HealthCheck()

			return ok && a.persistence.HealthCheck(c.Context()) == nil
		},
	}))

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("lexal node")
	})

	app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))

	handlers.Register(app)

	return app
}

// Start serves the API until ctx is cancelled.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	return app.Listen(":"+strconv.Itoa(port), fiber.ListenConfig{
		GracefulContext: ctx,
		OnShutdownSuccess: func() {
			a.logger.InfoContext(ctx, "API stopped")
		},
	})
}
