package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexal/lexal-node/pkg/eventbus"
	"github.com/lexal/lexal-node/pkg/events"
	"github.com/lexal/lexal-node/pkg/metrics"
	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/otelhelper"
	"github.com/lexal/lexal-node/pkg/persistence"
	"github.com/lexal/lexal-node/pkg/registry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run handles node invocations and the run contexts they produce.
type Run struct {
	registry    *registry.Registry
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	tracer      trace.Tracer
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

type RunOption func(*Run)

// WithPublisher publishes a completed or failed event after every run.
func WithPublisher(publisher eventbus.EventPublisher) RunOption {
	return func(r *Run) {
		r.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) RunOption {
	return func(r *Run) {
		r.tracer = tracer
	}
}

func WithMetrics(m *metrics.Metrics) RunOption {
	return func(r *Run) {
		r.metrics = m
	}
}

func WithLogger(logger *slog.Logger) RunOption {
	return func(r *Run) {
		r.logger = logger
	}
}

// NewRun creates a new run service.
func NewRun(registry *registry.Registry, persistence persistence.Persistence, opts ...RunOption) *Run {
	r := &Run{
		registry:    registry,
		persistence: persistence,
		tracer:      otelhelper.NoopTracer(),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Execute runs the node registered under nodeTypeID with the given property values.
// Both complete and error outcomes are returned as a run context without error; an
// error is returned only when the invocation was rejected or the host failed to store the run.
func (r *Run) Execute(ctx context.Context, nodeTypeID string, properties map[string]any) (*models.RunContext, error) {
	node, ok := r.registry.Node(nodeTypeID)
	if !ok {
		return nil, newNodeNotFoundError("Execute", nodeTypeID)
	}

	nodeType := node.Info()
	values := nodeType.ApplyDefaults(properties)

	err := ValidateProperties(nodeType, values)
	if err != nil {
		r.reject(nodeTypeID, err)

		return nil, err
	}

	runID := uuid.New().String()
	run := models.NewRunContext(runID, nodeType.ID, values)
	repo := r.persistence.RunRepository()

	err = repo.Save(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	run.Bind(repo)

	ctx, span := otelhelper.StartSpan(ctx, r.tracer, "node.execute",
		attribute.String(otelhelper.NodeTypeIDKey, nodeType.ID),
		attribute.String(otelhelper.NodeNameKey, nodeType.Name),
		attribute.String(otelhelper.RunIDKey, run.ID),
	)
	defer span.End()

	logger := r.logger.With("node_type_id", nodeType.ID, "run_id", run.ID)
	logger.DebugContext(ctx, "Executing node")

	start := time.Now()

	run, err = node.Execute(ctx, run)
	duration := time.Since(start)

	if err != nil {
		otelhelper.SetError(span, err, attribute.String(otelhelper.RunIDKey, runID))

		if run != nil {
			saveErr := repo.Save(ctx, run)
			if saveErr != nil {
				logger.ErrorContext(ctx, "Failed to save run state", "error", saveErr)
			}
		}

		return nil, fmt.Errorf("failed to execute node %s: %w", nodeType.ID, err)
	}

	span.SetAttributes(attribute.String(otelhelper.RunStateKey, string(run.State)))

	if run.State == models.RunStateError {
		span.SetStatus(codes.Error, run.Error)
	}

	if r.metrics != nil {
		r.metrics.ObserveRun(nodeType.ID, string(run.State), duration)
	}

	err = repo.Save(ctx, run)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	r.publish(ctx, logger, run, duration)

	logger.InfoContext(ctx, "Node executed", "state", run.State, "duration", duration)

	return run, nil
}

// Fetch returns a stored run context.
func (r *Run) Fetch(ctx context.Context, runID string) (*models.RunContext, error) {
	return r.persistence.RunRepository().GetByID(ctx, runID)
}

// ListByNodeType returns the stored runs of one node type, newest first.
func (r *Run) ListByNodeType(ctx context.Context, nodeTypeID string) ([]*models.RunContext, error) {
	if _, ok := r.registry.Node(nodeTypeID); !ok {
		return nil, newNodeNotFoundError("ListByNodeType", nodeTypeID)
	}

	return r.persistence.RunRepository().GetByNodeType(ctx, nodeTypeID)
}

func (r *Run) reject(nodeTypeID string, err error) {
	if r.metrics == nil {
		return
	}

	reason := "error"

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		reason = serviceErr.Code
	}

	r.metrics.Rejected(nodeTypeID, reason)
}

func (r *Run) publish(ctx context.Context, logger *slog.Logger, run *models.RunContext, duration time.Duration) {
	if r.publisher == nil {
		return
	}

	err := r.publisher.Publish(ctx, run.ID, NewRunEvent(run, duration))
	if err != nil {
		logger.WarnContext(ctx, "Failed to publish run event", "error", err)
	}
}

// NewRunEvent builds the event announcing the outcome of a finished run.
// nolint:ireturn // the event type depends on the run state
func NewRunEvent(run *models.RunContext, duration time.Duration) eventbus.Event {
	if run.State == models.RunStateError {
		return &events.NodeRunFailed{
			BaseEvent: events.NewBaseEvent(events.NodeRunFailedEvent, run.NodeTypeID),
			RunID:     run.ID,
			Error:     run.Error,
			Duration:  duration,
		}
	}

	return &events.NodeRunCompleted{
		BaseEvent: events.NewBaseEvent(events.NodeRunCompletedEvent, run.NodeTypeID),
		RunID:     run.ID,
		Result:    run.Result,
		Duration:  duration,
	}
}
