package services

import (
	"context"
	"log/slog"

	"github.com/lexal/lexal-node/pkg/eventbus"
	"github.com/lexal/lexal-node/pkg/events"
)

// LogRunOutcomes subscribes to node run events and logs the outcome of every run.
func LogRunOutcomes(ctx context.Context, subscriber eventbus.EventSubscriber, logger *slog.Logger) error {
	err := subscriber.Handle(events.NodeRunCompletedEvent, func(ctx context.Context, event any) error {
		completed, ok := event.(*events.NodeRunCompleted)
		if !ok {
			return nil
		}

		logger.InfoContext(ctx, "Node run completed",
			"run_id", completed.RunID,
			"node_type_id", completed.NodeTypeID,
			"duration", completed.Duration,
		)

		return nil
	})
	if err != nil {
		return err
	}

	err = subscriber.Handle(events.NodeRunFailedEvent, func(ctx context.Context, event any) error {
		failed, ok := event.(*events.NodeRunFailed)
		if !ok {
			return nil
		}

		logger.WarnContext(ctx, "Node run failed",
			"run_id", failed.RunID,
			"node_type_id", failed.NodeTypeID,
			"error", failed.Error,
			"duration", failed.Duration,
		)

		return nil
	})
	if err != nil {
		return err
	}

	return subscriber.Subscribe(ctx)
}
