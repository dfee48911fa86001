package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/persistence"
	backend "github.com/redis/go-redis/v9"
)

// RunRepository stores run contexts as JSON values with a sorted-set index per node type.
type RunRepository struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

func (r *RunRepository) key(runID string) string {
	return r.prefix + "run:" + runID
}

func (r *RunRepository) indexKey(nodeTypeID string) string {
	return r.prefix + "node:" + nodeTypeID + ":runs"
}

// Save persists the run context and indexes it under its node type.
func (r *RunRepository) Save(ctx context.Context, run *models.RunContext) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run ID cannot be empty", persistence.ErrInvalidRunID)
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", run.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(run.ID), data, r.ttl)
	pipe.ZAdd(ctx, r.indexKey(run.NodeTypeID), backend.Z{
		Score:  float64(run.CreatedAt.UnixMilli()),
		Member: run.ID,
	})

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save run %s to redis: %w", run.ID, err)
	}

	return nil
}

// GetByID retrieves a run context by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*models.RunContext, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, persistence.ErrRunNotFound
		}

		return nil, fmt.Errorf("failed to get run %s from redis: %w", id, err)
	}

	var run models.RunContext

	err = json.Unmarshal(val, &run)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
	}

	return &run, nil
}

// GetByNodeType retrieves all run contexts of a node type, newest first.
// Index entries whose run has expired are pruned.
func (r *RunRepository) GetByNodeType(ctx context.Context, nodeTypeID string) ([]*models.RunContext, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(nodeTypeID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs of node type %s: %w", nodeTypeID, err)
	}

	runs := make([]*models.RunContext, 0, len(ids))

	for _, id := range ids {
		run, err := r.GetByID(ctx, id)
		if persistence.IsRunNotFound(err) {
			r.client.ZRem(ctx, r.indexKey(nodeTypeID), id)

			continue
		}

		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	return runs, nil
}

// SaveResult records a success payload on an existing run.
func (r *RunRepository) SaveResult(ctx context.Context, runID string, payload map[string]any) error {
	return r.update(ctx, "SaveResult", runID, func(run *models.RunContext) {
		persistence.ApplyResult(run, payload)
	})
}

// SaveError records an error message on an existing run.
func (r *RunRepository) SaveError(ctx context.Context, runID string, message string) error {
	return r.update(ctx, "SaveError", runID, func(run *models.RunContext) {
		persistence.ApplyError(run, message)
	})
}

// update applies a change under optimistic locking on the run key.
func (r *RunRepository) update(ctx context.Context, op, runID string, apply func(*models.RunContext)) error {
	key := r.key(runID)

	err := r.client.Watch(ctx, func(tx *backend.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, backend.Nil) {
				return persistence.ErrRunNotFound
			}

			return err
		}

		var run models.RunContext

		err = json.Unmarshal(val, &run)
		if err != nil {
			return err
		}

		apply(&run)

		data, err := json.Marshal(&run)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Set(ctx, key, data, backend.KeepTTL)

			return nil
		})

		return err
	}, key)
	if err != nil {
		return persistence.NewRunError(op, runID, err)
	}

	return nil
}
