package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/persistence"
)

const selectRunColumns = `
	SELECT id, node_type_id, properties, result, error_message, state, created_at, updated_at
	FROM node_runs`

// RunRepository handles run context database operations.
type RunRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *sql.DB, logger *slog.Logger) *RunRepository {
	return &RunRepository{db: db, logger: logger}
}

// Save inserts or replaces a run context.
func (r *RunRepository) Save(ctx context.Context, run *models.RunContext) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run ID cannot be empty", persistence.ErrInvalidRunID)
	}

	propertiesJSON, err := json.Marshal(run.Properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	resultJSON, err := marshalResult(run.Result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO node_runs (id, node_type_id, properties, result, error_message, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			node_type_id = EXCLUDED.node_type_id,
			properties = EXCLUDED.properties,
			result = EXCLUDED.result,
			error_message = EXCLUDED.error_message,
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		run.ID, run.NodeTypeID, string(propertiesJSON), resultJSON, run.Error, string(run.State), run.CreatedAt, run.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to save run", "run_id", run.ID, "error", err)

		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	return nil
}

// GetByID retrieves a run context by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*models.RunContext, error) {
	row := r.db.QueryRowContext(ctx, selectRunColumns+" WHERE id = $1", id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrRunNotFound
		}

		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	return run, nil
}

// GetByNodeType retrieves all run contexts of a node type, newest first.
func (r *RunRepository) GetByNodeType(ctx context.Context, nodeTypeID string) ([]*models.RunContext, error) {
	rows, err := r.db.QueryContext(ctx, selectRunColumns+" WHERE node_type_id = $1 ORDER BY created_at DESC", nodeTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs of node type %s: %w", nodeTypeID, err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "Failed to close rows", "error", err)
		}
	}()

	runs := make([]*models.RunContext, 0)

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// SaveResult records a success payload on an existing run.
func (r *RunRepository) SaveResult(ctx context.Context, runID string, payload map[string]any) error {
	resultJSON, err := marshalResult(payload)
	if err != nil {
		return persistence.NewRunError("SaveResult", runID, err)
	}

	return r.exec(ctx, "SaveResult", runID,
		"UPDATE node_runs SET result = $2, error_message = '', updated_at = $3 WHERE id = $1",
		runID, resultJSON, time.Now().UTC())
}

// SaveError records an error message on an existing run and drops any result.
func (r *RunRepository) SaveError(ctx context.Context, runID string, message string) error {
	return r.exec(ctx, "SaveError", runID,
		"UPDATE node_runs SET result = NULL, error_message = $2, updated_at = $3 WHERE id = $1",
		runID, message, time.Now().UTC())
}

func (r *RunRepository) exec(ctx context.Context, op, runID, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return persistence.NewRunError(op, runID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return persistence.NewRunError(op, runID, err)
	}

	if affected == 0 {
		return persistence.NewRunError(op, runID, persistence.ErrRunNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.RunContext, error) {
	var (
		run            models.RunContext
		propertiesJSON []byte
		resultJSON     []byte
		state          string
	)

	err := row.Scan(&run.ID, &run.NodeTypeID, &propertiesJSON, &resultJSON, &run.Error, &state,
		&run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, err
	}

	run.State = models.RunState(state)

	err = json.Unmarshal(propertiesJSON, &run.Properties)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal properties: %w", err)
	}

	if resultJSON != nil {
		err = json.Unmarshal(resultJSON, &run.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	return &run, nil
}

// marshalResult encodes a result payload, keeping a missing payload as SQL NULL.
func marshalResult(result map[string]any) (any, error) {
	if result == nil {
		return nil, nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(data), nil
}
