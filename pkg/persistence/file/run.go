package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/persistence"
)

const runsDir = "runs"

// RunRepository handles run context file operations.
type RunRepository struct {
	root string // File system root for storing run contexts
	mu   sync.Mutex
}

// NewRunRepository creates a new run repository.
func NewRunRepository(root string) *RunRepository {
	return &RunRepository{root: root}
}

// validateRunID validates that the run ID is safe for file operations.
func validateRunID(runID string) error {
	if runID == "" {
		return fmt.Errorf("%w: run ID cannot be empty", persistence.ErrInvalidRunID)
	}

	// Check for path traversal attempts
	if strings.Contains(runID, "..") || strings.Contains(runID, "/") || strings.Contains(runID, "\\") {
		return fmt.Errorf("%w: run ID contains invalid characters", persistence.ErrInvalidRunID)
	}

	return nil
}

// Save writes a run context to the file system, replacing any previous version.
func (r *RunRepository) Save(_ context.Context, run *models.RunContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(run)
}

// GetByID retrieves a run context by its ID from the file system.
func (r *RunRepository) GetByID(_ context.Context, id string) (*models.RunContext, error) {
	return r.read(id)
}

// GetByNodeType retrieves all run contexts of a node type, newest first.
func (r *RunRepository) GetByNodeType(_ context.Context, nodeTypeID string) ([]*models.RunContext, error) {
	dir := filepath.Join(r.root, runsDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.RunContext{}, nil
		}

		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	runs := make([]*models.RunContext, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		run, err := r.read(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			// Skip invalid files
			continue
		}

		if run.NodeTypeID == nodeTypeID {
			runs = append(runs, run)
		}
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	return runs, nil
}

// SaveResult records a success payload on an existing run.
func (r *RunRepository) SaveResult(_ context.Context, runID string, payload map[string]any) error {
	return r.update("SaveResult", runID, func(run *models.RunContext) {
		persistence.ApplyResult(run, payload)
	})
}

// SaveError records an error message on an existing run.
func (r *RunRepository) SaveError(_ context.Context, runID string, message string) error {
	return r.update("SaveError", runID, func(run *models.RunContext) {
		persistence.ApplyError(run, message)
	})
}

func (r *RunRepository) update(op, runID string, apply func(*models.RunContext)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := r.read(runID)
	if err != nil {
		return persistence.NewRunError(op, runID, err)
	}

	apply(run)

	return r.write(run)
}

func (r *RunRepository) write(run *models.RunContext) error {
	if err := validateRunID(run.ID); err != nil {
		return err
	}

	dir := filepath.Join(r.root, runsDir)

	err := os.MkdirAll(dir, 0750)
	if err != nil {
		return fmt.Errorf("failed to create runs directory: %w", err)
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", run.ID, err)
	}

	err = os.WriteFile(filepath.Join(dir, run.ID+".json"), data, 0600)
	if err != nil {
		return fmt.Errorf("failed to write run %s: %w", run.ID, err)
	}

	return nil
}

func (r *RunRepository) read(id string) (*models.RunContext, error) {
	if err := validateRunID(id); err != nil {
		return nil, err
	}

	filePath := filepath.Join(r.root, runsDir, id+".json")

	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is validated and constructed safely
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, persistence.ErrRunNotFound
		}

		return nil, fmt.Errorf("failed to read run %s: %w", id, err)
	}

	var run models.RunContext

	err = json.Unmarshal(data, &run)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
	}

	return &run, nil
}
