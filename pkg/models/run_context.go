package models

import (
	"context"
	"time"
)

// RunState is the lifecycle state of a single node run.
type RunState string

const (
	RunStatePending  RunState = "pending"
	RunStateComplete RunState = "complete"
	RunStateError    RunState = "error"
)

// ResultSaver persists the outcome of a run on behalf of the host.
type ResultSaver interface {
	SaveResult(ctx context.Context, runID string, payload map[string]any) error
	SaveError(ctx context.Context, runID string, message string) error
}

// RunContext carries the property values of one execution and its outcome.
// It is owned by the host; a node only mutates it through SaveResult, SaveError and State.
type RunContext struct {
	ID         string         `json:"id"`
	NodeTypeID string         `json:"node_type_id"`
	Properties map[string]any `json:"properties"`
	Result     map[string]any `json:"result,omitempty"`
	Error      string         `json:"error,omitempty"`
	State      RunState       `json:"state"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	saver ResultSaver
}

// NewRunContext creates a pending run for the given node type.
func NewRunContext(id, nodeTypeID string, properties map[string]any) *RunContext {
	now := time.Now().UTC()

	if properties == nil {
		properties = make(map[string]any)
	}

	return &RunContext{
		ID:         id,
		NodeTypeID: nodeTypeID,
		Properties: properties,
		State:      RunStatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Bind attaches the host persistence used by SaveResult and SaveError.
func (r *RunContext) Bind(saver ResultSaver) {
	r.saver = saver
}

// SaveResult records the success payload and forwards it to the bound saver.
func (r *RunContext) SaveResult(ctx context.Context, payload map[string]any) error {
	r.Result = payload
	r.Error = ""
	r.UpdatedAt = time.Now().UTC()

	if r.saver == nil {
		return nil
	}

	return r.saver.SaveResult(ctx, r.ID, payload)
}

// SaveError records the error message and forwards it to the bound saver.
func (r *RunContext) SaveError(ctx context.Context, message string) error {
	r.Result = nil
	r.Error = message
	r.UpdatedAt = time.Now().UTC()

	if r.saver == nil {
		return nil
	}

	return r.saver.SaveError(ctx, r.ID, message)
}

// Finished reports whether the run reached a terminal state.
func (r *RunContext) Finished() bool {
	return r.State == RunStateComplete || r.State == RunStateError
}
