// Package events defines event types and structures for node run notifications.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Topic carries every node run event.
const Topic = "lexal.node.runs"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	NodeRunCompletedEvent EventType = "node.run.completed"
	NodeRunFailedEvent    EventType = "node.run.failed"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	NodeTypeID string         `json:"node_type_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent creates a base event with a fresh ID and the current time.
func NewBaseEvent(eventType EventType, nodeTypeID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		NodeTypeID: nodeTypeID,
		Metadata:   make(map[string]any),
	}
}

// NodeRunCompleted is published when a run ends in the complete state.
type NodeRunCompleted struct {
	BaseEvent

	RunID    string         `json:"run_id"`
	Result   map[string]any `json:"result"`
	Duration time.Duration  `json:"duration"`
}

func (e NodeRunCompleted) GetType() EventType {
	return NodeRunCompletedEvent
}

// NodeRunFailed is published when a run ends in the error state.
type NodeRunFailed struct {
	BaseEvent

	RunID    string        `json:"run_id"`
	Error    string        `json:"error"`
	Duration time.Duration `json:"duration"`
}

func (e NodeRunFailed) GetType() EventType {
	return NodeRunFailedEvent
}
