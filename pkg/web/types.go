// Package web provides HTTP request and response types for the node API.
package web

import "github.com/lexal/lexal-node/pkg/models"

// ExecuteRequest is the body of an execute call. An empty properties object runs the node with its defaults.
type ExecuteRequest struct {
	Properties map[string]any `json:"properties" validate:"required"`
}

// VisiblePropertiesRequest carries the current property values of an editor form.
type VisiblePropertiesRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}

// InfoResponse wraps a node descriptor.
type InfoResponse struct {
	NodeType *models.NodeType `json:"node_type"`
}

type NodesResponse struct {
	Nodes []*models.NodeType `json:"nodes"`
}

type VisiblePropertiesResponse struct {
	Visible []string `json:"visible"`
}

type RunsResponse struct {
	Runs []*models.RunContext `json:"runs"`
}
