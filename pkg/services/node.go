// Package services provides node lookup and run orchestration for the node host.
package services

import (
	"fmt"
	"strings"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/protocol"
	"github.com/lexal/lexal-node/pkg/registry"
	"github.com/xeipuuv/gojsonschema"
)

// Node handles descriptor related operations.
type Node struct {
	registry *registry.Registry
}

// NewNode creates a new node service.
func NewNode(registry *registry.Registry) *Node {
	return &Node{
		registry: registry,
	}
}

// List returns the descriptors of every registered node.
func (n *Node) List() []*models.NodeType {
	nodes := n.registry.Nodes()

	nodeTypes := make([]*models.NodeType, 0, len(nodes))
	for _, node := range nodes {
		nodeTypes = append(nodeTypes, node.Info())
	}

	return nodeTypes
}

// Info returns the descriptor of the node registered under nodeTypeID.
func (n *Node) Info(nodeTypeID string) (*models.NodeType, error) {
	node, err := n.lookup("Info", nodeTypeID)
	if err != nil {
		return nil, err
	}

	return node.Info(), nil
}

// Schema returns the JSON Schema describing the node's property values.
func (n *Node) Schema(nodeTypeID string) (*models.JSONSchema, error) {
	nodeType, err := n.Info(nodeTypeID)
	if err != nil {
		return nil, err
	}

	return nodeType.JSONSchema(), nil
}

// VisibleProperties returns the names of the properties shown for the given values.
// Defaults fill in any value the caller left out.
func (n *Node) VisibleProperties(nodeTypeID string, values map[string]any) ([]string, error) {
	nodeType, err := n.Info(nodeTypeID)
	if err != nil {
		return nil, err
	}

	return nodeType.VisibleProperties(nodeType.ApplyDefaults(values)), nil
}

func (n *Node) lookup(op, nodeTypeID string) (protocol.Node, error) {
	node, ok := n.registry.Node(nodeTypeID)
	if !ok {
		return nil, newNodeNotFoundError(op, nodeTypeID)
	}

	return node, nil
}

// ValidateProperties checks property values against the descriptor's JSON Schema.
func ValidateProperties(nodeType *models.NodeType, values map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(nodeType.JSONSchema()),
		gojsonschema.NewGoLoader(values),
	)
	if err != nil {
		return fmt.Errorf("failed to validate properties of node type %s: %w", nodeType.ID, err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		details = append(details, resultErr.String())
	}

	return NewValidationError(
		"ValidateProperties",
		"invalid_properties",
		strings.Join(details, "; "),
		details,
		ErrInvalidProperties,
	)
}
