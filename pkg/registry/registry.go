// Package registry keeps the node implementations served by the host.
package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/lexal/lexal-node/pkg/models"
	"github.com/lexal/lexal-node/pkg/protocol"
)

type Registry struct {
	logger *slog.Logger
	mu     sync.RWMutex
	nodes  map[string]protocol.Node
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger: log,
		nodes:  make(map[string]protocol.Node),
	}
}

// RegisterNode validates the node descriptor and makes the node available under its type ID.
func (r *Registry) RegisterNode(node protocol.Node) error {
	info := node.Info()
	if info == nil {
		return fmt.Errorf("%w: node has no descriptor", models.ErrInvalidNodeType)
	}

	err := info.Validate()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[info.ID]; exists {
		return fmt.Errorf("node type '%s' already registered", info.ID)
	}

	r.nodes[info.ID] = node

	r.logger.Debug("Registered node", "node_type_id", info.ID, "name", info.Name)

	return nil
}

// Node returns the node registered under the given type ID.
func (r *Registry) Node(id string) (protocol.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, ok := r.nodes[id]

	return node, ok
}

// Nodes returns every registered node ordered by type ID.
func (r *Registry) Nodes() []protocol.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]protocol.Node, 0, len(r.nodes))
	for _, node := range r.nodes {
		nodes = append(nodes, node)
	}

	slices.SortFunc(nodes, func(a, b protocol.Node) int {
		return strings.Compare(a.Info().ID, b.Info().ID)
	})

	return nodes
}

func (r *Registry) HealthCheck() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.nodes) == 0 {
		return "no nodes registered", false
	}

	return fmt.Sprintf("%d nodes registered", len(r.nodes)), true
}
