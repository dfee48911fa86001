// Package redis provides Redis persistence implementation for run contexts.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/lexal/lexal-node/pkg/persistence"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "lexal:"

// Persistence implements the persistence layer for Redis.
type Persistence struct {
	client  *backend.Client
	runRepo *RunRepository
}

type Option func(*RunRepository)

// WithTTL sets the expiration for stored runs.
func WithTTL(ttl time.Duration) Option {
	return func(r *RunRepository) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored runs.
func WithPrefix(prefix string) Option {
	return func(r *RunRepository) {
		r.prefix = prefix
	}
}

// NewPersistence connects to the Redis server described by a redis:// URL.
func NewPersistence(ctx context.Context, databaseURL string, opts ...Option) (*Persistence, error) {
	options, err := backend.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := backend.NewClient(options)

	err = client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewFromClient(client, opts...), nil
}

// NewFromClient creates the persistence layer from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Persistence {
	repo := &RunRepository{
		client: client,
		prefix: defaultPrefix,
	}

	for _, opt := range opts {
		opt(repo)
	}

	return &Persistence{
		client:  client,
		runRepo: repo,
	}
}

// RunRepository returns the run repository implementation for Redis.
func (p *Persistence) RunRepository() persistence.RunRepository {
	return p.runRepo
}

// HealthCheck verifies the Redis connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

// Close closes the Redis client.
func (p *Persistence) Close(_ context.Context) error {
	return p.client.Close()
}
