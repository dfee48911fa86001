// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexal/lexal-node/pkg/config"
	"github.com/lexal/lexal-node/pkg/persistence"
	"github.com/lexal/lexal-node/pkg/persistence/file"
	"github.com/lexal/lexal-node/pkg/persistence/postgresql"
	"github.com/lexal/lexal-node/pkg/persistence/redis"
)

var supportedPersistenceProviders = []string{"file", "postgres", "postgresql", "redis", "rediss"}

// NewPersistence picks the run store from the scheme of databaseURL. A bare path is a file store.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string, redisConfig config.RedisConfig) (persistence.Persistence, error) {
	provider := parsePersistenceProvider(databaseURL)

	logger.InfoContext(ctx, "Using persistence provider", "provider", provider)

	switch provider {
	case "postgres", "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, err
		}

		return p, nil
	case "redis", "rediss":
		var opts []redis.Option
		if redisConfig.Prefix != "" {
			opts = append(opts, redis.WithPrefix(redisConfig.Prefix))
		}

		if redisConfig.TTL > 0 {
			opts = append(opts, redis.WithTTL(redisConfig.TTL))
		}

		p, err := redis.NewPersistence(ctx, databaseURL, opts...)
		if err != nil {
			return nil, err
		}

		return p, nil
	case "file":
		return file.NewPersistence(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported persistence provider: %s", provider)
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	for _, supported := range supportedPersistenceProviders {
		if provider == supported {
			return provider
		}
	}

	return provider
}
