// Package source loads labeled stroke samples from their backing store.
//
// Three stores are supported: a local JSON document ([file]), a MongoDB
// collection ([mongo]) and a Redis hash ([redis]). Each [Loader] makes a
// single attempt: it opens its connection, reads everything into a
// [stroke.Dataset] and closes the connection before returning, on success
// and on failure alike. There are no retries and no partial results.
//
// [file]: github.com/matzehuels/strokeset/pkg/source/file
// [mongo]: github.com/matzehuels/strokeset/pkg/source/mongo
// [redis]: github.com/matzehuels/strokeset/pkg/source/redis
package source

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strokeset/pkg/config"
	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/source/file"
	"github.com/matzehuels/strokeset/pkg/source/mongo"
	"github.com/matzehuels/strokeset/pkg/source/redis"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// Loader reads a complete dataset.
type Loader interface {
	// Load returns all samples. Configuration problems are CONFIG errors and
	// an unreachable store is a CONNECTION error.
	Load(ctx context.Context) (*stroke.Dataset, error)

	// Name describes the store for log output, without credentials.
	Name() string
}

// Open returns the loader selected by cfg.Kind. The connection string must
// already be resolved into cfg.URI for database kinds.
func Open(cfg config.Source, logger *log.Logger) (Loader, error) {
	if logger == nil {
		logger = log.Default()
	}
	switch cfg.Kind {
	case config.KindFile:
		return file.New(cfg.Path), nil
	case config.KindMongo:
		src, err := mongo.New(cfg.URI, cfg.Database, cfg.Collection, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.KindRedis:
		src, err := redis.New(cfg.URI, cfg.Key, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return nil, serrors.New(serrors.ErrCodeConfig, "unknown source kind %q", cfg.Kind)
}
