// Package redis loads stroke samples from a Redis hash.
//
// The hash maps each label to a JSON array of samples in the same shape as
// the file variant:
//
//	HSET strokeset:samples alpha '[{"strokes": [[{"x": 0.1, "y": 0.2}]]}]'
//
// Hash fields have no order, so labels are loaded in sorted order.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	goredis "github.com/redis/go-redis/v9"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// Source reads one hash.
type Source struct {
	Key    string
	Logger *log.Logger

	opts *goredis.Options
}

// New parses url and returns a source for the hash at key. An empty or
// malformed url is a CONFIG error; nothing is dialed until Load.
func New(url, key string, logger *log.Logger) (*Source, error) {
	if url == "" {
		return nil, serrors.New(serrors.ErrCodeConfig, "redis URL is empty")
	}
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeConfig, err, "parse redis URL")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Source{Key: key, Logger: logger, opts: opts}, nil
}

// Name returns the server address, database and key.
func (s *Source) Name() string {
	return fmt.Sprintf("redis:%s/%d/%s", s.opts.Addr, s.opts.DB, s.Key)
}

// Load connects, reads the hash and closes the connection.
func (s *Source) Load(ctx context.Context) (*stroke.Dataset, error) {
	client := goredis.NewClient(s.opts)
	defer func() {
		if err := client.Close(); err != nil {
			s.Logger.Warn("redis close failed", "err", err)
		}
	}()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeConnection, err, "ping redis at %s", s.opts.Addr)
	}

	fields, err := client.HGetAll(ctx, s.Key).Result()
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeConnection, err, "read hash %s", s.Key)
	}
	if len(fields) == 0 {
		s.Logger.Warn("redis hash is empty or missing", "key", s.Key)
	}
	return DecodeHash(fields)
}

// DecodeHash builds a dataset from label -> JSON samples pairs, in sorted
// label order.
func DecodeHash(fields map[string]string) (*stroke.Dataset, error) {
	labels := make([]string, 0, len(fields))
	for label := range fields {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	ds := stroke.NewDataset()
	for _, label := range labels {
		var samples []stroke.Sample
		if err := json.Unmarshal([]byte(fields[label]), &samples); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode samples of %q", label)
		}
		if err := ds.Add(label, samples...); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
