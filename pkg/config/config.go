// Package config holds the settings of a strokeset run.
//
// Values come from three layers, later ones winning: built-in defaults that
// reproduce the classic 32-pixel, seed-0, 70/20/10 preparation; an optional
// TOML file; and command-line flags applied by the CLI. Connection strings
// are never read from the file, only from the environment.
//
// Example strokeset.toml:
//
//	[source]
//	kind = "mongo"
//	database = "hieroglyphic"
//	collection = "samples"
//
//	[raster]
//	size = 28
//
//	[split]
//	seed = 1
//	train = 0.8
//	val = 0.1
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/strokeset/pkg/archive"
	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/raster"
	"github.com/matzehuels/strokeset/pkg/split"
)

// DefaultFile is the config file looked up when none is given explicitly.
const DefaultFile = "strokeset.toml"

// Source kinds.
const (
	KindFile  = "file"
	KindMongo = "mongo"
	KindRedis = "redis"
)

// Environment variables holding connection strings.
const (
	EnvMongoURI = "MONGODB_URI"
	EnvRedisURL = "REDIS_URL"
)

// Source defaults.
const (
	DefaultInput      = "training_data.json"
	DefaultDatabase   = "strokeset"
	DefaultCollection = "samples"
	DefaultRedisKey   = "strokeset:samples"
)

// Config is the complete configuration of a run.
type Config struct {
	Source Source `toml:"source"`
	Raster Raster `toml:"raster"`
	Split  Split  `toml:"split"`
	Output Output `toml:"output"`
}

// Source selects where samples are loaded from.
type Source struct {
	Kind       string `toml:"kind"`       // file, mongo or redis
	Path       string `toml:"path"`       // file: JSON document
	Database   string `toml:"database"`   // mongo
	Collection string `toml:"collection"` // mongo
	Key        string `toml:"key"`        // redis: hash holding label -> samples

	// URI is the connection string, filled from the environment.
	URI string `toml:"-"`
}

// Raster configures image rendering.
type Raster struct {
	Size int `toml:"size"`
}

// Split configures the train/val/test partition.
type Split struct {
	Seed  uint64  `toml:"seed"`
	Train float64 `toml:"train"`
	Val   float64 `toml:"val"`
}

// Ratios returns the configured partition shares.
func (s Split) Ratios() split.Ratios {
	return split.Ratios{Train: s.Train, Val: s.Val}
}

// Output configures where results are written.
type Output struct {
	WorkDir string `toml:"workdir"`
	Archive string `toml:"archive"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: Source{
			Kind:       KindFile,
			Path:       DefaultInput,
			Database:   DefaultDatabase,
			Collection: DefaultCollection,
			Key:        DefaultRedisKey,
		},
		Raster: Raster{Size: raster.DefaultSize},
		Split: Split{
			Seed:  split.DefaultSeed,
			Train: split.DefaultRatios.Train,
			Val:   split.DefaultRatios.Val,
		},
		Output: Output{WorkDir: ".", Archive: archive.DefaultName},
	}
}

// Load returns the defaults overlaid with the TOML file at path.
//
// A missing file is only an error when required is set; otherwise the
// defaults are returned unchanged. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return cfg, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, serrors.Wrap(serrors.ErrCodeIO, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, serrors.New(serrors.ErrCodeInvalidFormat, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ResolveEnv fills the connection string for the selected source kind from
// the environment, using getenv (os.Getenv when nil).
func (c *Config) ResolveEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch c.Source.Kind {
	case KindMongo:
		c.Source.URI = getenv(EnvMongoURI)
	case KindRedis:
		c.Source.URI = getenv(EnvRedisURL)
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	return c.ValidateOutput()
}

// ValidateSource checks the source section. A database source without a
// connection string is a CONFIG error naming the missing environment variable.
func (c *Config) ValidateSource() error {
	switch c.Source.Kind {
	case KindFile:
		if c.Source.Path == "" {
			return serrors.New(serrors.ErrCodeConfig, "file source needs a path")
		}
	case KindMongo:
		if c.Source.URI == "" {
			return serrors.New(serrors.ErrCodeConfig, "%s is not set", EnvMongoURI)
		}
		if c.Source.Database == "" || c.Source.Collection == "" {
			return serrors.New(serrors.ErrCodeConfig, "mongo source needs a database and a collection")
		}
	case KindRedis:
		if c.Source.URI == "" {
			return serrors.New(serrors.ErrCodeConfig, "%s is not set", EnvRedisURL)
		}
		if c.Source.Key == "" {
			return serrors.New(serrors.ErrCodeConfig, "redis source needs a key")
		}
	default:
		return serrors.New(serrors.ErrCodeConfig, "unknown source kind %q (want %s, %s or %s)",
			c.Source.Kind, KindFile, KindMongo, KindRedis)
	}
	return nil
}

// ValidateOutput checks the settings used by the rasterize, split and pack
// stages.
func (c *Config) ValidateOutput() error {
	if c.Raster.Size < 1 {
		return serrors.New(serrors.ErrCodeConfig, "image size must be positive, got %d", c.Raster.Size)
	}
	return c.Split.Ratios().Validate()
}

// ArchivePath returns the archive location, resolving a relative name
// against the work directory.
func (c *Config) ArchivePath() string {
	if filepath.IsAbs(c.Output.Archive) {
		return c.Output.Archive
	}
	return filepath.Join(c.Output.WorkDir, c.Output.Archive)
}
