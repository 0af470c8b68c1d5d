package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strokeset/pkg/archive"
	"github.com/matzehuels/strokeset/pkg/config"
	"github.com/matzehuels/strokeset/pkg/observability"
	"github.com/matzehuels/strokeset/pkg/raster"
	"github.com/matzehuels/strokeset/pkg/source"
	"github.com/matzehuels/strokeset/pkg/split"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// OpenFunc returns the loader for a source configuration.
type OpenFunc func(cfg config.Source, logger *log.Logger) (source.Loader, error)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger and loader factory; it
// doesn't store pipeline results between calls.
type Runner struct {
	Logger *log.Logger

	// Open creates the sample loader. Defaults to source.Open.
	Open OpenFunc
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Open: source.Open}
}

// Execute runs the complete load → rasterize → split → pack pipeline.
// It stops at the first failing stage; outputs of earlier stages stay on disk.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	result := &Result{ArchivePath: opts.ArchivePath()}

	var err error
	result.Dataset, result.Source, result.Stats.LoadTime, err = r.load(ctx, opts)
	if err != nil {
		return nil, err
	}

	result.Raster, result.Stats.RasterizeTime, err = r.rasterize(ctx, result.Dataset, opts)
	if err != nil {
		return nil, err
	}

	result.Split, result.Stats.SplitTime, err = r.split(ctx, opts)
	if err != nil {
		return nil, err
	}

	result.Archive, result.Stats.PackTime, err = r.pack(ctx, opts)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Load reads the dataset from the configured source.
func (r *Runner) Load(ctx context.Context, opts Options) (*stroke.Dataset, error) {
	ds, _, _, err := r.load(ctx, opts)
	return ds, err
}

// Rasterize renders ds under opts.WorkDir.
func (r *Runner) Rasterize(ctx context.Context, ds *stroke.Dataset, opts Options) (raster.Stats, error) {
	if err := opts.Validate(); err != nil {
		return raster.Stats{}, err
	}
	st, _, err := r.rasterize(ctx, ds, opts)
	return st, err
}

// Split partitions the images already rendered under opts.WorkDir.
func (r *Runner) Split(ctx context.Context, opts Options) (split.Stats, error) {
	if err := opts.Validate(); err != nil {
		return split.Stats{}, err
	}
	st, _, err := r.split(ctx, opts)
	return st, err
}

// Pack archives the splits already written under opts.WorkDir.
func (r *Runner) Pack(ctx context.Context, opts Options) (archive.Stats, error) {
	if err := opts.Validate(); err != nil {
		return archive.Stats{}, err
	}
	st, _, err := r.pack(ctx, opts)
	return st, err
}

func (r *Runner) load(ctx context.Context, opts Options) (*stroke.Dataset, string, time.Duration, error) {
	open := r.Open
	if open == nil {
		open = source.Open
	}

	var (
		ds   *stroke.Dataset
		name string
	)
	d, err := r.stage(ctx, observability.StageLoad, func() (int, error) {
		l, err := open(opts.Source, r.Logger)
		if err != nil {
			return 0, err
		}
		name = l.Name()
		r.Logger.Debug("loading samples", "source", name)
		ds, err = l.Load(ctx)
		if err != nil {
			return 0, err
		}
		return ds.SampleCount(), nil
	})
	if err != nil {
		return nil, name, d, err
	}

	r.Logger.Info("loaded samples",
		"source", name,
		"labels", ds.Len(),
		"samples", ds.SampleCount(),
		"duration", d.Round(time.Millisecond))
	return ds, name, d, nil
}

func (r *Runner) rasterize(ctx context.Context, ds *stroke.Dataset, opts Options) (raster.Stats, time.Duration, error) {
	var st raster.Stats
	d, err := r.stage(ctx, observability.StageRasterize, func() (int, error) {
		var err error
		st, err = raster.NewWriter(opts.WorkDir, opts.Size, r.Logger).WriteAll(ctx, ds)
		return st.Created, err
	})
	if err != nil {
		return st, d, err
	}

	r.Logger.Info("rendered images",
		"dir", opts.ImageDir(),
		"created", st.Created,
		"skipped", st.Skipped,
		"duration", d.Round(time.Millisecond))
	if st.Blank > 0 {
		r.Logger.Debug("images without ink", "count", st.Blank)
	}
	return st, d, nil
}

func (r *Runner) split(ctx context.Context, opts Options) (split.Stats, time.Duration, error) {
	var st split.Stats
	d, err := r.stage(ctx, observability.StageSplit, func() (int, error) {
		s := split.New(opts.ImageDir(), opts.DataDir(), opts.Seed, r.Logger)
		s.Ratios = opts.Ratios
		var err error
		st, err = s.Run(ctx)
		return st.Files, err
	})
	if err != nil {
		return st, d, err
	}

	r.Logger.Info("split images",
		"ratios", opts.Ratios.String(),
		"labels", st.Labels,
		string(split.Train), st.Copies[split.Train],
		string(split.Val), st.Copies[split.Val],
		string(split.Test), st.Copies[split.Test],
		"duration", d.Round(time.Millisecond))
	return st, d, nil
}

func (r *Runner) pack(ctx context.Context, opts Options) (archive.Stats, time.Duration, error) {
	var st archive.Stats
	d, err := r.stage(ctx, observability.StagePack, func() (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		names := make([]string, len(split.Names))
		for i, n := range split.Names {
			names[i] = string(n)
		}
		var err error
		st, err = archive.Pack(opts.ArchivePath(), opts.DataDir(), names...)
		return st.Dirs + st.Files, err
	})
	if err != nil {
		return st, d, err
	}

	r.Logger.Info("wrote archive",
		"path", opts.ArchivePath(),
		"files", st.Files,
		"bytes", st.Size,
		"duration", d.Round(time.Millisecond))
	return st, d, nil
}

// stage runs fn between the start and completion hooks and prefixes any
// error with the stage name.
func (r *Runner) stage(ctx context.Context, name string, fn func() (int, error)) (time.Duration, error) {
	hooks := observability.Stages()
	hooks.OnStageStart(ctx, name)

	start := time.Now()
	items, err := fn()
	d := time.Since(start)

	hooks.OnStageComplete(ctx, name, items, d, err)
	if err != nil {
		return d, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}
