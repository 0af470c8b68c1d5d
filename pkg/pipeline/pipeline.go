// Package pipeline provides the dataset preparation pipeline for strokeset.
//
// This package sequences the load → rasterize → split → pack stages so the
// CLI commands share one implementation, whether they run the whole
// preparation or a single stage.
//
// # Architecture
//
// The pipeline consists of four stages, run strictly one after another:
//
//  1. Load: Read labeled stroke samples from a JSON file, MongoDB or Redis
//  2. Rasterize: Render every sample to images<N>/<label>/<index>.png
//  3. Split: Copy the images into images_data<N>/{train,val,test}/<label>/
//  4. Pack: Bundle the three splits into images.tar.xz
//
// Each stage can be run independently or as part of the complete pipeline.
// Stage start and completion are reported to the registered
// observability.StageHooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.OptionsFromConfig(config.Default())
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.ArchivePath)
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/matzehuels/strokeset/pkg/archive"
	"github.com/matzehuels/strokeset/pkg/config"
	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/raster"
	"github.com/matzehuels/strokeset/pkg/split"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the preparation pipeline.
type Options struct {
	// Source selects the sample store. Database kinds need URI resolved.
	Source config.Source

	// Size is the side length of the rendered images in pixels.
	Size int

	// Seed seeds the split shuffle and draws.
	Seed uint64

	// Ratios are the train and val shares; test takes the rest.
	Ratios split.Ratios

	// WorkDir is the directory all outputs are written under.
	WorkDir string

	// Archive is the archive path, relative to WorkDir unless absolute.
	Archive string
}

// OptionsFromConfig returns the pipeline options described by cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Source:  cfg.Source,
		Size:    cfg.Raster.Size,
		Seed:    cfg.Split.Seed,
		Ratios:  cfg.Split.Ratios(),
		WorkDir: cfg.Output.WorkDir,
		Archive: cfg.Output.Archive,
	}
}

// Validate checks the settings shared by every stage and fills an empty
// WorkDir and Archive with their defaults.
func (o *Options) Validate() error {
	if o.Size < 1 {
		return serrors.New(serrors.ErrCodeConfig, "image size must be positive, got %d", o.Size)
	}
	if o.WorkDir == "" {
		o.WorkDir = "."
	}
	if o.Archive == "" {
		o.Archive = archive.DefaultName
	}
	return o.Ratios.Validate()
}

// ImageDir returns the directory holding the rendered images.
func (o Options) ImageDir() string {
	return raster.ImageDir(o.WorkDir, o.Size)
}

// DataDir returns the directory holding the train/val/test splits.
func (o Options) DataDir() string {
	return split.DataDir(o.WorkDir, o.Size)
}

// ArchivePath returns where the archive is written.
func (o Options) ArchivePath() string {
	if filepath.IsAbs(o.Archive) {
		return o.Archive
	}
	return filepath.Join(o.WorkDir, o.Archive)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded sample set.
	Dataset *stroke.Dataset

	// Source names the store the dataset came from.
	Source string

	// Raster reports the images written and skipped.
	Raster raster.Stats

	// Split reports the files copied into each split.
	Split split.Stats

	// Archive describes the written archive.
	Archive archive.Stats

	// ArchivePath is where the archive was written.
	ArchivePath string

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution timings.
type Stats struct {
	LoadTime      time.Duration
	RasterizeTime time.Duration
	SplitTime     time.Duration
	PackTime      time.Duration
}

// Total returns the time spent across all stages.
func (s Stats) Total() time.Duration {
	return s.LoadTime + s.RasterizeTime + s.SplitTime + s.PackTime
}
