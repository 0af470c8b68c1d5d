// Package pkg provides the libraries behind strokeset, which turns recorded
// pen strokes into an image classification dataset.
//
// # Overview
//
// The pkg directory is organized by pipeline stage:
//
//  1. [stroke] - Data model (points, strokes, samples, ordered datasets)
//  2. [source] - Loaders for JSON files, MongoDB and Redis
//  3. [raster] - Rendering samples to binary grayscale PNGs
//  4. [split] - Seeded train/val/test partition of the rendered images
//  5. [archive] - Packing the splits into a tar.xz archive
//  6. [pipeline] - Orchestration (load → rasterize → split → pack)
//
// Supporting packages are [config] (TOML configuration), [errors]
// (structured error codes), [observability] (stage hooks) and [buildinfo].
//
// # Architecture
//
//	training_data.json / MongoDB / Redis
//	         ↓
//	    [source] package (label → samples)
//	         ↓
//	    [raster] package (images<N>/<label>/<n>.png)
//	         ↓
//	    [split] package (images_data<N>/{train,val,test}/<label>/)
//	         ↓
//	    [archive] package (images.tar.xz)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.OptionsFromConfig(config.Default()))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.ArchivePath)
//
// [stroke]: github.com/matzehuels/strokeset/pkg/stroke
// [source]: github.com/matzehuels/strokeset/pkg/source
// [raster]: github.com/matzehuels/strokeset/pkg/raster
// [split]: github.com/matzehuels/strokeset/pkg/split
// [archive]: github.com/matzehuels/strokeset/pkg/archive
// [pipeline]: github.com/matzehuels/strokeset/pkg/pipeline
// [config]: github.com/matzehuels/strokeset/pkg/config
// [errors]: github.com/matzehuels/strokeset/pkg/errors
// [observability]: github.com/matzehuels/strokeset/pkg/observability
// [buildinfo]: github.com/matzehuels/strokeset/pkg/buildinfo
package pkg
