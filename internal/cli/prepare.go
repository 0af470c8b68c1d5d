package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strokeset/pkg/config"
	"github.com/matzehuels/strokeset/pkg/pipeline"
	"github.com/matzehuels/strokeset/pkg/split"
)

// prepareCommand creates the prepare command running the whole pipeline.
func (c *CLI) prepareCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Load, rasterize, split and pack a dataset",
		Long: `Run the whole preparation pipeline.

Samples are loaded from the configured source and rendered to
images<size>/<label>/<n>.png. Existing images are kept, so an interrupted run
can simply be repeated. The images are then copied into
images_data<size>/{train,val,test}/<label>/ and packed into images.tar.xz.

Examples:
  strokeset prepare                                  # training_data.json, 32px, seed 0
  strokeset prepare -i strokes.json --size 28
  MONGODB_URI=mongodb://localhost strokeset prepare --source mongo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts, true)
			if err != nil {
				return err
			}
			return c.runPrepare(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	opts.addSourceFlags(cmd)
	opts.addOutputFlags(cmd, flagSize, flagSeed, flagWorkDir, flagOutput)
	return cmd
}

// runPrepare executes every stage and prints a summary.
func (c *CLI) runPrepare(ctx context.Context, w io.Writer, cfg config.Config) error {
	prog := newProgress(loggerFromContext(ctx))
	result, err := c.newRunner().Execute(ctx, pipeline.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	prog.done("Prepared dataset")

	printSuccess(w, "Prepared %d images from %d labels", result.Raster.Total, result.Dataset.Len())
	printStats(w, "created", result.Raster.Created, "existing", result.Raster.Skipped)
	printSplitStats(w, result.Split)
	printFile(w, result.ArchivePath)
	return nil
}

// printSplitStats prints the per-split copy counts and any skipped files.
func printSplitStats(w io.Writer, st split.Stats) {
	printStats(w,
		string(split.Train), st.Copies[split.Train],
		string(split.Val), st.Copies[split.Val],
		string(split.Test), st.Copies[split.Test])
	if st.Skipped > 0 {
		printWarning(w, "%d empty images left out of every split", st.Skipped)
	}
}
