package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/strokeset/pkg/pipeline"
)

// rasterizeCommand creates the rasterize command (load + rasterize).
func (c *CLI) rasterizeCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "rasterize",
		Short: "Render samples to images<size>/<label>/<n>.png",
		Long: `Load the samples and render each one to a grayscale PNG.

Images already on disk are left untouched and reported as existing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts, true)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			popts := pipeline.OptionsFromConfig(cfg)
			runner := c.newRunner()

			prog := newProgress(loggerFromContext(cmd.Context()))
			ds, err := runner.Load(ctx, popts)
			if err != nil {
				return err
			}
			st, err := runner.Rasterize(ctx, ds, popts)
			if err != nil {
				return err
			}
			prog.done("Rendered images")

			w := cmd.OutOrStdout()
			printSuccess(w, "Rendered %d samples from %d labels", st.Total, ds.Len())
			printStats(w, "created", st.Created, "existing", st.Skipped, "blank", st.Blank)
			printFile(w, popts.ImageDir())
			return nil
		},
	}

	opts.addSourceFlags(cmd)
	opts.addOutputFlags(cmd, flagSize, flagWorkDir)
	return cmd
}

// splitCommand creates the split command.
func (c *CLI) splitCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split rendered images into train, val and test sets",
		Long: `Copy the images under images<size>/ into images_data<size>/{train,val,test}/.

Each label's files are shuffled with the seeded generator and assigned by the
configured ratios (70/20/10 by default). The first file of a label is also
copied into any split that has no file of that label yet. Zero-byte images
are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts, false)
			if err != nil {
				return err
			}
			popts := pipeline.OptionsFromConfig(cfg)

			prog := newProgress(loggerFromContext(cmd.Context()))
			st, err := c.newRunner().Split(cmd.Context(), popts)
			if err != nil {
				return err
			}
			prog.done("Split images")

			w := cmd.OutOrStdout()
			printSuccess(w, "Split %d images from %d labels (%s)", st.Files, st.Labels, popts.Ratios)
			printSplitStats(w, st)
			printFile(w, popts.DataDir())
			return nil
		},
	}

	opts.addOutputFlags(cmd, flagSize, flagSeed, flagWorkDir)
	return cmd
}

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack the splits into an xz-compressed tarball",
		Long: `Archive images_data<size>/{train,val,test} as images.tar.xz with train/,
val/ and test/ at the top level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts, false)
			if err != nil {
				return err
			}
			popts := pipeline.OptionsFromConfig(cfg)

			prog := newProgress(loggerFromContext(cmd.Context()))
			st, err := c.newRunner().Pack(cmd.Context(), popts)
			if err != nil {
				return err
			}
			prog.done("Packed archive")

			w := cmd.OutOrStdout()
			printSuccess(w, "Packed %d files", st.Files)
			printStats(w, "directories", st.Dirs, "bytes", st.Bytes, "compressed", st.Size)
			printFile(w, popts.ArchivePath())
			return nil
		},
	}

	opts.addOutputFlags(cmd, flagSize, flagWorkDir, flagOutput)
	return cmd
}
