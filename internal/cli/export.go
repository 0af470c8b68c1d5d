package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strokeset/pkg/config"
	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/pipeline"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// exportCommand creates the export command writing a dataset as JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var opts stageOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the loaded dataset as a JSON document",
		Long: `Load the samples and write them in the format read by the file source,
keeping label order. This snapshots a database source so later runs can use
--source file.

Examples:
  REDIS_URL=redis://localhost:6379 strokeset export --source redis snapshot.json
  strokeset export -i training_data.json | jq 'keys'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts, true)
			if err != nil {
				return err
			}
			output := ""
			if len(args) == 1 && args[0] != "-" {
				output = args[0]
			}
			return c.runExport(cmd.Context(), cmd.OutOrStdout(), cfg, output)
		},
	}

	opts.addSourceFlags(cmd)
	return cmd
}

// runExport loads the dataset and writes it to output, or to w when output
// is empty.
func (c *CLI) runExport(ctx context.Context, w io.Writer, cfg config.Config, output string) error {
	ds, err := c.newRunner().Load(ctx, pipeline.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	if output == "" {
		return writeDataset(w, ds)
	}

	f, err := os.Create(output)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "create %s", output)
	}
	if err := writeDataset(f, ds); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "close %s", output)
	}
	c.Logger.Info("exported dataset", "path", output, "labels", ds.Len(), "samples", ds.SampleCount())
	return nil
}

func writeDataset(w io.Writer, ds *stroke.Dataset) error {
	bw := bufio.NewWriter(w)
	if err := stroke.WriteJSON(bw, ds); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "write dataset")
	}
	if err := bw.Flush(); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "write dataset")
	}
	return nil
}
