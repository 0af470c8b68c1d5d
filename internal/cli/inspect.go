package cli

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strokeset/pkg/archive"
	"github.com/matzehuels/strokeset/pkg/config"
	"github.com/matzehuels/strokeset/pkg/pipeline"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// inspectCommand creates the inspect command printing dataset statistics.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		opts        stageOpts
		withArchive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print per-label statistics of a dataset",
		Long: `Load the samples and print, per label, the number of samples, strokes and
points and how many samples have no points at all. Nothing is written.

With --archive the configured archive is read as well and its files are
counted per split.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts, true)
			if err != nil {
				return err
			}
			ds, err := c.newRunner().Load(cmd.Context(), pipeline.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printDatasetStats(w, cfg, ds)
			if !withArchive {
				return nil
			}
			entries, err := archive.List(cfg.ArchivePath())
			if err != nil {
				return err
			}
			printArchiveStats(w, cfg.ArchivePath(), entries)
			return nil
		},
	}

	opts.addSourceFlags(cmd)
	opts.addOutputFlags(cmd, flagWorkDir, flagOutput)
	cmd.Flags().BoolVar(&withArchive, "archive", false, "also summarize the packed archive")
	return cmd
}

// printDatasetStats prints the per-label table and totals.
func printDatasetStats(w io.Writer, cfg config.Config, ds *stroke.Dataset) {
	st := ds.Stats()

	printKeyValue(w, "source", cfg.Source.Kind)
	printKeyValue(w, "labels", strconv.Itoa(len(st.Labels)))
	printKeyValue(w, "samples", strconv.Itoa(st.Samples))
	printKeyValue(w, "strokes", strconv.Itoa(st.Strokes))
	printKeyValue(w, "points", strconv.Itoa(st.Points))
	if len(st.Labels) == 0 {
		return
	}

	rows := make([][]string, len(st.Labels))
	for i, ls := range st.Labels {
		rows[i] = []string{
			ls.Label,
			strconv.Itoa(ls.Samples),
			strconv.Itoa(ls.Strokes),
			strconv.Itoa(ls.Points),
			strconv.Itoa(ls.Empty),
		}
	}
	io.WriteString(w, "\n")
	printTable(w, []string{"LABEL", "SAMPLES", "STROKES", "POINTS", "EMPTY"}, rows)

	if st.Empty > 0 {
		printWarning(w, "%d samples have no points and render as blank images", st.Empty)
	}
}

// splitCount is the archive summary of one top-level directory.
type splitCount struct {
	labels int
	files  int
}

// printArchiveStats prints files and labels per top-level archive directory.
func printArchiveStats(w io.Writer, path string, entries []archive.Entry) {
	counts := map[string]*splitCount{}
	for _, e := range entries {
		parts := strings.Split(strings.TrimSuffix(e.Name, "/"), "/")
		sc, ok := counts[parts[0]]
		if !ok {
			sc = &splitCount{}
			counts[parts[0]] = sc
		}
		switch {
		case e.Dir && len(parts) == 2:
			sc.labels++
		case !e.Dir:
			sc.files++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name, strconv.Itoa(counts[name].labels), strconv.Itoa(counts[name].files)}
	}

	io.WriteString(w, "\n")
	printInfo(w, "%s", path)
	printTable(w, []string{"SPLIT", "LABELS", "FILES"}, rows)
}
