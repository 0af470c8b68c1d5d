package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strokeset/pkg/config"
)

// configFileName is looked up in the work directory when --config is not given.
const configFileName = config.DefaultFile

// Flag names shared by the stage commands.
const (
	flagSource  = "source"
	flagInput   = "input"
	flagSize    = "size"
	flagSeed    = "seed"
	flagWorkDir = "workdir"
	flagOutput  = "output"
)

// stageOpts holds the stage flags. A flag only overrides the config file
// when it was set explicitly.
type stageOpts struct {
	source  string
	input   string
	size    int
	seed    uint64
	workdir string
	output  string
}

// addSourceFlags registers the flags selecting the sample store.
func (o *stageOpts) addSourceFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVar(&o.source, flagSource, def.Source.Kind, "sample source: file, mongo, redis")
	cmd.Flags().StringVarP(&o.input, flagInput, "i", def.Source.Path, "JSON dataset (file source)")
}

// addOutputFlags registers the named output flags.
func (o *stageOpts) addOutputFlags(cmd *cobra.Command, names ...string) {
	def := config.Default()
	for _, name := range names {
		switch name {
		case flagSize:
			cmd.Flags().IntVar(&o.size, flagSize, def.Raster.Size, "image side length in pixels")
		case flagSeed:
			cmd.Flags().Uint64Var(&o.seed, flagSeed, def.Split.Seed, "split shuffle seed")
		case flagWorkDir:
			cmd.Flags().StringVarP(&o.workdir, flagWorkDir, "w", def.Output.WorkDir, "directory outputs are written under")
		case flagOutput:
			cmd.Flags().StringVarP(&o.output, flagOutput, "o", def.Output.Archive, "archive path (relative to workdir)")
		}
	}
}

// loadConfig builds the run configuration for cmd: defaults, then the
// config file, then explicitly set flags. Connection strings are resolved
// from the environment. When needSource is false the source section is not
// validated, so stages that never load samples work without credentials.
func (c *CLI) loadConfig(cmd *cobra.Command, o *stageOpts, needSource bool) (config.Config, error) {
	flags := cmd.Flags()

	path, required := c.configPath, true
	if path == "" {
		dir := config.Default().Output.WorkDir
		if flags.Lookup(flagWorkDir) != nil && flags.Changed(flagWorkDir) {
			dir = o.workdir
		}
		path, required = filepath.Join(dir, configFileName), false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "path", path)

	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed(flagSource) {
		cfg.Source.Kind = o.source
	}
	if changed(flagInput) {
		cfg.Source.Path = o.input
	}
	if changed(flagSize) {
		cfg.Raster.Size = o.size
	}
	if changed(flagSeed) {
		cfg.Split.Seed = o.seed
	}
	if changed(flagWorkDir) {
		cfg.Output.WorkDir = o.workdir
	}
	if changed(flagOutput) {
		cfg.Output.Archive = o.output
	}

	if needSource {
		cfg.ResolveEnv(c.Getenv)
		if err := cfg.ValidateSource(); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.ValidateOutput()
}
