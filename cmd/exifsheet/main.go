package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"greg-hacke/exifsheet/config"
	"greg-hacke/exifsheet/pipeline"
)

// Flags shared by run and schedule. Only flags set on the command line
// override the loaded configuration.
var (
	flagConfig    string
	flagRoot      string
	flagPattern   string
	flagTags      string
	flagOutput    string
	flagExclude   []string
	flagOnError   string
	flagMissing   string
	flagDecoder   string
	flagXMP       bool
	flagSubIFDs   bool
	flagLogLevel  string
	flagLogFormat string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process status: 2 when nothing
// matched, 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pipeline.ErrNoMatches):
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "exifsheet",
		Short:         "Tabulate image EXIF metadata into a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runReport,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file")
	pf.StringVar(&flagRoot, "root", "", "Directory to scan recursively")
	pf.StringVar(&flagPattern, "pattern", "", `Regular expression searched in file names (default "\.jpg")`)
	pf.StringVar(&flagTags, "tags", "", "Comma-separated tag names to report")
	pf.StringVar(&flagOutput, "output", "", "Report path (.xlsx or .csv)")
	pf.StringSliceVar(&flagExclude, "exclude", nil, "Glob of paths to skip, relative to the root (repeatable)")
	pf.StringVar(&flagOnError, "on-error", "", "abort or skip unreadable files")
	pf.StringVar(&flagMissing, "missing", "", "fill or error when a file lacks a reported tag")
	pf.StringVar(&flagDecoder, "decoder", "", "EXIF decoder: builtin or goexif")
	pf.BoolVar(&flagXMP, "xmp", false, "Parse XMP packets")
	pf.BoolVar(&flagSubIFDs, "sub-ifds", true, "Follow the Exif and GPS sub-IFDs")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&flagLogFormat, "log-format", "", "console or json")

	root.AddCommand(newRunCmd(), newDumpCmd(), newTagsCmd(), newScheduleCmd())
	return root
}

// loadConfig resolves the configuration for cmd: defaults, the config
// file, the environment, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("root", &cfg.RootDir, flagRoot)
	set("pattern", &cfg.Pattern, flagPattern)
	set("output", &cfg.OutputPath, flagOutput)
	set("on-error", &cfg.OnError, flagOnError)
	set("missing", &cfg.MissingTags, flagMissing)
	set("decoder", &cfg.Decoder, flagDecoder)
	set("log-level", &cfg.LogLevel, flagLogLevel)
	set("log-format", &cfg.LogFormat, flagLogFormat)
	if flags.Changed("tags") {
		cfg.Tags = config.SplitList(flagTags)
	}
	if flags.Changed("exclude") {
		cfg.Exclude = flagExclude
	}
	if flags.Changed("xmp") {
		cfg.XMP = flagXMP
	}
	if flags.Changed("sub-ifds") {
		cfg.SubIFDs = flagSubIFDs
	}

	return cfg, cfg.Validate()
}
