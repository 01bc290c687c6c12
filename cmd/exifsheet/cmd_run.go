package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"greg-hacke/exifsheet/logger"
	"greg-hacke/exifsheet/pipeline"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Scan the root once and write the report (default)",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := pipeline.Run(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d of %d files (%s) -> %s\n",
		okStyle.Render("wrote"), res.Rows, res.Matched, humanize.Bytes(uint64(res.Bytes)), res.Output)
	for _, s := range res.Skipped {
		fmt.Fprintf(out, "%s %s: %v\n", warnStyle.Render("skipped"), s.Path, s.Err)
	}
	if res.Published != "" {
		fmt.Fprintf(out, "%s %s\n", okStyle.Render("published"), res.Published)
	}
	return nil
}
