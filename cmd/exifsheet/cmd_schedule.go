package main

import (
	"github.com/spf13/cobra"

	"greg-hacke/exifsheet/logger"
	"greg-hacke/exifsheet/pipeline"
)

func newScheduleCmd() *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Rebuild the report on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			defer log.Sync()

			return pipeline.Schedule(cmd.Context(), spec, cfg, log)
		},
	}
	cmd.Flags().StringVar(&spec, "cron", "@daily", "Cron spec or descriptor, e.g. \"0 3 * * *\" or \"@every 1h\"")
	return cmd
}
