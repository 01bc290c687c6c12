package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"greg-hacke/exifsheet/config"
)

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Schedule runs the pipeline on a cron spec until ctx is done. A run that
// is still going when the next one is due is skipped. Failed runs are
// logged and do not stop the schedule.
func Schedule(ctx context.Context, spec string, cfg config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cl := cronLogger{log: log.Sugar()}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	_, err := c.AddFunc(spec, func() {
		res, err := Run(ctx, cfg, log)
		switch {
		case errors.Is(err, ErrNoMatches):
			log.Info("scheduled run found no files")
		case err != nil:
			log.Error("scheduled run failed", zap.Error(err))
		default:
			log.Info("scheduled run finished",
				zap.Int("rows", res.Rows),
				zap.Int("skipped", len(res.Skipped)))
		}
	})
	if err != nil {
		return fmt.Errorf("cron spec %q: %w", spec, err)
	}

	log.Info("schedule started", zap.String("spec", spec))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("schedule stopped")
	return nil
}
