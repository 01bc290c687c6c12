// Package pipeline runs one scan-extract-report pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"greg-hacke/exifsheet/config"
	"greg-hacke/exifsheet/meta"
	"greg-hacke/exifsheet/publish"
	"greg-hacke/exifsheet/report"
	"greg-hacke/exifsheet/scan"
	"greg-hacke/exifsheet/tags"
)

// ErrNoMatches is returned when no file under the root matches the pattern.
// Nothing is written in that case.
var ErrNoMatches = errors.New("no matching files")

// Skipped records a file left out of the report under the skip policy.
type Skipped struct {
	Path string
	Err  error
}

// Result summarizes a run.
type Result struct {
	Matched   int
	Rows      int
	Skipped   []Skipped
	Output    string
	Published string
	Bytes     int64 // total size of the matched files
}

// newPublisher is replaced in tests.
var newPublisher = publish.FromConfig

// Run executes the pipeline described by cfg. It publishes the report when
// cfg configures a destination; the publisher lives for this run only.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var pub publish.Publisher
	if cfg.Publish.Enabled() {
		p, err := newPublisher(ctx, cfg.Publish)
		if err != nil {
			return nil, fmt.Errorf("publisher: %w", err)
		}
		if p != nil {
			pub = p
			defer func() {
				if err := pub.Close(); err != nil {
					log.Warn("close publisher", zap.Error(err))
				}
			}()
		}
	}
	return run(ctx, cfg, log, pub)
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger, pub publish.Publisher) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pattern, err := cfg.Regexp()
	if err != nil {
		return nil, err
	}

	for _, name := range unknownTags(tags.Default(), cfg.Tags) {
		log.Warn("tag name not in the tag table, its column will stay empty", zap.String("tag", name))
	}

	log.Info("scanning", zap.String("root", cfg.RootDir), zap.String("pattern", cfg.Pattern))
	files, err := scan.Files(cfg.RootDir, scan.Options{Pattern: pattern, Exclude: cfg.Exclude})
	if err != nil {
		return nil, err
	}

	res := &Result{Matched: len(files), Output: cfg.OutputPath}
	for _, f := range files {
		res.Bytes += f.Size
	}
	log.Info("matched files",
		zap.Int("count", len(files)),
		zap.String("size", humanize.Bytes(uint64(res.Bytes))))
	if len(files) == 0 {
		log.Warn("no matching files, report not written", zap.String("root", cfg.RootDir))
		return res, ErrNoMatches
	}

	reader := meta.NewReader(tags.Default(), cfg.ReaderOptions())
	allow := cfg.AllowList()

	paths := make([]string, 0, len(files))
	projections := make([]report.Projection, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		md, err := reader.ReadFile(f.Path)
		if err != nil {
			if cfg.OnError != config.OnErrorSkip {
				return nil, err
			}
			log.Warn("skipping file", zap.String("path", f.Path), zap.Error(err))
			res.Skipped = append(res.Skipped, Skipped{Path: f.Path, Err: err})
			continue
		}

		p := report.Project(md, allow)
		log.Debug("extracted",
			zap.String("path", f.Path),
			zap.String("format", string(md.Format)),
			zap.Int("entries", len(md.Entries)),
			zap.Int("projected", p.Len()))
		paths = append(paths, f.Path)
		projections = append(projections, p)
	}

	table, err := report.Assemble(paths, projections, cfg.MissingPolicy())
	if err != nil {
		return nil, err
	}
	if err := report.Write(cfg.OutputPath, table); err != nil {
		return nil, err
	}
	res.Rows = len(table.Rows)
	log.Info("report written",
		zap.String("path", cfg.OutputPath),
		zap.Int("rows", res.Rows),
		zap.Int("columns", len(table.Columns)),
		zap.Int("skipped", len(res.Skipped)))

	if pub != nil {
		loc, err := pub.Publish(ctx, cfg.OutputPath)
		if err != nil {
			return res, fmt.Errorf("publish %s: %w", cfg.OutputPath, err)
		}
		res.Published = loc
		log.Info("report published", zap.String("location", loc))
	}
	return res, nil
}

// unknownTags returns the names that table cannot resolve. Decimal ids are
// accepted since unmapped tags are reported under their number.
func unknownTags(table *tags.Table, names []string) []string {
	var out []string
	for _, name := range names {
		if _, ok := table.ByName(name); ok {
			continue
		}
		if _, err := strconv.ParseUint(name, 10, 16); err == nil {
			continue
		}
		out = append(out, name)
	}
	return out
}
