package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	sitedata "github.com/alnah/go-sitedata"
	"github.com/alnah/go-sitedata/internal/config"
	"github.com/alnah/go-sitedata/internal/dateutil"
	"github.com/alnah/go-sitedata/internal/hints"
	"github.com/alnah/go-sitedata/internal/yamlutil"
)

// runner executes commands against a resolved configuration.
type runner struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer // progress output, io.Discard when quiet
	now    func() time.Time
}

// runCommand parses flags for cmd, resolves configuration and runs it.
func runCommand(ctx context.Context, cmd string, args []string, env *Environment) error {
	flags, err := parseFlags(cmd, args, env.Stdout)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(flags, loadEnvConfig())
	if err != nil {
		return err
	}

	r := &runner{
		cfg:    cfg,
		logger: newLogger(env.Stderr, cfg.Logging.Level, flags.common.quiet, flags.common.verbose),
		out:    env.Stdout,
		now:    env.Now,
	}
	if flags.common.quiet {
		r.out = io.Discard
	}

	switch cmd {
	case "logs":
		return r.logs(ctx)
	case "info":
		return r.info(ctx)
	case "slides":
		return r.slides(false)
	case "resize":
		return r.resize(ctx)
	case "config":
		return r.printConfig(env.Stdout)
	default:
		return r.all(ctx)
	}
}

// resolveConfig builds the effective configuration.
// Precedence: flags > env vars > config file > defaults.
func resolveConfig(flags *cliFlags, env *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, dateutil.ErrInvalidDateFormat) {
			return nil, fmt.Errorf("%w%s", err, hints.ForDateFormat(dateutil.Presets))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Path flags are relative to the working directory, not to the root.
func mergeFlags(flags *cliFlags, cfg *config.Config) error {
	if flags.common.root != "" {
		cfg.Root = flags.common.root
	}
	if flags.common.verbose {
		cfg.Logging.Level = "debug"
	}

	if len(flags.logs.dateFormats) > 0 {
		cfg.Logs.DateFormats = flags.logs.dateFormats
	}

	paths := []struct {
		flag string
		dst  *string
	}{
		{flags.info.source, &cfg.Info.Source},
		{flags.info.output, &cfg.Info.Output},
		{flags.slides.dir, &cfg.Slides.Dir},
		{flags.slides.output, &cfg.Slides.Output},
	}
	for _, p := range paths {
		if p.flag == "" {
			continue
		}
		abs, err := filepath.Abs(p.flag)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		*p.dst = abs
	}

	if flags.resize.maxWidth != 0 {
		cfg.Resize.MaxWidth = flags.resize.maxWidth
	}
	if flags.resize.quality != 0 {
		cfg.Resize.Quality = flags.resize.quality
	}
	return nil
}

// newLogger creates the warning logger. Quiet keeps errors only; verbose
// enables debug output. Timestamps are omitted.
func newLogger(w io.Writer, level string, quiet, verbose bool) *slog.Logger {
	var lvl slog.Level
	switch {
	case quiet:
		lvl = slog.LevelError
	case verbose:
		lvl = slog.LevelDebug
	default:
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil || level == "" {
			lvl = slog.LevelWarn
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (r *runner) options() []sitedata.Option {
	return []sitedata.Option{
		sitedata.WithLogger(r.logger),
		sitedata.WithNow(r.now),
		sitedata.WithDateFormats(r.cfg.Logs.DateFormats...),
		sitedata.WithNoticeTitle(r.cfg.Info.DefaultTitle),
		sitedata.WithSlideExtensions(r.cfg.Slides.Extensions...),
		sitedata.WithResizeExtensions(r.cfg.Resize.Extensions...),
		sitedata.WithMaxWidth(r.cfg.Resize.MaxWidth),
		sitedata.WithQuality(r.cfg.Resize.Quality),
		sitedata.WithBackupDir(r.cfg.Resize.BackupDir),
		sitedata.WithRecordFile(r.cfg.Resize.RecordFile),
	}
}

// logs writes one JSON file per configured record category.
func (r *runner) logs(ctx context.Context) error {
	agg, err := sitedata.NewAggregator(r.options()...)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForDateFormat(dateutil.Presets))
	}

	for _, cat := range r.cfg.Logs.Categories {
		dir, output := r.cfg.Path(cat.Dir), r.cfg.Path(cat.Output)
		c, err := agg.Generate(ctx, dir, output, cat.Label)
		if err != nil {
			return withHint(fmt.Errorf("generating %s: %w", cat.Label, err), "")
		}
		c.WriteSummary(r.out)
	}
	return nil
}

// info writes the notice JSON. A missing notice is not an error.
func (r *runner) info(ctx context.Context) error {
	source, output := r.cfg.Path(r.cfg.Info.Source), r.cfg.Path(r.cfg.Info.Output)
	info, err := sitedata.NewNoticeGenerator(r.options()...).GenerateInfo(ctx, source, output)
	if err != nil {
		if errors.Is(err, sitedata.ErrInfoSourceNotFound) {
			fmt.Fprintf(r.out, "%s not found, skipping %s generation\n", filepath.Base(source), filepath.Base(output))
			return nil
		}
		return withHint(fmt.Errorf("generating notice: %w", err), "")
	}
	info.WriteSummary(r.out)
	return nil
}

// slides writes the slide listing. With optional set, a missing slides
// directory is logged and skipped.
func (r *runner) slides(optional bool) error {
	dir, output := r.cfg.Path(r.cfg.Slides.Dir), r.cfg.SlidesOutput()
	names, err := sitedata.NewSlideLister(r.options()...).Generate(dir, output)
	if err != nil {
		if optional && errors.Is(err, sitedata.ErrSlidesDirNotFound) {
			r.logger.Warn("slides directory not found, skipping", "dir", dir)
			return nil
		}
		return withHint(fmt.Errorf("listing slides: %w", err), dir)
	}
	sitedata.WriteSlidesSummary(r.out, output, names)
	return nil
}

// resize downscales wide slide images in place.
func (r *runner) resize(ctx context.Context) error {
	dir := r.cfg.Path(r.cfg.Slides.Dir)
	report, err := sitedata.NewResizer(r.options()...).Run(ctx, dir)
	if err != nil {
		if !errors.Is(err, sitedata.ErrSlidesDirNotFound) {
			report.WriteSummary(r.out)
		}
		return withHint(fmt.Errorf("resizing slides: %w", err), dir)
	}
	report.WriteSummary(r.out)
	if n := report.Count(sitedata.ImageFailed); n > 0 {
		return fmt.Errorf("%d image(s) failed", n)
	}
	return nil
}

// printConfig writes the effective configuration as YAML.
func (r *runner) printConfig(w io.Writer) error {
	out, err := yamlutil.Encode(r.cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// all generates every artifact the site reads: record collections, the
// notice and the slide listing.
func (r *runner) all(ctx context.Context) error {
	if err := r.logs(ctx); err != nil {
		return err
	}
	if err := r.info(ctx); err != nil {
		return err
	}
	return r.slides(true)
}

// withHint appends the hint matching err's sentinel, if any.
func withHint(err error, slidesDir string) error {
	var hint string
	switch {
	case errors.Is(err, sitedata.ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, sitedata.ErrDataDir):
		hint = hints.ForRoot()
	case errors.Is(err, sitedata.ErrSlidesDirNotFound):
		hint = hints.ForSlidesDirectory(slidesDir)
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
