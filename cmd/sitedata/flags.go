package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	root    string
	quiet   bool
	verbose bool
}

// logsFlags holds activity log flags.
type logsFlags struct {
	dateFormats []string
}

// infoFlags holds notice flags.
type infoFlags struct {
	source string
	output string
}

// slidesFlags holds slide directory flags.
type slidesFlags struct {
	dir    string
	output string
}

// resizeFlags holds resize flags. Zero means "use config".
type resizeFlags struct {
	maxWidth int
	quality  int
}

type cliFlags struct {
	common commonFlags
	logs   logsFlags
	info   infoFlags
	slides slidesFlags
	resize resizeFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.root, "root", "r", "", "site root directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

func addLogsFlags(fs *flag.FlagSet, f *logsFlags) {
	fs.StringSliceVar(&f.dateFormats, "date-format", nil, "accepted record date format (repeatable)")
}

func addInfoFlags(fs *flag.FlagSet, f *infoFlags) {
	fs.StringVar(&f.source, "info-source", "", "Markdown notice file")
	fs.StringVar(&f.output, "info-output", "", "notice JSON output file")
}

func addSlidesFlags(fs *flag.FlagSet, f *slidesFlags, withOutput bool) {
	fs.StringVar(&f.dir, "slides-dir", "", "slide image directory")
	if withOutput {
		fs.StringVar(&f.output, "slides-output", "", "slide list output file")
	}
}

func addResizeFlags(fs *flag.FlagSet, f *resizeFlags) {
	fs.IntVar(&f.maxWidth, "max-width", 0, "maximum image width in pixels")
	fs.IntVar(&f.quality, "quality", 0, "JPEG quality (1-100)")
}

// parseFlags parses the flags accepted by cmd. Positional arguments are
// rejected: every input comes from the config file or flags.
func parseFlags(cmd string, args []string, usage io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	switch cmd {
	case "all":
		addLogsFlags(fs, &f.logs)
		addInfoFlags(fs, &f.info)
		addSlidesFlags(fs, &f.slides, true)
	case "logs":
		addLogsFlags(fs, &f.logs)
	case "info":
		addInfoFlags(fs, &f.info)
	case "slides":
		addSlidesFlags(fs, &f.slides, true)
	case "resize":
		addSlidesFlags(fs, &f.slides, false)
		addResizeFlags(fs, &f.resize)
	}

	fs.Usage = func() { printCommandUsage(usage, cmd) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	if f.common.quiet && f.common.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, nil
}
