package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitedata [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  all        Generate logs, info and slides (default)")
	fmt.Fprintln(w, "  logs       Generate activity and training log JSON")
	fmt.Fprintln(w, "  info       Generate info.json from the Markdown notice")
	fmt.Fprintln(w, "  slides     Generate slides.json from the slide images")
	fmt.Fprintln(w, "  resize     Downscale wide slide images in place")
	fmt.Fprintln(w, "  config     Show the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sitedata help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for one command.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case "logs":
		fmt.Fprintln(w, "Usage: sitedata logs [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Merge each yyyymmdd_name folder's info.yaml with its GPS track")
		fmt.Fprintln(w, "and write one JSON file per category, newest first.")
		fmt.Fprintln(w)
		printLogsFlags(w)
	case "info":
		fmt.Fprintln(w, "Usage: sitedata info [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render the Markdown notice to {title, content} JSON.")
		fmt.Fprintln(w, "A missing notice file is skipped, not an error.")
		fmt.Fprintln(w)
		printInfoFlags(w)
	case "slides":
		fmt.Fprintln(w, "Usage: sitedata slides [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List the gallery images as a JSON array, sorted by name.")
		fmt.Fprintln(w)
		printSlidesFlags(w, true)
	case "resize":
		fmt.Fprintln(w, "Usage: sitedata resize [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Downscale slide images wider than the limit. Originals are moved")
		fmt.Fprintln(w, "to the backup folder; processed images are recorded and skipped")
		fmt.Fprintln(w, "on later runs.")
		fmt.Fprintln(w)
		printSlidesFlags(w, false)
		fmt.Fprintln(w, "Resize:")
		fmt.Fprintln(w, "      --max-width <n>       Maximum width in pixels (default: 2000)")
		fmt.Fprintln(w, "      --quality <n>         JPEG quality 1-100 (default: 85)")
		fmt.Fprintln(w)
	case "config":
		fmt.Fprintln(w, "Usage: sitedata config [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the configuration after applying the config file,")
		fmt.Fprintln(w, "environment variables and flags.")
		fmt.Fprintln(w)
	default:
		fmt.Fprintln(w, "Usage: sitedata [all] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Generate activity logs, the notice and the slide list.")
		fmt.Fprintln(w)
		printLogsFlags(w)
		printInfoFlags(w)
		printSlidesFlags(w, true)
	}
	printCommonFlags(w)
}

func printLogsFlags(w io.Writer) {
	fmt.Fprintln(w, "Logs:")
	fmt.Fprintln(w, "      --date-format <s>     Accepted date format, repeatable")
	fmt.Fprintln(w, "                            Presets: iso, slash, compact, datetime, rfc3339, european, us, long")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm")
	fmt.Fprintln(w)
}

func printInfoFlags(w io.Writer) {
	fmt.Fprintln(w, "Info:")
	fmt.Fprintln(w, "      --info-source <path>  Markdown notice (default: INFO-message.md)")
	fmt.Fprintln(w, "      --info-output <path>  Output file (default: static/data/info.json)")
	fmt.Fprintln(w)
}

func printSlidesFlags(w io.Writer, withOutput bool) {
	fmt.Fprintln(w, "Slides:")
	fmt.Fprintln(w, "      --slides-dir <path>   Image directory (default: static/slides)")
	if withOutput {
		fmt.Fprintln(w, "      --slides-output <path> Output file (default: <slides-dir>/slides.json)")
	}
	fmt.Fprintln(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -r, --root <path>         Site root; relative config paths resolve against it")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SITEDATA_CONFIG, SITEDATA_ROOT, SITEDATA_LOG_LEVEL")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// runHelp prints help for the requested command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	switch cmd := args[0]; {
	case cmd == "help" || cmd == "version":
		printUsage(env.Stdout)
	case isCommand(cmd):
		printCommandUsage(env.Stdout, cmd)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
