package main

// Notes:
// - printUsage/printCommandUsage: we test that required content strings are
//   present in the output. We don't test exact formatting as that's an
//   implementation detail.
// - runHelp: we test routing to the correct help topic.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	for _, s := range append([]string{"Usage: sitedata", "Commands:"}, commands...) {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintCommandUsage - Per-command usage output
// ---------------------------------------------------------------------------

func TestPrintCommandUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd     string
		want    []string
		notWant []string
	}{
		{"all", []string{"Usage: sitedata [all]", "--date-format", "--info-source", "--slides-output", "--root"}, []string{"--max-width"}},
		{"logs", []string{"Usage: sitedata logs", "--date-format", "Presets:"}, []string{"--info-source"}},
		{"info", []string{"Usage: sitedata info", "--info-output"}, []string{"--slides-dir"}},
		{"slides", []string{"Usage: sitedata slides", "--slides-dir", "--slides-output"}, []string{"--quality"}},
		{"config", []string{"Usage: sitedata config", "--config"}, []string{"--date-format"}},
		{"resize", []string{"Usage: sitedata resize", "--slides-dir", "--max-width", "--quality"}, []string{"--slides-output"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printCommandUsage(&buf, tt.cmd)
			output := buf.String()

			for _, s := range append(tt.want, "SITEDATA_CONFIG") {
				if !strings.Contains(output, s) {
					t.Errorf("usage for %s should contain %q", tt.cmd, s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(output, s) {
					t.Errorf("usage for %s should not contain %q", tt.cmd, s)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHelpDefaultsMatchConstants - Verify documented defaults match actual values
// ---------------------------------------------------------------------------

func TestHelpDefaultsMatchConstants(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printCommandUsage(&buf, "resize")
	output := buf.String()

	for _, want := range []string{
		fmt.Sprintf("(default: %d)", 2000),
		fmt.Sprintf("(default: %d)", 85),
	} {
		if !strings.Contains(output, want) {
			t.Errorf("resize help should document %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Help command routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no topic", nil, ExitSuccess, "Commands:", ""},
		{"logs topic", []string{"logs"}, ExitSuccess, "Usage: sitedata logs", ""},
		{"resize topic", []string{"resize"}, ExitSuccess, "Usage: sitedata resize", ""},
		{"help topic", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"version topic", []string{"version"}, ExitSuccess, "Commands:", ""},
		{"unknown topic", []string{"convert"}, ExitUsage, "", "unknown command: convert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runHelp(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr)
			}
		})
	}
}
