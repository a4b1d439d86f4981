package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-sitedata/internal/yamlutil"
)

type testConfig struct {
	Root   string   `yaml:"root"`
	Width  int      `yaml:"width"`
	Labels []string `yaml:"labels"`
}

// ---------------------------------------------------------------------------
// TestDecode - Parses YAML into Go structs
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		strict  bool
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("root: site\nwidth: 2000\nlabels: [activity_logs, training_logs]"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Root != "site" || cfg.Width != 2000 {
					t.Errorf("got %+v", cfg)
				}
				if len(cfg.Labels) != 2 || cfg.Labels[1] != "training_logs" {
					t.Errorf("Labels = %v", cfg.Labels)
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("root: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid syntax",
			data:    []byte("root: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name: "unknown field tolerated when not strict",
			data: []byte("root: x\nextra: y"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if v.(*testConfig).Root != "x" {
					t.Errorf("Root = %q, want x", v.(*testConfig).Root)
				}
			},
		},
		{
			name:    "unknown field rejected when strict",
			data:    []byte("root: x\nextra: y"),
			dest:    &testConfig{},
			strict:  true,
			wantErr: errors.New("yamlutil:"),
		},
		{
			name: "unicode content",
			data: []byte("root: 山行記録"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if v.(*testConfig).Root != "山行記録" {
					t.Errorf("Root = %q", v.(*testConfig).Root)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Decode(tt.data, tt.dest, tt.strict)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecode_SizeLimit - Oversized input is rejected before parsing
// ---------------------------------------------------------------------------

func TestDecode_SizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte("root: " + strings.Repeat("x", yamlutil.MaxInputSize))
	err := yamlutil.Decode(data, &testConfig{}, false)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Decode() error = %v, want %v", err, yamlutil.ErrInputTooLarge)
	}
}

// ---------------------------------------------------------------------------
// TestEncode - Marshals structs back to YAML
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Encode(testConfig{Root: "site", Width: 10})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(string(out), "root: site") || !strings.Contains(string(out), "width: 10") {
		t.Errorf("Encode() = %q", out)
	}

	var back testConfig
	if err := yamlutil.Decode(out, &back, true); err != nil {
		t.Fatalf("Decode(Encode()) error: %v", err)
	}
	if back.Root != "site" || back.Width != 10 {
		t.Errorf("decoded = %+v", back)
	}
}
