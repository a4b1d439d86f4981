package yamlsubset_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/alnah/go-sitedata/internal/yamlsubset"
)

// ---------------------------------------------------------------------------
// TestParse - Document parsing
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    yamlsubset.Document
	}{
		{
			name:    "empty document",
			content: "",
			want:    yamlsubset.Document{},
		},
		{
			name:    "comments and blank lines only",
			content: "# header\n\n   \n  # indented comment\n",
			want:    yamlsubset.Document{},
		},
		{
			name:    "inline scalars",
			content: "date: 2023-06-15\nmountain: 北岳\naltitude: 3193\nweather: \"晴れ\"\nmemo: ~\nphotos: []\n",
			want: yamlsubset.Document{
				"date":     yamlsubset.String("2023-06-15"),
				"mountain": yamlsubset.String("北岳"),
				"altitude": yamlsubset.Number(3193),
				"weather":  yamlsubset.String("晴れ"),
				"memo":     yamlsubset.Null(),
				"photos":   yamlsubset.List(),
			},
		},
		{
			name:    "CRLF line endings",
			content: "date: 2023-01-01\r\nactivity: run\r\n",
			want: yamlsubset.Document{
				"date":     yamlsubset.String("2023-01-01"),
				"activity": yamlsubset.String("run"),
			},
		},
		{
			name:    "block scalar strips one indent and drops blank lines",
			content: "notes: |\n  first line\n\n    nested line\n  last line   \nnext: 1\n",
			want: yamlsubset.Document{
				"notes": yamlsubset.String("first line\n  nested line\nlast line"),
				"next":  yamlsubset.Number(1),
			},
		},
		{
			name:    "block scalar keeps indented comment text",
			content: "notes: |\n  # not a comment\n",
			want: yamlsubset.Document{
				"notes": yamlsubset.String("# not a comment"),
			},
		},
		{
			name:    "block scalar stops at unindented comment",
			content: "notes: |\n  body\n# trailing\nafter: x\n",
			want: yamlsubset.Document{
				"notes": yamlsubset.String("body"),
				"after": yamlsubset.String("x"),
			},
		},
		{
			name:    "block scalar at end of file is empty",
			content: "notes: |",
			want: yamlsubset.Document{
				"notes": yamlsubset.String(""),
			},
		},
		{
			name:    "list of strings is dequoted but not coerced",
			content: "members:\n  - Alice\n  - \"Bob\"\n  - '42'\n  - 42\n  - null\nnext: y\n",
			want: yamlsubset.Document{
				"members": yamlsubset.List("Alice", "Bob", "42", "42", "null"),
				"next":    yamlsubset.String("y"),
			},
		},
		{
			name:    "mapping coerces numbers and keeps quotes",
			content: "time:\n  start: 0630\n  total: 7.5\n  note: \"fast\"\n  empty:\nafter: z\n",
			want: yamlsubset.Document{
				"time": yamlsubset.Map(map[string]yamlsubset.Value{
					"start": yamlsubset.Number(630),
					"total": yamlsubset.Number(7.5),
					"note":  yamlsubset.String(`"fast"`),
					"empty": yamlsubset.String(""),
				}),
				"after": yamlsubset.String("z"),
			},
		},
		{
			name:    "key without continuation is empty string",
			content: "title:\nnext: 1\n",
			want: yamlsubset.Document{
				"title": yamlsubset.String(""),
				"next":  yamlsubset.Number(1),
			},
		},
		{
			name:    "key at end of file is empty string",
			content: "title:",
			want: yamlsubset.Document{
				"title": yamlsubset.String(""),
			},
		},
		{
			name:    "blank line breaks list lookahead",
			content: "members:\n\n  - Alice\n",
			want: yamlsubset.Document{
				"members": yamlsubset.String(""),
			},
		},
		{
			name:    "deeper nesting is not supported",
			content: "outer:\n  inner:\n    deep: 1\nafter: 2\n",
			want: yamlsubset.Document{
				"outer": yamlsubset.Map(map[string]yamlsubset.Value{
					"inner": yamlsubset.String(""),
				}),
				"after": yamlsubset.Number(2),
			},
		},
		{
			name:    "malformed lines are skipped",
			content: "not a pair\n- stray bullet\n  stray: child\nkey-with-dash: x\nok: 1\n",
			want: yamlsubset.Document{
				"ok": yamlsubset.Number(1),
			},
		},
		{
			name:    "repeated key overwrites",
			content: "date: 2023-01-01\ndate: 2024-01-01\n",
			want: yamlsubset.Document{
				"date": yamlsubset.String("2024-01-01"),
			},
		},
		{
			name:    "value containing colons",
			content: "url: https://example.com/a:b\n",
			want: yamlsubset.Document{
				"url": yamlsubset.String("https://example.com/a:b"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := yamlsubset.Parse(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() =\n%#v\nwant\n%#v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse_ReparsesSerializedCollections - Lists and mappings survive a
// render and re-parse
// ---------------------------------------------------------------------------

func TestParse_ReparsesSerializedCollections(t *testing.T) {
	t.Parallel()

	original := yamlsubset.Parse("tags:\n  - alpine\n  - \"snow\"\nsplits:\n  up: 4.5\n  down: 3\n")

	var rendered string
	rendered += "tags:\n"
	for _, item := range original["tags"].Items() {
		rendered += "  - " + item + "\n"
	}
	rendered += "splits:\n"
	for k, v := range original["splits"].Fields() {
		rendered += "  " + k + ": " + v.Text() + "\n"
	}

	again := yamlsubset.Parse(rendered)
	if !reflect.DeepEqual(original, again) {
		t.Errorf("re-parsed document differs:\n%#v\nwant\n%#v", again, original)
	}
}

// ---------------------------------------------------------------------------
// TestValue_MarshalJSON - JSON encoding of each kind
// ---------------------------------------------------------------------------

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value yamlsubset.Value
		want  string
	}{
		{"null", yamlsubset.Null(), `null`},
		{"number", yamlsubset.Number(3193), `3193`},
		{"fraction", yamlsubset.Number(7.25), `7.25`},
		{"string", yamlsubset.String("北岳"), `"北岳"`},
		{"empty list", yamlsubset.List(), `[]`},
		{"list", yamlsubset.List("a", "b"), `["a","b"]`},
		{"map sorted keys", yamlsubset.Map(map[string]yamlsubset.Value{
			"b": yamlsubset.Number(2),
			"a": yamlsubset.String("x"),
		}), `{"a":"x","b":2}`},
		{"empty map", yamlsubset.Map(nil), `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValue_Truthy - Loose truthiness used for metadata fallbacks
// ---------------------------------------------------------------------------

func TestValue_Truthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value yamlsubset.Value
		want  bool
	}{
		{"null", yamlsubset.Null(), false},
		{"zero", yamlsubset.Number(0), false},
		{"number", yamlsubset.Number(1), true},
		{"empty string", yamlsubset.String(""), false},
		{"string", yamlsubset.String("x"), true},
		{"empty list", yamlsubset.List(), true},
	}

	for _, tt := range tests {
		if got := tt.value.Truthy(); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValue_MarshalJSON_KeepsHTML(t *testing.T) {
	t.Parallel()

	got, err := yamlsubset.String("Tom & <Jerry>").MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if want := `"Tom & <Jerry>"`; string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}
