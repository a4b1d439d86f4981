package sitedata_test

import (
	"encoding/json"
	"testing"

	sitedata "github.com/alnah/go-sitedata"
	"github.com/alnah/go-sitedata/internal/gpx"
	"github.com/alnah/go-sitedata/internal/yamlsubset"
)

func TestRecord_Label(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta yamlsubset.Document
		want string
	}{
		{"mountain", yamlsubset.Document{"mountain": yamlsubset.String("北岳"), "activity": yamlsubset.String("hike")}, "北岳"},
		{"activity", yamlsubset.Document{"activity": yamlsubset.String("10k run")}, "10k run"},
		{"empty mountain falls through", yamlsubset.Document{"mountain": yamlsubset.String(""), "activity": yamlsubset.String("swim")}, "swim"},
		{"numeric mountain", yamlsubset.Document{"mountain": yamlsubset.Number(3193)}, "3193"},
		{"id fallback", nil, "20230101_x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := sitedata.Record{ID: "20230101_x", Metadata: tt.meta}
			if got := r.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_MarshalJSON(t *testing.T) {
	t.Parallel()

	r := sitedata.Record{
		ID: "20230615_bar",
		Metadata: yamlsubset.Document{
			"id":       yamlsubset.String("spoofed"),
			"gpx":      yamlsubset.String("elsewhere.gpx"),
			"tags":     yamlsubset.List("alpine", "solo"),
			"distance": yamlsubset.Number(12.5),
			"splits":   yamlsubset.Map(map[string]yamlsubset.Value{"up": yamlsubset.Number(3)}),
			"summary":  yamlsubset.Null(),
		},
		Altitude: yamlsubset.Number(3193),
		Location: &gpx.Coordinate{Lat: 35.67, Lng: 138.23},
		GPX:      "20230615_bar/track.gpx",
	}

	got, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":"20230615_bar","distance":12.5,"splits":{"up":3},"summary":null,"tags":["alpine","solo"],` +
		`"altitude":3193,"location":{"lat":35.67,"lng":138.23},"gpx":"20230615_bar/track.gpx","fit":null}`
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestCollection_MarshalJSON(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(&sitedata.Collection{Label: "training_logs"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(got) != `{"training_logs":[]}` {
		t.Errorf("Marshal() = %s", got)
	}
}
