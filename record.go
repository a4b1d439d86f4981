package sitedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/alnah/go-sitedata/internal/gpx"
	"github.com/alnah/go-sitedata/internal/yamlsubset"
)

// Keys set by the aggregator. Metadata keys with these names are replaced.
const (
	keyID       = "id"
	keyAltitude = "altitude"
	keyLocation = "location"
	keyGPX      = "gpx"
	keyFIT      = "fit"
	keyDate     = "date"
)

var derivedKeys = map[string]bool{
	keyID: true, keyAltitude: true, keyLocation: true, keyGPX: true, keyFIT: true,
}

// Record is one outing: the folder's metadata plus fields derived from it.
type Record struct {
	ID       string              // folder name, e.g. "20230615_kitadake"
	Metadata yamlsubset.Document // info.yaml as parsed
	Altitude yamlsubset.Value    // track peak, else metadata altitude, else null
	Location *gpx.Coordinate     // track peak, or nil
	GPX      string              // "<id>/track.gpx", or empty
	FIT      string              // "<id>/track.fit", or empty
}

// Date returns the metadata date value, null when absent.
func (r Record) Date() yamlsubset.Value {
	return r.Metadata[keyDate]
}

// Label is the display name: mountain, else activity, else the folder name.
func (r Record) Label() string {
	for _, key := range []string{"mountain", "activity"} {
		if v := r.Metadata[key]; v.Truthy() {
			return v.Text()
		}
	}
	return r.ID
}

// MarshalJSON writes id first, metadata keys in sorted order, then the
// derived altitude, location, gpx and fit keys.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	write := func(key string, v any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := marshalCompact(key)
		if err != nil {
			return err
		}
		val, err := marshalCompact(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	if err := write(keyID, r.ID); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		if !derivedKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := write(k, r.Metadata[k]); err != nil {
			return nil, err
		}
	}
	for _, f := range []struct {
		key string
		val any
	}{
		{keyAltitude, r.Altitude},
		{keyLocation, r.Location},
		{keyGPX, nullable(r.GPX)},
		{keyFIT, nullable(r.FIT)},
	} {
		if err := write(f.key, f.val); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Collection is the aggregated content of one category folder.
type Collection struct {
	Label   string   // top-level JSON key
	Root    string   // folder that was scanned
	Output  string   // written file, empty until Generate succeeds
	Created bool     // Root did not exist and was created
	Folders int      // record folders found, with or without metadata
	Records []Record // newest first
}

// MarshalJSON writes {"<label>": [records...]}. An empty collection writes
// an empty array, never null.
func (c *Collection) MarshalJSON() ([]byte, error) {
	records := c.Records
	if records == nil {
		records = []Record{}
	}
	return marshalCompact(map[string][]Record{c.Label: records})
}

// WriteSummary prints the generation summary and one line per record.
func (c *Collection) WriteSummary(w io.Writer) {
	name := filepath.Base(c.Output)
	if c.Created {
		fmt.Fprintf(w, "Creating %s\n", c.Root)
	}
	if c.Folders == 0 && len(c.Records) == 0 {
		fmt.Fprintf(w, "No folders found in %s directory\n", c.Label)
		fmt.Fprintf(w, "✓ Generated empty %s\n", name)
		return
	}
	fmt.Fprintf(w, "✓ Generated %s with %d records\n", name, len(c.Records))
	for _, r := range c.Records {
		fmt.Fprintf(w, "  %s %s: %s (%s)\n", marker(r), r.ID, r.Label(), dateText(r.Date()))
	}
}

// IDs returns the record ids in output order.
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.Records))
	for i, r := range c.Records {
		ids[i] = r.ID
	}
	return ids
}

func marker(r Record) string {
	switch {
	case r.GPX != "":
		return "📍"
	case r.FIT != "":
		return "🏃"
	default:
		return "  "
	}
}

func dateText(v yamlsubset.Value) string {
	if v.IsNull() {
		return "no date"
	}
	return v.Text()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// marshalCompact encodes v without HTML escaping.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
