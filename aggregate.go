package sitedata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/alnah/go-sitedata/internal/dateutil"
	"github.com/alnah/go-sitedata/internal/fileutil"
	"github.com/alnah/go-sitedata/internal/gpx"
	"github.com/alnah/go-sitedata/internal/yamlsubset"
)

// File names looked up inside each record folder.
const (
	MetadataFile = "info.yaml"
	TrackFile    = "track.gpx"
	FitFile      = "track.fit"
)

// compactLayout reads numeric dates such as 20230615.
const compactLayout = "20060102"

// recordFolderPattern matches folders named yyyymmdd_anything.
var recordFolderPattern = regexp.MustCompile(`^\d{8}_`)

// Aggregator builds record collections from dated folders.
type Aggregator struct {
	logger  *slog.Logger
	layouts []string
}

// NewAggregator creates an Aggregator. It fails when a configured date
// format is invalid.
func NewAggregator(opts ...Option) (*Aggregator, error) {
	s := newSettings(opts)
	layouts, err := dateutil.Layouts(s.dateFormats)
	if err != nil {
		return nil, err
	}
	return &Aggregator{logger: s.logger, layouts: layouts}, nil
}

// Aggregate scans root for record folders and returns them newest first.
// root is created when missing. Folders without metadata are skipped with a
// warning; only failures to create or list root are returned.
func (a *Aggregator) Aggregate(ctx context.Context, root, label string) (*Collection, error) {
	c := &Collection{Label: label, Root: root}

	if !fileutil.DirExists(root) {
		if err := os.MkdirAll(root, fileutil.DirPerm); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataDir, err)
		}
		c.Created = true
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataDir, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() || !recordFolderPattern.MatchString(e.Name()) {
			continue
		}
		c.Folders++
		if r, ok := a.readRecord(root, e.Name()); ok {
			c.Records = append(c.Records, r)
		}
	}

	sortNewestFirst(c.Records, a.layouts)
	return c, nil
}

// Generate aggregates root and writes the collection to outputFile.
func (a *Aggregator) Generate(ctx context.Context, root, outputFile, label string) (*Collection, error) {
	c, err := a.Aggregate(ctx, root, label)
	if err != nil {
		return nil, err
	}
	if err := fileutil.WriteJSON(outputFile, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	c.Output = outputFile
	return c, nil
}

func (a *Aggregator) readRecord(root, folder string) (Record, bool) {
	dir := filepath.Join(root, folder)

	content, err := os.ReadFile(filepath.Join(dir, MetadataFile)) // #nosec G304 -- path built from scanned folder
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("no "+MetadataFile, "folder", folder)
		} else {
			a.logger.Warn("could not read "+MetadataFile, "folder", folder, "error", err)
		}
		return Record{}, false
	}

	meta := yamlsubset.Parse(string(content))
	r := Record{ID: folder, Metadata: meta}

	if fileutil.FileExists(filepath.Join(dir, TrackFile)) {
		r.GPX = folder + "/" + TrackFile
		track := gpx.ExtractFile(filepath.Join(dir, TrackFile), a.logger)
		r.Location = track.Peak
		if track.Altitude != nil {
			r.Altitude = yamlsubset.Number(float64(*track.Altitude))
		}
	}
	if fileutil.FileExists(filepath.Join(dir, FitFile)) {
		r.FIT = folder + "/" + FitFile
	}

	if r.Altitude.IsNull() {
		if alt := meta[keyAltitude]; alt.Truthy() {
			r.Altitude = alt
		}
	}
	return r, true
}

// sortNewestFirst orders dated records newest first. Records whose date is
// missing or unparsable follow, in their original order.
func sortNewestFirst(records []Record, layouts []string) {
	type keyed struct {
		r  Record
		t  time.Time
		ok bool
	}
	ks := make([]keyed, len(records))
	for i, r := range records {
		t, ok := parseRecordDate(r.Date(), layouts)
		ks[i] = keyed{r: r, t: t, ok: ok}
	}

	slices.SortStableFunc(ks, func(x, y keyed) int {
		switch {
		case x.ok && y.ok:
			return y.t.Compare(x.t)
		case x.ok:
			return -1
		case y.ok:
			return 1
		default:
			return 0
		}
	})

	for i, k := range ks {
		records[i] = k.r
	}
}

func parseRecordDate(v yamlsubset.Value, layouts []string) (time.Time, bool) {
	if s, ok := v.Str(); ok {
		return dateutil.Parse(s, layouts)
	}
	if f, ok := v.Float(); ok && f >= 0 && f == math.Trunc(f) {
		return dateutil.Parse(strconv.FormatFloat(f, 'f', -1, 64), []string{compactLayout})
	}
	return time.Time{}, false
}
