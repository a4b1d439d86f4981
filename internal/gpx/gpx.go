// Package gpx finds the highest trackpoint of a GPX track.
//
// Only <trkpt lat=".." lon=".."> elements with an <ele> child are read; every
// other element (waypoints, routes, extensions, timestamps) is ignored.
package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrMalformedTrack indicates the track is not well-formed XML.
var ErrMalformedTrack = errors.New("malformed GPX track")

// MaxElevation bounds the absolute elevation, in meters, of a usable
// trackpoint. Points beyond it are ignored.
const MaxElevation = 100_000

// Coordinate is a WGS84 position. JSON keys match the map widget's
// {lat, lng} literal.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Summary describes the highest point of a track.
// Peak and Altitude are both nil when the track has no usable points.
type Summary struct {
	Peak     *Coordinate
	Altitude *int // meters, rounded half away from zero
	Points   int  // trackpoints that carried a usable elevation
}

// Found reports whether a peak was located.
func (s Summary) Found() bool { return s.Peak != nil }

type trackpoint struct {
	lat, lon float64
	ele      float64
	hasEle   bool
	valid    bool
}

// Extract scans r for trackpoints and returns the one with the greatest
// elevation. On ties the first point seen wins. Points whose coordinates or
// elevation do not parse as numbers, or whose elevation exceeds MaxElevation,
// are ignored.
//
// Decoding is lenient: HTML entities such as &nbsp; and mismatched end tags
// are accepted. Truncated documents still fail with ErrMalformedTrack.
func Extract(r io.Reader) (Summary, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var (
		summary Summary
		maxEle  = math.Inf(-1)
		cur     *trackpoint
		inEle   bool
		eleText strings.Builder
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Summary{}, fmt.Errorf("%w: %v", ErrMalformedTrack, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "trkpt":
				cur = newTrackpoint(t.Attr)
			case "ele":
				if cur != nil && !cur.hasEle {
					inEle = true
					eleText.Reset()
				}
			}
		case xml.CharData:
			if inEle {
				eleText.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "ele":
				if inEle {
					inEle = false
					if ele, err := parseElevation(eleText.String()); err == nil {
						cur.ele, cur.hasEle = ele, true
					}
				}
			case "trkpt":
				if cur != nil && cur.valid && cur.hasEle {
					summary.Points++
					if cur.ele > maxEle {
						maxEle = cur.ele
						summary.Peak = &Coordinate{Lat: cur.lat, Lng: cur.lon}
					}
				}
				cur = nil
				inEle = false
			}
		}
	}

	if summary.Peak != nil {
		alt := int(math.Round(maxEle))
		summary.Altitude = &alt
	}
	return summary, nil
}

// ExtractFile reads the track at path. Read and parse failures are logged as
// warnings and produce an empty Summary; they never abort the caller.
func ExtractFile(path string, logger *slog.Logger) Summary {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f, err := os.Open(path) // #nosec G304 -- path comes from the scanned data directory
	if err != nil {
		logger.Warn("could not read GPX file", "path", path, "error", err)
		return Summary{}
	}
	defer func() { _ = f.Close() }()

	summary, err := Extract(f)
	if err != nil {
		logger.Warn("could not read GPX file", "path", path, "error", err)
		return Summary{}
	}
	return summary
}

func newTrackpoint(attrs []xml.Attr) *trackpoint {
	p := &trackpoint{}
	var haveLat, haveLon bool
	for _, a := range attrs {
		switch a.Name.Local {
		case "lat":
			if v, err := parseCoord(a.Value); err == nil {
				p.lat, haveLat = v, true
			}
		case "lon":
			if v, err := parseCoord(a.Value); err == nil {
				p.lon, haveLon = v, true
			}
		}
	}
	p.valid = haveLat && haveLon
	return p
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func parseElevation(s string) (float64, error) {
	v, err := parseCoord(s)
	if err != nil {
		return 0, err
	}
	if math.Abs(v) > MaxElevation {
		return 0, fmt.Errorf("elevation %q out of range", s)
	}
	return v, nil
}
