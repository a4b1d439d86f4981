// Package sitedata generates the static JSON files a hiking site reads at
// page load.
//
// # Activity logs
//
// Each category folder holds one subfolder per outing, named yyyymmdd_name:
//
//	static/data/activity_logs/
//	    20230615_kitadake/
//	        info.yaml    metadata in a small YAML subset
//	        track.gpx    optional GPS track
//	        track.fit    optional device recording
//
// An Aggregator merges each folder's metadata with the highest point of its
// track and writes the records newest first:
//
//	agg, err := sitedata.NewAggregator(sitedata.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	c, err := agg.Generate(ctx, dir, "static/data/activity_logs.json", "activity_logs")
//
// # Notice and slides
//
// NoticeGenerator renders a Markdown notice with front matter into
// {title, content} JSON. SlideLister lists gallery images, and Resizer
// downscales oversized ones in place, keeping the originals.
//
// Soft failures (a folder without info.yaml, an unreadable track, one bad
// image) are reported through the configured slog.Logger and never abort a run.
package sitedata
