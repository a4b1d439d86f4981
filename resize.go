package sitedata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/alnah/go-sitedata/internal/fileutil"
)

// mtimeTolerance is how far a file's mtime may drift from the recorded
// value while still counting as processed.
const mtimeTolerance = 1.0 // seconds

// ProcessedImage is one entry of the processed-image record file.
type ProcessedImage struct {
	ProcessedAt    string  `json:"processed_at"`
	OriginalWidth  int     `json:"original_width"`
	Skipped        bool    `json:"skipped,omitempty"`
	OriginalSizeMB float64 `json:"original_size_mb,omitempty"`
	NewSizeMB      float64 `json:"new_size_mb,omitempty"`
	MTime          float64 `json:"mtime"` // seconds since epoch, fractional
}

// ImageStatus is the outcome for one image of a resize run.
type ImageStatus string

const (
	ImageResized   ImageStatus = "resized"
	ImageNarrow    ImageStatus = "narrow"    // already within the width limit
	ImageProcessed ImageStatus = "processed" // unchanged since a previous run
	ImageFailed    ImageStatus = "failed"
)

// ImageResult describes what happened to one image.
type ImageResult struct {
	Name           string
	Status         ImageStatus
	Width, Height  int // original dimensions, zero when not decoded
	NewWidth       int
	NewHeight      int
	OriginalSizeMB float64
	NewSizeMB      float64
	Err            error
}

// ResizeReport summarizes a resize run.
type ResizeReport struct {
	Dir        string
	BackupDir  string
	RecordFile string
	MaxWidth   int
	Quality    int
	Previous   int // entries in the record file before the run
	Images     []ImageResult
}

// Count returns the number of images with the given status.
func (r ResizeReport) Count(status ImageStatus) int {
	n := 0
	for _, img := range r.Images {
		if img.Status == status {
			n++
		}
	}
	return n
}

// Resizer downscales wide slide images in place. Originals are moved to a
// backup folder and a record file prevents processing an image twice.
type Resizer struct {
	logger     *slog.Logger
	now        func() time.Time
	extensions map[string]bool
	maxWidth   int
	quality    int
	backupDir  string
	recordFile string
}

// NewResizer creates a Resizer.
func NewResizer(opts ...Option) *Resizer {
	s := newSettings(opts)
	return &Resizer{
		logger:     s.logger,
		now:        s.now,
		extensions: extensionSet(s.resizeExtensions),
		maxWidth:   s.maxWidth,
		quality:    s.quality,
		backupDir:  s.backupDir,
		recordFile: s.recordFile,
	}
}

// Run processes every matching image directly inside dir, in name order.
// A failure on one image is logged and recorded in the report; only a
// missing directory, an unwritable record file, or cancellation return an
// error. The record file is saved even when the run is cancelled.
func (z *Resizer) Run(ctx context.Context, dir string) (ResizeReport, error) {
	report := ResizeReport{
		Dir:        dir,
		BackupDir:  filepath.Join(dir, z.backupDir),
		RecordFile: filepath.Join(dir, z.recordFile),
		MaxWidth:   z.maxWidth,
		Quality:    z.quality,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, fmt.Errorf("%w: %s", ErrSlidesDirNotFound, dir)
		}
		return report, fmt.Errorf("reading slides directory: %w", err)
	}

	processed := z.loadRecord(report.RecordFile)
	report.Previous = len(processed)

	var runErr error
	for _, e := range entries {
		if !e.Type().IsRegular() || !z.extensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res := z.processImage(dir, e.Name(), processed, report.BackupDir)
		if res.Err != nil {
			z.logger.Warn("could not resize image", "file", res.Name, "error", res.Err)
		}
		report.Images = append(report.Images, res)
	}

	if err := fileutil.WriteJSON(report.RecordFile, processed); err != nil {
		return report, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return report, runErr
}

func (z *Resizer) processImage(dir, name string, processed map[string]ProcessedImage, backupDir string) ImageResult {
	path := filepath.Join(dir, name)
	res := ImageResult{Name: name}

	info, err := os.Stat(path)
	if err != nil {
		res.Status, res.Err = ImageFailed, err
		return res
	}
	if entry, ok := processed[name]; ok && math.Abs(mtimeSeconds(info.ModTime())-entry.MTime) < mtimeTolerance {
		res.Status = ImageProcessed
		return res
	}

	img, err := decodeImage(path)
	if err != nil {
		res.Status, res.Err = ImageFailed, err
		return res
	}
	b := img.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()
	res.OriginalSizeMB = megabytes(info.Size())

	if res.Width <= z.maxWidth {
		res.Status = ImageNarrow
		processed[name] = ProcessedImage{
			ProcessedAt:   z.now().Format(time.RFC3339),
			OriginalWidth: res.Width,
			Skipped:       true,
			MTime:         mtimeSeconds(info.ModTime()),
		}
		return res
	}

	res.NewWidth = z.maxWidth
	res.NewHeight = max(1, int(float64(res.Height)*float64(z.maxWidth)/float64(res.Width)))
	dst := image.NewRGBA(image.Rect(0, 0, res.NewWidth, res.NewHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	data, err := z.encode(dst, filepath.Ext(name))
	if err != nil {
		res.Status, res.Err = ImageFailed, err
		return res
	}

	backup := filepath.Join(backupDir, name)
	moved, err := backupOriginal(path, backup)
	if err != nil {
		res.Status, res.Err = ImageFailed, err
		return res
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		if moved {
			_ = os.Rename(backup, path)
		}
		res.Status, res.Err = ImageFailed, err
		return res
	}

	written, err := os.Stat(path)
	if err != nil {
		res.Status, res.Err = ImageFailed, err
		return res
	}
	res.Status = ImageResized
	res.NewSizeMB = megabytes(written.Size())
	processed[name] = ProcessedImage{
		ProcessedAt:    z.now().Format(time.RFC3339),
		OriginalWidth:  res.Width,
		OriginalSizeMB: round2(res.OriginalSizeMB),
		NewSizeMB:      round2(res.NewSizeMB),
		MTime:          mtimeSeconds(written.ModTime()),
	}
	z.logger.Info("image resized", "file", name, "width", res.NewWidth, "height", res.NewHeight)
	return res
}

func (z *Resizer) encode(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: z.quality}); err != nil {
			return nil, err
		}
	case ".png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, ext)
	}
	return buf.Bytes(), nil
}

// loadRecord reads the processed-image record. A missing file is an empty
// record; an unreadable one is logged and replaced.
func (z *Resizer) loadRecord(path string) map[string]ProcessedImage {
	processed := map[string]ProcessedImage{}
	data, err := os.ReadFile(path) // #nosec G304 -- record path derived from slides dir
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			z.logger.Warn("could not read processed-image record", "path", path, "error", err)
		}
		return processed
	}
	if err := json.Unmarshal(data, &processed); err != nil {
		z.logger.Warn("ignoring corrupt processed-image record", "path", path, "error", err)
		return map[string]ProcessedImage{}
	}
	return processed
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 -- path from directory listing
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}

// backupOriginal moves src to dst unless a backup already exists there.
// It reports whether src was moved.
func backupOriginal(src, dst string) (bool, error) {
	if fileutil.FileExists(dst) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), fileutil.DirPerm); err != nil {
		return false, fmt.Errorf("creating backup directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return false, fmt.Errorf("backing up original: %w", err)
	}
	return true, nil
}

func mtimeSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func megabytes(n int64) float64 {
	return float64(n) / (1024 * 1024)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// WriteSummary prints one line per image and the run totals.
func (r ResizeReport) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Processed-image record: %d entries\n", r.Previous)
	if len(r.Images) == 0 {
		fmt.Fprintln(w, "No images found")
		return
	}
	fmt.Fprintf(w, "Resizing %d images (max width %dpx, quality %d)\n", len(r.Images), r.MaxWidth, r.Quality)
	for _, img := range r.Images {
		switch img.Status {
		case ImageResized:
			fmt.Fprintf(w, "  ✓ %s: %dx%d → %dx%d, %.2fMB → %.2fMB\n",
				img.Name, img.Width, img.Height, img.NewWidth, img.NewHeight, img.OriginalSizeMB, img.NewSizeMB)
		case ImageNarrow:
			fmt.Fprintf(w, "  - %s: %dpx wide, within limit\n", img.Name, img.Width)
		case ImageProcessed:
			fmt.Fprintf(w, "  - %s: already processed\n", img.Name)
		case ImageFailed:
			fmt.Fprintf(w, "  ✗ %s: %v\n", img.Name, img.Err)
		}
	}
	resized := r.Count(ImageResized)
	fmt.Fprintf(w, "✓ Resized %d, skipped %d, failed %d\n",
		resized, r.Count(ImageNarrow)+r.Count(ImageProcessed), r.Count(ImageFailed))
	if resized > 0 {
		fmt.Fprintf(w, "  Backups: %s\n", r.BackupDir)
	}
	fmt.Fprintf(w, "  Record: %s\n", r.RecordFile)
}
