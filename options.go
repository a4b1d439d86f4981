package sitedata

import (
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-sitedata/internal/dateutil"
	"github.com/alnah/go-sitedata/internal/fileutil"
	"github.com/alnah/go-sitedata/internal/pipeline"
)

// Defaults shared by the generators.
const (
	DefaultNoticeTitle = "INFO"
	DefaultMaxWidth    = 2000
	DefaultQuality     = 85
	DefaultBackupDir   = "originals"
	DefaultRecordFile  = ".processed_images.json"
)

var (
	defaultSlideExtensions  = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	defaultResizeExtensions = []string{".jpg", ".jpeg", ".png"}
)

// Option configures an Aggregator, NoticeGenerator, SlideLister or Resizer.
// Options that do not apply to a generator are ignored by it.
type Option func(*settings)

type settings struct {
	logger           *slog.Logger
	now              func() time.Time
	dateFormats      []string
	noticeTitle      string
	htmlConverter    pipeline.HTMLConverter
	slideExtensions  []string
	resizeExtensions []string
	maxWidth         int
	quality          int
	backupDir        string
	recordFile       string
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:           slog.New(slog.DiscardHandler),
		now:              time.Now,
		dateFormats:      dateutil.DefaultFormats,
		noticeTitle:      DefaultNoticeTitle,
		slideExtensions:  defaultSlideExtensions,
		resizeExtensions: defaultResizeExtensions,
		maxWidth:         DefaultMaxWidth,
		quality:          DefaultQuality,
		backupDir:        DefaultBackupDir,
		recordFile:       DefaultRecordFile,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger that receives warnings about skipped input.
// A nil logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		s.logger = l
	}
}

// WithNow sets the clock used for processed-image timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDateFormats sets the accepted record date formats: presets such as
// "iso" or "rfc3339", or token formats such as "DD.MM.YYYY".
// Formats are validated by NewAggregator.
func WithDateFormats(formats ...string) Option {
	return func(s *settings) {
		s.dateFormats = append([]string{}, formats...)
	}
}

// WithNoticeTitle sets the title used when the notice has none.
func WithNoticeTitle(title string) Option {
	return func(s *settings) {
		if strings.TrimSpace(title) != "" {
			s.noticeTitle = title
		}
	}
}

// WithHTMLConverter replaces the Markdown renderer used for notices.
func WithHTMLConverter(c pipeline.HTMLConverter) Option {
	return func(s *settings) {
		s.htmlConverter = c
	}
}

// WithSlideExtensions sets the file extensions listed as slides.
// Panics if an extension is malformed (programmer error).
func WithSlideExtensions(exts ...string) Option {
	mustValidExtensions(exts)
	return func(s *settings) {
		s.slideExtensions = append([]string{}, exts...)
	}
}

// WithResizeExtensions sets the file extensions the Resizer processes.
// Panics if an extension is malformed (programmer error).
func WithResizeExtensions(exts ...string) Option {
	mustValidExtensions(exts)
	return func(s *settings) {
		s.resizeExtensions = append([]string{}, exts...)
	}
}

// WithMaxWidth sets the width above which images are downscaled.
// Panics if w <= 0 (programmer error).
func WithMaxWidth(w int) Option {
	if w <= 0 {
		panic("sitedata: WithMaxWidth width must be positive")
	}
	return func(s *settings) {
		s.maxWidth = w
	}
}

// WithQuality sets the JPEG encoding quality.
// Panics if q is outside 1-100 (programmer error).
func WithQuality(q int) Option {
	if q < 1 || q > 100 {
		panic("sitedata: WithQuality quality must be between 1 and 100")
	}
	return func(s *settings) {
		s.quality = q
	}
}

// WithBackupDir sets where originals are moved, relative to the slides directory.
func WithBackupDir(dir string) Option {
	return func(s *settings) {
		if dir != "" {
			s.backupDir = dir
		}
	}
}

// WithRecordFile sets the processed-image record file name, relative to the
// slides directory.
func WithRecordFile(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.recordFile = name
		}
	}
}

func mustValidExtensions(exts []string) {
	if len(exts) == 0 {
		panic("sitedata: at least one extension required")
	}
	for _, ext := range exts {
		if err := fileutil.ValidateExtension(ext); err != nil {
			panic("sitedata: " + err.Error())
		}
	}
}

// extensionSet lowercases exts for case-insensitive matching.
func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = true
	}
	return set
}
