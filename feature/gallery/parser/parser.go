package parser

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gallery-sync/core/errs"
	"gallery-sync/core/storage"
)

const dateLayout = "2006-01-02"

var (
	folderPattern    = regexp.MustCompile(`^(\d{4}[-_]\d{2}[-_]\d{2})(.*)$`)
	dimensionPattern = regexp.MustCompile(`_(\d+)x(\d+)\.`)
	spaces           = regexp.MustCompile(`\s+`)

	imageExtensions = map[string]struct{}{
		".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".bmp": {}, ".tiff": {},
	}
)

// Kind tags a parse outcome.
type Kind int

const (
	KindRejected Kind = iota
	KindPhoto
)

// Reason explains why a key was rejected.
type Reason string

const (
	ReasonTooShallow  Reason = "too_shallow"
	ReasonOutsideBase Reason = "outside_base"
	ReasonEmptyFolder Reason = "empty_folder"
	ReasonEmptyHandle Reason = "empty_handle"
	ReasonNotImage    Reason = "not_image"
)

// GalleryCandidate is a gallery inferred from a date-prefixed folder.
type GalleryCandidate struct {
	FolderName string
	Title      string
	EventDate  string
}

// PhotoCandidate is a photo inferred from an image key.
type PhotoCandidate struct {
	StorageKey string
	FolderName string
	UserHandle string
	Filename   string
	PublicURL  string
	Width      *uint32
	Height     *uint32
}

// Outcome is the result of parsing one key. Gallery is nil when the folder
// does not follow the date convention.
type Outcome struct {
	Kind    Kind
	Key     string
	Reason  Reason
	Photo   PhotoCandidate
	Gallery *GalleryCandidate
}

// Err returns a MalformedKey error for rejected outcomes and nil otherwise.
func (o Outcome) Err() error {
	if o.Kind != KindRejected {
		return nil
	}
	return errs.New(errs.ErrKindMalformedKey, fmt.Sprintf("%s: %s", o.Reason, o.Key))
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock replaces time.Now for the event date fallback.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// Parser interprets object keys as <base>/<gallery-folder>/<user-handle>/<filename>.
type Parser struct {
	cfg    Config
	bucket string
	now    func() time.Time
}

// New creates a Parser. bucket is used in public URLs unless cfg.URLBucket is set.
func New(cfg Config, bucket string, opts ...Option) *Parser {
	if cfg.URLBucket != "" {
		bucket = cfg.URLBucket
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	p := &Parser{cfg: cfg, bucket: bucket, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse interprets a single listed object.
func (p *Parser) Parse(obj storage.Object) Outcome {
	key := obj.Key
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return reject(key, ReasonTooShallow)
	}
	if p.cfg.BasePath != "" && parts[0] != p.cfg.BasePath {
		return reject(key, ReasonOutsideBase)
	}

	folder, handle, filename := parts[1], parts[2], parts[len(parts)-1]
	if folder == "" {
		return reject(key, ReasonEmptyFolder)
	}
	if handle == "" {
		return reject(key, ReasonEmptyHandle)
	}
	if !IsImage(filename) {
		return reject(key, ReasonNotImage)
	}

	width, height := Dimensions(filename, obj.Metadata)
	out := Outcome{
		Kind: KindPhoto,
		Key:  key,
		Photo: PhotoCandidate{
			StorageKey: key,
			FolderName: folder,
			UserHandle: handle,
			Filename:   filename,
			PublicURL:  p.PublicURL(key),
			Width:      width,
			Height:     height,
		},
	}
	if g, ok := ParseFolder(folder, p.now()); ok {
		out.Gallery = &g
	}
	return out
}

// Prefix is the listing prefix of the configured base path.
func (p *Parser) Prefix() string {
	return p.cfg.Prefix()
}

// PublicURL builds the download URL of key, encoding spaces as "+".
func (p *Parser) PublicURL(key string) string {
	return fmt.Sprintf("%s/file/%s/%s", p.cfg.PublicURL, p.bucket, strings.ReplaceAll(key, " ", "+"))
}

// ParseFolder derives a gallery from a date-prefixed folder name. A folder with
// no title after the date is titled by its full name and dated now.
func ParseFolder(name string, now time.Time) (GalleryCandidate, bool) {
	m := folderPattern.FindStringSubmatch(name)
	if m == nil {
		return GalleryCandidate{}, false
	}

	title := strings.TrimLeft(m[2], " \t_-")
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.TrimSpace(spaces.ReplaceAllString(title, " "))
	if title == "" {
		return GalleryCandidate{FolderName: name, Title: name, EventDate: now.Format(dateLayout)}, true
	}

	return GalleryCandidate{
		FolderName: name,
		Title:      title,
		EventDate:  strings.ReplaceAll(m[1], "_", "-"),
	}, true
}

// IsImage reports whether filename carries a supported image extension.
func IsImage(filename string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(filename))]
	return ok
}

// Dimensions reads "_<w>x<h>." from the filename, falling back to width/height
// metadata. Both values are nil when neither source is usable.
func Dimensions(filename string, metadata map[string]string) (*uint32, *uint32) {
	if m := dimensionPattern.FindStringSubmatch(filename); m != nil {
		w, werr := parseDimension(m[1])
		h, herr := parseDimension(m[2])
		if werr == nil && herr == nil {
			return &w, &h
		}
	}
	if metadata != nil {
		w, werr := parseDimension(metadata["width"])
		h, herr := parseDimension(metadata["height"])
		if werr == nil && herr == nil {
			return &w, &h
		}
	}
	return nil, nil
}

func parseDimension(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("zero dimension")
	}
	return uint32(v), nil
}

func reject(key string, reason Reason) Outcome {
	return Outcome{Kind: KindRejected, Key: key, Reason: reason}
}
