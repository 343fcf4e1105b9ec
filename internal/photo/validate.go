// Package photo validates, measures and compresses captured vehicle photos.
package photo

import (
	"bytes"
	"image"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"autoClaims/internal/domain"
)

const (
	MaxFileSize  = 10 * 1024 * 1024
	SessionSpan  = 30 * time.Minute
	RecentWindow = 5 * time.Minute
	// ClockSkew is how far ahead of the server clock a capture time may be.
	ClockSkew = 30 * time.Second
)

// Blob is an encoded image plus its declared media type.
type Blob struct {
	Data        []byte
	ContentType string
}

func (b Blob) Size() int64 { return int64(len(b.Data)) }

func FileSizeValid(b Blob) bool {
	return b.Size() <= MaxFileSize
}

// IsImageType checks the declared media type only.
func IsImageType(b Blob) bool {
	return strings.HasPrefix(strings.ToLower(b.ContentType), "image/")
}

// Sniff replaces the declared media type with the one detected from content.
func Sniff(b Blob) Blob {
	b.ContentType = mimetype.Detect(b.Data).String()
	return b
}

// ExtractMetadata measures the image. Decode failures only drop the
// dimensions; the caller always gets size, device and timestamp.
func ExtractMetadata(b Blob, device string, now time.Time) domain.PhotoMetadata {
	md := domain.PhotoMetadata{
		Timestamp:  now,
		DeviceInfo: device,
		FileSize:   b.Size(),
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(b.Data))
	if err == nil {
		md.Dimensions = &domain.Dimensions{Width: cfg.Width, Height: cfg.Height}
	}
	return md
}

// SessionValid requires at least 4 photos whose timestamps span no more than
// span. Angles and ordering are not checked.
func SessionValid(photos []*domain.CapturedPhoto, span time.Duration) bool {
	if len(photos) < len(domain.Angles) {
		return false
	}

	var earliest, latest time.Time
	for i, p := range photos {
		if p == nil {
			return false
		}
		ts := p.Timestamp
		if i == 0 || ts.Before(earliest) {
			earliest = ts
		}
		if i == 0 || ts.After(latest) {
			latest = ts
		}
	}
	return latest.Sub(earliest) <= span
}

// IsRecent reports whether ts is no older than RecentWindow and not later
// than now plus ClockSkew.
func IsRecent(ts, now time.Time) bool {
	if ts.After(now.Add(ClockSkew)) {
		return false
	}
	return now.Sub(ts) <= RecentWindow
}
