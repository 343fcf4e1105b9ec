package photo

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"
)

const (
	MaxWidth       = 1920
	MaxHeight      = 1080
	DefaultQuality = 85
	JPEGType       = "image/jpeg"
)

type Compressor struct {
	maxWidth  int
	maxHeight int
	quality   int
}

func NewCompressor(maxWidth, maxHeight, quality int) *Compressor {
	if maxWidth <= 0 {
		maxWidth = MaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = MaxHeight
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Compressor{maxWidth: maxWidth, maxHeight: maxHeight, quality: quality}
}

// Compress decodes b, shrinks it to fit the configured box and re-encodes it
// as JPEG. Images already inside the box keep their size.
func (c *Compressor) Compress(b Blob) (Blob, error) {
	src, _, err := image.Decode(bytes.NewReader(b.Data))
	if err != nil {
		return Blob{}, fmt.Errorf("decode: %w", err)
	}

	bounds := src.Bounds()
	w, h := FitWithin(bounds.Dx(), bounds.Dy(), c.maxWidth, c.maxHeight)

	var out image.Image = src
	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	return EncodeJPEG(out, c.quality)
}

func (c *Compressor) Quality() int { return c.quality }

// EncodeJPEG encodes img at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) (Blob, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return Blob{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Blob{Data: buf.Bytes(), ContentType: JPEGType}, nil
}

// FitWithin scales (w, h) down, keeping the aspect ratio, until both sides
// fit inside (maxW, maxH). It never scales up.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if scale >= 1 {
		return w, h
	}
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	return max(nw, 1), max(nh, 1)
}
