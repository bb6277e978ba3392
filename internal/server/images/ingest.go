// Package images turns uploaded pictures into web-sized JPEGs and stores
// them under their category directory.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/dmitrijs2005/carvingsite/internal/common"
	"github.com/dmitrijs2005/carvingsite/internal/server/storage"
	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	Extension   = ".jpg"
	ContentType = "image/jpeg"

	DefaultMaxWidth  = 1600
	DefaultMaxHeight = 1600
	DefaultQuality   = 82
	DefaultMaxPixels = 50_000_000
)

// Categories lists the directories an image may be ingested into.
var Categories = []string{"events", "gallery"}

// ErrUnsupportedImage is returned for data that no registered decoder
// accepts. It matches common.ErrorValidation.
var ErrUnsupportedImage = fmt.Errorf("%w: unsupported or corrupt image", common.ErrorValidation)

// ErrImageTooLarge is returned when the declared pixel count exceeds
// Options.MaxPixels. It matches common.ErrorValidation.
var ErrImageTooLarge = fmt.Errorf("%w: image dimensions are too large", common.ErrorValidation)

type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
	// MaxPixels caps width*height of the source, checked before decoding.
	MaxPixels int
}

// Ingester decodes, orients, fits and re-encodes images, then writes them
// to an object store.
type Ingester struct {
	store storage.ObjectStore
	opts  Options
	now   func() time.Time
}

// NewIngester fills zero options with the package defaults.
func NewIngester(store storage.ObjectStore, opts Options) *Ingester {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = DefaultMaxHeight
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = DefaultMaxPixels
	}
	return &Ingester{store: store, opts: opts, now: time.Now}
}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Ingest processes the image read from r and returns its key relative to
// the images root, e.g. "gallery/bear-1718000000000000000.jpg". Nothing is
// returned when the write fails.
func (i *Ingester) Ingest(ctx context.Context, category, filename string, r io.Reader) (string, error) {
	if !ValidCategory(category) {
		return "", fmt.Errorf("%w %q", common.ErrorInvalidCategory, category)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrUnsupportedImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrUnsupportedImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(i.opts.MaxPixels) {
		return "", ErrImageTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrUnsupportedImage
	}

	img := fit(orient(src, readOrientation(data)), i.opts.MaxWidth, i.opts.MaxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattenOnWhite(img), &jpeg.Options{Quality: i.opts.Quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	key := path.Join(category, i.fileName(filename))
	if err := i.store.Put(ctx, key, &buf, ContentType); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	return key, nil
}

func (i *Ingester) fileName(original string) string {
	return SanitizeBase(original) + "-" + strconv.FormatInt(i.now().UnixNano(), 10) + Extension
}

const maxBaseLen = 64

// SanitizeBase reduces a client file name to a lowercase slug without its
// extension. It never returns an empty string.
func SanitizeBase(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSuffix(name, path.Ext(name))

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= maxBaseLen {
			break
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "image"
	}
	return out
}

// readOrientation returns the EXIF orientation (1..8), or 1 when absent.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// orient applies an EXIF orientation so the image displays upright.
func orient(src image.Image, o int) image.Image {
	if o <= 1 || o > 8 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	dw, dh := w, h
	if o >= 5 {
		dw, dh = h, w
	}

	// pick maps a destination pixel to its source pixel.
	var pick func(x, y int) (int, int)
	switch o {
	case 2:
		pick = func(x, y int) (int, int) { return w - 1 - x, y }
	case 3:
		pick = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4:
		pick = func(x, y int) (int, int) { return x, h - 1 - y }
	case 5:
		pick = func(x, y int) (int, int) { return y, x }
	case 6:
		pick = func(x, y int) (int, int) { return y, h - 1 - x }
	case 7:
		pick = func(x, y int) (int, int) { return w - 1 - y, h - 1 - x }
	case 8:
		pick = func(x, y int) (int, int) { return w - 1 - y, x }
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			sx, sy := pick(x, y)
			dst.Set(x, y, src.At(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return dst
}

// fit scales src down to fit maxW x maxH, keeping its aspect ratio.
// Images already inside the box are returned as is.
func fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	dw := max(1, int(float64(w)*scale+0.5))
	dh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// flattenOnWhite composites src over an opaque white background; JPEG has
// no alpha channel.
func flattenOnWhite(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: image.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// IsClientError reports whether err stems from the caller's input rather
// than from processing or storage.
func IsClientError(err error) bool {
	return errors.Is(err, common.ErrorValidation) || errors.Is(err, common.ErrorInvalidCategory)
}
