package surface

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrDecode = errors.New("surface: decode image")

// images with more than this many times MaxSize² pixels are rejected
// before decoding
const maxPixelsFactor = 16

type CodecOptions struct {
	// Surfaces larger than MaxSize in any dimension are scaled down.
	// Images far larger than that are not decoded at all.
	// A value of zero disables both.
	MaxSize int

	// Number of decoded files to keep around. Defaults to 16.
	CacheSize int
}

type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

// Codec decodes images from files or memory. Decoded files are cached by
// path, size and modification time. Surfaces returned by a Codec are shared
// and must not be modified.
type Codec struct {
	maxSize int
	cache   *lru.Cache[cacheKey, *Surface]
}

func NewCodec(opts CodecOptions) *Codec {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 16
	}

	cache, _ := lru.New[cacheKey, *Surface](opts.CacheSize)

	return &Codec{
		maxSize: opts.MaxSize,
		cache:   cache,
	}
}

// LoadFile reads and decodes the image at the given path.
func (c *Codec) LoadFile(path string) (*Surface, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	key := cacheKey{
		path:    path,
		size:    stat.Size(),
		modTime: stat.ModTime().UnixNano(),
	}

	if cached, ok := c.cache.Get(key); ok {
		slog.Debug("Use cached surface", slog.String("path", path))
		return cached, nil
	}

	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	defer fp.Close()

	surface, err := c.decode(fp)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	c.cache.Add(key, surface)

	return surface, nil
}

// LoadBytes decodes an image from memory. The buffer is not referenced
// after LoadBytes returns.
func (c *Codec) LoadBytes(buf []byte) (*Surface, error) {
	return c.decode(bytes.NewReader(buf))
}

func (c *Codec) decode(r io.ReadSeeker) (*Surface, error) {
	if err := c.checkSize(r); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	surface := FromImage(img)

	slog.Debug("Decoded image",
		slog.String("codec", format),
		slog.Int("width", surface.Width),
		slog.Int("height", surface.Height),
		slog.String("format", surface.Format.String()),
	)

	scaled := ScaleToFit(surface, c.maxSize)
	if scaled != surface {
		slog.Info("Scaled down oversized image",
			slog.Int("width", surface.Width),
			slog.Int("height", surface.Height),
			slog.Int("maxSize", c.maxSize),
		)
	}

	return scaled, nil
}

// checkSize reads the image header and rejects images that would not fit
// into memory reasonably. The reader is rewound afterwards.
func (c *Codec) checkSize(r io.ReadSeeker) error {
	if c.maxSize <= 0 {
		return nil
	}

	config, _, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	pixels := int64(config.Width) * int64(config.Height)
	limit := maxPixelsFactor * int64(c.maxSize) * int64(c.maxSize)

	if pixels > limit {
		return fmt.Errorf("%w: image of %dx%d pixels exceeds the limit of %d pixels",
			ErrDecode, config.Width, config.Height, limit)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}

	return nil
}

// Cached returns the number of surfaces currently held in the cache.
func (c *Codec) Cached() int {
	return c.cache.Len()
}

// Close drops all cached surfaces. The codec can still be used afterwards.
func (c *Codec) Close() {
	c.cache.Purge()
}
