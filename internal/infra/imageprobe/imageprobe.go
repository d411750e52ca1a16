// Package imageprobe loads photos off the sequencer goroutine and reports their natural size.
package imageprobe

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/osa030/showreel/internal/app/framing"
	"github.com/osa030/showreel/internal/domain/asset"
)

// DefaultCacheSize is the number of decoded photos kept for display.
const DefaultCacheSize = 4

// Probe reads only the image header and returns the natural size.
func Probe(path string) (framing.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return framing.Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return framing.Size{}, err
	}
	return framing.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

// Decode decodes the whole image.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Cache holds the most recently decoded photos by reference.
type Cache struct {
	mu     sync.RWMutex
	limit  int
	order  []string
	images map[string]image.Image
}

// NewCache creates a cache. limit <= 0 selects DefaultCacheSize.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	return &Cache{
		limit:  limit,
		images: make(map[string]image.Image),
	}
}

// Put stores img, evicting the oldest entry when full.
func (c *Cache) Put(ref string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[ref]; !ok {
		c.order = append(c.order, ref)
	}
	c.images[ref] = img
	for len(c.order) > c.limit {
		delete(c.images, c.order[0])
		c.order = c.order[1:]
	}
}

// Get returns the image stored for ref.
func (c *Cache) Get(ref string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[ref]
	return img, ok
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Poster hands a function over to the goroutine that owns the sequencer.
type Poster interface {
	Post(fn func()) error
}

// Loader decodes photos in the background and posts the result back.
type Loader struct {
	post  Poster
	cache *Cache
}

// NewLoader creates a loader. With a nil cache only the header is read.
func NewLoader(post Poster, cache *Cache) *Loader {
	return &Loader{
		post:  post,
		cache: cache,
	}
}

// Load decodes a in a new goroutine; done runs through the poster.
func (l *Loader) Load(a asset.Asset, done func(size framing.Size, err error)) {
	go func() {
		size, err := l.load(a)
		if err != nil {
			err = errors.Wrapf(err, "load photo %s", a.Ref)
		}
		if perr := l.post.Post(func() { done(size, err) }); perr != nil {
			zlog.Debug().Msgf("imageprobe: result dropped: ref=%s error=%v", a.Ref, perr)
		}
	}()
}

func (l *Loader) load(a asset.Asset) (framing.Size, error) {
	if l.cache == nil {
		return Probe(a.Location())
	}
	img, err := Decode(a.Location())
	if err != nil {
		return framing.Size{}, err
	}
	b := img.Bounds()
	l.cache.Put(a.Ref, img)
	return framing.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}, nil
}
