package texstack

import (
	"fmt"
	"image"

	"github.com/gogpu/texstack/internal/cache"
)

// LayerSource resolves stack items into drawable textures.
//
// TextureStack resolves through PassthroughSource, ImageStack through
// PathSource. Custom sources let derived stacks accept their own item
// types (sprite identifiers, atlas slots) without subclassing anything;
// inject one with WithSource.
type LayerSource interface {
	// Resolve converts an item into a texture.
	// Items of an unacceptable type are rejected with ErrTypeMismatch.
	Resolve(item any) (Texture, error)
}

// TexturePromoter converts a resolved CPU texture into a device-specific
// one. The gpu package provides an implementation that uploads to wgpu
// textures; install it with WithPromoter.
type TexturePromoter interface {
	Promote(tex Texture) (Texture, error)
}

// PassthroughSource accepts items that already are textures.
// It is the default source of New.
type PassthroughSource struct{}

// Resolve implements LayerSource.
func (PassthroughSource) Resolve(item any) (Texture, error) {
	if item == nil {
		return nil, ErrNilTexture
	}
	tex, ok := item.(Texture)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a texture", ErrTypeMismatch, item)
	}
	return tex, nil
}

// PathSource resolves path items by loading images through a Loader and
// memoizing the results per path. Two caches back it: path to finished
// texture, and path to decoded image. The texture cache answers repeat
// inserts without any work; the image cache keeps decoded pixels
// available for re-promotion and inspection after the texture cache is
// invalidated.
//
// By default neither cache evicts; WithCacheLimit bounds both.
//
// PathSource is safe for concurrent use and may be shared across several
// image stacks so they share one memo.
type PathSource struct {
	loader   Loader
	promoter TexturePromoter
	texs     *cache.Cache[string, Texture]
	imgs     *cache.Cache[string, image.Image]
}

// NewPathSource creates a path source. The WithLoader, WithCacheLimit,
// and WithPromoter options apply; stack-level options are ignored.
func NewPathSource(opts ...Option) *PathSource {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newPathSource(&cfg)
}

// newPathSource builds a path source from an already applied config.
func newPathSource(cfg *config) *PathSource {
	loader := cfg.loader
	if loader == nil {
		loader = NewFileLoader()
	}
	return &PathSource{
		loader:   loader,
		promoter: cfg.promoter,
		texs:     cache.New[string, Texture](cfg.cacheLimit),
		imgs:     cache.New[string, image.Image](cfg.cacheLimit),
	}
}

// Resolve implements LayerSource. Items must be path strings; anything
// else is rejected with ErrTypeMismatch.
func (s *PathSource) Resolve(item any) (Texture, error) {
	path, ok := item.(string)
	if !ok {
		return nil, fmt.Errorf("%w: paths only, got %T", ErrTypeMismatch, item)
	}

	return s.texs.GetOrCreate(path, func() (Texture, error) {
		img, err := s.imgs.GetOrCreate(path, func() (image.Image, error) {
			Logger().Debug("texstack: loading image", "path", path)
			return s.loader.Load(path)
		})
		if err != nil {
			return nil, err
		}

		var tex Texture = FromImage(img)
		if s.promoter != nil {
			promoted, err := s.promoter.Promote(tex)
			if err != nil {
				return nil, fmt.Errorf("texstack: promote %s: %w", path, err)
			}
			tex = promoted
		}
		return tex, nil
	})
}

// Image returns the cached decoded image for path, if present.
// It never triggers a load.
func (s *PathSource) Image(path string) (image.Image, bool) {
	return s.imgs.Get(path)
}

// Invalidate drops the cached texture and image for path, forcing the
// next resolution to reload from the Loader. Returns true if either
// cache held the path.
func (s *PathSource) Invalidate(path string) bool {
	t := s.texs.Delete(path)
	i := s.imgs.Delete(path)
	return t || i
}

// ClearCache empties both caches.
func (s *PathSource) ClearCache() {
	s.texs.Clear()
	s.imgs.Clear()
}

// CacheStats describes one of the source's caches.
type CacheStats struct {
	// Len is the current number of entries.
	Len int
	// Limit is the entry limit (0 = unbounded).
	Limit int
	// Hits is the number of lookups answered from the cache.
	Hits uint64
	// Misses is the number of lookups that required resolution.
	Misses uint64
}

// CacheStats returns statistics for the texture and image caches.
func (s *PathSource) CacheStats() (textures, images CacheStats) {
	return toCacheStats(s.texs.Stats()), toCacheStats(s.imgs.Stats())
}

func toCacheStats(st cache.Stats) CacheStats {
	return CacheStats{
		Len:    st.Len,
		Limit:  st.Limit,
		Hits:   st.Hits,
		Misses: st.Misses,
	}
}

// Ensure both sources implement LayerSource.
var (
	_ LayerSource = PassthroughSource{}
	_ LayerSource = (*PathSource)(nil)
)
