package texstack

import "image"

// Option configures a stack during creation.
// Use functional options to customize stack behavior.
//
// Example:
//
//	// Default texture stack
//	st := texstack.New()
//
//	// Image stack with a custom loader and bounded caches
//	st := texstack.NewImageStack(
//	    texstack.WithLoader(texstack.NewFileLoader("assets", "assets/fallback")),
//	    texstack.WithCacheLimit(256),
//	)
type Option func(*config)

// config holds optional configuration for stack creation.
type config struct {
	source     LayerSource
	loader     Loader
	cacheLimit int
	promoter   TexturePromoter
	useCanvas  bool
	position   image.Point
}

// defaultConfig returns the default stack configuration.
func defaultConfig() config {
	return config{
		useCanvas: true,
	}
}

// WithSource sets a custom layer source for the stack.
// Use this to build derived stacks that resolve their own item types.
//
// New uses PassthroughSource when no source is given. NewImageStack
// accepts only a *PathSource here, for sharing one resolution memo
// across stacks; any other source type is ignored.
func WithSource(s LayerSource) Option {
	return func(c *config) {
		c.source = s
	}
}

// WithLoader sets the image loader used by NewImageStack to resolve
// paths. The default is NewFileLoader() resolving paths as given.
func WithLoader(l Loader) Option {
	return func(c *config) {
		c.loader = l
	}
}

// WithCacheLimit bounds the path-to-texture and path-to-image caches of
// an image stack to n entries each, evicting least recently used entries
// beyond that. The default of 0 means the caches never evict.
func WithCacheLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.cacheLimit = n
	}
}

// WithPromoter installs a texture promoter that converts resolved CPU
// textures into device-specific ones, typically gpu.NewUploader.
//
// For image stacks the promotion result is cached per path, so each path
// uploads once. For texture stacks promotion runs on every insert.
func WithPromoter(p TexturePromoter) Option {
	return func(c *config) {
		c.promoter = p
	}
}

// WithUseCanvas controls whether Attach installs the stack's instruction
// group into the canvas. The default is true. A stack created with
// WithUseCanvas(false) keeps full layer bookkeeping but never renders;
// callers flip it later with SetUseCanvas.
func WithUseCanvas(use bool) Option {
	return func(c *config) {
		c.useCanvas = use
	}
}

// WithPosition sets the initial stack position.
func WithPosition(pos image.Point) Option {
	return func(c *config) {
		c.position = pos
	}
}
