package texstack

// ImageStack is a texture stack whose layers are image paths. Paths
// resolve to textures through a PathSource: the image loads once, the
// texture builds once, and both are memoized per path, so stacking the
// same tile a hundred times costs one load.
//
// All TextureStack operations are available. The path-typed Insert,
// Append, and Set shadow the texture-typed ones; Delete, Pop, offsets,
// position, and the attach lifecycle are shared unchanged.
//
// ImageStack is not safe for concurrent use, but its PathSource is, and
// may be shared across stacks (see NewImageStack).
type ImageStack struct {
	*TextureStack
	src *PathSource
}

// NewImageStack creates an empty image stack.
//
// WithLoader, WithCacheLimit, and WithPromoter configure path
// resolution. To share one resolution memo across several stacks, pass
// the same *PathSource to each with WithSource; any other source type is
// ignored, since image stacks must resolve paths.
func NewImageStack(opts ...Option) *ImageStack {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	src, ok := cfg.source.(*PathSource)
	if !ok {
		src = newPathSource(&cfg)
	}

	// The promoter lives inside the path source so that promotion is
	// cached per path; the engine must not promote a second time.
	return &ImageStack{
		TextureStack: newStack(src, nil, &cfg),
		src:          src,
	}
}

// Insert inserts the image at path as a new layer at index i with a
// zero offset. Index semantics match TextureStack.Insert.
func (s *ImageStack) Insert(i int, path string) error {
	return s.insertItem(i, path)
}

// Append adds the image at path as the topmost layer.
func (s *ImageStack) Append(path string) error {
	return s.insertItem(len(s.layers), path)
}

// Set replaces the layer at index i with the image at path, preserving
// the layer's offset.
func (s *ImageStack) Set(i int, path string) error {
	return s.setItem(i, path)
}

// Path returns the path of layer i.
func (s *ImageStack) Path(i int) (string, error) {
	j, err := s.layerIndex(i)
	if err != nil {
		return "", err
	}
	path, _ := s.layers[j].source.(string)
	return path, nil
}

// Paths returns the layer paths in z-order.
func (s *ImageStack) Paths() []string {
	out := make([]string, len(s.layers))
	for i := range s.layers {
		out[i], _ = s.layers[i].source.(string)
	}
	return out
}

// PopPath removes the topmost layer and returns its path.
func (s *ImageStack) PopPath() (string, error) {
	return s.PopPathAt(-1)
}

// PopPathAt removes the layer at index i and returns its path.
func (s *ImageStack) PopPathAt(i int) (string, error) {
	j, err := s.layerIndex(i)
	if err != nil {
		return "", err
	}
	path, _ := s.layers[j].source.(string)
	s.deleteAt(j)
	return path, nil
}

// Source returns the stack's path source. Useful for cache statistics,
// invalidation, and sharing the memo with other stacks.
func (s *ImageStack) Source() *PathSource {
	return s.src
}
