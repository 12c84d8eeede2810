// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texstack"
	"github.com/gogpu/wgpu/core"
)

// Texture-related errors.
var (
	// ErrTextureReleased is returned when operating on a released texture.
	ErrTextureReleased = errors.New("gpu: texture has been released")

	// ErrSizeMismatch is returned when image size doesn't match the texture.
	ErrSizeMismatch = errors.New("gpu: image size does not match texture")

	// ErrNilImage is returned when the image is nil.
	ErrNilImage = errors.New("gpu: image is nil")

	// ErrInvalidDimensions is returned for non-positive texture dimensions.
	ErrInvalidDimensions = errors.New("gpu: invalid texture dimensions")
)

// DefaultUsage is the usage for textures created without explicit flags.
const DefaultUsage = gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageTextureBinding

// bytesPerPixel returns the pixel stride for the formats layer textures
// use. Unknown formats are treated as 4-byte formats.
func bytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 4
	}
}

// Config holds parameters for creating a texture.
type Config struct {
	// Width and Height are the texture dimensions in pixels.
	Width  int
	Height int

	// Format is the pixel format. The zero value means RGBA8.
	Format gputypes.TextureFormat

	// Usage flags. The zero value means DefaultUsage.
	Usage gputypes.TextureUsage

	// Label is an optional debug label.
	Label string
}

// Texture is a GPU texture that satisfies texstack.Texture, so it can
// be inserted into stacks directly.
//
// The CPU pixels passed to Upload are retained. That keeps the texture
// usable by the software compositing path and lets the GPU upload be
// replayed after a device loss. Call Discard to drop the retained
// pixels once GPU residency is all that matters.
//
// Texture is safe for concurrent reads. Upload, Discard and Close
// should be synchronized externally.
type Texture struct {
	mu sync.RWMutex

	// GPU resource handles. Zero until wgpu texture creation lands.
	textureID core.TextureID
	viewID    core.TextureViewID

	dev    DeviceHandle
	width  int
	height int
	format gputypes.TextureFormat
	usage  gputypes.TextureUsage
	label  string

	sizeBytes uint64
	img       *image.RGBA

	released atomic.Bool
}

var _ texstack.Texture = (*Texture)(nil)

// CreateTexture creates a texture with the given configuration. The
// texture is uninitialized; fill it with Upload.
//
// A nil device handle is allowed and produces a logical texture that
// tracks state without owning device resources.
func CreateTexture(dev DeviceHandle, cfg Config) (*Texture, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}

	format := cfg.Format
	var zeroFormat gputypes.TextureFormat
	if format == zeroFormat {
		format = gputypes.TextureFormatRGBA8Unorm
	}

	usage := cfg.Usage
	if usage == 0 {
		usage = DefaultUsage
	}

	sizeBytes := uint64(cfg.Width) * uint64(cfg.Height) * uint64(bytesPerPixel(format))

	// TODO: Create the device texture once gogpu/wgpu exposes it:
	//
	// desc := &gputypes.TextureDescriptor{
	//     Label: cfg.Label,
	//     Size: gputypes.Extent3D{
	//         Width:              uint32(cfg.Width),
	//         Height:             uint32(cfg.Height),
	//         DepthOrArrayLayers: 1,
	//     },
	//     MipLevelCount: 1,
	//     SampleCount:   1,
	//     Dimension:     gputypes.TextureDimension2D,
	//     Format:        format,
	//     Usage:         usage,
	// }
	// textureID, err := core.CreateTexture(dev.Device(), desc)

	return &Texture{
		dev:       dev,
		width:     cfg.Width,
		height:    cfg.Height,
		format:    format,
		usage:     usage,
		label:     cfg.Label,
		sizeBytes: sizeBytes,
		// textureID and viewID stay zero until wgpu creation is wired.
	}, nil
}

// CreateTextureFromImage creates a texture sized to img and uploads its
// pixels immediately.
func CreateTextureFromImage(dev DeviceHandle, img *image.RGBA, label string) (*Texture, error) {
	if img == nil {
		return nil, ErrNilImage
	}

	b := img.Bounds()
	tex, err := CreateTexture(dev, Config{
		Width:  b.Dx(),
		Height: b.Dy(),
		Label:  label,
	})
	if err != nil {
		return nil, err
	}

	if err := tex.Upload(img); err != nil {
		tex.Close()
		return nil, err
	}
	return tex, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Usage returns the texture usage flags.
func (t *Texture) Usage() gputypes.TextureUsage { return t.usage }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// SizeBytes returns the GPU memory footprint in bytes.
func (t *Texture) SizeBytes() uint64 { return t.sizeBytes }

// IsReleased reports whether Close has been called.
func (t *Texture) IsReleased() bool { return t.released.Load() }

// TextureID returns the underlying wgpu texture ID. Zero for logical
// textures.
func (t *Texture) TextureID() core.TextureID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.textureID
}

// ViewID returns the texture view ID. Zero for logical textures.
func (t *Texture) ViewID() core.TextureViewID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.viewID
}

// Upload uploads pixel data to the texture. The image dimensions must
// match the texture dimensions exactly.
//
// The image is retained, not copied. Callers that mutate the image
// afterwards should upload again to keep GPU and CPU pixels in sync.
func (t *Texture) Upload(img *image.RGBA) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if img == nil {
		return ErrNilImage
	}

	b := img.Bounds()
	if b.Dx() != t.width || b.Dy() != t.height {
		return fmt.Errorf("%w: texture %dx%d, image %dx%d",
			ErrSizeMismatch, t.width, t.height, b.Dx(), b.Dy())
	}

	t.mu.Lock()
	t.img = img
	t.mu.Unlock()

	// TODO: Write the pixels through the queue once gogpu/wgpu exposes it:
	//
	// core.QueueWriteTexture(t.dev.Queue(), &gputypes.ImageCopyTexture{
	//     Texture:  uintptr(t.textureID.Raw()),
	//     MipLevel: 0,
	//     Origin:   gputypes.Origin3D{},
	//     Aspect:   gputypes.TextureAspectAll,
	// }, img.Pix, &gputypes.TextureDataLayout{
	//     BytesPerRow:  uint32(img.Stride),
	//     RowsPerImage: uint32(t.height),
	// }, &gputypes.Extent3D{
	//     Width:              uint32(t.width),
	//     Height:             uint32(t.height),
	//     DepthOrArrayLayers: 1,
	// })

	return nil
}

// Image returns the retained CPU pixels, or nil if the texture was
// created without an upload, Discard was called, or the texture has
// been released. The software compositing path uses this.
func (t *Texture) Image() *image.RGBA {
	if t.released.Load() {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.img
}

// Discard drops the retained CPU pixels. The texture keeps its GPU
// resources and dimensions; it just no longer composites in software.
func (t *Texture) Discard() {
	t.mu.Lock()
	t.img = nil
	t.mu.Unlock()
}

// Close releases the texture resources. Close is idempotent; the
// texture should not be used afterwards.
func (t *Texture) Close() {
	if t.released.Swap(true) {
		return
	}

	// TODO: Drop the device resources once gogpu/wgpu exposes it:
	//
	// if !t.viewID.IsZero() {
	//     core.TextureViewDrop(t.viewID)
	// }
	// if !t.textureID.IsZero() {
	//     core.TextureDrop(t.textureID)
	// }

	t.mu.Lock()
	t.textureID = core.TextureID{}
	t.viewID = core.TextureViewID{}
	t.img = nil
	t.dev = nil
	t.mu.Unlock()
}

// String returns a human-readable description of the texture.
func (t *Texture) String() string {
	status := "active"
	if t.released.Load() {
		status = "released"
	}
	return fmt.Sprintf("Texture[%s %dx%d %v %d bytes %s]",
		t.label, t.width, t.height, t.format, t.sizeBytes, status)
}
