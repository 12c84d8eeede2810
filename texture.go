package texstack

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/texstack/canvas"
)

// Texture is the handle for one drawable layer.
//
// Texture is an alias for canvas.Texture, providing a texstack-specific
// name for the interface while keeping stacks and display lists on the
// same type. Any value with pixel dimensions qualifies; textures that
// additionally provide Image() *image.RGBA can be composited in software.
type Texture = canvas.Texture

// ImageTexture is a CPU texture backed by an RGBA pixel buffer.
// It is the texture type produced by image loading, and the input the
// gpu package promotes to device textures.
type ImageTexture struct {
	img *image.RGBA
}

// NewImageTexture creates a transparent texture of the given size.
// Width and height are clamped to a minimum of zero.
func NewImageTexture(width, height int) *ImageTexture {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &ImageTexture{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewUniformTexture creates a texture of the given size filled with a
// single color. Useful for placeholders and tests.
func NewUniformTexture(width, height int, c color.Color) *ImageTexture {
	t := NewImageTexture(width, height)
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return t
}

// FromImage creates a texture from any image, converting to RGBA.
// The pixel data is copied; later changes to img do not affect the texture.
func FromImage(img image.Image) *ImageTexture {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &ImageTexture{img: dst}
}

// Width returns the texture width in pixels.
func (t *ImageTexture) Width() int {
	return t.img.Rect.Dx()
}

// Height returns the texture height in pixels.
func (t *ImageTexture) Height() int {
	return t.img.Rect.Dy()
}

// Image returns the backing pixel buffer.
// The buffer is live: drawing into it changes what the texture composites
// on the next redraw.
func (t *ImageTexture) Image() *image.RGBA {
	return t.img
}

// Ensure ImageTexture implements Texture.
var _ Texture = (*ImageTexture)(nil)
