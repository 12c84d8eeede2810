package texstack

import (
	"image"

	"github.com/gogpu/texstack/canvas"
)

// Layer is one z-ordered entry of a stack: a resolved texture plus the
// pixel offset it draws at, relative to the stack position.
//
// Layers are value snapshots when returned from Layers(); mutating a
// snapshot does not affect the stack. Use the stack's Set and SetOffset
// operations to change live layers.
type Layer struct {
	// Texture is the resolved handle drawn for this layer.
	Texture Texture

	// Offset shifts this layer relative to the stack position.
	// Offsets participate in the stack's bounding size.
	Offset image.Point

	// source is the item the texture was resolved from.
	source any

	// rect is the live display-list instruction for this layer.
	rect *canvas.Rect
}

// Source returns the item this layer was created from: the texture itself
// for texture stacks, the path string for image stacks.
func (l Layer) Source() any { return l.source }
