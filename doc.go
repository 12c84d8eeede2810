// Package texstack builds 2D scenes out of stacks of texture layers.
//
// # Overview
//
// A stack is an ordered sequence of texture layers drawn back to front at
// a shared position, each layer carrying its own pixel offset. Stacks are
// the building block for composited sprites: a character is a body
// texture plus equipment textures, a map tile is terrain plus overlays,
// all moving as one unit.
//
// Two stack types cover the common cases. TextureStack takes texture
// handles directly; ImageStack takes image paths and resolves them
// through a loader, memoizing every load. Both render into a retained
// display list (package canvas) that a software compositor or a GPU
// walker consumes.
//
// # Quick Start
//
//	import "github.com/gogpu/texstack"
//
//	st := texstack.NewImageStack(
//	    texstack.WithLoader(texstack.NewFileLoader("assets")),
//	)
//	_ = st.Append("terrain.png")
//	_ = st.Append("overlay.png")
//	_ = st.SetOffset(1, image.Pt(4, 4))
//
//	cv := canvas.New()
//	_ = st.Attach(cv)
//
//	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
//	cv.Composite(dst)
//
// Stacks work before any canvas exists: mutate first, Attach later, and
// the rendering comes out the same.
//
// # Architecture
//
// The library is organized into:
//   - Public API: TextureStack, ImageStack, Batch, Layer, sources, loader
//   - canvas: retained display list and software compositor
//   - gpu: wgpu texture wrappers and the upload promoter
//   - Internal: cache (resolution memoization)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - All positions, offsets, and sizes in integer pixels
package texstack

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
