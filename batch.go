package texstack

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"slices"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/texstack/canvas"
)

// Batch errors.
var (
	// ErrBatchClosed is returned when operating on a closed batch.
	ErrBatchClosed = errors.New("texstack: batch is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("texstack: invalid dimensions")
)

// Stack is the interface Batch accepts: both *TextureStack and
// *ImageStack satisfy it.
type Stack interface {
	Attach(*canvas.Canvas) error
	Detach() error
	Size() image.Point

	// setOnChange registers the batch's dirty marker.
	setOnChange(func())
}

// Batch composites several stacks into one offscreen RGBA image.
//
// Member stacks attach to the batch's internal canvas, so a stack cannot
// be in a batch and on another canvas at the same time. The batch tracks
// member mutations through the stacks' change hooks and recomposites
// lazily: Redraw and Image only pay for compositing when something
// actually changed.
//
// Batch is not safe for concurrent use.
type Batch struct {
	cv     *canvas.Canvas
	stacks []Stack
	img    *image.RGBA
	width  int
	height int
	dirty  bool
	closed bool
}

// NewBatch creates a batch compositing into a width by height image.
// Returns an error if the dimensions are invalid.
func NewBatch(width, height int) (*Batch, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Batch{
		cv:     canvas.New(),
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
		dirty:  true, // first Redraw always composites
	}, nil
}

// MustNewBatch is like NewBatch but panics on error.
// Use only when the dimensions are hardcoded.
func MustNewBatch(width, height int) *Batch {
	b, err := NewBatch(width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// Add attaches a stack to the batch.
// The stack must not be attached elsewhere; Attach's rules apply.
func (b *Batch) Add(s Stack) error {
	if b.closed {
		return ErrBatchClosed
	}
	if err := s.Attach(b.cv); err != nil {
		return err
	}
	s.setOnChange(b.markDirty)
	b.stacks = append(b.stacks, s)
	b.dirty = true
	return nil
}

// Remove detaches a stack from the batch.
// Returns ErrNotAttached if the stack is not a member.
func (b *Batch) Remove(s Stack) error {
	if b.closed {
		return ErrBatchClosed
	}
	i := slices.Index(b.stacks, s)
	if i < 0 {
		return ErrNotAttached
	}
	s.setOnChange(nil)
	_ = s.Detach()
	b.stacks = slices.Delete(b.stacks, i, i+1)
	b.dirty = true
	return nil
}

// Stacks returns the member stacks in add order, which is also their
// composite order: later members draw on top.
func (b *Batch) Stacks() []Stack {
	out := make([]Stack, len(b.stacks))
	copy(out, b.stacks)
	return out
}

// Len returns the number of member stacks.
func (b *Batch) Len() int {
	return len(b.stacks)
}

// markDirty is the change hook installed on member stacks.
func (b *Batch) markDirty() {
	b.dirty = true
}

// IsDirty reports whether members changed since the last Redraw.
func (b *Batch) IsDirty() bool {
	return b.dirty
}

// Redraw recomposites all member stacks into the internal image.
// A clean batch returns immediately without touching pixels.
func (b *Batch) Redraw() error {
	if b.closed {
		return ErrBatchClosed
	}
	if !b.dirty {
		return nil
	}

	draw.Draw(b.img, b.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	b.cv.Composite(b.img)
	b.dirty = false

	Logger().Debug("texstack: batch redrawn", "stacks", len(b.stacks), "width", b.width, "height", b.height)
	return nil
}

// Image returns the composited image, redrawing first if dirty.
// The returned image is the batch's internal buffer; it stays valid
// until the next Redraw or Resize.
func (b *Batch) Image() (*image.RGBA, error) {
	if err := b.Redraw(); err != nil {
		return nil, err
	}
	return b.img, nil
}

// ScaledImage returns a copy of the composite scaled to width by height
// with Catmull-Rom resampling.
func (b *Batch) ScaledImage(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	src, err := b.Image()
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Resize changes the batch dimensions, recreating the internal image.
// A no-op if the dimensions are unchanged.
func (b *Batch) Resize(width, height int) error {
	if b.closed {
		return ErrBatchClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if b.width == width && b.height == height {
		return nil
	}

	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	b.width = width
	b.height = height
	b.dirty = true
	return nil
}

// Size returns the batch dimensions.
func (b *Batch) Size() image.Point {
	return image.Pt(b.width, b.height)
}

// Canvas returns the internal canvas member groups render into.
// GPU compositors can walk it directly instead of using Image.
func (b *Batch) Canvas() *canvas.Canvas {
	return b.cv
}

// Close detaches all member stacks and releases the image.
// Close is idempotent; a closed batch rejects all other operations.
func (b *Batch) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	for _, s := range b.stacks {
		s.setOnChange(nil)
		_ = s.Detach()
	}
	b.stacks = nil
	b.img = nil
	b.cv = nil
	return nil
}
