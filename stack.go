package texstack

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/texstack/canvas"
)

// groupRectBase is the group index of layer 0's rect instruction, after
// the leading PushTransform and Translate.
const groupRectBase = 2

// TextureStack is an ordered stack of texture layers drawn back to front
// at a shared position. Each layer carries its own pixel offset, and the
// stack derives a bounding size from its textures and offsets:
//
//	width  = max over layers of texture width  + offset x
//	height = max over layers of texture height + offset y
//
// The stack renders through a single instruction group shaped
//
//	[PushTransform, Translate(position), Rect(layer 0), ..., Rect(n-1), PopTransform]
//
// and keeps that group current on every mutation. Because groups are
// plain data, mutations need no canvas: build the whole stack first and
// Attach once a canvas exists, or mutate freely while attached. Both
// orders produce the same rendering.
//
// Layer indices follow list semantics: negative indices count from the
// end, so -1 is the topmost layer.
//
// TextureStack is not safe for concurrent use. Create one stack per
// goroutine, or use external synchronization.
type TextureStack struct {
	source   LayerSource
	promoter TexturePromoter

	layers []Layer
	pos    image.Point
	size   image.Point

	group     *canvas.Group
	translate *canvas.Translate

	cv        *canvas.Canvas
	useCanvas bool

	// suppressUpdate silences size recomputation and change
	// notification during compound mutations (Set).
	suppressUpdate bool

	// onChange, when set, runs after every completed mutation.
	// Batch uses it for dirty tracking.
	onChange func()
}

// New creates an empty texture stack.
func New(opts ...Option) *TextureStack {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	src := cfg.source
	if src == nil {
		src = PassthroughSource{}
	}
	return newStack(src, cfg.promoter, &cfg)
}

// newStack builds the stack engine around a resolved source.
func newStack(src LayerSource, promoter TexturePromoter, cfg *config) *TextureStack {
	s := &TextureStack{
		source:    src,
		promoter:  promoter,
		pos:       cfg.position,
		useCanvas: cfg.useCanvas,
		group:     canvas.NewGroup(),
		translate: &canvas.Translate{Offset: cfg.position},
	}
	s.group.Add(&canvas.PushTransform{})
	s.group.Add(s.translate)
	s.group.Add(&canvas.PopTransform{})
	return s
}

// ============================================================
// Mutation
// ============================================================

// Insert inserts tex as a new layer at index i with a zero offset.
// The index follows list-insert semantics: negative counts from the end
// and out-of-range values clamp, so Insert(0, tex) always prepends and
// Insert(Len(), tex) always appends.
func (s *TextureStack) Insert(i int, tex Texture) error {
	return s.insertItem(i, tex)
}

// Append adds tex as the topmost layer.
func (s *TextureStack) Append(tex Texture) error {
	return s.insertItem(len(s.layers), tex)
}

// Delete removes the layer at index i.
// Only that layer's rect instruction is removed from the group; the rest
// of the group is untouched.
func (s *TextureStack) Delete(i int) error {
	j, err := s.layerIndex(i)
	if err != nil {
		return err
	}
	s.deleteAt(j)
	return nil
}

// Pop removes the topmost layer and returns its texture.
func (s *TextureStack) Pop() (Texture, error) {
	return s.PopAt(-1)
}

// PopAt removes the layer at index i and returns its texture.
func (s *TextureStack) PopAt(i int) (Texture, error) {
	j, err := s.layerIndex(i)
	if err != nil {
		return nil, err
	}
	tex := s.layers[j].Texture
	s.deleteAt(j)
	return tex, nil
}

// Set replaces the layer at index i with tex, preserving the layer's
// offset. Internally a delete followed by an insert, with updates
// suppressed so size recomputation and change notification run once.
func (s *TextureStack) Set(i int, tex Texture) error {
	return s.setItem(i, tex)
}

// Clear removes all layers.
// The cleared stack reports a 1×1 placeholder size until the next
// mutation or Rebuild recomputes it.
func (s *TextureStack) Clear() {
	s.layers = s.layers[:0]
	s.resetGroup()
	s.size = image.Pt(1, 1)
	s.notify()
}

// Rebuild regenerates every rect instruction from the layer records,
// re-aims the translate at the current position, and recomputes size.
// Ordinary mutations keep the group current on their own; Rebuild exists
// for bulk updates (SetOffsets) and for textures whose dimensions changed
// after insertion.
func (s *TextureStack) Rebuild() {
	s.group.Clear()
	s.group.Add(&canvas.PushTransform{})
	s.translate.Offset = s.pos
	s.group.Add(s.translate)
	for i := range s.layers {
		l := &s.layers[i]
		l.rect = canvas.NewRect(l.Texture, l.Offset)
		s.group.Add(l.rect)
	}
	s.group.Add(&canvas.PopTransform{})

	s.recomputeSize()
	Logger().Debug("texstack: rebuilt", "layers", len(s.layers), "size", s.size)
	s.notify()
}

// insertItem resolves item and splices the new layer in.
func (s *TextureStack) insertItem(i int, item any) error {
	tex, err := s.resolve(item)
	if err != nil {
		return err
	}
	s.insertResolved(i, item, tex, image.Point{})
	return nil
}

// setItem implements Set for any item type.
// The item resolves before anything mutates, so a failed resolution
// leaves the stack unchanged.
func (s *TextureStack) setItem(i int, item any) error {
	j, err := s.layerIndex(i)
	if err != nil {
		return err
	}
	tex, err := s.resolve(item)
	if err != nil {
		return err
	}
	off := s.layers[j].Offset

	s.suppressUpdate = true
	s.deleteAt(j)
	s.insertResolved(j, item, tex, off)
	s.suppressUpdate = false

	s.updateAfterMutation()
	return nil
}

// insertResolved splices an already resolved layer in at index i.
func (s *TextureStack) insertResolved(i int, item any, tex Texture, off image.Point) {
	i = s.insertIndex(i)
	rec := Layer{
		Texture: tex,
		Offset:  off,
		source:  item,
		rect:    canvas.NewRect(tex, off),
	}
	s.layers = slices.Insert(s.layers, i, rec)
	s.group.InsertAt(groupRectBase+i, rec.rect)
	s.updateAfterMutation()
}

// deleteAt removes layer j, which must be in range.
// A rect already missing from the group is tolerated.
func (s *TextureStack) deleteAt(j int) {
	s.group.Remove(s.layers[j].rect)
	s.layers = slices.Delete(s.layers, j, j+1)
	s.updateAfterMutation()
}

// resolve turns an item into a texture via the source, then the
// promoter if one is installed.
func (s *TextureStack) resolve(item any) (Texture, error) {
	tex, err := s.source.Resolve(item)
	if err != nil {
		return nil, err
	}
	if s.promoter != nil {
		promoted, err := s.promoter.Promote(tex)
		if err != nil {
			return nil, fmt.Errorf("texstack: promote: %w", err)
		}
		tex = promoted
	}
	return tex, nil
}

// resetGroup restores the empty group shape, reusing the translate so
// SetPosition keeps working on the same instruction.
func (s *TextureStack) resetGroup() {
	s.group.Clear()
	s.group.Add(&canvas.PushTransform{})
	s.group.Add(s.translate)
	s.group.Add(&canvas.PopTransform{})
}

// updateAfterMutation recomputes derived state and notifies, unless a
// compound mutation suppressed updates.
func (s *TextureStack) updateAfterMutation() {
	if s.suppressUpdate {
		return
	}
	s.recomputeSize()
	s.notify()
}

// recomputeSize derives the bounding size from textures and offsets.
// An empty stack has size (0, 0).
func (s *TextureStack) recomputeSize() {
	var w, h int
	for i := range s.layers {
		l := &s.layers[i]
		if lw := l.Texture.Width() + l.Offset.X; lw > w {
			w = lw
		}
		if lh := l.Texture.Height() + l.Offset.Y; lh > h {
			h = lh
		}
	}
	s.size = image.Pt(w, h)
}

// notify runs the change hook.
func (s *TextureStack) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// setOnChange registers the change hook. Batch installs its dirty
// marker here; nil removes the hook.
func (s *TextureStack) setOnChange(fn func()) {
	s.onChange = fn
}

// ============================================================
// Offsets and position
// ============================================================

// SetOffset changes the offset of layer i.
// The layer's rect is re-aimed in place; no rebuild happens.
func (s *TextureStack) SetOffset(i int, off image.Point) error {
	j, err := s.layerIndex(i)
	if err != nil {
		return err
	}
	s.layers[j].Offset = off
	s.layers[j].rect.Pos = off
	s.updateAfterMutation()
	return nil
}

// Offset returns the offset of layer i.
func (s *TextureStack) Offset(i int) (image.Point, error) {
	j, err := s.layerIndex(i)
	if err != nil {
		return image.Point{}, err
	}
	return s.layers[j].Offset, nil
}

// Offsets returns a copy of all layer offsets in z-order.
func (s *TextureStack) Offsets() []image.Point {
	out := make([]image.Point, len(s.layers))
	for i := range s.layers {
		out[i] = s.layers[i].Offset
	}
	return out
}

// SetOffsets replaces all layer offsets at once and rebuilds.
// Offsets beyond the layer count are ignored; layers beyond the offset
// count reset to a zero offset.
func (s *TextureStack) SetOffsets(offs []image.Point) {
	for i := range s.layers {
		if i < len(offs) {
			s.layers[i].Offset = offs[i]
		} else {
			s.layers[i].Offset = image.Point{}
		}
	}
	s.Rebuild()
}

// SetPosition moves the whole stack.
// Only the translate instruction is re-aimed; rects, offsets, and size
// are untouched. Setting the current position is a no-op.
func (s *TextureStack) SetPosition(pos image.Point) {
	if s.pos == pos {
		return
	}
	s.pos = pos
	s.translate.Offset = pos
	s.notify()
}

// Position returns the stack position.
func (s *TextureStack) Position() image.Point {
	return s.pos
}

// ============================================================
// Queries
// ============================================================

// Len returns the number of layers.
func (s *TextureStack) Len() int {
	return len(s.layers)
}

// Size returns the stack's bounding size.
// An empty stack reports (0, 0); a cleared stack reports the 1×1
// placeholder until the next mutation.
func (s *TextureStack) Size() image.Point {
	return s.size
}

// Texture returns the texture of layer i.
func (s *TextureStack) Texture(i int) (Texture, error) {
	j, err := s.layerIndex(i)
	if err != nil {
		return nil, err
	}
	return s.layers[j].Texture, nil
}

// Layers returns a snapshot copy of the layer records in z-order.
func (s *TextureStack) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Group returns the stack's instruction group. Compositors walking an
// attached canvas see this same group; mutating it directly bypasses the
// stack's bookkeeping.
func (s *TextureStack) Group() *canvas.Group {
	return s.group
}

// ============================================================
// Lifecycle
// ============================================================

// Attach installs the stack's instruction group into cv and moves the
// stack to the attached state. The group already reflects every mutation
// made before Attach, so attaching late loses nothing.
//
// A stack attaches to one canvas at a time; Detach first to move it.
func (s *TextureStack) Attach(cv *canvas.Canvas) error {
	if cv == nil {
		return ErrNilCanvas
	}
	if s.cv != nil {
		return ErrAttached
	}
	s.cv = cv
	if s.useCanvas {
		cv.Add(s.group)
	}
	Logger().Info("texstack: attached", "layers", len(s.layers), "size", s.size)
	s.notify()
	return nil
}

// Detach removes the group from the canvas and returns the stack to the
// unattached state. Layer records survive; re-attaching restores the
// same rendering.
func (s *TextureStack) Detach() error {
	if s.cv == nil {
		return ErrNotAttached
	}
	s.cv.Remove(s.group)
	s.cv = nil
	Logger().Info("texstack: detached")
	s.notify()
	return nil
}

// Attached reports whether the stack is attached to a canvas.
func (s *TextureStack) Attached() bool {
	return s.cv != nil
}

// Canvas returns the attached canvas, or nil.
func (s *TextureStack) Canvas() *canvas.Canvas {
	return s.cv
}

// UseCanvas reports whether the stack installs its group on attach.
func (s *TextureStack) UseCanvas() bool {
	return s.useCanvas
}

// SetUseCanvas switches group installation on or off. Switching while
// attached installs or removes the group immediately; layer bookkeeping
// is unaffected either way.
func (s *TextureStack) SetUseCanvas(use bool) {
	if s.useCanvas == use {
		return
	}
	s.useCanvas = use
	if s.cv == nil {
		return
	}
	if use {
		s.cv.Add(s.group)
	} else {
		s.cv.Remove(s.group)
	}
	s.notify()
}

// ============================================================
// Index handling
// ============================================================

// insertIndex converts an insertion index to a concrete position,
// list-insert style: negative counts from the end, out-of-range clamps.
func (s *TextureStack) insertIndex(i int) int {
	n := len(s.layers)
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	return i
}

// layerIndex converts an access index to a concrete position.
// Negative counts from the end; anything out of range is an *IndexError.
func (s *TextureStack) layerIndex(i int) (int, error) {
	n := len(s.layers)
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, &IndexError{Index: i, Len: n}
	}
	return j, nil
}
