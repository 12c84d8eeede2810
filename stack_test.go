package texstack

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/texstack/canvas"
)

// testTex returns a solid texture for layer tests.
func testTex(w, h int) *ImageTexture {
	return NewUniformTexture(w, h, color.RGBA{R: 255, A: 255})
}

// assertGroupShape verifies the instruction layout
// [PushTransform, Translate, rects..., PopTransform].
func assertGroupShape(t *testing.T, s *TextureStack) {
	t.Helper()
	g := s.Group()
	n := s.Len()
	if g.Len() != n+3 {
		t.Fatalf("group has %d instructions, want %d", g.Len(), n+3)
	}
	if _, ok := g.At(0).(*canvas.PushTransform); !ok {
		t.Errorf("instruction 0 is %T, want *canvas.PushTransform", g.At(0))
	}
	if _, ok := g.At(1).(*canvas.Translate); !ok {
		t.Errorf("instruction 1 is %T, want *canvas.Translate", g.At(1))
	}
	for i := range n {
		if _, ok := g.At(2 + i).(*canvas.Rect); !ok {
			t.Errorf("instruction %d is %T, want *canvas.Rect", 2+i, g.At(2+i))
		}
	}
	if _, ok := g.At(g.Len() - 1).(*canvas.PopTransform); !ok {
		t.Errorf("last instruction is %T, want *canvas.PopTransform", g.At(g.Len()-1))
	}
}

// stackRects returns the rect instructions in draw order.
func stackRects(s *TextureStack) []*canvas.Rect {
	var out []*canvas.Rect
	for _, ins := range s.Group().Instructions() {
		if r, ok := ins.(*canvas.Rect); ok {
			out = append(out, r)
		}
	}
	return out
}

func TestNew(t *testing.T) {
	s := New()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.Size() != image.Pt(0, 0) {
		t.Errorf("Size() = %v, want (0, 0)", s.Size())
	}
	if s.Position() != image.Pt(0, 0) {
		t.Errorf("Position() = %v, want (0, 0)", s.Position())
	}
	if s.Attached() {
		t.Error("new stack reports attached")
	}
	if !s.UseCanvas() {
		t.Error("UseCanvas() = false, want true by default")
	}
	assertGroupShape(t, s)
}

func TestAppend(t *testing.T) {
	s := New()
	a, b, c := testTex(1, 1), testTex(2, 2), testTex(3, 3)

	for _, tex := range []*ImageTexture{a, b, c} {
		if err := s.Append(tex); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for i, want := range []*ImageTexture{a, b, c} {
		got, err := s.Texture(i)
		if err != nil {
			t.Fatalf("Texture(%d) error = %v", i, err)
		}
		if got != want {
			t.Errorf("Texture(%d) mismatch", i)
		}
	}

	// Draw order in the group matches z-order.
	rects := stackRects(s)
	if len(rects) != 3 {
		t.Fatalf("group holds %d rects, want 3", len(rects))
	}
	for i, want := range []*ImageTexture{a, b, c} {
		if rects[i].Tex != want {
			t.Errorf("rect %d draws the wrong texture", i)
		}
	}
	assertGroupShape(t, s)
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantOrder []int // positions of a=0, b=1, c=2, x=3 after insert
	}{
		{"front", 0, []int{3, 0, 1, 2}},
		{"middle", 1, []int{0, 3, 1, 2}},
		{"end", 3, []int{0, 1, 2, 3}},
		{"negative one", -1, []int{0, 1, 3, 2}},
		{"negative all", -3, []int{3, 0, 1, 2}},
		{"clamp high", 100, []int{0, 1, 2, 3}},
		{"clamp low", -100, []int{3, 0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			texs := []*ImageTexture{testTex(1, 1), testTex(2, 2), testTex(3, 3), testTex(4, 4)}
			for _, tex := range texs[:3] {
				if err := s.Append(tex); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}

			if err := s.Insert(tt.index, texs[3]); err != nil {
				t.Fatalf("Insert(%d) error = %v", tt.index, err)
			}

			for i, wantIdx := range tt.wantOrder {
				got, err := s.Texture(i)
				if err != nil {
					t.Fatalf("Texture(%d) error = %v", i, err)
				}
				if got != texs[wantIdx] {
					t.Errorf("layer %d mismatch after Insert(%d)", i, tt.index)
				}
			}
			assertGroupShape(t, s)
		})
	}
}

func TestInsertNilTexture(t *testing.T) {
	s := New()
	if err := s.Append(nil); !errors.Is(err, ErrNilTexture) {
		t.Errorf("Append(nil) error = %v, want ErrNilTexture", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after failed append, want 0", s.Len())
	}
}

func TestDelete(t *testing.T) {
	s := New()
	a, b, c := testTex(10, 10), testTex(2, 2), testTex(3, 3)
	for _, tex := range []*ImageTexture{a, b, c} {
		if err := s.Append(tex); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if err := s.Delete(0); err != nil {
		t.Fatalf("Delete(0) error = %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	got, err := s.Texture(0)
	if err != nil {
		t.Fatalf("Texture(0) error = %v", err)
	}
	if got != b {
		t.Error("Delete(0) removed the wrong layer")
	}

	// Size shrinks once the big layer is gone.
	if s.Size() != image.Pt(3, 3) {
		t.Errorf("Size() = %v after delete, want (3, 3)", s.Size())
	}
	assertGroupShape(t, s)

	// Negative index deletes from the end.
	if err := s.Delete(-1); err != nil {
		t.Fatalf("Delete(-1) error = %v", err)
	}
	got, err = s.Texture(0)
	if err != nil {
		t.Fatalf("Texture(0) error = %v", err)
	}
	if got != b {
		t.Error("Delete(-1) removed the wrong layer")
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	s := New()
	if err := s.Append(testTex(1, 1)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	for _, i := range []int{1, -2, 17} {
		err := s.Delete(i)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Delete(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after failed deletes, want 1", s.Len())
	}
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	s := New()
	a, b := testTex(4, 4), testTex(6, 2)
	for _, tex := range []*ImageTexture{a, b} {
		if err := s.Append(tex); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := s.SetOffset(1, image.Pt(3, 7)); err != nil {
		t.Fatalf("SetOffset() error = %v", err)
	}

	before := s.Layers()
	beforeOffs := s.Offsets()
	beforeSize := s.Size()

	if err := s.Insert(1, testTex(20, 20)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Delete(1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	after := s.Layers()
	if len(after) != len(before) {
		t.Fatalf("Len() = %d after round trip, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].Texture != before[i].Texture {
			t.Errorf("layer %d texture changed across round trip", i)
		}
		if after[i].Offset != before[i].Offset {
			t.Errorf("layer %d offset = %v, want %v", i, after[i].Offset, before[i].Offset)
		}
	}
	afterOffs := s.Offsets()
	for i := range beforeOffs {
		if afterOffs[i] != beforeOffs[i] {
			t.Errorf("Offsets()[%d] = %v, want %v", i, afterOffs[i], beforeOffs[i])
		}
	}
	if s.Size() != beforeSize {
		t.Errorf("Size() = %v after round trip, want %v", s.Size(), beforeSize)
	}
	assertGroupShape(t, s)

	// The optimized delete leaves the same group a full rebuild produces.
	deleted := stackRects(s)
	s.Rebuild()
	rebuilt := stackRects(s)
	if len(deleted) != len(rebuilt) {
		t.Fatalf("rect count = %d after delete, %d after rebuild", len(deleted), len(rebuilt))
	}
	for i := range deleted {
		if deleted[i].Tex != rebuilt[i].Tex || deleted[i].Pos != rebuilt[i].Pos {
			t.Errorf("rect %d differs between optimized delete and rebuild", i)
		}
	}
}

func TestPop(t *testing.T) {
	s := New()
	a, b := testTex(1, 1), testTex(2, 2)
	for _, tex := range []*ImageTexture{a, b} {
		if err := s.Append(tex); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if got != b {
		t.Error("Pop() should return the topmost texture")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after Pop, want 1", s.Len())
	}

	got, err = s.PopAt(0)
	if err != nil {
		t.Fatalf("PopAt(0) error = %v", err)
	}
	if got != a {
		t.Error("PopAt(0) should return the bottom texture")
	}

	if _, err := s.Pop(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Pop() on empty stack error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSetPreservesOffset(t *testing.T) {
	s := New()
	for _, tex := range []*ImageTexture{testTex(1, 1), testTex(2, 2), testTex(3, 3)} {
		if err := s.Append(tex); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := s.SetOffset(1, image.Pt(7, 5)); err != nil {
		t.Fatalf("SetOffset() error = %v", err)
	}

	repl := testTex(4, 4)
	if err := s.Set(1, repl); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Texture(1)
	if err != nil {
		t.Fatalf("Texture(1) error = %v", err)
	}
	if got != repl {
		t.Error("Set(1) did not install the replacement texture")
	}
	off, err := s.Offset(1)
	if err != nil {
		t.Fatalf("Offset(1) error = %v", err)
	}
	if off != image.Pt(7, 5) {
		t.Errorf("Offset(1) = %v after Set, want (7, 5)", off)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d after Set, want 3", s.Len())
	}

	// The replacement rect sits at the same slot with the kept offset.
	rects := stackRects(s)
	if rects[1].Tex != repl || rects[1].Pos != image.Pt(7, 5) {
		t.Error("replacement rect not in place")
	}
	assertGroupShape(t, s)
}

func TestSetNotifiesOnce(t *testing.T) {
	s := New()
	for range 3 {
		if err := s.Append(testTex(2, 2)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	var count int
	s.setOnChange(func() { count++ })

	if err := s.Set(1, testTex(4, 4)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Set fired %d change notifications, want 1", count)
	}
}

func TestSetResolveFailureLeavesStack(t *testing.T) {
	s := New()
	orig := testTex(2, 2)
	if err := s.Append(orig); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := s.Set(0, nil); !errors.Is(err, ErrNilTexture) {
		t.Errorf("Set(0, nil) error = %v, want ErrNilTexture", err)
	}

	got, err := s.Texture(0)
	if err != nil {
		t.Fatalf("Texture(0) error = %v", err)
	}
	if got != orig {
		t.Error("failed Set should leave the layer in place")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestClear(t *testing.T) {
	s := New()
	for range 3 {
		if err := s.Append(testTex(5, 5)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
	if s.Size() != image.Pt(1, 1) {
		t.Errorf("Size() = %v after Clear, want the (1, 1) placeholder", s.Size())
	}
	assertGroupShape(t, s)

	// The placeholder holds until the next mutation.
	if err := s.Append(testTex(4, 4)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if s.Size() != image.Pt(4, 4) {
		t.Errorf("Size() = %v after append, want (4, 4)", s.Size())
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name    string
		layers  []image.Point // texture dims
		offsets []image.Point
		want    image.Point
	}{
		{
			name: "empty",
			want: image.Pt(0, 0),
		},
		{
			name:   "single",
			layers: []image.Point{{X: 5, Y: 5}},
			want:   image.Pt(5, 5),
		},
		{
			name:    "offset extends width",
			layers:  []image.Point{{X: 5, Y: 5}},
			offsets: []image.Point{{X: 10, Y: 0}},
			want:    image.Pt(15, 5),
		},
		{
			name:    "max per axis",
			layers:  []image.Point{{X: 5, Y: 5}, {X: 3, Y: 3}},
			offsets: []image.Point{{X: 10, Y: 0}, {X: 0, Y: 9}},
			want:    image.Pt(15, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i, d := range tt.layers {
				if err := s.Append(testTex(d.X, d.Y)); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
				if i < len(tt.offsets) {
					if err := s.SetOffset(i, tt.offsets[i]); err != nil {
						t.Fatalf("SetOffset() error = %v", err)
					}
				}
			}
			if got := s.Size(); got != tt.want {
				t.Errorf("Size() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetOffsetInPlace(t *testing.T) {
	s := New()
	if err := s.Append(testTex(4, 4)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	before := stackRects(s)[0]
	if err := s.SetOffset(0, image.Pt(6, 2)); err != nil {
		t.Fatalf("SetOffset() error = %v", err)
	}
	after := stackRects(s)[0]

	if before != after {
		t.Error("SetOffset should re-aim the existing rect, not rebuild")
	}
	if after.Pos != image.Pt(6, 2) {
		t.Errorf("rect Pos = %v, want (6, 2)", after.Pos)
	}
	if s.Size() != image.Pt(10, 6) {
		t.Errorf("Size() = %v, want (10, 6)", s.Size())
	}

	if err := s.SetOffset(5, image.Pt(1, 1)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetOffset(5) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSetOffsets(t *testing.T) {
	s := New()
	for range 3 {
		if err := s.Append(testTex(2, 2)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	// Shorter list: missing offsets reset to zero.
	if err := s.SetOffset(2, image.Pt(9, 9)); err != nil {
		t.Fatalf("SetOffset() error = %v", err)
	}
	s.SetOffsets([]image.Point{{X: 1, Y: 1}, {X: 2, Y: 2}})
	want := []image.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {}}
	for i, w := range want {
		off, err := s.Offset(i)
		if err != nil {
			t.Fatalf("Offset(%d) error = %v", i, err)
		}
		if off != w {
			t.Errorf("Offset(%d) = %v, want %v", i, off, w)
		}
	}

	// Longer list: extras are ignored.
	s.SetOffsets([]image.Point{{X: 3, Y: 3}, {X: 4, Y: 4}, {X: 5, Y: 5}, {X: 99, Y: 99}})
	off, err := s.Offset(2)
	if err != nil {
		t.Fatalf("Offset(2) error = %v", err)
	}
	if off != image.Pt(5, 5) {
		t.Errorf("Offset(2) = %v, want (5, 5)", off)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	assertGroupShape(t, s)
}

func TestOffsetsSnapshot(t *testing.T) {
	s := New()
	if err := s.Append(testTex(2, 2)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.SetOffset(0, image.Pt(3, 4)); err != nil {
		t.Fatalf("SetOffset() error = %v", err)
	}

	offs := s.Offsets()
	offs[0] = image.Pt(77, 77)

	got, err := s.Offset(0)
	if err != nil {
		t.Fatalf("Offset(0) error = %v", err)
	}
	if got != image.Pt(3, 4) {
		t.Error("Offsets() should return a copy")
	}
}

func TestSetPosition(t *testing.T) {
	s := New(WithPosition(image.Pt(5, 5)))
	if s.Position() != image.Pt(5, 5) {
		t.Errorf("Position() = %v, want (5, 5)", s.Position())
	}

	translate, ok := s.Group().At(1).(*canvas.Translate)
	if !ok {
		t.Fatalf("instruction 1 is %T, want *canvas.Translate", s.Group().At(1))
	}
	if translate.Offset != image.Pt(5, 5) {
		t.Errorf("translate offset = %v, want (5, 5)", translate.Offset)
	}

	var count int
	s.setOnChange(func() { count++ })

	s.SetPosition(image.Pt(8, 2))
	if translate.Offset != image.Pt(8, 2) {
		t.Errorf("translate offset = %v after SetPosition, want (8, 2)", translate.Offset)
	}
	if count != 1 {
		t.Errorf("SetPosition fired %d notifications, want 1", count)
	}

	// Setting the same position is a no-op.
	s.SetPosition(image.Pt(8, 2))
	if count != 1 {
		t.Errorf("no-op SetPosition fired %d notifications, want 1", count)
	}
}

func TestAttachDetach(t *testing.T) {
	s := New()
	cv := canvas.New()

	if err := s.Attach(nil); !errors.Is(err, ErrNilCanvas) {
		t.Errorf("Attach(nil) error = %v, want ErrNilCanvas", err)
	}

	if err := s.Attach(cv); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if !s.Attached() {
		t.Error("Attached() = false after Attach")
	}
	if s.Canvas() != cv {
		t.Error("Canvas() should return the attached canvas")
	}
	if !cv.Contains(s.Group()) {
		t.Error("canvas should contain the stack's group")
	}

	if err := s.Attach(canvas.New()); !errors.Is(err, ErrAttached) {
		t.Errorf("second Attach() error = %v, want ErrAttached", err)
	}

	if err := s.Detach(); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	if s.Attached() {
		t.Error("Attached() = true after Detach")
	}
	if cv.Contains(s.Group()) {
		t.Error("canvas should no longer contain the group")
	}

	if err := s.Detach(); !errors.Is(err, ErrNotAttached) {
		t.Errorf("second Detach() error = %v, want ErrNotAttached", err)
	}
}

// TestAttachLateEqualsEarly verifies that mutating before Attach and
// mutating after Attach produce identical rendering.
func TestAttachLateEqualsEarly(t *testing.T) {
	build := func(s *TextureStack) {
		if err := s.Append(NewUniformTexture(3, 3, color.RGBA{R: 255, A: 255})); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if err := s.Append(NewUniformTexture(2, 2, color.RGBA{B: 255, A: 255})); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if err := s.SetOffset(1, image.Pt(2, 2)); err != nil {
			t.Fatalf("SetOffset() error = %v", err)
		}
	}

	// Mutate first, attach second.
	late := New(WithPosition(image.Pt(1, 1)))
	build(late)
	cvLate := canvas.New()
	if err := late.Attach(cvLate); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	// Attach first, mutate second.
	early := New(WithPosition(image.Pt(1, 1)))
	cvEarly := canvas.New()
	if err := early.Attach(cvEarly); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	build(early)

	a := image.NewRGBA(image.Rect(0, 0, 8, 8))
	b := image.NewRGBA(image.Rect(0, 0, 8, 8))
	cvLate.Composite(a)
	cvEarly.Composite(b)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("late attach renders differently from early attach")
	}
}

func TestUseCanvas(t *testing.T) {
	s := New(WithUseCanvas(false))
	cv := canvas.New()

	if err := s.Attach(cv); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if cv.Len() != 0 {
		t.Error("WithUseCanvas(false) stack should not install its group")
	}
	if !s.Attached() {
		t.Error("stack should still report attached")
	}

	s.SetUseCanvas(true)
	if !cv.Contains(s.Group()) {
		t.Error("SetUseCanvas(true) should install the group immediately")
	}

	s.SetUseCanvas(false)
	if cv.Len() != 0 {
		t.Error("SetUseCanvas(false) should remove the group immediately")
	}
}

func TestIndexErrorDetails(t *testing.T) {
	s := New()
	if err := s.Append(testTex(1, 1)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	_, err := s.Texture(3)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Texture(3) error = %v, want ErrIndexOutOfRange", err)
	}

	var ie *IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("Texture(3) error is %T, want *IndexError", err)
	}
	if ie.Index != 3 || ie.Len != 1 {
		t.Errorf("IndexError = {Index: %d, Len: %d}, want {Index: 3, Len: 1}", ie.Index, ie.Len)
	}
}

func TestLayersSnapshot(t *testing.T) {
	s := New()
	a := testTex(2, 2)
	if err := s.Append(a); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	layers := s.Layers()
	if len(layers) != 1 {
		t.Fatalf("Layers() returned %d records, want 1", len(layers))
	}
	if layers[0].Texture != a {
		t.Error("layer record holds the wrong texture")
	}
	if layers[0].Source() != a {
		t.Error("passthrough layers record the texture as their source item")
	}

	// Mutating the snapshot does not touch the stack.
	layers[0].Offset = image.Pt(9, 9)
	off, err := s.Offset(0)
	if err != nil {
		t.Fatalf("Offset(0) error = %v", err)
	}
	if off != (image.Point{}) {
		t.Error("Layers() should return a copy")
	}
}

func TestRebuild(t *testing.T) {
	s := New()
	a, b := testTex(2, 2), testTex(3, 3)
	for _, tex := range []*ImageTexture{a, b} {
		if err := s.Append(tex); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := s.SetOffset(0, image.Pt(4, 0)); err != nil {
		t.Fatalf("SetOffset() error = %v", err)
	}
	before := stackRects(s)

	s.Rebuild()

	after := stackRects(s)
	if len(after) != 2 {
		t.Fatalf("group holds %d rects after Rebuild, want 2", len(after))
	}
	if before[0] == after[0] || before[1] == after[1] {
		t.Error("Rebuild should regenerate rect instructions")
	}
	if after[0].Tex != a || after[1].Tex != b {
		t.Error("Rebuild changed the draw order")
	}
	if after[0].Pos != image.Pt(4, 0) {
		t.Errorf("rect 0 Pos = %v after Rebuild, want (4, 0)", after[0].Pos)
	}
	if s.Size() != image.Pt(6, 3) {
		t.Errorf("Size() = %v after Rebuild, want (6, 3)", s.Size())
	}
	assertGroupShape(t, s)
}

func BenchmarkAppend(b *testing.B) {
	tex := testTex(8, 8)
	for b.Loop() {
		s := New()
		for range 16 {
			_ = s.Append(tex)
		}
	}
}

func BenchmarkSetOffset(b *testing.B) {
	s := New()
	for range 16 {
		_ = s.Append(testTex(8, 8))
	}
	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		_ = s.SetOffset(i%16, image.Pt(i&7, i&3))
	}
}
