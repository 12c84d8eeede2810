// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"slices"
)

// Instruction is a single entry in a display list.
//
// Instructions are identified by pointer: the same *Rect added to a group
// is the one removed from it. Concrete types are PushTransform, Translate,
// Rect, and PopTransform.
type Instruction interface {
	// instruction restricts implementations to this package.
	instruction()
}

// PushTransform saves the current translation origin.
// Restore it with a matching PopTransform.
type PushTransform struct{}

func (*PushTransform) instruction() {}

// PopTransform restores the origin saved by the matching PushTransform.
type PopTransform struct{}

func (*PopTransform) instruction() {}

// Translate shifts the origin for subsequent instructions in the group.
// Mutating Offset takes effect on the next composite; no rebuild is needed.
type Translate struct {
	Offset image.Point
}

func (*Translate) instruction() {}

// Rect draws a texture at Pos (relative to the current origin) with the
// given size. When Size differs from the texture's natural size the
// compositor scales the texture to fit.
type Rect struct {
	Tex  Texture
	Pos  image.Point
	Size image.Point
}

func (*Rect) instruction() {}

// NewRect creates a Rect drawing tex at pos with its natural size.
func NewRect(tex Texture, pos image.Point) *Rect {
	return &Rect{
		Tex:  tex,
		Pos:  pos,
		Size: image.Pt(tex.Width(), tex.Height()),
	}
}

// Group is an ordered list of instructions, composited in order:
// index 0 draws first, later instructions draw on top.
//
// Group is not safe for concurrent use.
type Group struct {
	items []Instruction
}

// NewGroup creates an empty instruction group.
func NewGroup() *Group {
	return &Group{}
}

// Add appends an instruction to the group.
// Nil instructions are ignored.
func (g *Group) Add(ins Instruction) {
	if ins == nil {
		return
	}
	g.items = append(g.items, ins)
}

// InsertAt inserts an instruction at index i.
// The index is clamped to [0, Len()]. Nil instructions are ignored.
func (g *Group) InsertAt(i int, ins Instruction) {
	if ins == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(g.items) {
		i = len(g.items)
	}
	g.items = slices.Insert(g.items, i, ins)
}

// Remove removes the first occurrence of ins, compared by identity.
// Returns false if the instruction is not in the group; removing a
// missing instruction is not an error.
func (g *Group) Remove(ins Instruction) bool {
	for i, it := range g.items {
		if it == ins {
			g.items = slices.Delete(g.items, i, i+1)
			return true
		}
	}
	return false
}

// Clear removes all instructions from the group.
func (g *Group) Clear() {
	g.items = g.items[:0]
}

// Len returns the number of instructions in the group.
func (g *Group) Len() int {
	return len(g.items)
}

// At returns the instruction at index i.
// Returns nil if i is out of range.
func (g *Group) At(i int) Instruction {
	if i < 0 || i >= len(g.items) {
		return nil
	}
	return g.items[i]
}

// Index returns the position of ins in the group, or -1 if absent.
// Instructions are compared by identity.
func (g *Group) Index(ins Instruction) int {
	for i, it := range g.items {
		if it == ins {
			return i
		}
	}
	return -1
}

// Instructions returns a copy of the instruction list.
func (g *Group) Instructions() []Instruction {
	out := make([]Instruction, len(g.items))
	copy(out, g.items)
	return out
}
