// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas provides the retained display list that texture stacks
// render into.
//
// A Canvas holds instruction groups in installation order. Each group is an
// ordered list of instructions (PushTransform, Translate, Rect,
// PopTransform) that a compositor walks in order. The package ships a
// software compositor; GPU compositors can walk the same instructions
// through Groups and Instructions.
//
// Canvas and Group are plain data structures: mutating them requires no
// graphics context, so producers can build and edit display lists before
// any surface exists.
//
// Canvas is not safe for concurrent use.
package canvas

import "slices"

// Texture is the minimal handle a Rect instruction can draw.
//
// Implementations that also provide Image() *image.RGBA can be composited
// in software; others (pure GPU textures) are skipped by the software
// compositor and left to a GPU walker.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int
}

// Canvas is the root of a display list: an ordered list of instruction
// groups. Groups composite in installation order, so a group added later
// draws on top of earlier ones.
type Canvas struct {
	groups  []*Group
	version uint64
}

// New creates an empty canvas.
func New() *Canvas {
	return &Canvas{}
}

// Add appends a group to the canvas.
// Nil groups and groups already installed are ignored.
func (c *Canvas) Add(g *Group) {
	if g == nil || c.Contains(g) {
		return
	}
	c.groups = append(c.groups, g)
	c.version++
}

// Remove removes a group from the canvas, compared by identity.
// Returns false if the group is not installed.
func (c *Canvas) Remove(g *Group) bool {
	for i, it := range c.groups {
		if it == g {
			c.groups = slices.Delete(c.groups, i, i+1)
			c.version++
			return true
		}
	}
	return false
}

// Contains reports whether g is installed in the canvas.
func (c *Canvas) Contains(g *Group) bool {
	return slices.Contains(c.groups, g)
}

// Len returns the number of installed groups.
func (c *Canvas) Len() int {
	return len(c.groups)
}

// Groups returns a copy of the group list in composite order.
func (c *Canvas) Groups() []*Group {
	out := make([]*Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Clear removes all groups from the canvas.
func (c *Canvas) Clear() {
	if len(c.groups) == 0 {
		return
	}
	c.groups = c.groups[:0]
	c.version++
}

// Version returns a counter that increments on every structural change
// (group added or removed). Compositors can compare versions to detect
// that a cached result is stale.
func (c *Canvas) Version() uint64 {
	return c.version
}
