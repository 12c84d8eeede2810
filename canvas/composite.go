// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// imageProvider is the optional capability a Texture implements to be
// composited in software. Textures without it are skipped.
type imageProvider interface {
	Image() *image.RGBA
}

// Composite draws every installed group onto dst in order using
// source-over alpha blending.
//
// Within a group the compositor keeps a translation origin: Translate
// shifts it, PushTransform saves it, PopTransform restores it. Rects draw
// their texture at origin+Pos. Rects whose Size differs from the texture's
// natural size are scaled with Catmull-Rom resampling.
//
// Textures that do not provide CPU pixel access are skipped; a GPU
// compositor can walk the same groups for those.
func (c *Canvas) Composite(dst *image.RGBA) {
	for _, g := range c.groups {
		g.composite(dst)
	}
}

// composite walks one group's instructions onto dst.
func (g *Group) composite(dst *image.RGBA) {
	var origin image.Point
	var saved []image.Point

	for _, ins := range g.items {
		switch v := ins.(type) {
		case *PushTransform:
			saved = append(saved, origin)

		case *PopTransform:
			if n := len(saved); n > 0 {
				origin = saved[n-1]
				saved = saved[:n-1]
			}

		case *Translate:
			origin = origin.Add(v.Offset)

		case *Rect:
			drawRect(dst, v, origin)
		}
	}
}

// drawRect blends a single rect instruction onto dst.
func drawRect(dst *image.RGBA, r *Rect, origin image.Point) {
	if r.Tex == nil || r.Size.X <= 0 || r.Size.Y <= 0 {
		return
	}
	src, ok := r.Tex.(imageProvider)
	if !ok {
		return
	}
	img := src.Image()
	if img == nil {
		return
	}

	pos := origin.Add(r.Pos)
	dr := image.Rectangle{Min: pos, Max: pos.Add(r.Size)}

	if r.Size.X == r.Tex.Width() && r.Size.Y == r.Tex.Height() {
		draw.Draw(dst, dr, img, img.Bounds().Min, draw.Over)
		return
	}
	xdraw.CatmullRom.Scale(dst, dr, img, img.Bounds(), xdraw.Over, nil)
}
