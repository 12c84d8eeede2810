// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/texstack"
)

// Presentation errors.
var (
	// ErrPresenterClosed is returned when using a closed presenter.
	ErrPresenterClosed = errors.New("gpu: presenter is closed")

	// ErrNilBatch is returned when the batch is nil.
	ErrNilBatch = errors.New("gpu: batch is nil")

	// ErrNilDrawContext is returned when the draw context is nil.
	ErrNilDrawContext = errors.New("gpu: draw context is nil")

	// ErrNoTextureCreator is returned when the draw context cannot
	// create textures.
	ErrNoTextureCreator = errors.New("gpu: draw context has no texture creator")

	// ErrInvalidTexture is returned when the presentation texture does
	// not implement gpucontext.Texture.
	ErrInvalidTexture = errors.New("gpu: texture does not implement gpucontext.Texture")
)

// textureDestroyer is the interface for destroying presentation
// textures. Implemented by gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// pendingTexture defers GPU texture creation until a texture creator
// is available, which happens inside PresentAt.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}

// Presenter uploads a batch's composited image to the GPU and draws it
// through a gpucontext.TextureDrawer.
//
// The presenter tracks the batch's dirty state: pixels are re-uploaded
// only when the batch has been redrawn or resized since the previous
// call. Not safe for concurrent use.
type Presenter struct {
	batch *texstack.Batch

	texture    any // gpucontext texture once created, *pendingTexture before
	oldTexture any // retired on resize, destroyed after the next upload

	// stale marks the texture content as behind the batch image after a
	// failed update, forcing a retry on the next flush.
	stale bool

	width  int
	height int
	closed bool
}

// NewPresenter returns a presenter for batch. The presenter does not
// own the batch; closing the presenter leaves the batch usable.
func NewPresenter(batch *texstack.Batch) (*Presenter, error) {
	if batch == nil {
		return nil, ErrNilBatch
	}
	sz := batch.Size()
	return &Presenter{batch: batch, width: sz.X, height: sz.Y}, nil
}

// Batch returns the batch this presenter draws.
func (p *Presenter) Batch() *texstack.Batch { return p.batch }

// Texture returns the current presentation texture without flushing.
// Returns nil before the first Present call.
func (p *Presenter) Texture() any { return p.texture }

// flush brings the presentation texture in sync with the batch image.
// It returns either a gpucontext texture that is up to date or a
// *pendingTexture holding the pixels to create one from.
func (p *Presenter) flush() (any, error) {
	if p.closed {
		return nil, ErrPresenterClosed
	}

	// On resize the old texture may still be referenced by in-flight
	// GPU work. Keep it alive and destroy it after the next upload,
	// which waits for the GPU internally.
	if sz := p.batch.Size(); sz.X != p.width || sz.Y != p.height {
		p.width, p.height = sz.X, sz.Y
		if p.texture != nil {
			if p.oldTexture != nil {
				if destroyer, ok := p.oldTexture.(textureDestroyer); ok {
					destroyer.Destroy()
				}
			}
			p.oldTexture = p.texture
			p.texture = nil
		}
	}

	// Skip the upload when nothing changed and a real texture exists.
	if !p.batch.IsDirty() && !p.stale && p.texture != nil {
		if _, pending := p.texture.(*pendingTexture); !pending {
			return p.texture, nil
		}
	}

	img, err := p.batch.Image()
	if err != nil {
		return nil, err
	}
	data := img.Pix

	switch tex := p.texture.(type) {
	case nil:
		p.texture = &pendingTexture{width: p.width, height: p.height, data: data}
	case *pendingTexture:
		tex.data = data
	default:
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(data); err != nil {
				p.stale = true
				return nil, fmt.Errorf("gpu: texture update failed: %w", err)
			}
		}
	}

	p.stale = false
	return p.texture, nil
}

// Present draws the batch at the origin of the draw context.
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    p.Present(dc.AsTextureDrawer())
//	})
func (p *Presenter) Present(dc gpucontext.TextureDrawer) error {
	return p.PresentAt(dc, 0, 0)
}

// PresentAt draws the batch at the given position.
func (p *Presenter) PresentAt(dc gpucontext.TextureDrawer, x, y float32) error {
	if dc == nil {
		return ErrNilDrawContext
	}

	tex, err := p.flush()
	if err != nil {
		return err
	}

	if pending, ok := tex.(*pendingTexture); ok {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}

		// NewTextureFromRGBA waits for the GPU internally, so once it
		// returns the retired texture can be destroyed safely.
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("gpu: NewTextureFromRGBA failed: %w", err)
		}

		// Batch pixels are alpha-premultiplied. Mark the texture so
		// the runtime picks the matching blend pipeline.
		if pt, ok := realTex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}

		p.texture = realTex
		tex = realTex

		if p.oldTexture != nil {
			if destroyer, ok := p.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			p.oldTexture = nil
		}
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// Close destroys the presentation textures. The batch is left alone.
// Close is idempotent.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if p.oldTexture != nil {
		if destroyer, ok := p.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		p.oldTexture = nil
	}
	if p.texture != nil {
		if destroyer, ok := p.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		p.texture = nil
	}

	return nil
}
