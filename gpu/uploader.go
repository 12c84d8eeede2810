// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/texstack"
)

// imageProvider is implemented by textures that expose CPU pixels.
type imageProvider interface {
	Image() *image.RGBA
}

// Uploader promotes CPU textures to GPU textures as stack layers are
// resolved. It implements texstack.TexturePromoter.
//
// Promotion is idempotent: textures that already live on the GPU pass
// through unchanged. Textures without CPU pixels cannot be uploaded
// and also pass through, with a warning.
type Uploader struct {
	dev DeviceHandle
}

var _ texstack.TexturePromoter = (*Uploader)(nil)

// NewUploader returns an Uploader that creates textures against dev.
// A nil handle is allowed and produces logical textures, so stacks
// configured with an uploader behave the same with or without a GPU.
func NewUploader(dev DeviceHandle) *Uploader {
	return &Uploader{dev: dev}
}

// Promote implements texstack.TexturePromoter.
func (u *Uploader) Promote(tex texstack.Texture) (texstack.Texture, error) {
	if tex == nil {
		return nil, texstack.ErrNilTexture
	}

	if _, ok := tex.(*Texture); ok {
		return tex, nil
	}

	src, ok := tex.(imageProvider)
	if !ok || src.Image() == nil {
		texstack.Logger().Warn("gpu: texture has no CPU pixels, skipping upload",
			"width", tex.Width(), "height", tex.Height())
		return tex, nil
	}

	gtex, err := CreateTextureFromImage(u.dev, src.Image(), "layer_texture")
	if err != nil {
		return nil, fmt.Errorf("gpu: upload failed: %w", err)
	}

	texstack.Logger().Debug("gpu: uploaded layer texture",
		"width", gtex.Width(), "height", gtex.Height(), "bytes", gtex.SizeBytes())
	return gtex, nil
}
