// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu bridges texture stacks to the gogpu rendering runtime.
//
// It provides three pieces:
//
//   - Texture, a GPU texture handle that satisfies texstack.Texture and
//     retains its CPU pixels so software compositing keeps working.
//   - Uploader, a texstack.TexturePromoter that moves decoded images to
//     the GPU as layers are resolved.
//   - Presenter, which uploads a Batch's composited image and draws it
//     through a gpucontext.TextureDrawer.
//
// GPU resource creation currently goes through stub handles; the wgpu
// calls are wired in as texture support in gogpu/wgpu completes. All
// bookkeeping (dimensions, formats, usage, release state) is live, so
// code written against this package does not change when the stubs do.
//
// Usage with a stack:
//
//	dev := app.Provider() // gpucontext.DeviceProvider
//	st := texstack.NewImageStack(texstack.WithPromoter(gpu.NewUploader(dev)))
//
// Usage with a batch:
//
//	p, _ := gpu.NewPresenter(batch)
//	app.OnDraw(func(dc *gogpu.Context) {
//	    p.Present(dc.AsTextureDrawer())
//	})
package gpu
