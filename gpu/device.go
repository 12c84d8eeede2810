// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides access to the GPU device, queue and adapter.
// Any gpucontext device provider satisfies it, such as the provider
// exposed by a gogpu application window.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no GPU behind it. Textures
// created against it are logical: they track dimensions, format and
// pixels but own no device resources. The software compositing path
// works unchanged, which makes the null handle useful in tests and on
// machines without a usable GPU.
type NullDeviceHandle struct {
	// Format is reported as the surface format. The zero value means
	// BGRA8, the common presentation format.
	Format gputypes.TextureFormat
}

var _ DeviceHandle = (*NullDeviceHandle)(nil)

// Device implements DeviceHandle. Always nil.
func (n *NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue implements DeviceHandle. Always nil.
func (n *NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter implements DeviceHandle. Always nil.
func (n *NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat implements DeviceHandle.
func (n *NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	var zero gputypes.TextureFormat
	if n.Format == zero {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return n.Format
}
