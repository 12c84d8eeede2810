// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/blit.wgsl
var blitShaderSource string

// BlitShaderSource returns the WGSL source of the blit shader that
// draws a presented batch texture to the surface.
func BlitShaderSource() string {
	return blitShaderSource
}

// CompileBlitShader compiles the blit shader to SPIR-V words.
func CompileBlitShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(blitShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to compile blit shader: %w", err)
	}

	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// NewBlitShaderModule compiles the blit shader and creates a shader
// module on the device.
func NewBlitShaderModule(device hal.Device, label string) (hal.ShaderModule, error) {
	if device == nil {
		return nil, fmt.Errorf("gpu: device is required")
	}

	code, err := CompileBlitShader()
	if err != nil {
		return nil, err
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create blit shader module: %w", err)
	}
	return module, nil
}
