// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package surface_test

import (
	"testing"

	"github.com/devblok/kiln/surface"
	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

type fixedSize struct{ w, h uint32 }

func (f fixedSize) DrawableSize() (uint32, uint32) { return f.w, f.h }

func TestCompositeAlphaModesInBitOrder(t *testing.T) {
	caps := surface.Capabilities{
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaInheritBit | vk.CompositeAlphaPreMultipliedBit),
	}
	assert.Equal(t,
		[]vk.CompositeAlphaFlagBits{vk.CompositeAlphaPreMultipliedBit, vk.CompositeAlphaInheritBit},
		caps.CompositeAlphaModes())

	assert.Empty(t, surface.Capabilities{}.CompositeAlphaModes())
}

func TestSupportsFormat(t *testing.T) {
	bgra := surface.Format{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	rgba := surface.Format{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	caps := surface.Capabilities{Formats: []surface.Format{bgra}}

	assert.True(t, caps.SupportsFormat(bgra))
	assert.False(t, caps.SupportsFormat(rgba))
}

func TestSupportsTransform(t *testing.T) {
	caps := surface.Capabilities{
		SupportedTransforms: vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit),
	}
	assert.True(t, caps.SupportsTransform(vk.SurfaceTransformIdentityBit))
	assert.False(t, caps.SupportsTransform(vk.SurfaceTransformRotate90Bit))
}

func TestVulkanSurfaceWithoutHandle(t *testing.T) {
	s := surface.NewVulkanSurface(nil, nil, fixedSize{800, 600})

	assert.Equal(t, vk.NullSurface, s.Handle())
	w, h := s.DrawableSize()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)
	assert.NotPanics(t, s.Destroy)
}
