// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package surface binds a window to Vulkan's presentation mechanism and
// answers the capability queries device selection and swapchain creation need.
package surface

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/device"
	vk "github.com/vulkan-go/vulkan"
)

// ErrSurfaceCreation is returned when a window could not be bound to an instance.
var ErrSurfaceCreation = errors.New("surface creation failed")

// ErrNoCapabilities is returned when the surface reports no usable
// capabilities for a device.
var ErrNoCapabilities = errors.New("surface reports no capabilities for device")

// Surface is a presentation target created for a Vulkan instance.
type Surface interface {
	device.PresentationSupport

	// Handle returns the underlying vk.Surface
	Handle() vk.Surface

	// Capabilities queries what swapchains the surface supports on dev
	Capabilities(dev device.PhysicalDeviceInfo) (Capabilities, error)

	// DrawableSize returns the current drawable size of the window in pixels
	DrawableSize() (width, height uint32)

	// Destroy destroys the surface, it must outlive every swapchain built on it
	Destroy()
}

// Format is a supported surface format and color space pair.
type Format struct {
	Format     vk.Format
	ColorSpace vk.ColorSpace
}

// Capabilities is a snapshot of what a surface supports on one device.
type Capabilities struct {
	Formats []Format

	MinImageCount uint32
	// MaxImageCount of 0 means there is no upper bound
	MaxImageCount uint32

	CurrentExtent  vk.Extent2D
	MinImageExtent vk.Extent2D
	MaxImageExtent vk.Extent2D

	SupportedTransforms     vk.SurfaceTransformFlags
	CurrentTransform        vk.SurfaceTransformFlagBits
	SupportedCompositeAlpha vk.CompositeAlphaFlags
	SupportedUsage          vk.ImageUsageFlags
}

// compositeAlphaOrder is the order composite alpha modes are reported in.
var compositeAlphaOrder = []vk.CompositeAlphaFlagBits{
	vk.CompositeAlphaOpaqueBit,
	vk.CompositeAlphaPreMultipliedBit,
	vk.CompositeAlphaPostMultipliedBit,
	vk.CompositeAlphaInheritBit,
}

// CompositeAlphaModes returns the supported composite alpha modes in bit order.
func (c Capabilities) CompositeAlphaModes() []vk.CompositeAlphaFlagBits {
	var modes []vk.CompositeAlphaFlagBits
	for _, mode := range compositeAlphaOrder {
		if c.SupportedCompositeAlpha&vk.CompositeAlphaFlags(mode) != 0 {
			modes = append(modes, mode)
		}
	}
	return modes
}

// SupportsFormat reports whether f was among the reported formats.
func (c Capabilities) SupportsFormat(f Format) bool {
	for _, format := range c.Formats {
		if format == f {
			return true
		}
	}
	return false
}

// SupportsTransform reports whether t is among the supported transforms.
func (c Capabilities) SupportsTransform(t vk.SurfaceTransformFlagBits) bool {
	return c.SupportedTransforms&vk.SurfaceTransformFlags(t) != 0
}
