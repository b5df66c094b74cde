// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package surface

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/device"
	"github.com/devblok/kiln/utility/vkutil"
	vk "github.com/vulkan-go/vulkan"
)

// DrawableSizer is anything that knows its drawable size in pixels.
type DrawableSizer interface {
	DrawableSize() (width, height uint32)
}

// NewVulkanSurface wraps a surface handle created for instance on window.
func NewVulkanSurface(instance vk.Instance, handle vk.Surface, window DrawableSizer) *VulkanSurface {
	return &VulkanSurface{
		instance: instance,
		handle:   handle,
		window:   window,
	}
}

// VulkanSurface is a Surface backed by a vk.Surface.
type VulkanSurface struct {
	instance vk.Instance
	handle   vk.Surface
	window   DrawableSizer
}

// Handle implements interface
func (s *VulkanSurface) Handle() vk.Surface {
	if s.handle == nil {
		return vk.NullSurface
	}
	return s.handle
}

// SupportsPresentation implements interface
func (s *VulkanSurface) SupportsPresentation(dev device.PhysicalDeviceInfo, family uint32) bool {
	var supportsPresent vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(dev.Handle, family, s.handle, &supportsPresent)); err != nil {
		return false
	}
	return supportsPresent.B()
}

// Capabilities implements interface
func (s *VulkanSurface) Capabilities(dev device.PhysicalDeviceInfo) (Capabilities, error) {
	var surfaceCapabilities vk.SurfaceCapabilities
	if err := vkutil.Check(vk.GetPhysicalDeviceSurfaceCapabilities(dev.Handle, s.handle, &surfaceCapabilities), "GetPhysicalDeviceSurfaceCapabilities"); err != nil {
		return Capabilities{}, errors.Mark(err, ErrNoCapabilities)
	}
	surfaceCapabilities.Deref()
	surfaceCapabilities.CurrentExtent.Deref()
	surfaceCapabilities.MinImageExtent.Deref()
	surfaceCapabilities.MaxImageExtent.Deref()

	var surfaceFormatCount uint32
	if err := vkutil.Check(vk.GetPhysicalDeviceSurfaceFormats(dev.Handle, s.handle, &surfaceFormatCount, nil), "GetPhysicalDeviceSurfaceFormats"); err != nil {
		return Capabilities{}, errors.Mark(err, ErrNoCapabilities)
	}
	surfaceFormats := make([]vk.SurfaceFormat, surfaceFormatCount)
	if err := vkutil.Check(vk.GetPhysicalDeviceSurfaceFormats(dev.Handle, s.handle, &surfaceFormatCount, surfaceFormats), "GetPhysicalDeviceSurfaceFormats"); err != nil {
		return Capabilities{}, errors.Mark(err, ErrNoCapabilities)
	}
	if surfaceFormatCount == 0 {
		return Capabilities{}, errors.Wrapf(ErrNoCapabilities, "no surface formats on %q", dev.Name)
	}

	formats := make([]Format, 0, surfaceFormatCount)
	for i := range surfaceFormats[:surfaceFormatCount] {
		surfaceFormats[i].Deref()
		formats = append(formats, Format{
			Format:     surfaceFormats[i].Format,
			ColorSpace: surfaceFormats[i].ColorSpace,
		})
	}

	return Capabilities{
		Formats:                 formats,
		MinImageCount:           surfaceCapabilities.MinImageCount,
		MaxImageCount:           surfaceCapabilities.MaxImageCount,
		CurrentExtent:           surfaceCapabilities.CurrentExtent,
		MinImageExtent:          surfaceCapabilities.MinImageExtent,
		MaxImageExtent:          surfaceCapabilities.MaxImageExtent,
		SupportedTransforms:     surfaceCapabilities.SupportedTransforms,
		CurrentTransform:        surfaceCapabilities.CurrentTransform,
		SupportedCompositeAlpha: surfaceCapabilities.SupportedCompositeAlpha,
		SupportedUsage:          surfaceCapabilities.SupportedUsageFlags,
	}, nil
}

// DrawableSize implements interface
func (s *VulkanSurface) DrawableSize() (width, height uint32) {
	return s.window.DrawableSize()
}

// Destroy implements interface
func (s *VulkanSurface) Destroy() {
	if s.handle == nil {
		return
	}
	vk.DestroySurface(s.instance, s.handle, nil)
	s.handle = nil
}
