// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package swapchain derives presentation parameters from what a surface
// reports and builds the swapchain with its images.
package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/surface"
	vk "github.com/vulkan-go/vulkan"
)

// ErrSwapchainCreation is returned when surface capabilities could not be
// queried or the swapchain could not be constructed.
var ErrSwapchainCreation = errors.New("swapchain creation failed")

// Config is the set of parameters a swapchain is built with.
type Config struct {
	ImageCount     uint32
	Format         vk.Format
	ColorSpace     vk.ColorSpace
	Extent         vk.Extent2D
	CompositeAlpha vk.CompositeAlphaFlagBits
	Usage          vk.ImageUsageFlags
	SharingMode    vk.SharingMode
	QueueFamily    uint32
	PreTransform   vk.SurfaceTransformFlagBits
	PresentMode    vk.PresentMode
	Clipped        bool
}

// Derive computes a Config from caps: the minimum image count, the first
// reported format, the first supported composite alpha mode and the given
// drawable size, for exclusive use by queueFamily.
func Derive(caps surface.Capabilities, width, height uint32, queueFamily uint32) (Config, error) {
	if len(caps.Formats) == 0 {
		return Config{}, errors.Wrap(ErrSwapchainCreation, "surface reports no formats")
	}
	alphaModes := caps.CompositeAlphaModes()
	if len(alphaModes) == 0 {
		return Config{}, errors.Wrap(ErrSwapchainCreation, "surface reports no composite alpha modes")
	}

	preTransform := vk.SurfaceTransformIdentityBit
	if !caps.SupportsTransform(preTransform) && caps.CurrentTransform != 0 {
		preTransform = caps.CurrentTransform
	}

	return Config{
		ImageCount:     ImageCount(caps),
		Format:         caps.Formats[0].Format,
		ColorSpace:     caps.Formats[0].ColorSpace,
		Extent:         vk.Extent2D{Width: width, Height: height},
		CompositeAlpha: alphaModes[0],
		Usage:          vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		SharingMode:    vk.SharingModeExclusive,
		QueueFamily:    queueFamily,
		PreTransform:   preTransform,
		PresentMode:    vk.PresentModeFifo,
		Clipped:        true,
	}, nil
}

// ImageCount is the number of images requested for caps: the minimum the
// surface allows, kept within its bounds. A MaxImageCount of 0 is unbounded.
func ImageCount(caps surface.Capabilities) uint32 {
	count := caps.MinImageCount
	if count == 0 {
		count = 1
	}
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}
