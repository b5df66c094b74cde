// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/utility/vkutil"
	vk "github.com/vulkan-go/vulkan"
)

// Image is one presentable image of a swapchain.
type Image struct {
	Handle vk.Image
	Index  int
	Format vk.Format
	Extent vk.Extent2D
}

// Swapchain is a live presentation chain with its images.
type Swapchain struct {
	device    vk.Device
	swapchain vk.Swapchain
	config    Config
	images    []Image
}

// Build creates a swapchain on srf from cfg and fetches its images.
func Build(dev vk.Device, srf vk.Surface, cfg Config) (*Swapchain, error) {
	clipped := vk.False
	if cfg.Clipped {
		clipped = vk.True
	}

	scci := vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               srf,
		MinImageCount:         cfg.ImageCount,
		ImageFormat:           cfg.Format,
		ImageColorSpace:       cfg.ColorSpace,
		ImageExtent:           cfg.Extent,
		ImageArrayLayers:      1,
		ImageUsage:            cfg.Usage,
		ImageSharingMode:      cfg.SharingMode,
		QueueFamilyIndexCount: 1,
		PQueueFamilyIndices:   []uint32{cfg.QueueFamily},
		PreTransform:          cfg.PreTransform,
		CompositeAlpha:        cfg.CompositeAlpha,
		PresentMode:           cfg.PresentMode,
		Clipped:               vk.Bool32(clipped),
		OldSwapchain:          nil,
	}

	var swapchain vk.Swapchain
	if err := vkutil.Check(vk.CreateSwapchain(dev, &scci, nil, &swapchain), "CreateSwapchain"); err != nil {
		return nil, errors.Mark(err, ErrSwapchainCreation)
	}

	sc := &Swapchain{
		device:    dev,
		swapchain: swapchain,
		config:    cfg,
	}

	var numImages uint32
	if err := vkutil.Check(vk.GetSwapchainImages(dev, swapchain, &numImages, nil), "GetSwapchainImages"); err != nil {
		sc.Destroy()
		return nil, errors.Mark(err, ErrSwapchainCreation)
	}
	handles := make([]vk.Image, numImages)
	if err := vkutil.Check(vk.GetSwapchainImages(dev, swapchain, &numImages, handles), "GetSwapchainImages"); err != nil {
		sc.Destroy()
		return nil, errors.Mark(err, ErrSwapchainCreation)
	}

	sc.images = make([]Image, 0, numImages)
	for idx, handle := range handles[:numImages] {
		sc.images = append(sc.images, Image{
			Handle: handle,
			Index:  idx,
			Format: cfg.Format,
			Extent: cfg.Extent,
		})
	}
	return sc, nil
}

// Config returns the parameters the swapchain was built with.
func (s *Swapchain) Config() Config {
	return s.config
}

// Images returns the swapchain images in presentation index order.
func (s *Swapchain) Images() []Image {
	return s.images
}

// Destroy destroys the swapchain. Its images are owned by the swapchain
// and become invalid.
func (s *Swapchain) Destroy() {
	if s == nil || s.swapchain == nil {
		return
	}
	vk.DestroySwapchain(s.device, s.swapchain, nil)
	s.swapchain = nil
	s.images = nil
}
