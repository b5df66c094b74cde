// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core bootstraps everything needed to present to a window:
// instance, surface, device, queue and swapchain.
package core

import (
	"unsafe"

	"github.com/devblok/kiln/device"
	"github.com/devblok/kiln/surface"
	"github.com/devblok/kiln/swapchain"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// Window is the presentable window the engine renders to.
// The engine only queries it, events are pumped by the owner.
type Window interface {
	// InstanceExtensions returns the instance extensions needed to present
	InstanceExtensions() []string

	// ProcAddr returns vkGetInstanceProcAddr of the loaded Vulkan library,
	// nil means the default loader is used
	ProcAddr() unsafe.Pointer

	// CreateSurface binds the window to the instance
	CreateSurface(instance vk.Instance) (surface.Surface, error)
}

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// Handle returns the inner handle of the underlying API
	Handle() vk.Instance

	// PhysicalDevices returns info for each physical device
	// in enumeration order
	PhysicalDevices() ([]device.PhysicalDeviceInfo, error)

	// OpenDevice opens a logical device with one queue from family
	OpenDevice(dev device.PhysicalDeviceInfo, family device.QueueFamilySelection, required device.ExtensionSet) (Device, error)

	// Destroy destroys internal members
	Destroy()
}

// Device is an opened logical device.
type Device interface {
	// Queue returns the single queue of the device
	Queue() device.Queue

	// CreateSwapchain builds a swapchain on the surface
	CreateSwapchain(srf vk.Surface, cfg swapchain.Config) (Swapchain, error)

	// Destroy destroys the device, everything created from it
	// has to be destroyed before
	Destroy()
}

// Swapchain is a live presentation chain.
type Swapchain interface {
	Config() swapchain.Config
	Images() []swapchain.Image
	Destroy()
}

// InstanceFactory creates the instance the engine is built on.
type InstanceFactory func(cfg InstanceConfiguration, log *logrus.Entry) (Instance, error)
