// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package surface

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	vk "github.com/vulkan-go/vulkan"
)

// NewWindow opens a Vulkan capable SDL window. SDL video must be
// initialised and the Vulkan library loaded beforehand.
func NewWindow(title string, width, height int32) (*Window, error) {
	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		width,
		height,
		sdl.WINDOW_VULKAN|sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "sdl.CreateWindow()"), ErrSurfaceCreation)
	}
	return &Window{window: window}, nil
}

// Window is an SDL window surfaces can be created on.
type Window struct {
	window *sdl.Window
}

// InstanceExtensions returns the instance extensions the window needs to present.
func (w *Window) InstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// ProcAddr returns the vkGetInstanceProcAddr of the library SDL loaded.
func (w *Window) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// CreateSurface binds the window to instance.
func (w *Window) CreateSurface(instance vk.Instance) (Surface, error) {
	srf, err := w.window.VulkanCreateSurface(instance)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "sdl.VulkanCreateSurface()"), ErrSurfaceCreation)
	}
	return NewVulkanSurface(instance, vk.SurfaceFromPointer(uintptr(srf)), w), nil
}

// DrawableSize returns the size of the window's drawable in pixels.
func (w *Window) DrawableSize() (width, height uint32) {
	dw, dh := w.window.VulkanGetDrawableSize()
	return uint32(dw), uint32(dh)
}

// Destroy closes the window.
func (w *Window) Destroy() {
	if w.window == nil {
		return
	}
	w.window.Destroy()
	w.window = nil
}
