// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/device"
	"github.com/devblok/kiln/surface"
	"github.com/devblok/kiln/swapchain"
	"github.com/sirupsen/logrus"
)

// Engine owns everything needed to present to a window. It is built
// once and lives until Destroy; the swapchain is not rebuilt on resize.
type Engine struct {
	instance  Instance
	surface   surface.Surface
	device    Device
	swapchain Swapchain

	physical device.PhysicalDeviceInfo
	family   device.QueueFamilySelection

	resources releaser
	log       *logrus.Entry
}

// NewEngine creates the instance, a surface on window, picks a physical
// device, opens a logical device with one queue on it and builds the
// swapchain. Either everything is created or nothing is: on failure every
// acquired resource is released in reverse order before returning.
func NewEngine(cfg Configuration, window Window, newInstance InstanceFactory, logger *logrus.Logger) (*Engine, error) {
	e := &Engine{
		log: logger.WithField(TargetKey, "core"),
	}
	if err := e.build(cfg, window, newInstance, logger); err != nil {
		e.resources.release()
		return nil, err
	}
	return e, nil
}

func (e *Engine) build(cfg Configuration, window Window, newInstance InstanceFactory, logger *logrus.Logger) error {
	instance, err := newInstance(InstanceConfiguration{
		ApplicationName: cfg.Application.Name,
		DebugMode:       cfg.DebugMode,
		Extensions:      window.InstanceExtensions(),
		ProcAddr:        window.ProcAddr(),
	}, logger.WithField(TargetKey, "instance"))
	if err != nil {
		return errors.WithHint(stage(err, ErrInstanceCreation, "creating instance"), instanceHint)
	}
	e.instance = instance
	e.resources.push(instance.Destroy)

	srf, err := window.CreateSurface(instance.Handle())
	if err != nil {
		return stage(err, surface.ErrSurfaceCreation, "creating surface")
	}
	e.surface = srf
	e.resources.push(srf.Destroy)

	candidates, err := instance.PhysicalDevices()
	if err != nil {
		return stage(err, device.ErrNoSuitableDevice, "enumerating physical devices")
	}

	required := device.RequiredExtensions()
	selector := device.NewSelector(logger.WithField(TargetKey, "device"))
	physical, family, err := selector.Select(candidates, srf, required)
	if err != nil {
		return err
	}
	e.physical = physical
	e.family = family

	dev, err := instance.OpenDevice(physical, family, required)
	if err != nil {
		return stage(err, device.ErrDeviceCreation, "opening logical device")
	}
	e.device = dev
	e.resources.push(dev.Destroy)

	caps, err := srf.Capabilities(physical)
	if err != nil {
		return stage(err, swapchain.ErrSwapchainCreation, "querying surface capabilities")
	}
	width, height := srf.DrawableSize()
	scCfg, err := swapchain.Derive(caps, width, height, dev.Queue().Family)
	if err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"images": scCfg.ImageCount,
		"format": scCfg.Format,
		"extent": scCfg.Extent,
		"alpha":  scCfg.CompositeAlpha,
	}).Trace("Creating swapchain...")

	sc, err := dev.CreateSwapchain(srf.Handle(), scCfg)
	if err != nil {
		return stage(err, swapchain.ErrSwapchainCreation, "creating swapchain")
	}
	e.swapchain = sc
	e.resources.push(sc.Destroy)

	e.log.Debugf("Engine ready on %s with %d swapchain images", physical.Name, len(sc.Images()))
	return nil
}

// PhysicalDevice returns the selected physical device
func (e *Engine) PhysicalDevice() device.PhysicalDeviceInfo {
	return e.physical
}

// QueueFamily returns the selected queue family
func (e *Engine) QueueFamily() device.QueueFamilySelection {
	return e.family
}

// Queue returns the graphics queue
func (e *Engine) Queue() device.Queue {
	return e.device.Queue()
}

// SwapchainConfig returns the parameters the swapchain was built with
func (e *Engine) SwapchainConfig() swapchain.Config {
	return e.swapchain.Config()
}

// Images returns the swapchain images
func (e *Engine) Images() []swapchain.Image {
	return e.swapchain.Images()
}

// Destroy releases the swapchain, device, surface and instance, in that order.
func (e *Engine) Destroy() {
	e.resources.release()
	e.log.Trace("Engine destroyed")
}
