// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/device"
	"github.com/devblok/kiln/swapchain"
	"github.com/devblok/kiln/utility/vkutil"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// APIVersion is the Vulkan version the instance is created for.
var APIVersion = vk.MakeVersion(1, 2, 0)

const (
	validationLayerName = "VK_LAYER_KHRONOS_validation"
	engineName          = "kiln"
)

// NewVulkanInstance creates a Vulkan instance
func NewVulkanInstance(cfg InstanceConfiguration, log *logrus.Entry) (Instance, error) {
	if cfg.DebugMode {
		cfg.Layers = append(cfg.Layers, validationLayerName)
		cfg.Extensions = append(cfg.Extensions, vk.ExtDebugReportExtensionName)
	}

	if cfg.ProcAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()"), ErrInstanceCreation)
		}
	} else {
		vk.SetGetInstanceProcAddr(cfg.ProcAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "vk.Init()"), ErrInstanceCreation)
	}

	extensions := vkutil.SafeStrings(cfg.Extensions)
	layers := vkutil.SafeStrings(cfg.Layers)

	/* Create instance */
	instanceInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         APIVersion,
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			EngineVersion:      vk.MakeVersion(1, 0, 0),
			PApplicationName:   vkutil.SafeString(cfg.ApplicationName),
			PEngineName:        vkutil.SafeString(engineName),
		},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var instance vk.Instance
	if err := vkutil.Check(vk.CreateInstance(&instanceInfo, nil, &instance), "CreateInstance"); err != nil {
		return nil, errors.Mark(err, ErrInstanceCreation)
	}
	vk.InitInstance(instance)

	log.Debugf("Created vulkan instance %s with extensions %v and layers %v",
		vkutil.DecodeVersion(APIVersion), cfg.Extensions, cfg.Layers)

	v := &VulkanInstance{
		configuration: cfg,
		instance:      instance,
		log:           log,
	}

	if cfg.DebugMode {
		if err := v.installDebugCallback(); err != nil {
			v.Destroy()
			return nil, errors.Mark(err, ErrInstanceCreation)
		}
	}
	return v, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	configuration InstanceConfiguration

	instance      vk.Instance
	debugCallback vk.DebugReportCallback
	log           *logrus.Entry
}

// Handle implements interface
func (v *VulkanInstance) Handle() vk.Instance {
	return v.instance
}

// Extensions returns the enabled instance extensions
func (v *VulkanInstance) Extensions() []string {
	return v.configuration.Extensions
}

// PhysicalDevices implements interface
func (v *VulkanInstance) PhysicalDevices() ([]device.PhysicalDeviceInfo, error) {
	return device.Enumerate(v.instance)
}

// OpenDevice implements interface
func (v *VulkanInstance) OpenDevice(dev device.PhysicalDeviceInfo, family device.QueueFamilySelection, required device.ExtensionSet) (Device, error) {
	logical, err := device.Open(dev, family, required, v.log)
	if err != nil {
		return nil, err
	}
	return &vulkanDevice{logical: logical}, nil
}

// Destroy implements interface
func (v *VulkanInstance) Destroy() {
	if v.instance == nil {
		return
	}
	if v.debugCallback != nil {
		vk.DestroyDebugReportCallback(v.instance, v.debugCallback, nil)
		v.debugCallback = nil
	}
	vk.DestroyInstance(v.instance, nil)
	v.instance = nil
}

func (v *VulkanInstance) installDebugCallback() error {
	dbgCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit | vk.DebugReportInformationBit | vk.DebugReportDebugBit),
		PfnCallback: v.debugReport,
	}

	var dbg vk.DebugReportCallback
	if err := vkutil.Check(vk.CreateDebugReportCallback(v.instance, &dbgCreateInfo, nil, &dbg), "CreateDebugReportCallback"); err != nil {
		return err
	}
	v.debugCallback = dbg
	return nil
}

func (v *VulkanInstance) debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	log := v.log.WithFields(logrus.Fields{
		"layer": pLayerPrefix,
		"code":  messageCode,
	})
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Error(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0,
		flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		log.Warn(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		log.Debug(pMessage)
	default:
		log.Info(pMessage)
	}
	return vk.Bool32(vk.False)
}

// vulkanDevice is a Device backed by a device.Logical
type vulkanDevice struct {
	logical *device.Logical
}

func (d *vulkanDevice) Queue() device.Queue {
	return d.logical.Queue
}

func (d *vulkanDevice) CreateSwapchain(srf vk.Surface, cfg swapchain.Config) (Swapchain, error) {
	sc, err := swapchain.Build(d.logical.Handle, srf, cfg)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (d *vulkanDevice) Destroy() {
	if d.logical.Handle != nil {
		vk.DeviceWaitIdle(d.logical.Handle)
	}
	d.logical.Destroy()
}
