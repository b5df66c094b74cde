// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device discovers physical rendering devices, picks the one to
// present with and opens a logical device with a single queue on it.
package device

import (
	vk "github.com/vulkan-go/vulkan"
)

// DeviceType classifies a physical device the way the driver reports it.
type DeviceType int

// Known device types, ordered by selection preference.
const (
	DiscreteGPU DeviceType = iota
	IntegratedGPU
	VirtualGPU
	CPU
	OtherType
)

var deviceTypeNames = map[DeviceType]string{
	DiscreteGPU:   "DiscreteGpu",
	IntegratedGPU: "IntegratedGpu",
	VirtualGPU:    "VirtualGpu",
	CPU:           "Cpu",
	OtherType:     "Other",
}

func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return deviceTypeNames[OtherType]
}

// MarshalText implements encoding.TextMarshaler.
func (t DeviceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Score is the selection score of the type, lower is better.
func (t DeviceType) Score() int {
	switch t {
	case DiscreteGPU:
		return 0
	case IntegratedGPU:
		return 1
	case VirtualGPU:
		return 2
	case CPU:
		return 3
	default:
		return 4
	}
}

func deviceTypeFromVulkan(t vk.PhysicalDeviceType) DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return DiscreteGPU
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return IntegratedGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		return VirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		return CPU
	default:
		return OtherType
	}
}

// QueueFamilyInfo describes one queue family of a physical device.
type QueueFamilyInfo struct {
	Index         uint32
	QueueCount    uint32
	Graphics      bool
	Compute       bool
	SparseBinding bool
	Transfer      bool
}

// PhysicalDeviceInfo describes available physical properties of a rendering device.
type PhysicalDeviceInfo struct {
	Handle vk.PhysicalDevice `json:"-"`

	ID            int
	VendorID      int
	DriverVersion int
	APIVersion    uint32
	Name          string
	Type          DeviceType
	Invalid       bool
	Extensions    ExtensionSet
	Layers        []string
	Memory        vk.DeviceSize
	QueueFamilies []QueueFamilyInfo
}

// RequiredExtensions returns the extensions this particular device
// demands to be enabled whenever a logical device is opened on it.
func (p PhysicalDeviceInfo) RequiredExtensions() ExtensionSet {
	required := NewExtensionSet()
	if p.Extensions.Has(PortabilitySubsetExtensionName) {
		required.Add(PortabilitySubsetExtensionName)
	}
	return required
}

// QueueFamilySelection is the queue family picked on the selected device.
type QueueFamilySelection struct {
	Index    uint32
	Graphics bool
	Present  bool
}

// Queue is a command submission queue of a logical device.
type Queue struct {
	Handle   vk.Queue `json:"-"`
	Family   uint32
	Priority float32
}
