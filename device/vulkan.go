// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/utility/vkutil"
	vk "github.com/vulkan-go/vulkan"
)

// Enumerate lists the physical devices exposed by instance, in the order
// the driver reports them. A device whose properties could not be fully
// read is returned with Invalid set.
func Enumerate(instance vk.Instance) ([]PhysicalDeviceInfo, error) {
	var deviceCount uint32
	if err := vkutil.Check(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil), "EnumeratePhysicalDevices"); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vkutil.Check(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices), "EnumeratePhysicalDevices"); err != nil {
		return nil, errors.Wrap(err, "vulkan physical device enumeration failed")
	}

	pdi := make([]PhysicalDeviceInfo, len(availableDevices))
	for i, pd := range availableDevices {
		pdi[i] = describe(pd)
	}
	return pdi, nil
}

func describe(pd vk.PhysicalDevice) PhysicalDeviceInfo {
	info := PhysicalDeviceInfo{
		Handle:     pd,
		Extensions: NewExtensionSet(),
	}

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, nil)); err != nil {
		info.Invalid = true
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, deviceExt)); err != nil {
		info.Invalid = true
	}
	for _, ext := range deviceExt {
		ext.Deref()
		info.Extensions.Add(vk.ToString(ext.ExtensionName[:]))
	}

	// Get layers info
	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, nil)); err != nil {
		info.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, deviceLayers)); err != nil {
		info.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		info.Layers = append(info.Layers, vk.ToString(layer.LayerName[:]))
	}

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(pd, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		info.Memory += memoryProperties.MemoryHeaps[iMem].Size
	}

	// Get general device info
	var physicalDeviceProperties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &physicalDeviceProperties)
	physicalDeviceProperties.Deref()
	info.ID = int(physicalDeviceProperties.DeviceID)
	info.VendorID = int(physicalDeviceProperties.VendorID)
	info.Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
	info.DriverVersion = int(physicalDeviceProperties.DriverVersion)
	info.APIVersion = physicalDeviceProperties.ApiVersion
	info.Type = deviceTypeFromVulkan(physicalDeviceProperties.DeviceType)

	info.QueueFamilies = queueFamilies(pd)
	return info
}

func queueFamilies(pd vk.PhysicalDevice) []QueueFamilyInfo {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &queueFamilyCount, nil)
	properties := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &queueFamilyCount, properties)

	families := make([]QueueFamilyInfo, len(properties))
	for i := range properties {
		properties[i].Deref()
		flags := properties[i].QueueFlags
		families[i] = QueueFamilyInfo{
			Index:         uint32(i),
			QueueCount:    properties[i].QueueCount,
			Graphics:      flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0,
			Compute:       flags&vk.QueueFlags(vk.QueueComputeBit) != 0,
			SparseBinding: flags&vk.QueueFlags(vk.QueueSparseBindingBit) != 0,
			Transfer:      flags&vk.QueueFlags(vk.QueueTransferBit) != 0,
		}
	}
	return families
}
