// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"github.com/cockroachdb/errors"
	"github.com/devblok/kiln/utility/vkutil"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// QueuePriority is the priority of the single queue requested on a logical device.
const QueuePriority float32 = 0.5

// Logical is an opened logical device with its queue.
type Logical struct {
	Handle     vk.Device
	Physical   PhysicalDeviceInfo
	Queue      Queue
	Extensions ExtensionSet
}

// Destroy destroys the logical device. Everything created from it
// must be destroyed before.
func (l *Logical) Destroy() {
	if l == nil || l.Handle == nil {
		return
	}
	vk.DestroyDevice(l.Handle, nil)
	l.Handle = nil
}

// EnabledExtensions is the extension set a logical device on dev is opened
// with: required plus whatever the device itself demands.
func EnabledExtensions(dev PhysicalDeviceInfo, required ExtensionSet) ExtensionSet {
	return required.Union(dev.RequiredExtensions())
}

// Open opens a logical device on dev with a single queue from family.
// No optional features are enabled.
func Open(dev PhysicalDeviceInfo, family QueueFamilySelection, required ExtensionSet, log *logrus.Entry) (*Logical, error) {
	extensions := EnabledExtensions(dev, required)
	if missing := dev.Extensions.Missing(extensions); len(missing) > 0 {
		return nil, errors.Wrapf(ErrFeatureRestrictionNotMet,
			"device %q does not support extensions %v", dev.Name, missing)
	}

	log.Trace("Creating logical vulkan device...")

	names := vkutil.SafeStrings(extensions.Names())
	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: family.Index,
		QueueCount:       1,
		PQueuePriorities: []float32{QueuePriority},
	}}
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(names)),
		PpEnabledExtensionNames: names,
	}

	var vkDevice vk.Device
	result := vk.CreateDevice(dev.Handle, &dci, nil, &vkDevice)
	switch result {
	case vk.Success:
	case vk.ErrorExtensionNotPresent, vk.ErrorFeatureNotPresent:
		err := errors.Wrapf(vkutil.Check(result, "CreateDevice"), "device %q", dev.Name)
		return nil, errors.Mark(errors.Mark(err, ErrDeviceCreation), ErrFeatureRestrictionNotMet)
	default:
		return nil, errors.Mark(errors.Wrapf(vkutil.Check(result, "CreateDevice"), "device %q", dev.Name), ErrDeviceCreation)
	}

	var deviceQueue vk.Queue
	vk.GetDeviceQueue(vkDevice, family.Index, 0, &deviceQueue)

	log.Debugf("Opened logical device on %s with extensions %v", dev.Name, extensions.Names())

	return &Logical{
		Handle:     vkDevice,
		Physical:   dev,
		Extensions: extensions,
		Queue: Queue{
			Handle:   deviceQueue,
			Family:   family.Index,
			Priority: QueuePriority,
		},
	}, nil
}
