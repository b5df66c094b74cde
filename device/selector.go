// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"github.com/sirupsen/logrus"
)

// PresentationSupport reports whether a queue family of a device can
// present to a particular surface.
type PresentationSupport interface {
	SupportsPresentation(dev PhysicalDeviceInfo, family uint32) bool
}

// NewSelector creates a device selector logging through log.
func NewSelector(log *logrus.Entry) *Selector {
	return &Selector{log: log}
}

// Selector picks the physical device and queue family to present with.
type Selector struct {
	log *logrus.Entry
}

type candidate struct {
	device PhysicalDeviceInfo
	family QueueFamilySelection
}

// Select filters candidates down to devices that carry required and have a
// queue family able to both draw and present, then returns the one with the
// best type score. Candidates are visited in order and the first of equally
// scored devices wins.
func (s *Selector) Select(candidates []PhysicalDeviceInfo, present PresentationSupport, required ExtensionSet) (PhysicalDeviceInfo, QueueFamilySelection, error) {
	var (
		best  *candidate
		score int
	)
	for _, dev := range candidates {
		s.traceQueueFamilies(dev)

		if dev.Invalid || !dev.Extensions.IsSupersetOf(required) {
			continue
		}

		family, ok := findQueueFamily(dev, present)
		if !ok {
			continue
		}

		if best == nil || dev.Type.Score() < score {
			best = &candidate{device: dev, family: family}
			score = dev.Type.Score()
		}
	}

	if best == nil {
		return PhysicalDeviceInfo{}, QueueFamilySelection{}, ErrNoSuitableDevice
	}

	s.log.Debugf("Chose device: %s, (type %s)", best.device.Name, best.device.Type)
	return best.device, best.family, nil
}

func (s *Selector) traceQueueFamilies(dev PhysicalDeviceInfo) {
	for _, family := range dev.QueueFamilies {
		s.log.Tracef("Found a queue family with %d queues and capabilities (C/G/sparse/explicit transfer): %t/%t/%t/%t",
			family.QueueCount, family.Compute, family.Graphics, family.SparseBinding, family.Transfer)
	}
}

func findQueueFamily(dev PhysicalDeviceInfo, present PresentationSupport) (QueueFamilySelection, bool) {
	for _, family := range dev.QueueFamilies {
		if !family.Graphics {
			continue
		}
		if present.SupportsPresentation(dev, family.Index) {
			return QueueFamilySelection{
				Index:    family.Index,
				Graphics: true,
				Present:  true,
			}, true
		}
	}
	return QueueFamilySelection{}, false
}
