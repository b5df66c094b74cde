// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import "github.com/cockroachdb/errors"

var (
	// ErrNoSuitableDevice is returned when no physical device carries the
	// required extensions and a queue family able to draw and present.
	ErrNoSuitableDevice = errors.New("no vulkan capable devices found")

	// ErrDeviceCreation is returned when a logical device could not be opened.
	ErrDeviceCreation = errors.New("logical device creation failed")

	// ErrFeatureRestrictionNotMet is the ErrDeviceCreation raised when the
	// requested extensions or features are not supported by the device.
	ErrFeatureRestrictionNotMet = errors.Wrap(ErrDeviceCreation, "feature restriction not met")
)
