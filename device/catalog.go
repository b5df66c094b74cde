// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	vk "github.com/vulkan-go/vulkan"
)

// PortabilitySubsetExtensionName must be enabled on devices that advertise it.
const PortabilitySubsetExtensionName = "VK_KHR_portability_subset"

// RequiredExtensions is the set of device extensions needed to present
// to a surface. A fresh set is returned on every call.
func RequiredExtensions() ExtensionSet {
	return NewExtensionSet(vk.KhrSwapchainExtensionName)
}
