// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "github.com/cockroachdb/errors"

// ErrInstanceCreation is returned when the Vulkan runtime could not be bootstrapped.
var ErrInstanceCreation = errors.New("vulkan instance creation failed")

const instanceHint = "make sure a Vulkan driver and the Vulkan loader are installed"

// stage marks err as a failure of the construction stage identified by ref.
func stage(err error, ref error, msg string) error {
	if errors.Is(err, ref) {
		return errors.Wrap(err, msg)
	}
	return errors.Mark(errors.Wrap(err, msg), ref)
}
