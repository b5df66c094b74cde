// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vkutil holds the small pieces of plumbing every vulkan-go call site needs.
package vkutil

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Check turns a non-successful vk.Result into an error naming the call
// that produced it, e.g. "vk.CreateDevice(): vulkan error: ... (-7)".
// A nil error is returned for vk.Success.
func Check(result vk.Result, call string) error {
	err := vk.Error(result)
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "vk.%s() (%d)", call, result)
}

// SafeString returns s terminated with a single NUL byte,
// which is how vulkan-go expects names passed down to the C API.
func SafeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return fmt.Sprintf("%s\x00", s)
}

// SafeStrings applies SafeString to every element.
func SafeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, SafeString(s))
	}
	return safe
}

// TrimString strips the NUL terminator added by SafeString.
func TrimString(s string) string {
	return strings.TrimRight(s, "\x00")
}

// Version is a decoded Vulkan packed version number.
type Version struct {
	Major, Minor, Patch uint32
}

// DecodeVersion unpacks a version produced by vk.MakeVersion.
func DecodeVersion(v uint32) Version {
	return Version{
		Major: v >> 22,
		Minor: (v >> 12) & 0x3ff,
		Patch: v & 0xfff,
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
