// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"encoding/json"
	"sort"

	"github.com/devblok/kiln/utility/vkutil"
)

// ExtensionSet is a set of Vulkan extension names.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from names, NUL terminators are stripped.
func NewExtensionSet(names ...string) ExtensionSet {
	s := make(ExtensionSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add puts name into the set.
func (s ExtensionSet) Add(name string) {
	s[vkutil.TrimString(name)] = struct{}{}
}

// Has reports whether name is in the set.
func (s ExtensionSet) Has(name string) bool {
	_, ok := s[vkutil.TrimString(name)]
	return ok
}

// IsSupersetOf reports whether every extension of other is in s.
func (s ExtensionSet) IsSupersetOf(other ExtensionSet) bool {
	for name := range other {
		if _, ok := s[name]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the sorted names of other that s lacks.
func (s ExtensionSet) Missing(other ExtensionSet) []string {
	var missing []string
	for name := range other {
		if _, ok := s[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Union returns a new set holding the extensions of both sets.
func (s ExtensionSet) Union(other ExtensionSet) ExtensionSet {
	u := make(ExtensionSet, len(s)+len(other))
	for name := range s {
		u[name] = struct{}{}
	}
	for name := range other {
		u[name] = struct{}{}
	}
	return u
}

// Names returns the extension names in sorted order.
func (s ExtensionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON encodes the set as a sorted list of names.
func (s ExtensionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}
