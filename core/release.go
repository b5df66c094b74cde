// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// releaser releases acquired resources in reverse order of acquisition.
type releaser struct {
	fns []func()
}

func (r *releaser) push(fn func()) {
	r.fns = append(r.fns, fn)
}

func (r *releaser) release() {
	for i := len(r.fns) - 1; i >= 0; i-- {
		r.fns[i]()
	}
	r.fns = nil
}
