// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"slices"

	"tailscale.com/util/mak"
)

// Context holds the values parsed for a run, keyed by argument id. The zero
// Context is empty and ready to use.
type Context struct {
	values map[int]Value
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// Get returns the value stored for id, or none.
func (c *Context) Get(id int) Value {
	return c.values[id]
}

// Lookup returns the value stored for id and whether there is one.
func (c *Context) Lookup(id int) (Value, bool) {
	v, ok := c.values[id]
	return v, ok
}

// Has reports whether a value is stored for id.
func (c *Context) Has(id int) bool {
	_, ok := c.values[id]
	return ok
}

// Set stores v for id, replacing any previous value.
func (c *Context) Set(id int, v Value) {
	mak.Set(&c.values, id, v)
}

// Delete removes the value stored for id.
func (c *Context) Delete(id int) {
	delete(c.values, id)
}

// IDs returns the ids with a stored value in ascending order.
func (c *Context) IDs() []int {
	ids := make([]int, 0, len(c.values))
	for id := range c.values {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// All calls fn for every entry in ascending id order until fn returns false.
func (c *Context) All(fn func(id int, v Value) bool) {
	for _, id := range c.IDs() {
		if !fn(id, c.values[id]) {
			return
		}
	}
}

// Len returns the number of stored values.
func (c *Context) Len() int { return len(c.values) }

// Empty reports whether no value is stored.
func (c *Context) Empty() bool { return len(c.values) == 0 }

// Lookup converts the value stored for id into T. A missing id yields the
// zero T and false.
func Lookup[T Scalar](c *Context, id int) (T, bool, error) {
	v, ok := c.Lookup(id)
	if !ok {
		var zero T
		return zero, false, nil
	}
	out, err := As[T](v)
	return out, true, err
}
