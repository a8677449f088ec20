// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package disguise

import "sort"

// Properties is a set of property values keyed by canonical option identifier.
type Properties struct {
	values map[string]any
}

func newProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// Set stores a value.
func (p *Properties) Set(id string, value any) {
	p.values[id] = value
}

// Get returns a value and whether it is present. A present value may be nil.
func (p *Properties) Get(id string) (any, bool) {
	v, ok := p.values[id]
	return v, ok
}

// Bool returns a boolean property, false when absent or of another type.
func (p *Properties) Bool(id string) bool {
	b, _ := p.values[id].(bool)
	return b
}

// Keys returns the stored identifiers in sorted order.
func (p *Properties) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored values.
func (p *Properties) Len() int {
	return len(p.values)
}

func (p *Properties) clone() *Properties {
	cp := newProperties()
	for k, v := range p.values {
		cp.values[k] = cloneValue(v)
	}
	return cp
}

// Watcher is the behavior sub-object of a descriptor.
type Watcher struct {
	typ   string
	props *Properties
}

// Type returns the watcher type name.
func (w *Watcher) Type() string {
	return w.typ
}

// Properties returns the watcher-owned values.
func (w *Watcher) Properties() *Properties {
	return w.props
}
