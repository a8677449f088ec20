// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

// UsedSet is the ordered set of option identifiers applied during one parse.
// It only grows and never holds duplicates.
type UsedSet struct {
	order []string
	seen  map[string]bool
}

func newUsedSet() *UsedSet {
	return &UsedSet{seen: make(map[string]bool)}
}

// Add appends id unless present and reports whether it was new.
func (u *UsedSet) Add(id string) bool {
	if u.seen[id] {
		return false
	}
	u.seen[id] = true
	u.order = append(u.order, id)
	return true
}

// List returns the identifiers in insertion order.
func (u *UsedSet) List() []string {
	return append([]string(nil), u.order...)
}
