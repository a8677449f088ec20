// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package property builds the per-kind tables of settable options from the
// type declarations in the catalog.
package property

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/param"
)

// ErrOptionNotFound indicates no option matched a prefix.
var ErrOptionNotFound = oops.Code("OPTION_NOT_FOUND").Errorf("option not found")

// AmbiguousOptionError indicates multiple options match a prefix.
// Matches holds the names the caller resolved against, not identifiers.
type AmbiguousOptionError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousOptionError) Error() string {
	sorted := make([]string, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Strings(sorted)
	return fmt.Sprintf("ambiguous option '%s' - matches: %s", e.Prefix, strings.Join(sorted, ", "))
}

// Setter is one way of applying an option: a canonical identifier, the value
// type it accepts and the part of the descriptor that owns it.
type Setter struct {
	ID       string
	Type     param.Type
	Owner    disguise.Owner
	Declarer string
}

// Apply stores the value on the owning part of the descriptor.
func (s Setter) Apply(d *disguise.Descriptor, value any) {
	d.Apply(s.Owner, s.ID, string(s.Type), value)
}

// Table holds the setters of one kind.
// Tables are immutable once built and safe for concurrent use.
type Table struct {
	kind    string
	setters map[string][]Setter
	ids     []string
}

// Kind returns the kind the table was built for.
func (t *Table) Kind() string { return t.kind }

// Candidates returns the setters for an identifier in probing order.
func (t *Table) Candidates(id string) []Setter {
	return append([]Setter(nil), t.setters[id]...)
}

// IDs returns every option identifier in sorted order.
func (t *Table) IDs() []string {
	return append([]string(nil), t.ids...)
}

// Resolve finds an option by exact name or unique name prefix, ignoring
// case. name maps an identifier to the name users type; nil means users type
// identifiers. It returns the identifier of the match.
func (t *Table) Resolve(prefix string, name func(id string) string) (string, error) {
	if name == nil {
		name = func(id string) string { return id }
	}
	folded := strings.ToLower(prefix)

	var ids, names []string
	for _, id := range t.ids {
		n := name(id)
		lower := strings.ToLower(n)
		if lower == folded {
			return id, nil
		}
		if folded != "" && strings.HasPrefix(lower, folded) {
			ids = append(ids, id)
			names = append(names, n)
		}
	}

	switch len(ids) {
	case 0:
		return "", oops.In("property").With("kind", t.kind).With("prefix", prefix).Wrap(ErrOptionNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", &AmbiguousOptionError{Prefix: prefix, Matches: names}
	}
}

// Registry holds one setter table per supported kind.
type Registry struct {
	tables map[string]*Table
}

// NewRegistry builds the setter tables of every supported kind in the catalog.
// Every declared property type must be known to params.
//
// Candidates are ordered descriptor-owned types first, then watcher types.
// Within each owner the most derived type comes first, walking up to the
// root; within a type, declaration order. An (id, type) pair already
// declared by a more derived type is skipped.
func NewRegistry(catalog *disguise.Catalog, params *param.Registry) (*Registry, error) {
	r := &Registry{tables: make(map[string]*Table)}
	for _, k := range catalog.Kinds {
		if !k.Supported() {
			continue
		}
		t, err := buildTable(catalog, params, k)
		if err != nil {
			return nil, err
		}
		r.tables[k.Name] = t
	}
	return r, nil
}

func buildTable(catalog *disguise.Catalog, params *param.Registry, k *disguise.KindInfo) (*Table, error) {
	t := &Table{kind: k.Name, setters: make(map[string][]Setter)}
	type key struct{ id, typ string }
	seen := make(map[key]bool)

	for _, root := range []string{k.Descriptor, k.Watcher} {
		for _, def := range catalog.Lineage(root) {
			for _, p := range def.Properties {
				if _, ok := params.Lookup(param.Type(p.Type)); !ok {
					return nil, oops.In("property").
						Code("UNKNOWN_PARAM_TYPE").
						With("kind", k.Name).
						With("type", def.Name).
						With("option", p.ID).
						Errorf("option %s declares unknown value type %s", p.ID, p.Type)
				}
				kk := key{p.ID, p.Type}
				if seen[kk] {
					continue
				}
				seen[kk] = true
				if _, ok := t.setters[p.ID]; !ok {
					t.ids = append(t.ids, p.ID)
				}
				t.setters[p.ID] = append(t.setters[p.ID], Setter{
					ID:       p.ID,
					Type:     param.Type(p.Type),
					Owner:    def.OwnerKind(),
					Declarer: def.Name,
				})
			}
		}
	}
	sort.Strings(t.ids)
	return t, nil
}

// MustNewRegistry is NewRegistry that panics on error.
// This is intended for the embedded catalog only.
func MustNewRegistry(catalog *disguise.Catalog, params *param.Registry) *Registry {
	r, err := NewRegistry(catalog, params)
	if err != nil {
		panic(err)
	}
	return r
}

// Table returns the setter table of a kind.
func (r *Registry) Table(kind string) (*Table, bool) {
	t, ok := r.tables[kind]
	return t, ok
}

// Options lists the option identifiers of a kind for help and completion.
func (r *Registry) Options(kind string) []string {
	t, ok := r.tables[kind]
	if !ok {
		return nil
	}
	return t.IDs()
}
