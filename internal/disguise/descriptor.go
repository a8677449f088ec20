// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package disguise

import "github.com/samber/oops"

// Applied records one option applied to a descriptor.
type Applied struct {
	Owner Owner
	ID    string
	Type  string
	// Inherited is set for options that came with the template or clone the
	// descriptor was built from and were not applied again since.
	Inherited bool
}

// Descriptor is the disguise under construction. It exclusively owns its
// watcher; nothing else holds a reference to either while a parse runs.
type Descriptor struct {
	category Category
	name     string
	props    *Properties
	watcher  *Watcher
	applied  []Applied
	ref      string
}

// New creates an empty descriptor for a category whose kind is supported.
func New(cat Category) (*Descriptor, error) {
	if !cat.Valid() || !cat.Kind().Supported() {
		return nil, oops.In("disguise").
			Code("UNSUPPORTED_KIND").
			With("category", cat.Name()).
			Errorf("kind cannot be built")
	}
	return &Descriptor{
		category: cat,
		props:    newProperties(),
		watcher:  &Watcher{typ: cat.Kind().Watcher, props: newProperties()},
	}, nil
}

// NewPlayer creates a player descriptor showing the given name.
func NewPlayer(cat Category, name string) (*Descriptor, error) {
	d, err := New(cat)
	if err != nil {
		return nil, err
	}
	d.name = name
	return d, nil
}

// Category returns the category the descriptor was built for.
func (d *Descriptor) Category() Category { return d.category }

// Kind returns the builtin kind.
func (d *Descriptor) Kind() *KindInfo { return d.category.Kind() }

// Relabel moves the descriptor to another category of the same kind.
// Templates use it to carry their own name.
func (d *Descriptor) Relabel(cat Category) error {
	if cat.Kind() != d.category.Kind() {
		return oops.In("disguise").
			Code("KIND_MISMATCH").
			With("from", d.category.Name()).
			With("to", cat.Name()).
			Errorf("cannot relabel across kinds")
	}
	d.category = cat
	return nil
}

// Name returns the displayed player name. A setname option overrides the
// name given in the construction clause.
func (d *Descriptor) Name() string {
	if v, ok := d.props.Get("setname"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return d.name
}

// ConstructionName returns the name given in the construction clause.
func (d *Descriptor) ConstructionName() string { return d.name }

// Properties returns the values owned directly by the descriptor.
func (d *Descriptor) Properties() *Properties { return d.props }

// Watcher returns the behavior sub-object.
func (d *Descriptor) Watcher() *Watcher { return d.watcher }

// Owned returns the property set of the given owner.
func (d *Descriptor) Owned(owner Owner) *Properties {
	if owner == OwnerWatcher {
		return d.watcher.props
	}
	return d.props
}

// Apply stores a value and records the option as applied. Applying the same
// option again replaces the value but keeps its original position.
func (d *Descriptor) Apply(owner Owner, id, typ string, value any) {
	d.Owned(owner).Set(id, value)
	for i, a := range d.applied {
		if a.Owner == owner && a.ID == id {
			d.applied[i].Type = typ
			d.applied[i].Inherited = false
			return
		}
	}
	d.applied = append(d.applied, Applied{Owner: owner, ID: id, Type: typ})
}

// SetDefault stores a value without recording it as an applied option.
func (d *Descriptor) SetDefault(owner Owner, id string, value any) {
	d.Owned(owner).Set(id, value)
}

// Applied returns the applied options in the order they were first applied.
func (d *Descriptor) Applied() []Applied {
	return append([]Applied(nil), d.applied...)
}

// Inherit marks every applied option as inherited and records the clone
// reference the descriptor was loaded from; ref is empty for templates.
func (d *Descriptor) Inherit(ref string) {
	for i := range d.applied {
		d.applied[i].Inherited = true
	}
	d.ref = ref
}

// Reference returns the clone reference the descriptor was loaded from.
func (d *Descriptor) Reference() string { return d.ref }

// IsAdult reports whether the disguise shows the adult life stage.
func (d *Descriptor) IsAdult() bool {
	return !d.watcher.props.Bool("setbaby")
}

// Material returns the block or item material of material-bearing kinds.
func (d *Descriptor) Material() (string, bool) {
	k := d.Kind()
	if k.Clause != ClauseMaterial {
		return "", false
	}
	v, ok := d.watcher.props.Get(k.ClauseOption)
	if !ok {
		return "", false
	}
	item, ok := v.(Item)
	return item.Material, ok
}

// MiscID returns the numeric id of id-bearing kinds, or -1 when none was given.
func (d *Descriptor) MiscID() int {
	k := d.Kind()
	if k.Clause != ClauseNumericID {
		return -1
	}
	if v, ok := d.watcher.props.Get(k.ClauseOption); ok {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return -1
}

// Clone returns a deep copy that shares no mutable state with d.
func (d *Descriptor) Clone() *Descriptor {
	return &Descriptor{
		category: d.category,
		name:     d.name,
		props:    d.props.clone(),
		watcher:  &Watcher{typ: d.watcher.typ, props: d.watcher.props.clone()},
		applied:  append([]Applied(nil), d.applied...),
		ref:      d.ref,
	}
}
