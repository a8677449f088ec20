// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package disguise holds the disguise catalog, categories and the descriptors
// the parser builds.
package disguise

// Class groups kinds by the construction clause they take.
type Class string

// Kind classes.
const (
	ClassPlayer  Class = "player"
	ClassMob     Class = "mob"
	ClassMisc    Class = "misc"
	ClassUnknown Class = "unknown"
)

// Clause identifies the construction clause of a misc kind.
type Clause string

// Construction clauses.
const (
	ClauseNone      Clause = ""
	ClauseMaterial  Clause = "material"
	ClauseNumericID Clause = "numeric_id"
)

// Owner says which part of a descriptor a property lives on.
type Owner int

// Property owners.
const (
	OwnerDescriptor Owner = iota
	OwnerWatcher
)

func (o Owner) String() string {
	if o == OwnerWatcher {
		return "watcher"
	}
	return "descriptor"
}

// KindInfo describes one builtin disguise kind.
type KindInfo struct {
	Name   string `yaml:"name"`
	Class  Class  `yaml:"class"`
	Entity *bool  `yaml:"entity,omitempty"`
	// Watcher names the behavior type; empty means the kind has no implementation.
	Watcher string `yaml:"watcher,omitempty"`
	// Descriptor names the descriptor type; defaults by class.
	Descriptor   string `yaml:"descriptor,omitempty"`
	Clause       Clause `yaml:"clause,omitempty"`
	ClauseOption string `yaml:"clause_option,omitempty"`
	// Literals enables the literal-value permission policy for this kind.
	Literals bool `yaml:"literals,omitempty"`
}

// HasEntity reports whether the kind maps onto a concrete entity.
func (k *KindInfo) HasEntity() bool {
	return k.Entity == nil || *k.Entity
}

// Supported reports whether the kind can be built at all.
func (k *KindInfo) Supported() bool {
	return k.HasEntity() && k.Watcher != ""
}

// PropertyDef declares one settable property of a type.
type PropertyDef struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
}

// TypeDef declares a descriptor or watcher type and the properties it adds to its parent.
type TypeDef struct {
	Name       string        `yaml:"name"`
	Parent     string        `yaml:"parent,omitempty"`
	Owner      string        `yaml:"owner"`
	Properties []PropertyDef `yaml:"properties,omitempty"`
}

// OwnerKind converts the declared owner into an Owner.
func (t *TypeDef) OwnerKind() Owner {
	if t.Owner == "watcher" {
		return OwnerWatcher
	}
	return OwnerDescriptor
}

// EnumDef declares an enumerated value type.
type EnumDef struct {
	Description string   `yaml:"description"`
	Values      []string `yaml:"values"`
}

func defaultDescriptorType(c Class) string {
	switch c {
	case ClassPlayer:
		return "player_disguise"
	case ClassMob:
		return "mob_disguise"
	default:
		return "misc_disguise"
	}
}
