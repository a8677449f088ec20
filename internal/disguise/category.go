// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package disguise

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies what a disguise impersonates: a builtin kind, or a
// custom template built on one.
type Category struct {
	kind   *KindInfo
	custom string
}

// NewCategory returns the category of a builtin kind.
func NewCategory(kind *KindInfo) Category {
	return Category{kind: kind}
}

// CustomCategory returns the category of an admin-defined template.
func CustomCategory(kind *KindInfo, name string) Category {
	return Category{kind: kind, custom: name}
}

// Kind returns the builtin kind behind the category.
func (c Category) Kind() *KindInfo {
	return c.kind
}

// Name returns the canonical name: the template name for custom categories,
// the kind name otherwise.
func (c Category) Name() string {
	if c.custom != "" {
		return c.custom
	}
	return c.kind.Name
}

// Readable returns the name as shown in listings, e.g. "Falling Block".
func (c Category) Readable() string {
	if c.custom != "" {
		return c.custom
	}
	return cases.Title(language.English).String(strings.ReplaceAll(c.kind.Name, "_", " "))
}

// IsCustom reports whether the category is an admin-defined template.
func (c Category) IsCustom() bool { return c.custom != "" }

// IsPlayer reports whether the category impersonates a player.
func (c Category) IsPlayer() bool { return c.kind.Class == ClassPlayer }

// IsMob reports whether the category impersonates a mob.
func (c Category) IsMob() bool { return c.kind.Class == ClassMob }

// IsMisc reports whether the category impersonates a miscellaneous entity.
func (c Category) IsMisc() bool { return c.kind.Class == ClassMisc }

// IsUnknown reports whether the kind is the unknown placeholder.
func (c Category) IsUnknown() bool { return c.kind.Class == ClassUnknown }

// Valid reports whether the category refers to a kind.
func (c Category) Valid() bool { return c.kind != nil }

// PermissionKey returns the category name as used in literal permission
// nodes: lowercase with spaces and underscores removed.
func (c Category) PermissionKey() string {
	r := strings.NewReplacer(" ", "", "_", "")
	return strings.ToLower(r.Replace(c.Name()))
}
