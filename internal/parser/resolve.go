// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

import (
	"strings"

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/translate"
)

// playerShorthand is accepted in place of the player category.
const playerShorthand = "p"

var separators = strings.NewReplacer(" ", "", "_", "")

// normalizeName lowercases a category name and drops separators.
func normalizeName(s string) string {
	return strings.ToLower(separators.Replace(s))
}

// ResolveCategory matches a name against builtin kinds and then custom
// templates, ignoring case and separators. Translated names are accepted.
func (p *Parser) ResolveCategory(name string) (disguise.Category, bool) {
	cat, _, ok := p.resolve(p.translations.Snapshot(), name, true)
	return cat, ok
}

// resolve returns the category and, for custom templates, the template
// descriptor it was resolved from.
func (p *Parser) resolve(tbl *translate.Table, name string, customs bool) (disguise.Category, *disguise.Descriptor, bool) {
	names := []string{name}
	if canonical, ok := tbl.Lookup(translate.DomainDisguises, name); ok && canonical != name {
		names = []string{canonical, name}
	}

	for _, n := range names {
		key := normalizeName(n)
		if key == playerShorthand && p.player != nil {
			return disguise.NewCategory(p.player), nil, true
		}
		if k, ok := p.kinds[key]; ok {
			return disguise.NewCategory(k), nil, true
		}
	}
	if customs {
		for _, n := range names {
			if d, ok := p.templates.lookup(normalizeName(n)); ok {
				return d.Category(), d, true
			}
		}
	}
	return disguise.Category{}, nil, false
}

// ListCategories returns every category a disguise can be built from:
// supported builtin kinds in catalog order, then custom templates by name.
func (p *Parser) ListCategories() []disguise.Category {
	var out []disguise.Category
	for _, k := range p.catalog.Kinds {
		if k.Class == disguise.ClassUnknown || !k.Supported() {
			continue
		}
		out = append(out, disguise.NewCategory(k))
	}
	return append(out, p.templates.Categories()...)
}

// AllowedCategories filters ListCategories through a permission view.
func (p *Parser) AllowedCategories(view *access.View) []disguise.Category {
	var out []disguise.Category
	if view == nil {
		return out
	}
	for _, cat := range p.ListCategories() {
		if view.AllowsCategory(cat) {
			out = append(out, cat)
		}
	}
	return out
}
