// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/disguise"
)

// TemplateNamespace is the permission namespace templates are compiled in.
const TemplateNamespace = "templates"

// Templates holds the admin-defined custom disguises. The whole set is
// replaced at once; readers see either the old or the new set.
type Templates struct {
	set atomic.Pointer[map[string]*disguise.Descriptor] // normalized name → template
}

// NewTemplates creates an empty template set.
func NewTemplates() *Templates {
	t := &Templates{}
	empty := map[string]*disguise.Descriptor{}
	t.set.Store(&empty)
	return t
}

// Swap installs a compiled template set.
func (t *Templates) Swap(set map[string]*disguise.Descriptor) {
	cp := make(map[string]*disguise.Descriptor, len(set))
	for _, d := range set {
		cp[normalizeName(d.Category().Name())] = d
	}
	t.set.Store(&cp)
}

// Len returns the number of templates.
func (t *Templates) Len() int {
	return len(*t.set.Load())
}

// Categories returns the template categories sorted by name.
func (t *Templates) Categories() []disguise.Category {
	set := *t.set.Load()
	out := make([]disguise.Category, 0, len(set))
	for _, d := range set {
		out = append(out, d.Category())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// lookup returns a private copy of a template.
func (t *Templates) lookup(key string) (*disguise.Descriptor, bool) {
	d, ok := (*t.set.Load())[key]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// CompileTemplates parses template definitions (name → command text) with
// every permission. Template names may not shadow builtin kinds, and a
// template cannot be built from another template.
func (p *Parser) CompileTemplates(ctx context.Context, defs map[string]string) (map[string]*disguise.Descriptor, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]*disguise.Descriptor, len(defs))
	seen := make(map[string]string, len(defs))
	for _, name := range names {
		key := normalizeName(name)
		if key == "" || strings.ContainsAny(name, " \t") {
			return nil, oops.In("parser").
				Code("INVALID_TEMPLATE_NAME").
				With("template", name).
				Errorf("template name must be a single non-empty word")
		}
		if _, builtin := p.kinds[key]; builtin || key == playerShorthand {
			return nil, oops.In("parser").
				Code("TEMPLATE_SHADOWS_KIND").
				With("template", name).
				Errorf("template %s has the name of a builtin disguise", name)
		}
		if other, dup := seen[key]; dup {
			return nil, oops.In("parser").
				Code("DUPLICATE_TEMPLATE").
				With("template", name).
				With("other", other).
				Errorf("templates %s and %s have the same name", other, name)
		}
		seen[key] = name

		s := p.NewSession(access.SubjectSystem, TemplateNamespace, strings.Fields(defs[name]), access.SystemView(TemplateNamespace))
		s.builtinsOnly = true
		d, err := s.Parse(ctx)
		if err != nil {
			return nil, oops.In("parser").With("template", name).Wrapf(err, "compile template %s", name)
		}
		if err := d.Relabel(disguise.CustomCategory(d.Kind(), name)); err != nil {
			return nil, err
		}
		d.Inherit("")
		out[name] = d
	}
	return out, nil
}
