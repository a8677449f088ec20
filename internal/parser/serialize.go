// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

import (
	"strconv"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/param"
	"github.com/holomush/disguise/internal/translate"
)

// Tokens renders a descriptor back into command tokens. Parsing the result
// with the same permissions yields the same descriptor state. Descriptors
// built from a template or clone reference start with that name and carry
// only the options applied on top of it, so the reference must still resolve
// to the same disguise.
func (p *Parser) Tokens(d *disguise.Descriptor) []string {
	tbl := p.translations.Snapshot()
	cat := d.Category()
	k := d.Kind()
	applied := d.Applied()

	if ref := d.Reference(); ref != "" || cat.IsCustom() {
		if ref == "" {
			ref = cat.Name()
		}
		return p.appendOptions(tbl, d, []string{ref}, added(applied))
	}

	out := []string{tbl.Display(translate.DomainDisguises, cat.Name())}
	switch {
	case k.Class == disguise.ClassPlayer:
		out = append(out, disguise.EscapeName(disguise.UntranslateColorCodes('&', d.ConstructionName())))
	case k.Clause != disguise.ClauseNone && len(applied) > 0 && applied[0].ID == k.ClauseOption:
		// the construction clause only carries the value when it was applied first
		if tok, ok := clauseToken(d, k); ok {
			out = append(out, tok)
			applied = applied[1:]
		}
	}
	return p.appendOptions(tbl, d, out, applied)
}

// added drops the options inherited from a template or clone.
func added(applied []disguise.Applied) []disguise.Applied {
	out := applied[:0:0]
	for _, a := range applied {
		if !a.Inherited {
			out = append(out, a)
		}
	}
	return out
}

func (p *Parser) appendOptions(tbl *translate.Table, d *disguise.Descriptor, out []string, applied []disguise.Applied) []string {
	for _, a := range applied {
		info, ok := p.params.Lookup(param.Type(a.Type))
		if !ok {
			continue
		}
		v, _ := d.Owned(a.Owner).Get(a.ID)
		out = append(out, tbl.Display(translate.DomainOptions, a.ID))
		out = append(out, info.Format(v)...)
	}
	return out
}

func clauseToken(d *disguise.Descriptor, k *disguise.KindInfo) (string, bool) {
	v, _ := d.Watcher().Properties().Get(k.ClauseOption)
	switch k.Clause {
	case disguise.ClauseMaterial:
		item, ok := v.(disguise.Item)
		if !ok || item.Amount != 1 {
			return "", false
		}
		return item.Material, true
	case disguise.ClauseNumericID:
		id, ok := v.(int)
		if !ok {
			return "", false
		}
		return strconv.Itoa(id), true
	}
	return "", false
}
