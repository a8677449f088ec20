// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package parser turns disguise command arguments into descriptors.
//
// A command is a category, a construction clause that depends on the
// category's class, and any number of "option [value...]" clauses. Every
// option is checked against the sender's permissions, together with every
// option used before it, before the descriptor changes.
package parser

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/clone"
	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/param"
	"github.com/holomush/disguise/internal/property"
	"github.com/holomush/disguise/internal/translate"
)

// Deps are the collaborators of a Parser. Nil fields get defaults built
// from the embedded catalog and base locale; a nil clone store disables
// clone references.
type Deps struct {
	Catalog      *disguise.Catalog
	Params       *param.Registry
	Properties   *property.Registry
	Translations *translate.Source
	Clones       *clone.Store
	Templates    *Templates
	Logger       *slog.Logger
}

// Parser parses disguise commands. It holds no per-call state and is safe
// for concurrent use.
type Parser struct {
	catalog      *disguise.Catalog
	params       *param.Registry
	props        *property.Registry
	translations *translate.Source
	clones       *clone.Store
	templates    *Templates
	logger       *slog.Logger

	kinds  map[string]*disguise.KindInfo // normalized name → kind
	player *disguise.KindInfo
}

// New creates a parser.
func New(deps Deps) (*Parser, error) {
	p := &Parser{
		catalog:      deps.Catalog,
		params:       deps.Params,
		props:        deps.Properties,
		translations: deps.Translations,
		clones:       deps.Clones,
		templates:    deps.Templates,
		logger:       deps.Logger,
	}
	if p.catalog == nil {
		p.catalog = disguise.DefaultCatalog()
	}
	if p.params == nil {
		p.params = param.Default(p.catalog)
	}
	if p.props == nil {
		props, err := property.NewRegistry(p.catalog, p.params)
		if err != nil {
			return nil, oops.In("parser").Wrapf(err, "build option tables")
		}
		p.props = props
	}
	if p.translations == nil {
		tbl, err := translate.Default(translate.BaseLocale)
		if err != nil {
			return nil, oops.In("parser").Wrapf(err, "load translations")
		}
		p.translations = translate.NewSource(tbl)
	}
	if p.templates == nil {
		p.templates = NewTemplates()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	p.kinds = make(map[string]*disguise.KindInfo, len(p.catalog.Kinds))
	for _, k := range p.catalog.Kinds {
		p.kinds[normalizeName(k.Name)] = k
		if p.player == nil && k.Class == disguise.ClassPlayer {
			p.player = k
		}
	}
	return p, nil
}

// ParseDisguise parses a complete disguise command for a sender.
// The view is the sender's permissions for the namespace, taken once by the
// caller; a nil view grants nothing.
func (p *Parser) ParseDisguise(ctx context.Context, sender, namespace string, tokens []string, view *access.View) (*disguise.Descriptor, error) {
	return p.NewSession(sender, namespace, tokens, view).Parse(ctx)
}

// Catalog returns the catalog the parser was built with.
func (p *Parser) Catalog() *disguise.Catalog { return p.catalog }

// Templates returns the custom template set.
func (p *Parser) Templates() *Templates { return p.templates }

// Clones returns the clone store, or nil when clone references are disabled.
func (p *Parser) Clones() *clone.Store { return p.clones }

// Options lists the display names of the options of a category.
func (p *Parser) Options(cat disguise.Category) []string {
	tbl := p.translations.Snapshot()
	ids := p.props.Options(cat.Kind().Name)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = tbl.Display(translate.DomainOptions, id)
	}
	return out
}

// ResolveOption completes an option name prefix typed in the active locale
// and returns the display name it completes to.
func (p *Parser) ResolveOption(cat disguise.Category, prefix string) (string, error) {
	props, ok := p.props.Table(cat.Kind().Name)
	if !ok {
		return "", oops.In("parser").With("category", cat.Name()).Wrap(property.ErrOptionNotFound)
	}
	tbl := p.translations.Snapshot()
	display := func(id string) string { return tbl.Display(translate.DomainOptions, id) }
	id, err := props.Resolve(prefix, display)
	if err != nil {
		return "", err
	}
	return display(id), nil
}
