// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package host assembles a parser, its permission service and its
// translations from a configuration, and applies reloaded configurations.
package host

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/clone"
	"github.com/holomush/disguise/internal/config"
	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/parser"
	"github.com/holomush/disguise/internal/translate"
)

// Engine serves disguise commands for one configuration at a time.
//
// Thread-safety: Parse and Render may run concurrently with Reload. A parse
// sees either the old or the new translations, policy and templates.
type Engine struct {
	logger       *slog.Logger
	catalogPath  string
	parser       *parser.Parser
	access       *access.Service
	translations *translate.Source
	templates    *parser.Templates
	clones       *clone.Store

	reloadMu sync.Mutex
}

// staged is everything a configuration produces that can be swapped in.
type staged struct {
	table     *translate.Table
	policy    *access.Policy
	templates map[string]*disguise.Descriptor
}

// New builds an engine. The catalog and the clone capacity are fixed for the
// engine's lifetime.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	catalog := disguise.DefaultCatalog()
	if cfg.Catalog != "" {
		c, err := disguise.LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, oops.In("host").Wrap(err)
		}
		catalog = c
	}

	tbl, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := compilePolicy(cfg.Permissions)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		logger:       logger,
		catalogPath:  cfg.Catalog,
		access:       access.NewService(policy),
		translations: translate.NewSource(tbl),
		templates:    parser.NewTemplates(),
		clones:       clone.NewStore(cfg.Clones.MaxEntries),
	}
	e.parser, err = parser.New(parser.Deps{
		Catalog:      catalog,
		Translations: e.translations,
		Clones:       e.clones,
		Templates:    e.templates,
		Logger:       logger,
	})
	if err != nil {
		return nil, oops.In("host").Wrap(err)
	}

	set, err := e.parser.CompileTemplates(ctx, cfg.CustomDisguises)
	if err != nil {
		return nil, oops.In("host").Wrap(err)
	}
	e.templates.Swap(set)

	logger.Info("disguise engine ready",
		"locale", tbl.Locale().String(),
		"kinds", len(catalog.Kinds),
		"roles", len(policy.Roles()),
		"templates", len(set))
	return e, nil
}

// Reload applies a new configuration. Nothing changes unless every part of
// it is valid.
func (e *Engine) Reload(ctx context.Context, cfg *config.Config) error {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	if cfg.Catalog != e.catalogPath {
		e.logger.Warn("catalog changes take effect on restart", "configured", cfg.Catalog, "active", e.catalogPath)
	}

	next, err := e.stage(ctx, cfg)
	if err != nil {
		return err
	}

	e.translations.Swap(next.table)
	e.access.Swap(next.policy)
	e.templates.Swap(next.templates)
	e.logger.Info("disguise configuration applied",
		"locale", next.table.Locale().String(),
		"roles", len(next.policy.Roles()),
		"templates", len(next.templates))
	return nil
}

func (e *Engine) stage(ctx context.Context, cfg *config.Config) (*staged, error) {
	tbl, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := compilePolicy(cfg.Permissions)
	if err != nil {
		return nil, err
	}

	// templates are written in the new locale, so they compile against it
	scratch, err := parser.New(parser.Deps{
		Catalog:      e.parser.Catalog(),
		Translations: translate.NewSource(tbl),
		Logger:       e.logger,
	})
	if err != nil {
		return nil, oops.In("host").Wrap(err)
	}
	set, err := scratch.CompileTemplates(ctx, cfg.CustomDisguises)
	if err != nil {
		return nil, oops.In("host").Wrap(err)
	}
	return &staged{table: tbl, policy: policy, templates: set}, nil
}

// Parse parses a disguise command for a sender in a namespace.
func (e *Engine) Parse(ctx context.Context, sender, namespace string, tokens []string) (*disguise.Descriptor, error) {
	return e.parser.ParseDisguise(ctx, sender, namespace, tokens, e.access.View(sender, namespace))
}

// Save parses tokens for a sender and stores the result as a clone reference.
func (e *Engine) Save(ctx context.Context, sender, namespace, name string, tokens []string) (clone.Entry, error) {
	d, err := e.Parse(ctx, sender, namespace, tokens)
	if err != nil {
		return clone.Entry{}, err
	}
	return e.clones.Save(name, d)
}

// Render turns an error into the message shown to the sender, in the active
// locale. Errors that are not parse errors render as the internal error.
func (e *Engine) Render(err error) string {
	if err == nil {
		return ""
	}
	p := e.translations.Snapshot().Printer()
	if !parser.IsParseError(err) {
		return p.Sprintf(parser.KeyInternal)
	}
	return p.Sprintf(parser.KeyOf(err), parser.ArgsOf(err)...)
}

// Command renders a descriptor back into a command line.
func (e *Engine) Command(d *disguise.Descriptor) []string {
	return e.parser.Tokens(d)
}

// Parser returns the underlying parser.
func (e *Engine) Parser() *parser.Parser { return e.parser }

// Access returns the permission service.
func (e *Engine) Access() *access.Service { return e.access }

// Clones returns the clone reference store.
func (e *Engine) Clones() *clone.Store { return e.clones }

// DisplayName returns the name of a category in the active locale.
func (e *Engine) DisplayName(cat disguise.Category) string {
	if cat.IsCustom() {
		return cat.Name()
	}
	return e.translations.Snapshot().Display(translate.DomainDisguises, cat.Name())
}

// Locale returns the active locale.
func (e *Engine) Locale() string { return e.translations.Snapshot().Locale().String() }

func loadTable(cfg *config.Config) (*translate.Table, error) {
	tbl, err := translate.LoadDir(cfg.Locale, cfg.LocalesDir)
	if err != nil {
		return nil, oops.In("host").With("locale", cfg.Locale).Wrap(err)
	}
	if err := tbl.Register(); err != nil {
		return nil, oops.In("host").Wrap(err)
	}
	return tbl, nil
}

func compilePolicy(perms config.Permissions) (*access.Policy, error) {
	roles := perms.Roles
	if len(roles) == 0 {
		roles = access.DefaultRoles()
	}
	policy, err := access.Compile(roles, perms.Senders)
	if err != nil {
		return nil, oops.In("host").Wrap(err)
	}
	return policy, nil
}
