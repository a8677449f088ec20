// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package translate maps canonical identifiers to user-facing names and back.
package translate

import (
	"sort"
	"sync/atomic"

	"github.com/samber/oops"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Domain scopes a set of translations.
type Domain string

// Translation domains.
const (
	DomainDisguises Domain = "disguises"
	DomainOptions   Domain = "options"
	DomainMessages  Domain = "messages"
)

// Table is an immutable bidirectional translation table for one locale.
// The forward and inverse maps are populated together by Builder.
type Table struct {
	locale  language.Tag
	forward map[Domain]map[string]string // canonical -> display
	inverse map[Domain]map[string]string // folded display -> canonical

	messages *catalog.Builder // set by Register
}

// Locale returns the locale the table was built for.
func (t *Table) Locale() language.Tag {
	return t.locale
}

// Display returns the display name for a canonical identifier.
// Untranslated identifiers are returned unchanged.
func (t *Table) Display(domain Domain, canonical string) string {
	if display, ok := t.forward[domain][canonical]; ok {
		return display
	}
	return canonical
}

// Lookup resolves a display name to its canonical identifier, ignoring case.
func (t *Table) Lookup(domain Domain, display string) (string, bool) {
	canonical, ok := t.inverse[domain][fold(display)]
	return canonical, ok
}

// Canonical resolves a display name to its canonical identifier.
// Names with no translation are returned unchanged.
func (t *Table) Canonical(domain Domain, display string) string {
	if canonical, ok := t.Lookup(domain, display); ok {
		return canonical
	}
	return display
}

// Entries returns a copy of the canonical -> display map for a domain.
func (t *Table) Entries(domain Domain) map[string]string {
	out := make(map[string]string, len(t.forward[domain]))
	for k, v := range t.forward[domain] {
		out[k] = v
	}
	return out
}

// Register compiles the messages domain into a catalog owned by the table.
// Tables never share a catalog, so registering a table that is later
// discarded leaves every other table's messages untouched. Register must be
// called before the table is published.
func (t *Table) Register() error {
	keys := make([]string, 0, len(t.forward[DomainMessages]))
	for key := range t.forward[DomainMessages] {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b := catalog.NewBuilder(catalog.Fallback(t.locale))
	for _, key := range keys {
		if err := b.SetString(t.locale, key, t.forward[DomainMessages][key]); err != nil {
			return oops.In("translate").With("key", key).Wrap(err)
		}
	}
	t.messages = b
	return nil
}

// Printer renders message keys of the messages domain. Keys render as
// themselves until Register has been called.
func (t *Table) Printer() *message.Printer {
	b := t.messages
	if b == nil {
		b = catalog.NewBuilder(catalog.Fallback(t.locale))
	}
	return message.NewPrinter(t.locale, message.Catalog(b))
}

// Builder accumulates translations for a Table.
type Builder struct {
	table *Table
}

// NewBuilder starts a table for the given locale.
func NewBuilder(locale language.Tag) *Builder {
	return &Builder{table: &Table{
		locale:  locale,
		forward: make(map[Domain]map[string]string),
		inverse: make(map[Domain]map[string]string),
	}}
}

// Add records a canonical/display pair. A later Add for the same canonical
// identifier replaces the earlier display name, which is how locale overlays
// replace base-locale entries.
func (b *Builder) Add(domain Domain, canonical, display string) error {
	if canonical == "" || display == "" {
		return oops.In("translate").
			Code("INVALID_TRANSLATION").
			With("domain", domain).
			With("canonical", canonical).
			Errorf("translation entries cannot be empty")
	}
	fwd := b.table.forward[domain]
	inv := b.table.inverse[domain]
	if fwd == nil {
		fwd = make(map[string]string)
		inv = make(map[string]string)
		b.table.forward[domain] = fwd
		b.table.inverse[domain] = inv
	}

	// messages are keyed lookups only; display text is free-form
	if domain != DomainMessages {
		folded := fold(display)
		if owner, taken := inv[folded]; taken && owner != canonical {
			return oops.In("translate").
				Code("DUPLICATE_TRANSLATION").
				With("domain", domain).
				With("display", display).
				With("canonical", canonical).
				With("existing", owner).
				Errorf("display name %q already maps to %q", display, owner)
		}
		if previous, ok := fwd[canonical]; ok {
			delete(inv, fold(previous))
		}
		inv[folded] = canonical
	}
	fwd[canonical] = display
	return nil
}

// Build returns the finished table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	t := b.table
	b.table = nil
	return t
}

// Source hands out the current table and accepts reloaded ones.
// Readers take one snapshot per parse and keep it for the whole call.
type Source struct {
	current atomic.Pointer[Table]
}

// NewSource creates a source serving t.
func NewSource(t *Table) *Source {
	s := &Source{}
	s.current.Store(t)
	return s
}

// Snapshot returns the table in effect.
func (s *Source) Snapshot() *Table {
	return s.current.Load()
}

// Swap installs a new table.
func (s *Source) Swap(t *Table) {
	s.current.Store(t)
}

func fold(s string) string {
	// Casers are stateful and cannot be shared across goroutines.
	return cases.Fold().String(s)
}
