// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/holomush/disguise/internal/access"
	"github.com/holomush/disguise/internal/clone"
	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/parser"
	"github.com/holomush/disguise/internal/translate"
)

const (
	sender    = "alice"
	namespace = "disguise"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newParser builds a parser over the embedded catalog with a clone store.
func newParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.New(parser.Deps{Clones: clone.NewStore(0), Logger: discard})
	require.NoError(t, err)
	return p
}

func newLocalizedParser(t *testing.T, locale string) *parser.Parser {
	t.Helper()
	tbl, err := translate.Default(locale)
	require.NoError(t, err)
	p, err := parser.New(parser.Deps{
		Clones:       clone.NewStore(0),
		Translations: translate.NewSource(tbl),
		Logger:       discard,
	})
	require.NoError(t, err)
	return p
}

// viewWith resolves the view of a sender holding exactly the given nodes.
func viewWith(t *testing.T, nodes ...string) *access.View {
	t.Helper()
	policy, err := access.Compile(
		map[string][]string{"test": nodes},
		map[string][]string{sender: {"test"}},
	)
	require.NoError(t, err)
	return access.NewService(policy).View(sender, namespace)
}

func everything(t *testing.T) *access.View {
	t.Helper()
	return viewWith(t, "disguise.*.*", "disguise.clone")
}

func parse(t *testing.T, p *parser.Parser, view *access.View, tokens ...string) (*disguise.Descriptor, error) {
	t.Helper()
	return p.ParseDisguise(context.Background(), sender, namespace, tokens, view)
}

func watcherValue(t *testing.T, d *disguise.Descriptor, id string) any {
	t.Helper()
	v, ok := d.Watcher().Properties().Get(id)
	require.True(t, ok, "watcher has no %s", id)
	return v
}

// state is the comparable content of a descriptor.
type state struct {
	Category string
	Custom   bool
	Name     string
	Applied  []disguise.Applied
	Own      map[string]any
	Watcher  map[string]any
}

func stateOf(d *disguise.Descriptor) state {
	values := func(p *disguise.Properties) map[string]any {
		out := make(map[string]any, p.Len())
		for _, k := range p.Keys() {
			out[k], _ = p.Get(k)
		}
		return out
	}
	return state{
		Category: d.Category().Name(),
		Custom:   d.Category().IsCustom(),
		Name:     d.Name(),
		Applied:  d.Applied(),
		Own:      values(d.Properties()),
		Watcher:  values(d.Watcher().Properties()),
	}
}
