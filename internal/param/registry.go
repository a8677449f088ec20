// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package param holds the value parsers options use to read their arguments.
package param

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/token"
)

// Type names a value type, e.g. "integer" or "dye_color".
type Type string

// Error codes returned by value parsers.
const (
	CodeTypeMismatch    = "TYPE_MISMATCH"
	CodeMissingArgument = "MISSING_ARGUMENT"
)

// Info describes how to read one value type from the token stream.
// Implementations are stateless and safe for concurrent use.
type Info interface {
	Type() Type
	// Description is the human name of the type used in error messages.
	Description() string
	// MinArgs is the number of tokens a successful parse consumes at least.
	MinArgs() int
	// Nullable reports whether a nil result is an acceptable value.
	Nullable() bool
	Parse(c *token.Cursor) (any, error)
	// Format renders a value back into tokens that Parse accepts.
	Format(v any) []string
}

// Mismatch returns the error a parser reports when a token does not fit its type.
func Mismatch(description, received string) error {
	return oops.Code(CodeTypeMismatch).
		With("expected", description).
		With("received", received).
		Errorf("expected %s, received %q", description, received)
}

// Missing returns the error a parser reports when it runs out of tokens.
func Missing(description string) error {
	return oops.Code(CodeMissingArgument).
		With("expected", description).
		Errorf("expected %s, received nothing", description)
}

// Registry maps value types to their parsers.
// It is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu    sync.RWMutex
	types map[Type]Info
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[Type]Info)}
}

// Register adds a parser. Returns an error on an empty or duplicate type.
func (r *Registry) Register(info Info) error {
	if info == nil {
		return oops.Code("INVALID_PARAM").Errorf("param info cannot be nil")
	}
	t := info.Type()
	if strings.TrimSpace(string(t)) == "" {
		return oops.Code("INVALID_PARAM").Errorf("param type cannot be empty")
	}
	if info.MinArgs() < 0 {
		return oops.Code("INVALID_PARAM").With("type", t).Errorf("negative minimum argument count")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[t]; exists {
		return oops.Code("DUPLICATE_PARAM").With("type", t).Errorf("param type already registered")
	}
	r.types[t] = info
	return nil
}

// MustRegister adds a parser, panicking on error.
// This is intended for registry construction only.
func (r *Registry) MustRegister(info Info) {
	if err := r.Register(info); err != nil {
		panic(err)
	}
}

// RegisterEnum adds a case-insensitive enumerated type.
func (r *Registry) RegisterEnum(name, description string, values []string) error {
	if len(values) == 0 {
		return oops.Code("INVALID_PARAM").With("type", name).Errorf("enum has no values")
	}
	if description == "" {
		description = name
	}
	return r.Register(newEnum(Type(name), description, values))
}

// Lookup returns the parser for a type.
func (r *Registry) Lookup(t Type) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.types[t]
	return info, ok
}

// Types lists the registered types in sorted order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Type, 0, len(r.types))
	for t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Default returns a registry with the builtin types plus every enum and the
// material list of the catalog.
func Default(catalog *disguise.Catalog) *Registry {
	r := NewRegistry()
	r.MustRegister(boolParam{})
	r.MustRegister(intParam{})
	r.MustRegister(floatParam{})
	r.MustRegister(stringParam{})
	r.MustRegister(colorParam{})
	r.MustRegister(itemParam{catalog: catalog})
	r.MustRegister(armorParam{catalog: catalog})
	r.MustRegister(eulerParam{})
	r.MustRegister(blockPosParam{})
	r.MustRegister(optionalPosParam{})
	r.MustRegister(durationParam{})

	names := make([]string, 0, len(catalog.Enums))
	for name := range catalog.Enums {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := catalog.Enums[name]
		if err := r.RegisterEnum(name, def.Description, def.Values); err != nil {
			panic(err)
		}
	}
	return r
}

// Consume runs info against a fork of c and commits the fork on success.
// A nil result from a type that is not nullable is a mismatch.
// It panics when a successful parse consumed fewer tokens than the type's
// minimum, which is a bug in the parser and not a parse outcome.
func Consume(info Info, c *token.Cursor) (any, error) {
	f := c.Fork()
	v, err := info.Parse(f)
	if err != nil {
		return nil, err
	}
	if v == nil && !info.Nullable() {
		first, _ := c.Peek()
		return nil, Mismatch(info.Description(), first)
	}
	if n := f.Pos() - c.Pos(); n < info.MinArgs() {
		panic(fmt.Sprintf("param %s: consumed %d tokens, minimum is %d", info.Type(), n, info.MinArgs()))
	}
	c.Commit(f)
	return v, nil
}
