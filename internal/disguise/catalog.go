// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package disguise

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the injected metadata describing every disguise kind, the
// behavior types behind them and the values they accept.
// A Catalog is immutable once loaded.
type Catalog struct {
	DefaultMaterial string             `yaml:"default_material"`
	Materials       []string           `yaml:"materials"`
	Enums           map[string]EnumDef `yaml:"enums"`
	Kinds           []*KindInfo        `yaml:"kinds"`
	Types           []*TypeDef         `yaml:"types"`

	kinds     map[string]*KindInfo
	types     map[string]*TypeDef
	materials map[string]string // separator-free lowercase -> material
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the embedded catalog.
// It panics if the embedded catalog is invalid, which is a build defect.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(defaultCatalogYAML)
		if err != nil {
			panic("invalid embedded disguise catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.In("catalog").With("path", path).Wrapf(err, "read catalog")
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return c, nil
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, oops.In("catalog").Code("INVALID_CATALOG").Wrapf(err, "parse catalog")
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	invalid := func(format string, args ...any) error {
		return oops.In("catalog").Code("INVALID_CATALOG").Errorf(format, args...)
	}

	c.types = make(map[string]*TypeDef, len(c.Types))
	for _, t := range c.Types {
		if t.Name == "" {
			return invalid("type name cannot be empty")
		}
		if t.Owner != "descriptor" && t.Owner != "watcher" {
			return invalid("type %s: owner must be descriptor or watcher, got %q", t.Name, t.Owner)
		}
		if _, dup := c.types[t.Name]; dup {
			return invalid("duplicate type %s", t.Name)
		}
		c.types[t.Name] = t
	}
	for _, t := range c.Types {
		seen := map[string]bool{t.Name: true}
		for p := t.Parent; p != ""; {
			parent, ok := c.types[p]
			if !ok {
				return invalid("type %s: unknown parent %s", t.Name, p)
			}
			if parent.Owner != t.Owner {
				return invalid("type %s: parent %s has a different owner", t.Name, p)
			}
			if seen[p] {
				return invalid("type %s: inheritance cycle through %s", t.Name, p)
			}
			seen[p] = true
			p = parent.Parent
		}
	}

	c.materials = make(map[string]string, len(c.Materials))
	for _, m := range c.Materials {
		c.materials[materialKey(m)] = m
	}
	if _, ok := c.materials[materialKey(c.DefaultMaterial)]; !ok {
		return invalid("default material %q is not a known material", c.DefaultMaterial)
	}

	c.kinds = make(map[string]*KindInfo, len(c.Kinds))
	for _, k := range c.Kinds {
		if k.Name == "" {
			return invalid("kind name cannot be empty")
		}
		if _, dup := c.kinds[k.Name]; dup {
			return invalid("duplicate kind %s", k.Name)
		}
		switch k.Class {
		case ClassPlayer, ClassMob, ClassMisc, ClassUnknown:
		default:
			return invalid("kind %s: unknown class %q", k.Name, k.Class)
		}
		if k.Descriptor == "" {
			k.Descriptor = defaultDescriptorType(k.Class)
		}
		if t, ok := c.types[k.Descriptor]; !ok || t.OwnerKind() != OwnerDescriptor {
			return invalid("kind %s: descriptor type %s is not a descriptor type", k.Name, k.Descriptor)
		}
		if k.Watcher != "" {
			if t, ok := c.types[k.Watcher]; !ok || t.OwnerKind() != OwnerWatcher {
				return invalid("kind %s: watcher type %s is not a watcher type", k.Name, k.Watcher)
			}
		}
		if k.Clause != ClauseNone {
			if k.Class != ClassMisc {
				return invalid("kind %s: only misc kinds take a %s clause", k.Name, k.Clause)
			}
			if k.Clause != ClauseMaterial && k.Clause != ClauseNumericID {
				return invalid("kind %s: unknown clause %q", k.Name, k.Clause)
			}
			if k.ClauseOption == "" {
				return invalid("kind %s: clause %s needs a clause_option", k.Name, k.Clause)
			}
		}
		c.kinds[k.Name] = k
	}
	return nil
}

// Kind looks up a kind by canonical name.
func (c *Catalog) Kind(name string) (*KindInfo, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Type looks up a type definition by name.
func (c *Catalog) Type(name string) (*TypeDef, bool) {
	t, ok := c.types[name]
	return t, ok
}

// Lineage returns the type and its ancestors, most derived first.
func (c *Catalog) Lineage(name string) []*TypeDef {
	var out []*TypeDef
	for t, ok := c.types[name]; ok; t, ok = c.types[t.Parent] {
		out = append(out, t)
	}
	return out
}

// ResolveMaterial matches a token against the material identifiers,
// ignoring case and underscores.
func (c *Catalog) ResolveMaterial(token string) (string, bool) {
	m, ok := c.materials[materialKey(token)]
	return m, ok
}

func materialKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}
