// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package host

import (
	"fmt"
	"strings"

	"github.com/holomush/disguise/internal/disguise"
)

// Summary is the printable form of a descriptor.
type Summary struct {
	Category string            `yaml:"category"`
	Kind     string            `yaml:"kind"`
	Class    string            `yaml:"class"`
	Custom   bool              `yaml:"custom,omitempty"`
	Name     string            `yaml:"name,omitempty"`
	Adult    bool              `yaml:"adult"`
	Material string            `yaml:"material,omitempty"`
	Options  []string          `yaml:"options,omitempty"`
	Values   map[string]string `yaml:"values,omitempty"`
	Watcher  map[string]string `yaml:"watcher,omitempty"`
	Command  string            `yaml:"command"`
}

// Summarize describes a descriptor, including the command that rebuilds it.
func (e *Engine) Summarize(d *disguise.Descriptor) Summary {
	s := Summary{
		Category: d.Category().Name(),
		Kind:     d.Kind().Name,
		Class:    string(d.Kind().Class),
		Custom:   d.Category().IsCustom(),
		Name:     d.Name(),
		Adult:    d.IsAdult(),
		Values:   stringify(d.Properties()),
		Watcher:  stringify(d.Watcher().Properties()),
		Command:  strings.Join(e.Command(d), " "),
	}
	if m, ok := d.Material(); ok {
		s.Material = m
	}
	for _, a := range d.Applied() {
		s.Options = append(s.Options, a.ID)
	}
	return s
}

func stringify(p *disguise.Properties) map[string]string {
	if p.Len() == 0 {
		return nil
	}
	out := make(map[string]string, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out[k] = fmt.Sprint(v)
	}
	return out
}
