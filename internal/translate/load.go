// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package translate

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embedded embed.FS

// localeFile is the on-disk shape of locales/<locale>/<domain>.yaml.
type localeFile struct {
	Locale  string            `yaml:"locale"`
	Domain  Domain            `yaml:"domain"`
	Entries map[string]string `yaml:"entries"`
}

// bundle groups locale files by locale.
type bundle map[string][]localeFile

// Default builds the embedded table for the requested locale.
func Default(locale string) (*Table, error) {
	return Load(locale, embedded)
}

// LoadDir builds a table from the embedded locales overlaid with the locale
// files found under dir. An empty dir uses the embedded locales only.
func LoadDir(locale, dir string) (*Table, error) {
	if dir == "" {
		return Default(locale)
	}
	return Load(locale, embedded, os.DirFS(dir))
}

// Load builds a table for the locale from one or more filesystems holding
// locales/<locale>/<domain>.yaml files. Later filesystems override earlier
// ones. Unknown locales fall back to the closest available match, and the
// base locale fills in anything the chosen locale leaves out.
func Load(locale string, fsyss ...fs.FS) (*Table, error) {
	b := bundle{}
	for _, fsys := range fsyss {
		if err := b.read(fsys); err != nil {
			return nil, err
		}
	}
	if _, ok := b[BaseLocale]; !ok {
		return nil, oops.In("translate").
			Code("MISSING_BASE_LOCALE").
			Errorf("base locale %s is not defined", BaseLocale)
	}

	tag := b.match(locale)
	builder := NewBuilder(tag)
	layers := []string{BaseLocale}
	if tag.String() != BaseLocale {
		layers = append(layers, tag.String())
	}
	for _, name := range layers {
		for _, file := range b[name] {
			keys := make([]string, 0, len(file.Entries))
			for k := range file.Entries {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, canonical := range keys {
				if err := builder.Add(file.Domain, canonical, file.Entries[canonical]); err != nil {
					return nil, oops.In("translate").With("locale", name).Wrap(err)
				}
			}
		}
	}
	return builder.Build(), nil
}

func (b bundle) read(fsys fs.FS) error {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return oops.In("translate").Wrapf(err, "glob locale files")
	}
	sort.Strings(paths)

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return oops.In("translate").With("path", p).Wrapf(err, "read locale file")
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return oops.In("translate").With("path", p).Wrapf(err, "parse locale file")
		}
		dirLocale := path.Base(path.Dir(p))
		domain := Domain(strings.TrimSuffix(path.Base(p), path.Ext(p)))
		if file.Locale != dirLocale {
			return oops.In("translate").
				Code("LOCALE_MISMATCH").
				With("path", p).
				Errorf("locale %q must match directory %q", file.Locale, dirLocale)
		}
		if file.Domain != domain {
			return oops.In("translate").
				Code("DOMAIN_MISMATCH").
				With("path", p).
				Errorf("domain %q must match file name %q", file.Domain, domain)
		}
		if _, err := language.Parse(file.Locale); err != nil {
			return oops.In("translate").With("path", p).Wrapf(err, "parse locale tag")
		}
		b[file.Locale] = append(b[file.Locale], file)
	}
	return nil
}

// match picks the available locale closest to the requested one.
func (b bundle) match(requested string) language.Tag {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	// the base locale leads so it wins when nothing matches
	tags := []language.Tag{language.MustParse(BaseLocale)}
	for _, name := range names {
		if name != BaseLocale {
			tags = append(tags, language.MustParse(name))
		}
	}

	want, err := language.Parse(requested)
	if err != nil {
		return tags[0]
	}
	_, idx, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		return tags[0]
	}
	// hand back the tag as spelled in the bundle so layer lookup by name works
	return tags[idx]
}
