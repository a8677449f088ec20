// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/holomush/disguise/pkg/errutil"
)

func TestBuilder_ForwardAndInverse(t *testing.T) {
	b := NewBuilder(language.AmericanEnglish)
	require.NoError(t, b.Add(DomainOptions, "setbaby", "SetBaby"))
	table := b.Build()

	assert.Equal(t, "SetBaby", table.Display(DomainOptions, "setbaby"))
	assert.Equal(t, "setbaby", table.Canonical(DomainOptions, "SETBABY"))

	canonical, ok := table.Lookup(DomainOptions, "setbaby")
	assert.True(t, ok)
	assert.Equal(t, "setbaby", canonical)
}

func TestTable_IdentityFallback(t *testing.T) {
	table := NewBuilder(language.AmericanEnglish).Build()

	assert.Equal(t, "flyhigh", table.Canonical(DomainOptions, "flyhigh"))
	assert.Equal(t, "cow", table.Display(DomainDisguises, "cow"))
	_, ok := table.Lookup(DomainOptions, "flyhigh")
	assert.False(t, ok)
}

func TestBuilder_DomainsAreIndependent(t *testing.T) {
	b := NewBuilder(language.AmericanEnglish)
	require.NoError(t, b.Add(DomainOptions, "baby", "kid"))
	require.NoError(t, b.Add(DomainDisguises, "goat", "kid"))
	table := b.Build()

	assert.Equal(t, "baby", table.Canonical(DomainOptions, "kid"))
	assert.Equal(t, "goat", table.Canonical(DomainDisguises, "kid"))
}

func TestBuilder_DuplicateDisplayRejected(t *testing.T) {
	b := NewBuilder(language.AmericanEnglish)
	require.NoError(t, b.Add(DomainOptions, "setbaby", "young"))

	err := b.Add(DomainOptions, "setadult", "YOUNG")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "DUPLICATE_TRANSLATION")
}

func TestBuilder_OverlayReplacesDisplay(t *testing.T) {
	b := NewBuilder(language.German)
	require.NoError(t, b.Add(DomainOptions, "baby", "baby"))
	require.NoError(t, b.Add(DomainOptions, "baby", "kind"))
	table := b.Build()

	assert.Equal(t, "kind", table.Display(DomainOptions, "baby"))
	_, ok := table.Lookup(DomainOptions, "baby")
	assert.False(t, ok, "replaced display name must not resolve any more")
}

func TestBuilder_EmptyEntryRejected(t *testing.T) {
	err := NewBuilder(language.AmericanEnglish).Add(DomainOptions, "", "x")
	errutil.AssertErrorCode(t, err, "INVALID_TRANSLATION")
}

func TestDefault_BaseLocale(t *testing.T) {
	table, err := Default("en-US")
	require.NoError(t, err)

	assert.Equal(t, "en-US", table.Locale().String())
	assert.Equal(t, "baby", table.Display(DomainOptions, "baby"))
	assert.Equal(t, "adult", table.Display(DomainOptions, "adult"))
	assert.NotEmpty(t, table.Entries(DomainMessages))
}

func TestDefault_GermanOverlaysBase(t *testing.T) {
	table, err := Default("de-DE")
	require.NoError(t, err)

	assert.Equal(t, "de-DE", table.Locale().String())
	assert.Equal(t, "kind", table.Display(DomainOptions, "baby"))
	assert.Equal(t, "cow", table.Canonical(DomainDisguises, "Kuh"))
	// untranslated keys come from the base locale
	assert.Equal(t, "Cannot find a disguise under the reference %s", table.Display(DomainMessages, "parse.no_ref"))
}

func TestDefault_UnknownLocaleFallsBack(t *testing.T) {
	table, err := Default("xx")
	require.NoError(t, err)
	assert.Equal(t, BaseLocale, table.Locale().String())

	table, err = Default("de")
	require.NoError(t, err)
	assert.Equal(t, "de-DE", table.Locale().String())
}

func TestLoadDir_Overlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "locales", "en-US", "options.yaml"), `locale: en-US
domain: options
entries:
  sethealth: hp
`)

	table, err := LoadDir("en-US", dir)
	require.NoError(t, err)
	assert.Equal(t, "sethealth", table.Canonical(DomainOptions, "HP"))
	assert.Equal(t, "baby", table.Display(DomainOptions, "baby"))
}

func TestLoadDir_RejectsDomainMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "locales", "en-US", "options.yaml"), `locale: en-US
domain: disguises
entries: {}
`)

	_, err := LoadDir("en-US", dir)
	errutil.AssertErrorCode(t, err, "DOMAIN_MISMATCH")
}

func TestLoadDir_RejectsLocaleMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "locales", "fr-FR", "options.yaml"), `locale: de-DE
domain: options
entries: {}
`)

	_, err := LoadDir("en-US", dir)
	errutil.AssertErrorCode(t, err, "LOCALE_MISMATCH")
}

func TestTable_RegisterMessages(t *testing.T) {
	table, err := Default("en-US")
	require.NoError(t, err)
	assert.Equal(t, "parse.option_na", table.Printer().Sprintf("parse.option_na"))

	require.NoError(t, table.Register())
	assert.Equal(t, "Option flyhigh does not exist in the disguise options", table.Printer().Sprintf("parse.option_na", "flyhigh"))
}

func TestTable_RegisterIsPerTable(t *testing.T) {
	english, err := Default("en-US")
	require.NoError(t, err)
	require.NoError(t, english.Register())

	b := NewBuilder(language.AmericanEnglish)
	require.NoError(t, b.Add(DomainMessages, "parse.no_args", "LEAKED"))
	other := b.Build()
	require.NoError(t, other.Register())

	assert.Equal(t, "No arguments defined", english.Printer().Sprintf("parse.no_args"))
	assert.Equal(t, "LEAKED", other.Printer().Sprintf("parse.no_args"))
	assert.Equal(t, "parse.no_args", message.NewPrinter(language.AmericanEnglish).Sprintf("parse.no_args"))
}

func TestSource_Swap(t *testing.T) {
	first := NewBuilder(language.AmericanEnglish).Build()
	second := NewBuilder(language.German).Build()

	src := NewSource(first)
	snap := src.Snapshot()
	src.Swap(second)

	assert.Same(t, first, snap, "earlier snapshot is unaffected by a swap")
	assert.Same(t, second, src.Snapshot())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
