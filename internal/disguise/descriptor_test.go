// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package disguise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/disguise/pkg/errutil"
)

func mustCategory(t *testing.T, name string) Category {
	t.Helper()
	k, ok := DefaultCatalog().Kind(name)
	require.True(t, ok, "kind %s", name)
	return NewCategory(k)
}

func TestNew_Unsupported(t *testing.T) {
	_, err := New(mustCategory(t, "experience_orb"))
	errutil.AssertErrorCode(t, err, "UNSUPPORTED_KIND")

	_, err = New(Category{})
	errutil.AssertErrorCode(t, err, "UNSUPPORTED_KIND")
}

func TestDescriptor_ApplyKeepsFirstPosition(t *testing.T) {
	d, err := New(mustCategory(t, "cow"))
	require.NoError(t, err)

	d.Apply(OwnerWatcher, "setbaby", "boolean", true)
	d.Apply(OwnerWatcher, "sethealth", "float", 5.0)
	d.Apply(OwnerWatcher, "setbaby", "boolean", false)

	assert.Equal(t, []Applied{
		{Owner: OwnerWatcher, ID: "setbaby", Type: "boolean"},
		{Owner: OwnerWatcher, ID: "sethealth", Type: "float"},
	}, d.Applied())
	assert.True(t, d.IsAdult())
}

func TestDescriptor_SetDefaultNotRecorded(t *testing.T) {
	d, err := New(mustCategory(t, "falling_block"))
	require.NoError(t, err)

	d.SetDefault(OwnerWatcher, "setblock", Item{Material: "stone", Amount: 1})

	assert.Empty(t, d.Applied())
	m, ok := d.Material()
	assert.True(t, ok)
	assert.Equal(t, "stone", m)
}

func TestDescriptor_MiscID(t *testing.T) {
	d, err := New(mustCategory(t, "painting"))
	require.NoError(t, err)
	assert.Equal(t, -1, d.MiscID())

	d.Apply(OwnerWatcher, "setpainting", "integer", 7)
	assert.Equal(t, 7, d.MiscID())

	cow, err := New(mustCategory(t, "cow"))
	require.NoError(t, err)
	assert.Equal(t, -1, cow.MiscID())
	_, ok := cow.Material()
	assert.False(t, ok)
}

func TestDescriptor_NameOverride(t *testing.T) {
	d, err := NewPlayer(mustCategory(t, "player"), "Notch")
	require.NoError(t, err)
	assert.Equal(t, "Notch", d.Name())

	d.Apply(OwnerDescriptor, "setname", "string", "Jeb")
	assert.Equal(t, "Jeb", d.Name())
	assert.Equal(t, "Notch", d.ConstructionName())
}

func TestDescriptor_CloneIsDeep(t *testing.T) {
	d, err := New(mustCategory(t, "ender_crystal"))
	require.NoError(t, err)
	d.Apply(OwnerWatcher, "setbeamtarget", "optional_position", &Position{X: 1, Y: 2, Z: 3})
	d.Apply(OwnerWatcher, "setarmor", "armor", Armor{{Material: "iron_helmet", Amount: 1}})

	cp := d.Clone()

	pos, _ := cp.Watcher().Properties().Get("setbeamtarget")
	pos.(*Position).X = 99
	cp.Apply(OwnerWatcher, "setglowing", "boolean", true)

	orig, _ := d.Watcher().Properties().Get("setbeamtarget")
	assert.Equal(t, 1, orig.(*Position).X)
	_, ok := d.Watcher().Properties().Get("setglowing")
	assert.False(t, ok)
	assert.Len(t, d.Applied(), 2)
	assert.Len(t, cp.Applied(), 3)
}

func TestDescriptor_Relabel(t *testing.T) {
	cow := mustCategory(t, "cow")
	d, err := New(cow)
	require.NoError(t, err)

	require.NoError(t, d.Relabel(CustomCategory(cow.Kind(), "tinycow")))
	assert.Equal(t, "tinycow", d.Category().Name())

	err = d.Relabel(mustCategory(t, "pig"))
	errutil.AssertErrorCode(t, err, "KIND_MISMATCH")
}

func TestDescriptor_InheritTracksLaterApplies(t *testing.T) {
	d, err := New(mustCategory(t, "cow"))
	require.NoError(t, err)
	d.Apply(OwnerWatcher, "setglowing", "boolean", true)
	d.Apply(OwnerWatcher, "sethealth", "float", 4.0)

	d.Inherit("@bessie")
	cp := d.Clone()
	cp.Apply(OwnerWatcher, "sethealth", "float", 8.0)
	cp.Apply(OwnerWatcher, "setinvisible", "boolean", true)

	assert.Equal(t, "@bessie", cp.Reference())
	assert.Equal(t, []Applied{
		{Owner: OwnerWatcher, ID: "setglowing", Type: "boolean", Inherited: true},
		{Owner: OwnerWatcher, ID: "sethealth", Type: "float"},
		{Owner: OwnerWatcher, ID: "setinvisible", Type: "boolean"},
	}, cp.Applied())
	assert.True(t, d.Applied()[1].Inherited, "the original keeps its flags")
}
