// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/param"
	"github.com/holomush/disguise/pkg/errutil"
)

func defaultRegistry(t *testing.T) *Registry {
	t.Helper()
	catalog := disguise.DefaultCatalog()
	r, err := NewRegistry(catalog, param.Default(catalog))
	require.NoError(t, err)
	return r
}

func TestRegistry_SkipsUnsupportedKinds(t *testing.T) {
	r := defaultRegistry(t)

	_, ok := r.Table("cow")
	assert.True(t, ok)
	_, ok = r.Table("experience_orb")
	assert.False(t, ok)
	_, ok = r.Table("unknown")
	assert.False(t, ok)
	assert.Nil(t, r.Options("experience_orb"))
}

func TestTable_CandidateOrder(t *testing.T) {
	r := defaultRegistry(t)

	table, ok := r.Table("ender_crystal")
	require.True(t, ok)
	assert.Equal(t, []Setter{
		{ID: "setbeamtarget", Type: param.BlockPosition, Owner: disguise.OwnerWatcher, Declarer: "ender_crystal"},
		{ID: "setbeamtarget", Type: param.OptionalPosition, Owner: disguise.OwnerWatcher, Declarer: "ender_crystal"},
	}, table.Candidates("setbeamtarget"))

	// descriptor-owned overloads come in declaration order
	assert.Equal(t, []Setter{
		{ID: "setexpires", Type: param.Integer, Owner: disguise.OwnerDescriptor, Declarer: "disguise"},
		{ID: "setexpires", Type: param.Duration, Owner: disguise.OwnerDescriptor, Declarer: "disguise"},
	}, table.Candidates("setexpires"))
}

func TestTable_DerivedTypeShadowsAncestor(t *testing.T) {
	r := defaultRegistry(t)

	sheep, _ := r.Table("sheep")
	assert.Equal(t, []Setter{
		{ID: "setcolor", Type: "dye_color", Owner: disguise.OwnerWatcher, Declarer: "sheep"},
	}, sheep.Candidates("setcolor"))

	baby := sheep.Candidates("setbaby")
	require.Len(t, baby, 1)
	assert.Equal(t, "ageable", baby[0].Declarer)
}

func TestTable_OwnerPerDeclarer(t *testing.T) {
	r := defaultRegistry(t)

	player, _ := r.Table("player")
	name := player.Candidates("setname")
	require.Len(t, name, 1)
	assert.Equal(t, disguise.OwnerDescriptor, name[0].Owner)

	hand := player.Candidates("setmainhand")
	require.Len(t, hand, 1)
	assert.Equal(t, disguise.OwnerWatcher, hand[0].Owner)

	cow, _ := r.Table("cow")
	assert.Empty(t, cow.Candidates("setname"))
}

func TestSetter_Apply(t *testing.T) {
	r := defaultRegistry(t)
	cow, _ := r.Table("cow")
	kind, _ := disguise.DefaultCatalog().Kind("cow")
	d, err := disguise.New(disguise.NewCategory(kind))
	require.NoError(t, err)

	cow.Candidates("sethealth")[0].Apply(d, 5.0)
	cow.Candidates("setexpires")[0].Apply(d, 20)

	v, ok := d.Watcher().Properties().Get("sethealth")
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
	_, ok = d.Properties().Get("setexpires")
	assert.True(t, ok)
	assert.Equal(t, []disguise.Applied{
		{Owner: disguise.OwnerWatcher, ID: "sethealth", Type: "float"},
		{Owner: disguise.OwnerDescriptor, ID: "setexpires", Type: "integer"},
	}, d.Applied())
}

func TestTable_Resolve(t *testing.T) {
	r := defaultRegistry(t)
	cow, _ := r.Table("cow")

	id, err := cow.Resolve("SetHealth", nil)
	require.NoError(t, err)
	assert.Equal(t, "sethealth", id)

	id, err = cow.Resolve("setarr", nil)
	require.NoError(t, err)
	assert.Equal(t, "setarrowsinentity", id)

	_, err = cow.Resolve("setcustom", nil)
	var ambiguous *AmbiguousOptionError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"setcustomname", "setcustomnamevisible"}, ambiguous.Matches)

	_, err = cow.Resolve("fly", nil)
	errutil.AssertErrorCode(t, err, "OPTION_NOT_FOUND")
	errutil.AssertErrorContext(t, err, "kind", "cow")

	_, err = cow.Resolve("", nil)
	require.ErrorIs(t, err, ErrOptionNotFound)
}

func TestTable_ResolveByDisplayName(t *testing.T) {
	r := defaultRegistry(t)
	cow, _ := r.Table("cow")
	german := map[string]string{"setbaby": "SetzeKind", "sethealth": "SetzeLeben"}
	name := func(id string) string {
		if n, ok := german[id]; ok {
			return n
		}
		return id
	}

	id, err := cow.Resolve("setzek", name)
	require.NoError(t, err)
	assert.Equal(t, "setbaby", id)

	_, err = cow.Resolve("setze", name)
	var ambiguous *AmbiguousOptionError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"SetzeKind", "SetzeLeben"}, ambiguous.Matches)

	_, err = cow.Resolve("setbaby", name)
	errutil.AssertErrorCode(t, err, "OPTION_NOT_FOUND")
}

func TestNewRegistry_UnknownValueType(t *testing.T) {
	catalog, err := disguise.ParseCatalog([]byte(`default_material: stone
materials: [stone]
types:
  - {name: mob_disguise, owner: descriptor}
  - name: w
    owner: watcher
    properties:
      - {id: setwings, type: wings}
kinds:
  - {name: bat, class: mob, watcher: w}`))
	require.NoError(t, err)

	_, err = NewRegistry(catalog, param.Default(catalog))
	errutil.AssertErrorCode(t, err, "UNKNOWN_PARAM_TYPE")
}
