// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/token"
	"github.com/holomush/disguise/pkg/errutil"
)

// lazyParam claims a minimum of one token but consumes none.
type lazyParam struct{}

func (lazyParam) Type() Type                       { return "lazy" }
func (lazyParam) Description() string              { return "lazy" }
func (lazyParam) MinArgs() int                     { return 1 }
func (lazyParam) Nullable() bool                   { return false }
func (lazyParam) Parse(*token.Cursor) (any, error) { return "x", nil }
func (lazyParam) Format(any) []string              { return nil }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(intParam{}))

	err := r.Register(intParam{})
	errutil.AssertErrorCode(t, err, "DUPLICATE_PARAM")

	err = r.Register(nil)
	errutil.AssertErrorCode(t, err, "INVALID_PARAM")

	info, ok := r.Lookup(Integer)
	require.True(t, ok)
	assert.Equal(t, 1, info.MinArgs())

	_, ok = r.Lookup("nope")
	assert.False(t, ok)
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(boolParam{})
	assert.Panics(t, func() { r.MustRegister(boolParam{}) })
}

func TestRegistry_RegisterEnum(t *testing.T) {
	r := NewRegistry()
	err := r.RegisterEnum("empty", "", nil)
	errutil.AssertErrorCode(t, err, "INVALID_PARAM")

	require.NoError(t, r.RegisterEnum("mood", "", []string{"happy", "very_sad"}))
	info, ok := r.Lookup("mood")
	require.True(t, ok)
	assert.Equal(t, "mood", info.Description())
}

func TestDefault_HasCatalogEnums(t *testing.T) {
	r := Default(disguise.DefaultCatalog())

	for _, typ := range []Type{Boolean, Integer, Float, String, ColorType, ItemType, ArmorType,
		EulerAngle, BlockPosition, OptionalPosition, Duration, "dye_color", "horse_color", "villager_profession"} {
		_, ok := r.Lookup(typ)
		assert.True(t, ok, "type %s", typ)
	}
	assert.Contains(t, r.Types(), Type("main_hand"))
}

func TestConsume_CommitsOnlyOnSuccess(t *testing.T) {
	c := token.New([]string{"abc", "5"})

	_, err := Consume(intParam{}, c)
	errutil.AssertErrorCode(t, err, CodeTypeMismatch)
	assert.Equal(t, 0, c.Pos())

	c.Skip(1)
	v, err := Consume(intParam{}, c)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, 2, c.Pos())
}

func TestConsume_ZeroConsumingBooleanIsAllowed(t *testing.T) {
	c := token.New([]string{"sethealth"})
	v, err := Consume(boolParam{}, c)
	require.NoError(t, err)
	assert.Equal(t, true, v)
	assert.Equal(t, 0, c.Pos())
}

func TestConsume_ContractViolationPanics(t *testing.T) {
	c := token.New([]string{"a"})
	assert.Panics(t, func() { _, _ = Consume(lazyParam{}, c) })
}

func TestConsume_NullableResult(t *testing.T) {
	c := token.New([]string{"none"})
	v, err := Consume(optionalPosParam{}, c)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.True(t, c.Done())
}
