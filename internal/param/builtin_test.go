// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package param

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/token"
	"github.com/holomush/disguise/pkg/errutil"
)

func TestBuiltins_Parse(t *testing.T) {
	r := Default(disguise.DefaultCatalog())

	tests := []struct {
		name     string
		typ      Type
		tokens   []string
		want     any
		consumed int
	}{
		{name: "explicit true", typ: Boolean, tokens: []string{"TRUE"}, want: true, consumed: 1},
		{name: "explicit false", typ: Boolean, tokens: []string{"false"}, want: false, consumed: 1},
		{name: "implicit true", typ: Boolean, tokens: []string{"setglowing"}, want: true, consumed: 0},
		{name: "implicit true at end", typ: Boolean, tokens: nil, want: true, consumed: 0},
		{name: "integer", typ: Integer, tokens: []string{"-12", "x"}, want: -12, consumed: 1},
		{name: "float", typ: Float, tokens: []string{"5"}, want: 5.0, consumed: 1},
		{name: "string unescaped", typ: String, tokens: []string{`Big\_Bob`}, want: "Big Bob", consumed: 1},
		{name: "dye color", typ: ColorType, tokens: []string{"LightBlue"},
			want: disguise.Color{Name: "light_blue", R: 58, G: 179, B: 218}, consumed: 1},
		{name: "rgb color", typ: ColorType, tokens: []string{"10,20,30"},
			want: disguise.Color{R: 10, G: 20, B: 30}, consumed: 1},
		{name: "item", typ: ItemType, tokens: []string{"IronSword:3"},
			want: disguise.Item{Material: "iron_sword", Amount: 3}, consumed: 1},
		{name: "item default amount", typ: ItemType, tokens: []string{"apple"},
			want: disguise.Item{Material: "apple", Amount: 1}, consumed: 1},
		{name: "armor", typ: ArmorType, tokens: []string{"iron_helmet,iron_chestplate,air,diamond_boots"},
			want: disguise.Armor{
				{Material: "iron_helmet", Amount: 1},
				{Material: "iron_chestplate", Amount: 1},
				{Material: "air", Amount: 1},
				{Material: "diamond_boots", Amount: 1},
			}, consumed: 1},
		{name: "euler angle", typ: EulerAngle, tokens: []string{"1.5,0,-.25"},
			want: disguise.EulerAngle{X: 1.5, Y: 0, Z: -0.25}, consumed: 1},
		{name: "block position", typ: BlockPosition, tokens: []string{"1", "-2", "3", "4"},
			want: disguise.Position{X: 1, Y: -2, Z: 3}, consumed: 3},
		{name: "optional position", typ: OptionalPosition, tokens: []string{"4,5,6"},
			want: &disguise.Position{X: 4, Y: 5, Z: 6}, consumed: 1},
		{name: "duration", typ: Duration, tokens: []string{"5m"}, want: 5 * time.Minute, consumed: 1},
		{name: "enum", typ: "villager_profession", tokens: []string{"Weapon_Smith"}, want: "weaponsmith", consumed: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := r.Lookup(tt.typ)
			require.True(t, ok)
			c := token.New(tt.tokens)

			got, err := Consume(info, c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consumed, c.Pos())
		})
	}
}

func TestBuiltins_Reject(t *testing.T) {
	r := Default(disguise.DefaultCatalog())

	tests := []struct {
		name   string
		typ    Type
		tokens []string
		code   string
	}{
		{name: "integer text", typ: Integer, tokens: []string{"five"}, code: CodeTypeMismatch},
		{name: "integer missing", typ: Integer, tokens: nil, code: CodeMissingArgument},
		{name: "color out of range", typ: ColorType, tokens: []string{"0,0,256"}, code: CodeTypeMismatch},
		{name: "color two parts", typ: ColorType, tokens: []string{"1,2"}, code: CodeTypeMismatch},
		{name: "unknown material", typ: ItemType, tokens: []string{"unobtainium"}, code: CodeTypeMismatch},
		{name: "zero amount", typ: ItemType, tokens: []string{"apple:0"}, code: CodeTypeMismatch},
		{name: "short armor", typ: ArmorType, tokens: []string{"iron_helmet,air"}, code: CodeTypeMismatch},
		{name: "block position short", typ: BlockPosition, tokens: []string{"1", "2"}, code: CodeMissingArgument},
		{name: "block position text", typ: BlockPosition, tokens: []string{"1", "x", "3"}, code: CodeTypeMismatch},
		{name: "optional position floats", typ: OptionalPosition, tokens: []string{"1.5,2,3"}, code: CodeTypeMismatch},
		{name: "negative duration", typ: Duration, tokens: []string{"-5s"}, code: CodeTypeMismatch},
		{name: "enum member", typ: "dye_color", tokens: []string{"plaid"}, code: CodeTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := r.Lookup(tt.typ)
			require.True(t, ok)
			c := token.New(tt.tokens)

			_, err := Consume(info, c)
			errutil.AssertErrorCode(t, err, tt.code)
			assert.Equal(t, 0, c.Pos())
		})
	}
}

func TestFloat_RawErrorIsNotCoded(t *testing.T) {
	_, err := Consume(floatParam{}, token.New([]string{"fast"}))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "expected")
}

func TestBuiltins_FormatRoundTrip(t *testing.T) {
	r := Default(disguise.DefaultCatalog())

	values := map[Type]any{
		Boolean:          false,
		Integer:          42,
		Float:            2.5,
		String:           "Big Bob",
		ColorType:        disguise.Color{R: 1, G: 2, B: 3},
		ItemType:         disguise.Item{Material: "bow", Amount: 2},
		EulerAngle:       disguise.EulerAngle{X: 1, Y: 2.5, Z: -3},
		BlockPosition:    disguise.Position{X: 1, Y: 2, Z: 3},
		OptionalPosition: nil,
		Duration:         90 * time.Second,
		"horse_style":    "white_dots",
	}
	for typ, v := range values {
		t.Run(string(typ), func(t *testing.T) {
			info, _ := r.Lookup(typ)
			got, err := Consume(info, token.New(info.Format(v)))
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}
