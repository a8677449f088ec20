// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package param

import (
	"strconv"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/token"
)

// dyeColors are the named colors accepted by the color type.
var dyeColors = map[string][3]uint8{
	"white":      {249, 255, 254},
	"orange":     {249, 128, 29},
	"magenta":    {199, 78, 189},
	"light_blue": {58, 179, 218},
	"yellow":     {254, 216, 61},
	"lime":       {128, 199, 31},
	"pink":       {243, 139, 170},
	"gray":       {71, 79, 82},
	"light_gray": {157, 157, 151},
	"cyan":       {22, 156, 156},
	"purple":     {137, 50, 184},
	"blue":       {60, 68, 170},
	"brown":      {131, 84, 50},
	"green":      {94, 124, 22},
	"red":        {176, 46, 38},
	"black":      {29, 29, 33},
}

var dyeLookup = func() map[string]string {
	m := make(map[string]string, len(dyeColors))
	for name := range dyeColors {
		m[enumKey(name)] = name
	}
	return m
}()

type colorParam struct{}

func (colorParam) Type() Type          { return ColorType }
func (colorParam) Description() string { return "color or r,g,b" }
func (colorParam) MinArgs() int        { return 1 }
func (colorParam) Nullable() bool      { return false }

func (p colorParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	if name, ok := dyeLookup[enumKey(tok)]; ok {
		rgb := dyeColors[name]
		return disguise.Color{Name: name, R: rgb[0], G: rgb[1], B: rgb[2]}, nil
	}
	t, err := parseTuple(tok)
	if err != nil {
		return nil, Mismatch(p.Description(), tok)
	}
	rgb, ok := t.ints(3)
	if !ok {
		return nil, Mismatch(p.Description(), tok)
	}
	for _, v := range rgb {
		if v < 0 || v > 255 {
			return nil, Mismatch(p.Description(), tok)
		}
	}
	return disguise.Color{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2])}, nil
}

func (colorParam) Format(v any) []string {
	col := v.(disguise.Color)
	if col.Name != "" {
		return []string{col.Name}
	}
	return []string{strconv.Itoa(int(col.R)) + "," + strconv.Itoa(int(col.G)) + "," + strconv.Itoa(int(col.B))}
}
