// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package param

import (
	"strconv"
	"strings"
	"time"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/token"
)

// Builtin type names.
const (
	Boolean          Type = "boolean"
	Integer          Type = "integer"
	Float            Type = "float"
	String           Type = "string"
	ColorType        Type = "color"
	ItemType         Type = "item"
	ArmorType        Type = "armor"
	EulerAngle       Type = "euler_angle"
	BlockPosition    Type = "block_position"
	OptionalPosition Type = "optional_position"
	Duration         Type = "duration"
)

// single reads exactly one token.
func single(c *token.Cursor, description string) (string, error) {
	tok, ok := c.Next()
	if !ok {
		return "", Missing(description)
	}
	return tok, nil
}

type boolParam struct{}

func (boolParam) Type() Type          { return Boolean }
func (boolParam) Description() string { return "true or false" }
func (boolParam) MinArgs() int        { return 0 }
func (boolParam) Nullable() bool      { return false }

// Parse consumes an explicit true or false. Anything else means true and is
// left for the next option.
func (boolParam) Parse(c *token.Cursor) (any, error) {
	tok, ok := c.Peek()
	if !ok {
		return true, nil
	}
	switch strings.ToLower(tok) {
	case "true":
		c.Skip(1)
		return true, nil
	case "false":
		c.Skip(1)
		return false, nil
	}
	return true, nil
}

func (boolParam) Format(v any) []string {
	return []string{strconv.FormatBool(v.(bool))}
}

type intParam struct{}

func (intParam) Type() Type          { return Integer }
func (intParam) Description() string { return "number" }
func (intParam) MinArgs() int        { return 1 }
func (intParam) Nullable() bool      { return false }

func (p intParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, Mismatch(p.Description(), tok)
	}
	return n, nil
}

func (intParam) Format(v any) []string {
	return []string{strconv.Itoa(v.(int))}
}

type floatParam struct{}

func (floatParam) Type() Type          { return Float }
func (floatParam) Description() string { return "number.0" }
func (floatParam) MinArgs() int        { return 1 }
func (floatParam) Nullable() bool      { return false }

// Parse returns the raw strconv error on failure; the parser reports it as a
// type mismatch.
func (p floatParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	return strconv.ParseFloat(tok, 64)
}

func (floatParam) Format(v any) []string {
	return []string{strconv.FormatFloat(v.(float64), 'f', -1, 64)}
}

type stringParam struct{}

func (stringParam) Type() Type          { return String }
func (stringParam) Description() string { return "text" }
func (stringParam) MinArgs() int        { return 1 }
func (stringParam) Nullable() bool      { return false }

func (p stringParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	return disguise.UnescapeName(tok), nil
}

func (stringParam) Format(v any) []string {
	return []string{disguise.EscapeName(v.(string))}
}

type itemParam struct {
	catalog *disguise.Catalog
}

func (itemParam) Type() Type          { return ItemType }
func (itemParam) Description() string { return "item" }
func (itemParam) MinArgs() int        { return 1 }
func (itemParam) Nullable() bool      { return false }

func (p itemParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	t, err := parseTuple(tok)
	if err != nil || len(t.Elements) != 1 {
		return nil, Mismatch(p.Description(), tok)
	}
	item, ok := resolveItem(p.catalog, t.Elements[0])
	if !ok {
		return nil, Mismatch(p.Description(), tok)
	}
	return item, nil
}

func (itemParam) Format(v any) []string {
	return []string{v.(disguise.Item).String()}
}

func resolveItem(catalog *disguise.Catalog, e *element) (disguise.Item, bool) {
	if e.isNumber() {
		return disguise.Item{}, false
	}
	material, ok := catalog.ResolveMaterial(e.Word.Name)
	if !ok {
		return disguise.Item{}, false
	}
	amount := 1
	if e.Word.Count != "" {
		n, err := strconv.Atoi(e.Word.Count)
		if err != nil || n < 1 {
			return disguise.Item{}, false
		}
		amount = n
	}
	return disguise.Item{Material: material, Amount: amount}, true
}

type armorParam struct {
	catalog *disguise.Catalog
}

func (armorParam) Type() Type          { return ArmorType }
func (armorParam) Description() string { return "helmet,chestplate,leggings,boots" }
func (armorParam) MinArgs() int        { return 1 }
func (armorParam) Nullable() bool      { return false }

func (p armorParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	t, err := parseTuple(tok)
	if err != nil || len(t.Elements) != 4 {
		return nil, Mismatch(p.Description(), tok)
	}
	var armor disguise.Armor
	for i, e := range t.Elements {
		item, ok := resolveItem(p.catalog, e)
		if !ok {
			return nil, Mismatch(p.Description(), tok)
		}
		armor[i] = item
	}
	return armor, nil
}

func (armorParam) Format(v any) []string {
	armor := v.(disguise.Armor)
	parts := make([]string, len(armor))
	for i, item := range armor {
		parts[i] = item.String()
	}
	return []string{strings.Join(parts, ",")}
}

type eulerParam struct{}

func (eulerParam) Type() Type          { return EulerAngle }
func (eulerParam) Description() string { return "x,y,z" }
func (eulerParam) MinArgs() int        { return 1 }
func (eulerParam) Nullable() bool      { return false }

func (p eulerParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	t, err := parseTuple(tok)
	if err != nil {
		return nil, Mismatch(p.Description(), tok)
	}
	f, ok := t.floats(3)
	if !ok {
		return nil, Mismatch(p.Description(), tok)
	}
	return disguise.EulerAngle{X: f[0], Y: f[1], Z: f[2]}, nil
}

func (eulerParam) Format(v any) []string {
	a := v.(disguise.EulerAngle)
	return []string{formatFloat(a.X) + "," + formatFloat(a.Y) + "," + formatFloat(a.Z)}
}

// blockPosParam reads a position spread over three tokens.
type blockPosParam struct{}

func (blockPosParam) Type() Type          { return BlockPosition }
func (blockPosParam) Description() string { return "x y z" }
func (blockPosParam) MinArgs() int        { return 3 }
func (blockPosParam) Nullable() bool      { return false }

func (p blockPosParam) Parse(c *token.Cursor) (any, error) {
	var xyz [3]int
	for i := range xyz {
		tok, err := single(c, p.Description())
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, Mismatch(p.Description(), tok)
		}
		xyz[i] = n
	}
	return disguise.Position{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func (blockPosParam) Format(v any) []string {
	pos := v.(disguise.Position)
	return []string{strconv.Itoa(pos.X), strconv.Itoa(pos.Y), strconv.Itoa(pos.Z)}
}

// optionalPosParam reads "none" or a single x,y,z token.
type optionalPosParam struct{}

func (optionalPosParam) Type() Type          { return OptionalPosition }
func (optionalPosParam) Description() string { return "x,y,z or none" }
func (optionalPosParam) MinArgs() int        { return 1 }
func (optionalPosParam) Nullable() bool      { return true }

func (p optionalPosParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(tok, "none") {
		return nil, nil
	}
	t, err := parseTuple(tok)
	if err != nil {
		return nil, Mismatch(p.Description(), tok)
	}
	xyz, ok := t.ints(3)
	if !ok {
		return nil, Mismatch(p.Description(), tok)
	}
	return &disguise.Position{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func (optionalPosParam) Format(v any) []string {
	pos, _ := v.(*disguise.Position)
	if pos == nil {
		return []string{"none"}
	}
	return []string{strconv.Itoa(pos.X) + "," + strconv.Itoa(pos.Y) + "," + strconv.Itoa(pos.Z)}
}

type durationParam struct{}

func (durationParam) Type() Type          { return Duration }
func (durationParam) Description() string { return "duration" }
func (durationParam) MinArgs() int        { return 1 }
func (durationParam) Nullable() bool      { return false }

func (p durationParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.Description())
	if err != nil {
		return nil, err
	}
	d, err := time.ParseDuration(tok)
	if err != nil || d < 0 {
		return nil, Mismatch(p.Description(), tok)
	}
	return d, nil
}

func (durationParam) Format(v any) []string {
	return []string{v.(time.Duration).String()}
}

type enumParam struct {
	typ         Type
	description string
	values      []string
	lookup      map[string]string
}

func newEnum(t Type, description string, values []string) enumParam {
	lookup := make(map[string]string, len(values))
	for _, v := range values {
		lookup[enumKey(v)] = v
	}
	return enumParam{typ: t, description: description, values: append([]string(nil), values...), lookup: lookup}
}

func enumKey(s string) string {
	return strings.ToLower(strings.NewReplacer("_", "", " ", "").Replace(s))
}

func (p enumParam) Type() Type          { return p.typ }
func (p enumParam) Description() string { return p.description }
func (enumParam) MinArgs() int          { return 1 }
func (enumParam) Nullable() bool        { return false }

// Values returns the members in declaration order.
func (p enumParam) Values() []string { return append([]string(nil), p.values...) }

func (p enumParam) Parse(c *token.Cursor) (any, error) {
	tok, err := single(c, p.description)
	if err != nil {
		return nil, err
	}
	v, ok := p.lookup[enumKey(tok)]
	if !ok {
		return nil, Mismatch(p.description, tok)
	}
	return v, nil
}

func (enumParam) Format(v any) []string {
	return []string{v.(string)}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
