// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package disguise

import (
	"fmt"
	"strconv"
)

// Item is a material with a stack size.
type Item struct {
	Material string
	Amount   int
}

func (i Item) String() string {
	if i.Amount <= 1 {
		return i.Material
	}
	return i.Material + ":" + strconv.Itoa(i.Amount)
}

// Armor holds helmet, chestplate, leggings and boots, in that order.
type Armor [4]Item

// Color is an RGB color, optionally known by a dye name.
type Color struct {
	Name    string
	R, G, B uint8
}

func (c Color) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// EulerAngle is a rotation in degrees around each axis.
type EulerAngle struct {
	X, Y, Z float64
}

// Position is a block position.
type Position struct {
	X, Y, Z int
}

// cloneValue copies a property value so that the copy shares no mutable state.
func cloneValue(v any) any {
	switch val := v.(type) {
	case *Position:
		if val == nil {
			return val
		}
		cp := *val
		return &cp
	case []Item:
		return append([]Item(nil), val...)
	case []string:
		return append([]string(nil), val...)
	default:
		// everything else stored by the registry is a value type
		return v
	}
}
