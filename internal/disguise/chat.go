// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package disguise

import (
	"strings"
	"unicode"
)

// ColorMarker introduces a formatting code in displayed names.
const ColorMarker = '§'

const colorCodes = "0123456789abcdefklmnorx"

// TranslateColorCodes replaces alt followed by a formatting code with the
// color marker, lowercasing the code.
func TranslateColorCodes(alt rune, s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] != alt {
			continue
		}
		code := unicode.ToLower(runes[i+1])
		if strings.ContainsRune(colorCodes, code) {
			runes[i] = ColorMarker
			runes[i+1] = code
		}
	}
	return string(runes)
}

// UntranslateColorCodes reverses TranslateColorCodes.
func UntranslateColorCodes(alt rune, s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == ColorMarker && strings.ContainsRune(colorCodes, runes[i+1]) {
			runes[i] = alt
		}
	}
	return string(runes)
}

// UnescapeName turns the escaped separator `\_` into a space.
func UnescapeName(s string) string {
	return strings.ReplaceAll(s, `\_`, " ")
}

// EscapeName turns spaces into the escaped separator so a name fits in one token.
func EscapeName(s string) string {
	return strings.ReplaceAll(s, " ", `\_`)
}
