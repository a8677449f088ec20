// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package param

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// tupleLexer splits compound values such as "1.5,0,-2" or "iron_sword:3".
// Float must precede Int so "1.5" is not read as "1" followed by garbage.
var tupleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `[-+]?\d*\.\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[,:]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// tuple is a comma separated list of elements.
//
// Grammar: element ( "," element )*
type tuple struct {
	Elements []*element `parser:"@@ ( ',' @@ )*"`
}

// element is a number or a word.
type element struct {
	Number string `parser:"  @(Float | Int)"`
	Word   *word  `parser:"| @@"`
}

// word is an identifier with an optional ":count" suffix.
type word struct {
	Name  string `parser:"@Ident"`
	Count string `parser:"( ':' @Int )?"`
}

var tupleParser *participle.Parser[tuple]

func init() {
	var err error
	tupleParser, err = participle.Build[tuple](
		participle.Lexer(tupleLexer),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build tuple parser: %v", err))
	}
}

func parseTuple(s string) (*tuple, error) {
	return tupleParser.ParseString("", s)
}

func (e *element) isNumber() bool { return e.Word == nil }

func (t *tuple) ints(n int) ([]int, bool) {
	if len(t.Elements) != n {
		return nil, false
	}
	out := make([]int, n)
	for i, e := range t.Elements {
		v, err := strconv.Atoi(e.Number)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func (t *tuple) floats(n int) ([]float64, bool) {
	if len(t.Elements) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, e := range t.Elements {
		if !e.isNumber() {
			return nil, false
		}
		v, err := strconv.ParseFloat(e.Number, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
