// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package token provides the cursor the disguise parser reads its arguments through.
package token

import "fmt"

// Cursor is a forward-only view over a token list.
// A Cursor is not safe for concurrent use; every parse owns its own.
type Cursor struct {
	tokens []string
	pos    int
}

// New creates a cursor positioned at the first token.
// The slice is copied so later changes by the caller are not observed.
func New(tokens []string) *Cursor {
	owned := make([]string, len(tokens))
	copy(owned, tokens)
	return &Cursor{tokens: owned}
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (string, bool) {
	if c.pos >= len(c.tokens) {
		return "", false
	}
	return c.tokens[c.pos], true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (string, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// Skip consumes n tokens. It panics if fewer than n remain.
func (c *Cursor) Skip(n int) {
	if n < 0 || n > c.Remaining() {
		panic(fmt.Sprintf("token.Cursor: cannot skip %d of %d remaining tokens", n, c.Remaining()))
	}
	c.pos += n
}

// Remaining reports how many tokens are left.
func (c *Cursor) Remaining() int {
	return len(c.tokens) - c.pos
}

// Pos returns the number of tokens consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether every token has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.tokens)
}

// Fork returns an independent cursor at the same position.
// Value parsers consume from a fork so a failed conversion leaves the
// original cursor untouched.
func (c *Cursor) Fork() *Cursor {
	return &Cursor{tokens: c.tokens, pos: c.pos}
}

// Commit advances c to the position of fork f.
// It panics if f was not forked from c or is behind c.
func (c *Cursor) Commit(f *Cursor) int {
	if len(f.tokens) != len(c.tokens) || (len(c.tokens) > 0 && &f.tokens[0] != &c.tokens[0]) {
		panic("token.Cursor: commit of a cursor over a different token list")
	}
	if f.pos < c.pos {
		panic(fmt.Sprintf("token.Cursor: commit would move backwards from %d to %d", c.pos, f.pos))
	}
	n := f.pos - c.pos
	c.pos = f.pos
	return n
}
