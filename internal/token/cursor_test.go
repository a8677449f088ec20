// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_NextAndPeek(t *testing.T) {
	c := New([]string{"cow", "baby"})

	tok, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, "cow", tok)
	assert.Equal(t, 0, c.Pos())

	tok, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, "cow", tok)
	assert.Equal(t, 1, c.Pos())
	assert.Equal(t, 1, c.Remaining())

	_, _ = c.Next()
	assert.True(t, c.Done())

	_, ok = c.Next()
	assert.False(t, ok)
	assert.Equal(t, 2, c.Pos())
}

func TestCursor_CopiesInput(t *testing.T) {
	input := []string{"cow"}
	c := New(input)
	input[0] = "pig"

	tok, _ := c.Peek()
	assert.Equal(t, "cow", tok)
}

func TestCursor_PeekDoesNotConsume(t *testing.T) {
	c := New([]string{"a", "b", "c"})
	c.Skip(1)

	tok, ok := c.Peek()
	assert.True(t, ok)
	assert.Equal(t, "b", tok)
	assert.Equal(t, 1, c.Pos(), "peeking must not consume")
	assert.Equal(t, 2, c.Remaining())
}

func TestCursor_ForkAndCommit(t *testing.T) {
	c := New([]string{"1", "2", "3", "4"})
	c.Skip(1)

	f := c.Fork()
	f.Skip(2)
	assert.Equal(t, 1, c.Pos(), "fork must not move parent")

	n := c.Commit(f)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, c.Pos())
}

func TestCursor_CommitBackwardsPanics(t *testing.T) {
	c := New([]string{"1", "2"})
	f := c.Fork()
	c.Skip(2)

	assert.Panics(t, func() { c.Commit(f) })
}

func TestCursor_CommitForeignPanics(t *testing.T) {
	c := New([]string{"1", "2"})
	other := New([]string{"1", "2"})

	assert.Panics(t, func() { c.Commit(other) })
}

func TestCursor_SkipPastEndPanics(t *testing.T) {
	c := New([]string{"1"})
	assert.Panics(t, func() { c.Skip(2) })
}
