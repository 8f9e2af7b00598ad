// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

// Cursor is a forward-only position over a token sequence.
type Cursor struct {
	tokens []string
	pos    int
}

// NewCursor returns a Cursor at the first of tokens. The slice is not copied
// and must not be modified while the cursor is in use.
func NewCursor(tokens []string) *Cursor {
	return &Cursor{tokens: tokens}
}

// Pos returns the index of the current token.
func (c *Cursor) Pos() int { return c.pos }

// AtStart reports whether no token has been consumed yet.
func (c *Cursor) AtStart() bool { return c.pos == 0 }

// Done reports whether all tokens have been consumed.
func (c *Cursor) Done() bool { return c.pos >= len(c.tokens) }

// Token returns the current token, or "" when done.
func (c *Cursor) Token() string {
	if c.Done() {
		return ""
	}
	return c.tokens[c.pos]
}

// Next consumes the current token.
func (c *Cursor) Next() {
	if !c.Done() {
		c.pos++
	}
}

// Remaining returns the number of tokens not yet consumed.
func (c *Cursor) Remaining() int { return len(c.tokens) - c.pos }
