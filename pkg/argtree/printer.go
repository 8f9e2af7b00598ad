// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// PrinterOptions controls the layout of help output. Zero numeric fields
// take their defaults.
type PrinterOptions struct {
	// Recursively prints the whole subtree instead of one level.
	Recursively bool
	// ShowHidden includes hidden and disabled arguments.
	ShowHidden bool
	// Indentation per level, 3 by default.
	Indentation int
	// Width of the instruction column, 48 by default.
	Width int
	// Divider precedes each description line, '#' by default.
	Divider rune
}

func (o PrinterOptions) withDefaults() PrinterOptions {
	if o.Indentation <= 0 {
		o.Indentation = 3
	}
	if o.Width <= 0 {
		o.Width = 48
	}
	if o.Divider == 0 {
		o.Divider = '#'
	}
	return o
}

// Printer renders an argument tree as help text: one line per argument
// with its keys and value hint, and the description in a second column.
type Printer struct {
	w    *bufio.Writer
	opts PrinterOptions
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, opts PrinterOptions) *Printer {
	return &Printer{w: bufio.NewWriter(w), opts: opts.withDefaults()}
}

// Print writes arg and its children as supplied by usage, and returns the
// ID of arg. When arg itself is hidden its children are still printed, one
// level up.
func (p *Printer) Print(arg *Argument, usage Usage) int {
	defer p.w.Flush()
	if p.visible(arg) {
		p.tree(arg, usage, 0)
	} else {
		for _, child := range children(arg, usage) {
			p.subtree(child, usage, 0)
		}
	}
	return arg.ID
}

func (p *Printer) visible(arg *Argument) bool {
	return p.opts.ShowHidden || !arg.IsHidden()
}

func (p *Printer) tree(arg *Argument, usage Usage, margin int) {
	p.line(arg, margin)
	for _, child := range children(arg, usage) {
		p.subtree(child, usage, margin+p.opts.Indentation)
	}
}

func (p *Printer) subtree(arg *Argument, usage Usage, margin int) {
	if !p.visible(arg) {
		return
	}
	if p.opts.Recursively {
		p.tree(arg, usage, margin)
		return
	}
	p.line(arg, margin)
}

func (p *Printer) line(arg *Argument, margin int) {
	instruction := arg.Instruction()
	p.w.WriteString(strings.Repeat(" ", margin))
	p.w.WriteString(instruction)
	if arg.Description == "" {
		p.w.WriteByte('\n')
		return
	}
	indent := p.opts.Width - utf8.RuneCountInString(instruction)
	if indent <= 0 {
		p.w.WriteByte('\n')
		indent = margin + p.opts.Width
	}
	for _, text := range strings.Split(arg.Description, "\n") {
		if text != "" {
			p.w.WriteString(strings.Repeat(" ", indent))
			p.w.WriteRune(p.opts.Divider)
			p.w.WriteByte(' ')
			p.w.WriteString(text)
		}
		p.w.WriteByte('\n')
		indent = margin + p.opts.Width
	}
}

func children(arg *Argument, usage Usage) []*Argument {
	if usage == nil {
		return nil
	}
	return usage(arg)
}

// Help renders the whole subtree of arg as help text.
func Help(arg *Argument, usage Usage, opts PrinterOptions) string {
	var b strings.Builder
	opts.Recursively = true
	NewPrinter(&b, opts).Print(arg, usage)
	return b.String()
}
