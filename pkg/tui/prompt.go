// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/yeetrun/argtree/pkg/argtree"
)

// Prompter asks for argument values on the console. It implements
// argtree.Interactor.
type Prompter struct {
	out   io.Writer
	color Colorizer
	read  func(prompt string) (string, error)
	ln    *liner.State
}

// NewPrompter returns a Prompter with line editing and history. The caller
// must Close it to restore the terminal.
func NewPrompter(out io.Writer, c Colorizer) *Prompter {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return &Prompter{out: out, color: c, read: ln.Prompt, ln: ln}
}

// NewLinePrompter returns a Prompter that writes prompts to out and reads
// whole lines from r, for input that is not a terminal.
func NewLinePrompter(r io.Reader, out io.Writer, c Colorizer) *Prompter {
	br := bufio.NewReader(r)
	return &Prompter{
		out:   out,
		color: c,
		read: func(prompt string) (string, error) {
			fmt.Fprint(out, prompt)
			line, err := br.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				return "", err
			}
			return strings.TrimRight(line, "\r\n"), nil
		},
	}
}

// Enabled reports whether p can be asked, false for a nil Prompter.
func (p *Prompter) Enabled() bool { return p != nil }

// Close releases the terminal.
func (p *Prompter) Close() error {
	if p == nil || p.ln == nil {
		return nil
	}
	return p.ln.Close()
}

// Input shows the description and value hint of arg and reads a line. An
// aborted prompt or end of input is returned as an error.
func (p *Prompter) Input(arg *argtree.Argument) (string, error) {
	line, err := p.read(PromptFor(arg))
	if err != nil {
		return "", err
	}
	if p.ln != nil && strings.TrimSpace(line) != "" {
		p.ln.AppendHistory(line)
	}
	return line, nil
}

// Blame reports a rejected value before the next attempt.
func (p *Prompter) Blame(err error) {
	fmt.Fprintln(p.out, p.color.Wrap(ColorRed, fmt.Sprintf("Error: %v. Try again!", err)))
}

// PromptFor returns the prompt used for arg: "Integer value <number>: ".
func PromptFor(arg *argtree.Argument) string {
	return arg.Description + arg.Validation() + ": "
}
