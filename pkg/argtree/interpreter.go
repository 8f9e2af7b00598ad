// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"io"
	"strconv"

	"tailscale.com/types/logger"
)

// Usage returns the children of an argument that has matched. It is only
// called for arguments reached while parsing, so a tree can be built lazily.
type Usage func(arg *Argument) []*Argument

// DefaultNeedHelp is the token that requests help when no other is set.
const DefaultNeedHelp = "?"

// Options configures an Interpreter.
type Options struct {
	// DoEverything performs every matched action and makes Run return the
	// root ID. By default only the first action is performed.
	DoEverything bool
	// IgnoreUnknown skips tokens no argument recognizes instead of failing
	// with InvalidArgument.
	IgnoreUnknown bool
	// NeedHelp is the token that aborts the run with a NeedHelp error
	// carrying the help text. DefaultNeedHelp if empty.
	NeedHelp string
	// Interactor asks for missing values of arguments that have no
	// Interactor of their own. Nil disables interactive input.
	Interactor Interactor
	// Logf receives debug output. Nil discards it.
	Logf logger.Logf
	// Printer lays out the help text.
	Printer PrinterOptions
}

// Interpreter parses command lines against an argument tree.
type Interpreter struct {
	opts Options
}

// NewInterpreter returns an Interpreter using opts.
func NewInterpreter(opts Options) *Interpreter {
	if opts.NeedHelp == "" {
		opts.NeedHelp = DefaultNeedHelp
	}
	if opts.Logf == nil {
		opts.Logf = logger.Discard
	}
	return &Interpreter{opts: opts}
}

// Run parses args, args[0] being the program name matched by root, and
// stores the parsed values in ctx. It then performs the actions of the
// matched arguments in the order they completed and returns the result of
// the first one, or of none the root ID.
//
// On error ctx keeps whatever was stored before the failure. A NeedHelp
// error is not a failure: its Help holds the text to print.
func (in *Interpreter) Run(args []string, root *Argument, usage Usage, ctx *Context) (int, error) {
	w := &walk{
		opts:  &in.opts,
		cur:   NewCursor(args),
		usage: usage,
		ctx:   ctx,
	}
	if _, err := w.parse(root); err != nil {
		return 0, err
	}
	for _, arg := range w.actions {
		in.opts.Logf("argtree: performing %s", describeArg(arg))
		r := arg.Perform(ctx)
		if !in.opts.DoEverything {
			return r, nil
		}
	}
	return root.ID, nil
}

// Print writes the help text of arg to w and returns its ID.
func (in *Interpreter) Print(w io.Writer, arg *Argument, usage Usage) int {
	return NewPrinter(w, in.opts.Printer).Print(arg, usage)
}

// walk is the state of a single Run.
type walk struct {
	opts  *Options
	cur   *Cursor
	usage Usage
	ctx   *Context

	// groups holds the children of every argument on the path from the
	// root to the one being parsed.
	groups [][]*Argument
	// actions holds matched arguments with an action, in completion order.
	actions []*Argument
}

// parse matches node against the cursor and, on success, parses its
// children until a token belongs to neither them nor an ancestor level.
func (w *walk) parse(node *Argument) (bool, error) {
	ok, err := node.Parse(w.cur, w.ctx)
	if err != nil || !ok {
		return ok, err
	}
	w.opts.Logf("argtree: matched %s", describeArg(node))

	group := children(node, w.usage)
	w.groups = append(w.groups, group)
	matched := make([]bool, len(group))

	for !w.cur.Done() {
		i, err := w.parseGroup(group)
		if err != nil {
			return false, err
		}
		if i >= 0 {
			matched[i] = true
			continue
		}

		token := w.cur.Token()
		if token == w.opts.NeedHelp {
			return false, NewError(NeedHelp).WithArgument(token).WithHelp(Help(node, w.usage, w.opts.Printer))
		}
		if len(group) == 0 {
			break
		}
		if w.knownToAncestors(token) {
			w.opts.Logf("argtree: %q deferred from %s", token, describeArg(node))
			break
		}
		if !w.opts.IgnoreUnknown {
			return false, NewError(InvalidArgument).WithArgument(token)
		}
		w.opts.Logf("argtree: skipping unknown %q", token)
		w.cur.Next()
	}

	for i, arg := range group {
		if matched[i] {
			continue
		}
		if err := arg.ProvideValue(w.opts.Interactor, w.ctx); err != nil {
			return false, err
		}
	}

	w.groups = w.groups[:len(w.groups)-1]
	if node.HasAction() {
		w.actions = append(w.actions, node)
	}
	return true, nil
}

// parseGroup parses the first argument of group matching the current token
// and returns its index, or -1 if none does.
func (w *walk) parseGroup(group []*Argument) (int, error) {
	for i, arg := range group {
		ok, err := w.parse(arg)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

// knownToAncestors reports whether an argument of an ancestor level, the
// newest first, matches token. The level being parsed is not searched.
func (w *walk) knownToAncestors(token string) bool {
	for i := len(w.groups) - 2; i >= 0; i-- {
		for _, arg := range w.groups[i] {
			if _, ok := arg.Match(token); ok {
				return true
			}
		}
	}
	return false
}

func describeArg(arg *Argument) string {
	if k := arg.LongestKey(); k != "" {
		return k
	}
	return "#" + strconv.Itoa(arg.ID)
}
