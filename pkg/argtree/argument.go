// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"errors"
	"strings"
)

// Interactor asks the user for a value the command line did not provide.
// An Interactor with an Enabled() bool method is only used while it reports
// true, which lets a nil pointer stand for no Interactor.
type Interactor interface {
	// Input returns the line typed for arg. A blank line or an error ends
	// the interactive attempt.
	Input(arg *Argument) (string, error)
	// Blame reports an invalid line before Input is called again.
	Blame(err error)
}

// enabler is implemented by Interactors that can be switched off. A
// pointer implementation reports false for a nil receiver.
type enabler interface {
	Enabled() bool
}

// InteractorFuncs adapts a pair of functions to an Interactor. It is only
// enabled when both are set.
type InteractorFuncs struct {
	InputFunc func(*Argument) (string, error)
	BlameFunc func(error)
}

func (f InteractorFuncs) Input(arg *Argument) (string, error) { return f.InputFunc(arg) }
func (f InteractorFuncs) Blame(err error)                     { f.BlameFunc(err) }

func interactorEnabled(in Interactor) bool {
	switch f := in.(type) {
	case nil:
		return false
	case InteractorFuncs:
		return f.InputFunc != nil && f.BlameFunc != nil
	case *InteractorFuncs:
		return f != nil && f.InputFunc != nil && f.BlameFunc != nil
	case enabler:
		return f.Enabled()
	}
	return true
}

// Argument is a node of the argument tree. Its children are not part of it,
// they are supplied by the Usage function given to Interpreter.Run.
//
// An argument without Validator and Certain is a command or a group: it can
// match and carry an action but stores nothing.
type Argument struct {
	// ID keys the value in the Context. It must be unique among the nodes
	// on the path being parsed.
	ID int
	// Keys are the tokens that match the argument, such as "-i", "--int" or
	// "call". An argument without keys is hidden and only gets a value from
	// its default or interactively.
	Keys        []string
	Description string

	// Validator turns the raw token following a key into a value.
	Validator *Validator
	// Certain is stored when the argument matches. Used when Validator is
	// nil; a pointer to none makes a plain flag.
	Certain *Value
	// Default is stored when the argument is absent. Strings go through the
	// Validator like command line input.
	Default *Value

	Required bool
	// Multiple collects every occurrence into an array.
	Multiple bool
	// Unique rejects repeated values of a Multiple argument.
	Unique   bool
	Disabled bool
	Hidden   bool

	// Action is run after a successful parse. EasyAction is used when
	// Action is nil.
	Action     func(arg *Argument, ctx *Context) int
	EasyAction func() int

	// Interactor overrides the interpreter wide one for this argument.
	Interactor Interactor
}

// WithValidator sets the validator and drops any certain value.
func (a *Argument) WithValidator(v *Validator) *Argument {
	a.Validator = v
	a.Certain = nil
	return a
}

// WithCertain sets the certain value and drops any validator.
func (a *Argument) WithCertain(v Value) *Argument {
	a.Certain = &v
	a.Validator = nil
	return a
}

// WithDefault sets the default value.
func (a *Argument) WithDefault(v Value) *Argument {
	a.Default = &v
	return a
}

// KeysString returns the keys joined for display: "-i, --int".
func (a *Argument) KeysString() string {
	return strings.Join(a.Keys, ", ")
}

// LongestKey returns the longest key, the first one on ties.
func (a *Argument) LongestKey() string {
	var longest string
	for _, k := range a.Keys {
		if len(k) > len(longest) {
			longest = k
		}
	}
	return longest
}

// IsHidden reports whether the argument is left out of help output.
func (a *Argument) IsHidden() bool {
	return a.Hidden || a.Disabled || len(a.Keys) == 0
}

// IsValuable reports whether the argument ends up with a value in the
// Context: it has a Validator, a Default or a Certain value.
func (a *Argument) IsValuable() bool {
	return a.Validator != nil || a.Default != nil || a.Certain != nil
}

// NeedsValue reports whether a matched key must be followed by a value.
func (a *Argument) NeedsValue() bool {
	return a.Validator != nil
}

func (a *Argument) HasAction() bool  { return a.Action != nil || a.EasyAction != nil }
func (a *Argument) HasDefault() bool { return a.Default != nil }

// IsInteractive reports whether the argument has its own Interactor.
func (a *Argument) IsInteractive() bool { return interactorEnabled(a.Interactor) }

// DefaultValue returns the default value as configured, none if unset.
func (a *Argument) DefaultValue() Value {
	if a.Default == nil {
		return Value{}
	}
	return *a.Default
}

// ValidatedDefault returns the default value as it would be stored.
func (a *Argument) ValidatedDefault() (Value, error) {
	def := a.DefaultValue()
	if !def.IsString() || a.Validator == nil {
		return def, nil
	}
	return a.validate(def.String())
}

// Validation returns the value hint shown after the keys in help output.
func (a *Argument) Validation() string {
	if !a.NeedsValue() {
		return ""
	}
	return a.Validator.Describe(a.DefaultValue())
}

// Instruction renders the argument for a usage line: "-i, --int <number>"
// when required, bracketed when an optional value, with "..." when Multiple.
func (a *Argument) Instruction() string {
	s := a.KeysString() + a.Validation()
	if a.IsValuable() && !a.Required {
		s = "[" + s + "]"
	}
	if a.Multiple {
		s += "..."
	}
	return s
}

// match compares token against the keys. For "key=value" tokens it returns
// the value and assigned set, otherwise the token itself.
func (a *Argument) match(token string) (rest string, assigned, ok bool) {
	key, value, assigned := strings.Cut(token, "=")
	for _, k := range a.Keys {
		if k == key {
			if assigned {
				return value, true, true
			}
			return token, false, true
		}
	}
	return "", false, false
}

// Match reports whether token matches one of the keys and returns the
// assigned value for "key=value" tokens, the token otherwise. Disabled
// arguments still match here; Parse is what refuses them.
func (a *Argument) Match(token string) (string, bool) {
	rest, _, ok := a.match(token)
	return rest, ok
}

// Parse tries to match the current token of cur and on success consumes it,
// along with the following token when that holds the value. The first
// token of a run, the program name, is consumed without matching.
//
// A value that fails validation is reported after the tokens are consumed.
func (a *Argument) Parse(cur *Cursor, ctx *Context) (bool, error) {
	if cur.AtStart() {
		cur.Next()
		return true, nil
	}
	if cur.Done() || a.Disabled {
		return false, nil
	}
	token := cur.Token()
	rest, assigned, ok := a.match(token)
	if !ok {
		return false, nil
	}
	cur.Next()
	if !a.IsValuable() {
		return true, nil
	}
	if !a.NeedsValue() {
		// Without a validator the key alone is the value: the certain
		// one, none otherwise.
		var v Value
		if a.Certain != nil {
			v = *a.Certain
		}
		return true, a.store(v, ctx)
	}
	raw := rest
	if !assigned {
		if cur.Done() {
			return true, NewError(NeedValue).WithArgument(token).WithHelp(a.Validation())
		}
		raw = cur.Token()
		cur.Next()
	}
	v, err := a.validate(raw)
	if err != nil {
		return true, err
	}
	return true, a.store(v, ctx)
}

// validate runs raw through the validator and names the argument in the
// resulting error.
func (a *Argument) validate(raw string) (Value, error) {
	v, err := a.Validator.Process(raw)
	if err == nil {
		return v, nil
	}
	var e *Error
	if errors.As(err, &e) {
		if !e.HasArgument() {
			e.WithArgument(a.LongestKey())
		}
		return Value{}, e
	}
	return Value{}, NewError(InvalidValue).WithArgument(a.LongestKey()).WithValue(raw).WithHelp(err.Error()).wrap(err)
}

func (a *Argument) store(v Value, ctx *Context) error {
	cur, ok := ctx.Lookup(a.ID)
	if a.Multiple {
		if ok && a.Unique {
			if dup, _ := cur.Contains(v); dup {
				return NewError(DuplicateValue).WithArgument(a.LongestKey()).WithValue(v.String())
			}
		}
		if !ok {
			cur = Array()
		}
		cur.Append(v)
		ctx.Set(a.ID, cur)
		return nil
	}
	if ok {
		return NewError(Multiple).WithArgument(a.LongestKey())
	}
	ctx.Set(a.ID, v)
	return nil
}

// ProvideValue fills in a value for an argument that did not match: asked
// interactively, taken from the default, or reported as missing when
// required. in is used when the argument has no Interactor of its own.
func (a *Argument) ProvideValue(in Interactor, ctx *Context) error {
	if !a.IsValuable() || ctx.Has(a.ID) {
		return nil
	}
	if a.IsInteractive() {
		in = a.Interactor
	}
	if a.NeedsValue() && interactorEnabled(in) && !a.IsHidden() {
		for {
			line, err := in.Input(a)
			if err != nil || strings.TrimSpace(line) == "" {
				break
			}
			v, err := a.validate(line)
			if err != nil {
				in.Blame(err)
				continue
			}
			return a.store(v, ctx)
		}
	}
	if a.HasDefault() {
		v, err := a.ValidatedDefault()
		if err != nil {
			return err
		}
		return a.store(v, ctx)
	}
	if a.Required && !a.Disabled {
		return NewError(RequireArgument).WithArgument(a.KeysString())
	}
	return nil
}

// Perform runs the action and returns its result, the ID when there is none.
func (a *Argument) Perform(ctx *Context) int {
	switch {
	case a.Action != nil:
		return a.Action(a, ctx)
	case a.EasyAction != nil:
		return a.EasyAction()
	}
	return a.ID
}
