// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"errors"
	"strings"
)

// Code identifies the kind of an Error.
type Code int

const (
	CodeNone Code = iota
	RequireArgument
	InvalidArgument
	InvalidValue
	InvalidRule
	InvalidStart
	InvalidEnd
	EmptyValue
	DuplicateChar
	DuplicateValue
	RepetitiveChar
	WrongType
	NeedValue
	NeedHelp
	Multiple
	TooFew
	TooMany
	TooShort
	TooLong
	TooSmall
	TooLarge
)

var codePhrases = [...]string{
	CodeNone:        "no error",
	RequireArgument: "require argument",
	InvalidArgument: "invalid argument",
	InvalidValue:    "invalid value",
	InvalidRule:     "invalid rule",
	InvalidStart:    "invalid start",
	InvalidEnd:      "invalid end",
	EmptyValue:      "empty value",
	DuplicateChar:   "duplicate char",
	DuplicateValue:  "duplicate value",
	RepetitiveChar:  "repetitive char",
	WrongType:       "wrong type",
	NeedValue:       "need value",
	NeedHelp:        "need help",
	Multiple:        "multiple",
	TooFew:          "too few",
	TooMany:         "too many",
	TooShort:        "too short",
	TooLong:         "too long",
	TooSmall:        "too small",
	TooLarge:        "too large",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codePhrases) {
		return "unknown"
	}
	return codePhrases[c]
}

// Error is returned by every failing operation of the package. Besides its
// code it optionally names the argument involved, the offending raw value and
// a help string (accepted variants, a bound, or rendered usage for NeedHelp).
//
// Errors are enriched while they travel up: validators do not know which
// argument they belong to, so the argument name is attached at the point the
// value parse fails.
type Error struct {
	code     Code
	argument string
	value    string
	help     string
	err      error
}

// NewError returns an Error with the given code and no context.
func NewError(code Code) *Error {
	return &Error{code: code}
}

// WithArgument sets the argument name and returns e.
func (e *Error) WithArgument(argument string) *Error {
	e.argument = argument
	return e
}

// WithValue sets the offending value and returns e.
func (e *Error) WithValue(value string) *Error {
	e.value = value
	return e
}

// WithHelp sets the help text and returns e.
func (e *Error) WithHelp(help string) *Error {
	e.help = help
	return e
}

func (e *Error) wrap(err error) *Error {
	e.err = err
	return e
}

// Code returns the error code.
func (e *Error) Code() Code { return e.code }

// Argument returns the name of the argument involved, if any.
func (e *Error) Argument() string { return e.argument }

// Value returns the offending raw value, if any.
func (e *Error) Value() string { return e.value }

// Help returns the help text, if any.
func (e *Error) Help() string { return e.help }

func (e *Error) HasArgument() bool { return e.argument != "" }
func (e *Error) HasValue() bool    { return e.value != "" }
func (e *Error) HasHelp() bool     { return e.help != "" }

// Unwrap returns the foreign error a custom check failed with, if any.
func (e *Error) Unwrap() error { return e.err }

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.code.String())
	if e.argument != "" {
		b.WriteString(": ")
		b.WriteString(e.argument)
	}
	if e.value != "" {
		b.WriteString(" '")
		b.WriteString(e.value)
		b.WriteString("'")
	}
	if e.help != "" && e.code != NeedHelp {
		b.WriteString(" {")
		b.WriteString(e.help)
		b.WriteString("}")
	}
	return b.String()
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, NewError(TooSmall)) works regardless of the context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// CodeOf returns the code of the first *Error in err's chain, or CodeNone.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeNone
}

// IsNeedHelp reports whether err is the help request signal. Callers should
// print the carried help text and exit cleanly instead of reporting a failure.
func IsNeedHelp(err error) bool {
	return CodeOf(err) == NeedHelp
}

func wrongType(got Kind, want ...Kind) *Error {
	names := make([]string, len(want))
	for i, k := range want {
		names[i] = k.typeName()
	}
	return NewError(WrongType).WithValue(got.typeName()).WithHelp(strings.Join(names, ", "))
}
