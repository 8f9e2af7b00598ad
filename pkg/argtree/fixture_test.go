// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"strings"
	"testing"
)

const (
	idApp = iota
	idFlag
	idHelp
	idCall
	idBool
	idInteger
	idReal
	idString
	idArray
	idPair
	idPairFirst
	idPairSecond
	idHidden
	idNameless
)

// scriptedInput answers Input with the queued lines, then with blank lines.
type scriptedInput struct {
	lines  []string
	asked  []string
	blamed []error
}

func (s *scriptedInput) Input(arg *Argument) (string, error) {
	s.asked = append(s.asked, arg.LongestKey())
	if len(s.lines) == 0 {
		return "", nil
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// Enabled lets a nil *scriptedInput stand for no input.
func (s *scriptedInput) Enabled() bool { return s != nil }

func (s *scriptedInput) Blame(err error) {
	s.blamed = append(s.blamed, err)
}

// testTree builds the demo tree:
//
//	app
//	   -f, --flag
//	   -h, --help, help
//	   --call, call
//	      -b, --bool, -i, --int, -r, --real, -s, --string, -a, --array
//	      -p, --pair
//	         -1st, --first, -2nd, --second
//	      -h, --hidden, and one argument without keys
func testTree(in Interactor) (*Argument, Usage) {
	root := &Argument{ID: idApp, Keys: []string{"app"}, Description: "Test application"}
	flag := (&Argument{ID: idFlag, Keys: []string{"-f", "--flag"}, Description: "Flag without value"}).WithCertain(Value{})
	help := &Argument{ID: idHelp, Keys: []string{"-h", "--help", "help"}, Description: "Print help", EasyAction: func() int { return idHelp }}
	call := &Argument{
		ID:          idCall,
		Keys:        []string{"--call", "call"},
		Description: "Call the command",
		Action:      func(a *Argument, _ *Context) int { return a.ID },
	}

	boolean := (&Argument{ID: idBool, Keys: []string{"-b", "--bool"}, Description: "Boolean value", Required: true}).
		WithValidator(NewValidator().Boolean().LowerCase().Glossary(
			Term{Text: Str("y"), Substitute: Bool(true)},
			Term{Text: Str("n"), Substitute: Bool(false)},
		)).
		WithDefault(Str("y"))
	integer := (&Argument{ID: idInteger, Keys: []string{"-i", "--int"}, Description: "Integer value", Required: true}).
		WithValidator(NewValidator().Integer().Min(Int(1)).Max(Int(100)))
	reals := (&Argument{ID: idReal, Keys: []string{"-r", "--real"}, Description: "Real value"}).
		WithValidator(NewValidator().Real().Min(Int(-30)).Max(Int(30))).
		WithDefault(Real(1.23))
	str := (&Argument{ID: idString, Keys: []string{"-s", "--string"}, Description: "String value", Interactor: in}).
		WithValidator(NewValidator().String().Min(Int(1)).Max(Int(16))).
		WithDefault(Str("str"))
	array := (&Argument{ID: idArray, Keys: []string{"-a", "--array"}, Description: "Array of values", Multiple: true, Unique: true}).
		WithValidator(NewValidator().NonEmpty())
	pair := (&Argument{ID: idPair, Keys: []string{"-p", "--pair"}, Description: "Pair of values\nwith its own arguments"}).
		WithValidator(NewValidator().String("name")).
		WithDefault(Str("pair"))
	first := (&Argument{ID: idPairFirst, Keys: []string{"-1st", "--first"}, Description: "First value"}).
		WithValidator(NewValidator().String()).
		WithDefault(Str("first"))
	second := (&Argument{ID: idPairSecond, Keys: []string{"-2nd", "--second"}, Description: "Second value"}).
		WithValidator(NewValidator().String()).
		WithDefault(Str("second"))
	hidden := (&Argument{ID: idHidden, Keys: []string{"-h", "--hidden"}, Description: "Hidden argument", Hidden: true}).
		WithValidator(NewValidator().Prefix("<tag>").Suffix("</tag>").Trim())
	nameless := (&Argument{ID: idNameless, Description: "Argument without keys"}).
		WithDefault(Str("Nameless argument"))

	usage := func(a *Argument) []*Argument {
		switch a.ID {
		case idApp:
			return []*Argument{flag, help, call}
		case idCall:
			return []*Argument{boolean, integer, reals, str, array, pair, hidden, nameless}
		case idPair:
			return []*Argument{first, second}
		}
		return nil
	}
	return root, usage
}

// runTree parses args against the demo tree. A single argument is split
// on spaces.
func runTree(t *testing.T, opts Options, in Interactor, args ...string) (int, *Context, error) {
	t.Helper()
	if in == nil {
		in = &scriptedInput{}
	}
	root, usage := testTree(in)
	ctx := NewContext()
	if len(args) == 1 {
		args = strings.Fields(args[0])
	}
	res, err := NewInterpreter(opts).Run(args, root, usage, ctx)
	return res, ctx, err
}

func wantCode(t *testing.T, err error, want Code) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("err = nil, want %v", want)
	}
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T (%v), want *Error", err, err)
	}
	if e.Code() != want {
		t.Fatalf("code = %v, want %v (%v)", e.Code(), want, err)
	}
	return e
}
