// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidatorAmend(t *testing.T) {
	tests := []struct {
		name string
		v    *Validator
		in   string
		want string
	}{
		{"trim default", NewValidator().Trim(), " \t text \n", "text"},
		{"trim chars", NewValidator().Trim("-_"), "-_x-y_-", "x-y"},
		{"prefix added", NewValidator().Prefix("pre"), "fix", "prefix"},
		{"prefix kept", NewValidator().Prefix("pre"), "prefix", "prefix"},
		{"suffix", NewValidator().Suffix(".go"), "main", "main.go"},
		{"trim before prefix", NewValidator().Prefix("<").Suffix(">").Trim(), "  a  ", "<a>"},
		{"lower", NewValidator().LowerCase(), "MiXeD", "mixed"},
		{"upper", NewValidator().UpperCase(), "straße", "STRASSE"},
		{"case last", NewValidator().LowerCase().Prefix("ID-"), "x", "id-x"},
		{"upper replaces lower", NewValidator().LowerCase().UpperCase(), "ab", "AB"},
		{"empty untouched", NewValidator().Prefix("p").Suffix("s"), "", ""},
		{"nil", nil, " x ", " x "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Amend(tt.in); got != tt.want {
				t.Fatalf("Amend(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidatorValidate(t *testing.T) {
	tests := []struct {
		name string
		v    *Validator
		in   string
		code Code
		help string
	}{
		{"nonempty", NewValidator().NonEmpty().Pattern(`\d+`), "", EmptyValue, ""},
		{"min number", NewValidator().Integer().Min(Int(5)), "4", TooSmall, "5"},
		{"max number", NewValidator().Integer().Max(Int(5)), "6", TooLarge, "5"},
		{"number in range", NewValidator().Integer().Min(Int(1)).Max(Int(10)), "10", CodeNone, ""},
		{"real against integer bound", NewValidator().Real().Max(Int(1)), "1.5", TooLarge, "1"},
		{"not a number", NewValidator().Integer().Min(Int(1)), "abc", InvalidValue, ""},
		{"min length", NewValidator().Min(Int(3)), "ab", TooShort, "3"},
		{"max length", NewValidator().String().Max(Int(3)), "abcd", TooLong, "3"},
		{"length in runes", NewValidator().Max(Int(3)), "äöü", CodeNone, ""},
		{"pattern", NewValidator().Pattern(`\w+`), "word", CodeNone, ""},
		{"pattern full match", NewValidator().Pattern(`\w+`), "two words", InvalidValue, `\w+`},
		{"pattern alternation anchored", NewValidator().Pattern(`a|b`), "ab", InvalidValue, "a|b"},
		{"bad pattern", NewValidator().Pattern(`(`), "x", InvalidRule, ""},
		{"duplicates", NewValidator().NoDuplicatesOf("@|"), "a@b@c", DuplicateChar, "@"},
		{"no duplicates", NewValidator().NoDuplicatesOf("@|"), "a@b|c", CodeNone, ""},
		{"repeats", NewValidator().NoRepeatsOf(".,"), "a..b", RepetitiveChar, "."},
		{"repeats apart", NewValidator().NoRepeatsOf(".,"), "a.b.c", CodeNone, ""},
		{"repeat of other char", NewValidator().NoRepeatsOf("."), "aab", CodeNone, ""},
		{"start", NewValidator().CannotStartWith("-"), "-x", InvalidStart, "-"},
		{"end", NewValidator().CannotEndWith("/"), "x/", InvalidEnd, "/"},
		{"start end ok", NewValidator().CannotStartEndWith("."), "a.b", CodeNone, ""},
		{"start end empty", NewValidator().CannotStartEndWith("."), "", CodeNone, ""},
		{"glossary", NewValidator().OneOf(Str("one"), Str("two")), "three", InvalidValue, "one, two"},
		{"glossary numeric", NewValidator().OneOf(Int(1), Int(2)), "2", CodeNone, ""},
		{"nil", nil, "anything", CodeNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate(tt.in)
			if got := CodeOf(err); got != tt.code {
				t.Fatalf("Validate(%q) = %v, want code %v", tt.in, err, tt.code)
			}
			if tt.help == "" {
				return
			}
			var e *Error
			if !errors.As(err, &e) || e.Help() != tt.help {
				t.Fatalf("Validate(%q) = %v, want help %q", tt.in, err, tt.help)
			}
		})
	}
}

func TestValidatorCheck(t *testing.T) {
	errBad := errors.New("bad")
	v := NewValidator().Check(func(s string) error {
		if s == "bad" {
			return errBad
		}
		return nil
	})
	if err := v.Validate("good"); err != nil {
		t.Fatalf("Validate(good) = %v", err)
	}
	if err := v.Validate("bad"); !errors.Is(err, errBad) {
		t.Fatalf("Validate(bad) = %v, want %v", err, errBad)
	}
}

func TestValidatorApply(t *testing.T) {
	tests := []struct {
		name string
		v    *Validator
		in   string
		want Value
	}{
		{"plain", NewValidator(), "x", Str("x")},
		{"integer", NewValidator().Integer(), "42", Int(42)},
		{"real", NewValidator().Real(), "0.25", Real(0.25)},
		{"boolean", NewValidator().Boolean(), "on", Bool(true)},
		{"glossary substitute", NewValidator().Glossary(Term{Text: Str("one"), Substitute: Int(1)}), "one", Int(1)},
		{"glossary term", NewValidator().OneOf(Str("a"), Str("b")), "b", Str("b")},
		{"glossary then type", NewValidator().Glossary(Term{Text: Str("half"), Substitute: Str("0.5")}).Real(), "half", Real(0.5)},
		{"numeric term", NewValidator().OneOf(Int(7)), "7", Int(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Apply(tt.in)
			if err != nil {
				t.Fatalf("Apply(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Apply(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestValidatorProcess(t *testing.T) {
	v := NewValidator().Boolean().LowerCase().Glossary(
		Term{Text: Str("y"), Substitute: Bool(true)},
		Term{Text: Str("n"), Substitute: Bool(false)},
	)
	got, err := v.Process("N")
	if err != nil || !got.Equal(Bool(false)) {
		t.Fatalf("Process(N) = %v, %v; want false", got, err)
	}
	if _, err := v.Process("yes"); CodeOf(err) != InvalidValue {
		t.Fatalf("Process(yes) = %v, want InvalidValue", err)
	}
}

func TestValidatorBooleanKeepsGlossary(t *testing.T) {
	v := NewValidator().OneOf(Str("on")).Boolean()
	if got := len(v.Terms()); got != 1 {
		t.Fatalf("len(Terms) = %d, want 1", got)
	}
	if got := len(NewValidator().Boolean().Terms()); got != len(BoolStrings()) {
		t.Fatalf("len(Terms) = %d, want %d", got, len(BoolStrings()))
	}
}

func TestValidatorMerge(t *testing.T) {
	checked := 0
	base := NewValidator().Integer().Min(Int(0)).Max(Int(10)).LowerCase().Check(func(string) error {
		checked++
		return nil
	})
	over := NewValidator().Max(Int(20)).UpperCase()

	v := base.Clone().Merge(over)
	if got, _ := v.Get(RuleMax); !got.Equal(Int(20)) {
		t.Errorf("max = %v, want 20", got)
	}
	if got, _ := v.Get(RuleMin); !got.Equal(Int(0)) {
		t.Errorf("min = %v, want 0", got)
	}
	if v.Has(RuleLowerCase) || !v.Has(RuleUpperCase) {
		t.Errorf("case rules = %v, want upper only", v.Rules())
	}
	if got, _ := base.Get(RuleMax); !got.Equal(Int(10)) {
		t.Errorf("base max changed to %v", got)
	}
	if err := v.Validate("15"); err != nil {
		t.Errorf("Validate(15) = %v", err)
	}
	if checked != 1 {
		t.Errorf("custom check ran %d times, want 1", checked)
	}

	want := []Rule{RuleType, RuleMin, RuleMax, RuleUpperCase}
	if diff := cmp.Diff(want, v.Rules()); diff != "" {
		t.Errorf("Rules mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatorDescribe(t *testing.T) {
	tests := []struct {
		name string
		v    *Validator
		def  Value
		want string
	}{
		{"number range", NewValidator().Integer().Min(Int(1)).Max(Int(100)), Value{}, " <number {1..100}>"},
		{"open range", NewValidator().Real().Min(Int(0)), Real(0.5), " <number {0..} (default: 0.5)>"},
		{"unit", NewValidator().String("name"), Str("pair"), " <name (default: pair)>"},
		{"glossary default", NewValidator().Boolean().Glossary(Term{Text: Str("y"), Substitute: Bool(true)}, Term{Text: Str("n"), Substitute: Bool(false)}), Str("y"), " <boolean {y (default), n}>"},
		{"string length not shown", NewValidator().String().Min(Int(1)), Value{}, " <string>"},
		{"untyped", NewValidator().NonEmpty(), Str("x"), " (default: x)"},
		{"nil", nil, Str("x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Describe(tt.def); got != tt.want {
				t.Fatalf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		src, term Value
		want      bool
	}{
		{Str("1"), Int(1), true},
		{Str("1.0"), Real(1), true},
		{Str("x"), Int(0), false},
		{Str("y"), Str("y"), true},
		{Str("on"), Bool(true), true},
		{Int(1), Str("1"), true},
	}
	for _, tt := range tests {
		if got := Match(tt.src, tt.term); got != tt.want {
			t.Errorf("Match(%v, %v) = %v, want %v", tt.src, tt.term, got, tt.want)
		}
	}
}
