// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is a kind of validation or mutation a Validator performs.
type Rule uint8

const (
	RuleType Rule = iota
	RuleUnit
	RuleMin
	RuleMax
	RuleNonEmpty
	RulePattern
	RuleGlossary
	RuleNoDuplicatesOf
	RuleNoRepeatsOf
	RuleCannotStartWith
	RuleCannotEndWith
	RuleTrim
	RulePrefix
	RuleSuffix
	RuleLowerCase
	RuleUpperCase
	numRules
)

var ruleNames = [...]string{
	RuleType:            "type",
	RuleUnit:            "unit",
	RuleMin:             "min",
	RuleMax:             "max",
	RuleNonEmpty:        "nonempty",
	RulePattern:         "pattern",
	RuleGlossary:        "glossary",
	RuleNoDuplicatesOf:  "no_duplicates_of",
	RuleNoRepeatsOf:     "no_repeats_of",
	RuleCannotStartWith: "cannot_start_with",
	RuleCannotEndWith:   "cannot_end_with",
	RuleTrim:            "trim",
	RulePrefix:          "prefix",
	RuleSuffix:          "suffix",
	RuleLowerCase:       "lower_case",
	RuleUpperCase:       "upper_case",
}

func (r Rule) String() string {
	if r >= numRules {
		return "unknown"
	}
	return ruleNames[r]
}

// DefaultTrim is the character set Trim strips when called without one.
const DefaultTrim = " \t\r\n"

// Term is a glossary entry. Input matching Text is replaced by Substitute,
// or kept as Text when Substitute is none.
type Term struct {
	Text       Value
	Substitute Value
}

// Validator turns a raw token into a Value in three steps: Amend mutates
// the string, Validate verifies it and Apply converts it. Rules are kept per
// kind, setting a rule twice overrides the first one.
//
// The zero Validator accepts any string and yields it unchanged. A nil
// *Validator behaves the same for the read-only methods.
type Validator struct {
	rules  map[Rule]Value
	checks []func(string) error
}

// NewValidator returns an empty Validator.
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) set(r Rule, val Value) *Validator {
	if v.rules == nil {
		v.rules = make(map[Rule]Value)
	}
	switch r {
	case RuleLowerCase:
		delete(v.rules, RuleUpperCase)
	case RuleUpperCase:
		delete(v.rules, RuleLowerCase)
	}
	v.rules[r] = val
	return v
}

func (v *Validator) typed(k Kind, unit []string) *Validator {
	v.set(RuleType, Zero(k))
	if len(unit) > 0 && unit[0] != "" {
		v.set(RuleUnit, Str(unit[0]))
	}
	return v
}

// Integer makes the validator produce integers. The optional unit names the
// value in help output.
func (v *Validator) Integer(unit ...string) *Validator { return v.typed(KindInteger, unit) }

// Real makes the validator produce reals.
func (v *Validator) Real(unit ...string) *Validator { return v.typed(KindReal, unit) }

// String makes the validator produce strings.
func (v *Validator) String(unit ...string) *Validator { return v.typed(KindString, unit) }

// Boolean makes the validator produce booleans. Unless a glossary is
// already set, the boolean synonyms become the accepted terms.
func (v *Validator) Boolean(unit ...string) *Validator {
	v.typed(KindBool, unit)
	if !v.Has(RuleGlossary) {
		terms := make([]Term, len(boolStrings))
		for i, bs := range boolStrings {
			terms[i] = Term{Text: Str(bs.s), Substitute: Bool(bs.b)}
		}
		v.Glossary(terms...)
	}
	return v
}

// Unit sets the name shown for the value in help output.
func (v *Validator) Unit(unit string) *Validator { return v.set(RuleUnit, Str(unit)) }

// Min sets the lower bound: a number for numeric types, a length otherwise.
func (v *Validator) Min(bound Value) *Validator { return v.set(RuleMin, bound) }

// Max sets the upper bound: a number for numeric types, a length otherwise.
func (v *Validator) Max(bound Value) *Validator { return v.set(RuleMax, bound) }

// NonEmpty rejects empty input.
func (v *Validator) NonEmpty() *Validator { return v.set(RuleNonEmpty, Bool(true)) }

// Pattern requires the whole input to match the regular expression.
func (v *Validator) Pattern(expr string) *Validator { return v.set(RulePattern, Str(expr)) }

// Glossary restricts input to the given terms, substituting where asked.
func (v *Validator) Glossary(terms ...Term) *Validator {
	elems := make([]Value, len(terms))
	for i, t := range terms {
		elems[i] = Array(t.Text, t.Substitute)
	}
	return v.set(RuleGlossary, Array(elems...))
}

// OneOf restricts input to the given values without substitution.
func (v *Validator) OneOf(values ...Value) *Validator {
	terms := make([]Term, len(values))
	for i, val := range values {
		terms[i] = Term{Text: val}
	}
	return v.Glossary(terms...)
}

// NoDuplicatesOf rejects input holding any of chars more than once.
func (v *Validator) NoDuplicatesOf(chars string) *Validator {
	return v.set(RuleNoDuplicatesOf, Str(chars))
}

// NoRepeatsOf rejects input holding any of chars twice in a row.
func (v *Validator) NoRepeatsOf(chars string) *Validator {
	return v.set(RuleNoRepeatsOf, Str(chars))
}

func (v *Validator) CannotStartWith(chars string) *Validator {
	return v.set(RuleCannotStartWith, Str(chars))
}

func (v *Validator) CannotEndWith(chars string) *Validator {
	return v.set(RuleCannotEndWith, Str(chars))
}

func (v *Validator) CannotStartEndWith(chars string) *Validator {
	return v.CannotStartWith(chars).CannotEndWith(chars)
}

// Trim strips leading and trailing chars from the input, DefaultTrim when
// none are given.
func (v *Validator) Trim(chars ...string) *Validator {
	set := strings.Join(chars, "")
	if set == "" {
		set = DefaultTrim
	}
	return v.set(RuleTrim, Str(set))
}

// Prefix prepends p to input that does not start with it.
func (v *Validator) Prefix(p string) *Validator { return v.set(RulePrefix, Str(p)) }

// Suffix appends s to input that does not end with it.
func (v *Validator) Suffix(s string) *Validator { return v.set(RuleSuffix, Str(s)) }

// LowerCase folds input to lower case. It replaces UpperCase.
func (v *Validator) LowerCase() *Validator { return v.set(RuleLowerCase, Bool(true)) }

// UpperCase folds input to upper case. It replaces LowerCase.
func (v *Validator) UpperCase() *Validator { return v.set(RuleUpperCase, Bool(true)) }

// Check adds a custom check run after the built-in rules. Errors that are
// not *Error are reported as InvalidValue by the owning Argument.
func (v *Validator) Check(fn func(string) error) *Validator {
	v.checks = append(v.checks, fn)
	return v
}

// Merge overlays the rules of o onto v, rules set in o win. Custom checks
// of o run after those of v.
func (v *Validator) Merge(o *Validator) *Validator {
	if o == nil {
		return v
	}
	for _, r := range o.Rules() {
		v.set(r, o.rules[r])
	}
	v.checks = append(v.checks, o.checks...)
	return v
}

// Clone returns an independent copy of v.
func (v *Validator) Clone() *Validator {
	return NewValidator().Merge(v)
}

// Has reports whether rule r is set.
func (v *Validator) Has(r Rule) bool {
	if v == nil {
		return false
	}
	_, ok := v.rules[r]
	return ok
}

// Get returns the parameter of rule r.
func (v *Validator) Get(r Rule) (Value, bool) {
	if v == nil {
		return Value{}, false
	}
	val, ok := v.rules[r]
	return val, ok
}

// Rules returns the set rules in evaluation order.
func (v *Validator) Rules() []Rule {
	if v == nil {
		return nil
	}
	var out []Rule
	for r := Rule(0); r < numRules; r++ {
		if _, ok := v.rules[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Type returns the kind Apply converts to, if a type is set.
func (v *Validator) Type() (Kind, bool) {
	t, ok := v.Get(RuleType)
	return t.Kind(), ok
}

// IsNumeric reports whether the type is integer or real.
func (v *Validator) IsNumeric() bool {
	t, ok := v.Get(RuleType)
	return ok && t.IsNumber()
}

// Terms returns the glossary entries.
func (v *Validator) Terms() []Term {
	g, ok := v.Get(RuleGlossary)
	if !ok {
		return nil
	}
	elems, _ := g.Elems()
	terms := make([]Term, 0, len(elems))
	for _, e := range elems {
		text, _ := e.Index(0)
		sub, _ := e.Index(1)
		terms = append(terms, Term{Text: text, Substitute: sub})
	}
	return terms
}

// Match reports whether src converted to the variant of term equals term.
func Match(src, term Value) bool {
	c, err := src.Convert(term.Kind())
	if err != nil {
		return false
	}
	return c.Equal(term)
}

// Amend applies the mutating rules to raw: trim, prefix, suffix and case
// folding in that order. Empty input is returned as is.
func (v *Validator) Amend(raw string) string {
	if raw == "" || v == nil {
		return raw
	}
	s := raw
	if set, ok := v.rules[RuleTrim]; ok {
		s = strings.Trim(s, set.String())
	}
	if p, ok := v.rules[RulePrefix]; ok && !strings.HasPrefix(s, p.String()) {
		s = p.String() + s
	}
	if x, ok := v.rules[RuleSuffix]; ok && !strings.HasSuffix(s, x.String()) {
		s += x.String()
	}
	switch {
	case v.Has(RuleLowerCase):
		s = cases.Lower(language.Und).String(s)
	case v.Has(RuleUpperCase):
		s = cases.Upper(language.Und).String(s)
	}
	return s
}

// Validate runs every check against source and returns the first failure.
func (v *Validator) Validate(source string) error {
	if v == nil {
		return nil
	}
	if v.Has(RuleNonEmpty) && source == "" {
		return NewError(EmptyValue)
	}
	for _, r := range v.Rules() {
		var err error
		param := v.rules[r]
		switch r {
		case RuleMin:
			err = v.checkBound(source, param, true)
		case RuleMax:
			err = v.checkBound(source, param, false)
		case RulePattern:
			err = checkPattern(source, param.String())
		case RuleGlossary:
			err = v.checkGlossary(source)
		case RuleNoDuplicatesOf:
			err = checkDuplicates(source, param.String())
		case RuleNoRepeatsOf:
			err = checkRepeats(source, param.String())
		case RuleCannotStartWith:
			if first, _ := utf8.DecodeRuneInString(source); source != "" && strings.ContainsRune(param.String(), first) {
				err = NewError(InvalidStart).WithValue(source).WithHelp(param.String())
			}
		case RuleCannotEndWith:
			if last, _ := utf8.DecodeLastRuneInString(source); source != "" && strings.ContainsRune(param.String(), last) {
				err = NewError(InvalidEnd).WithValue(source).WithHelp(param.String())
			}
		}
		if err != nil {
			return err
		}
	}
	for _, fn := range v.checks {
		if err := fn(source); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) checkBound(source string, bound Value, lower bool) error {
	tooSmall, tooLarge := TooShort, TooLong
	var got Value
	if v.IsNumeric() {
		tooSmall, tooLarge = TooSmall, TooLarge
		t, _ := v.Type()
		n, err := Str(source).Convert(t)
		if err != nil {
			return err
		}
		got = n
	} else {
		got = Int(int64(utf8.RuneCountInString(source)))
	}
	c, err := got.Compare(bound)
	if err != nil {
		return err
	}
	switch {
	case lower && c < 0:
		return NewError(tooSmall).WithValue(source).WithHelp(bound.String())
	case !lower && c > 0:
		return NewError(tooLarge).WithValue(source).WithHelp(bound.String())
	}
	return nil
}

func checkPattern(source, expr string) error {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return NewError(InvalidRule).WithValue(expr).WithHelp(err.Error())
	}
	if !re.MatchString(source) {
		return NewError(InvalidValue).WithValue(source).WithHelp(expr)
	}
	return nil
}

func (v *Validator) checkGlossary(source string) error {
	terms := v.Terms()
	names := make([]string, len(terms))
	for i, t := range terms {
		if Match(Str(source), t.Text) {
			return nil
		}
		names[i] = t.Text.String()
	}
	return NewError(InvalidValue).WithValue(source).WithHelp(strings.Join(names, ", "))
}

func checkDuplicates(source, chars string) error {
	for _, c := range chars {
		if strings.Count(source, string(c)) > 1 {
			return NewError(DuplicateChar).WithValue(source).WithHelp(string(c))
		}
	}
	return nil
}

func checkRepeats(source, chars string) error {
	var prev rune = -1
	for _, c := range source {
		if c == prev && strings.ContainsRune(chars, c) {
			return NewError(RepetitiveChar).WithValue(source).WithHelp(string(c))
		}
		prev = c
	}
	return nil
}

// Apply converts source into a Value: the glossary substitution happens
// first, then the conversion to the validator type.
func (v *Validator) Apply(source string) (Value, error) {
	val := Str(source)
	for _, t := range v.Terms() {
		if Match(val, t.Text) {
			if t.Substitute.IsNone() {
				val = t.Text
			} else {
				val = t.Substitute
			}
			break
		}
	}
	if k, ok := v.Type(); ok {
		return val.Convert(k)
	}
	return val, nil
}

// Process runs Amend, Validate and Apply on raw.
func (v *Validator) Process(raw string) (Value, error) {
	s := v.Amend(raw)
	if err := v.Validate(s); err != nil {
		return Value{}, err
	}
	return v.Apply(s)
}

// Describe renders the value hint used in help output, such as
// " <number {1..100}>" or " <boolean {y (default), n}>". def is the default
// value of the owning argument, none if it has none.
func (v *Validator) Describe(def Value) string {
	if v == nil {
		return ""
	}
	var b strings.Builder
	name := ""
	if u, ok := v.Get(RuleUnit); ok {
		name = u.String()
	} else if t, ok := v.Get(RuleType); ok {
		name = t.TypeName()
	}
	if name != "" {
		fmt.Fprintf(&b, " <%s", name)
	}
	if terms := v.Terms(); len(terms) > 0 {
		names := make([]string, len(terms))
		for i, t := range terms {
			names[i] = t.Text.String()
			if !def.IsNone() && Match(def, t.Text) {
				names[i] += " (default)"
			}
		}
		fmt.Fprintf(&b, " {%s}", strings.Join(names, ", "))
	} else if (v.Has(RuleMin) || v.Has(RuleMax)) && v.IsNumeric() {
		lo, _ := v.Get(RuleMin)
		hi, _ := v.Get(RuleMax)
		fmt.Fprintf(&b, " {%s..%s}", lo, hi)
	}
	if !def.IsNone() && !v.Has(RuleGlossary) {
		fmt.Fprintf(&b, " (default: %s)", def)
	}
	if name != "" {
		b.WriteString(">")
	}
	return b.String()
}
