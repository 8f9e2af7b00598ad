// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the variant held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInteger
	KindReal
	KindString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// typeName is the user facing name, numbers are not told apart.
func (k Kind) typeName() string {
	if k == KindInteger || k == KindReal {
		return "number"
	}
	return k.String()
}

// Value is a dynamically typed value: none, bool, integer, real, string or
// an array of values. The zero Value is none.
//
// The held Go value is the only storage, so a Value can not be in a state
// that disagrees with its kind: v is one of nil, bool, int64, float64,
// string or []Value.
type Value struct {
	v any
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{i} }

// Real returns a real Value.
func Real(f float64) Value { return Value{f} }

// Str returns a string Value.
func Str(s string) Value { return Value{s} }

// Array returns an array Value holding a copy of elems. Array() is an empty
// array, which is distinct from none.
func Array(elems ...Value) Value {
	return Value{append([]Value{}, elems...)}
}

// Zero returns the empty Value of the given kind.
func Zero(k Kind) Value {
	switch k {
	case KindBool:
		return Bool(false)
	case KindInteger:
		return Int(0)
	case KindReal:
		return Real(0)
	case KindString:
		return Str("")
	case KindArray:
		return Array()
	}
	return Value{}
}

// ValueOf converts a Go value into a Value. Supported are nil, Value, bool,
// all integer and float types, string and slices of those.
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return uintValue(x)
	case float32:
		return Real(float64(x)), nil
	case float64:
		return Real(x), nil
	case string:
		return Str(x), nil
	case []Value:
		return Array(x...), nil
	case []string:
		out := make([]Value, len(x))
		for i, s := range x {
			out[i] = Str(s)
		}
		return Value{out}, nil
	case []any:
		out := make([]Value, len(x))
		for i, e := range x {
			v, err := ValueOf(e)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return Value{out}, nil
	}
	return Value{}, fmt.Errorf("argtree: unsupported value type %T", x)
}

func uintValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, NewError(TooLarge).WithValue(strconv.FormatUint(u, 10)).WithHelp(strconv.FormatInt(math.MaxInt64, 10))
	}
	return Int(int64(u)), nil
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	switch v.v.(type) {
	case bool:
		return KindBool
	case int64:
		return KindInteger
	case float64:
		return KindReal
	case string:
		return KindString
	case []Value:
		return KindArray
	}
	return KindNone
}

func (v Value) IsNone() bool    { return v.Kind() == KindNone }
func (v Value) IsBool() bool    { return v.Kind() == KindBool }
func (v Value) IsInteger() bool { return v.Kind() == KindInteger }
func (v Value) IsReal() bool    { return v.Kind() == KindReal }
func (v Value) IsString() bool  { return v.Kind() == KindString }
func (v Value) IsArray() bool   { return v.Kind() == KindArray }

// IsNumber reports whether v is an integer or a real.
func (v Value) IsNumber() bool {
	k := v.Kind()
	return k == KindInteger || k == KindReal
}

// TypeName returns the user facing type name of v ("number" for both
// integers and reals).
func (v Value) TypeName() string { return v.Kind().typeName() }

var boolStrings = []struct {
	s string
	b bool
}{
	{"true", true},
	{"false", false},
	{"yes", true},
	{"no", false},
	{"y", true},
	{"n", false},
	{"on", true},
	{"off", false},
}

// BoolStrings returns the strings accepted as booleans.
func BoolStrings() []string {
	out := make([]string, len(boolStrings))
	for i, bs := range boolStrings {
		out[i] = bs.s
	}
	return out
}

func parseBool(s string) (bool, bool) {
	for _, bs := range boolStrings {
		if bs.s == s {
			return bs.b, true
		}
	}
	return false, false
}

// AsBool converts v to a bool. Strings must be one of BoolStrings.
func (v Value) AsBool() (bool, error) {
	switch x := v.v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case float64:
		return x != 0, nil
	case string:
		if b, ok := parseBool(x); ok {
			return b, nil
		}
		return false, NewError(InvalidValue).WithValue(x).WithHelp(strings.Join(BoolStrings(), ", "))
	}
	return false, wrongType(v.Kind(), KindBool)
}

// AsInt converts v to an integer. Reals are truncated, strings are parsed
// up to the first character that can not be part of a number, so "123abc"
// is 123.
func (v Value) AsInt() (int64, error) {
	switch x := v.v.(type) {
	case nil:
		return 0, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	case string:
		if n, ok := parseIntPrefix(x); ok {
			return n, nil
		}
		return 0, NewError(InvalidValue).WithValue(x)
	}
	return 0, wrongType(v.Kind(), KindInteger)
}

// AsReal converts v to a float64. Strings are parsed the same way as in
// AsInt, accepting the longest numeric prefix.
func (v Value) AsReal() (float64, error) {
	switch x := v.v.(type) {
	case nil:
		return 0, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		if f, ok := parseRealPrefix(x); ok {
			return f, nil
		}
		return 0, NewError(InvalidValue).WithValue(x)
	}
	return 0, wrongType(v.Kind(), KindReal)
}

// AsString converts v to a string. Reals are rendered in their shortest
// decimal form without trailing zeros (3.14, -100, 0).
func (v Value) AsString() (string, error) {
	switch x := v.v.(type) {
	case nil:
		return "", nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return formatReal(x), nil
	case string:
		return x, nil
	}
	return "", wrongType(v.Kind(), KindString)
}

// String implements fmt.Stringer. Unlike AsString it never fails: arrays are
// rendered as [a, b].
func (v Value) String() string {
	if elems, ok := v.v.([]Value); ok {
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	s, _ := v.AsString()
	return s
}

func formatReal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func skipSpace(s string) int {
	i := 0
	for i < len(s) && strings.IndexByte(" \t\n\v\f\r", s[i]) >= 0 {
		i++
	}
	return i
}

func parseIntPrefix(s string) (int64, bool) {
	i := skipSpace(s)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[start:i], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseRealPrefix(s string) (float64, bool) {
	i := skipSpace(s)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	rest := strings.ToLower(s[i:])
	for _, word := range []string{"infinity", "inf", "nan"} {
		if strings.HasPrefix(rest, word) {
			f, err := strconv.ParseFloat(s[start:i+len(word)], 64)
			return f, err == nil
		}
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if fraction := j - i - 1; mantissa+fraction > 0 {
			mantissa += fraction
			i = j
		}
	}
	if mantissa == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Convert returns v converted to kind k. Converting a scalar to an array
// wraps it into a one element array, converting to none resets it.
func (v Value) Convert(k Kind) (Value, error) {
	if v.Kind() == k {
		return v, nil
	}
	switch k {
	case KindBool:
		b, err := v.AsBool()
		return Bool(b), err
	case KindInteger:
		n, err := v.AsInt()
		return Int(n), err
	case KindReal:
		f, err := v.AsReal()
		return Real(f), err
	case KindString:
		s, err := v.AsString()
		return Str(s), err
	case KindArray:
		return Array(v), nil
	}
	return Value{}, nil
}

// Append adds x to the end of v. A value that is not an array becomes one
// first, keeping its previous content as element 0; none becomes an empty
// array.
func (v *Value) Append(x Value) {
	switch cur := v.v.(type) {
	case []Value:
		v.v = append(cur, x)
	case nil:
		v.v = []Value{x}
	default:
		v.v = []Value{{cur}, x}
	}
}

// Len returns the number of elements of an array or characters of a string.
func (v Value) Len() (int, error) {
	switch x := v.v.(type) {
	case nil:
		return 0, nil
	case string:
		return utf8.RuneCountInString(x), nil
	case []Value:
		return len(x), nil
	}
	return 0, wrongType(v.Kind(), KindString, KindArray)
}

// Empty reports whether v is none, an empty string or an empty array.
func (v Value) Empty() bool {
	switch x := v.v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []Value:
		return len(x) == 0
	}
	return false
}

// Contains reports whether a string holds x as a substring, or whether an
// array holds an element equal to x.
func (v Value) Contains(x Value) (bool, error) {
	switch cur := v.v.(type) {
	case nil:
		return false, nil
	case string:
		sub, err := x.AsString()
		if err != nil {
			return false, err
		}
		return strings.Contains(cur, sub), nil
	case []Value:
		for _, e := range cur {
			if e.Equal(x) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, wrongType(v.Kind(), KindString, KindArray)
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, error) {
	elems, ok := v.v.([]Value)
	if !ok {
		return Value{}, wrongType(v.Kind(), KindArray)
	}
	if i < 0 || i >= len(elems) {
		return Value{}, NewError(TooFew).WithValue(strconv.Itoa(i)).WithHelp(strconv.Itoa(len(elems)))
	}
	return elems[i], nil
}

// Elems returns a copy of the elements of an array.
func (v Value) Elems() ([]Value, error) {
	elems, ok := v.v.([]Value)
	if !ok {
		return nil, wrongType(v.Kind(), KindArray)
	}
	return append([]Value(nil), elems...), nil
}

// Equal reports whether v and o hold the same variant and the same content.
// Values of different variants are never equal.
func (v Value) Equal(o Value) bool {
	switch x := v.v.(type) {
	case nil:
		return o.v == nil
	case bool:
		y, ok := o.v.(bool)
		return ok && x == y
	case int64:
		y, ok := o.v.(int64)
		return ok && x == y
	case float64:
		y, ok := o.v.(float64)
		return ok && x == y
	case string:
		y, ok := o.v.(string)
		return ok && x == y
	case []Value:
		y, ok := o.v.([]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !x[i].Equal(y[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders v against o, returning -1, 0 or +1. Only values of the same
// scalar variant can be ordered, with the exception of integers and reals
// which are compared numerically.
func (v Value) Compare(o Value) (int, error) {
	switch x := v.v.(type) {
	case bool:
		if y, ok := o.v.(bool); ok {
			return compareBool(x, y), nil
		}
	case int64:
		switch y := o.v.(type) {
		case int64:
			return compareOrdered(x, y), nil
		case float64:
			return compareOrdered(float64(x), y), nil
		}
	case float64:
		switch y := o.v.(type) {
		case float64:
			return compareOrdered(x, y), nil
		case int64:
			return compareOrdered(x, float64(y)), nil
		}
	case string:
		if y, ok := o.v.(string); ok {
			return strings.Compare(x, y), nil
		}
	}
	return 0, wrongType(v.Kind(), o.Kind())
}

// Less reports whether v orders before o.
func (v Value) Less(o Value) (bool, error) {
	c, err := v.Compare(o)
	return c < 0, err
}

func compareBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	}
	return 1
}

func compareOrdered[T int64 | float64](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Scalar lists the Go types a Value can be extracted into with As.
type Scalar interface {
	bool | int | int64 | float64 | string
}

// As converts v into the Go type T.
func As[T Scalar](v Value) (T, error) {
	var zero T
	var out any
	var err error
	switch any(zero).(type) {
	case bool:
		out, err = v.AsBool()
	case int:
		var n int64
		n, err = v.AsInt()
		out = int(n)
	case int64:
		out, err = v.AsInt()
	case float64:
		out, err = v.AsReal()
	case string:
		out, err = v.AsString()
	}
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
