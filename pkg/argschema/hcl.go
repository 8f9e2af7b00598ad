// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argschema

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/yeetrun/argtree/pkg/argtree"
)

// hclDocument is the top level of an HCL schema: a single root arg block.
type hclDocument struct {
	Args []*hclNode `hcl:"arg,block"`
}

type hclNode struct {
	Name        string     `hcl:"name,label"`
	ID          *int       `hcl:"id,optional"`
	Keys        []string   `hcl:"keys,optional"`
	Description string     `hcl:"description,optional"`
	Required    bool       `hcl:"required,optional"`
	Multiple    bool       `hcl:"multiple,optional"`
	Unique      bool       `hcl:"unique,optional"`
	Hidden      bool       `hcl:"hidden,optional"`
	Disabled    bool       `hcl:"disabled,optional"`
	Flag        bool       `hcl:"flag,optional"`
	Certain     cty.Value  `hcl:"certain,optional"`
	Default     cty.Value  `hcl:"default,optional"`
	Action      string     `hcl:"action,optional"`
	Interactive bool       `hcl:"interactive,optional"`
	Value       *hclRules  `hcl:"value,block"`
	Args        []*hclNode `hcl:"arg,block"`
}

type hclRules struct {
	Type            string     `hcl:"type,optional"`
	Unit            string     `hcl:"unit,optional"`
	Min             cty.Value  `hcl:"min,optional"`
	Max             cty.Value  `hcl:"max,optional"`
	NonEmpty        bool       `hcl:"nonempty,optional"`
	Pattern         string     `hcl:"pattern,optional"`
	OneOf           cty.Value  `hcl:"one_of,optional"`
	Glossary        []*hclTerm `hcl:"glossary,block"`
	NoDuplicatesOf  string     `hcl:"no_duplicates_of,optional"`
	NoRepeatsOf     string     `hcl:"no_repeats_of,optional"`
	CannotStartWith string     `hcl:"cannot_start_with,optional"`
	CannotEndWith   string     `hcl:"cannot_end_with,optional"`
	Trim            *string    `hcl:"trim,optional"`
	Prefix          string     `hcl:"prefix,optional"`
	Suffix          string     `hcl:"suffix,optional"`
	LowerCase       bool       `hcl:"lower_case,optional"`
	UpperCase       bool       `hcl:"upper_case,optional"`
}

type hclTerm struct {
	Term  cty.Value `hcl:"term"`
	Value cty.Value `hcl:"value,optional"`
}

// LoadHCL reads a document holding exactly one top level arg block, the
// root node. Children are nested arg blocks and validation rules go in a
// value block:
//
//	arg "app" {
//	  keys = ["app"]
//	  arg "count" {
//	    keys = ["-n", "--count"]
//	    value {
//	      type = "integer"
//	      min  = 1
//	    }
//	  }
//	}
func LoadHCL(src []byte, filename string) (*Schema, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("argschema: failed to parse HCL file %s: %w", filename, diags)
	}
	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("argschema: failed to decode HCL file %s: %w", filename, diags)
	}
	if len(doc.Args) != 1 {
		return nil, fmt.Errorf("argschema: %s: want one top level arg block, got %d", filename, len(doc.Args))
	}
	root, err := doc.Args[0].node()
	if err != nil {
		return nil, fmt.Errorf("argschema: %s: %w", filename, err)
	}
	return New(root)
}

func (h *hclNode) node() (*Node, error) {
	n := &Node{
		Name:        h.Name,
		ID:          h.ID,
		Keys:        h.Keys,
		Description: h.Description,
		Required:    h.Required,
		Multiple:    h.Multiple,
		Unique:      h.Unique,
		Hidden:      h.Hidden,
		Disabled:    h.Disabled,
		Flag:        h.Flag,
		Action:      h.Action,
		Interactive: h.Interactive,
	}
	var err error
	if n.Certain, err = optional(h.Certain); err != nil {
		return nil, fmt.Errorf("%s: certain: %w", h.Name, err)
	}
	if n.Default, err = optional(h.Default); err != nil {
		return nil, fmt.Errorf("%s: default: %w", h.Name, err)
	}
	if h.Value != nil {
		if n.Value, err = h.Value.rules(); err != nil {
			return nil, fmt.Errorf("%s: %w", h.Name, err)
		}
	}
	for _, c := range h.Args {
		child, err := c.node()
		if err != nil {
			return nil, err
		}
		n.Args = append(n.Args, child)
	}
	return n, nil
}

func (h *hclRules) rules() (*Rules, error) {
	r := &Rules{
		Type:            h.Type,
		Unit:            h.Unit,
		NonEmpty:        h.NonEmpty,
		Pattern:         h.Pattern,
		NoDuplicatesOf:  h.NoDuplicatesOf,
		NoRepeatsOf:     h.NoRepeatsOf,
		CannotStartWith: h.CannotStartWith,
		CannotEndWith:   h.CannotEndWith,
		Trim:            h.Trim,
		Prefix:          h.Prefix,
		Suffix:          h.Suffix,
		LowerCase:       h.LowerCase,
		UpperCase:       h.UpperCase,
	}
	var err error
	if r.Min, err = optional(h.Min); err != nil {
		return nil, fmt.Errorf("min: %w", err)
	}
	if r.Max, err = optional(h.Max); err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}
	oneOf, err := FromCty(h.OneOf)
	if err != nil {
		return nil, fmt.Errorf("one_of: %w", err)
	}
	if !oneOf.IsNone() {
		elems, err := oneOf.Elems()
		if err != nil {
			return nil, fmt.Errorf("one_of: %w", err)
		}
		for _, e := range elems {
			r.OneOf = append(r.OneOf, e)
		}
	}
	for _, g := range h.Glossary {
		term, err := FromCty(g.Term)
		if err != nil {
			return nil, fmt.Errorf("glossary term: %w", err)
		}
		sub, err := FromCty(g.Value)
		if err != nil {
			return nil, fmt.Errorf("glossary value: %w", err)
		}
		r.Glossary = append(r.Glossary, Term{Term: term, Value: sub})
	}
	return r, nil
}

// optional converts v, mapping an absent or null attribute to nil.
func optional(v cty.Value) (any, error) {
	val, err := FromCty(v)
	if err != nil || val.IsNone() {
		return nil, err
	}
	return val, nil
}

// FromCty converts an HCL value. Whole numbers that fit become integers,
// other numbers reals; lists, sets and tuples become arrays. Null and
// unknown values are none. Maps and objects are not supported.
func FromCty(v cty.Value) (argtree.Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return argtree.Value{}, nil
	}
	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return argtree.Str(v.AsString()), nil
	case ty.Equals(cty.Bool):
		return argtree.Bool(v.True()), nil
	case ty.Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return argtree.Int(i), nil
			}
		}
		f, _ := bf.Float64()
		return argtree.Real(f), nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var elems []argtree.Value
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			val, err := FromCty(e)
			if err != nil {
				return argtree.Value{}, err
			}
			elems = append(elems, val)
		}
		return argtree.Array(elems...), nil
	}
	return argtree.Value{}, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
