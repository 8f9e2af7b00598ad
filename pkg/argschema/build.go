// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argschema

import (
	"fmt"
	"strings"

	"github.com/yeetrun/argtree/pkg/argtree"
)

// Action is performed when the node naming it matched.
type Action func(arg *argtree.Argument, ctx *argtree.Context) int

// Actions maps the action names used in a document to their functions.
type Actions map[string]Action

// Build returns the root argument and a Usage for the schema. Nodes marked
// interactive ask in for their value. Every node is checked up front, but
// arguments are only created once their parent is queried.
func (s *Schema) Build(actions Actions, in argtree.Interactor) (*argtree.Argument, argtree.Usage, error) {
	b := &builder{
		schema:   s,
		actions:  actions,
		in:       in,
		children: make(map[int][]*argtree.Argument),
	}
	var check func(n *Node) error
	check = func(n *Node) error {
		if _, err := b.argument(n); err != nil {
			return err
		}
		for _, c := range n.Args {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(s.Root); err != nil {
		return nil, nil, err
	}
	root, _ := b.argument(s.Root)
	return root, b.usage, nil
}

type builder struct {
	schema   *Schema
	actions  Actions
	in       argtree.Interactor
	children map[int][]*argtree.Argument
}

func (b *builder) usage(arg *argtree.Argument) []*argtree.Argument {
	if args, ok := b.children[arg.ID]; ok {
		return args
	}
	n, ok := b.schema.Node(arg.ID)
	if !ok {
		return nil
	}
	args := make([]*argtree.Argument, 0, len(n.Args))
	for _, c := range n.Args {
		// Build has already checked every node.
		a, _ := b.argument(c)
		args = append(args, a)
	}
	b.children[arg.ID] = args
	return args
}

func (b *builder) argument(n *Node) (*argtree.Argument, error) {
	a := &argtree.Argument{
		ID:          *n.ID,
		Keys:        n.Keys,
		Description: n.Description,
		Required:    n.Required,
		Multiple:    n.Multiple,
		Unique:      n.Unique,
		Hidden:      n.Hidden,
		Disabled:    n.Disabled,
	}
	fail := func(format string, args ...any) (*argtree.Argument, error) {
		return nil, fmt.Errorf("argschema: %s: %s", n.Name, fmt.Sprintf(format, args...))
	}

	valueKinds := 0
	if n.Flag {
		valueKinds++
		a.WithCertain(argtree.Value{})
	}
	if n.Certain != nil {
		valueKinds++
		v, err := argtree.ValueOf(n.Certain)
		if err != nil {
			return fail("certain: %v", err)
		}
		a.WithCertain(v)
	}
	if n.Value != nil {
		valueKinds++
		v, err := n.Value.validator()
		if err != nil {
			return fail("%v", err)
		}
		a.WithValidator(v)
	}
	if valueKinds > 1 {
		return fail("flag, certain and value are exclusive")
	}
	if n.Default != nil {
		v, err := argtree.ValueOf(n.Default)
		if err != nil {
			return fail("default: %v", err)
		}
		a.WithDefault(v)
	}
	if n.Action != "" {
		fn, ok := b.actions[n.Action]
		if !ok {
			return fail("unknown action %q", n.Action)
		}
		a.Action = fn
	}
	if n.Interactive {
		a.Interactor = b.in
	}
	return a, nil
}

func (r *Rules) validator() (*argtree.Validator, error) {
	v := argtree.NewValidator()
	switch strings.ToLower(r.Type) {
	case "":
	case "integer", "int":
		v.Integer()
	case "real", "number", "float":
		v.Real()
	case "string", "str":
		v.String()
	case "boolean", "bool":
		v.Boolean()
	default:
		return nil, fmt.Errorf("unknown type %q", r.Type)
	}
	if r.Unit != "" {
		v.Unit(r.Unit)
	}
	if r.Min != nil {
		bound, err := argtree.ValueOf(r.Min)
		if err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		v.Min(bound)
	}
	if r.Max != nil {
		bound, err := argtree.ValueOf(r.Max)
		if err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
		v.Max(bound)
	}
	if r.NonEmpty {
		v.NonEmpty()
	}
	if r.Pattern != "" {
		v.Pattern(r.Pattern)
	}
	if len(r.OneOf) > 0 && len(r.Glossary) > 0 {
		return nil, fmt.Errorf("one_of and glossary are exclusive")
	}
	if len(r.OneOf) > 0 {
		values := make([]argtree.Value, len(r.OneOf))
		for i, x := range r.OneOf {
			val, err := argtree.ValueOf(x)
			if err != nil {
				return nil, fmt.Errorf("one_of: %w", err)
			}
			values[i] = val
		}
		v.OneOf(values...)
	}
	if len(r.Glossary) > 0 {
		terms := make([]argtree.Term, len(r.Glossary))
		for i, g := range r.Glossary {
			text, err := argtree.ValueOf(g.Term)
			if err != nil {
				return nil, fmt.Errorf("glossary term: %w", err)
			}
			sub, err := argtree.ValueOf(g.Value)
			if err != nil {
				return nil, fmt.Errorf("glossary value: %w", err)
			}
			terms[i] = argtree.Term{Text: text, Substitute: sub}
		}
		v.Glossary(terms...)
	}
	if r.NoDuplicatesOf != "" {
		v.NoDuplicatesOf(r.NoDuplicatesOf)
	}
	if r.NoRepeatsOf != "" {
		v.NoRepeatsOf(r.NoRepeatsOf)
	}
	if r.CannotStartWith != "" {
		v.CannotStartWith(r.CannotStartWith)
	}
	if r.CannotEndWith != "" {
		v.CannotEndWith(r.CannotEndWith)
	}
	if r.Trim != nil {
		v.Trim(*r.Trim)
	}
	if r.Prefix != "" {
		v.Prefix(r.Prefix)
	}
	if r.Suffix != "" {
		v.Suffix(r.Suffix)
	}
	if r.LowerCase && r.UpperCase {
		return nil, fmt.Errorf("lower_case and upper_case are exclusive")
	}
	if r.LowerCase {
		v.LowerCase()
	}
	if r.UpperCase {
		v.UpperCase()
	}
	return v, nil
}
