// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argschema describes argument trees in TOML, YAML or HCL documents
// and turns them into an argtree root and Usage.
package argschema

import (
	"errors"
	"fmt"
)

// Node is one argument of a document. Values (certain, default, bounds and
// glossary terms) are kept as decoded and converted with argtree.ValueOf
// when the tree is built.
type Node struct {
	// Name identifies the node in the document and in Schema.ID.
	Name string `toml:"name" yaml:"name"`
	// ID is assigned automatically when omitted.
	ID          *int     `toml:"id" yaml:"id"`
	Keys        []string `toml:"keys" yaml:"keys"`
	Description string   `toml:"description" yaml:"description"`

	Required bool `toml:"required" yaml:"required"`
	Multiple bool `toml:"multiple" yaml:"multiple"`
	Unique   bool `toml:"unique" yaml:"unique"`
	Hidden   bool `toml:"hidden" yaml:"hidden"`
	Disabled bool `toml:"disabled" yaml:"disabled"`

	// Flag makes the node store none when matched.
	Flag    bool `toml:"flag" yaml:"flag"`
	Certain any  `toml:"certain" yaml:"certain"`
	Default any  `toml:"default" yaml:"default"`

	// Action names an entry of the Actions given to Build.
	Action string `toml:"action" yaml:"action"`
	// Interactive asks for the value with the Interactor given to Build.
	Interactive bool `toml:"interactive" yaml:"interactive"`

	Value *Rules  `toml:"value" yaml:"value"`
	Args  []*Node `toml:"args" yaml:"args"`
}

// Rules configures the validator of a node.
type Rules struct {
	// Type is one of integer, real, string or boolean.
	Type            string `toml:"type" yaml:"type"`
	Unit            string `toml:"unit" yaml:"unit"`
	Min             any    `toml:"min" yaml:"min"`
	Max             any    `toml:"max" yaml:"max"`
	NonEmpty        bool   `toml:"nonempty" yaml:"nonempty"`
	Pattern         string `toml:"pattern" yaml:"pattern"`
	OneOf           []any  `toml:"one_of" yaml:"one_of"`
	Glossary        []Term `toml:"glossary" yaml:"glossary"`
	NoDuplicatesOf  string `toml:"no_duplicates_of" yaml:"no_duplicates_of"`
	NoRepeatsOf     string `toml:"no_repeats_of" yaml:"no_repeats_of"`
	CannotStartWith string `toml:"cannot_start_with" yaml:"cannot_start_with"`
	CannotEndWith   string `toml:"cannot_end_with" yaml:"cannot_end_with"`
	// Trim strips the given characters, whitespace when empty.
	Trim      *string `toml:"trim" yaml:"trim"`
	Prefix    string  `toml:"prefix" yaml:"prefix"`
	Suffix    string  `toml:"suffix" yaml:"suffix"`
	LowerCase bool    `toml:"lower_case" yaml:"lower_case"`
	UpperCase bool    `toml:"upper_case" yaml:"upper_case"`
}

// Term is a glossary entry. A missing Value keeps the term itself.
type Term struct {
	Term  any `toml:"term" yaml:"term"`
	Value any `toml:"value" yaml:"value"`
}

// Schema is a validated document with an ID for every node.
type Schema struct {
	Root *Node

	nodes map[int]*Node
	names map[string]int
}

var errNoRoot = errors.New("argschema: document has no root argument")

// New validates root and assigns the missing IDs. Nodes without an explicit
// ID are numbered depth first, starting after the largest explicit one.
// Names and IDs must be unique across the document.
func New(root *Node) (*Schema, error) {
	if root == nil {
		return nil, errNoRoot
	}
	s := &Schema{
		Root:  root,
		nodes: make(map[int]*Node),
		names: make(map[string]int),
	}
	next := 0
	var explicit func(n *Node) error
	explicit = func(n *Node) error {
		if n.Name == "" {
			return fmt.Errorf("argschema: argument with keys %q has no name", n.Keys)
		}
		if n.ID != nil {
			if other, ok := s.nodes[*n.ID]; ok {
				return fmt.Errorf("argschema: %q and %q share id %d", other.Name, n.Name, *n.ID)
			}
			s.nodes[*n.ID] = n
			next = max(next, *n.ID+1)
		}
		for _, c := range n.Args {
			if err := explicit(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := explicit(root); err != nil {
		return nil, err
	}

	var assign func(n *Node) error
	assign = func(n *Node) error {
		if n.ID == nil {
			id := next
			next++
			n.ID = &id
			s.nodes[id] = n
		}
		if _, ok := s.names[n.Name]; ok {
			return fmt.Errorf("argschema: duplicate name %q", n.Name)
		}
		s.names[n.Name] = *n.ID
		for _, c := range n.Args {
			if err := assign(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := assign(root); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the ID of the node called name.
func (s *Schema) ID(name string) (int, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Name returns the name of the node with the given ID, or "".
func (s *Schema) Name(id int) string {
	if n, ok := s.nodes[id]; ok {
		return n.Name
	}
	return ""
}

// Node returns the node with the given ID.
func (s *Schema) Node(id int) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}
