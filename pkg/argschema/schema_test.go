// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argschema

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yeetrun/argtree/pkg/argtree"
)

var demoIDs = map[string]int{
	"call":   10,
	"app":    11,
	"flag":   12,
	"bool":   13,
	"int":    14,
	"real":   15,
	"array":  16,
	"color":  17,
	"hidden": 18,
}

func callAction(a *argtree.Argument, _ *argtree.Context) int { return a.ID }

func contextMap(ctx *argtree.Context) map[int]argtree.Value {
	got := map[int]argtree.Value{}
	ctx.All(func(id int, v argtree.Value) bool {
		got[id] = v
		return true
	})
	return got
}

func TestLoadFile(t *testing.T) {
	for _, name := range []string{"demo.toml", "demo.yaml", "demo.hcl"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadFile(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			for n, want := range demoIDs {
				if id, ok := s.ID(n); !ok || id != want {
					t.Errorf("ID(%q) = %d, %v, want %d", n, id, ok, want)
				}
				if got := s.Name(want); got != n {
					t.Errorf("Name(%d) = %q, want %q", want, got, n)
				}
			}

			root, usage, err := s.Build(Actions{"call": callAction}, nil)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			args := []string{"app", "call", "-b", "N", "--int=42", "-a", "x", "-a", "y", "--hidden", " v "}
			ctx := argtree.NewContext()
			res, err := argtree.NewInterpreter(argtree.Options{}).Run(args, root, usage, ctx)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res != demoIDs["call"] {
				t.Fatalf("result = %d, want %d", res, demoIDs["call"])
			}
			want := map[int]argtree.Value{
				demoIDs["bool"]:   argtree.Bool(false),
				demoIDs["int"]:    argtree.Int(42),
				demoIDs["real"]:   argtree.Real(1.23),
				demoIDs["array"]:  argtree.Array(argtree.Str("x"), argtree.Str("y")),
				demoIDs["color"]:  argtree.Str("red"),
				demoIDs["hidden"]: argtree.Str("<tag>v</tag>"),
			}
			if diff := cmp.Diff(want, contextMap(ctx)); diff != "" {
				t.Fatalf("context mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaErrors(t *testing.T) {
	call := &Node{Name: "call", Keys: []string{"call"}, Value: &Rules{Type: "integer"}}
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown-key",
			src:  "name = \"app\"\ncolour = \"red\"\n",
			want: "unknown TOML keys: colour",
		},
		{
			name: "no-name",
			src:  "keys = [\"app\"]\n",
			want: "has no name",
		},
		{
			name: "duplicate-id",
			src:  "name = \"app\"\nid = 1\n[[args]]\nname = \"a\"\nid = 1\n",
			want: "share id 1",
		},
		{
			name: "duplicate-name",
			src:  "name = \"app\"\n[[args]]\nname = \"app\"\n",
			want: "duplicate name \"app\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTOML(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}

	if _, err := New(nil); !errors.Is(err, errNoRoot) {
		t.Errorf("New(nil) = %v, want errNoRoot", err)
	}
	if _, err := LoadYAML(strings.NewReader("")); !errors.Is(err, errNoRoot) {
		t.Errorf("LoadYAML(empty) = %v, want errNoRoot", err)
	}
	if _, err := LoadYAML(strings.NewReader("name: app\ncolour: red\n")); err == nil {
		t.Errorf("LoadYAML accepted an unknown field")
	}
	if _, err := LoadFile("schema.json"); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("LoadFile(.json) = %v, want unsupported format", err)
	}
	if _, err := New(&Node{Name: "app", Args: []*Node{call}}); err != nil {
		t.Errorf("New: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "flag-and-value",
			node: &Node{Name: "x", Flag: true, Value: &Rules{}},
			want: "exclusive",
		},
		{
			name: "unknown-action",
			node: &Node{Name: "x", Action: "launch"},
			want: "unknown action \"launch\"",
		},
		{
			name: "unknown-type",
			node: &Node{Name: "x", Value: &Rules{Type: "date"}},
			want: "unknown type \"date\"",
		},
		{
			name: "one-of-and-glossary",
			node: &Node{Name: "x", Value: &Rules{OneOf: []any{"a"}, Glossary: []Term{{Term: "b"}}}},
			want: "one_of and glossary are exclusive",
		},
		{
			name: "case",
			node: &Node{Name: "x", Value: &Rules{LowerCase: true, UpperCase: true}},
			want: "lower_case and upper_case are exclusive",
		},
		{
			name: "bad-default",
			node: &Node{Name: "x", Default: map[string]any{"a": 1}},
			want: "default",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Errors in nested nodes fail the whole build.
			s, err := New(&Node{Name: "app", Args: []*Node{tt.node}})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			_, _, err = s.Build(nil, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Build err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestBuildUsage(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	root, usage, err := s.Build(Actions{"call": callAction}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	top := usage(root)
	if len(top) != 2 {
		t.Fatalf("len(usage(root)) = %d, want 2", len(top))
	}
	if again := usage(root); again[1] != top[1] {
		t.Fatalf("usage built the children twice")
	}
	call := top[1]
	if got := call.Instruction(); got != "--call, call" {
		t.Errorf("Instruction = %q", got)
	}
	kids := usage(call)
	if got := kids[0].Validation(); got != " <boolean {y (default), n}>" {
		t.Errorf("bool Validation = %q", got)
	}
	if got := kids[1].Validation(); got != " <number {1..100}>" {
		t.Errorf("int Validation = %q", got)
	}
	if got := usage(kids[0]); len(got) != 0 {
		t.Errorf("leaf has %d children", len(got))
	}
}

func TestBuildInteractive(t *testing.T) {
	var asked []string
	in := argtree.InteractorFuncs{
		InputFunc: func(a *argtree.Argument) (string, error) {
			asked = append(asked, a.LongestKey())
			return "Bob", nil
		},
		BlameFunc: func(error) {},
	}
	s, err := New(&Node{
		Name: "app",
		Keys: []string{"app"},
		Args: []*Node{
			{Name: "name", Keys: []string{"--name"}, Interactive: true, Value: &Rules{Type: "string", UpperCase: true}},
			{Name: "city", Keys: []string{"--city"}, Default: "Oslo", Value: &Rules{}},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root, usage, err := s.Build(nil, in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ctx := argtree.NewContext()
	if _, err := argtree.NewInterpreter(argtree.Options{}).Run([]string{"app"}, root, usage, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"--name"}, asked); diff != "" {
		t.Errorf("asked mismatch (-want +got):\n%s", diff)
	}
	nameID, _ := s.ID("name")
	cityID, _ := s.ID("city")
	want := map[int]argtree.Value{
		nameID: argtree.Str("BOB"),
		cityID: argtree.Str("Oslo"),
	}
	if diff := cmp.Diff(want, contextMap(ctx)); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDefaultOnly(t *testing.T) {
	doc := `name = "app"
keys = ["app"]

[[args]]
name = "greeting"
default = "hello"

[[args]]
name = "level"
keys = ["--level"]
default = 3
`
	s, err := LoadTOML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	root, usage, err := s.Build(nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	greeting, _ := s.ID("greeting")
	level, _ := s.ID("level")

	ctx := argtree.NewContext()
	if _, err := argtree.NewInterpreter(argtree.Options{}).Run([]string{"app"}, root, usage, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[int]argtree.Value{
		greeting: argtree.Str("hello"),
		level:    argtree.Int(3),
	}
	if diff := cmp.Diff(want, contextMap(ctx)); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}

	ctx = argtree.NewContext()
	if _, err := argtree.NewInterpreter(argtree.Options{}).Run([]string{"app", "--level"}, root, usage, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, ok := ctx.Lookup(level); !ok || !got.IsNone() {
		t.Fatalf("matched default only node stored %v, %v; want none", got, ok)
	}
}
