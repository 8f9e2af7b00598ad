// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yeetrun/argtree/pkg/argschema"
	"github.com/yeetrun/argtree/pkg/argtree"
)

//go:embed greet.toml
var greetSchema []byte

func main() {
	s, err := argschema.LoadTOML(bytes.NewReader(greetSchema))
	if err != nil {
		log.Fatalf("failed to load schema: %v", err)
	}
	who, _ := s.ID("who")
	times, _ := s.ID("times")
	shout, _ := s.ID("shout")

	var (
		root  *argtree.Argument
		usage argtree.Usage
	)
	interp := argtree.NewInterpreter(argtree.Options{})
	actions := argschema.Actions{
		"help": func(*argtree.Argument, *argtree.Context) int {
			return interp.Print(os.Stdout, root, usage)
		},
		"say": func(arg *argtree.Argument, ctx *argtree.Context) int {
			name, _, _ := argtree.Lookup[string](ctx, who)
			n, _, _ := argtree.Lookup[int](ctx, times)
			msg := fmt.Sprintf("Hello, %s!", name)
			if ctx.Has(shout) {
				msg = strings.ToUpper(msg)
			}
			for range n {
				fmt.Println(msg)
			}
			return arg.ID
		},
	}
	root, usage, err = s.Build(actions, nil)
	if err != nil {
		log.Fatalf("failed to build schema: %v", err)
	}
	if _, err := interp.Run(os.Args, root, usage, argtree.NewContext()); err != nil {
		if argtree.IsNeedHelp(err) {
			fmt.Print(err.(*argtree.Error).Help())
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
