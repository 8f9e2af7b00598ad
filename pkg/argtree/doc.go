// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argtree parses command lines against a tree of arguments.
//
// Every Argument is matched by its keys. Children are supplied lazily by a
// Usage function, so only the levels actually reached are built. Values are
// amended, checked and converted by a Validator and land in a Context keyed
// by argument ID:
//
//	root := &argtree.Argument{ID: App, Keys: []string{"app"}}
//	usage := func(a *argtree.Argument) []*argtree.Argument {
//		if a.ID != App {
//			return nil
//		}
//		return []*argtree.Argument{
//			(&argtree.Argument{ID: Count, Keys: []string{"-n", "--count"}, Required: true}).
//				WithValidator(argtree.NewValidator().Integer().Min(argtree.Int(1))),
//		}
//	}
//	ctx := argtree.NewContext()
//	_, err := argtree.NewInterpreter(argtree.Options{}).Run(os.Args, root, usage, ctx)
//
// Tokens may appear out of order: a token not recognized at the current
// level is handed back to the closest ancestor level that knows it. Tokens
// nobody knows fail with InvalidArgument unless Options.IgnoreUnknown is set.
package argtree
