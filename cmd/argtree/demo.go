// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"

	"github.com/yeetrun/argtree/pkg/argtree"
)

const (
	argApp = iota
	argHelp
	argCall
	argFlag
	argBool
	argInteger
	argReal
	argString
	argArray
	argPair
	argPairFirst
	argPairSecond
	argNameless
	argHidden
	argRequires
)

// demoTree returns the demo application tree. call prints the parsed
// values to w and help prints the usage of the application.
func demoTree(w io.Writer, help func() int) (*argtree.Argument, argtree.Usage) {
	root := &argtree.Argument{
		ID:          argApp,
		Keys:        []string{"argtree"},
		Description: "The demo application for the argtree library",
	}
	call := func(arg *argtree.Argument, ctx *argtree.Context) int { return show(w, arg, ctx) }

	usage := func(arg *argtree.Argument) []*argtree.Argument {
		switch arg.ID {
		case argApp:
			return []*argtree.Argument{
				(&argtree.Argument{ID: argFlag, Keys: []string{"-f", "--flag"}, Description: "Argument without value"}).
					WithCertain(argtree.Value{}),
				{ID: argHelp, Keys: []string{"-h", "--help", "help"}, Description: "Print this usage", EasyAction: help},
				{ID: argCall, Keys: []string{"--call", "call"}, Description: "Active argument", Action: call},
			}
		case argCall:
			return []*argtree.Argument{
				(&argtree.Argument{ID: argBool, Keys: []string{"-b", "--bool"}, Description: "Bool argument", Required: true}).
					WithValidator(argtree.NewValidator().Boolean().LowerCase().Glossary(
						argtree.Term{Text: argtree.Str("y"), Substitute: argtree.Bool(true)},
						argtree.Term{Text: argtree.Str("n"), Substitute: argtree.Bool(false)},
					)).
					WithDefault(argtree.Str("y")),
				(&argtree.Argument{ID: argInteger, Keys: []string{"-i", "--int"}, Description: "Integer argument", Required: true}).
					WithValidator(argtree.NewValidator().Integer().Min(argtree.Int(1)).Max(argtree.Int(100))),
				(&argtree.Argument{ID: argReal, Keys: []string{"-r", "--real"}, Description: "Real argument"}).
					WithValidator(argtree.NewValidator().Real().Min(argtree.Int(-30)).Max(argtree.Int(30))).
					WithDefault(argtree.Real(1.23)),
				(&argtree.Argument{ID: argString, Keys: []string{"-s", "--string"}, Description: "String argument"}).
					WithValidator(argtree.NewValidator().String().Min(argtree.Int(1)).Max(argtree.Int(16))).
					WithDefault(argtree.Str("str")),
				(&argtree.Argument{ID: argArray, Keys: []string{"-a", "--array"}, Description: "Array argument", Multiple: true, Unique: true}).
					WithValidator(argtree.NewValidator().NonEmpty()),
				(&argtree.Argument{ID: argPair, Keys: []string{"-p", "--pair"}, Description: "Paired argument"}).
					WithValidator(argtree.NewValidator().String("name")).
					WithDefault(argtree.Str("pair")),
				(&argtree.Argument{ID: argHidden, Keys: []string{"-h", "--hidden"}, Description: "Hidden argument", Hidden: true}).
					WithValidator(argtree.NewValidator().Prefix("<tag>").Suffix("</tag>").Trim()),
				(&argtree.Argument{ID: argRequires, Keys: []string{"--requires"}, Description: "Version constraint, like >= 1.2"}).
					WithValidator(argtree.NewValidator().String("constraint").Check(checkConstraint)),
				(&argtree.Argument{ID: argNameless}).
					WithDefault(argtree.Str("Nameless argument")),
			}
		case argPair:
			return []*argtree.Argument{
				(&argtree.Argument{ID: argPairFirst, Keys: []string{"-1st", "--first"}, Description: "First argument"}).
					WithValidator(argtree.NewValidator()).
					WithDefault(argtree.Str("first")),
				(&argtree.Argument{ID: argPairSecond, Keys: []string{"-2nd", "--second"}, Description: "Second argument"}).
					WithValidator(argtree.NewValidator()).
					WithDefault(argtree.Str("second")),
			}
		}
		return nil
	}
	return root, usage
}

func checkConstraint(s string) error {
	if _, err := semver.NewConstraint(s); err != nil {
		return fmt.Errorf("not a version constraint: %w", err)
	}
	return nil
}
