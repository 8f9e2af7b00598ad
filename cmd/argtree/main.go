// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argtree runs a command line against an argument tree, either the
// built in demo tree or one loaded from a schema file, and prints what was
// parsed.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/shayne/yargs"
	"tailscale.com/types/logger"

	"github.com/yeetrun/argtree/pkg/argschema"
	"github.com/yeetrun/argtree/pkg/argtree"
	"github.com/yeetrun/argtree/pkg/tui"
)

var prefsFile = filepath.Join(os.Getenv("HOME"), ".argtree", "prefs.json")

type prefs struct {
	NeedHelp      string `json:"need_help"`
	IgnoreUnknown bool   `json:"ignore_unknown"`
	Color         *bool  `json:"color"`
}

func (p *prefs) load(path string) error {
	j, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(j, p)
}

type globalFlagsParsed struct {
	Schema        string `flag:"schema" help:"Load the argument tree from a TOML, YAML or HCL file (ARGTREE_SCHEMA)"`
	IgnoreUnknown bool   `flag:"ignore-unknown" help:"Skip unknown arguments instead of failing"`
	DoEverything  bool   `flag:"do-everything" help:"Perform the actions of every matched argument"`
	NeedHelp      string `flag:"need-help" help:"Token asking for help on the argument before it (ARGTREE_NEED_HELP)"`
	NoInteractive bool   `flag:"no-interactive" help:"Never ask for missing values"`
	NoColor       bool   `flag:"no-color" help:"Disable colored output"`
	Debug         bool   `flag:"debug" help:"Log how the command line is interpreted"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// config is the effective setup of a run. Flags win over the environment,
// which wins over the preferences file.
type config struct {
	schema      string
	interactive bool
	color       bool
	opts        argtree.Options
}

func resolveConfig(p prefs, f globalFlagsParsed, getenv func(string) string) config {
	c := config{
		schema:      getenv("ARGTREE_SCHEMA"),
		interactive: !f.NoInteractive,
		color:       p.Color == nil || *p.Color,
		opts: argtree.Options{
			NeedHelp:      p.NeedHelp,
			IgnoreUnknown: p.IgnoreUnknown || f.IgnoreUnknown,
			DoEverything:  f.DoEverything,
			Logf:          logger.Discard,
		},
	}
	if v := getenv("ARGTREE_NEED_HELP"); v != "" {
		c.opts.NeedHelp = v
	}
	if f.NeedHelp != "" {
		c.opts.NeedHelp = f.NeedHelp
	}
	if f.Schema != "" {
		c.schema = f.Schema
	}
	if f.NoColor {
		c.color = false
	}
	if f.Debug {
		c.opts.Logf = log.Printf
	}
	return c
}

func main() {
	var p prefs
	if err := p.load(prefsFile); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load preferences: %v", err)
	}
	os.Exit(run(os.Args, p, os.Stdin, os.Stdout, os.Stderr))
}

// run interprets argv and returns the exit code.
func run(argv []string, p prefs, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, rest, err := parseGlobalFlags(argv[1:])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	cfg := resolveConfig(p, flags, os.Getenv)
	c := tui.NewColorizer(cfg.color)

	if cfg.interactive {
		var in *tui.Prompter
		if f, ok := stdin.(*os.File); ok && tui.IsTerminal(f) {
			in = tui.NewPrompter(stdout, c)
		} else {
			in = tui.NewLinePrompter(stdin, stdout, c)
		}
		defer in.Close()
		cfg.opts.Interactor = in
	}
	interp := argtree.NewInterpreter(cfg.opts)

	var (
		root  *argtree.Argument
		usage argtree.Usage
	)
	help := func() int { return interp.Print(stdout, root, usage) }
	if cfg.schema != "" {
		s, err := argschema.LoadFile(cfg.schema)
		if err != nil {
			fmt.Fprintln(stderr, c.Wrap(tui.ColorRed, "Error: "+err.Error()))
			return 1
		}
		actions := argschema.Actions{
			"show": func(arg *argtree.Argument, ctx *argtree.Context) int { return show(stdout, arg, ctx) },
			"help": func(*argtree.Argument, *argtree.Context) int { return help() },
		}
		root, usage, err = s.Build(actions, cfg.opts.Interactor)
		if err != nil {
			fmt.Fprintln(stderr, c.Wrap(tui.ColorRed, "Error: "+err.Error()))
			return 1
		}
	} else {
		root, usage = demoTree(stdout, help)
	}

	args := append([]string{filepath.Base(argv[0])}, rest...)
	res, err := interp.Run(args, root, usage, argtree.NewContext())
	if err != nil {
		var e *argtree.Error
		if errors.As(err, &e) && e.Code() == argtree.NeedHelp {
			fmt.Fprintln(stdout, e.Help())
			return 0
		}
		fmt.Fprintln(stderr, c.Wrap(tui.ColorRed, "Error: "+err.Error()))
		return 1
	}
	cfg.opts.Logf("argtree: result %d", res)
	return 0
}

// show prints every value of ctx, one per line:
//
//	Arg(4) = boolean(true)
//	Arg(8) = array[ string(a) string(b) ]
func show(w io.Writer, arg *argtree.Argument, ctx *argtree.Context) int {
	ctx.All(func(id int, v argtree.Value) bool {
		fmt.Fprintf(w, "Arg(%d) = ", id)
		if !v.IsArray() {
			fmt.Fprintf(w, "%s(%s)\n", v.TypeName(), v)
			return true
		}
		fmt.Fprintf(w, "%s[ ", v.TypeName())
		elems, _ := v.Elems()
		for _, e := range elems {
			fmt.Fprintf(w, "%s(%s) ", e.TypeName(), e)
		}
		fmt.Fprintln(w, "]")
		return true
	})
	return arg.ID
}
