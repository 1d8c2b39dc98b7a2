// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/smpctlgo/internal/command"
	"github.com/staranto/smpctlgo/internal/config"
	mylog "github.com/staranto/smpctlgo/internal/log"
	"github.com/staranto/smpctlgo/internal/pricestore"
	"github.com/staranto/smpctlgo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create the cache directory when caching is enabled.
	if _, ok, err := pricestore.EnsureBaseDir(); err != nil && ok {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an optional @set of default arguments from the
// config file into the command line. The @set marker may appear anywhere
// after the subcommand; with no marker the "defaults" set is applied.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	workingArgs := preamble

	// Scan through args and find the @set marker, if any. The marker is removed
	// from the arg list and names the config set to expand.
	idx := 2
	set := "defaults"
	rest := args[2:]
	for i, a := range rest {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			rest = append(rest[:i], rest[i+1:]...)
			break
		}
	}

	workingArgs = append(workingArgs, rest...)
	args = workingArgs

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:idx], append(parts, args[idx:]...)...)
		idx += len(parts)
	}

	return args
}
