// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// main.go - Entry point for keel.
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/keel/internal/cli"
	"github.com/jeranaias/keel/internal/config"
)

// Build-time version injection:
//
//	go build -ldflags "-X main.version=... -X main.gitCommit=... -X main.buildDate=..."
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

func init() {
	if version != "" {
		cli.Version = version
	}
	if gitCommit != "" {
		cli.GitCommit = gitCommit
	}
	if buildDate != "" {
		cli.BuildDate = buildDate
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	command, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}

	// Version and help need no runtime context.
	switch command {
	case cli.CmdVersion:
		cli.PrintVersion()
		return cli.ExitSuccess
	case cli.CmdHelp:
		cli.PrintUsage()
		return cli.ExitSuccess
	}

	ctx, err := cli.NewRuntime(args.Flags, config.EnvironMap())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	defer ctx.Close()

	switch command {
	case cli.CmdRun:
		err = cli.HandleRun(ctx, args)
	case cli.CmdInit:
		err = cli.HandleInit(ctx, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(ctx, args)
	case cli.CmdCompletions:
		err = cli.HandleCompletions(ctx, args)
	}

	if err != nil {
		ctx.Log.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
