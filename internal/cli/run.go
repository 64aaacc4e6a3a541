// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// run.go - The run command for keel.
//
// The task body is a placeholder for real work; what matters here is the
// flow around it: flag/config resolution, dry-run short circuit, timeout
// enforcement, and rendering in the resolved output format.
package cli

import (
	"context"
	"math"
	"time"
)

// HandleRun executes a task. An empty task name falls back to the configured
// default task; an empty profile falls back to the configured profile.
func HandleRun(ctx *RuntimeContext, args Args) error {
	task := args.Task
	if task == "" {
		task = ctx.Config.Run.DefaultTask
	}
	profile := args.Profile
	if profile == "" {
		profile = ctx.Config.Run.Profile
	}

	timeout := ctx.Flags.ResolveTimeout(ctx.Config)
	parallelism := ctx.Flags.ResolveParallelism(ctx.Config)

	payload := map[string]any{
		"task":            task,
		"profile":         profile,
		"dry_run":         ctx.Flags.DryRun,
		"timeout_seconds": intValueOrNil(timeout),
		"parallelism":     intValueOrNil(parallelism),
	}

	if ctx.Flags.DryRun {
		ctx.Log.Infof("dry run: task %q under profile %q", task, profile)
		return ctx.Render("Dry run complete (no changes made)", payload)
	}

	runCtx := context.Background()
	if timeout != nil {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, time.Duration(*timeout)*time.Second)
		defer cancel()
	}

	ctx.Log.Debugf("executing task %q under profile %q", task, profile)
	start := time.Now()
	if err := executeTask(runCtx, task); err != nil {
		return err
	}
	duration := time.Since(start)
	payload["duration_seconds"] = math.Round(duration.Seconds()*1000) / 1000

	return ctx.Render("Task completed successfully", payload)
}

// executeTask simulates work. Replace the body with the real task and keep
// the context plumbing.
func executeTask(ctx context.Context, task string) error {
	select {
	case <-time.After(200 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func intValueOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
