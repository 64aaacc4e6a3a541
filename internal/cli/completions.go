// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// completions.go - Shell completion script generation for keel.
//
// Scripts are generated from the command and flag tables below so they stay
// in sync with the parser without depending on any shell at build time.
package cli

import (
	"fmt"
	"strings"
)

var (
	completionCommands = []string{"run", "init", "config", "completions", "version", "help"}

	completionConfigSubs = []string{"show", "path", "paths", "reset", "schema"}

	completionGlobalFlags = []string{
		"--config", "--quiet", "--verbose", "--debug", "--trace",
		"--json", "--yaml", "--no-color", "--color", "--dry-run",
		"--yes", "--no-progress", "--diagnostics", "--timeout",
		"--parallel", "--version", "--help",
	}
)

// HandleCompletions writes a completion script for the requested shell to
// stdout. The shell name has already been validated by the parser.
func HandleCompletions(ctx *RuntimeContext, args Args) error {
	var script string
	switch args.Shell {
	case "bash":
		script = bashCompletions()
	case "zsh":
		script = zshCompletions()
	case "fish":
		script = fishCompletions()
	case "powershell":
		script = powershellCompletions()
	case "elvish":
		script = elvishCompletions()
	default:
		return NewUsageError("unsupported shell: %s", args.Shell)
	}

	fmt.Fprint(ctx.Stdout, script)
	return nil
}

func bashCompletions() string {
	return fmt.Sprintf(`# bash completion for keel
# Install: keel completions bash > /etc/bash_completion.d/keel
_keel() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "$prev" in
        config)
            COMPREPLY=($(compgen -W "%s" -- "$cur"))
            return
            ;;
        completions)
            COMPREPLY=($(compgen -W "%s" -- "$cur"))
            return
            ;;
        --color)
            COMPREPLY=($(compgen -W "auto always never" -- "$cur"))
            return
            ;;
        --config)
            COMPREPLY=($(compgen -f -- "$cur"))
            return
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    else
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    fi
}
complete -F _keel keel
`,
		strings.Join(completionConfigSubs, " "),
		strings.Join(ShellChoices, " "),
		strings.Join(completionGlobalFlags, " "),
		strings.Join(completionCommands, " "))
}

func zshCompletions() string {
	return fmt.Sprintf(`#compdef keel
# zsh completion for keel
# Install: keel completions zsh > "${fpath[1]}/_keel"
_keel() {
    local -a commands
    commands=(%s)

    _arguments -C \
        '--config[Override the config file path]:file:_files' \
        '(-q --quiet)'{-q,--quiet}'[Reduce output to only errors]' \
        '*'{-v,--verbose}'[Increase logging verbosity]' \
        '--debug[Enable debug logging]' \
        '--trace[Enable trace logging]' \
        '--json[Output machine-readable JSON]' \
        '--yaml[Output machine-readable YAML]' \
        '--no-color[Disable ANSI colors]' \
        '--color[Color policy]:policy:(auto always never)' \
        '--dry-run[Do not change anything on disk]' \
        '(-y --yes)'{-y,--yes}'[Assume yes for prompts]' \
        '--no-progress[Disable progress indicators]' \
        '--diagnostics[Emit additional diagnostics]' \
        '--timeout[Operation timeout in seconds]:seconds:' \
        '--parallel[Degree of parallelism]:count:' \
        '--version[Show version and exit]' \
        '1:command:->command' \
        '*::arg:->args'

    case "$state" in
        command)
            _describe 'command' commands
            ;;
        args)
            case "$words[1]" in
                config)
                    _values 'subcommand' %s
                    ;;
                completions)
                    _values 'shell' %s
                    ;;
                run)
                    _arguments '--profile[Override the profile]:profile:'
                    ;;
                init)
                    _arguments '--force[Recreate configuration]'
                    ;;
            esac
            ;;
    esac
}
_keel "$@"
`,
		strings.Join(completionCommands, " "),
		strings.Join(completionConfigSubs, " "),
		strings.Join(ShellChoices, " "))
}

func fishCompletions() string {
	var b strings.Builder
	b.WriteString("# fish completion for keel\n")
	b.WriteString("# Install: keel completions fish > ~/.config/fish/completions/keel.fish\n")

	subcommandCondition := "__fish_use_subcommand"
	for _, cmd := range completionCommands {
		fmt.Fprintf(&b, "complete -c keel -n %s -a %s\n", subcommandCondition, cmd)
	}
	for _, sub := range completionConfigSubs {
		fmt.Fprintf(&b, "complete -c keel -n '__fish_seen_subcommand_from config' -a %s\n", sub)
	}
	for _, shell := range ShellChoices {
		fmt.Fprintf(&b, "complete -c keel -n '__fish_seen_subcommand_from completions' -a %s\n", shell)
	}

	b.WriteString("complete -c keel -l config -r -d 'Override the config file path'\n")
	b.WriteString("complete -c keel -s q -l quiet -d 'Reduce output to only errors'\n")
	b.WriteString("complete -c keel -s v -l verbose -d 'Increase logging verbosity'\n")
	b.WriteString("complete -c keel -l debug -d 'Enable debug logging'\n")
	b.WriteString("complete -c keel -l trace -d 'Enable trace logging'\n")
	b.WriteString("complete -c keel -l json -d 'Output machine-readable JSON'\n")
	b.WriteString("complete -c keel -l yaml -d 'Output machine-readable YAML'\n")
	b.WriteString("complete -c keel -l no-color -d 'Disable ANSI colors'\n")
	b.WriteString("complete -c keel -l color -r -a 'auto always never' -d 'Color policy'\n")
	b.WriteString("complete -c keel -l dry-run -d 'Do not change anything on disk'\n")
	b.WriteString("complete -c keel -s y -l yes -d 'Assume yes for prompts'\n")
	b.WriteString("complete -c keel -l no-progress -d 'Disable progress indicators'\n")
	b.WriteString("complete -c keel -l diagnostics -d 'Emit additional diagnostics'\n")
	b.WriteString("complete -c keel -l timeout -r -d 'Operation timeout in seconds'\n")
	b.WriteString("complete -c keel -l parallel -r -d 'Degree of parallelism'\n")
	b.WriteString("complete -c keel -l version -d 'Show version and exit'\n")
	return b.String()
}

func powershellCompletions() string {
	return fmt.Sprintf(`# powershell completion for keel
# Install: keel completions powershell >> $PROFILE
Register-ArgumentCompleter -Native -CommandName keel -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $commands = @(%s)
    $flags = @(%s)
    $candidates = if ($wordToComplete -like '-*') { $flags } else { $commands }
    $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`,
		"'"+strings.Join(completionCommands, "', '")+"'",
		"'"+strings.Join(completionGlobalFlags, "', '")+"'")
}

func elvishCompletions() string {
	return fmt.Sprintf(`# elvish completion for keel
# Install: keel completions elvish >> ~/.config/elvish/rc.elv
set edit:completion:arg-completer[keel] = {|@words|
    var commands = [%s]
    var flags = [%s]
    if (has-prefix $words[-1] -) {
        put $@flags
    } else {
        put $@commands
    }
}
`,
		strings.Join(completionCommands, " "),
		strings.Join(completionGlobalFlags, " "))
}
