package cmd

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
)

func completionDeps(t *testing.T) (*bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0
	cli.SetDeps(&cli.Deps{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(code int) { exitCode = code },
	})
	t.Cleanup(cli.ResetDeps)
	return stdout, stderr, &exitCode
}

func TestGenerateCompletion(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "bash completion"},
		{"zsh", "#compdef focus"},
		{"fish", "complete -c focus"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			stdout, stderr, exitCode := completionDeps(t)

			generateCompletion(tt.shell)

			if *exitCode != 0 {
				t.Fatalf("expected exit code 0, got %d: %s", *exitCode, stderr.String())
			}
			output := stdout.String()
			if !strings.Contains(output, tt.marker) {
				t.Errorf("expected %s completion to contain %q", tt.shell, tt.marker)
			}
			if !strings.Contains(output, "focus") {
				t.Errorf("expected %s completion to reference the focus command", tt.shell)
			}
			if stderr.String() != "" {
				t.Errorf("expected no errors, got: %s", stderr.String())
			}
		})
	}
}

// TestGenerateCompletion_InvalidShell tests error handling for unsupported shell types
func TestGenerateCompletion_InvalidShell(t *testing.T) {
	tests := []string{"invalidshell", "", "BASH", "PowerShell", "   ", "bash;rm -rf /", "sh"}

	for _, shell := range tests {
		t.Run(shell, func(t *testing.T) {
			stdout, stderr, exitCode := completionDeps(t)

			generateCompletion(shell)

			if *exitCode != 1 {
				t.Errorf("expected exit code 1 for %q, got %d", shell, *exitCode)
			}
			if !strings.Contains(stderr.String(), "Unsupported shell") {
				t.Errorf("expected 'Unsupported shell' error, got: %s", stderr.String())
			}
			if !strings.Contains(stderr.String(), "bash, zsh, fish, powershell") {
				t.Errorf("expected the supported shells to be listed, got: %s", stderr.String())
			}
			if stdout.String() != "" {
				t.Errorf("expected no stdout output, got: %s", stdout.String())
			}
		})
	}
}

// TestCompletionCmd_ValidArgs tests that the completion command has correct ValidArgs
func TestCompletionCmd_ValidArgs(t *testing.T) {
	expected := []string{"bash", "zsh", "fish", "powershell"}
	if len(completionCmd.ValidArgs) != len(expected) {
		t.Fatalf("expected %d ValidArgs, got %d", len(expected), len(completionCmd.ValidArgs))
	}
	for i, shell := range expected {
		if completionCmd.ValidArgs[i] != shell {
			t.Errorf("ValidArgs[%d] = %q, expected %q", i, completionCmd.ValidArgs[i], shell)
		}
	}
}

// TestCompletionCmd_HelpText tests that the completion command documents each shell
func TestCompletionCmd_HelpText(t *testing.T) {
	for _, shell := range completionCmd.ValidArgs {
		if !strings.Contains(completionCmd.Long, "focus completion "+shell) {
			t.Errorf("expected Long description to contain usage example for %s", shell)
		}
	}
}

func TestCompleteConfigSet(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
		count    int
	}{
		{"keys", nil, "week_start_day", len(configKeys)},
		{"weekdays", []string{"week_start_day"}, "monday\tMon", 7},
		{"storage", []string{"storage"}, "jsonl", 2},
		{"log levels", []string{"log_level"}, "debug", 4},
		{"themes", []string{"theme"}, "dracula", -1},
		{"free form value", []string{"timezone"}, "", 0},
		{"both args given", []string{"theme", "nord"}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := completeConfigSet(configSetCmd, tt.args, "")
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("directive = %v, want NoFileComp", directive)
			}
			if tt.count >= 0 && len(got) != tt.count {
				t.Errorf("got %d completions, want %d: %v", len(got), tt.count, got)
			}
			if tt.contains != "" && !slices.Contains(got, tt.contains) {
				t.Errorf("completions %v should contain %q", got, tt.contains)
			}
		})
	}
}

func TestCompleteConfigSet_DataDir(t *testing.T) {
	_, directive := completeConfigSet(configSetCmd, []string{"data_dir"}, "")
	if directive != cobra.ShellCompDirectiveFilterDirs {
		t.Errorf("directive = %v, want FilterDirs", directive)
	}
}

func TestRegisterCompletions(t *testing.T) {
	registerCompletions()

	if configSetCmd.ValidArgsFunction == nil {
		t.Error("expected config set to complete its arguments")
	}
}

func TestWeekDayCompletions(t *testing.T) {
	got := weekDayCompletions()
	want := []string{"sunday\tSun", "monday\tMon", "tuesday\tTue", "wednesday\tWed", "thursday\tThu", "friday\tFri", "saturday\tSat"}
	if !slices.Equal(got, want) {
		t.Errorf("weekDayCompletions() = %v, want %v", got, want)
	}
}

func TestFixedCompletion(t *testing.T) {
	fn := fixedCompletion("manual", "timed", "clock")
	got, directive := fn(weekCmd, nil, "")
	if !slices.Equal(got, []string{"manual", "timed", "clock"}) {
		t.Errorf("got %v", got)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", directive)
	}
}
