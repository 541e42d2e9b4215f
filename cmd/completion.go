package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/filter"
	"github.com/xolan/focus/internal/goal"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for focus.

The completion command allows you to generate shell completion scripts for
bash, zsh, fish, and powershell. This enables tab-completion for commands,
flags, and arguments in your shell.

Usage:
  focus completion bash       Generate bash completion script
  focus completion zsh        Generate zsh completion script
  focus completion fish       Generate fish completion script
  focus completion powershell Generate powershell completion script

Installation Instructions:

Bash:
  # Load completion temporarily (current session only):
  source <(focus completion bash)

  # Install completion permanently:
  # Linux:
  focus completion bash > ~/.local/share/bash-completion/completions/focus

  # macOS (requires bash-completion from Homebrew):
  focus completion bash > $(brew --prefix)/etc/bash_completion.d/focus

Zsh:
  # Load completion temporarily (current session only):
  source <(focus completion zsh)

  # Install completion permanently:
  # Add to ~/.zshrc:
  echo 'fpath=(~/.zsh/completion $fpath)' >> ~/.zshrc
  echo 'autoload -Uz compinit && compinit' >> ~/.zshrc

  # Generate completion file:
  mkdir -p ~/.zsh/completion
  focus completion zsh > ~/.zsh/completion/_focus

  # Then restart your shell

Fish:
  # Install completion permanently:
  focus completion fish > ~/.config/fish/completions/focus.fish

PowerShell:
  # Open your PowerShell profile:
  notepad $PROFILE

  # Add this line to your profile:
  focus completion powershell | Out-String | Invoke-Expression

  # Save and restart PowerShell`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	deps := cli.GetDeps()
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(deps.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
		return
	}
}

// configKeys lists the keys accepted by 'focus config set'.
var configKeys = []string{
	"week_start_day",
	"default_target_minutes",
	"timezone",
	"storage",
	"data_dir",
	"theme",
	"log_level",
}

// registerCompletions attaches value completion to flags and arguments.
// Flags are defined in init functions, so this runs from Execute.
func registerCompletions() {
	_ = weekCmd.RegisterFlagCompletionFunc("kind", fixedCompletion(
		string(filter.KindManual), string(filter.KindTimed), string(filter.KindClock)))
	_ = goalSetCmd.RegisterFlagCompletionFunc("start", fixedCompletion(weekDayCompletions()...))
	configSetCmd.ValidArgsFunction = completeConfigSet
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// weekDayCompletions returns "monday\tMon" style entries, Sunday first.
func weekDayCompletions() []string {
	out := make([]string, 0, 7)
	for d := goal.Sunday; d <= goal.Saturday; d++ {
		out = append(out, strings.ToLower(d.String())+"\t"+d.ShortName())
	}
	return out
}

// completeConfigSet completes the key, then the values known for that key.
func completeConfigSet(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return configKeys, cobra.ShellCompDirectiveNoFileComp
	case 1:
		switch args[0] {
		case "week_start_day":
			return weekDayCompletions(), cobra.ShellCompDirectiveNoFileComp
		case "storage":
			return []string{config.StorageSQLite, config.StorageJSONL}, cobra.ShellCompDirectiveNoFileComp
		case "log_level":
			return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
		case "theme":
			return config.Themes(), cobra.ShellCompDirectiveNoFileComp
		case "data_dir":
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
