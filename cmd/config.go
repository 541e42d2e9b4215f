package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for focus.

focus works without any configuration file. All settings have defaults:
  - week_start_day: monday
  - default_target_minutes: 2400 (40h)
  - storage: sqlite
  - timezone: Local (system timezone)
  - theme: dracula
  - log_level: warn

Examples:
  focus config                       Show all current settings
  focus config --init                Create a sample config file
  focus config set storage jsonl     Change one setting

Configuration file location:
  ~/.config/focus/config.toml        Linux
  %APPDATA%\focus\config.toml        Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d := cli.GetDeps()
		if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
			handlers.InitConfig(d)
			return
		}
		handlers.ShowConfig(d)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration setting",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SetConfig(cli.GetDeps(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.Flags().Bool("init", false, "create a sample config file")
}
