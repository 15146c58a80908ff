// Package cmd holds the root command of the debugmenu binary. Subcommands
// register themselves from package main.
package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/colors"
	"github.com/cristianoliveira/debugmenu/internal/config"
	"github.com/cristianoliveira/debugmenu/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "debugmenu",
	Short:         "An in-app debug console with persisted flags.",
	Long:          `An in-app debug console with persisted flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s", strings.TrimSpace(cmd.Long), cmd.UsageString())
			return
		}
		printHelpText(cmd)
	})
}

var commandOrder = []string{"run", "flags", "version"}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", c.Use, c.Short))
				break
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), `debugmenu v%s

%s

USAGE:
    debugmenu [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), cmd.Short, strings.Join(cmdLines, "\n"))
}
