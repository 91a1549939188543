package main

import (
	"github.com/spf13/cobra"

	"promptpad/ui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Compose prompts interactively in the terminal",
	Long: `Start an interactive session with the saved-prompt list.

Type "help" at the prompt for the commands. "copy" puts base and addon on
the clipboard and saves the base; "select N" loads saved prompt N (as
numbered in "list") into the base.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			console := ui.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
			unbind := a.controller.Bind(console)
			defer unbind()
			return console.Run(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
