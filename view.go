package main

import (
	"github.com/spf13/cobra"

	"promptpad/viewmode"
)

type viewState struct {
	Mode        viewmode.Mode `json:"mode" yaml:"mode"`
	ToggleLabel string        `json:"toggle_label" yaml:"toggle_label"`
}

func newViewState(m viewmode.Mode) viewState {
	return viewState{Mode: m, ToggleLabel: m.ToggleLabel()}
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show or toggle the browser layout (desktop or vertical)",
}

var viewShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return write(cmd, newViewState(a.controller.ViewMode()))
		})
	},
}

var viewToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between desktop and vertical layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			m, err := a.controller.ToggleViewMode()
			if err != nil {
				return err
			}
			return write(cmd, newViewState(m))
		})
	},
}

var viewSetCmd = &cobra.Command{
	Use:       "set <desktop|vertical>",
	Short:     "Save a layout",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"desktop", "vertical"},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := viewmode.Parse(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			if err := a.controller.SetViewMode(m); err != nil {
				return err
			}
			return write(cmd, newViewState(m))
		})
	},
}

func init() {
	viewCmd.AddCommand(viewShowCmd, viewToggleCmd, viewSetCmd)
	rootCmd.AddCommand(viewCmd)
}
