package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"promptpad/composer"
	"promptpad/prompt"
	"promptpad/ui"
)

var promptsCmd = &cobra.Command{
	Use:     "prompts",
	Aliases: []string{"p"},
	Short:   "Manage saved base prompts",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved prompts with their indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			return write(cmd, ui.Renderer{}.Items(a.controller.Prompts()))
		})
	},
}

var promptsAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Save a prompt without copying it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			added, err := a.controller.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return write(cmd, map[string]bool{"added": added})
		})
	},
}

var promptsRmCmd = &cobra.Command{
	Use:     "rm <index>",
	Aliases: []string{"delete"},
	Short:   "Delete the prompt at index (as shown by list)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		return withApp(cmd, func(a *app) error {
			if err := a.controller.Delete(index); err != nil {
				if errors.Is(err, composer.ErrNoSuchPrompt) {
					return fmt.Errorf("%w: %d", err, index)
				}
				return err
			}
			return nil
		})
	},
}

var promptsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			done, err := a.controller.ClearAll(confirmer(cmd))
			if err != nil {
				return err
			}
			if !done {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
			}
			return nil
		})
	},
}

var exportFile string

var promptsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write saved prompts as a backup file",
	Long: `Write saved prompts as a JSON backup. Without --file the document goes to
stdout; use --file - explicitly for the same, or e.g. --file ` + prompt.ExportFileName + `.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			data, err := a.controller.Export()
			if errors.Is(err, prompt.ErrEmptyExport) {
				return errors.New(composer.MessageNoExport)
			}
			if err != nil {
				return err
			}
			if exportFile == "" || exportFile == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(exportFile, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", exportFile, err)
			}
			a.logger.Info("exported prompts", "file", exportFile)
			return nil
		})
	},
}

var promptsImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace saved prompts with the contents of a backup file",
	Long: `Replace saved prompts with the contents of a backup file. A malformed
file is rejected before anything is asked. When the file is read from
stdin (-) there is nobody to answer the overwrite question, so pass --yes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if args[0] == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			done, err := a.controller.Import(raw, confirmer(cmd))
			if errors.Is(err, prompt.ErrMalformedImport) {
				return errors.New(composer.MessageBadImport)
			}
			if err != nil {
				return err
			}
			if !done {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
				return nil
			}
			return write(cmd, ui.Renderer{}.Items(a.controller.Prompts()))
		})
	},
}

func init() {
	promptsExportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "output file (default stdout)")

	promptsCmd.AddCommand(promptsListCmd, promptsAddCmd, promptsRmCmd, promptsClearCmd,
		promptsExportCmd, promptsImportCmd)
	rootCmd.AddCommand(promptsCmd)
}
