package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"promptpad/compose"
)

// translationFlags overlays command-line choices onto the configured
// translation defaults. Only flags the user set take effect.
type translationFlags struct {
	language    string
	register    string
	format      string
	allowSlang  bool
	allowAbbrev bool
}

func (f *translationFlags) addTo(fs *pflag.FlagSet) {
	fs.StringVar(&f.language, "lang", "", "target language (default from config)")
	fs.StringVar(&f.register, "register", "", "faithful or natural (default from config)")
	fs.StringVar(&f.format, "format", "", "plain, markdown or codeblock (default from config)")
	fs.BoolVar(&f.allowSlang, "allow-slang", false, "allow slang in the translation")
	fs.BoolVar(&f.allowAbbrev, "allow-abbrev", false, "allow abbreviations in the translation")
}

func (f *translationFlags) apply(fs *pflag.FlagSet, opts compose.TranslationOptions) (compose.TranslationOptions, error) {
	if fs.Changed("lang") {
		opts.TargetLanguage = f.language
	}
	if fs.Changed("register") {
		opts.Register = compose.Register(f.register)
	}
	if fs.Changed("format") {
		opts.OutputFormat = compose.OutputFormat(f.format)
	}
	if fs.Changed("allow-slang") {
		opts.AllowSlang = f.allowSlang
	}
	if fs.Changed("allow-abbrev") {
		opts.AllowAbbreviations = f.allowAbbrev
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("translation options: %w", err)
	}
	return opts, nil
}

var templateFlags translationFlags

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the translation-request template",
	Long: `Print the translation-request sentence built from the configured
defaults (translation.* in the config file) and any flags given.

Examples:
  promptpad template
  promptpad template --lang German --register faithful --format markdown`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			opts, err := templateFlags.apply(cmd.Flags(), a.controller.TranslationDefaults())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.controller.TranslationPrompt(&opts))
			return err
		})
	},
}

var (
	copyBase     string
	copyAddon    string
	copyTemplate bool
	copyFlags    translationFlags
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Compose base and addon, copy to the clipboard and save the base",
	Long: `Compose base and addon into "base\n=\naddon", copy it to the clipboard
and, once the copy succeeded, save the base prompt.

With --template the base is the translation-request sentence; the
translation flags of "promptpad template" apply.

Examples:
  promptpad copy --base "Review this diff" --addon "$(git diff)"
  promptpad copy --template --lang Japanese --addon "Hello there"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			base := copyBase
			if copyTemplate {
				opts, err := copyFlags.apply(cmd.Flags(), a.controller.TranslationDefaults())
				if err != nil {
					return err
				}
				base = a.controller.TranslationPrompt(&opts)
			}
			res, err := a.controller.Copy(base, copyAddon)
			if errors.Is(err, compose.ErrNothingToCopy) {
				return errors.New("nothing to copy: give --base or --addon")
			}
			if err != nil {
				return err
			}
			return write(cmd, res)
		})
	},
}

func init() {
	templateFlags.addTo(templateCmd.Flags())

	copyCmd.Flags().StringVarP(&copyBase, "base", "b", "", "base prompt")
	copyCmd.Flags().StringVarP(&copyAddon, "addon", "a", "", "addon text")
	copyCmd.Flags().BoolVarP(&copyTemplate, "template", "t", false, "use the translation template as the base")
	copyFlags.addTo(copyCmd.Flags())
	copyCmd.MarkFlagsMutuallyExclusive("base", "template")

	rootCmd.AddCommand(templateCmd, copyCmd)
}
