package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"promptpad/clipboard"
	"promptpad/compose"
	"promptpad/composer"
	"promptpad/config"
	"promptpad/home"
	"promptpad/kv"
	"promptpad/output"
	"promptpad/prompt"
	"promptpad/viewmode"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevelFlag string
	assumeYes    bool

	format   output.Format
	logLevel = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   "promptpad",
	Short: "Compose, save and reuse LLM prompts",
	Long: `promptpad keeps a list of reusable base prompts. Copying a base prompt
together with an addon puts "base\n=\naddon" on the clipboard and saves the
base for next time.

Use "promptpad serve" for the browser UI, "promptpad shell" for an
interactive terminal session, or the prompts/copy/template commands for
scripting.`,
	Version:       versionString(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.promptpad/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "promptpad home directory (default: ~/.promptpad)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevelFlag, "log-level", "", "log level: debug, info, warn or error (default from config)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&assumeYes, "yes", "y", false, "answer yes to confirmation questions",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		f, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		format = f

		if logLevelFlag != "" {
			l, err := config.ParseLevel(logLevelFlag)
			if err != nil {
				return err
			}
			logLevel.Set(l)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel,
		})))
		return nil
	}
}

// app is the wired object graph shared by every command that touches
// saved prompts.
type app struct {
	cfg        *config.Manager
	home       *home.Dir
	store      kv.Store
	prompts    *prompt.Store
	controller *composer.Controller
	logger     *slog.Logger
}

// newApp loads config and opens storage. terminal receives the OSC 52
// clipboard fallback.
func newApp(terminal io.Writer) (*app, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}

	cfgMgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, err
	}
	cfg := cfgMgr.Get()

	if logLevelFlag == "" {
		l, _ := config.ParseLevel(cfg.LogLevel)
		logLevel.Set(l)
	}
	logger := slog.Default()

	path := cfg.Storage.Path
	if path == "" {
		path = h.StorePath(cfg.Storage.Backend)
		if cfg.Storage.Backend != kv.BackendMemory {
			if err := h.EnsureExists(); err != nil {
				return nil, err
			}
		}
	}
	store, err := kv.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "path", path)

	if cfg.Clipboard.Fallback == config.FallbackNone {
		terminal = nil
	}

	prompts := prompt.NewStore(store, logger)
	controller := composer.New(composer.Options{
		Prompts:   prompts,
		Views:     viewmode.NewStore(store, logger),
		Clipboard: clipboard.NewSystem(terminal),
		Translation: func() compose.TranslationOptions {
			return cfgMgr.Get().Translation
		},
		ExportTimestamp: func() bool { return cfgMgr.Get().Export.Timestamp },
		Logger:          logger,
	})

	return &app{
		cfg:        cfgMgr,
		home:       h,
		store:      store,
		prompts:    prompts,
		controller: controller,
		logger:     logger,
	}, nil
}

func (a *app) Close() error {
	if c, ok := a.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// confirmer asks on stderr unless --yes was given.
func confirmer(cmd *cobra.Command) composer.Confirmer {
	if assumeYes {
		return composer.Always(true)
	}
	return composer.Prompt{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := newApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func write(cmd *cobra.Command, data any) error {
	return output.Write(cmd.OutOrStdout(), format, data)
}
