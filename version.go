package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// buildInfo fills commit and date from the VCS stamp when ldflags left them empty.
func buildInfo() (rev, when string) {
	rev, when = commit, date
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return rev, when
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "" {
				rev = s.Value
			}
		case "vcs.time":
			if when == "" {
				when = s.Value
			}
		}
	}
	return rev, when
}

func versionString() string {
	rev, _ := buildInfo()
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, rev)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		rev, when := buildInfo()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "promptpad %s\n", version)
		fmt.Fprintf(out, "  Go:     %s\n", runtime.Version())
		fmt.Fprintf(out, "  Commit: %s\n", rev)
		fmt.Fprintf(out, "  Date:   %s\n", when)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
