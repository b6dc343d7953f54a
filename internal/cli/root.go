package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reposcout/reposcout/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Called by
// the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the reposcout CLI and returns an error if any command fails.
//
// Logging defaults to info level on stderr; --verbose (-v) raises it to
// debug. The logger is attached to the command context and retrieved by
// subcommands via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "reposcout",
		Short:        "Reposcout finds and ranks candidate repositories for a requirement",
		Long:         `Reposcout searches for open-source repositories matching a stated requirement, scores them with a transparent heuristic policy, inspects the build manifests of promising candidates, and optionally asks an AI architect to pick the best starting point.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("reposcout %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	loadConfig := func() (config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(newRankCmd(loadConfig))
	root.AddCommand(newTemplateCmd(loadConfig))
	root.AddCommand(newCacheCmd(loadConfig))
	root.AddCommand(newHistoryCmd(loadConfig))
	root.AddCommand(newServeCmd(loadConfig))

	return root.ExecuteContext(ctx)
}

// configLoader defers config loading until a command actually runs, so
// flag parsing finishes first.
type configLoader func() (config.Config, error)
