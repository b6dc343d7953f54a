package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newTemplateCmd creates the template artifact-store command group.
func newTemplateCmd(loadConfig configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage cached template repositories",
	}
	cmd.AddCommand(newTemplateResolveCmd(loadConfig))
	cmd.AddCommand(newTemplateListCmd(loadConfig))
	cmd.AddCommand(newTemplatePathCmd(loadConfig))
	return cmd
}

// newTemplateResolveCmd creates "template resolve": materialize a registry
// entry on disk and print its path.
func newTemplateResolveCmd(loadConfig configLoader) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "resolve <key>",
		Short: "Fetch a template into the local cache and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := newTemplateStore(cfg, logger)
			if err != nil {
				return err
			}

			sp := newSpinner(ctx, "Resolving template "+args[0])
			sp.Start()
			path, err := store.Resolve(ctx, args[0], refresh)
			sp.Stop()
			if err != nil {
				return err
			}

			printSuccess("Template %s ready", args[0])
			printDetail("Path: %s", path)
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "update the cached copy before resolving")
	return cmd
}

// newTemplateListCmd creates "template list": print the registry keys.
func newTemplateListCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered template keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := newTemplateStore(cfg, logger)
			if err != nil {
				return err
			}

			keys := store.Registry().Keys()
			if len(keys) == 0 {
				printInfo("Registry is empty")
				return nil
			}
			for _, key := range keys {
				entry, _ := store.Registry().Get(key)
				fmt.Println(StyleTitle.Render(key) + " " + StyleDim.Render(entry.Repository))
			}
			return nil
		},
	}
}

// newTemplatePathCmd creates "template path": print the artifact cache root.
func newTemplatePathCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the template cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Println(templateCacheDir(cfg))
			return nil
		},
	}
}
