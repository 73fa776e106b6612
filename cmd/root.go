package cmd

import (
	"github.com/spf13/cobra"
)

const skipWireAnnotation = "fc/skip-wire"

type rootOptions struct {
	configFile  string
	logLevel    string
	showMetrics bool
	quiet       bool
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "fc",
		Short:         "foodcook CLI (fc): browse dishes and log meals",
		Long:          "fc is a terminal client for a foodcook server. It signs you in, browses the dish, ingredient and category catalog, and records the meals you cook.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] != "" {
				return nil
			}
			return app.wire(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return app.finish(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: ~/.foodcook/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
	flags.BoolVar(&opts.showMetrics, "metrics", false, "Print request metrics to stderr after the command")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Hide success notifications")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newDishCmd(app),
		newIngredientCmd(app),
		newCategoryCmd(app),
		newMealCmd(app),
	)

	return rootCmd
}
