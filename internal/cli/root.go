package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Margins draws scatter plots with marginal histograms",
		Long: `Margins draws a scatter plot of two variables together with a histogram of
each variable along the matching edge. Both histograms share their data axis
with the scatter plot, so every bar lines up with the points it counts.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/margins/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
