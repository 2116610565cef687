package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		flags   renderFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a word cloud from a computed layout",
		Long: `Render a word cloud from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG or JSON. The layout contains all positions and sizes, so
this step only assigns colors and writes output.

Use 'render' as a shortcut to go directly from a dataset to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			var opts pipeline.Options
			if err := flags.apply(cmd, &opts, cfg); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, flags.output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := cloud.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		placed:    len(layout.Words),
		dropped:   len(layout.Dropped),
		cacheHit:  cacheHit,
	})
}
