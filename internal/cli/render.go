package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// renderCommand creates the render command, which runs the full pipeline.
//
// Defaults come from wordcloud.toml (or the built-in config):
//   - canvas: 800x400
//   - font: go (falls back to estimate if the font cannot be parsed)
//   - palette: category10, seed 42
//   - format: svg
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lflags layoutFlags
		rflags renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [words.json]",
		Short: "Render a dataset to SVG or JSON in one step",
		Long: `Render a dataset to SVG or JSON in one step.

Equivalent to 'layout' followed by 'visualize'. Both stages are cached, so
re-rendering with a different palette reuses the cached layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := pipeline.Options{Dataset: args[0]}
			if err := rflags.apply(cmd, &opts, cfg); err != nil {
				return err
			}
			lflags.apply(cmd, &opts, cfg)
			return c.runRender(cmd.Context(), opts, rflags.output, lflags.noCache)
		},
	}

	lflags.register(cmd)
	rflags.register(cmd)

	return cmd
}

// runRender executes load, layout and render, then writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Rendering word cloud...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", opts.Dataset, err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d words", result.Stats.Placed))

	hits, misses := runner.MeasureStats()
	loggerFromContext(ctx).Debug("measurement cache", "hits", hits, "misses", misses)

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Dataset,
		output:    output,
		placed:    result.Stats.Placed,
		dropped:   result.Stats.Dropped,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	if output != "-" {
		printReport(result.Report)
	}
	return nil
}
