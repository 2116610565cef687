package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// layoutCommand creates the layout command for computing word placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [words.json]",
		Short: "Compute a word-cloud layout from a dataset",
		Long: `Compute a word-cloud layout from a dataset.

The layout command reads a dataset of {"text", "weight"} records, normalizes
it (trimming, merging duplicates, dropping empty or non-positive entries) and
places every word. The output is a layout.json document that can be rendered
with 'visualize' or explored with 'inspect'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := pipeline.Options{Dataset: args[0]}
			flags.apply(cmd, &opts, cfg)
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the dataset, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	opts.Logger = c.Logger
	records, report, err := pipeline.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", opts.Dataset, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(records)))
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d of %d words", len(layout.Words), len(records)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Dataset) + ".layout.json"
	}

	if err := cloud.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Words), len(layout.Dropped), cacheHit)
	printReport(report)
	if n := len(layout.Dropped); n > 0 {
		printWarning("%d word(s) did not fit; try a larger canvas or a smaller --max-font", n)
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
