package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/dataset"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags       layoutFlags
		plain       bool
		showDropped bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [words.json | layout.json]",
		Short: "Browse placed and dropped words",
		Long: `Browse placed and dropped words in an interactive table.

A *.layout.json argument is shown as is. Any other file is read as a dataset
and laid out first (using the cache). Use --plain to print a static table,
for example when piping output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := pipeline.Options{Dataset: args[0]}
			flags.apply(cmd, &opts, cfg)

			l, summary, err := c.loadForInspect(cmd.Context(), args[0], opts, flags.noCache)
			if err != nil {
				return err
			}

			model := NewWordListModel(l, summary)
			if showDropped {
				model.ShowDropped = true
				model.Rows = model.rows()
			}
			if plain {
				fmt.Println(renderPlain(model))
				return nil
			}
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive view")
	cmd.Flags().BoolVar(&showDropped, "dropped", false, "start with the dropped words")

	return cmd
}

// isLayoutFile reports whether path names a layout document.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(path, ".layout.json")
}

// loadForInspect reads a layout document, or computes one from a dataset.
func (c *CLI) loadForInspect(ctx context.Context, path string, opts pipeline.Options, noCache bool) (cloud.Layout, dataset.Summary, error) {
	if isLayoutFile(path) {
		l, err := cloud.ReadLayoutFile(path)
		if err != nil {
			return cloud.Layout{}, dataset.Summary{}, fmt.Errorf("load layout %s: %w", path, err)
		}
		return l, layoutSummary(l), nil
	}

	opts.Logger = c.Logger
	spinner := newSpinnerWithContext(ctx, "Loading dataset...")
	spinner.Start()
	defer spinner.Stop()

	records, _, err := pipeline.Load(ctx, opts)
	if err != nil {
		return cloud.Layout{}, dataset.Summary{}, fmt.Errorf("load dataset %s: %w", path, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return cloud.Layout{}, dataset.Summary{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner.SetMessage(fmt.Sprintf("Placing %d words...", len(records)))
	l, err := runner.ComputeLayout(ctx, records, opts)
	if err != nil {
		return cloud.Layout{}, dataset.Summary{}, fmt.Errorf("compute layout: %w", err)
	}
	return l, dataset.Summarize(records), nil
}

// layoutSummary rebuilds weight statistics from a layout's placed and
// dropped words.
func layoutSummary(l cloud.Layout) dataset.Summary {
	recs := make([]dataset.Record, 0, len(l.Words)+len(l.Dropped))
	for _, w := range l.Words {
		recs = append(recs, dataset.Record{Text: w.Text, Weight: w.Weight})
	}
	for _, d := range l.Dropped {
		recs = append(recs, dataset.Record{Text: d.Text, Weight: d.Weight})
	}
	return dataset.Summarize(recs)
}

// renderPlain renders the model's summary and full table without a cursor.
func renderPlain(m WordListModel) string {
	var b strings.Builder
	b.WriteString(summaryLine(m.Layout, m.Summary))
	b.WriteString("\n")
	b.WriteString(wordTable(m.Rows, -1).Render())
	return b.String()
}
