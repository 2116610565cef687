package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/dataset"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout runs the layout engine over records and wraps the result in
// a layout document. Colors are not assigned here; see [Render].
func ComputeLayout(ctx context.Context, records []dataset.Record, m wordcloud.Measurer, opts Options) cloud.Layout {
	opts.SetLayoutDefaults()
	cfg := opts.EngineConfig()
	items := dataset.Items(records)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(items))
	start := time.Now()

	res := wordcloud.Layout(items, opts.Width, opts.Height, m, wordcloud.WithConfig(cfg))

	for _, d := range res.Dropped {
		hooks.OnWordDropped(ctx, d.Text, d.FontSize)
	}
	hooks.OnLayoutComplete(ctx, layoutStats(len(items), res), time.Since(start), nil)

	l := cloud.New(res, opts.Width, opts.Height, cfg)
	l.Font = opts.Font
	return l
}

func layoutStats(items int, res wordcloud.Result) observability.LayoutStats {
	s := observability.LayoutStats{
		Items:   items,
		Placed:  len(res.Words),
		Dropped: len(res.Dropped),
		Passes:  res.Passes,
	}
	for _, w := range res.Words {
		if w.Shrunk() {
			s.Shrunk++
		}
	}
	return s
}
