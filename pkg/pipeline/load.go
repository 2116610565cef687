package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/dataset"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// Load reads the records named by opts (a dataset file, or inline records)
// and normalizes them.
func Load(ctx context.Context, opts Options) ([]dataset.Record, dataset.Report, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, dataset.Report{}, err
	}

	source := opts.Dataset
	if source == "" {
		source = "inline"
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	raw := opts.Records
	if opts.Dataset != "" {
		var err error
		raw, err = dataset.ReadFile(opts.Dataset)
		if err != nil {
			hooks.OnLoadComplete(ctx, source, 0, time.Since(start), err)
			return nil, dataset.Report{}, err
		}
	}

	records, report := dataset.Normalize(raw, dataset.NormalizeOptions{Top: opts.Top})
	hooks.OnLoadComplete(ctx, source, len(records), time.Since(start), nil)

	opts.Logger.Debug("normalized dataset",
		"input", report.Input,
		"kept", len(records),
		"merged", report.Merged,
		"empty", report.EmptyText,
		"non_positive", report.NonPositive,
		"truncated", report.Truncated)

	return records, report, nil
}

// HashRecords returns the content hash used to key cached layouts.
func HashRecords(records []dataset.Record) string {
	data, _ := json.Marshal(records)
	return cache.Hash(data)
}
