// Package pkg provides the core libraries for word-cloud layout and rendering.
//
// # Overview
//
// A word cloud is built from weighted {text, weight} records. Each word is
// sized by weight, placed on an Archimedean spiral without overlapping any
// earlier word, nudged toward the centroid, and finally compacted toward the
// canvas center. The pkg directory is organized into three areas:
//
//  1. [wordcloud] - The layout engine (sizing, placement, compaction)
//  2. [pipeline] - Orchestration (load → layout → render) with caching
//  3. Supporting packages for data, documents, output and infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Dataset (JSON records)
//	         ↓
//	    [dataset] package (parse, normalize, merge duplicates)
//	         ↓
//	    [wordcloud] package (size + place + compact)
//	         ↓
//	    [cloud] package (layout document, layout.json)
//	         ↓
//	    [render/sink] package (SVG or JSON output)
//
// # Quick Start
//
// Lay out a handful of words and render them to SVG:
//
//	import (
//	    "github.com/matzehuels/wordcloud/pkg/cloud"
//	    "github.com/matzehuels/wordcloud/pkg/render/sink"
//	    "github.com/matzehuels/wordcloud/pkg/wordcloud"
//	    "github.com/matzehuels/wordcloud/pkg/wordcloud/measure"
//	)
//
//	items := []wordcloud.Item{
//	    {Text: "revenue", Weight: 10},
//	    {Text: "churn", Weight: 5},
//	}
//	cfg := wordcloud.DefaultConfig()
//	res := wordcloud.Layout(items, 800, 400, measure.Estimate{}, wordcloud.WithConfig(cfg))
//	svg := sink.RenderSVG(cloud.New(res, 800, 400, cfg))
//
// # Main Packages
//
// [wordcloud] - Pure layout engine. Font sizes come from a power scale over
// the weight range; placement walks a spiral and shrinks a word before
// dropping it; a global compaction pass pulls words toward the center.
// [wordcloud/measure] supplies text measurement (Go font metrics or a fast
// estimate) and [wordcloud/palette] assigns deterministic colors.
//
// [dataset] - Reads and normalizes weighted records and reports what
// normalization removed.
//
// [cloud] - The serializable layout document shared by the CLI, the HTTP
// API and the cache.
//
// [render/sink] - SVG and JSON output.
//
// [pipeline] - The load → layout → render pipeline used by the CLI and the
// HTTP server, with layout and artifact caching.
//
// [cache] - Cache backends: file (CLI), Redis (shared between server
// replicas) and a no-op cache.
//
// [config] - wordcloud.toml loading and defaults.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	WORDCLOUD_REDIS_URL=redis://localhost:6379 go test ./pkg/cache/  # Redis tests
//
// [wordcloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud
// [wordcloud/measure]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/measure
// [wordcloud/palette]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/wordcloud/palette
// [dataset]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/dataset
// [cloud]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cloud
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
package pkg
