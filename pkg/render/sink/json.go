package sink

import (
	"encoding/json"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/dataset"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	summary *dataset.Summary
}

// WithSummary attaches dataset weight statistics to the output.
func WithSummary(s dataset.Summary) JSONOption {
	return func(r *jsonRenderer) { r.summary = &s }
}

type jsonOutput struct {
	cloud.Layout
	Summary *dataset.Summary `json:"summary,omitempty"`
}

// RenderJSON serializes a layout, plus any requested extras, as indented JSON.
func RenderJSON(l cloud.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Words == nil {
		l.Words = []cloud.Word{}
	}
	return json.MarshalIndent(jsonOutput{Layout: l, Summary: r.summary}, "", "  ")
}
