// Package dataset loads weighted word records for the layout engine.
//
// Records arrive pre-aggregated from an upstream reporting store as JSON.
// Two shapes are accepted:
//
//	[{"text": "revenue", "weight": 42}, {"text": "churn", "weight": 7}]
//
//	{"words": [{"text": "revenue", "weight": 42}]}
//
// Loading never calls the layout engine. [Normalize] cleans the records
// (trims text, drops empty labels and non-positive weights, merges
// duplicates) and [Items] converts them into engine input.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Record is one {text, weight} pair as it appears on the wire.
type Record struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type envelope struct {
	Words []Record `json:"words"`
}

// Parse decodes records from JSON bytes in either accepted shape.
//
// Parse validates structure and labels but keeps zero and negative weights;
// those are removed by [Normalize].
func Parse(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset is empty")
	}

	var recs []Record
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode records")
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode records")
		}
		recs = env.Words
	default:
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset must be a JSON array or an object with a \"words\" array")
	}

	for i, r := range recs {
		if err := errors.ValidateWeight(r.Text, r.Weight); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

// Read decodes records from r. Read does not close r.
func Read(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// ReadFile reads and decodes a dataset file.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	recs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// NormalizeOptions controls [Normalize].
type NormalizeOptions struct {
	// Top keeps only the Top heaviest records after merging. Zero keeps all.
	Top int
}

// Report counts what [Normalize] removed or merged.
type Report struct {
	Input       int `json:"input"`
	EmptyText   int `json:"empty_text"`
	Invalid     int `json:"invalid"`
	NonPositive int `json:"non_positive"`
	Merged      int `json:"merged"`
	Truncated   int `json:"truncated"`
}

// Normalize cleans records for layout.
//
// Text is trimmed. Records with empty text, labels rejected by
// [errors.ValidateLabel], or weights ≤ 0 are removed. Records sharing the
// same text are merged by summing weights, keeping the position of the first
// occurrence. When opts.Top > 0 the result is cut to the Top heaviest
// records, ties kept in input order. Output order otherwise follows input.
func Normalize(recs []Record, opts NormalizeOptions) ([]Record, Report) {
	rep := Report{Input: len(recs)}
	out := make([]Record, 0, len(recs))
	index := make(map[string]int, len(recs))

	for _, r := range recs {
		text := strings.TrimSpace(r.Text)
		switch {
		case text == "":
			rep.EmptyText++
			continue
		case errors.ValidateLabel(text) != nil:
			rep.Invalid++
			continue
		case !(r.Weight > 0):
			rep.NonPositive++
			continue
		}
		if i, ok := index[text]; ok {
			out[i].Weight += r.Weight
			rep.Merged++
			continue
		}
		index[text] = len(out)
		out = append(out, Record{Text: text, Weight: r.Weight})
	}

	if opts.Top > 0 && len(out) > opts.Top {
		ranked := slices.Clone(out)
		slices.SortStableFunc(ranked, func(a, b Record) int {
			switch {
			case a.Weight > b.Weight:
				return -1
			case a.Weight < b.Weight:
				return 1
			}
			return 0
		})
		keep := make(map[string]bool, opts.Top)
		for _, r := range ranked[:opts.Top] {
			keep[r.Text] = true
		}
		rep.Truncated = len(out) - opts.Top
		out = slices.DeleteFunc(out, func(r Record) bool { return !keep[r.Text] })
	}
	return out, rep
}

// Items converts records into layout engine input.
func Items(recs []Record) []wordcloud.Item {
	items := make([]wordcloud.Item, len(recs))
	for i, r := range recs {
		items[i] = wordcloud.Item{Text: r.Text, Weight: r.Weight}
	}
	return items
}

// Load reads a dataset file, normalizes it and returns engine items.
func Load(path string, opts NormalizeOptions) ([]wordcloud.Item, Report, error) {
	recs, err := ReadFile(path)
	if err != nil {
		return nil, Report{}, err
	}
	clean, rep := Normalize(recs, opts)
	return Items(clean), rep, nil
}
