package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{name: "array", data: `[{"text":"a","weight":1},{"text":"b","weight":2}]`, want: 2},
		{name: "envelope", data: `{"words":[{"text":"a","weight":1}]}`, want: 1},
		{name: "empty array", data: `[]`, want: 0},
		{name: "envelope without words", data: `{}`, want: 0},
		{name: "leading whitespace", data: "\n  [{\"text\":\"a\",\"weight\":1}]", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if recs == nil {
				t.Fatal("Parse returned nil slice")
			}
			if len(recs) != tt.want {
				t.Errorf("got %d records, want %d", len(recs), tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "scalar", data: `42`},
		{name: "malformed", data: `[{"text":`},
		{name: "wrong weight type", data: `[{"text":"a","weight":"heavy"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDataset)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	recs := []Record{
		{Text: "  revenue ", Weight: 10},
		{Text: "", Weight: 5},
		{Text: "   ", Weight: 5},
		{Text: "churn", Weight: 0},
		{Text: "refunds", Weight: -2},
		{Text: "revenue", Weight: 4},
		{Text: "bad\x01", Weight: 3},
		{Text: "growth", Weight: 6},
	}

	got, rep := Normalize(recs, NormalizeOptions{})

	want := []Record{{Text: "revenue", Weight: 14}, {Text: "growth", Weight: 6}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	wantRep := Report{Input: 8, EmptyText: 2, Invalid: 1, NonPositive: 2, Merged: 1}
	if rep != wantRep {
		t.Errorf("report = %+v, want %+v", rep, wantRep)
	}
}

func TestNormalizeTop(t *testing.T) {
	recs := []Record{
		{Text: "a", Weight: 1},
		{Text: "b", Weight: 5},
		{Text: "c", Weight: 3},
		{Text: "d", Weight: 5},
	}

	got, rep := Normalize(recs, NormalizeOptions{Top: 2})
	if len(got) != 2 || got[0].Text != "b" || got[1].Text != "d" {
		t.Errorf("got %+v, want b then d in input order", got)
	}
	if rep.Truncated != 2 {
		t.Errorf("Truncated = %d, want 2", rep.Truncated)
	}

	all, _ := Normalize(recs, NormalizeOptions{Top: 10})
	if len(all) != 4 {
		t.Errorf("Top larger than input should keep all, got %d", len(all))
	}
}

func TestItems(t *testing.T) {
	items := Items([]Record{{Text: "x", Weight: 2}})
	if len(items) != 1 || items[0].Text != "x" || items[0].Weight != 2 {
		t.Errorf("Items = %+v", items)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.json")
	if err := os.WriteFile(path, []byte(`{"words":[{"text":"a","weight":2},{"text":"a","weight":3},{"text":"b","weight":0}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	items, rep, err := Load(path, NormalizeOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 || items[0].Weight != 5 {
		t.Errorf("items = %+v", items)
	}
	if rep.Merged != 1 || rep.NonPositive != 1 {
		t.Errorf("report = %+v", rep)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.IsNotFound(err) {
		t.Errorf("missing file error = %v, want not-found code", err)
	}
}

func TestRead(t *testing.T) {
	recs, err := Read(strings.NewReader(`[{"text":"a","weight":1}]`))
	if err != nil || len(recs) != 1 {
		t.Fatalf("Read = %v, %v", recs, err)
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty summary = %+v", s)
	}

	s := Summarize([]Record{
		{Text: "a", Weight: 2},
		{Text: "b", Weight: 4},
		{Text: "c", Weight: 4},
		{Text: "d", Weight: 10},
	})
	if s.Count != 4 || s.Total != 20 || s.Min != 2 || s.Max != 10 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.Mean-5) > 1e-9 {
		t.Errorf("Mean = %v, want 5", s.Mean)
	}
	if s.Median != 4 {
		t.Errorf("Median = %v, want 4", s.Median)
	}
	if s.StdDev <= 0 {
		t.Errorf("StdDev = %v, want > 0", s.StdDev)
	}

	odd := Summarize([]Record{{Text: "a", Weight: 3}, {Text: "b", Weight: 1}, {Text: "c", Weight: 2}})
	if odd.Median != 2 {
		t.Errorf("odd Median = %v, want 2", odd.Median)
	}
	six := Summarize([]Record{
		{Text: "a", Weight: 9}, {Text: "b", Weight: 1}, {Text: "c", Weight: 5},
		{Text: "d", Weight: 3}, {Text: "e", Weight: 7}, {Text: "f", Weight: 100},
	})
	if six.Median != 6 {
		t.Errorf("unsorted even Median = %v, want 6", six.Median)
	}
	single := Summarize([]Record{{Text: "a", Weight: 3}})
	if single.StdDev != 0 || single.Median != 3 {
		t.Errorf("single = %+v", single)
	}
}
