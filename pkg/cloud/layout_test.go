package cloud

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

func sampleResult() wordcloud.Result {
	return wordcloud.Result{
		Words: []wordcloud.PlacedWord{
			{Text: "alpha", Weight: 10, FontSize: 40, InitialSize: 42, X: 100, Y: 50, Width: 80, Height: 40},
			{Text: "beta", Weight: 4, FontSize: 20, InitialSize: 20, X: 150, Y: 90, Width: 40, Height: 20},
		},
		Dropped: []wordcloud.SizedWord{{Text: "gamma", Weight: 1, FontSize: 12}},
		Passes:  3,
	}
}

func TestNew(t *testing.T) {
	cfg := wordcloud.DefaultConfig()
	l := New(sampleResult(), 300, 200, cfg)

	if l.ID == "" {
		t.Error("New should assign an ID")
	}
	if len(l.Words) != 2 || len(l.Dropped) != 1 {
		t.Fatalf("got %d words, %d dropped; want 2, 1", len(l.Words), len(l.Dropped))
	}
	if l.Words[0].Size != 40 || l.Words[0].InitialSize != 42 {
		t.Errorf("word sizes not carried over: %+v", l.Words[0])
	}
	if l.Dropped[0].Text != "gamma" || l.Dropped[0].Size != 12 {
		t.Errorf("dropped = %+v", l.Dropped[0])
	}
	if l.Padding != cfg.Padding || l.Passes != 3 {
		t.Errorf("padding/passes = %v/%d", l.Padding, l.Passes)
	}

	other := New(sampleResult(), 300, 200, cfg)
	if other.ID == l.ID {
		t.Error("each document should get a distinct ID")
	}
}

func TestPlacedRoundTrip(t *testing.T) {
	res := sampleResult()
	l := New(res, 300, 200, wordcloud.DefaultConfig())
	placed := l.Placed()
	for i := range placed {
		if placed[i] != res.Words[i] {
			t.Errorf("word %d = %+v, want %+v", i, placed[i], res.Words[i])
		}
	}
}

func TestSetColors(t *testing.T) {
	l := New(sampleResult(), 300, 200, wordcloud.DefaultConfig())
	placed := l.Placed()
	placed[0].Color = "#123456"
	l.SetColors(placed[:1])

	if l.Words[0].Color != "#123456" {
		t.Errorf("color not applied: %q", l.Words[0].Color)
	}
	if l.Words[1].Color != "" {
		t.Errorf("word without a match should keep its color, got %q", l.Words[1].Color)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := New(sampleResult(), 300, 200, wordcloud.DefaultConfig())
	path := filepath.Join(t.TempDir(), "cloud.layout.json")

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.ID != l.ID || got.Width != 300 || len(got.Words) != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Config == nil || got.Config.MaxFont != l.Config.MaxFont {
		t.Errorf("config not preserved: %+v", got.Config)
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: `{`},
		{name: "zero width", data: `{"width": 0, "height": 10, "words": []}`},
		{name: "missing height", data: `{"width": 10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUnmarshalLayoutEmptyWords(t *testing.T) {
	l, err := UnmarshalLayout([]byte(`{"width": 10, "height": 10}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if l.Words == nil {
		t.Error("Words should be non-nil after unmarshal")
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
