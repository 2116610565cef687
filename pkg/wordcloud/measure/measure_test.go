package measure

import (
	"fmt"
	"math"
	"sync"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEstimate(t *testing.T) {
	tests := []struct {
		name  string
		est   Estimate
		text  string
		size  int
		wantW float64
		wantH float64
	}{
		{name: "defaults", text: "abcd", size: 10, wantW: 22, wantH: 10},
		{name: "custom ratios", est: Estimate{CharWidth: 0.5, LineHeight: 1.2}, text: "ab", size: 20, wantW: 20, wantH: 24},
		{name: "multibyte counts runes", text: "héé", size: 20, wantW: 33, wantH: 20},
		{name: "empty text", text: "", size: 12, wantW: 0, wantH: 12},
		{name: "negative size", text: "abc", size: -4, wantW: 0, wantH: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.est.Measure(tt.text, tt.size)
			if !approx(w, tt.wantW) || !approx(h, tt.wantH) {
				t.Errorf("Measure(%q, %d) = (%v, %v), want (%v, %v)", tt.text, tt.size, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	m := Func(func(text string, size int) (float64, float64) {
		return float64(len(text)), float64(size)
	})
	w, h := m.Measure("xyz", 7)
	if w != 3 || h != 7 {
		t.Errorf("Func.Measure = (%v, %v), want (3, 7)", w, h)
	}
}

func TestCachedMemoizes(t *testing.T) {
	calls := 0
	inner := Func(func(text string, size int) (float64, float64) {
		calls++
		return float64(len(text) * size), float64(size)
	})
	c := NewCached(inner)

	for i := 0; i < 5; i++ {
		w, h := c.Measure("word", 10)
		if w != 40 || h != 10 {
			t.Fatalf("Measure = (%v, %v), want (40, 10)", w, h)
		}
	}
	c.Measure("word", 12)

	if calls != 2 {
		t.Errorf("inner called %d times, want 2", calls)
	}
	hits, misses := c.Stats()
	if hits != 4 || misses != 2 {
		t.Errorf("Stats() = (%d, %d), want (4, 2)", hits, misses)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", c.Len())
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("Stats() after Reset = (%d, %d), want (0, 0)", hits, misses)
	}
}

func TestCachedBounded(t *testing.T) {
	tests := []struct {
		name      string
		capacity  int
		distinct  int
		wantLen   int
		wantEvict int
	}{
		{"under capacity", 10, 5, 5, 0},
		{"at capacity", 10, 10, 10, 0},
		{"over capacity", 10, 1000, 10, 990},
		{"default capacity", 0, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCachedSize(Estimate{}, tt.capacity)
			for i := 0; i < tt.distinct; i++ {
				c.Measure(fmt.Sprintf("word%d", i), 12)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantLen)
			}
			if c.Len() > c.Cap() {
				t.Errorf("Len() = %d exceeds Cap() = %d", c.Len(), c.Cap())
			}
			if c.Evictions() != tt.wantEvict {
				t.Errorf("Evictions() = %d, want %d", c.Evictions(), tt.wantEvict)
			}
		})
	}
}

func TestCachedEvictsLeastRecentlyUsed(t *testing.T) {
	calls := map[string]int{}
	inner := Func(func(text string, size int) (float64, float64) {
		calls[text]++
		return float64(len(text)), float64(size)
	})
	c := NewCachedSize(inner, 2)

	c.Measure("a", 10)
	c.Measure("b", 10)
	c.Measure("a", 10) // a is now most recent
	c.Measure("c", 10) // evicts b

	c.Measure("a", 10)
	c.Measure("b", 10)
	if calls["a"] != 1 {
		t.Errorf("a measured %d times, want 1 (should stay cached)", calls["a"])
	}
	if calls["b"] != 2 {
		t.Errorf("b measured %d times, want 2 (should have been evicted)", calls["b"])
	}
}

func TestCachedNilInner(t *testing.T) {
	c := NewCached(nil)
	w, h := c.Measure("ab", 10)
	ew, eh := Estimate{}.Measure("ab", 10)
	if w != ew || h != eh {
		t.Errorf("nil inner should fall back to Estimate: got (%v, %v), want (%v, %v)", w, h, ew, eh)
	}
}

func TestCachedConcurrent(t *testing.T) {
	c := NewCached(Estimate{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for size := 10; size < 30; size++ {
				c.Measure("concurrent", size)
			}
		}()
	}
	wg.Wait()

	if c.Len() != 20 {
		t.Errorf("Len() = %d, want 20", c.Len())
	}
}

func TestGoRegular(t *testing.T) {
	f, err := GoRegular()
	if err != nil {
		t.Fatalf("GoRegular() error: %v", err)
	}
	defer f.Close()

	w1, h1 := f.Measure("hello", 12)
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("Measure returned non-positive extent (%v, %v)", w1, h1)
	}

	w2, h2 := f.Measure("hello", 24)
	if w2 <= w1 || h2 <= h1 {
		t.Errorf("larger size should measure larger: 12px=(%v, %v) 24px=(%v, %v)", w1, h1, w2, h2)
	}

	wl, _ := f.Measure("hello world", 12)
	if wl <= w1 {
		t.Errorf("longer text should be wider: %v <= %v", wl, w1)
	}

	if w, h := f.Measure("hello", 0); w != 0 || h != 0 {
		t.Errorf("zero size should measure (0, 0), got (%v, %v)", w, h)
	}
}

func TestNewFontInvalid(t *testing.T) {
	if _, err := NewFont([]byte("not a font")); err == nil {
		t.Error("NewFont should reject invalid data")
	}
}
