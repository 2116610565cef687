package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Placing 3 words...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Placing 3 words...") {
		t.Errorf("spinner output missing message: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Error("Stop should clear the line")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Loading dataset...")
	s.SetMessage("Placing")

	if s.message != "Placing"+strings.Repeat(" ", len("Loading dataset...")-len("Placing")) {
		t.Errorf("shorter message should be padded, got %q", s.message)
	}

	s.SetMessage("Placing 120 words...")
	if s.message != "Placing 120 words..." {
		t.Errorf("message = %q", s.message)
	}

	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if !strings.Contains(buf.String(), "Placing 120 words...") {
		t.Errorf("spinner did not draw updated message: %q", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Stopping...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithResult(t *testing.T) {
	ok := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Rendering...")
	ok.Start()
	ok.StopWithSuccess("Rendered")

	failed := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Rendering...")
	failed.Start()
	failed.StopWithError("Render failed")
}
