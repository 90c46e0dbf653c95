package errchain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestFormatSingleError(t *testing.T) {
	err := errors.New("boom")
	if got := Format(err); got != "boom" {
		t.Errorf("Format = %q, want %q", got, "boom")
	}
}

func TestFormatWalksChain(t *testing.T) {
	root := errors.New("connection refused")
	mid := fmt.Errorf("query subscribers: %w", root)
	top := fmt.Errorf("publish newsletter: %w", mid)

	got := Format(top)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "publish newsletter: query subscribers: connection refused" {
		t.Errorf("unexpected head line: %q", lines[0])
	}
	if lines[1] != "caused by: query subscribers: connection refused" {
		t.Errorf("unexpected second line: %q", lines[1])
	}
	if lines[2] != "caused by: connection refused" {
		t.Errorf("unexpected third line: %q", lines[2])
	}
}
