package util

import (
	"strings"
	"testing"
)

func TestPreviewLimitsLines(t *testing.T) {
	out, truncated := Preview("a\nb\nc\nd\n", 2, 0)
	if out != "a\nb" {
		t.Fatalf("unexpected preview %q", out)
	}
	if !truncated {
		t.Fatalf("expected truncation")
	}
}

func TestPreviewLimitsBytes(t *testing.T) {
	out, truncated := Preview("hello\nworld", 0, 8)
	if out != "hello" || !truncated {
		t.Fatalf("unexpected preview %q truncated=%v", out, truncated)
	}
}

func TestPreviewCutsLongFirstLine(t *testing.T) {
	line := "Traceback: " + strings.Repeat("x", 3000)
	out, truncated := Preview(line, 12, 2000)
	if len(out) != 2000 || !truncated {
		t.Fatalf("expected 2000-byte preview, got len=%d truncated=%v", len(out), truncated)
	}
	if !strings.HasPrefix(out, "Traceback: ") {
		t.Fatalf("unexpected preview prefix %q", out[:20])
	}
}

func TestTruncateBytes(t *testing.T) {
	if out, cut := TruncateBytes("abcdef", 3); out != "abc" || !cut {
		t.Fatalf("unexpected truncation %q %v", out, cut)
	}
	if out, cut := TruncateBytes("ab", 3); out != "ab" || cut {
		t.Fatalf("unexpected truncation %q %v", out, cut)
	}
}

func TestPreviewEmpty(t *testing.T) {
	if out, truncated := Preview("\n", 5, 5); out != "" || truncated {
		t.Fatalf("expected empty preview, got %q", out)
	}
}

func TestCountLines(t *testing.T) {
	cases := map[string]int{"": 0, "a": 1, "a\n": 1, "a\nb": 2, "a\nb\n": 2}
	for in, want := range cases {
		if got := CountLines(in); got != want {
			t.Fatalf("CountLines(%q) = %d, want %d", in, got, want)
		}
	}
}
