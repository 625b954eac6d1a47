package tools

import (
	"reflect"
	"testing"
)

func TestParseImageOutputWithTotal(t *testing.T) {
	files, total, err := ParseImageOutput("Saved: a.png\nSaved: b.png\nTotal images extracted: 2\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if !reflect.DeepEqual(files, []string{"a.png", "b.png"}) {
		t.Fatalf("unexpected files %v", files)
	}
}

func TestParseImageOutputFallsBackToSavedCount(t *testing.T) {
	files, total, err := ParseImageOutput("Processing notebook...\nSaved: out/cell_1_output_0_fig_0.png\nSaved: out/cell_4_output_1_fig_0.svg\nSaved: out/cell_9_output_0_fig_2.jpeg\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(files) != 3 {
		t.Fatalf("expected 3 files, got total=%d files=%v", total, files)
	}
}

func TestParseImageOutputTotalOverridesSavedCount(t *testing.T) {
	_, total, err := ParseImageOutput("Saved: a.png\nTotal images extracted: 5\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected the explicit total, got %d", total)
	}
}

func TestParseImageOutputEmpty(t *testing.T) {
	files, total, err := ParseImageOutput("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || files == nil || len(files) != 0 {
		t.Fatalf("expected empty non-nil list, got %v total=%d", files, total)
	}
}

func TestParseImageOutputCRLF(t *testing.T) {
	files, total, err := ParseImageOutput("Saved: a.png\r\nTotal images extracted: 1\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || files[0] != "a.png" {
		t.Fatalf("unexpected parse %v %d", files, total)
	}
}

func TestParseImageOutputMalformedTotal(t *testing.T) {
	if _, _, err := ParseImageOutput("Saved: a.png\nTotal images extracted: two\n"); err == nil {
		t.Fatalf("expected error for non-integer total")
	}
}
