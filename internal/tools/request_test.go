package tools

import (
	"strings"
	"testing"
)

func TestDecodeAppliesDefault(t *testing.T) {
	tool := NewPreprocessorTool()
	req, err := Decode(tool.Name(), tool.Params(), []byte(`{"input_notebook":"in.ipynb","output_notebook":"out.ipynb"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Int("max_text_length") != DefaultMaxTextLength {
		t.Fatalf("expected default max length, got %d", req.Int("max_text_length"))
	}
	if req.String("input_notebook") != "in.ipynb" {
		t.Fatalf("unexpected input %q", req.String("input_notebook"))
	}
}

func TestDecodeMissingRequired(t *testing.T) {
	tool := NewAssessorTool()
	_, err := Decode(tool.Name(), tool.Params(), []byte(`{"input_csv":"q.csv"}`))
	if err == nil || !strings.Contains(err.Error(), "output_csv") {
		t.Fatalf("expected missing output_csv error, got %v", err)
	}
}

func TestDecodeRejectsWrongTypes(t *testing.T) {
	tool := NewPreprocessorTool()
	cases := []string{
		`{"input_notebook":1,"output_notebook":"o"}`,
		`{"input_notebook":"i","output_notebook":"o","max_text_length":"100"}`,
		`{"input_notebook":"i","output_notebook":"o","max_text_length":10.5}`,
		`{"input_notebook":"i","output_notebook":"o","max_text_length":1e20}`,
		`{"input_notebook":"i","output_notebook":"o","max_text_length":-3000000000}`,
		`{"input_notebook":"","output_notebook":"o"}`,
		`[1,2]`,
		`{not json`,
	}
	for _, raw := range cases {
		if _, err := Decode(tool.Name(), tool.Params(), []byte(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestDecodeAcceptsIntegralFloat(t *testing.T) {
	tool := NewPreprocessorTool()
	req, err := Decode(tool.Name(), tool.Params(), []byte(`{"input_notebook":"i","output_notebook":"o","max_text_length":500.0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Int("max_text_length") != 500 {
		t.Fatalf("expected 500, got %d", req.Int("max_text_length"))
	}
}

func TestDecodeNullUsesDefault(t *testing.T) {
	tool := NewPreprocessorTool()
	req, err := Decode(tool.Name(), tool.Params(), []byte(`{"input_notebook":"i","output_notebook":"o","max_text_length":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Int("max_text_length") != DefaultMaxTextLength {
		t.Fatalf("expected default, got %d", req.Int("max_text_length"))
	}
}

func TestRequestValuesIsACopy(t *testing.T) {
	tool := NewImageExtractorTool()
	req, err := Decode(tool.Name(), tool.Params(), []byte(`{"notebook_path":"n.ipynb","output_dir":"imgs"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values := req.Values()
	values["output_dir"] = "elsewhere"
	if req.String("output_dir") != "imgs" {
		t.Fatalf("request was mutated through Values")
	}
}
