package tools

import (
	"fmt"
	"strconv"

	"hnet-mcp/internal/envelope"
)

// DefaultMaxTextLength caps text outputs kept by the preprocessor.
const DefaultMaxTextLength = 2000

// PreprocessorTool strips images and truncates text outputs via preprocess_notebook.py.
type PreprocessorTool struct{}

// NewPreprocessorTool constructs the notebook preprocessing tool.
func NewPreprocessorTool() *PreprocessorTool { return &PreprocessorTool{} }

func (p *PreprocessorTool) Name() string { return "preprocess_notebook" }

func (p *PreprocessorTool) Description() string {
	return "Preprocess a Jupyter notebook by removing images and truncating long text outputs. Prepares notebooks for LLM consumption while preserving code and structure."
}

func (p *PreprocessorTool) Params() []Param {
	return []Param{
		{Name: "input_notebook", Type: TypePath, Description: "Path to input Jupyter notebook (.ipynb)"},
		{Name: "output_notebook", Type: TypePath, Description: "Path for preprocessed output notebook"},
		{Name: "max_text_length", Type: TypeInteger, Description: "Maximum characters for text outputs", Default: DefaultMaxTextLength},
	}
}

func (p *PreprocessorTool) Build(req Request) (Invocation, error) {
	input := req.String("input_notebook")
	output := req.String("output_notebook")
	maxLen := req.Int("max_text_length")
	if maxLen <= 0 {
		return Invocation{}, fmt.Errorf("max_text_length must be positive, got %d", maxLen)
	}
	return Invocation{
		Script: "preprocess_notebook.py",
		Args:   []string{input, output, "--max_len", strconv.Itoa(maxLen)},
		Action: "preprocess notebook",
		Parse: func(stdout string) (string, envelope.Payload, error) {
			return "Notebook preprocessing completed successfully", envelope.Payload{
				"input_file":      input,
				"output_file":     output,
				"max_text_length": maxLen,
				"stdout":          stdout,
			}, nil
		},
	}, nil
}
